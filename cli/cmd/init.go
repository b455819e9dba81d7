// ABOUTME: Init command for avi-sizer CLI
// ABOUTME: Runs the plan wizard and writes a plan skeleton to fill in

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/avi-sizing-calculator/backend/models"
	"github.com/markalston/avi-sizing-calculator/cli/internal/plan"
	"github.com/markalston/avi-sizing-calculator/cli/internal/samples"
	"github.com/markalston/avi-sizing-calculator/cli/internal/tui/wizard"
)

var (
	initOut    string
	initForce  bool
	initSample string
)

// planCollector gathers a plan skeleton from the user
type planCollector func(ctx context.Context) (models.AdvancedRequest, error)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a plan file interactively",
	Long: `Collect the architecture and GSLB parameters in an interactive form and write a
plan skeleton with every environment and year ready to be filled in.

With --sample, copy one of the built-in example plans instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		collect := func(ctx context.Context) (models.AdvancedRequest, error) {
			return wizard.Run(ctx)
		}
		if initSample != "" {
			collect = sampleCollector(initSample)
		}
		exitCode := runInit(ctx, os.Stdout, collect, initOut, initForce)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initOut, "out", "plan.yaml", "Plan file to write")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing plan file")
	initCmd.Flags().StringVar(&initSample, "sample", "",
		fmt.Sprintf("Start from a built-in plan (%s)", strings.Join(samples.Names(), ", ")))
}

// sampleCollector returns a built-in sample plan
func sampleCollector(name string) planCollector {
	return func(ctx context.Context) (models.AdvancedRequest, error) {
		data, err := samples.Read(name)
		if err != nil {
			return models.AdvancedRequest{}, err
		}
		return plan.Parse(data)
	}
}

// runInit collects a plan, writes it and returns exit code
func runInit(ctx context.Context, w io.Writer, collect planCollector, out string, force bool) int {
	req, err := collect(ctx)
	if errors.Is(err, wizard.ErrCancelled) {
		fmt.Fprintln(w, "Cancelled, no plan written")
		return 1
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := plan.Validate(req); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := plan.Write(out, req, force); err != nil {
		if errors.Is(err, os.ErrExist) {
			fmt.Fprintf(w, "Error: %s already exists, use --force to replace it\n", out)
		} else {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
		return 2
	}

	fmt.Fprintf(w, "Wrote %s\nFill in the yearly traffic, then run: avi-sizer advanced --plan %s\n", out, out)
	return 0
}
