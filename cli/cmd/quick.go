// ABOUTME: Quick command for avi-sizer CLI
// ABOUTME: Estimates Service Units from a VCF core count

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/avi-sizing-calculator/cli/internal/report"
)

var quickCores float64

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Estimate Service Units from VCF cores",
	Long: `Estimate Avi Service Units with the 1 SU per 100 VCF cores ratio.

Exit codes:
  0 - Estimate produced
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runQuick(ctx, os.Stdout, newSizer(), quickCores)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(quickCmd)
	quickCmd.Flags().Float64Var(&quickCores, "cores", 0, "Total VCF core count")
	_ = quickCmd.MarkFlagRequired("cores")
}

// runQuick requests a quick estimate and returns exit code
func runQuick(ctx context.Context, w io.Writer, s sizer, cores float64) int {
	est, err := s.EstimateQuick(ctx, cores)
	if err != nil {
		if isInputError(err) {
			fmt.Fprintf(w, "Invalid input: %v\n", err)
		} else {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(est, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	report.WriteQuick(w, *est)
	return 0
}
