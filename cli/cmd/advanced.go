// ABOUTME: Advanced command for avi-sizer CLI
// ABOUTME: Sizes a plan file across environments and years, optionally exporting XLSX

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

	"github.com/markalston/avi-sizing-calculator/cli/internal/plan"
	"github.com/markalston/avi-sizing-calculator/cli/internal/report"
)

// advancedOptions holds the advanced command flags
type advancedOptions struct {
	planPath string
	explain  bool
	xlsxPath string
}

var advancedOpts advancedOptions

var advancedCmd = &cobra.Command{
	Use:   "advanced",
	Short: "Size a deployment plan",
	Long: `Size every environment of a plan for three years and aggregate the result
across regions, GSLB and controllers.

Example:
  avi-sizer advanced --plan plan.yaml --explain --xlsx plan.xlsx

Exit codes:
  0 - Plan sized
  2 - Error (connectivity, invalid plan, export failure)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdvanced(ctx, os.Stdout, newSizer(), advancedOpts)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(advancedCmd)
	advancedCmd.Flags().StringVar(&advancedOpts.planPath, "plan", "", "Plan file (YAML or JSON)")
	advancedCmd.Flags().BoolVar(&advancedOpts.explain, "explain", false, "Include the calculation trace")
	advancedCmd.Flags().StringVar(&advancedOpts.xlsxPath, "xlsx", "", "Also write the report to this Excel file")
	_ = advancedCmd.MarkFlagRequired("plan")
}

// runAdvanced sizes the plan and returns exit code
func runAdvanced(ctx context.Context, w io.Writer, s sizer, opts advancedOptions) int {
	req, err := plan.Load(opts.planPath)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	req.Explain = req.Explain || opts.explain

	resp, err := s.EstimateAdvanced(ctx, req)
	if err != nil {
		if isInputError(err) {
			fmt.Fprintf(w, "Invalid plan: %v\n", err)
		} else {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		report.WriteAdvanced(w, *resp, req.Explain)
	}

	if opts.xlsxPath != "" {
		if err := report.SaveXLSX(opts.xlsxPath, *resp); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		if !IsJSONOutput() {
			fmt.Fprintf(w, "\nWrote %s\n", opts.xlsxPath)
		}
	}

	return 0
}
