// ABOUTME: Batch command for avi-sizer CLI
// ABOUTME: Sizes several plan files concurrently and prints a summary table

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
	"golang.org/x/sync/errgroup"

	"github.com/markalston/avi-sizing-calculator/cli/internal/plan"
	"github.com/markalston/avi-sizing-calculator/cli/internal/report"
	"github.com/markalston/avi-sizing-calculator/cli/internal/samples"
)

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch FILE|DIR...",
	Short: "Size several plans at once",
	Long: `Size several plan files concurrently and summarize their peak requirements.
Directories are expanded to the .yaml, .yml and .json files they contain.

Exit codes:
  0 - Every plan sized
  2 - One or more plans failed`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBatch(ctx, os.Stdout, newSizer(), args, batchConcurrency)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "Plans sized in parallel")
}

// batchResult is the JSON form of one batch row
type batchResult struct {
	Plan           string `json:"plan"`
	PeakSUs        int    `json:"peak_sus,omitempty"`
	PeakSEs        int    `json:"peak_ses,omitempty"`
	ControllerTier string `json:"controller_tier,omitempty"`
	Error          string `json:"error,omitempty"`
}

// runBatch sizes every plan, keeping input order in the output, and returns exit code
func runBatch(ctx context.Context, w io.Writer, s sizer, paths []string, concurrency int) int {
	if concurrency < 1 {
		fmt.Fprintln(w, "Error: --concurrency must be at least 1")
		return 2
	}

	paths, err := samples.ExpandPaths(paths)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if len(paths) == 0 {
		fmt.Fprintln(w, "Error: no plan files found")
		return 2
	}

	rows := make([]report.BatchRow, len(paths))

	// Failures are recorded per row so one bad plan does not stop the others
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			rows[i] = sizePlan(ctx, s, path)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, row := range rows {
		if row.Err != nil {
			failed++
		}
	}

	if IsJSONOutput() {
		results := make([]batchResult, len(rows))
		for i, row := range rows {
			results[i] = batchResult{
				Plan:           row.Plan,
				PeakSUs:        row.PeakSUs,
				PeakSEs:        row.PeakSEs,
				ControllerTier: row.ControllerTier,
			}
			if row.Err != nil {
				results[i].Error = row.Err.Error()
			}
		}
		data, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		report.WriteBatch(w, rows)
	}

	if failed > 0 {
		return 2
	}
	return 0
}

func sizePlan(ctx context.Context, s sizer, path string) report.BatchRow {
	row := report.BatchRow{Plan: path}

	req, err := plan.Load(path)
	if err != nil {
		row.Err = err
		return row
	}

	resp, err := s.EstimateAdvanced(ctx, req)
	if err != nil {
		row.Err = err
		return row
	}

	row.PeakSUs = resp.Report.PeakGrandTotal()
	row.PeakSEs = report.PeakSEs(resp.Report)
	row.ControllerTier = resp.Report.Controllers.SizeTier
	return row
}
