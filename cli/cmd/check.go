// ABOUTME: Check command for avi-sizer CLI
// ABOUTME: Gates CI/CD pipelines on a plan's SU and controller tier limits

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/avi-sizing-calculator/backend/models"
	"github.com/markalston/avi-sizing-calculator/cli/internal/plan"
	"github.com/markalston/avi-sizing-calculator/cli/internal/tui/styles"
)

// checkOptions holds the check command flags
type checkOptions struct {
	planPath string
	maxSUs   int
	maxTier  string
}

var checkOpts checkOptions

// controllerTiers lists the tiers from smallest to largest
var controllerTiers = []string{
	models.ControllerSmall,
	models.ControllerMedium,
	models.ControllerLarge,
	models.ControllerExtraLarge,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a plan against sizing limits",
	Long: `Size a plan and exit non-zero if it exceeds the given limits.

Exit codes:
  0 - All checks passed
  1 - One or more limits exceeded
  2 - Error (connectivity, invalid plan, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheck(ctx, os.Stdout, newSizer(), checkOpts)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkOpts.planPath, "plan", "", "Plan file (YAML or JSON)")
	checkCmd.Flags().IntVar(&checkOpts.maxSUs, "max-sus", 0, "Largest acceptable grand total SUs in any year")
	checkCmd.Flags().StringVar(&checkOpts.maxTier, "max-controller-tier", "",
		"Largest acceptable controller tier (Small, Medium, Large, Extra Large)")
	_ = checkCmd.MarkFlagRequired("plan")
	_ = checkCmd.MarkFlagRequired("max-sus")
}

// checkResult represents the result of a single limit check
type checkResult struct {
	name      string
	value     string
	threshold string
	passed    bool
}

// runCheck sizes the plan, compares it to the limits and returns exit code
func runCheck(ctx context.Context, w io.Writer, s sizer, opts checkOptions) int {
	maxTier, err := validateLimits(opts.maxSUs, opts.maxTier)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	req, err := plan.Load(opts.planPath)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	resp, err := s.EstimateAdvanced(ctx, req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	results := performChecks(resp.Report, opts.maxSUs, maxTier)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

// validateLimits checks the flag values and returns the canonical tier name
func validateLimits(maxSUs int, tier string) (string, error) {
	if maxSUs <= 0 {
		return "", fmt.Errorf("--max-sus must be a positive number")
	}
	if tier == "" {
		return "", nil
	}
	for _, known := range controllerTiers {
		if strings.EqualFold(strings.TrimSpace(tier), known) {
			return known, nil
		}
	}
	return "", fmt.Errorf("--max-controller-tier must be one of %s", strings.Join(controllerTiers, ", "))
}

// performChecks compares the report against the limits
func performChecks(r models.AggregateReport, maxSUs int, maxTier string) []checkResult {
	var results []checkResult

	for _, yt := range r.Years {
		results = append(results, checkResult{
			name:      fmt.Sprintf("Year %d grand total SUs", yt.Year),
			value:     strconv.Itoa(yt.GrandTotal),
			threshold: strconv.Itoa(maxSUs),
			passed:    yt.GrandTotal <= maxSUs,
		})
	}

	if maxTier != "" {
		tier := r.Controllers.SizeTier
		results = append(results, checkResult{
			name:      "Controller tier",
			value:     tier,
			threshold: maxTier,
			passed:    slices.Index(controllerTiers, tier) <= slices.Index(controllerTiers, maxTier),
		})
	}

	return results
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var sb strings.Builder

	for _, r := range results {
		fmt.Fprintf(&sb, "%s %s: %s (limit: %s)\n", styles.Pass(r.passed), r.name, r.value, r.threshold)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		fmt.Fprintf(&sb, "\n%s: %d check(s) exceeded limit", styles.StatusCritical.Render("FAILED"), failed)
	} else {
		fmt.Fprintf(&sb, "\n%s: All %d check(s) within limits", styles.StatusOK.Render("PASSED"), passed)
	}

	return sb.String()
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]any, len(results))
	for i, r := range results {
		checks[i] = map[string]any{
			"name":      r.name,
			"value":     r.value,
			"threshold": r.threshold,
			"passed":    r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]any{
		"status": status,
		"checks": checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
