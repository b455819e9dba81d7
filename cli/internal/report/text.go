// ABOUTME: Human-readable rendering of sizing results for the terminal
// ABOUTME: Tables via tablewriter, number formatting via go-humanize, accents via lipgloss

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/markalston/avi-sizing-calculator/backend/models"
	"github.com/markalston/avi-sizing-calculator/cli/internal/tui/styles"
)

// WriteQuick renders a quick estimate
func WriteQuick(w io.Writer, est models.QuickEstimate) {
	fmt.Fprintf(w, "%s %s VCF cores\n", styles.KeyStyle.Render("Input:"), humanize.Ftoa(est.VCFCores))
	fmt.Fprintf(w, "%s %s SUs (1 SU per %d cores, rounded up)\n",
		styles.KeyStyle.Render("Estimate:"), styles.ValueStyle.Render(humanize.Comma(int64(est.EstimatedSUs))), est.CoresPerSU)
}

// WriteAdvanced renders an advanced sizing response. Traces are printed when explain is set
// and the response carries them.
func WriteAdvanced(w io.Writer, resp models.AdvancedResponse, explain bool) {
	r := resp.Report

	title := "Avi Service Unit Sizing"
	if resp.Metadata.Name != "" {
		title += ": " + resp.Metadata.Name
	}
	fmt.Fprintln(w, styles.Title.Render(title))
	fmt.Fprintln(w, styles.Subtitle.Render(architectureLine(r.Architecture)))
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Section.Render("Per-environment SUs (SEs)"))
	writeEnvironmentTable(w, r)
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Section.Render("Yearly totals"))
	writeTotalsTable(w, r)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s %d sites x %d SEs x %d vCPU = %s SUs\n",
		styles.KeyStyle.Render("GSLB:"), r.GSLB.Sites, sesPerSite(r.GSLB), r.GSLB.SEVCPUSize, humanize.Comma(int64(r.GSLB.SUs)))
	fmt.Fprintf(w, "%s %s (%s apps) x %d nodes x %d regions = %d nodes\n",
		styles.KeyStyle.Render("Controllers:"),
		styles.Tier(r.Controllers.SizeTier).Render(r.Controllers.SizeTier),
		humanize.Comma(int64(r.Controllers.TotalApps)),
		r.Controllers.NodesPerRegion, r.Controllers.Regions, r.Controllers.TotalNodes)
	fmt.Fprintf(w, "%s %s SUs\n", styles.KeyStyle.Render("Peak grand total:"), styles.ValueStyle.Render(humanize.Comma(int64(r.PeakGrandTotal()))))

	if resp.Metadata.CalculationID != "" {
		cached := ""
		if resp.Metadata.Cached {
			cached = " (cached)"
		}
		fmt.Fprintln(w, styles.Subtitle.Render("Calculation "+resp.Metadata.CalculationID+cached))
	}

	if explain {
		writeTraces(w, r)
	}
}

func architectureLine(a models.ArchitectureConfig) string {
	return fmt.Sprintf("regions=%d orgs=%d vpcs=%d se_vcpu=%d buffer=%s%% seg=%s ha=%s",
		a.RegionCount, a.OrgCount, a.VPCCount, a.SEVCPUSize, humanize.Ftoa(a.BufferPercent), a.SEGModel, a.HAConfig)
}

func sesPerSite(g models.GSLBResult) int {
	if g.Sites == 0 {
		return 0
	}
	return g.SEs / g.Sites
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

func writeEnvironmentTable(w io.Writer, r models.AggregateReport) {
	header := []string{"Environment"}
	for _, y := range models.Years {
		header = append(header, fmt.Sprintf("Year %d", y))
	}
	table := newTable(w, header)

	for _, key := range models.EnvironmentKeys {
		row := []string{string(key)}
		for _, y := range models.Years {
			res := r.Environments[y][key]
			row = append(row, fmt.Sprintf("%s (%d)", humanize.Comma(int64(res.RequiredSUs)), res.TotalSEs))
		}
		table.Append(row)
	}
	table.Render()
}

func writeTotalsTable(w io.Writer, r models.AggregateReport) {
	table := newTable(w, []string{"Year", "DC", "DR", "Site", "x Regions", "GSLB", "Grand Total SUs", "Grand Total SEs"})
	for _, yt := range r.Years {
		table.Append([]string{
			strconv.Itoa(int(yt.Year)),
			humanize.Comma(int64(yt.DCTotal)),
			humanize.Comma(int64(yt.DRTotal)),
			humanize.Comma(int64(yt.SiteTotal)),
			humanize.Comma(int64(yt.TotalWithRegions)),
			humanize.Comma(int64(yt.GSLB)),
			humanize.Comma(int64(yt.GrandTotal)),
			humanize.Comma(int64(yt.GrandTotalSEs)),
		})
	}
	table.Render()
}

func writeTraces(w io.Writer, r models.AggregateReport) {
	for _, y := range models.Years {
		for _, key := range models.EnvironmentKeys {
			res := r.Environments[y][key]
			if len(res.Trace) == 0 {
				continue
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, styles.Section.Render(fmt.Sprintf("Trace: %s year %d", key, y)))
			writeTrace(w, res.Trace)
		}
	}
	if len(r.GSLB.Trace) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.Section.Render("Trace: GSLB"))
		writeTrace(w, r.GSLB.Trace)
	}
	if len(r.Controllers.Trace) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.Section.Render("Trace: controllers"))
		writeTrace(w, r.Controllers.Trace)
	}
}

func writeTrace(w io.Writer, trace models.Trace) {
	table := newTable(w, []string{"Step", "Formula", "Output"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, step := range trace {
		table.Append([]string{step.Step, step.Formula, humanize.Ftoa(step.Output)})
	}
	table.Render()
}

// BatchRow is one plan's line in a batch summary
type BatchRow struct {
	Plan           string
	PeakSUs        int
	PeakSEs        int
	ControllerTier string
	Err            error
}

// WriteBatch renders a summary table of several sized plans
func WriteBatch(w io.Writer, rows []BatchRow) {
	table := newTable(w, []string{"Plan", "Peak SUs", "Peak SEs", "Controller", "Status"})
	for _, row := range rows {
		if row.Err != nil {
			table.Append([]string{row.Plan, "-", "-", "-", "error: " + row.Err.Error()})
			continue
		}
		table.Append([]string{
			row.Plan,
			humanize.Comma(int64(row.PeakSUs)),
			humanize.Comma(int64(row.PeakSEs)),
			row.ControllerTier,
			"ok",
		})
	}
	table.Render()
}

// PeakSEs returns the largest grand total SE count across the planning years
func PeakSEs(r models.AggregateReport) int {
	peak := 0
	for _, yt := range r.Years {
		if yt.GrandTotalSEs > peak {
			peak = yt.GrandTotalSEs
		}
	}
	return peak
}
