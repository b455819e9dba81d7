// ABOUTME: Exports sizing results as an Excel workbook
// ABOUTME: Summary, environment, controller and trace sheets built with excelize

package report

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

// Workbook sheet names
const (
	SheetSummary      = "Summary"
	SheetEnvironments = "Environments"
	SheetControllers  = "Controllers"
	SheetTrace        = "Trace"
)

// sheetWriter appends rows to one sheet, remembering the next free row
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (s *sheetWriter) append(values ...any) {
	if s.err != nil {
		return
	}
	s.row++
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, s.row)
		if err != nil {
			s.err = err
			return
		}
		if err := s.f.SetCellValue(s.sheet, cell, v); err != nil {
			s.err = fmt.Errorf("sheet %s cell %s: %w", s.sheet, cell, err)
			return
		}
	}
}

// header appends a bold row
func (s *sheetWriter) header(style int, values ...any) {
	s.append(values...)
	if s.err != nil {
		return
	}
	if err := s.f.SetRowStyle(s.sheet, s.row, s.row, style); err != nil {
		s.err = fmt.Errorf("styling sheet %s: %w", s.sheet, err)
	}
}

// BuildWorkbook lays out an advanced sizing response as a workbook.
// The Trace sheet is only added when the report carries traces.
func BuildWorkbook(resp models.AdvancedResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("renaming default sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	r := resp.Report
	writers := []*sheetWriter{{f: f, sheet: SheetSummary}}

	summary := writers[0]
	summary.header(bold, "Plan", resp.Metadata.Name)
	summary.append("Calculation ID", resp.Metadata.CalculationID)
	summary.append("Regions", r.Architecture.RegionCount)
	summary.append("Organizations", r.Architecture.OrgCount)
	summary.append("VPCs", r.Architecture.VPCCount)
	summary.append("SE vCPU size", r.Architecture.SEVCPUSize)
	summary.append("Buffer %", r.Architecture.BufferPercent)
	summary.append("SEG model", string(r.Architecture.SEGModel))
	summary.append("HA config", string(r.Architecture.HAConfig))
	summary.append()
	summary.header(bold, "Year", "DC Prod", "DC Nonprod", "DR Prod", "DR Nonprod", "DC Total", "DR Total",
		"Site Total", "With Regions", "GSLB", "Grand Total SUs", "Grand Total SEs")
	for _, yt := range r.Years {
		summary.append(int(yt.Year), yt.DCProd, yt.DCNonprod, yt.DRProd, yt.DRNonprod, yt.DCTotal, yt.DRTotal,
			yt.SiteTotal, yt.TotalWithRegions, yt.GSLB, yt.GrandTotal, yt.GrandTotalSEs)
	}

	envs, err := newSheet(f, SheetEnvironments)
	if err != nil {
		return nil, err
	}
	writers = append(writers, envs)
	envs.header(bold, "Year", "Environment", "Required SUs", "Total SEs", "Throughput vCPUs",
		"Transaction vCPUs", "Required vCPUs", "Buffered vCPUs", "Active SEs", "WAF")
	for _, y := range models.Years {
		for _, key := range models.EnvironmentKeys {
			res := r.Environments[y][key]
			if res.Details == nil {
				envs.append(int(y), string(key), res.RequiredSUs, res.TotalSEs)
				continue
			}
			d := res.Details
			envs.append(int(y), string(key), res.RequiredSUs, res.TotalSEs, d.ThroughputVCPUs,
				d.TransactionVCPUs, d.RequiredVCPUs, d.BufferedVCPUs, d.ActiveSEs, d.WAFApplied)
		}
	}

	ctrl, err := newSheet(f, SheetControllers)
	if err != nil {
		return nil, err
	}
	writers = append(writers, ctrl)
	ctrl.header(bold, "Total Apps", "Size Tier", "Nodes per Region", "Regions", "Total Nodes")
	ctrl.append(r.Controllers.TotalApps, r.Controllers.SizeTier, r.Controllers.NodesPerRegion,
		r.Controllers.Regions, r.Controllers.TotalNodes)
	ctrl.append()
	ctrl.header(bold, "GSLB Sites", "SE vCPU", "SEs", "SUs", "DNS RPS DC", "DNS RPS DR")
	ctrl.append(r.GSLB.Sites, r.GSLB.SEVCPUSize, r.GSLB.SEs, r.GSLB.SUs, r.GSLB.DNSRPSDC, r.GSLB.DNSRPSDR)

	if hasTrace(r) {
		trace, err := newSheet(f, SheetTrace)
		if err != nil {
			return nil, err
		}
		writers = append(writers, trace)
		trace.header(bold, "Scope", "Step", "Formula", "Output")
		for _, y := range models.Years {
			for _, key := range models.EnvironmentKeys {
				scope := fmt.Sprintf("%s year %d", key, y)
				for _, step := range r.Environments[y][key].Trace {
					trace.append(scope, step.Step, step.Formula, step.Output)
				}
			}
		}
		for _, step := range r.GSLB.Trace {
			trace.append("gslb", step.Step, step.Formula, step.Output)
		}
		for _, step := range r.Controllers.Trace {
			trace.append("controllers", step.Step, step.Formula, step.Output)
		}
	}

	for _, sw := range writers {
		if sw.err != nil {
			f.Close()
			return nil, sw.err
		}
	}
	return f, nil
}

func newSheet(f *excelize.File, name string) (*sheetWriter, error) {
	if _, err := f.NewSheet(name); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating sheet %s: %w", name, err)
	}
	return &sheetWriter{f: f, sheet: name}, nil
}

func hasTrace(r models.AggregateReport) bool {
	if len(r.GSLB.Trace) > 0 || len(r.Controllers.Trace) > 0 {
		return true
	}
	for _, byEnv := range r.Environments {
		for _, res := range byEnv {
			if len(res.Trace) > 0 {
				return true
			}
		}
	}
	return false
}

// WriteXLSX streams the workbook for resp to w
func WriteXLSX(w io.Writer, resp models.AdvancedResponse) error {
	f, err := BuildWorkbook(resp)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook for resp to path
func SaveXLSX(path string, resp models.AdvancedResponse) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteXLSX(out, resp); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
