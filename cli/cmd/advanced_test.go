// ABOUTME: Tests for the advanced command
// ABOUTME: Sizes plan files locally and via a mocked backend

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/markalston/avi-sizing-calculator/backend/models"
	"github.com/markalston/avi-sizing-calculator/cli/internal/client"
	"github.com/markalston/avi-sizing-calculator/cli/internal/report"
)

func TestAdvancedCommand_LocalJSON(t *testing.T) {
	path := writePlan(t, "legacy.yaml", legacyPlan)

	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	exitCode := runAdvanced(context.Background(), &buf, newLocalSizer(), advancedOptions{planPath: path})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}

	var resp models.AdvancedResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	prod := resp.Report.Environments[1][models.EnvDCProd]
	if prod.RequiredSUs != 34 || prod.TotalSEs != 17 {
		t.Errorf("expected dc-prod year 1 at 34 SUs / 17 SEs, got %d / %d", prod.RequiredSUs, prod.TotalSEs)
	}
	y1, ok := resp.Report.YearTotal(1)
	if !ok {
		t.Fatal("expected year 1 totals")
	}
	// (34 + 14) x 2 regions + 2 sites x 2 SEs x 2 vCPU
	if y1.GrandTotal != 104 {
		t.Errorf("expected year 1 grand total 104, got %d", y1.GrandTotal)
	}
	if resp.Report.Controllers.SizeTier != models.ControllerMedium || resp.Report.Controllers.TotalNodes != 6 {
		t.Errorf("expected Medium controllers with 6 nodes, got %+v", resp.Report.Controllers)
	}
	if resp.Metadata.Name != "legacy" {
		t.Errorf("expected plan name from file, got %s", resp.Metadata.Name)
	}
	if resp.Report.Environments[1][models.EnvDCProd].Trace != nil {
		t.Error("expected traces to be stripped without --explain")
	}
}

func TestAdvancedCommand_ExplainHuman(t *testing.T) {
	path := writePlan(t, "legacy.yaml", legacyPlan)

	var buf bytes.Buffer
	exitCode := runAdvanced(context.Background(), &buf, newLocalSizer(), advancedOptions{planPath: path, explain: true})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}

	out := buf.String()
	for _, want := range []string{"legacy", "Yearly totals", "Trace: dc-prod year 1", "vrf_density"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestAdvancedCommand_XLSX(t *testing.T) {
	planPath := writePlan(t, "legacy.yaml", legacyPlan)
	xlsxPath := filepath.Join(t.TempDir(), "legacy.xlsx")

	var buf bytes.Buffer
	exitCode := runAdvanced(context.Background(), &buf, newLocalSizer(), advancedOptions{planPath: planPath, xlsxPath: xlsxPath})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Wrote "+xlsxPath) {
		t.Errorf("expected confirmation of the export, got %q", buf.String())
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		t.Fatalf("expected workbook to open, got %v", err)
	}
	defer f.Close()

	total, err := f.GetCellValue(report.SheetSummary, "K12")
	if err != nil {
		t.Fatalf("failed to read summary: %v", err)
	}
	if total != "104" {
		t.Errorf("expected year 1 grand total 104 in K12, got %q", total)
	}
}

func TestAdvancedCommand_InvalidPlan(t *testing.T) {
	path := writePlan(t, "bad.yaml", "environments:\n  staging:\n    years:\n      1:\n        app_count: 1\n")

	var buf bytes.Buffer
	exitCode := runAdvanced(context.Background(), &buf, newLocalSizer(), advancedOptions{planPath: path})

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "environments.staging") {
		t.Errorf("expected the rejected field in output, got %q", buf.String())
	}
}

func TestAdvancedCommand_MissingPlan(t *testing.T) {
	var buf bytes.Buffer
	exitCode := runAdvanced(context.Background(), &buf, newLocalSizer(), advancedOptions{planPath: filepath.Join(t.TempDir(), "absent.yaml")})

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

func TestAdvancedCommand_BackendReceivesExplain(t *testing.T) {
	path := writePlan(t, "legacy.yaml", legacyPlan)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.AdvancedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if !req.Explain {
			t.Error("expected explain to be forwarded")
		}
		if req.Architecture.RegionCount != 2 {
			t.Errorf("expected region count 2, got %d", req.Architecture.RegionCount)
		}
		json.NewEncoder(w).Encode(models.AdvancedResponse{
			Report:   models.AggregateReport{Years: []models.YearTotals{{Year: 1, GrandTotal: 104}}},
			Metadata: models.ResponseMetadata{CalculationID: "remote-1", Name: req.Name},
		})
	}))
	defer server.Close()

	var buf bytes.Buffer
	exitCode := runAdvanced(context.Background(), &buf, client.New(server.URL), advancedOptions{planPath: path, explain: true})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "remote-1") {
		t.Errorf("expected calculation id in output, got %q", buf.String())
	}
}

func TestAdvancedCommand_XLSXFailure(t *testing.T) {
	planPath := writePlan(t, "legacy.yaml", legacyPlan)
	xlsxPath := filepath.Join(t.TempDir(), "missing-dir", "out.xlsx")

	var buf bytes.Buffer
	exitCode := runAdvanced(context.Background(), &buf, newLocalSizer(), advancedOptions{planPath: planPath, xlsxPath: xlsxPath})
	if exitCode != 2 {
		t.Errorf("expected exit code 2 when the export fails, got %d", exitCode)
	}
	if _, err := os.Stat(xlsxPath); err == nil {
		t.Error("expected no workbook to be written")
	}
}
