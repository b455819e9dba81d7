// ABOUTME: Tests for the plan wizard
// ABOUTME: Validates defaults, step flow and plan construction

package wizard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

func TestWizardDefaults(t *testing.T) {
	w := New()
	req := w.Request()

	arch := req.Architecture.Resolve()
	if arch.RegionCount != 1 || arch.OrgCount != 1 || arch.VPCCount != 1 {
		t.Errorf("expected region/org/vpc defaults of 1, got %d/%d/%d", arch.RegionCount, arch.OrgCount, arch.VPCCount)
	}
	if arch.SEVCPUSize != 2 {
		t.Errorf("expected SE vCPU 2, got %d", arch.SEVCPUSize)
	}
	if arch.BufferPercent != 20 {
		t.Errorf("expected buffer 20, got %v", arch.BufferPercent)
	}
	if arch.SEGModel != models.SEGShared || arch.HAConfig != models.HAElastic {
		t.Errorf("expected shared/elastic, got %s/%s", arch.SEGModel, arch.HAConfig)
	}
	if req.GSLB.SiteCount != 0 || req.GSLB.SEVCPUSize != 2 {
		t.Errorf("expected no GSLB sites at 2 vCPU, got %+v", req.GSLB)
	}
	if req.Name != "avi-plan" {
		t.Errorf("expected default name avi-plan, got %s", req.Name)
	}
}

func TestWizardRequestUsesFormValues(t *testing.T) {
	w := New()
	w.name = "  edge-2027 "
	w.regions = "2"
	w.orgs = "3"
	w.vpcs = "12"
	w.seVcpu = "4"
	w.buffer = "0"
	w.segModel = string(models.SEGDedicated)
	w.haConfig = string(models.HALegacy)
	w.gslbSites = "2"
	w.gslbVcpu = "8"
	w.dnsRPSDC = "1500"

	req := w.Request()
	if req.Name != "edge-2027" {
		t.Errorf("expected trimmed name edge-2027, got %q", req.Name)
	}

	arch := req.Architecture.Resolve()
	if arch.RegionCount != 2 || arch.OrgCount != 3 || arch.VPCCount != 12 || arch.SEVCPUSize != 4 {
		t.Errorf("expected 2/3/12/4, got %+v", arch)
	}
	if req.Architecture.BufferPercent == nil || *req.Architecture.BufferPercent != 0 {
		t.Errorf("expected explicit zero buffer, got %v", req.Architecture.BufferPercent)
	}
	if arch.SEGModel != models.SEGDedicated || arch.HAConfig != models.HALegacy {
		t.Errorf("expected dedicated/legacy, got %s/%s", arch.SEGModel, arch.HAConfig)
	}
	if req.GSLB.SiteCount != 2 || req.GSLB.SEVCPUSize != 8 || req.GSLB.DNSRPSDC != 1500 {
		t.Errorf("expected GSLB 2 sites at 8 vCPU with 1500 DC RPS, got %+v", req.GSLB)
	}
	if len(req.Environments) != len(models.EnvironmentKeys) {
		t.Errorf("expected skeleton with every environment, got %d", len(req.Environments))
	}
}

func TestWizardAdvanceSteps(t *testing.T) {
	w := New()

	if w.step != 1 {
		t.Fatalf("expected to start at step 1, got %d", w.step)
	}

	w.advanceStep()
	if w.step != 2 {
		t.Errorf("expected step 2, got %d", w.step)
	}

	w.advanceStep()
	if w.step != 3 {
		t.Errorf("expected step 3, got %d", w.step)
	}

	_, cmd := w.advanceStep()
	if !w.Done() {
		t.Error("expected wizard to be done after the last step")
	}
	if cmd == nil {
		t.Fatal("expected quit command after the last step")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg after the last step")
	}
	if w.View() != "" {
		t.Error("expected empty view once done")
	}
}

func TestWizardEscCancels(t *testing.T) {
	w := New()

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !w.Cancelled() {
		t.Error("expected esc to cancel the wizard")
	}
	if w.Done() {
		t.Error("expected cancelled wizard not to be done")
	}
	if cmd == nil {
		t.Fatal("expected quit command on cancel")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg on cancel")
	}
}

func TestWizardViewShowsProgress(t *testing.T) {
	w := New()
	w.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	view := w.View()
	for _, name := range stepNames {
		if !strings.Contains(view, name) {
			t.Errorf("expected progress to list step %q", name)
		}
	}
}

func TestValidatePositiveInt(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"10", false},
		{"1", false},
		{" 3 ", false},
		{"0", true},
		{"-1", true},
		{"abc", true},
		{"", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			err := validatePositiveInt(tc.input)
			if tc.wantErr && err == nil {
				t.Errorf("expected error for input %q", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error for input %q: %v", tc.input, err)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"0", false},
		{"20", false},
		{"150", false},
		{"7.5", false},
		{"-1", true},
		{"NaN", true},
		{"Inf", true},
		{"abc", true},
		{"", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			err := validateNonNegative(tc.input)
			if tc.wantErr && err == nil {
				t.Errorf("expected error for input %q", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error for input %q: %v", tc.input, err)
			}
		})
	}
}

func TestValidateNonNegativeInt(t *testing.T) {
	if err := validateNonNegativeInt("0"); err != nil {
		t.Errorf("expected 0 sites to be valid, got %v", err)
	}
	if err := validateNonNegativeInt("2.5"); err == nil {
		t.Error("expected fractional site count to be rejected")
	}
}

func TestValidateName(t *testing.T) {
	if err := validateName("   "); err == nil {
		t.Error("expected blank name to be rejected")
	}
	if err := validateName("plan"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSEVcpuOptionsIncludeDefault(t *testing.T) {
	found := false
	for _, opt := range seVcpuOptions {
		if opt.Value == "2" {
			found = true
		}
	}
	if !found {
		t.Error("expected the default 2 vCPU option")
	}
}
