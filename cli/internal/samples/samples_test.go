// ABOUTME: Tests for built-in samples and plan file discovery
// ABOUTME: Every embedded sample must parse as a valid plan

package samples

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/markalston/avi-sizing-calculator/backend/models"
	"github.com/markalston/avi-sizing-calculator/backend/services"
	"github.com/markalston/avi-sizing-calculator/cli/internal/plan"
)

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, "b.yaml"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "a.json"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "c.YML"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "readme.txt"), []byte("ignore"), 0644)
	os.Mkdir(filepath.Join(tmpDir, "nested.yaml"), 0755)

	files, err := Discover(tmpDir)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("expected 3 plan files, got %d", len(files))
	}
	if files[0].Name != "a.json" || files[1].Name != "b.yaml" || files[2].Name != "c.YML" {
		t.Errorf("expected files sorted by name, got %+v", files)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	files, err := Discover("/nonexistent/path")
	if err != nil {
		t.Fatalf("Discover() should not error for missing dir, got: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty list for missing dir, got %d", len(files))
	}
}

func TestExpandPaths(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, "one.yaml"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "two.yaml"), []byte("{}"), 0644)

	paths, err := ExpandPaths([]string{"single.yaml", tmpDir})
	if err != nil {
		t.Fatalf("ExpandPaths() error: %v", err)
	}

	want := []string{"single.yaml", filepath.Join(tmpDir, "one.yaml"), filepath.Join(tmpDir, "two.yaml")}
	if !slices.Equal(paths, want) {
		t.Errorf("expected %v, got %v", want, paths)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	for _, want := range []string{"dedicated-tenants", "legacy-two-region", "single-site"} {
		if !slices.Contains(names, want) {
			t.Errorf("expected sample %s in %v", want, names)
		}
	}
}

func TestReadUnknown(t *testing.T) {
	if _, err := Read("nope"); err == nil {
		t.Error("expected error for unknown sample")
	}
}

func TestSamplesAreValidPlans(t *testing.T) {
	calc := services.NewSizingCalculator(models.DefaultCapacityModel())

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			data, err := Read(name)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			req, err := plan.Parse(data)
			if err != nil {
				t.Fatalf("sample does not parse: %v", err)
			}
			if req.Name != name {
				t.Errorf("expected sample name %s, got %s", name, req.Name)
			}
			if calc.Calculate(req).PeakGrandTotal() == 0 {
				t.Error("expected sample to size to a non-zero requirement")
			}
		})
	}
}

func TestLegacyTwoRegionSample(t *testing.T) {
	data, err := Read("legacy-two-region")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	req, err := plan.Parse(data)
	if err != nil {
		t.Fatalf("sample does not parse: %v", err)
	}

	report := services.NewSizingCalculator(models.DefaultCapacityModel()).Calculate(req)
	y1, _ := report.YearTotal(1)
	// (34 + 10 + 14) x 2 regions + 2 sites x 2 SEs x 4 vCPU
	if y1.GrandTotal != 132 {
		t.Errorf("expected year 1 grand total 132, got %d", y1.GrandTotal)
	}
	if report.Controllers.SizeTier != models.ControllerLarge {
		t.Errorf("expected Large controllers for 1200 apps, got %s", report.Controllers.SizeTier)
	}
}
