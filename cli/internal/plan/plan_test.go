package plan

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

const samplePlanYAML = `
environments:
  dc-prod:
    waf_enabled: true
    years:
      1:
        ssl_throughput_gbps: 2
        app_count: 400
      3:
        ssl_throughput_gbps: 6
        ssl_cipher_profile: ecc
  dr-prod:
    years:
      1:
        l4_throughput_gbps: 8
gslb:
  site_count: 2
architecture:
  region_count: 2
  buffer_percent: 0
  ha_config: legacy
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParse_YAML(t *testing.T) {
	req, err := Parse([]byte(samplePlanYAML))
	if err != nil {
		t.Fatalf("Expected plan to parse, got %v", err)
	}

	prod := req.Environments[models.EnvDCProd]
	if !prod.WAFEnabled {
		t.Error("Expected dc-prod WAF to be enabled")
	}
	if prod.Years[1].SSLThroughputGbps != 2 {
		t.Errorf("Expected year 1 ssl throughput 2, got %v", prod.Years[1].SSLThroughputGbps)
	}
	if prod.Years[3].SSLCipherProfile != models.CipherECC {
		t.Errorf("Expected year 3 cipher ecc, got %q", prod.Years[3].SSLCipherProfile)
	}
	if req.GSLB.SiteCount != 2 {
		t.Errorf("Expected 2 GSLB sites, got %d", req.GSLB.SiteCount)
	}
	if req.Architecture.BufferPercent == nil || *req.Architecture.BufferPercent != 0 {
		t.Errorf("Expected explicit zero buffer to survive parsing, got %v", req.Architecture.BufferPercent)
	}
	if req.Architecture.HAConfig != models.HALegacy {
		t.Errorf("Expected legacy HA, got %s", req.Architecture.HAConfig)
	}
}

func TestParse_JSON(t *testing.T) {
	body := `{"name":"json-plan","environments":{"dc-nonprod":{"years":{"2":{"l7_rps":80000}}}}}`

	req, err := Parse([]byte(body))
	if err != nil {
		t.Fatalf("Expected JSON plan to parse, got %v", err)
	}
	if req.Name != "json-plan" {
		t.Errorf("Expected name json-plan, got %s", req.Name)
	}
	if req.Environments[models.EnvDCNonprod].Years[2].L7RPS != 80000 {
		t.Errorf("Expected year 2 L7 RPS 80000, got %v", req.Environments[models.EnvDCNonprod].Years[2].L7RPS)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "unknown environment",
			body:      "environments:\n  staging:\n    years:\n      1:\n        app_count: 1\n",
			wantField: "environments.staging",
		},
		{
			name:      "year out of range",
			body:      "environments:\n  dc-prod:\n    years:\n      4:\n        app_count: 1\n",
			wantField: "environments.dc-prod.years.4",
		},
		{
			name:      "negative throughput",
			body:      "environments:\n  dc-prod:\n    years:\n      1:\n        l4_throughput_gbps: -1\n",
			wantField: "environments.dc-prod.years.1.l4_throughput_gbps",
		},
		{
			name:      "bad ha config",
			body:      "architecture:\n  ha_config: active-active\n",
			wantField: "architecture.ha_config",
		},
		{
			name:      "app count beyond range",
			body:      "environments:\n  dc-prod:\n    years:\n      1:\n        ssl_throughput_gbps: 1\n        app_count: 1.0e+300\n",
			wantField: "environments.dc-prod.years.1.app_count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidPlan) {
				t.Errorf("Expected ErrInvalidPlan, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			found := false
			for _, f := range verr.Fields {
				if f.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected field %s in %+v", tt.wantField, verr.Fields)
			}
		})
	}
}

func TestParse_UnknownFieldIsSyntaxError(t *testing.T) {
	_, err := Parse([]byte("architecture:\n  regions: 2\n"))
	if err == nil {
		t.Fatal("Expected unknown field to be rejected")
	}
	if errors.Is(err, ErrInvalidPlan) {
		t.Errorf("Expected parse error rather than validation error, got %v", err)
	}
}

func TestLoad_NameFromFile(t *testing.T) {
	path := writeFile(t, "edge-sites.yaml", samplePlanYAML)

	req, err := Load(path)
	if err != nil {
		t.Fatalf("Expected plan to load, got %v", err)
	}
	if req.Name != "edge-sites" {
		t.Errorf("Expected name from file edge-sites, got %s", req.Name)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestLoad_ErrorNamesFile(t *testing.T) {
	path := writeFile(t, "broken.yaml", "environments: [")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected parse error, got nil")
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("Expected error to name the file, got %v", err)
	}
}

func TestSkeleton_RoundTrip(t *testing.T) {
	regions := 2
	skel := Skeleton("skeleton", models.ArchitectureSpec{RegionCount: regions, HAConfig: models.HALegacy}, models.GSLBInput{SiteCount: 2})

	if len(skel.Environments) != len(models.EnvironmentKeys) {
		t.Fatalf("Expected %d environments, got %d", len(models.EnvironmentKeys), len(skel.Environments))
	}
	for _, key := range models.EnvironmentKeys {
		if len(skel.Environments[key].Years) != models.PlanningYears {
			t.Errorf("Expected %d years for %s, got %d", models.PlanningYears, key, len(skel.Environments[key].Years))
		}
	}

	path := filepath.Join(t.TempDir(), "skeleton.yaml")
	if err := Write(path, skel, false); err != nil {
		t.Fatalf("Expected write to succeed, got %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Expected written skeleton to load, got %v", err)
	}
	if loaded.Architecture.RegionCount != regions {
		t.Errorf("Expected region count %d, got %d", regions, loaded.Architecture.RegionCount)
	}
	if loaded.GSLB.SiteCount != 2 {
		t.Errorf("Expected 2 GSLB sites, got %d", loaded.GSLB.SiteCount)
	}
	if len(loaded.Environments[models.EnvDRNonprod].Years) != models.PlanningYears {
		t.Errorf("Expected dr-nonprod years to survive, got %+v", loaded.Environments[models.EnvDRNonprod])
	}
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	path := writeFile(t, "existing.yaml", "name: keep\n")

	if err := Write(path, Skeleton("new", models.ArchitectureSpec{}, models.GSLBInput{}), false); err == nil {
		t.Fatal("Expected existing file to be protected")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "name: keep\n" {
		t.Errorf("Expected file to be untouched, got %q", data)
	}

	if err := Write(path, Skeleton("new", models.ArchitectureSpec{}, models.GSLBInput{}), true); err != nil {
		t.Fatalf("Expected forced write to succeed, got %v", err)
	}
}
