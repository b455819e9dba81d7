package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

// legacyPlan sizes dc-prod year 1 to 34 SUs and dr-prod year 1 to 14 SUs per region
const legacyPlan = `
environments:
  dc-prod:
    waf_enabled: true
    years:
      1:
        ssl_throughput_gbps: 2
        app_count: 400
  dr-prod:
    years:
      1:
        l4_throughput_gbps: 8
        app_count: 100
gslb:
  site_count: 2
architecture:
  region_count: 2
  vpc_count: 10
  ha_config: legacy
`

func writePlan(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write plan: %v", err)
	}
	return path
}
