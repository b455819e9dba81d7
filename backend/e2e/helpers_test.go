// ABOUTME: Test helpers for e2e tests
// ABOUTME: Builds a full service stack from environment configuration

package e2e

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markalston/avi-sizing-calculator/backend/cache"
	"github.com/markalston/avi-sizing-calculator/backend/config"
	"github.com/markalston/avi-sizing-calculator/backend/handlers"
	"github.com/markalston/avi-sizing-calculator/backend/metrics"
	"github.com/markalston/avi-sizing-calculator/backend/models"
)

// withTestEnv sets env vars, returning a cleanup function that restores the
// original values.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withTestEnv(t, map[string]string{
//	        "CORS_ALLOWED_ORIGINS": "https://example.com",
//	    }))
//	}
func withTestEnv(t *testing.T, extra map[string]string) func() {
	t.Helper()

	type original struct {
		value string
		set   bool
	}
	originals := make(map[string]original)

	// Keep any developer .env out of the test
	if _, ok := extra["ENV_FILE"]; !ok {
		extra = copyWith(extra, "ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	}

	for key, value := range extra {
		v, ok := os.LookupEnv(key)
		originals[key] = original{value: v, set: ok}
		os.Setenv(key, value)
	}

	return func() {
		for key, o := range originals {
			if o.set {
				os.Setenv(key, o.value)
			} else {
				os.Unsetenv(key)
			}
		}
	}
}

func copyWith(m map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}

// newTestServer starts the service exactly as main wires it
func newTestServer(t *testing.T, env map[string]string) *httptest.Server {
	t.Helper()
	t.Cleanup(withTestEnv(t, env))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	c := cache.New[models.AggregateReport](time.Duration(cfg.CacheTTL) * time.Second)
	t.Cleanup(c.Close)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	h := handlers.NewHandler(cfg, c, handlers.WithMetrics(m))
	srv := httptest.NewServer(handlers.NewRouter(h, cfg, m))
	t.Cleanup(srv.Close)
	return srv
}
