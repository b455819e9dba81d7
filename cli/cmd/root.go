// ABOUTME: Root command for avi-sizer CLI
// ABOUTME: Handles global flags and picks the backend or in-process calculator

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
	localMode  bool
)

const (
	defaultAPIURL = "http://localhost:8080"
	apiURLEnv     = "AVI_SIZER_API_URL"
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "avi-sizer",
	Short: "CLI for the Avi load balancer sizing calculator",
	Long: `avi-sizer sizes Avi Service Engines, Service Units and controllers for a
multi-environment, multi-year deployment plan.

Plans are YAML or JSON files. Run "avi-sizer init" to create one.

Environment Variables:
  AVI_SIZER_API_URL  Backend API URL (default: http://localhost:8080)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides AVI_SIZER_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&localMode, "local", false, "Calculate in-process instead of calling the backend")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv(apiURLEnv); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// IsLocal returns whether sizing runs in-process
func IsLocal() bool {
	return localMode
}
