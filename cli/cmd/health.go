// ABOUTME: Health command for avi-sizer CLI
// ABOUTME: Checks backend connectivity and capacity model status

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/avi-sizing-calculator/backend/models"
	"github.com/markalston/avi-sizing-calculator/cli/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the sizing calculator backend and verify service status.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	if resp.Status != "ok" {
		return 1
	}
	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *models.HealthResponse) string {
	return fmt.Sprintf(`Backend:        %s
Status:         %s
Capacity model: %s
Cache entries:  %d
Cache TTL:      %ds`, url, resp.Status, resp.CapacityModel, resp.CacheStatus.Entries, resp.CacheStatus.TTLSeconds)
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *models.HealthResponse) string {
	output := map[string]any{
		"backend":        url,
		"status":         resp.Status,
		"capacity_model": resp.CapacityModel,
		"cache_status":   resp.CacheStatus,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
