// ABOUTME: Shared lipgloss styles for consistent terminal output
// ABOUTME: Defines colors and text styles used by reports and the plan wizard

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Accent    = lipgloss.Color("#8B5CF6") // Lighter purple for highlights
	Surface   = lipgloss.Color("#374151") // Elevated surface background
	Info      = lipgloss.Color("#3B82F6") // Blue

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Info)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Key style for labels
	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)
)

// Tier returns the status style for a controller size tier
func Tier(tier string) lipgloss.Style {
	switch tier {
	case models.ControllerSmall, models.ControllerMedium:
		return StatusOK
	case models.ControllerLarge:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// Pass renders a check mark or cross for a check outcome
func Pass(ok bool) string {
	if ok {
		return StatusOK.Render("✓")
	}
	return StatusCritical.Render("✗")
}
