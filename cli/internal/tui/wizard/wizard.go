// ABOUTME: Plan wizard as a bubbletea model collecting architecture and GSLB parameters
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/avi-sizing-calculator/backend/models"
	"github.com/markalston/avi-sizing-calculator/cli/internal/plan"
	"github.com/markalston/avi-sizing-calculator/cli/internal/tui/styles"
)

// ErrCancelled is returned when the user leaves the wizard before finishing
var ErrCancelled = errors.New("plan wizard cancelled")

// Wizard manages the plan wizard flow as a bubbletea model
type Wizard struct {
	form      *huh.Form
	step      int
	width     int
	done      bool
	cancelled bool

	// Form field values (strings for huh)
	name      string
	regions   string
	orgs      string
	vpcs      string
	seVcpu    string
	buffer    string
	segModel  string
	haConfig  string
	gslbSites string
	gslbVcpu  string
	dnsRPSDC  string
	dnsRPSDR  string
}

// Step names for progress indicator
var stepNames = []string{"Plan", "Service Engines", "GSLB"}

// createTheme returns a huh theme built on the shared palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")

	// Group styles (section headers)
	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	// Focused field styles
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)

	// Select field styles
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Primary).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)

	// Text input styles
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	// Blurred field styles
	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(gray).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// Common service engine sizes
var seVcpuOptions = []huh.Option[string]{
	huh.NewOption("1 vCPU", "1"),
	huh.NewOption("2 vCPU (default)", "2"),
	huh.NewOption("4 vCPU", "4"),
	huh.NewOption("8 vCPU", "8"),
	huh.NewOption("16 vCPU", "16"),
}

var regionOptions = []huh.Option[string]{
	huh.NewOption("1 region", "1"),
	huh.NewOption("2 regions", "2"),
	huh.NewOption("3 regions", "3"),
	huh.NewOption("4 regions", "4"),
}

var segOptions = []huh.Option[string]{
	huh.NewOption("Shared across organizations", string(models.SEGShared)),
	huh.NewOption("Dedicated per organization", string(models.SEGDedicated)),
}

var haOptions = []huh.Option[string]{
	huh.NewOption("Elastic (N+1)", string(models.HAElastic)),
	huh.NewOption("Legacy (active/standby)", string(models.HALegacy)),
}

// New creates a new wizard pre-filled with the calculator defaults
func New() *Wizard {
	w := &Wizard{
		step:      1,
		name:      "avi-plan",
		regions:   strconv.Itoa(models.DefaultRegionCount),
		orgs:      strconv.Itoa(models.DefaultOrgCount),
		vpcs:      strconv.Itoa(models.DefaultVPCCount),
		seVcpu:    strconv.Itoa(models.DefaultSEVCPUSize),
		buffer:    strconv.FormatFloat(models.DefaultBufferPercent, 'f', -1, 64),
		segModel:  string(models.SEGShared),
		haConfig:  string(models.HAElastic),
		gslbSites: "0",
		gslbVcpu:  strconv.Itoa(models.DefaultGSLBVCPUSize),
		dnsRPSDC:  "0",
		dnsRPSDR:  "0",
	}
	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Plan name").
				Placeholder("e.g., edge-2027").
				CharLimit(64).
				Value(&w.name).
				Validate(validateName),
			huh.NewSelect[string]().
				Title("Regions").
				Description("Every site is deployed once per region").
				Options(regionOptions...).
				Value(&w.regions),
			huh.NewInput().
				Title("Organizations").
				Description("Tenants sharing the platform").
				CharLimit(5).
				Value(&w.orgs).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("VPCs").
				Description("VRF contexts each service engine must reach").
				CharLimit(5).
				Value(&w.vpcs).
				Validate(validatePositiveInt),
		).Title("Step 1: Plan").
			Description("Name the plan and describe the deployment footprint"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Service engine size").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(seVcpuOptions...).
				Value(&w.seVcpu),
			huh.NewInput().
				Title("Capacity buffer %").
				Description("Headroom added before rounding to whole service engines").
				CharLimit(6).
				Value(&w.buffer).
				Validate(validateNonNegative),
			huh.NewSelect[string]().
				Title("Service engine groups").
				Options(segOptions...).
				Value(&w.segModel),
			huh.NewSelect[string]().
				Title("HA mode").
				Options(haOptions...).
				Value(&w.haConfig),
		).Title("Step 2: Service Engines").
			Description("Configure service engine size, headroom and redundancy"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep3Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GSLB sites").
				Description("0 disables GSLB sizing").
				CharLimit(4).
				Value(&w.gslbSites).
				Validate(validateNonNegativeInt),
			huh.NewSelect[string]().
				Title("GSLB service engine size").
				Options(seVcpuOptions...).
				Value(&w.gslbVcpu),
			huh.NewInput().
				Title("DNS requests/s (DC)").
				CharLimit(10).
				Value(&w.dnsRPSDC).
				Validate(validateNonNegative),
			huh.NewInput().
				Title("DNS requests/s (DR)").
				CharLimit(10).
				Value(&w.dnsRPSDR).
				Validate(validateNonNegative),
		).Title("Step 3: GSLB").
			Description("Global server load balancing sites"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "esc" || msg.String() == "ctrl+c" {
			w.cancelled = true
			return w, tea.Quit
		}
	}

	// Update the current form
	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	switch w.form.State {
	case huh.StateCompleted:
		return w.advanceStep()
	case huh.StateAborted:
		w.cancelled = true
		return w, tea.Quit
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		w.done = true
		return w, tea.Quit
	}

	return w, nil
}

// View implements tea.Model
func (w *Wizard) View() string {
	if w.done || w.cancelled {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())
	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := max(w.width-1, 60)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render("✓")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}
	stepsLine := strings.Join(steps, "    ")

	// Progress bar line format: "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	progressBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filledWidth))

	titleWidth := lipgloss.Width("Progress")
	topBorder := "┌─ " + titleStyle.Render("Progress") + " " + strings.Repeat("─", max(0, width-5-titleWidth)) + "┐"
	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		"│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │",
		"│  " + progressBar + " │",
		"└" + strings.Repeat("─", width-2) + "┘",
	}, "\n"))
}

// Done reports whether every step was completed
func (w *Wizard) Done() bool {
	return w.done
}

// Cancelled reports whether the user left the wizard
func (w *Wizard) Cancelled() bool {
	return w.cancelled
}

// Request builds a plan skeleton from the collected values.
// Values were checked by the form validators, so parse errors fall back to zero.
func (w *Wizard) Request() models.AdvancedRequest {
	buffer, _ := strconv.ParseFloat(w.buffer, 64)
	dnsDC, _ := strconv.ParseFloat(w.dnsRPSDC, 64)
	dnsDR, _ := strconv.ParseFloat(w.dnsRPSDR, 64)

	arch := models.ArchitectureSpec{
		RegionCount:   atoi(w.regions),
		OrgCount:      atoi(w.orgs),
		VPCCount:      atoi(w.vpcs),
		SEVCPUSize:    atoi(w.seVcpu),
		BufferPercent: &buffer,
		SEGModel:      models.SEGModel(w.segModel),
		HAConfig:      models.HAConfig(w.haConfig),
	}
	gslb := models.GSLBInput{
		SiteCount:  atoi(w.gslbSites),
		SEVCPUSize: atoi(w.gslbVcpu),
		DNSRPSDC:   dnsDC,
		DNSRPSDR:   dnsDR,
	}
	return plan.Skeleton(strings.TrimSpace(w.name), arch, gslb)
}

// Run shows the wizard and returns the collected plan skeleton
func Run(ctx context.Context, opts ...tea.ProgramOption) (models.AdvancedRequest, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)

	final, err := tea.NewProgram(New(), opts...).Run()
	if err != nil {
		return models.AdvancedRequest{}, fmt.Errorf("running plan wizard: %w", err)
	}

	w, ok := final.(*Wizard)
	if !ok || !w.Done() {
		return models.AdvancedRequest{}, ErrCancelled
	}
	return w.Request(), nil
}

func atoi(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("must be zero or a positive whole number")
	}
	return nil
}

func validateNonNegative(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("must be zero or a positive number")
	}
	return nil
}
