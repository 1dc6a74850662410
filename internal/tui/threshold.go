package tui

import (
	"fmt"
	"strings"

	"runcoach/internal/analysis"
	"runcoach/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// ThresholdModel is the threshold-pace screen model
type ThresholdModel struct {
	queryService *service.QueryService
	units        Units
	data         *service.ThresholdData
	viewport     viewport.Model
	loading      bool
	err          error
	width        int
	height       int
	ready        bool
}

// NewThresholdModel creates a new threshold model
func NewThresholdModel(qs *service.QueryService, units Units, width, height int) ThresholdModel {
	m := ThresholdModel{
		queryService: qs,
		units:        units,
		loading:      true,
		width:        width,
		height:       height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}

	return m
}

// Init initializes the threshold screen
func (m ThresholdModel) Init() tea.Cmd {
	return m.loadData
}

type thresholdLoadedMsg struct {
	data *service.ThresholdData
	err  error
}

func (m ThresholdModel) loadData() tea.Msg {
	data, err := m.queryService.GetThresholdData()
	return thresholdLoadedMsg{data: data, err: err}
}

// Update handles messages
func (m ThresholdModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case thresholdLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.data != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the threshold screen
func (m ThresholdModel) View() string {
	if m.loading {
		return "\n  Detecting threshold pace..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: recompute")

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m ThresholdModel) renderContent() string {
	if m.data == nil || !m.data.HasEstimate {
		return m.renderInsufficientData()
	}

	var sections []string
	sections = append(sections, m.renderEstimateCard())
	sections = append(sections, m.renderValidationCard())
	sections = append(sections, m.renderEvidenceCard())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ThresholdModel) renderInsufficientData() string {
	title := cardTitleStyle.Render("Threshold Pace")

	var lines []string
	lines = append(lines, warningStyle.Render("Not enough data for an estimate."))
	lines = append(lines, "")
	lines = append(lines, "The detector needs a few months of runs with heart rate,")
	lines = append(lines, "including some steady 20-40 minute efforts at tempo intensity.")

	if m.data != nil {
		ev := m.data.Estimate.Evidence
		lines = append(lines, "")
		lines = append(lines, statusStyle.Render(fmt.Sprintf(
			"Analyzed %d workouts (%d with heart rate).", ev.WorkoutsAnalyzed, ev.WorkoutsWithHR)))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n")))
}

func (m ThresholdModel) renderEstimateCard() string {
	title := cardTitleStyle.Render("Threshold Pace")
	est := m.data.Estimate

	paceStyle := lipgloss.NewStyle().Bold(true).Foreground(secondaryColor)

	lines := []string{
		paceStyle.Render(m.units.FormatPaceWithUnit(est.PaceSecPerMile)),
		"",
		RenderMetric("Method", m.data.MethodDisplay),
		RenderMetric("Confidence", fmt.Sprintf("%.0f%%  %s", est.Confidence*100, RenderBar(est.Confidence, 20))),
		"",
		RenderMetric("Tempo runs", m.units.FormatPaceWithUnit(est.PaceSecPerMile)),
		RenderMetric("Cruise intervals", m.units.FormatPaceWithUnit(est.PaceSecPerMile-5)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ThresholdModel) renderValidationCard() string {
	v := m.data.Estimate.Vdot
	if v == nil {
		return ""
	}

	title := cardTitleStyle.Render("VDOT Cross-Check")

	agreementStyle := successStyle
	switch v.Agreement {
	case analysis.AgreementModerate:
		agreementStyle = warningStyle
	case analysis.AgreementWeak:
		agreementStyle = errorStyle
	}

	direction := "slower than"
	if v.DiffSecPerMile < 0 {
		direction = "faster than"
	}

	lines := []string{
		RenderMetric("Expected pace", m.units.FormatPaceWithUnit(v.ExpectedPaceSecPerMile)),
		RenderMetric("Difference", fmt.Sprintf("%.0fs/mi %s expected", absFloat(v.DiffSecPerMile), direction)),
		RenderMetric("Agreement", agreementStyle.Render(string(v.Agreement))),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ThresholdModel) renderEvidenceCard() string {
	title := cardTitleStyle.Render("Evidence")
	ev := m.data.Estimate.Evidence

	var lines []string
	lines = append(lines, statusStyle.Render(fmt.Sprintf(
		"%d workouts analyzed, %d with heart rate, %s - %s",
		ev.WorkoutsAnalyzed, ev.WorkoutsWithHR,
		ev.From.Format("Jan 02"), ev.To.Format("Jan 02, 2006"))))
	lines = append(lines, "")

	if len(ev.Efforts) == 0 {
		lines = append(lines, "No threshold-quality efforts found.")
	} else {
		header := tableHeaderStyle.Render(fmt.Sprintf("%-14s  %9s  %8s  %6s",
			"When", "Pace", "Duration", "Score"))
		lines = append(lines, header)

		for i, e := range ev.Efforts {
			if i >= 8 {
				break
			}
			row := tableRowStyle.Render(fmt.Sprintf("%-14s  %9s  %8s  %6.2f",
				humanize.Time(e.Date),
				m.units.FormatPaceWithUnit(e.PaceSecPerMile),
				formatDuration(e.DurationSeconds),
				e.Score,
			))
			lines = append(lines, row)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
