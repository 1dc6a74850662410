package tui

import (
	"fmt"
	"strings"

	"runcoach/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PredictionsModel is the race predictions screen model
type PredictionsModel struct {
	queryService *service.QueryService
	units        Units
	data         *service.PredictionsData
	viewport     viewport.Model
	loading      bool
	err          error
	width        int
	height       int
	ready        bool
}

// NewPredictionsModel creates a new predictions model
func NewPredictionsModel(qs *service.QueryService, units Units, width, height int) PredictionsModel {
	m := PredictionsModel{
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

// Init initializes the predictions screen
func (m PredictionsModel) Init() tea.Cmd {
	return m.loadPredictions
}

type predictionsLoadedMsg struct {
	data *service.PredictionsData
	err  error
}

func (m PredictionsModel) loadPredictions() tea.Msg {
	data, err := m.queryService.GetRacePredictions()
	return predictionsLoadedMsg{data: data, err: err}
}

// Update handles messages
func (m PredictionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case predictionsLoadedMsg:
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
			return m, m.loadPredictions
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the predictions screen
func (m PredictionsModel) View() string {
	if m.loading {
		return "\n  Computing race predictions..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: refresh")

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m PredictionsModel) renderContent() string {
	if m.data == nil || !m.data.HasPredictions {
		return m.renderEmptyState()
	}

	var sections []string
	sections = append(sections, m.renderVDOTCard())
	sections = append(sections, m.renderPredictionsTable())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PredictionsModel) renderEmptyState() string {
	title := cardTitleStyle.Render("Race Predictions")

	lines := []string{
		warningStyle.Render("No predictions available yet."),
		"",
		"Predictions need at least one solid effort of a mile or more.",
		"Import more workouts and check back.",
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n")))
}

func (m PredictionsModel) renderVDOTCard() string {
	title := cardTitleStyle.Render("Current Fitness (VDOT)")

	vdotStyle := lipgloss.NewStyle().Bold(true).Foreground(secondaryColor)

	lines := []string{
		vdotStyle.Render(fmt.Sprintf("%.1f", m.data.VDOT)) + "  " + statusStyle.Render(m.data.VDOTLabel),
		"",
		RenderMetric("Based on", fmt.Sprintf("%s in %s", m.data.SourceDistance, m.data.SourceTime)),
		RenderMetric("Run on", m.data.SourceDate),
		RenderMetric("Data quality", m.data.Quality),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m PredictionsModel) renderPredictionsTable() string {
	title := cardTitleStyle.Render("Equivalent Race Times")

	header := tableHeaderStyle.Render(fmt.Sprintf("%-14s  %10s  %10s  %-19s",
		"Distance", "Time", "Pace", "Range"))

	rows := []string{header}
	for _, p := range m.data.Predictions {
		row := tableRowStyle.Render(fmt.Sprintf("%-14s  %10s  %10s  %s - %s",
			p.TargetLabel,
			p.PredictedTime,
			p.PredictedPace,
			p.RangeLow,
			p.RangeHigh,
		))
		rows = append(rows, row)
	}

	note := statusStyle.Render("Ranges widen as the backing data gets thinner or staler.")

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table, "", note))
}
