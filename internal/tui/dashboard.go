package tui

import (
	"fmt"

	"runcoach/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	units        Units
	data         *service.DashboardData
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService, units Units) DashboardModel {
	return DashboardModel{
		queryService: qs,
		units:        units,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.queryService.GetDashboardData()
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{data: data}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil || len(m.data.RecentWorkouts) == 0 {
		return "\n  No workouts yet. Import some with: runcoach import <files.fit>"
	}

	var sections []string

	fitnessCard := m.renderFitnessCard()
	weekCard := m.renderWeekCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, fitnessCard, "  ", weekCard)
	sections = append(sections, topRow)

	if len(m.data.FitnessHistory) > 2 {
		sections = append(sections, m.renderChart())
	}

	sections = append(sections, m.renderRecentWorkouts())

	help := statusStyle.Render("Press 'r' to refresh, '2' for threshold, '3' for predictions")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderFitnessCard() string {
	title := cardTitleStyle.Render("Current Fitness")

	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)

	lines := []string{
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.0f", m.data.CurrentFitness)),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%.0f", m.data.CurrentFatigue)),
		RenderMetric("Form (TSB)", fmt.Sprintf("%+.0f", m.data.CurrentForm)),
		"",
		mutedStyle.Render(m.data.FormDescription),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(38).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderWeekCard() string {
	title := cardTitleStyle.Render("This Week")

	lines := []string{
		RenderMetric("Runs", fmt.Sprintf("%d", m.data.WeekRunCount)),
		RenderMetric("Distance", m.units.FormatDistance(m.data.WeekDistance)),
		RenderMetric("Time", formatDuration(m.data.WeekTime)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(30).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render("Fitness & Fatigue - Daily Trend")

	graph := asciigraph.PlotMany(
		[][]float64{m.data.FitnessHistory, m.data.FatigueHistory},
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.SeriesLegends("Fitness", "Fatigue"),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderRecentWorkouts() string {
	title := cardTitleStyle.Render("Recent Workouts")

	header := tableHeaderStyle.Render(fmt.Sprintf("%-14s  %8s  %8s  %9s  %5s",
		"When", "Distance", "Time", "Pace", "HR"))

	rows := []string{header}
	for i, w := range m.data.RecentWorkouts {
		if i >= 5 {
			break
		}

		hr := "-"
		if w.AvgHeartRate != nil {
			hr = fmt.Sprintf("%.0f", *w.AvgHeartRate)
		}

		row := tableRowStyle.Render(fmt.Sprintf("%-14s  %8s  %8s  %9s  %5s",
			humanize.Time(w.Date),
			m.units.FormatDistance(w.DistanceMiles),
			formatDuration(w.DurationSeconds),
			m.units.FormatPaceWithUnit(w.AvgPaceSecPerMile),
			hr,
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
