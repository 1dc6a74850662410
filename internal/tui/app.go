package tui

import (
	"runcoach/internal/config"
	"runcoach/internal/service"
	"runcoach/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenThreshold
	ScreenPredictions
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard   DashboardModel
	threshold   ThresholdModel
	predictions PredictionsModel
	help        HelpModel

	// Services
	db           *store.DB
	queryService *service.QueryService
	units        Units

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(db *store.DB, queryService *service.QueryService, cfg *config.Config) *App {
	units := NewUnits(cfg.Display)
	return &App{
		screen:       ScreenDashboard,
		db:           db,
		queryService: queryService,
		units:        units,
		dashboard:    NewDashboardModel(queryService, units),
		threshold:    NewThresholdModel(queryService, units, 0, 0),
		predictions:  NewPredictionsModel(queryService, units, 0, 0),
		help:         NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			a.screen = ScreenDashboard
			a.dashboard = NewDashboardModel(a.queryService, a.units)
			return a, a.dashboard.Init()
		case "2":
			a.screen = ScreenThreshold
			return a, a.threshold.Init()
		case "3":
			a.screen = ScreenPredictions
			return a, a.predictions.Init()
		case "?":
			a.prevScreen = a.screen
			a.screen = ScreenHelp
			return a, nil
		case "esc":
			if a.screen == ScreenHelp {
				a.screen = a.prevScreen
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenThreshold:
		var m tea.Model
		m, cmd = a.threshold.Update(msg)
		a.threshold = m.(ThresholdModel)
	case ScreenPredictions:
		var m tea.Model
		m, cmd = a.predictions.Update(msg)
		a.predictions = m.(PredictionsModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenThreshold:
		content = a.threshold.View()
	case ScreenPredictions:
		content = a.predictions.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Run Coach - Training Analysis")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Threshold", ScreenThreshold},
		{"3", "Predictions", ScreenPredictions},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}
