package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fixnet/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/fixnet/internal/config"
	"github.com/MrJamesThe3rd/fixnet/internal/database"
	"github.com/MrJamesThe3rd/fixnet/internal/importer"
	"github.com/MrJamesThe3rd/fixnet/internal/repair"
	repairStore "github.com/MrJamesThe3rd/fixnet/internal/repair/store"
)

type model struct {
	repairService *repair.Service
	parser        *importer.Parser

	currentView View

	requestsView view.RequestsModel
	quoteView    view.QuoteModel
	importView   view.ImportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewRequests View = 1
	ViewQuote    View = 2
	ViewImport   View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// The console does not notify; operators already see what they enter.
	repairSvc := repair.NewService(repairStore.New(db), nil)
	parser := importer.NewParser()

	return model{
		repairService: repairSvc,
		parser:        parser,
		currentView:   ViewMenu,
		requestsView:  view.NewRequestsModel(repairSvc),
		quoteView:     view.NewQuoteModel(),
		importView:    view.NewImportModel(repairSvc, parser),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewRequests
				m.requestsView = view.NewRequestsModel(m.repairService)

				return m, m.requestsView.Init()
			case "2":
				m.currentView = ViewQuote
				m.quoteView = view.NewQuoteModel()

				return m, m.quoteView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.repairService, m.parser)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRequests:
		var newModel tea.Model
		newModel, cmd = m.requestsView.Update(msg)
		m.requestsView = newModel.(view.RequestsModel)
	case ViewQuote:
		var newModel tea.Model
		newModel, cmd = m.quoteView.Update(msg)
		m.quoteView = newModel.(view.QuoteModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"FixNet Console\n\n" +
				"1. Repair Requests\n" +
				"2. Quick Quote\n" +
				"3. Import Requests\n\n" +
				"q. Quit",
		)
	case ViewRequests:
		return m.requestsView.View()
	case ViewQuote:
		return m.quoteView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
