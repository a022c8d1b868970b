package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fixnet/internal/notify"
	"github.com/MrJamesThe3rd/fixnet/internal/repair"
)

type RequestsModel struct {
	CommonModel
	repairService *repair.Service

	table   table.Model
	reqs    []*repair.Request
	detail  bool
	loading bool
	err     error
}

func NewRequestsModel(svc *repair.Service) RequestsModel {
	columns := []table.Column{
		{Title: "Time", Width: 17},
		{Title: "Name", Width: 16},
		{Title: "Contact", Width: 18},
		{Title: "Device", Width: 22},
		{Title: "Problem", Width: 36},
		{Title: "Price", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return RequestsModel{
		repairService: svc,
		table:         t,
		loading:       true,
	}
}

func (m RequestsModel) Title() string { return "Repair Requests" }

func (m RequestsModel) ShortHelp() string {
	if m.detail {
		return "Esc/Enter: close"
	}

	return "Esc: back | Enter: details | r: refresh"
}

func (m RequestsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RequestsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRequestsMsg:
		m.loading = false
		m.err = msg.err
		m.reqs = msg.reqs
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		if m.detail {
			switch msg.String() {
			case "esc", "enter":
				m.detail = false
			}

			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			if len(m.reqs) > 0 {
				m.detail = true
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RequestsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading repair requests...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Requests: %s", activeStyle(fmt.Sprint(len(m.reqs))))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if idx := m.table.Cursor(); m.detail && idx >= 0 && idx < len(m.reqs) {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(56).
			Render(notify.FormatMessage(m.reqs[idx]))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *RequestsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.reqs))
	for _, req := range m.reqs {
		rows = append(rows, table.Row{
			FormatTimestamp(req.Timestamp),
			req.Name,
			req.Contact,
			req.DeviceBrand + " " + req.DeviceModel,
			req.ProblemDescription,
			FormatPrice(req.EstimatedPrice),
		})
	}

	m.table.SetRows(rows)
}

type loadRequestsMsg struct {
	reqs []*repair.Request
	err  error
}

func (m RequestsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		reqs, err := m.repairService.List(ctx)

		return loadRequestsMsg{reqs: reqs, err: err}
	}
}
