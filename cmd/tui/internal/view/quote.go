package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fixnet/internal/diagnostic"
	"github.com/MrJamesThe3rd/fixnet/internal/pricing"
)

// QuoteModel answers a walk-in customer: it diagnoses the problem and
// quotes a price from the same inputs the web form takes.
type QuoteModel struct {
	CommonModel

	form *huh.Form

	brand   string
	model   string
	problem string

	done      bool
	diagnosis diagnostic.Result
	estimate  pricing.Result
}

func NewQuoteModel() QuoteModel {
	m := QuoteModel{brand: string(pricing.BrandApple)}
	m.form = m.buildForm()

	return m
}

func (m QuoteModel) Title() string { return "Quick Quote" }

func (m QuoteModel) ShortHelp() string {
	if m.done {
		return "Esc: back | n: new quote"
	}

	return "Esc: back | Enter: next"
}

func (m QuoteModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *QuoteModel) buildForm() *huh.Form {
	brands := pricing.Brands()
	options := make([]huh.Option[string], len(brands))

	for i, b := range brands {
		options[i] = huh.NewOption(string(b), string(b))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("brand").
				Title("Brand").
				Options(options...).
				Value(&m.brand),

			huh.NewInput().
				Key("model").
				Title("Model").
				Placeholder("iPhone 14").
				Value(&m.model).
				Validate(notBlank("model")),

			huh.NewText().
				Key("problem").
				Title("Problem").
				Value(&m.problem).
				Validate(notBlank("problem")),
		),
	).WithWidth(50).WithShowHelp(false)
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " cannot be empty")
		}

		return nil
	}
}

func (m QuoteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.done && keyMsg.String() == "n" {
			m = QuoteModel{brand: m.brand}
			m.form = m.buildForm()

			return m, m.form.Init()
		}
	}

	if m.done {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	// Bound values live on the copy the form was built from; read them back from the form.
	m.brand = m.form.GetString("brand")
	m.model = strings.TrimSpace(m.form.GetString("model"))
	m.problem = m.form.GetString("problem")

	m.diagnosis = diagnostic.Classify(m.problem)
	m.estimate = pricing.Estimate(m.brand, m.model, m.problem)
	m.done = true

	return m, nil
}

func (m QuoteModel) View() string {
	if !m.done {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	box := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(44)

	diag := box.Render(fmt.Sprintf("%s\n\n%s\n\n%s",
		activeStyle(string(m.diagnosis.Category)),
		m.diagnosis.Description,
		m.diagnosis.Recommendation,
	))

	quote := box.Render(fmt.Sprintf("%s\n\n%s",
		activeStyle(m.estimate.EstimatedPrice),
		m.estimate.Description,
	))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinHorizontal(lipgloss.Top, diag, quote))
}
