package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const dbTimeout = 5 * time.Second

const noPrice = "n/a"

// FormatTimestamp renders a request time in the operator's local zone.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("02.01.2006 15:04")
}

// FormatPrice renders an optional quoted price.
func FormatPrice(p *string) string {
	if p == nil {
		return noPrice
	}

	return *p
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
