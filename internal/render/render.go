// Package render draws calendar evaluations for the terminal.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"bizcal/internal/calendar"
	"bizcal/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	openStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	closedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	weekendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// RenderMonth draws one month as a Mo..Su grid. Open days are green,
// weekday holidays red, weekends dim.
func RenderMonth(a calendar.Adapter, year int, month time.Month) (string, error) {
	first := domain.Date(year, month, 1)
	last := first.AddDate(0, 1, -1)

	var b strings.Builder
	title := fmt.Sprintf("%s %d", month, year)
	b.WriteString(titleStyle.Render(fmt.Sprintf("%21s", title)))
	b.WriteByte('\n')
	b.WriteString(headerStyle.Render("Mo Tu We Th Fr Sa Su"))
	b.WriteByte('\n')

	// Monday-first column index for the first of the month.
	col := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", col))

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		open, err := a.IsBusinessDay(d)
		if err != nil {
			return "", fmt.Errorf("rendering %s: %w", domain.FormatDate(d), err)
		}
		cell := fmt.Sprintf("%2d", d.Day())
		switch {
		case open:
			b.WriteString(openStyle.Render(cell))
		case domain.IsWeekend(d):
			b.WriteString(weekendStyle.Render(cell))
		default:
			b.WriteString(closedStyle.Render(cell))
		}

		col++
		if col == 7 {
			b.WriteByte('\n')
			col = 0
		} else {
			b.WriteByte(' ')
		}
	}
	if col != 0 {
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// RenderRange draws every month touched by [start, end], separated by blank
// lines.
func RenderRange(a calendar.Adapter, start, end time.Time) (string, error) {
	if err := calendar.CheckRange(start, end); err != nil {
		return "", err
	}

	var months []string
	cur := domain.Date(start.Year(), start.Month(), 1)
	stop := domain.Date(end.Year(), end.Month(), 1)
	for !cur.After(stop) {
		m, err := RenderMonth(a, cur.Year(), cur.Month())
		if err != nil {
			return "", err
		}
		months = append(months, m)
		cur = cur.AddDate(0, 1, 0)
	}
	return strings.Join(months, "\n"), nil
}

// Summary reports business-day and holiday counts for [start, end] in a
// single line.
func Summary(a calendar.Adapter, start, end time.Time) (string, error) {
	days, err := a.BusinessDays(start, end)
	if err != nil {
		return "", err
	}
	holidays, err := a.Holidays(start, end)
	if err != nil {
		return "", err
	}

	weekdayHolidays := 0
	for _, d := range holidays {
		if !domain.IsWeekend(d) {
			weekdayHolidays++
		}
	}

	return fmt.Sprintf("%s  %s..%s: %s business days, %s weekday holidays",
		titleStyle.Render(a.Name()),
		domain.FormatDate(start), domain.FormatDate(end),
		countStyle.Render(fmt.Sprintf("%d", len(days))),
		countStyle.Render(fmt.Sprintf("%d", weekdayHolidays)),
	), nil
}
