package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the calendar surface.
type Styles struct {
	Title      lipgloss.Style
	FilterBar  lipgloss.Style
	WeekdayRow lipgloss.Style
	Cell       lipgloss.Style
	CellToday  lipgloss.Style
	CellCursor lipgloss.Style
	DayNum     lipgloss.Style
	EventLine  lipgloss.Style
	EventSel   lipgloss.Style
	Status     lipgloss.Style
	StatusErr  lipgloss.Style
	Help       lipgloss.Style
	Dialog     lipgloss.Style
	FieldLabel lipgloss.Style
	FieldFocus lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	border := lipgloss.Color("240")
	accent := lipgloss.Color("205")
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		FilterBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		WeekdayRow: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Cell:       lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(border),
		CellToday:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("39")),
		CellCursor: lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(accent),
		DayNum:     lipgloss.NewStyle().Bold(true),
		EventLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		EventSel:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		StatusErr:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dialog:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(1, 2),
		FieldLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		FieldFocus: lipgloss.NewStyle().Foreground(accent).Bold(true),
	}
}
