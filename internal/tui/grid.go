package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const maxEventLines = 2

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// renderMonth draws a Monday-first month grid. Day cells list the projected
// events for that date; the cursor cell and today get distinct borders.
func (m Model) renderMonth() string {
	first := time.Date(m.month.Year(), m.month.Month(), 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday())
	if offset == 0 {
		offset = 7 // Monday-first grid
	}
	days := daysIn(first.Month(), first.Year())

	cellWidth := 12
	if m.width > 0 {
		if w := m.width/7 - 2; w > cellWidth {
			cellWidth = w
		}
	}

	header := make([]string, 0, 7)
	for _, w := range weekdayLabels {
		header = append(header, m.styles.WeekdayRow.Width(cellWidth+2).Align(lipgloss.Center).Render(w))
	}

	today := time.Now().Format("2006-01-02")
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	day := 1
	for day <= days {
		cells := make([]string, 0, 7)
		for col := 1; col <= 7; col++ {
			if (len(rows) == 1 && col < offset) || day > days {
				cells = append(cells, m.styles.Cell.Width(cellWidth).Render(strings.Repeat("\n", maxEventLines)))
				continue
			}
			date := fmt.Sprintf("%04d-%02d-%02d", first.Year(), int(first.Month()), day)
			cells = append(cells, m.renderCell(date, day, cellWidth, date == today))
			day++
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(date string, day, width int, isToday bool) string {
	events := m.byDate[date]
	isCursor := date == m.cursor.Format("2006-01-02")

	lines := []string{m.styles.DayNum.Render(fmt.Sprintf("%d", day))}
	shown := len(events)
	if shown > maxEventLines {
		shown = maxEventLines
	}
	for i := 0; i < shown; i++ {
		line := truncate(events[i].Title, width)
		style := m.styles.EventLine
		if isCursor && i == m.eventIdx {
			style = m.styles.EventSel
		}
		lines = append(lines, style.Render(line))
	}
	if rest := len(events) - shown; rest > 0 {
		lines = append(lines, m.styles.Help.Render(fmt.Sprintf("+%d more", rest)))
	}
	for len(lines) < maxEventLines+1 {
		lines = append(lines, "")
	}

	cell := m.styles.Cell
	if isToday {
		cell = m.styles.CellToday
	}
	if isCursor {
		cell = m.styles.CellCursor
	}
	return cell.Width(width).Render(strings.Join(lines, "\n"))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

func daysIn(m time.Month, year int) int {
	switch m {
	case time.February:
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}
