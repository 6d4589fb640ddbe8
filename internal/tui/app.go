// Package tui is the calendar surface: a Bubble Tea month grid over the
// remote shift store, with filtering, an editor dialog and move-to-date.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"shiftcal/internal/editor"
	"shiftcal/internal/model"
	"shiftcal/internal/projection"
)

// API is the full shift store surface the calendar needs.
type API interface {
	editor.API
	ListShifts(ctx context.Context) ([]model.ShiftWithDetails, error)
}

// moveState tracks an event being rescheduled: the event follows the cursor
// until the move is confirmed or cancelled.
type moveState struct {
	event projection.Event
	from  string
}

// Model is the root Bubble Tea model.
type Model struct {
	api       API
	logger    zerolog.Logger
	exportDir string
	styles    Styles

	shifts     []model.ShiftWithDetails
	names      []model.UserName
	shiftTypes []model.ShiftType
	filter     projection.Filter
	events     []projection.Event
	byDate     map[string][]projection.Event

	month    time.Time
	cursor   time.Time
	eventIdx int

	editor *editorModel
	move   *moveState

	status    string
	statusErr bool

	width  int
	height int
}

// New builds the calendar model anchored on today.
func New(api API, logger zerolog.Logger, exportDir string) Model {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Model{
		api:       api,
		logger:    logger,
		exportDir: exportDir,
		styles:    DefaultStyles(),
		month:     time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		cursor:    today,
		byDate:    map[string][]projection.Event{},
	}
}

// Init fires the initial parallel load of shifts and lookup lists.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadShiftsCmd(), m.loadOptionsCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case shiftsLoadedMsg:
		if msg.err != nil {
			// Load failures are not blocking: render whatever we have.
			m.logger.Warn().Err(msg.err).Msg("failed to load shifts")
			m.setError("failed to load shifts")
			return m, nil
		}
		m.shifts = msg.shifts
		m.reproject()
		return m, nil

	case optionsLoadedMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Msg("failed to load lookup lists")
			return m, nil
		}
		m.names = msg.names
		m.shiftTypes = msg.types
		return m, nil

	case moveResultMsg:
		if msg.err != nil {
			// Revert the optimistic move; log only, no notification.
			m.logger.Warn().Err(msg.err).Int64("shift_id", msg.id).Msg("failed to reschedule shift")
			m.setShiftDate(msg.id, msg.from)
			m.reproject()
			return m, nil
		}
		return m, m.loadShiftsCmd()

	case exportDoneMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("export failed")
			m.setError("export failed")
			return m, nil
		}
		m.setStatus("exported " + msg.path)
		return m, nil
	}

	if m.editor != nil {
		return m.updateEditor(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleCalendarKey(key)
	}
	return m, nil
}

func (m Model) handleCalendarKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "left", "h":
		return m.moveCursor(0, -1), nil
	case "right", "l":
		return m.moveCursor(0, 1), nil
	case "up", "k":
		return m.moveCursor(0, -7), nil
	case "down", "j":
		return m.moveCursor(0, 7), nil
	case "[":
		m.month = m.month.AddDate(0, -1, 0)
		m.cursor = m.month
		m.eventIdx = 0
		return m, nil
	case "]":
		m.month = m.month.AddDate(0, 1, 0)
		m.cursor = m.month
		m.eventIdx = 0
		return m, nil
	case "g":
		now := time.Now()
		m.cursor = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		m.month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		m.eventIdx = 0
		return m, nil

	case "tab":
		if events := m.cursorEvents(); len(events) > 0 {
			m.eventIdx = (m.eventIdx + 1) % len(events)
		}
		return m, nil

	case "enter":
		if m.move != nil {
			return m.confirmMove()
		}
		return m.openEditor()

	case "m":
		if m.move != nil {
			return m.confirmMove()
		}
		if events := m.cursorEvents(); len(events) > 0 && m.eventIdx < len(events) {
			ev := events[m.eventIdx]
			m.move = &moveState{event: ev, from: ev.Start}
			m.setStatus("moving " + ev.Title + " — enter to drop, esc to cancel")
		}
		return m, nil

	case "esc":
		if m.move != nil {
			m.move = nil
			m.setStatus("")
		}
		return m, nil

	case "n":
		m.filter.NameID = nextFilterID(filterNameIDs(m.names), m.filter.NameID)
		m.eventIdx = 0
		m.reproject()
		return m, nil
	case "t":
		m.filter.ShiftTypeID = nextFilterID(filterTypeIDs(m.shiftTypes), m.filter.ShiftTypeID)
		m.eventIdx = 0
		m.reproject()
		return m, nil

	case "r":
		m.setStatus("reloading...")
		return m, tea.Batch(m.loadShiftsCmd(), m.loadOptionsCmd())

	case "x":
		month := m.month.Format("2006-01")
		path := filepath.Join(m.exportDir, fmt.Sprintf("shifts-%s.xlsx", month))
		filtered := make([]model.ShiftWithDetails, 0, len(m.events))
		for _, e := range m.events {
			filtered = append(filtered, e.Shift)
		}
		return m, m.exportCmd(filtered, month, path)
	}
	return m, nil
}

func (m Model) moveCursor(months, days int) Model {
	m.cursor = m.cursor.AddDate(0, months, days)
	if m.cursor.Month() != m.month.Month() || m.cursor.Year() != m.month.Year() {
		m.month = time.Date(m.cursor.Year(), m.cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	m.eventIdx = 0
	return m
}

func (m Model) cursorEvents() []projection.Event {
	return m.byDate[m.cursor.Format("2006-01-02")]
}

// openEditor opens the dialog: edit mode when the cursor sits on an event,
// create mode for the cursor's date otherwise.
func (m Model) openEditor() (tea.Model, tea.Cmd) {
	var form *editor.Form
	if events := m.cursorEvents(); len(events) > 0 && m.eventIdx < len(events) {
		form = editor.NewEdit(events[m.eventIdx].Shift)
	} else {
		form = editor.NewCreate(m.cursor.Format("2006-01-02"))
	}
	em := newEditorModel(form)
	m.editor = &em
	m.setStatus("")
	return m, m.editorOptionsCmd()
}

// confirmMove drops the moving event on the cursor date: the grid is updated
// optimistically and the update request goes out; a failure reverts the grid.
func (m Model) confirmMove() (tea.Model, tea.Cmd) {
	mv := m.move
	m.move = nil
	m.setStatus("")
	target := m.cursor.Format("2006-01-02")
	if target == mv.from {
		return m, nil
	}
	m.setShiftDate(mv.event.Shift.ID, target)
	m.reproject()
	return m, m.moveShiftCmd(mv.event.Shift.ID, mv.from, target)
}

func (m *Model) setShiftDate(id int64, date string) {
	for i := range m.shifts {
		if m.shifts[i].ID == id {
			m.shifts[i].Date = date
			return
		}
	}
}

func (m *Model) reproject() {
	m.events = projection.Project(m.shifts, m.filter)
	m.byDate = projection.GroupByDate(m.events)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m Model) View() string {
	if m.editor != nil {
		return centerDialog(m.editor.View(m.styles), m.width, m.height)
	}

	title := m.styles.Title.Render("Shift Calendar — " + m.month.Format("January 2006"))
	filters := m.styles.FilterBar.Render(fmt.Sprintf("name: %s · type: %s", m.nameFilterLabel(), m.typeFilterLabel()))

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = m.styles.StatusErr.Render(m.status)
		} else {
			status = m.styles.Status.Render(m.status)
		}
	}
	help := m.styles.Help.Render("enter edit/new · tab next event · m move · n/t filter · [/] month · x export · r reload · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		filters,
		m.renderMonth(),
		status,
		help,
	)
}

func (m Model) nameFilterLabel() string {
	if m.filter.NameID == 0 {
		return "all"
	}
	for _, n := range m.names {
		if n.ID == m.filter.NameID {
			return n.Name
		}
	}
	return "all"
}

func (m Model) typeFilterLabel() string {
	if m.filter.ShiftTypeID == 0 {
		return "all"
	}
	for _, t := range m.shiftTypes {
		if t.ID == m.filter.ShiftTypeID {
			return t.Label
		}
	}
	return "all"
}

func filterNameIDs(names []model.UserName) []int64 {
	ids := make([]int64, len(names))
	for i, n := range names {
		ids[i] = n.ID
	}
	return ids
}

func filterTypeIDs(types []model.ShiftType) []int64 {
	ids := make([]int64, len(types))
	for i, t := range types {
		ids[i] = t.ID
	}
	return ids
}

// nextFilterID steps all → first → ... → last → all.
func nextFilterID(ids []int64, current int64) int64 {
	if len(ids) == 0 {
		return 0
	}
	if current == 0 {
		return ids[0]
	}
	for i, id := range ids {
		if id == current {
			if i+1 < len(ids) {
				return ids[i+1]
			}
			return 0
		}
	}
	return 0
}
