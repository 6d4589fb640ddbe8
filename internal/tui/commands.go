package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"shiftcal/internal/editor"
	"shiftcal/internal/export"
	"shiftcal/internal/metrics"
	"shiftcal/internal/model"
)

type shiftsLoadedMsg struct {
	shifts []model.ShiftWithDetails
	err    error
}

type optionsLoadedMsg struct {
	names []model.UserName
	types []model.ShiftType
	err   error
}

// editorOptionsMsg carries the fresh lookup lists fetched on editor open.
type editorOptionsMsg struct {
	names []model.UserName
	types []model.ShiftType
	err   error
}

// shiftSavedMsg reports the outcome of a create, update or delete issued
// from the editor.
type shiftSavedMsg struct {
	action string
	err    error
}

type nameCreatedMsg struct {
	name model.UserName
	err  error
}

type nameDeletedMsg struct {
	id  int64
	err error
}

type typeCreatedMsg struct {
	shiftType model.ShiftType
	err       error
}

type typeDeletedMsg struct {
	id  int64
	err error
}

// moveResultMsg reports the outcome of a reschedule; from is the date the
// grid must revert to on failure.
type moveResultMsg struct {
	id   int64
	from string
	err  error
}

type exportDoneMsg struct {
	path string
	err  error
}

func (m Model) loadShiftsCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		shifts, err := api.ListShifts(context.Background())
		return shiftsLoadedMsg{shifts: shifts, err: err}
	}
}

func (m Model) loadOptionsCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		names, types, err := editor.FetchOptions(context.Background(), api)
		return optionsLoadedMsg{names: names, types: types, err: err}
	}
}

func (m Model) editorOptionsCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		names, types, err := editor.FetchOptions(context.Background(), api)
		return editorOptionsMsg{names: names, types: types, err: err}
	}
}

func (m Model) createShiftCmd(fields model.ShiftFields) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		if _, err := api.CreateShift(context.Background(), fields); err != nil {
			return shiftSavedMsg{action: "create", err: err}
		}
		metrics.IncShiftMutation("create")
		return shiftSavedMsg{action: "create"}
	}
}

func (m Model) updateShiftCmd(id int64, fields model.ShiftFields) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		if _, err := api.UpdateShift(context.Background(), id, fields); err != nil {
			return shiftSavedMsg{action: "update", err: err}
		}
		metrics.IncShiftMutation("update")
		return shiftSavedMsg{action: "update"}
	}
}

func (m Model) deleteShiftCmd(id int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		if err := api.DeleteShift(context.Background(), id); err != nil {
			return shiftSavedMsg{action: "delete", err: err}
		}
		metrics.IncShiftMutation("delete")
		return shiftSavedMsg{action: "delete"}
	}
}

func (m Model) createNameCmd(label string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		created, err := api.CreateName(context.Background(), label)
		return nameCreatedMsg{name: created, err: err}
	}
}

func (m Model) deleteNameCmd(id int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		return nameDeletedMsg{id: id, err: api.DeleteName(context.Background(), id)}
	}
}

func (m Model) createShiftTypeCmd(label string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		created, err := api.CreateShiftType(context.Background(), label)
		return typeCreatedMsg{shiftType: created, err: err}
	}
}

func (m Model) deleteShiftTypeCmd(id int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		return typeDeletedMsg{id: id, err: api.DeleteShiftType(context.Background(), id)}
	}
}

func (m Model) moveShiftCmd(id int64, from, to string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		_, err := api.UpdateShift(context.Background(), id, model.ShiftFields{"date": to})
		if err == nil {
			metrics.IncShiftMutation("update")
		}
		return moveResultMsg{id: id, from: from, err: err}
	}
}

func (m Model) exportCmd(shifts []model.ShiftWithDetails, month, path string) tea.Cmd {
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: export.WriteMonth(shifts, month, path)}
	}
}
