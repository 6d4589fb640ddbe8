package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"shiftcal/internal/editor"
)

// updateEditor routes messages while the editor dialog is open. Results of
// network operations land here; mutation failures keep the dialog open so
// the user can retry or cancel.
func (m Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	e := m.editor

	switch msg := msg.(type) {
	case editorOptionsMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Msg("failed to load editor lookup lists")
			e.status = "failed to load lookup lists"
			return m, nil
		}
		e.form.SetOptions(msg.names, msg.types)
		return m, nil

	case shiftSavedMsg:
		e.busy = false
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Str("action", msg.action).Msg("shift mutation failed")
			if msg.action == "delete" {
				e.status = "failed to delete shift"
			} else {
				e.status = "failed to save shift"
			}
			return m, nil
		}
		// Saved: close the dialog and re-fetch the full shift set.
		m.editor = nil
		m.setStatus("saved")
		return m, m.loadShiftsCmd()

	case nameCreatedMsg:
		e.busy = false
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("failed to create name")
			e.status = "failed to create name"
			return m, nil
		}
		e.form.ApplyNameCreated(msg.name)
		e.leaveAddMode()
		e.status = ""
		return m, nil

	case nameDeletedMsg:
		e.busy = false
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("failed to delete name")
			e.status = "could not delete name; it may be used by existing shifts"
			return m, nil
		}
		e.form.ApplyNameDeleted(msg.id)
		e.status = ""
		return m, nil

	case typeCreatedMsg:
		e.busy = false
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("failed to create shift type")
			e.status = "failed to create shift type"
			return m, nil
		}
		e.form.ApplyShiftTypeCreated(msg.shiftType)
		e.leaveAddMode()
		e.status = ""
		return m, nil

	case typeDeletedMsg:
		e.busy = false
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("failed to delete shift type")
			e.status = "could not delete shift type; it may be used by existing shifts"
			return m, nil
		}
		e.form.ApplyShiftTypeDeleted(msg.id)
		e.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleEditorKey(msg)
	}
	return m, nil
}

func (m Model) handleEditorKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.editor

	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if e.busy {
		return m, nil
	}

	if e.confirm != "" {
		target := e.confirm
		e.confirm = ""
		if key.String() == "y" {
			e.busy = true
			switch target {
			case confirmShift:
				return m, m.deleteShiftCmd(e.form.ShiftID)
			case confirmName:
				return m, m.deleteNameCmd(e.form.NameID)
			case confirmType:
				return m, m.deleteShiftTypeCmd(e.form.ShiftTypeID)
			}
		}
		return m, nil
	}

	if e.adding() {
		switch key.String() {
		case "esc":
			e.leaveAddMode()
			e.status = ""
			return m, nil
		case "enter":
			label := strings.TrimSpace(e.newValue.Value())
			if label == "" {
				e.status = "value must not be empty"
				return m, nil
			}
			e.busy = true
			if e.form.AddingName {
				e.form.NewName = label
				return m, m.createNameCmd(label)
			}
			e.form.NewShiftType = label
			return m, m.createShiftTypeCmd(label)
		}
		var cmd tea.Cmd
		e.newValue, cmd = e.newValue.Update(key)
		return m, cmd
	}

	switch key.String() {
	case "esc":
		m.editor = nil
		return m, nil
	case "tab", "down":
		e.setFocus(e.focus + 1)
		return m, nil
	case "shift+tab", "up":
		e.setFocus(e.focus - 1)
		return m, nil
	case "enter":
		e.syncForm()
		if missing := e.form.Missing(); len(missing) > 0 {
			e.status = "required: " + strings.Join(missing, ", ")
			return m, nil
		}
		e.busy = true
		if e.form.Mode == editor.ModeEdit {
			return m, m.updateShiftCmd(e.form.ShiftID, e.form.Payload())
		}
		return m, m.createShiftCmd(e.form.Payload())
	case "ctrl+d":
		if e.form.Mode == editor.ModeEdit {
			e.confirm = confirmShift
		}
		return m, nil
	}

	switch e.focus {
	case fieldName:
		switch key.String() {
		case "left":
			e.form.CycleName(-1)
		case "right":
			e.form.CycleName(1)
		case "a":
			e.enterAddMode(fieldName)
		case "d":
			if e.form.NameID != 0 {
				e.confirm = confirmName
			} else {
				e.status = "no name selected"
			}
		}
		return m, nil
	case fieldType:
		switch key.String() {
		case "left":
			e.form.CycleShiftType(-1)
		case "right":
			e.form.CycleShiftType(1)
		case "a":
			e.enterAddMode(fieldType)
		case "d":
			if e.form.ShiftTypeID != 0 {
				e.confirm = confirmType
			} else {
				e.status = "no shift type selected"
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch e.focus {
	case fieldDate:
		e.date, cmd = e.date.Update(key)
	case fieldStart:
		e.start, cmd = e.start.Update(key)
	case fieldEnd:
		e.end, cmd = e.end.Update(key)
	}
	return m, cmd
}
