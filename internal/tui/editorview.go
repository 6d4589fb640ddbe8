package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"shiftcal/internal/editor"
)

// Editor field focus order.
const (
	fieldDate = iota
	fieldName
	fieldType
	fieldStart
	fieldEnd
	fieldCount
)

// Confirmation targets for destructive actions.
const (
	confirmShift = "shift"
	confirmName  = "name"
	confirmType  = "type"
)

// editorModel wraps an editor.Form with the input widgets and focus state of
// the modal dialog.
type editorModel struct {
	form  *editor.Form
	focus int

	date     textinput.Model
	start    textinput.Model
	end      textinput.Model
	newValue textinput.Model

	confirm string
	busy    bool
	status  string
}

func newEditorModel(form *editor.Form) editorModel {
	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.SetValue(form.Date)
	date.Focus()

	start := textinput.New()
	start.Placeholder = "HH:MM"
	start.CharLimit = 5
	start.SetValue(form.StartTime)

	end := textinput.New()
	end.Placeholder = "HH:MM"
	end.CharLimit = 5
	end.SetValue(form.EndTime)

	newValue := textinput.New()
	newValue.Placeholder = "new value"
	newValue.CharLimit = 64

	return editorModel{
		form:     form,
		date:     date,
		start:    start,
		end:      end,
		newValue: newValue,
	}
}

// syncForm copies the text inputs back into the form before validation.
func (e *editorModel) syncForm() {
	e.form.Date = strings.TrimSpace(e.date.Value())
	e.form.StartTime = strings.TrimSpace(e.start.Value())
	e.form.EndTime = strings.TrimSpace(e.end.Value())
}

func (e *editorModel) setFocus(focus int) {
	e.focus = ((focus % fieldCount) + fieldCount) % fieldCount
	e.date.Blur()
	e.start.Blur()
	e.end.Blur()
	switch e.focus {
	case fieldDate:
		e.date.Focus()
	case fieldStart:
		e.start.Focus()
	case fieldEnd:
		e.end.Focus()
	}
}

func (e *editorModel) enterAddMode(field int) {
	e.newValue.SetValue("")
	e.newValue.Focus()
	if field == fieldName {
		e.form.AddingName = true
	} else {
		e.form.AddingShiftType = true
	}
}

func (e *editorModel) leaveAddMode() {
	e.form.AddingName = false
	e.form.AddingShiftType = false
	e.newValue.Blur()
}

func (e editorModel) adding() bool {
	return e.form.AddingName || e.form.AddingShiftType
}

// View renders the modal dialog.
func (e editorModel) View(st Styles) string {
	title := "New Shift"
	if e.form.Mode == editor.ModeEdit {
		title = "Edit Shift"
	}

	var b strings.Builder
	b.WriteString(st.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(e.fieldLine(st, fieldDate, "Date", e.date.View()))
	b.WriteString(e.selectLine(st, fieldName, "Name", e.form.SelectedName(), e.form.AddingName))
	b.WriteString(e.selectLine(st, fieldType, "Shift type", e.form.SelectedShiftType(), e.form.AddingShiftType))
	b.WriteString(e.fieldLine(st, fieldStart, "Start", e.start.View()))
	b.WriteString(e.fieldLine(st, fieldEnd, "End", e.end.View()))

	b.WriteString("\n")
	switch {
	case e.busy:
		b.WriteString(st.Status.Render("working..."))
	case e.confirm == confirmShift:
		b.WriteString(st.StatusErr.Render("delete this shift? y/n"))
	case e.confirm == confirmName:
		b.WriteString(st.StatusErr.Render("delete selected name? it may be in use. y/n"))
	case e.confirm == confirmType:
		b.WriteString(st.StatusErr.Render("delete selected shift type? it may be in use. y/n"))
	case e.status != "":
		b.WriteString(st.StatusErr.Render(e.status))
	}

	b.WriteString("\n\n")
	help := "enter save · tab next · ←/→ choose · a add value · d delete value · esc cancel"
	if e.form.Mode == editor.ModeEdit {
		help += " · ctrl+d delete shift"
	}
	if e.adding() {
		help = "enter add · esc back"
	}
	b.WriteString(st.Help.Render(help))

	return st.Dialog.Render(b.String())
}

func (e editorModel) fieldLine(st Styles, field int, label, input string) string {
	return e.label(st, field, label) + input + "\n"
}

func (e editorModel) selectLine(st Styles, field int, label, selected string, adding bool) string {
	if adding {
		return e.label(st, field, label) + e.newValue.View() + "\n"
	}
	if selected == "" {
		selected = "(none selected)"
	}
	return e.label(st, field, label) + selected + "\n"
}

func (e editorModel) label(st Styles, field int, label string) string {
	text := fmt.Sprintf("%-11s", label+":")
	if e.focus == field && !e.busy {
		return st.FieldFocus.Render("> " + text)
	}
	return st.FieldLabel.Render("  " + text)
}

func centerDialog(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
