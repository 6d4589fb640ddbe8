package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftcal/internal/model"
)

// fakeAPI records calls and can be told to fail specific operations.
type fakeAPI struct {
	shifts []model.ShiftWithDetails
	names  []model.UserName
	types  []model.ShiftType

	createShiftCalls int
	updateCalls      []updateCall
	deleteNameCalls  int

	failUpdate     error
	failDeleteName error
}

type updateCall struct {
	id     int64
	fields model.ShiftFields
}

func (f *fakeAPI) ListShifts(context.Context) ([]model.ShiftWithDetails, error) {
	return f.shifts, nil
}

func (f *fakeAPI) CreateShift(_ context.Context, fields model.ShiftFields) (model.Shift, error) {
	f.createShiftCalls++
	return model.Shift{ID: 100}, nil
}

func (f *fakeAPI) UpdateShift(_ context.Context, id int64, fields model.ShiftFields) (model.Shift, error) {
	f.updateCalls = append(f.updateCalls, updateCall{id: id, fields: fields})
	if f.failUpdate != nil {
		return model.Shift{}, f.failUpdate
	}
	return model.Shift{ID: id}, nil
}

func (f *fakeAPI) DeleteShift(context.Context, int64) error { return nil }

func (f *fakeAPI) ListShiftTypes(context.Context) ([]model.ShiftType, error) {
	return f.types, nil
}

func (f *fakeAPI) CreateShiftType(_ context.Context, label string) (model.ShiftType, error) {
	return model.ShiftType{ID: 50, Label: label}, nil
}

func (f *fakeAPI) DeleteShiftType(context.Context, int64) error { return nil }

func (f *fakeAPI) ListNames(context.Context) ([]model.UserName, error) {
	return f.names, nil
}

func (f *fakeAPI) CreateName(_ context.Context, name string) (model.UserName, error) {
	return model.UserName{ID: 60, Name: name}, nil
}

func (f *fakeAPI) DeleteName(context.Context, int64) error {
	f.deleteNameCalls++
	return f.failDeleteName
}

func testShifts() []model.ShiftWithDetails {
	return []model.ShiftWithDetails{
		{
			Shift:     model.Shift{ID: 5, Date: "2024-05-01", StartTime: "09:00:00", EndTime: "17:30:00", ShiftTypeID: 2, NameID: 3},
			ShiftType: &model.ShiftType{ID: 2, Label: "Night"},
			Name:      &model.UserName{ID: 3, Name: "Sato"},
		},
		{
			Shift:     model.Shift{ID: 6, Date: "2024-05-02", ShiftTypeID: 1, NameID: 4},
			ShiftType: &model.ShiftType{ID: 1, Label: "Day"},
			Name:      &model.UserName{ID: 4, Name: "Suzuki"},
		},
	}
}

func testOptions() ([]model.UserName, []model.ShiftType) {
	return []model.UserName{{ID: 3, Name: "Sato"}, {ID: 4, Name: "Suzuki"}},
		[]model.ShiftType{{ID: 1, Label: "Day"}, {ID: 2, Label: "Night"}}
}

// newTestModel returns a loaded model anchored on May 2024.
func newTestModel(api *fakeAPI) Model {
	m := New(api, zerolog.Nop(), ".")
	m.month = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	m.cursor = m.month

	names, types := testOptions()
	m.names = names
	m.shiftTypes = types
	m.shifts = api.shifts
	m.reproject()
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewRendersMonthAndEvents(t *testing.T) {
	m := newTestModel(&fakeAPI{shifts: testShifts()})

	view := m.View()
	assert.Contains(t, view, "May 2024")
	assert.Contains(t, view, "Sato - Night")
	assert.Contains(t, view, "Suzuki - Day")
	assert.Contains(t, view, "name: all")
}

func TestNameFilterCyclesAndProjects(t *testing.T) {
	m := newTestModel(&fakeAPI{shifts: testShifts()})

	updated, _ := m.Update(keyMsg("n"))
	m = updated.(Model)
	assert.Equal(t, int64(3), m.filter.NameID)
	assert.Len(t, m.events, 1)
	assert.Contains(t, m.View(), "name: Sato")

	updated, _ = m.Update(keyMsg("n"))
	m = updated.(Model)
	assert.Equal(t, int64(4), m.filter.NameID)

	updated, _ = m.Update(keyMsg("n"))
	m = updated.(Model)
	assert.Zero(t, m.filter.NameID)
	assert.Len(t, m.events, 2)
}

func TestEnterOnEmptyDayOpensCreateEditor(t *testing.T) {
	m := newTestModel(&fakeAPI{shifts: testShifts()})
	m.cursor = time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)

	require.NotNil(t, m.editor)
	assert.NotNil(t, cmd) // fresh lookup fetch on every open
	assert.Equal(t, "2024-05-10", m.editor.form.Date)
	assert.Contains(t, m.editor.View(m.styles), "New Shift")
}

func TestSubmitWithoutNameIsRejectedLocally(t *testing.T) {
	api := &fakeAPI{shifts: testShifts()}
	m := newTestModel(api)
	m.cursor = time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)
	names, types := testOptions()
	updated, _ = m.Update(editorOptionsMsg{names: names, types: types})
	m = updated.(Model)

	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)

	assert.Nil(t, cmd) // no network call issued
	assert.Zero(t, api.createShiftCalls)
	require.NotNil(t, m.editor)
	assert.Contains(t, m.editor.status, "required")
	assert.Contains(t, m.editor.status, "name")
}

func TestEnterOnEventOpensEditPrefilled(t *testing.T) {
	m := newTestModel(&fakeAPI{shifts: testShifts()})
	m.cursor = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)

	require.NotNil(t, m.editor)
	assert.Equal(t, int64(5), m.editor.form.ShiftID)
	assert.Equal(t, "09:00", m.editor.form.StartTime)
	assert.Equal(t, "17:30", m.editor.form.EndTime)
	assert.Equal(t, "09:00", m.editor.start.Value())
	assert.Equal(t, "17:30", m.editor.end.Value())
	assert.Contains(t, m.editor.View(m.styles), "Edit Shift")
}

func TestMoveIssuesDateUpdateAndRevertsOnFailure(t *testing.T) {
	api := &fakeAPI{shifts: testShifts(), failUpdate: assertErr}
	m := newTestModel(api)
	m.cursor = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	// Pick up the event, move a week later, drop it.
	updated, _ := m.Update(keyMsg("m"))
	m = updated.(Model)
	require.NotNil(t, m.move)

	m.cursor = time.Date(2024, time.May, 8, 0, 0, 0, 0, time.UTC)
	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)
	require.NotNil(t, cmd)

	// Grid moved optimistically.
	assert.Len(t, m.byDate["2024-05-08"], 1)
	assert.Empty(t, m.byDate["2024-05-01"])

	msg := cmd()
	result, ok := msg.(moveResultMsg)
	require.True(t, ok)
	require.Len(t, api.updateCalls, 1)
	assert.Equal(t, int64(5), api.updateCalls[0].id)
	assert.Equal(t, model.ShiftFields{"date": "2024-05-08"}, api.updateCalls[0].fields)
	require.Error(t, result.err)

	// Failure reverts the visual move.
	updated, _ = m.Update(result)
	m = updated.(Model)
	assert.Empty(t, m.byDate["2024-05-08"])
	assert.Len(t, m.byDate["2024-05-01"], 1)
}

func TestMoveSuccessTriggersReload(t *testing.T) {
	api := &fakeAPI{shifts: testShifts()}
	m := newTestModel(api)
	m.cursor = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	updated, _ := m.Update(keyMsg("m"))
	m = updated.(Model)
	m.cursor = time.Date(2024, time.May, 8, 0, 0, 0, 0, time.UTC)
	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)

	result := cmd().(moveResultMsg)
	require.NoError(t, result.err)

	_, reload := m.Update(result)
	require.NotNil(t, reload) // full re-fetch after the mutation
	_, ok := reload().(shiftsLoadedMsg)
	assert.True(t, ok)
}

func TestMoveCancelledWithEsc(t *testing.T) {
	m := newTestModel(&fakeAPI{shifts: testShifts()})
	m.cursor = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	updated, _ := m.Update(keyMsg("m"))
	m = updated.(Model)
	require.NotNil(t, m.move)

	updated, _ = m.Update(keyMsg("esc"))
	m = updated.(Model)
	assert.Nil(t, m.move)
}

func TestFailedNameDeleteLeavesListAndSelection(t *testing.T) {
	api := &fakeAPI{shifts: testShifts(), failDeleteName: assertErr}
	m := newTestModel(api)
	m.cursor = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	updated, _ := m.Update(keyMsg("enter")) // edit shift 5, name 3 selected
	m = updated.(Model)
	names, types := testOptions()
	updated, _ = m.Update(editorOptionsMsg{names: names, types: types})
	m = updated.(Model)

	// Focus the name field and request deletion.
	updated, _ = m.Update(keyMsg("tab"))
	m = updated.(Model)
	require.Equal(t, fieldName, m.editor.focus)
	updated, _ = m.Update(keyMsg("d"))
	m = updated.(Model)
	require.Equal(t, confirmName, m.editor.confirm)

	updated, cmd := m.Update(keyMsg("y"))
	m = updated.(Model)
	require.NotNil(t, cmd)

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	assert.Equal(t, 1, api.deleteNameCalls)
	assert.Len(t, m.editor.form.Names, 2) // list unchanged
	assert.Equal(t, int64(3), m.editor.form.NameID)
	assert.Contains(t, m.editor.status, "used by existing shifts")
}

func TestSavedShiftClosesEditorAndReloads(t *testing.T) {
	m := newTestModel(&fakeAPI{shifts: testShifts()})
	m.cursor = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)
	require.NotNil(t, m.editor)

	updated, reload := m.Update(shiftSavedMsg{action: "update"})
	m = updated.(Model)

	assert.Nil(t, m.editor)
	assert.Equal(t, "saved", m.status)
	require.NotNil(t, reload)
}

func TestFailedSaveKeepsEditorOpen(t *testing.T) {
	m := newTestModel(&fakeAPI{shifts: testShifts()})
	m.cursor = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)

	updated, cmd := m.Update(shiftSavedMsg{action: "update", err: assertErr})
	m = updated.(Model)

	assert.Nil(t, cmd)
	require.NotNil(t, m.editor)
	assert.Contains(t, m.editor.status, "failed to save")
}

func TestAddNameFlow(t *testing.T) {
	api := &fakeAPI{shifts: testShifts()}
	m := newTestModel(api)
	m.cursor = time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)
	names, types := testOptions()
	updated, _ = m.Update(editorOptionsMsg{names: names, types: types})
	m = updated.(Model)

	updated, _ = m.Update(keyMsg("tab"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("a"))
	m = updated.(Model)
	require.True(t, m.editor.form.AddingName)

	for _, r := range "Ito" {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)
	require.NotNil(t, cmd)

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	assert.False(t, m.editor.form.AddingName)
	assert.Equal(t, int64(60), m.editor.form.NameID)
	assert.Equal(t, "Ito", m.editor.form.SelectedName())
}

func TestAddNameRejectsEmptyText(t *testing.T) {
	api := &fakeAPI{shifts: testShifts()}
	m := newTestModel(api)
	m.cursor = time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("tab"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("a"))
	m = updated.(Model)

	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.True(t, m.editor.form.AddingName) // sub-mode stays open
	assert.Contains(t, m.editor.status, "empty")
}

func TestLoadFailureIsNotBlocking(t *testing.T) {
	m := newTestModel(&fakeAPI{})

	updated, cmd := m.Update(shiftsLoadedMsg{err: assertErr})
	m = updated.(Model)

	assert.Nil(t, cmd)
	view := m.View()
	assert.Contains(t, view, "May 2024") // grid still renders
	assert.True(t, strings.Contains(view, "failed to load shifts"))
}

var assertErr = &stubError{}

type stubError struct{}

func (*stubError) Error() string { return "http 500" }
