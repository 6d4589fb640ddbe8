package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftcal/internal/model"
)

// stubAPI implements API for option fetching tests.
type stubAPI struct {
	names     []model.UserName
	types     []model.ShiftType
	namesErr  error
	typesErr  error
	listCalls int
}

func (s *stubAPI) CreateShift(context.Context, model.ShiftFields) (model.Shift, error) {
	return model.Shift{}, nil
}

func (s *stubAPI) UpdateShift(context.Context, int64, model.ShiftFields) (model.Shift, error) {
	return model.Shift{}, nil
}

func (s *stubAPI) DeleteShift(context.Context, int64) error { return nil }

func (s *stubAPI) ListShiftTypes(context.Context) ([]model.ShiftType, error) {
	s.listCalls++
	return s.types, s.typesErr
}

func (s *stubAPI) CreateShiftType(context.Context, string) (model.ShiftType, error) {
	return model.ShiftType{}, nil
}

func (s *stubAPI) DeleteShiftType(context.Context, int64) error { return nil }

func (s *stubAPI) ListNames(context.Context) ([]model.UserName, error) {
	s.listCalls++
	return s.names, s.namesErr
}

func (s *stubAPI) CreateName(context.Context, string) (model.UserName, error) {
	return model.UserName{}, nil
}

func (s *stubAPI) DeleteName(context.Context, int64) error { return nil }

func TestFetchOptions(t *testing.T) {
	api := &stubAPI{
		names: []model.UserName{{ID: 1, Name: "Sato"}},
		types: []model.ShiftType{{ID: 2, Label: "Night"}},
	}

	names, types, err := FetchOptions(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, api.names, names)
	assert.Equal(t, api.types, types)
	assert.Equal(t, 2, api.listCalls)
}

func TestFetchOptionsError(t *testing.T) {
	api := &stubAPI{namesErr: errors.New("http 500")}

	_, _, err := FetchOptions(context.Background(), api)
	assert.Error(t, err)
}

func TestNewEditTruncatesSeconds(t *testing.T) {
	form := NewEdit(model.ShiftWithDetails{
		Shift: model.Shift{
			ID:          7,
			Date:        "2024-05-02",
			StartTime:   "09:00:00",
			EndTime:     "17:30:00",
			ShiftTypeID: 2,
			NameID:      3,
		},
	})

	assert.Equal(t, ModeEdit, form.Mode)
	assert.Equal(t, int64(7), form.ShiftID)
	assert.Equal(t, "09:00", form.StartTime)
	assert.Equal(t, "17:30", form.EndTime)
	assert.Equal(t, int64(2), form.ShiftTypeID)
	assert.Equal(t, int64(3), form.NameID)
}

func TestNewEditKeepsShortTimes(t *testing.T) {
	form := NewEdit(model.ShiftWithDetails{
		Shift: model.Shift{ID: 1, Date: "2024-05-02", StartTime: "09:00"},
	})
	assert.Equal(t, "09:00", form.StartTime)
	assert.Equal(t, "", form.EndTime)
}

func TestNewCreate(t *testing.T) {
	form := NewCreate("2024-05-10")
	assert.Equal(t, ModeCreate, form.Mode)
	assert.Equal(t, "2024-05-10", form.Date)
	assert.Empty(t, form.StartTime)
	assert.Zero(t, form.NameID)
}

func TestMissing(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want []string
	}{
		{"all empty", Form{}, []string{"date", "name", "shift type"}},
		{"date only", Form{Date: "2024-05-10"}, []string{"name", "shift type"}},
		{"no shift type", Form{Date: "2024-05-10", NameID: 1}, []string{"shift type"}},
		{"complete", Form{Date: "2024-05-10", NameID: 1, ShiftTypeID: 2}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.form.Missing())
		})
	}
}

func TestPayload(t *testing.T) {
	form := Form{Date: "2024-05-01", StartTime: "09:00", EndTime: "17:00", ShiftTypeID: 2, NameID: 3}

	assert.Equal(t, model.ShiftFields{
		"date":          "2024-05-01",
		"starttime":     "09:00",
		"endtime":       "17:00",
		"shift_type_id": int64(2),
		"name_id":       int64(3),
	}, form.Payload())
}

func TestApplyNameCreated(t *testing.T) {
	form := NewCreate("2024-05-01")
	form.SetOptions([]model.UserName{{ID: 1, Name: "Sato"}}, nil)
	form.AddingName = true
	form.NewName = "Suzuki"

	form.ApplyNameCreated(model.UserName{ID: 5, Name: "Suzuki"})

	assert.Len(t, form.Names, 2)
	assert.Equal(t, int64(5), form.NameID)
	assert.False(t, form.AddingName)
	assert.Empty(t, form.NewName)
}

func TestApplyNameDeleted(t *testing.T) {
	form := NewCreate("2024-05-01")
	form.SetOptions([]model.UserName{{ID: 1, Name: "Sato"}, {ID: 2, Name: "Suzuki"}}, nil)
	form.NameID = 1

	form.ApplyNameDeleted(1)

	assert.Equal(t, []model.UserName{{ID: 2, Name: "Suzuki"}}, form.Names)
	assert.Zero(t, form.NameID)
}

func TestApplyShiftTypeCreatedAndDeleted(t *testing.T) {
	form := NewCreate("2024-05-01")
	form.AddingShiftType = true

	form.ApplyShiftTypeCreated(model.ShiftType{ID: 9, Label: "Late"})
	assert.Equal(t, int64(9), form.ShiftTypeID)
	assert.False(t, form.AddingShiftType)

	form.ApplyShiftTypeDeleted(9)
	assert.Empty(t, form.ShiftTypes)
	assert.Zero(t, form.ShiftTypeID)
}

func TestCycleName(t *testing.T) {
	form := NewCreate("2024-05-01")
	form.SetOptions([]model.UserName{{ID: 1}, {ID: 2}, {ID: 3}}, nil)

	form.CycleName(1)
	assert.Equal(t, int64(1), form.NameID)
	form.CycleName(1)
	assert.Equal(t, int64(2), form.NameID)
	form.CycleName(-1)
	assert.Equal(t, int64(1), form.NameID)
	form.CycleName(-1)
	assert.Zero(t, form.NameID) // back to no selection
	form.CycleName(-1)
	assert.Equal(t, int64(3), form.NameID) // wraps to last
}

func TestSelectedLabels(t *testing.T) {
	form := NewCreate("2024-05-01")
	form.SetOptions(
		[]model.UserName{{ID: 1, Name: "Sato"}},
		[]model.ShiftType{{ID: 2, Label: "Night"}},
	)

	assert.Empty(t, form.SelectedName())
	form.NameID = 1
	assert.Equal(t, "Sato", form.SelectedName())

	form.ShiftTypeID = 2
	assert.Equal(t, "Night", form.SelectedShiftType())
}
