// Package editor holds the create/edit form state for a single shift,
// including inline management of the name and shift-type lookup lists.
package editor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"shiftcal/internal/model"
)

// API is the slice of the shift store client the editor needs.
type API interface {
	CreateShift(ctx context.Context, fields model.ShiftFields) (model.Shift, error)
	UpdateShift(ctx context.Context, id int64, fields model.ShiftFields) (model.Shift, error)
	DeleteShift(ctx context.Context, id int64) error
	ListShiftTypes(ctx context.Context) ([]model.ShiftType, error)
	CreateShiftType(ctx context.Context, label string) (model.ShiftType, error)
	DeleteShiftType(ctx context.Context, id int64) error
	ListNames(ctx context.Context) ([]model.UserName, error)
	CreateName(ctx context.Context, name string) (model.UserName, error)
	DeleteName(ctx context.Context, id int64) error
}

// FetchOptions loads both lookup lists concurrently and waits for both.
// Called on every editor open; lookup lists are never cached across sessions.
func FetchOptions(ctx context.Context, api API) ([]model.UserName, []model.ShiftType, error) {
	var (
		names []model.UserName
		types []model.ShiftType
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		names, err = api.ListNames(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		types, err = api.ListShiftTypes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return names, types, nil
}

// Mode distinguishes a form creating a new shift from one editing an
// existing record. Fixed for the lifetime of one open/close cycle.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Form is the mutable state of one open editor session. The surface drives
// the network calls and feeds results back through the Apply methods; the
// form itself never patches the shift collection, only its lookup lists.
type Form struct {
	Mode    Mode
	ShiftID int64

	Date        string
	StartTime   string
	EndTime     string
	NameID      int64
	ShiftTypeID int64

	Names      []model.UserName
	ShiftTypes []model.ShiftType

	AddingName      bool
	NewName         string
	AddingShiftType bool
	NewShiftType    string
}

// NewCreate opens a form for a new shift on the clicked date.
func NewCreate(date string) *Form {
	return &Form{Mode: ModeCreate, Date: date}
}

// NewEdit opens a form pre-filled from an existing record. Stored times may
// carry seconds; the form works in HH:MM.
func NewEdit(s model.ShiftWithDetails) *Form {
	return &Form{
		Mode:        ModeEdit,
		ShiftID:     s.ID,
		Date:        s.Date,
		StartTime:   truncateTime(s.StartTime),
		EndTime:     truncateTime(s.EndTime),
		NameID:      s.NameID,
		ShiftTypeID: s.ShiftTypeID,
	}
}

func truncateTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// SetOptions installs freshly fetched lookup lists.
func (f *Form) SetOptions(names []model.UserName, types []model.ShiftType) {
	f.Names = names
	f.ShiftTypes = types
}

// Missing lists the required fields that are still empty. A non-empty result
// means Submit must be rejected locally, before any network call.
func (f *Form) Missing() []string {
	var missing []string
	if f.Date == "" {
		missing = append(missing, "date")
	}
	if f.NameID == 0 {
		missing = append(missing, "name")
	}
	if f.ShiftTypeID == 0 {
		missing = append(missing, "shift type")
	}
	return missing
}

// Payload assembles the wire fields for create or update.
func (f *Form) Payload() model.ShiftFields {
	return model.NewShiftFields(f.Date, f.StartTime, f.EndTime, f.ShiftTypeID, f.NameID)
}

// ApplyNameCreated appends the stored name to the local list, selects it and
// leaves the adding sub-mode.
func (f *Form) ApplyNameCreated(n model.UserName) {
	f.Names = append(f.Names, n)
	f.NameID = n.ID
	f.AddingName = false
	f.NewName = ""
}

// ApplyNameDeleted removes the name locally and clears the selection. Only
// called after the store confirmed the delete.
func (f *Form) ApplyNameDeleted(id int64) {
	out := f.Names[:0]
	for _, n := range f.Names {
		if n.ID != id {
			out = append(out, n)
		}
	}
	f.Names = out
	if f.NameID == id {
		f.NameID = 0
	}
}

// ApplyShiftTypeCreated mirrors ApplyNameCreated for shift types.
func (f *Form) ApplyShiftTypeCreated(t model.ShiftType) {
	f.ShiftTypes = append(f.ShiftTypes, t)
	f.ShiftTypeID = t.ID
	f.AddingShiftType = false
	f.NewShiftType = ""
}

// ApplyShiftTypeDeleted mirrors ApplyNameDeleted for shift types.
func (f *Form) ApplyShiftTypeDeleted(id int64) {
	out := f.ShiftTypes[:0]
	for _, t := range f.ShiftTypes {
		if t.ID != id {
			out = append(out, t)
		}
	}
	f.ShiftTypes = out
	if f.ShiftTypeID == id {
		f.ShiftTypeID = 0
	}
}

// CycleName moves the name selection by delta through the lookup list.
func (f *Form) CycleName(delta int) {
	f.NameID = cycleID(nameIDs(f.Names), f.NameID, delta)
}

// CycleShiftType moves the shift-type selection by delta.
func (f *Form) CycleShiftType(delta int) {
	f.ShiftTypeID = cycleID(typeIDs(f.ShiftTypes), f.ShiftTypeID, delta)
}

// SelectedName returns the label of the currently selected name, if any.
func (f *Form) SelectedName() string {
	for _, n := range f.Names {
		if n.ID == f.NameID {
			return n.Name
		}
	}
	return ""
}

// SelectedShiftType returns the label of the selected shift type, if any.
func (f *Form) SelectedShiftType() string {
	for _, t := range f.ShiftTypes {
		if t.ID == f.ShiftTypeID {
			return t.Label
		}
	}
	return ""
}

func nameIDs(names []model.UserName) []int64 {
	ids := make([]int64, len(names))
	for i, n := range names {
		ids[i] = n.ID
	}
	return ids
}

func typeIDs(types []model.ShiftType) []int64 {
	ids := make([]int64, len(types))
	for i, t := range types {
		ids[i] = t.ID
	}
	return ids
}

// cycleID steps through ids with 0 standing for "no selection" at either end.
func cycleID(ids []int64, current int64, delta int) int64 {
	if len(ids) == 0 {
		return 0
	}
	idx := -1
	for i, id := range ids {
		if id == current {
			idx = i
			break
		}
	}
	idx += delta
	if idx < -1 {
		idx = len(ids) - 1
	}
	if idx >= len(ids) {
		idx = -1
	}
	if idx == -1 {
		return 0
	}
	return ids[idx]
}
