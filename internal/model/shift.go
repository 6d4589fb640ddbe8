// Package model defines the wire-level data types of the shift store.
package model

// Shift is one scheduled work assignment as stored remotely.
// Times are free-form HH:MM[:SS] strings and may be blank; date is always
// present as YYYY-MM-DD.
type Shift struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	StartTime   string `json:"starttime"`
	EndTime     string `json:"endtime"`
	ShiftTypeID int64  `json:"shift_type_id"`
	NameID      int64  `json:"name_id"`
}

// ShiftType is a reusable shift category label.
type ShiftType struct {
	ID    int64  `json:"id"`
	Label string `json:"shift_type"`
}

// UserName is a reusable person label.
type UserName struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ShiftWithDetails is a Shift with its lookup values resolved by the server.
// The resolved objects are display-only and may be nil.
type ShiftWithDetails struct {
	Shift
	ShiftType *ShiftType `json:"shift_type,omitempty"`
	Name      *UserName  `json:"name,omitempty"`
}

// ShiftFields is a sparse set of shift attributes keyed by wire field name,
// used for create and partial-update payloads.
type ShiftFields map[string]any

// NewShiftFields assembles a full field set for shift creation.
func NewShiftFields(date, start, end string, shiftTypeID, nameID int64) ShiftFields {
	return ShiftFields{
		"date":          date,
		"starttime":     start,
		"endtime":       end,
		"shift_type_id": shiftTypeID,
		"name_id":       nameID,
	}
}
