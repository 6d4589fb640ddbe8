// Package projection turns stored shift records into display-ready calendar
// events, applying the current name and shift-type filters.
package projection

import (
	"strconv"

	"shiftcal/internal/model"
)

// Filter restricts which shifts are projected. A zero id means the dimension
// is unfiltered.
type Filter struct {
	NameID      int64
	ShiftTypeID int64
}

// Event is one displayable calendar entry. Events are ephemeral: they are
// regenerated from the shift collection on every data or filter change and
// never persisted.
type Event struct {
	ID     string
	Title  string
	Start  string // YYYY-MM-DD
	AllDay bool
	Shift  model.ShiftWithDetails
}

// Project filters shifts and maps each survivor to an Event. It never
// mutates its input and returns an empty slice when nothing matches.
func Project(shifts []model.ShiftWithDetails, f Filter) []Event {
	events := make([]Event, 0, len(shifts))
	for _, s := range shifts {
		if f.NameID != 0 && s.NameID != f.NameID {
			continue
		}
		if f.ShiftTypeID != 0 && s.ShiftTypeID != f.ShiftTypeID {
			continue
		}
		events = append(events, Event{
			ID:     strconv.FormatInt(s.ID, 10),
			Title:  title(s),
			Start:  s.Date,
			AllDay: true,
			Shift:  s,
		})
	}
	return events
}

// GroupByDate indexes events by their start date for grid rendering.
func GroupByDate(events []Event) map[string][]Event {
	byDate := make(map[string][]Event, len(events))
	for _, e := range events {
		byDate[e.Start] = append(byDate[e.Start], e)
	}
	return byDate
}

func title(s model.ShiftWithDetails) string {
	name := "Unknown"
	if s.Name != nil && s.Name.Name != "" {
		name = s.Name.Name
	}
	label := "Shift"
	if s.ShiftType != nil && s.ShiftType.Label != "" {
		label = s.ShiftType.Label
	}
	return name + " - " + label
}
