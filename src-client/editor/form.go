package editor

import (
	"famcal/src-client/grid"
	"famcal/src-client/recur"
)

// Form is the JSON shape of a submitted editor dialog. Dates are
// yyyy-MM-dd, times are HH:MM; the recurrence fields mirror the dialog
// controls rather than the wire pattern.
type Form struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   grid.Date `json:"start_date"`
	StartTime   string    `json:"start_time"`
	EndDate     grid.Date `json:"end_date"`
	EndTime     string    `json:"end_time"`
	AllDay      bool      `json:"all_day"`
	CategoryID  string    `json:"category_id,omitempty"`

	Frequency     recur.Frequency `json:"frequency,omitempty"`
	Interval      int             `json:"interval,omitempty"`
	Weekdays      []recur.Weekday `json:"weekdays,omitempty"`
	RecurrenceEnd string          `json:"recurrence_end,omitempty"`
}

// FromForm replays a submitted form through the editor state machine, so
// dependent-state invariants apply to raw submissions too: weekdays sent
// alongside a non-WEEKLY frequency are dropped, and an end date without a
// frequency is ignored.
func FromForm(f Form) *Editor {
	e := &Editor{
		Title:       f.Title,
		Description: f.Description,
		StartDate:   f.StartDate,
		StartTime:   f.StartTime,
		EndDate:     f.EndDate,
		EndTime:     f.EndTime,
		AllDay:      f.AllDay,
		CategoryID:  f.CategoryID,
		frequency:   recur.FreqNone,
	}
	if f.Frequency != "" && f.Frequency != recur.FreqNone {
		e.SetFrequency(f.Frequency)
		e.SetInterval(f.Interval)
		for _, wd := range f.Weekdays {
			e.ToggleWeekday(wd)
		}
	}
	if e.EndDateVisible() && f.RecurrenceEnd != "" {
		if d, err := grid.ParseDate(f.RecurrenceEnd); err == nil {
			e.SetRecurrenceEnd(d)
		}
	}
	return e
}
