// Package editor holds the event-editing form state. It is not a
// traditional multi-state machine: the editable frequency field drives two
// dependent pieces of state (the weekday set and the end-date picker's
// visibility), and the save step turns the form into the wire payload.
package editor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"famcal/src-client/grid"
	"famcal/src-client/model"
	"famcal/src-client/recur"
	"famcal/src-client/view"
)

// Editor is the form state for creating or editing one event. Independent
// fields are plain; the recurrence fields must go through SetFrequency and
// ToggleWeekday so the dependent-state invariants hold.
type Editor struct {
	ID          string
	Title       string
	Description string
	StartDate   grid.Date
	StartTime   string // HH:MM
	EndDate     grid.Date
	EndTime     string // HH:MM
	AllDay      bool
	CategoryID  string

	frequency     recur.Frequency
	interval      int
	weekdays      []recur.Weekday
	recurrenceEnd grid.Date
}

// New seeds an empty editor from a clicked cell: one-hour slot starting at
// the seed hour, no recurrence. The 23:00 cell rolls the end over to
// midnight of the next day.
func New(seed view.EditorSeed) *Editor {
	e := &Editor{
		StartDate: seed.Date,
		StartTime: fmt.Sprintf("%02d:00", seed.Hour),
		EndDate:   seed.Date,
		EndTime:   fmt.Sprintf("%02d:00", seed.Hour+1),
		frequency: recur.FreqNone,
	}
	if seed.Hour >= 23 {
		e.EndDate = seed.Date.AddDays(1)
		e.EndTime = "00:00"
	}
	return e
}

// Load prefills the editor from an existing event so a later save
// reproduces the same recurrence selection.
func Load(ev *model.Event, loc *time.Location) *Editor {
	start := ev.StartTime.In(loc)
	end := ev.EndTime.In(loc)
	e := &Editor{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		StartDate:   grid.DateOf(start),
		StartTime:   start.Format("15:04"),
		EndDate:     grid.DateOf(end),
		EndTime:     end.Format("15:04"),
		AllDay:      ev.AllDay,
		CategoryID:  ev.CategoryID,
		frequency:   recur.FreqNone,
	}
	if p := ev.RecurrencePattern; p != nil {
		e.frequency = p.Frequency
		e.interval = p.Interval
		e.weekdays = append([]recur.Weekday(nil), p.Weekdays...)
	}
	if ev.RecurrenceEnd != "" {
		if d, err := grid.ParseDate(ev.RecurrenceEnd); err == nil {
			e.recurrenceEnd = d
		}
	}
	return e
}

// Frequency returns the current recurrence frequency selection.
func (e *Editor) Frequency() recur.Frequency {
	return e.frequency
}

// SetFrequency switches the recurrence frequency. The weekday set is only
// meaningful for WEEKLY, so it is cleared whenever the selection moves away.
func (e *Editor) SetFrequency(f recur.Frequency) {
	e.frequency = f
	if f != recur.FreqWeekly {
		e.weekdays = nil
	}
}

// SetInterval sets the repeat-every-N-periods multiplier; values below 1
// mean "every period".
func (e *Editor) SetInterval(n int) {
	if n < 1 {
		n = 0
	}
	e.interval = n
}

// Interval returns the current interval selection (0 = every period).
func (e *Editor) Interval() int {
	return e.interval
}

// ToggleWeekday adds or removes a weekday from the WEEKLY selection. It is
// a no-op for any other frequency.
func (e *Editor) ToggleWeekday(wd recur.Weekday) {
	if e.frequency != recur.FreqWeekly {
		return
	}
	for i, existing := range e.weekdays {
		if existing == wd {
			e.weekdays = append(e.weekdays[:i], e.weekdays[i+1:]...)
			return
		}
	}
	e.weekdays = append(e.weekdays, wd)
}

// Weekdays returns the current WEEKLY weekday selection.
func (e *Editor) Weekdays() []recur.Weekday {
	return append([]recur.Weekday(nil), e.weekdays...)
}

// SetRecurrenceEnd picks the date-granular series terminator.
func (e *Editor) SetRecurrenceEnd(d grid.Date) {
	e.recurrenceEnd = d
}

// EndDateVisible reports whether the end-date picker shows: any real
// frequency makes it visible.
func (e *Editor) EndDateVisible() bool {
	return e.frequency != recur.FreqNone && e.frequency != ""
}

// CanSave gates the save action; only the title is validated client-side.
// Start-after-end and interval bounds are left to the event source.
func (e *Editor) CanSave() bool {
	return strings.TrimSpace(e.Title) != ""
}

// Draft turns the form into the create payload. The frequency sentinel
// "none" maps to no recurrence pattern at all, and the recurrence end is
// serialized as a date-only string decoupled from the event's timestamps.
func (e *Editor) Draft(loc *time.Location) (model.EventDraft, error) {
	if !e.CanSave() {
		return model.EventDraft{}, fmt.Errorf("(*Editor).Draft: title is blank")
	}
	start, err := combine(e.StartDate, e.StartTime, loc)
	if err != nil {
		return model.EventDraft{}, fmt.Errorf("(*Editor).Draft: invalid start time: %w", err)
	}
	end, err := combine(e.EndDate, e.EndTime, loc)
	if err != nil {
		return model.EventDraft{}, fmt.Errorf("(*Editor).Draft: invalid end time: %w", err)
	}

	draft := model.EventDraft{
		Title:       strings.TrimSpace(e.Title),
		Description: strings.TrimSpace(e.Description),
		StartTime:   start,
		EndTime:     end,
		AllDay:      e.AllDay,
		CategoryID:  e.CategoryID,
	}

	if e.EndDateVisible() {
		pattern := &recur.Pattern{
			Frequency: e.frequency,
			Interval:  e.interval,
			Weekdays:  append([]recur.Weekday(nil), e.weekdays...),
		}
		if _, err := pattern.RRule(start); err != nil {
			return model.EventDraft{}, fmt.Errorf("(*Editor).Draft: %w", err)
		}
		draft.RecurrencePattern = pattern
		if !e.recurrenceEnd.IsZero() {
			draft.RecurrenceEnd = e.recurrenceEnd.String()
		}
	}

	return draft, nil
}

// combine builds a local instant from a calendar date and an HH:MM string.
func combine(d grid.Date, hhmm string, loc *time.Location) (time.Time, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("editor.combine: %q is not HH:MM", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("editor.combine: %q is not HH:MM", hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("editor.combine: %q is not HH:MM", hhmm)
	}
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, loc), nil
}
