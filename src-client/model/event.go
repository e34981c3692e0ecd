package model

import (
	"fmt"
	"time"

	"famcal/src-client/recur"
)

// Member is the owning family member, denormalized onto every event so the
// views never need a join.
type Member struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryRef is the denormalized name/color pair carried on events.
type CategoryRef struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Event is a calendar event as returned by the event source. When the event
// is a materialized occurrence of a recurring series, IsRecurring is true
// and OccurrenceDate identifies the local calendar day this instance
// belongs to; grid placement must use it instead of StartTime's date.
type Event struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     time.Time    `json:"end_time"`
	AllDay      bool         `json:"all_day"`
	Member      Member       `json:"member"`
	Category    *CategoryRef `json:"category,omitempty"`
	CategoryID  string       `json:"category_id,omitempty"`

	IsRecurring    bool   `json:"is_recurring,omitempty"`
	OccurrenceDate string `json:"occurrence_date,omitempty"`

	RecurrencePattern *recur.Pattern `json:"recurrence_pattern,omitempty"`
	RecurrenceEnd     string         `json:"recurrence_end,omitempty"`
}

// Validate reports invariant violations. A recurring occurrence without a
// parseable occurrence date is a programming error in the event source, not
// a recoverable condition.
func (e *Event) Validate() error {
	switch {
	case e.ID == "":
		return fmt.Errorf("(*Event).Validate: id is blank")
	case e.Title == "":
		return fmt.Errorf("(*Event).Validate: title is blank")
	case e.StartTime.IsZero():
		return fmt.Errorf("(*Event).Validate: start time is blank")
	case e.EndTime.IsZero():
		return fmt.Errorf("(*Event).Validate: end time is blank")
	}
	if e.IsRecurring {
		if e.OccurrenceDate == "" {
			return fmt.Errorf("(*Event).Validate: recurring event %s has no occurrence date", e.ID)
		}
		if _, err := time.Parse("2006-01-02", e.OccurrenceDate); err != nil {
			return fmt.Errorf("(*Event).Validate: recurring event %s: %w", e.ID, err)
		}
	}
	return nil
}

// EventDraft is the create payload produced by the editor. The recurrence
// pattern and its sibling end date travel together but stay independent
// fields on the wire.
type EventDraft struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	AllDay      bool      `json:"all_day"`
	CategoryID  string    `json:"category_id,omitempty"`

	RecurrencePattern *recur.Pattern `json:"recurrence_pattern,omitempty"`
	RecurrenceEnd     string         `json:"recurrence_end,omitempty"`
}

// EventPatch is the partial update payload; nil fields are left untouched.
type EventPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	AllDay      *bool      `json:"all_day,omitempty"`
	CategoryID  *string    `json:"category_id,omitempty"`
}
