package grid

import (
	"fmt"
	"time"

	"famcal/src-client/model"
)

// OccurrenceKey returns the calendar day an event belongs to. Recurring
// occurrences place by their explicit occurrence date; everything else by
// the local calendar date of the start instant in loc. The key is derived
// from local field accessors, never from a UTC-normalized string, so an
// event starting late in the local evening stays on its local day.
func OccurrenceKey(ev *model.Event, loc *time.Location) (Date, error) {
	if ev.IsRecurring {
		if ev.OccurrenceDate == "" {
			return Date{}, fmt.Errorf("grid.OccurrenceKey: recurring event %s has no occurrence date", ev.ID)
		}
		day, err := ParseDate(ev.OccurrenceDate)
		if err != nil {
			return Date{}, fmt.Errorf("grid.OccurrenceKey: recurring event %s: %w", ev.ID, err)
		}
		return day, nil
	}
	return DateOf(ev.StartTime.In(loc)), nil
}

// EventsOnDay returns the events that belong to the given month-view cell,
// preserving the order of the input. The input slice is never mutated.
func EventsOnDay(events []model.Event, day Date, loc *time.Location) ([]model.Event, error) {
	matched := make([]model.Event, 0)
	for i := range events {
		key, err := OccurrenceKey(&events[i], loc)
		if err != nil {
			return nil, err
		}
		if key == day {
			matched = append(matched, events[i])
		}
	}
	return matched, nil
}

// EventsAtHour returns the events that belong to the given (date, hour)
// week/day-view cell. Recurring occurrences use their occurrence date for
// the day component but still use the start instant's local hour; the
// pattern only varies the day, never the time of day.
func EventsAtHour(events []model.Event, day Date, hour int, loc *time.Location) ([]model.Event, error) {
	matched := make([]model.Event, 0)
	for i := range events {
		key, err := OccurrenceKey(&events[i], loc)
		if err != nil {
			return nil, err
		}
		if key == day && events[i].StartTime.In(loc).Hour() == hour {
			matched = append(matched, events[i])
		}
	}
	return matched, nil
}
