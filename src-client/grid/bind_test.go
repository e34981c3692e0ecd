package grid_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famcal/src-client/grid"
	"famcal/src-client/model"
)

var kst = time.FixedZone("KST", 9*60*60)

func TestEventsOnDayUsesLocalDate(t *testing.T) {
	// 05:00 on Feb 1 in KST is still Jan 31 in UTC; the event must land on
	// its local day, not the UTC one
	ev := model.Event{
		ID:        "late-night",
		Title:     "새벽 수영",
		StartTime: time.Date(2026, time.February, 1, 5, 0, 0, 0, kst),
		EndTime:   time.Date(2026, time.February, 1, 6, 0, 0, 0, kst),
	}
	events := []model.Event{ev}

	onFeb1, err := grid.EventsOnDay(events, grid.Date{Year: 2026, Month: time.February, Day: 1}, kst)
	require.NoError(t, err)
	require.Len(t, onFeb1, 1)

	onJan31, err := grid.EventsOnDay(events, grid.Date{Year: 2026, Month: time.January, Day: 31}, kst)
	require.NoError(t, err)
	assert.Empty(t, onJan31)
}

func TestEventsOnDayMonthBoundary(t *testing.T) {
	// 23:30 on Jan 31 for a UTC+9 viewer must stay in the Jan 31 cell
	events := []model.Event{{
		ID:        "boundary",
		Title:     "늦은 약속",
		StartTime: time.Date(2026, time.January, 31, 23, 30, 0, 0, kst),
		EndTime:   time.Date(2026, time.February, 1, 0, 30, 0, 0, kst),
	}}

	onJan31, err := grid.EventsOnDay(events, grid.Date{Year: 2026, Month: time.January, Day: 31}, kst)
	require.NoError(t, err)
	assert.Len(t, onJan31, 1)

	onFeb1, err := grid.EventsOnDay(events, grid.Date{Year: 2026, Month: time.February, Day: 1}, kst)
	require.NoError(t, err)
	assert.Empty(t, onFeb1)
}

func TestEventsOnDayRecurringUsesOccurrenceDate(t *testing.T) {
	ev := model.Event{
		ID:             "weekly-dinner",
		Title:          "가족 저녁",
		StartTime:      time.Date(2026, time.January, 4, 19, 0, 0, 0, kst),
		EndTime:        time.Date(2026, time.January, 4, 20, 0, 0, 0, kst),
		IsRecurring:    true,
		OccurrenceDate: "2026-01-11",
	}
	events := []model.Event{ev}

	onOccurrence, err := grid.EventsOnDay(events, grid.Date{Year: 2026, Month: time.January, Day: 11}, kst)
	require.NoError(t, err)
	require.Len(t, onOccurrence, 1)

	// the series start date only shows the occurrence materialized for it
	onStart, err := grid.EventsOnDay(events, grid.Date{Year: 2026, Month: time.January, Day: 4}, kst)
	require.NoError(t, err)
	assert.Empty(t, onStart)
}

func TestEventsOnDayRecurringWithoutOccurrenceDate(t *testing.T) {
	events := []model.Event{{
		ID:          "broken",
		Title:       "broken",
		StartTime:   time.Date(2026, time.January, 4, 19, 0, 0, 0, kst),
		EndTime:     time.Date(2026, time.January, 4, 20, 0, 0, 0, kst),
		IsRecurring: true,
	}}
	_, err := grid.EventsOnDay(events, grid.Date{Year: 2026, Month: time.January, Day: 4}, kst)
	assert.Error(t, err)
}

func TestEventsAtHour(t *testing.T) {
	recurring := model.Event{
		ID:             "standup",
		Title:          "스탠드업",
		StartTime:      time.Date(2026, time.January, 5, 10, 30, 0, 0, kst),
		EndTime:        time.Date(2026, time.January, 5, 11, 0, 0, 0, kst),
		IsRecurring:    true,
		OccurrenceDate: "2026-01-12",
	}
	plain := model.Event{
		ID:        "dentist",
		Title:     "치과",
		StartTime: time.Date(2026, time.January, 12, 10, 0, 0, 0, kst),
		EndTime:   time.Date(2026, time.January, 12, 11, 0, 0, 0, kst),
	}
	events := []model.Event{recurring, plain}
	day := grid.Date{Year: 2026, Month: time.January, Day: 12}

	// the recurring occurrence keeps the series' start hour on its own day
	at10, err := grid.EventsAtHour(events, day, 10, kst)
	require.NoError(t, err)
	require.Len(t, at10, 2)
	assert.Equal(t, "standup", at10[0].ID)
	assert.Equal(t, "dentist", at10[1].ID)

	at11, err := grid.EventsAtHour(events, day, 11, kst)
	require.NoError(t, err)
	assert.Empty(t, at11)
}

func TestEventsOnDayDoesNotMutateInput(t *testing.T) {
	events := []model.Event{
		{
			ID:        "a",
			Title:     "a",
			StartTime: time.Date(2026, time.January, 5, 9, 0, 0, 0, kst),
			EndTime:   time.Date(2026, time.January, 5, 10, 0, 0, 0, kst),
		},
		{
			ID:        "b",
			Title:     "b",
			StartTime: time.Date(2026, time.January, 6, 9, 0, 0, 0, kst),
			EndTime:   time.Date(2026, time.January, 6, 10, 0, 0, 0, kst),
		},
	}

	first, err := grid.EventsOnDay(events, grid.Date{Year: 2026, Month: time.January, Day: 5}, kst)
	require.NoError(t, err)
	second, err := grid.EventsOnDay(events, grid.Date{Year: 2026, Month: time.January, Day: 5}, kst)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, "b", events[1].ID)
}
