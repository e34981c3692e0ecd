package view_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famcal/src-client/grid"
	"famcal/src-client/model"
	"famcal/src-client/view"
)

var kst = time.FixedZone("KST", 9*60*60)

func eventsOn(day grid.Date, n int) []model.Event {
	events := make([]model.Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, model.Event{
			ID:        fmt.Sprintf("ev-%d", i),
			Title:     fmt.Sprintf("event %d", i),
			StartTime: time.Date(day.Year, day.Month, day.Day, 9+i, 0, 0, 0, kst),
			EndTime:   time.Date(day.Year, day.Month, day.Day, 10+i, 0, 0, 0, kst),
		})
	}
	return events
}

func findCell(t *testing.T, g view.MonthGrid, day grid.Date) view.MonthCell {
	t.Helper()
	for _, week := range g.Weeks {
		for _, cell := range week {
			if cell.Date == day {
				return cell
			}
		}
	}
	t.Fatalf("no cell for %s", day)
	return view.MonthCell{}
}

func TestRenderMonthTruncation(t *testing.T) {
	day := grid.Date{Year: 2026, Month: time.January, Day: 5}
	today := grid.Date{Year: 2026, Month: time.January, Day: 2}
	events := eventsOn(day, 5)

	tests := []struct {
		viewport  view.Viewport
		wantShown int
		wantMore  int
	}{
		{view.ViewportMobile, 1, 4},
		{view.ViewportTablet, 2, 3},
		{view.ViewportDesktop, 3, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.viewport), func(t *testing.T) {
			g, err := view.RenderMonth(events, day, today, kst, tt.viewport)
			require.NoError(t, err)

			cell := findCell(t, g, day)
			require.Len(t, cell.Events, tt.wantShown)
			assert.Equal(t, tt.wantMore, cell.More)
			// truncation keeps source order from the front
			assert.Equal(t, "ev-0", cell.Events[0].ID)
		})
	}
}

func TestRenderMonthNoTruncationUnderLimit(t *testing.T) {
	day := grid.Date{Year: 2026, Month: time.January, Day: 5}
	today := grid.Date{Year: 2026, Month: time.January, Day: 5}
	g, err := view.RenderMonth(eventsOn(day, 2), day, today, kst, view.ViewportDesktop)
	require.NoError(t, err)

	cell := findCell(t, g, day)
	assert.Len(t, cell.Events, 2)
	assert.Zero(t, cell.More)
}

func TestRenderMonthShape(t *testing.T) {
	ref := grid.Date{Year: 2026, Month: time.January, Day: 15}
	today := grid.Date{Year: 2026, Month: time.January, Day: 15}
	g, err := view.RenderMonth(nil, ref, today, kst, view.ViewportDesktop)
	require.NoError(t, err)

	require.Len(t, g.Weeks, 5)
	for _, week := range g.Weeks {
		require.Len(t, week, 7)
	}

	// december padding cells are marked out-of-month
	first := g.Weeks[0][0]
	assert.Equal(t, grid.Date{Year: 2025, Month: time.December, Day: 28}, first.Date)
	assert.False(t, first.InMonth)
	assert.True(t, findCell(t, g, ref).InMonth)
	assert.True(t, findCell(t, g, today).Today)
}

func TestRenderWeekShowsAllEvents(t *testing.T) {
	day := grid.Date{Year: 2026, Month: time.January, Day: 5}
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
			StartTime: time.Date(2026, time.January, 5, 9, 30, 0, 0, kst),
			EndTime:   time.Date(2026, time.January, 5, 10, 30, 0, 0, kst),
		},
	}

	// mobile renders compact but never truncates hour cells
	g, err := view.RenderWeek(events, day, kst, view.ViewportMobile)
	require.NoError(t, err)
	require.Len(t, g.Hours, 24)

	assert.Equal(t, grid.Date{Year: 2026, Month: time.January, Day: 4}, g.Days[0])
	nine := g.Hours[9][1] // monday column
	assert.Equal(t, day, nine.Date)
	assert.Len(t, nine.Events, 2)
	assert.True(t, nine.Compact)
}

func TestRenderDay(t *testing.T) {
	day := grid.Date{Year: 2026, Month: time.January, Day: 5}
	g, err := view.RenderDay(eventsOn(day, 1), day, kst, view.ViewportDesktop)
	require.NoError(t, err)

	require.Len(t, g.Hours, 24)
	assert.Len(t, g.Hours[9].Events, 1)
	assert.Empty(t, g.Hours[10].Events)
	assert.False(t, g.Hours[9].Compact)
}
