package grid_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famcal/src-client/grid"
)

func TestBuildMonthGrid(t *testing.T) {
	tests := []struct {
		name      string
		ref       grid.Date
		wantLen   int
		wantFirst grid.Date
		wantLast  grid.Date
	}{
		{
			name:      "january 2026 fills five rows",
			ref:       grid.Date{Year: 2026, Month: time.January, Day: 15},
			wantLen:   35,
			wantFirst: grid.Date{Year: 2025, Month: time.December, Day: 28},
			wantLast:  grid.Date{Year: 2026, Month: time.January, Day: 31},
		},
		{
			name:      "august 2026 needs six rows",
			ref:       grid.Date{Year: 2026, Month: time.August, Day: 1},
			wantLen:   42,
			wantFirst: grid.Date{Year: 2026, Month: time.July, Day: 26},
			wantLast:  grid.Date{Year: 2026, Month: time.September, Day: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := grid.BuildMonthGrid(tt.ref)
			require.Len(t, cells, tt.wantLen)
			assert.Equal(t, tt.wantFirst, cells[0])
			assert.Equal(t, tt.wantLast, cells[len(cells)-1])

			assert.Zero(t, len(cells)%7)
			assert.Equal(t, time.Sunday, cells[0].Weekday())
			assert.Equal(t, time.Saturday, cells[len(cells)-1].Weekday())
			for i := 1; i < len(cells); i++ {
				assert.Equal(t, cells[i-1].AddDays(1), cells[i])
			}
		})
	}
}

func TestBuildMonthGridSameForWholeMonth(t *testing.T) {
	first := grid.BuildMonthGrid(grid.Date{Year: 2026, Month: time.January, Day: 1})
	mid := grid.BuildMonthGrid(grid.Date{Year: 2026, Month: time.January, Day: 17})
	last := grid.BuildMonthGrid(grid.Date{Year: 2026, Month: time.January, Day: 31})
	assert.Equal(t, first, mid)
	assert.Equal(t, first, last)
}

func TestBuildWeekDays(t *testing.T) {
	days := grid.BuildWeekDays(grid.Date{Year: 2026, Month: time.January, Day: 7})
	assert.Equal(t, grid.Date{Year: 2026, Month: time.January, Day: 4}, days[0])
	assert.Equal(t, grid.Date{Year: 2026, Month: time.January, Day: 10}, days[6])
	for i, day := range days {
		assert.Equal(t, time.Weekday(i), day.Weekday())
	}

	// a sunday ref is already the first cell
	sunday := grid.Date{Year: 2026, Month: time.January, Day: 4}
	assert.Equal(t, sunday, grid.BuildWeekDays(sunday)[0])
}

func TestBuildDayHours(t *testing.T) {
	hours := grid.BuildDayHours()
	require.Len(t, hours, 24)
	assert.Equal(t, 0, hours[0])
	assert.Equal(t, 23, hours[23])
}

func TestDateArithmetic(t *testing.T) {
	d := grid.Date{Year: 2026, Month: time.January, Day: 31}
	assert.Equal(t, grid.Date{Year: 2026, Month: time.February, Day: 1}, d.AddDays(1))
	assert.Equal(t, grid.Date{Year: 2025, Month: time.December, Day: 31}, d.AddDays(-31))

	parsed, err := grid.ParseDate("2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, d, parsed)
	assert.Equal(t, "2026-01-31", parsed.String())

	_, err = grid.ParseDate("01/31/2026")
	assert.Error(t, err)

	assert.True(t, grid.Date{Year: 2025, Month: time.December, Day: 31}.Before(d))
	assert.True(t, d.After(grid.Date{Year: 2026, Month: time.January, Day: 30}))
}
