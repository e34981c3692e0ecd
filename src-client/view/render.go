package view

import (
	"time"

	"famcal/src-client/grid"
	"famcal/src-client/model"
)

// Viewport is the breakpoint class of the rendering surface. It only
// changes how many events a month cell shows before truncating and whether
// hour cells render compact (no time label); it never changes which events
// a cell contains.
type Viewport string

const (
	ViewportMobile  Viewport = "mobile"
	ViewportTablet  Viewport = "tablet"
	ViewportDesktop Viewport = "desktop"
)

// MonthLimit is the maximum number of event cards a month cell shows for
// this viewport; the remainder is folded into the "+N more" count.
func (v Viewport) MonthLimit() int {
	switch v {
	case ViewportMobile:
		return 1
	case ViewportTablet:
		return 2
	default:
		return 3
	}
}

// Compact reports whether hour cells drop their time labels.
func (v Viewport) Compact() bool {
	return v == ViewportMobile
}

// MonthCell is one day of the month grid. Events holds the visible entries
// in source order; More is always total minus shown, so truncation never
// loses data.
type MonthCell struct {
	Date    grid.Date     `json:"date"`
	InMonth bool          `json:"in_month"`
	Today   bool          `json:"today"`
	Events  []model.Event `json:"events"`
	More    int           `json:"more"`
}

// MonthGrid is the rendered month view: 5 or 6 complete week rows.
type MonthGrid struct {
	Weeks [][]MonthCell `json:"weeks"`
}

// RenderMonth binds events onto the month grid containing ref and applies
// the viewport's truncation policy.
func RenderMonth(events []model.Event, ref grid.Date, today grid.Date, loc *time.Location, vp Viewport) (MonthGrid, error) {
	cells := grid.BuildMonthGrid(ref)
	limit := vp.MonthLimit()

	out := MonthGrid{Weeks: make([][]MonthCell, 0, len(cells)/7)}
	var week []MonthCell
	for _, day := range cells {
		bound, err := grid.EventsOnDay(events, day, loc)
		if err != nil {
			return MonthGrid{}, err
		}
		shown := bound
		more := 0
		if len(bound) > limit {
			shown = bound[:limit]
			more = len(bound) - limit
		}
		week = append(week, MonthCell{
			Date:    day,
			InMonth: day.Month == ref.Month,
			Today:   day == today,
			Events:  shown,
			More:    more,
		})
		if len(week) == 7 {
			out.Weeks = append(out.Weeks, week)
			week = nil
		}
	}
	return out, nil
}

// HourCell is one (date, hour) slot of the week or day view. All bound
// events are rendered; Compact only drops the time label.
type HourCell struct {
	Date    grid.Date     `json:"date"`
	Hour    int           `json:"hour"`
	Events  []model.Event `json:"events"`
	Compact bool          `json:"compact"`
}

// WeekGrid is the rendered week view: one row per hour, 7 cells per row.
type WeekGrid struct {
	Days  [7]grid.Date `json:"days"`
	Hours [][]HourCell `json:"hours"`
}

// RenderWeek binds events onto the Sunday-started week containing ref.
func RenderWeek(events []model.Event, ref grid.Date, loc *time.Location, vp Viewport) (WeekGrid, error) {
	days := grid.BuildWeekDays(ref)
	compact := vp.Compact()

	out := WeekGrid{Days: days, Hours: make([][]HourCell, 0, 24)}
	for _, hour := range grid.BuildDayHours() {
		row := make([]HourCell, 0, 7)
		for _, day := range days {
			bound, err := grid.EventsAtHour(events, day, hour, loc)
			if err != nil {
				return WeekGrid{}, err
			}
			row = append(row, HourCell{Date: day, Hour: hour, Events: bound, Compact: compact})
		}
		out.Hours = append(out.Hours, row)
	}
	return out, nil
}

// DayGrid is the rendered day view: 24 hour cells for a single date.
type DayGrid struct {
	Date  grid.Date  `json:"date"`
	Hours []HourCell `json:"hours"`
}

// RenderDay binds events onto the 24 hour slots of ref.
func RenderDay(events []model.Event, ref grid.Date, loc *time.Location, vp Viewport) (DayGrid, error) {
	compact := vp.Compact()

	out := DayGrid{Date: ref, Hours: make([]HourCell, 0, 24)}
	for _, hour := range grid.BuildDayHours() {
		bound, err := grid.EventsAtHour(events, ref, hour, loc)
		if err != nil {
			return DayGrid{}, err
		}
		out.Hours = append(out.Hours, HourCell{Date: ref, Hour: hour, Events: bound, Compact: compact})
	}
	return out, nil
}
