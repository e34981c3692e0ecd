package grid

// BuildMonthGrid returns the ordered month-view cells for the month
// containing ref: from the Sunday on/before the 1st through the Saturday
// on/after the last day of the month. The grid always finishes the week row
// containing the last day, so its length is 35 or 42.
func BuildMonthGrid(ref Date) []Date {
	first := Date{Year: ref.Year, Month: ref.Month, Day: 1}
	last := first.AddMonths(1).AddDays(-1)

	cells := make([]Date, 0, 42)
	cur := first.AddDays(-int(first.Weekday()))
	for {
		cells = append(cells, cur)
		if len(cells)%7 == 0 && !cur.Before(last) {
			return cells
		}
		cur = cur.AddDays(1)
	}
}

// BuildWeekDays returns the 7 consecutive dates of the Sunday-started week
// containing ref.
func BuildWeekDays(ref Date) [7]Date {
	var days [7]Date
	start := ref.AddDays(-int(ref.Weekday()))
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// BuildDayHours returns the hour slots of a single day, 0 through 23.
func BuildDayHours() []int {
	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	return hours
}
