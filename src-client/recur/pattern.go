package recur

import (
	"fmt"
	"strings"
	"time"

	"github.com/xyedo/rrule"
)

// Frequency is how often a recurring event repeats.
type Frequency string

const (
	// FreqNone is the editor sentinel for "no recurrence". It is never
	// serialized; a saved event either carries a Pattern or nothing.
	FreqNone    Frequency = "none"
	FreqDaily   Frequency = "DAILY"
	FreqWeekly  Frequency = "WEEKLY"
	FreqMonthly Frequency = "MONTHLY"
	FreqYearly  Frequency = "YEARLY"
)

// Weekday is a two-letter ISO weekday code (MO..SU).
type Weekday string

const (
	Monday    Weekday = "MO"
	Tuesday   Weekday = "TU"
	Wednesday Weekday = "WE"
	Thursday  Weekday = "TH"
	Friday    Weekday = "FR"
	Saturday  Weekday = "SA"
	Sunday    Weekday = "SU"
)

// Pattern is the structured recurrence rule sent to the event source.
// Weekdays is only meaningful for WEEKLY; when empty, the series repeats on
// the single weekday of the start date.
type Pattern struct {
	Frequency Frequency `json:"frequency"`
	Interval  int       `json:"interval,omitempty"`
	Weekdays  []Weekday `json:"weekdays,omitempty"`
	Count     int       `json:"count,omitempty"`
	Until     string    `json:"until,omitempty"`
}

var rruleFreq = map[Frequency]rrule.Frequency{
	FreqDaily:   rrule.DAILY,
	FreqWeekly:  rrule.WEEKLY,
	FreqMonthly: rrule.MONTHLY,
	FreqYearly:  rrule.YEARLY,
}

var rruleWeekday = map[Weekday]rrule.Weekday{
	Monday:    rrule.MO,
	Tuesday:   rrule.TU,
	Wednesday: rrule.WE,
	Thursday:  rrule.TH,
	Friday:    rrule.FR,
	Saturday:  rrule.SA,
	Sunday:    rrule.SU,
}

// Validate checks the pattern shape without needing a start instant.
func (p *Pattern) Validate() error {
	if p == nil {
		return fmt.Errorf("(*Pattern).Validate: pattern is nil")
	}
	if _, ok := rruleFreq[p.Frequency]; !ok {
		return fmt.Errorf("(*Pattern).Validate: invalid frequency %q", p.Frequency)
	}
	switch {
	case p.Interval < 0:
		return fmt.Errorf("(*Pattern).Validate: interval must not be negative")
	case p.Count < 0:
		return fmt.Errorf("(*Pattern).Validate: count must not be negative")
	case p.Count > 0 && p.Until != "":
		return fmt.Errorf("(*Pattern).Validate: count and until are mutually exclusive")
	}
	if len(p.Weekdays) > 0 && p.Frequency != FreqWeekly {
		return fmt.Errorf("(*Pattern).Validate: weekdays only apply to WEEKLY")
	}
	for _, wd := range p.Weekdays {
		if _, ok := rruleWeekday[wd]; !ok {
			return fmt.Errorf("(*Pattern).Validate: invalid weekday code %q", wd)
		}
	}
	if p.Until != "" {
		if _, err := time.Parse("2006-01-02", p.Until); err != nil {
			return fmt.Errorf("(*Pattern).Validate: invalid until date: %w", err)
		}
	}
	return nil
}

// RRule builds the equivalent RFC-5545 rule anchored at start. This is also
// the authoritative validity check for a pattern + start combination: a
// pattern the rrule library rejects never leaves the editor.
func (p *Pattern) RRule(start time.Time) (*rrule.RRule, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	freq, ok := rruleFreq[p.Frequency]
	if !ok {
		return nil, fmt.Errorf("(*Pattern).RRule: invalid frequency %q", p.Frequency)
	}
	opt := rrule.ROption{
		Freq:    freq,
		Dtstart: start,
	}
	if p.Interval > 0 {
		opt.Interval = p.Interval
	}
	for _, wd := range p.Weekdays {
		opt.Byweekday = append(opt.Byweekday, rruleWeekday[wd])
	}
	if p.Count > 0 {
		opt.Count = p.Count
	}
	if p.Until != "" {
		until, err := time.ParseInLocation("2006-01-02", p.Until, start.Location())
		if err != nil {
			return nil, fmt.Errorf("(*Pattern).RRule: invalid until date: %w", err)
		}
		// Recurrence termination is date-granular; include the whole day.
		opt.Until = until.AddDate(0, 0, 1).Add(-time.Second)
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("(*Pattern).RRule: %w", err)
	}
	return rule, nil
}

// RRuleString renders the pattern as an RRULE property value
// (e.g. "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE,FR") for iCalendar export.
func (p *Pattern) RRuleString() string {
	parts := []string{"FREQ=" + string(p.Frequency)}
	if p.Interval > 1 {
		parts = append(parts, fmt.Sprintf("INTERVAL=%d", p.Interval))
	}
	if len(p.Weekdays) > 0 {
		codes := make([]string, len(p.Weekdays))
		for i, wd := range p.Weekdays {
			codes[i] = string(wd)
		}
		parts = append(parts, "BYDAY="+strings.Join(codes, ","))
	}
	if p.Count > 0 {
		parts = append(parts, fmt.Sprintf("COUNT=%d", p.Count))
	}
	if p.Until != "" {
		if until, err := time.Parse("2006-01-02", p.Until); err == nil {
			parts = append(parts, "UNTIL="+until.Format("20060102"))
		}
	}
	return strings.Join(parts, ";")
}
