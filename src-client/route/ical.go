package route

import (
	"log/slog"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"

	"famcal/src-client/grid"
	"famcal/src-client/utils"
)

func Ical(muxer *http.ServeMux, as *utils.AppState) {
	loc := as.Config.GetLocation()

	// export the current snapshot range as an iCalendar file
	muxer.HandleFunc("GET /ical/export", func(w http.ResponseWriter, r *http.Request) {
		ref := grid.Today(loc)
		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			date, err := grid.ParseDate(dateStr)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid date, use yyyy-MM-dd"))
				return
			}
			ref = date
		}

		startTimer := time.Now()
		if err := as.Loader.Reload(r.Context(), ref); err != nil {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("Can't load events"))
			return
		}
		fetchChanOf(as) <- float64(time.Since(startTimer).Microseconds())
		events, _ := as.Loader.Snapshot()

		cal := ical.NewCalendar()
		cal.SetMethod(ical.MethodPublish)
		now := time.Now()
		for i := range events {
			ev := &events[i]
			// recurring series are exported once, as the rule; skip the
			// materialized extra occurrences
			if ev.IsRecurring && ev.OccurrenceDate != "" {
				occ, err := grid.ParseDate(ev.OccurrenceDate)
				if err != nil {
					slog.Warn("skipping event with bad occurrence date", "id", ev.ID, "error", err)
					continue
				}
				if occ != grid.DateOf(ev.StartTime.In(loc)) {
					continue
				}
			}

			vevent := cal.AddEvent(ev.ID)
			vevent.SetDtStampTime(now)
			vevent.SetStartAt(ev.StartTime)
			vevent.SetEndAt(ev.EndTime)
			vevent.SetSummary(ev.Title)
			if ev.Description != "" {
				vevent.SetDescription(ev.Description)
			}
			if ev.Member.Name != "" {
				vevent.SetOrganizer(ev.Member.Name)
			}
			if p := ev.RecurrencePattern; p != nil {
				rule := *p
				if rule.Until == "" && ev.RecurrenceEnd != "" {
					rule.Until = ev.RecurrenceEnd
				}
				vevent.SetProperty(ical.ComponentPropertyRrule, rule.RRuleString())
			}
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="famcal.ics"`)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cal.Serialize()))
	})
}
