package route

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"famcal/src-client/editor"
	"famcal/src-client/grid"
	"famcal/src-client/model"
	"famcal/src-client/utils"
	"famcal/src-client/view"
)

// Writer mutates events. Both the remote backend client and the demo store
// satisfy it; update returns nil for an unknown id, delete reports whether
// the id existed.
type Writer interface {
	CreateEvent(ctx context.Context, draft model.EventDraft) (*model.Event, error)
	UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error)
	DeleteEvent(ctx context.Context, id string) (bool, error)
}

func writerOf(as *utils.AppState) Writer {
	if as.DemoMode() {
		return as.Store
	}
	return as.Backend
}

func fetchChanOf(as *utils.AppState) chan float64 {
	if as.DemoMode() {
		return as.MetricChans.StoreRead
	}
	return as.MetricChans.BackendFetch
}

func writeChanOf(as *utils.AppState) chan float64 {
	if as.DemoMode() {
		return as.MetricChans.StoreWrite
	}
	return as.MetricChans.BackendFetch
}

func Calendar(muxer *http.ServeMux, as *utils.AppState) {
	loc := as.Config.GetLocation()

	type ViewRespBody struct {
		State view.State      `json:"state"`
		Stale bool            `json:"stale,omitempty"`
		Month *view.MonthGrid `json:"month,omitempty"`
		Week  *view.WeekGrid  `json:"week,omitempty"`
		Day   *view.DayGrid   `json:"day,omitempty"`
	}

	// render one calendar surface for a reference date
	muxer.HandleFunc("GET /calendar/view", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		// #region - parse view state from query
		today := grid.Today(loc)
		state := view.NewState(today)
		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			date, err := grid.ParseDate(dateStr)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid date, use yyyy-MM-dd"))
				return
			}
			state.Date = date
		}
		switch mode := view.Mode(r.URL.Query().Get("mode")); mode {
		case "":
		case view.ModeMonth, view.ModeWeek, view.ModeDay:
			state = state.SwitchView(mode)
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid mode, use month, week or day"))
			return
		}
		switch dir := view.Direction(r.URL.Query().Get("dir")); dir {
		case "":
		case view.DirPrev, view.DirNext, view.DirToday:
			state = state.Navigate(dir, today)
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid dir, use prev, next or today"))
			return
		}
		viewport := view.Viewport(r.URL.Query().Get("viewport"))
		switch viewport {
		case "":
			viewport = view.ViewportDesktop
		case view.ViewportMobile, view.ViewportTablet, view.ViewportDesktop:
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid viewport, use mobile, tablet or desktop"))
			return
		}
		// #endregion

		// #region - reload the snapshot & render
		// a failed reload keeps the previous snapshot, so render that and
		// flag the response as stale instead of failing the whole view
		startTimer := time.Now()
		stale := false
		if err := as.Loader.Reload(r.Context(), state.Date); err != nil {
			slog.Error("can't reload events, serving previous snapshot", "error", err)
			stale = true
		} else {
			fetchChanOf(as) <- float64(time.Since(startTimer).Microseconds())
		}
		events, _ := as.Loader.Snapshot()

		respBody := ViewRespBody{State: state, Stale: stale}
		var renderErr error
		switch state.Mode {
		case view.ModeWeek:
			var weekGrid view.WeekGrid
			weekGrid, renderErr = view.RenderWeek(events, state.Date, loc, viewport)
			respBody.Week = &weekGrid
		case view.ModeDay:
			var dayGrid view.DayGrid
			dayGrid, renderErr = view.RenderDay(events, state.Date, loc, viewport)
			respBody.Day = &dayGrid
		default:
			var monthGrid view.MonthGrid
			monthGrid, renderErr = view.RenderMonth(events, state.Date, today, loc, viewport)
			respBody.Month = &monthGrid
		}
		if renderErr != nil {
			slog.Error("can't render calendar view", "error", renderErr)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't render calendar view"))
			return
		}
		// #endregion

		respBodyJson, err := json.Marshal(respBody)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't marshal response body"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})

	// get raw events in a date range
	muxer.HandleFunc("GET /calendar/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		start, err := grid.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid start_date, use yyyy-MM-dd"))
			return
		}
		end, err := grid.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid end_date, use yyyy-MM-dd"))
			return
		}

		startTimer := time.Now()
		events, err := as.Loader.List(r.Context(), start, end)
		if err != nil {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("Can't get events"))
			return
		}
		fetchChanOf(as) <- float64(time.Since(startTimer).Microseconds())

		respBodyJson, err := json.Marshal(struct {
			Events []model.Event `json:"events"`
		}{Events: events})
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't marshal response body"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})

	// create an event from a submitted editor form
	muxer.HandleFunc("POST /calendar/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var form editor.Form
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}

		ed := editor.FromForm(form)
		if !ed.CanSave() {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Please provide a title"))
			return
		}
		draft, err := ed.Draft(loc)
		if err != nil {
			slog.Debug("rejected event form", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid event form"))
			return
		}

		startTimer := time.Now()
		event, err := writerOf(as).CreateEvent(r.Context(), draft)
		if err != nil {
			slog.Error("can't create event", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't create event"))
			return
		}
		writeChanOf(as) <- float64(time.Since(startTimer).Microseconds())

		respBodyJson, err := json.Marshal(event)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't marshal response body"))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write(respBodyJson)
	})

	// partially update an event
	muxer.HandleFunc("PATCH /calendar/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var patch model.EventPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}

		startTimer := time.Now()
		event, err := writerOf(as).UpdateEvent(r.Context(), r.PathValue("id"), patch)
		switch {
		case err != nil:
			slog.Error("can't update event", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't update event"))
			return
		case event == nil:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Event not found"))
			return
		}
		writeChanOf(as) <- float64(time.Since(startTimer).Microseconds())

		respBodyJson, err := json.Marshal(event)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't marshal response body"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})

	// delete an event
	muxer.HandleFunc("DELETE /calendar/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		startTimer := time.Now()
		existed, err := writerOf(as).DeleteEvent(r.Context(), r.PathValue("id"))
		switch {
		case err != nil:
			slog.Error("can't delete event", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't delete event"))
			return
		case !existed:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Event not found"))
			return
		}
		writeChanOf(as) <- float64(time.Since(startTimer).Microseconds())

		w.WriteHeader(http.StatusNoContent)
	})

	// get the category set
	muxer.HandleFunc("GET /calendar/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		_, categories := as.Loader.Snapshot()
		if len(categories) == 0 {
			var err error
			if categories, err = as.Loader.ListCategories(r.Context()); err != nil {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("Can't get categories"))
				return
			}
		}

		respBodyJson, err := json.Marshal(struct {
			Categories []model.Category `json:"categories"`
		}{Categories: categories})
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't marshal response body"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})
}
