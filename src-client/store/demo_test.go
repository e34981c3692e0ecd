package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"famcal/src-client/grid"
	"famcal/src-client/model"
	"famcal/src-client/recur"
	"famcal/src-client/store"
)

func TestDemo(t *testing.T) {
	// init db
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	bundb := bun.NewDB(db, sqlitedialect.New())
	demo := store.NewDemo(bundb, time.UTC)
	if err := demo.CreateSchema(context.Background()); err != nil {
		t.Fatal(err)
	}

	// create a recurring event
	created, err := demo.CreateEvent(context.Background(), model.EventDraft{
		Title:      "주간 회의",
		StartTime:  time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, time.January, 5, 11, 0, 0, 0, time.UTC),
		CategoryID: "family",
		RecurrencePattern: &recur.Pattern{
			Frequency: recur.FreqWeekly,
			Weekdays:  []recur.Weekday{recur.Monday},
		},
		RecurrenceEnd: "2026-06-30",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Error("created event has no id")
	}
	if created.Member != store.GuestMember {
		t.Error("demo events must belong to the guest member", created.Member)
	}
	if created.Category == nil || created.Category.Name != "가족" {
		t.Error("category not denormalized", created.Category)
	}

	// case: listing returns the stored row as-is, no recurrence expansion
	func() {
		events, err := demo.ListEvents(context.Background(),
			grid.Date{Year: 2026, Month: time.January, Day: 1},
			grid.Date{Year: 2026, Month: time.January, Day: 31})
		if err != nil {
			t.Fatal(err)
		}
		if len(events) != 1 {
			t.Fatal("expected a single stored row, got", len(events))
		}
		ev := events[0]
		if ev.IsRecurring {
			t.Error("demo store must not materialize occurrences")
		}
		if ev.RecurrencePattern == nil || ev.RecurrencePattern.Frequency != recur.FreqWeekly {
			t.Error("recurrence pattern not round-tripped", ev.RecurrencePattern)
		}
		if ev.RecurrenceEnd != "2026-06-30" {
			t.Error("recurrence end not round-tripped", ev.RecurrenceEnd)
		}
	}()

	// case: events outside the range don't show up
	func() {
		events, err := demo.ListEvents(context.Background(),
			grid.Date{Year: 2026, Month: time.February, Day: 1},
			grid.Date{Year: 2026, Month: time.February, Day: 28})
		if err != nil {
			t.Fatal(err)
		}
		if len(events) != 0 {
			t.Error("expected no events in february, got", len(events))
		}
	}()

	// case: update merges only the provided fields
	func() {
		newTitle := "월간 회의"
		newCategory := "work"
		updated, err := demo.UpdateEvent(context.Background(), created.ID, model.EventPatch{
			Title:      &newTitle,
			CategoryID: &newCategory,
		})
		if err != nil {
			t.Fatal(err)
		}
		if updated == nil {
			t.Fatal("updated event should exist")
		}
		if updated.Title != newTitle {
			t.Error("title not updated", updated.Title)
		}
		if updated.Category == nil || updated.Category.Name != "일" {
			t.Error("category not re-denormalized", updated.Category)
		}
		if !updated.StartTime.Equal(created.StartTime) {
			t.Error("untouched field changed", updated.StartTime)
		}
	}()

	// case: updating an unknown id reports absence, not an error
	func() {
		updated, err := demo.UpdateEvent(context.Background(), "nope", model.EventPatch{})
		if err != nil {
			t.Fatal(err)
		}
		if updated != nil {
			t.Error("unknown id should return nil")
		}
	}()

	// case: delete reports whether the id existed
	func() {
		existed, err := demo.DeleteEvent(context.Background(), created.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !existed {
			t.Error("delete should report the event existed")
		}
		existed, err = demo.DeleteEvent(context.Background(), created.ID)
		if err != nil {
			t.Fatal(err)
		}
		if existed {
			t.Error("second delete should report absence")
		}
	}()

	// case: the category set is fixed
	func() {
		categories, err := demo.ListCategories(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(categories) != len(store.DemoCategories) {
			t.Error("unexpected category count", len(categories))
		}
	}()

	// case: blank title is rejected
	func() {
		if _, err := demo.CreateEvent(context.Background(), model.EventDraft{
			StartTime: time.Now(),
			EndTime:   time.Now().Add(time.Hour),
		}); err == nil {
			t.Error("blank title should be rejected")
		}
	}()
}
