// Package store is the local fallback event store used in demo mode, when
// no backend is configured. It satisfies the same listing contract as the
// remote backend but is single-tenant and ownership-free: every event
// belongs to a fixed guest identity, and recurring patterns are stored
// as-is without being expanded into multiple visible instances.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"famcal/src-client/grid"
	"famcal/src-client/model"
	"famcal/src-client/recur"
)

// GuestMember is the fixed identity every demo event belongs to.
var GuestMember = model.Member{Name: "게스트", Color: "#9C27B0"}

// DemoCategories is the small fixed category set available in demo mode.
var DemoCategories = []model.Category{
	{ID: "family", Name: "가족", Color: "#4CAF50"},
	{ID: "school", Name: "학교", Color: "#2196F3"},
	{ID: "work", Name: "일", Color: "#FF9800"},
	{ID: "etc", Name: "기타", Color: "#9E9E9E"},
}

type demoEvent struct {
	bun.BaseModel `bun:"table:demo_events"`

	ID          string `bun:"id,pk,notnull"`
	Title       string `bun:"title,notnull"`
	Description string `bun:"description"`

	StartUnix int64 `bun:"start_date,notnull"`
	EndUnix   int64 `bun:"end_date,notnull"`
	AllDay    bool  `bun:"all_day"`

	MemberName  string `bun:"member_name,notnull"`
	MemberColor string `bun:"member_color,notnull"`

	CategoryID    string `bun:"category_id"`
	CategoryName  string `bun:"category_name"`
	CategoryColor string `bun:"category_color"`

	RecurrencePattern string `bun:"recurrence_pattern"`
	RecurrenceEnd     string `bun:"recurrence_end"`

	CreatedAt int64 `bun:"created_at,notnull"`
}

// Demo is the SQLite-backed fallback store.
type Demo struct {
	db  *bun.DB
	loc *time.Location
}

func NewDemo(db *bun.DB, loc *time.Location) *Demo {
	return &Demo{db: db, loc: loc}
}

// CreateSchema creates the demo tables if they don't exist yet.
func (d *Demo) CreateSchema(ctx context.Context) error {
	if _, err := d.db.NewCreateTable().
		Model((*demoEvent)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Demo).CreateSchema: %w", err)
	}
	return nil
}

// ListEvents returns the stored events whose start falls on a local
// calendar day within [start, end], in insertion order.
func (d *Demo) ListEvents(ctx context.Context, start, end grid.Date) ([]model.Event, error) {
	rows := make([]demoEvent, 0)
	if err := d.db.NewSelect().
		Model(&rows).
		Where("start_date >= ?", start.Time(d.loc).Unix()).
		Where("start_date < ?", end.AddDays(1).Time(d.loc).Unix()).
		Order("created_at ASC", "id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Demo).ListEvents: %w", err)
	}

	events := make([]model.Event, 0, len(rows))
	for i := range rows {
		ev, err := rows[i].toModel(d.loc)
		if err != nil {
			return nil, fmt.Errorf("(*Demo).ListEvents: %w", err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// ListCategories returns the fixed demo category set.
func (d *Demo) ListCategories(ctx context.Context) ([]model.Category, error) {
	return append([]model.Category(nil), DemoCategories...), nil
}

// CreateEvent stores a new event with a generated id, the guest identity
// and a denormalized category looked up from the fixed set.
func (d *Demo) CreateEvent(ctx context.Context, draft model.EventDraft) (*model.Event, error) {
	switch {
	case draft.Title == "":
		return nil, fmt.Errorf("(*Demo).CreateEvent: title is blank")
	case draft.StartTime.IsZero():
		return nil, fmt.Errorf("(*Demo).CreateEvent: start time is blank")
	case draft.EndTime.IsZero():
		return nil, fmt.Errorf("(*Demo).CreateEvent: end time is blank")
	}

	row := demoEvent{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		StartUnix:   draft.StartTime.Unix(),
		EndUnix:     draft.EndTime.Unix(),
		AllDay:      draft.AllDay,
		MemberName:  GuestMember.Name,
		MemberColor: GuestMember.Color,
		CreatedAt:   time.Now().UTC().Unix(),
	}
	row.setCategory(draft.CategoryID)
	if draft.RecurrencePattern != nil {
		raw, err := json.Marshal(draft.RecurrencePattern)
		if err != nil {
			return nil, fmt.Errorf("(*Demo).CreateEvent: can't encode recurrence pattern: %w", err)
		}
		row.RecurrencePattern = string(raw)
		row.RecurrenceEnd = draft.RecurrenceEnd
	}

	if _, err := d.db.NewInsert().
		Model(&row).
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("(*Demo).CreateEvent: %w", err)
	}

	ev, err := row.toModel(d.loc)
	if err != nil {
		return nil, fmt.Errorf("(*Demo).CreateEvent: %w", err)
	}
	return &ev, nil
}

// UpdateEvent merges the patch into the stored event and returns the
// result, or nil when the id is absent.
func (d *Demo) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	row := new(demoEvent)
	exists, err := d.db.NewSelect().
		Model((*demoEvent)(nil)).
		Where("id = ?", id).
		Exists(ctx)
	switch {
	case err != nil:
		return nil, fmt.Errorf("(*Demo).UpdateEvent: %w", err)
	case !exists:
		return nil, nil
	}
	if err := d.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Demo).UpdateEvent: %w", err)
	}

	if patch.Title != nil {
		row.Title = *patch.Title
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.StartTime != nil {
		row.StartUnix = patch.StartTime.Unix()
	}
	if patch.EndTime != nil {
		row.EndUnix = patch.EndTime.Unix()
	}
	if patch.AllDay != nil {
		row.AllDay = *patch.AllDay
	}
	if patch.CategoryID != nil {
		row.setCategory(*patch.CategoryID)
	}

	if _, err := d.db.NewUpdate().
		Model(row).
		WherePK().
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("(*Demo).UpdateEvent: %w", err)
	}

	ev, err := row.toModel(d.loc)
	if err != nil {
		return nil, fmt.Errorf("(*Demo).UpdateEvent: %w", err)
	}
	return &ev, nil
}

// DeleteEvent removes the event and reports whether the id existed.
func (d *Demo) DeleteEvent(ctx context.Context, id string) (bool, error) {
	res, err := d.db.NewDelete().
		Model((*demoEvent)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("(*Demo).DeleteEvent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("(*Demo).DeleteEvent: %w", err)
	}
	return affected > 0, nil
}

func (e *demoEvent) setCategory(categoryID string) {
	e.CategoryID = ""
	e.CategoryName = ""
	e.CategoryColor = ""
	if categoryID == "" {
		return
	}
	for _, cat := range DemoCategories {
		if cat.ID == categoryID {
			e.CategoryID = cat.ID
			e.CategoryName = cat.Name
			e.CategoryColor = cat.Color
			return
		}
	}
}

func (e *demoEvent) toModel(loc *time.Location) (model.Event, error) {
	ev := model.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   time.Unix(e.StartUnix, 0).In(loc),
		EndTime:     time.Unix(e.EndUnix, 0).In(loc),
		AllDay:      e.AllDay,
		Member:      model.Member{Name: e.MemberName, Color: e.MemberColor},
		CategoryID:  e.CategoryID,
	}
	if e.CategoryName != "" {
		ev.Category = &model.CategoryRef{Name: e.CategoryName, Color: e.CategoryColor}
	}
	if e.RecurrencePattern != "" {
		pattern := new(recur.Pattern)
		if err := json.Unmarshal([]byte(e.RecurrencePattern), pattern); err != nil {
			return model.Event{}, fmt.Errorf("(*demoEvent).toModel: bad recurrence pattern: %w", err)
		}
		ev.RecurrencePattern = pattern
		ev.RecurrenceEnd = e.RecurrenceEnd
	}
	return ev, nil
}
