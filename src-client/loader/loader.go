// Package loader keeps the current snapshot of events and categories for
// the visible range. Reloads are re-derived from scratch on every
// navigation; there is no incremental caching, deduplication or retry. A
// reload that finishes after a newer one has started is discarded, so a
// slow response can't overwrite the range the user navigated to.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"famcal/src-client/grid"
	"famcal/src-client/model"
)

// Source lists events and categories for a date range. Both the remote
// backend client and the demo store satisfy it; demo mode simply skips the
// identity gate.
type Source interface {
	ListEvents(ctx context.Context, start, end grid.Date) ([]model.Event, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// Identity is the verify-or-register handshake of the authenticated path.
type Identity interface {
	VerifyMember(ctx context.Context) (bool, error)
	RegisterMember(ctx context.Context, displayName, color string) error
}

// Loader owns the event/category snapshot.
type Loader struct {
	source      Source
	identity    Identity // nil in demo mode
	displayName string

	mu         sync.Mutex
	verified   bool
	generation uint64
	events     []model.Event
	categories []model.Category
}

func New(source Source, identity Identity, displayName string) *Loader {
	return &Loader{
		source:      source,
		identity:    identity,
		displayName: displayName,
	}
}

// FetchRange is the padded range loaded for a visible month: one calendar
// month of slack on both sides, so adjacent-month cells in the month grid
// are already populated.
func FetchRange(ref grid.Date) (grid.Date, grid.Date) {
	first := grid.Date{Year: ref.Year, Month: ref.Month, Day: 1}
	start := first.AddMonths(-1)
	end := first.AddMonths(2).AddDays(-1)
	return start, end
}

// Reload fetches events and categories for the padded range around ref and
// replaces the snapshot, unless a newer reload started in the meantime, in
// which case the fetched data is dropped. On failure the previous snapshot
// stays intact.
func (l *Loader) Reload(ctx context.Context, ref grid.Date) error {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.mu.Unlock()

	if err := l.ensureIdentity(ctx); err != nil {
		return fmt.Errorf("(*Loader).Reload: %w", err)
	}

	start, end := FetchRange(ref)
	events, err := l.source.ListEvents(ctx, start, end)
	if err != nil {
		slog.Error("can't load events, keeping previous snapshot", "error", err)
		return fmt.Errorf("(*Loader).Reload: %w", err)
	}
	categories, err := l.source.ListCategories(ctx)
	if err != nil {
		slog.Error("can't load categories, keeping previous snapshot", "error", err)
		return fmt.Errorf("(*Loader).Reload: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generation != gen {
		slog.Debug("discarding stale reload", "generation", gen, "current", l.generation)
		return nil
	}
	l.events = events
	l.categories = categories
	return nil
}

// List fetches events for an explicit range, bypassing the snapshot. Used
// by the raw listing endpoint where the caller picks its own range.
func (l *Loader) List(ctx context.Context, start, end grid.Date) ([]model.Event, error) {
	if err := l.ensureIdentity(ctx); err != nil {
		return nil, fmt.Errorf("(*Loader).List: %w", err)
	}
	events, err := l.source.ListEvents(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("(*Loader).List: %w", err)
	}
	return events, nil
}

// ListCategories fetches the category set, bypassing the snapshot.
func (l *Loader) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := l.ensureIdentity(ctx); err != nil {
		return nil, fmt.Errorf("(*Loader).ListCategories: %w", err)
	}
	categories, err := l.source.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("(*Loader).ListCategories: %w", err)
	}
	return categories, nil
}

// Snapshot returns copies of the current event and category lists.
func (l *Loader) Snapshot() ([]model.Event, []model.Category) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Event(nil), l.events...),
		append([]model.Category(nil), l.categories...)
}

// ensureIdentity runs the verify-or-register handshake exactly once before
// the first authenticated load. A handshake failure is logged and the gate
// opens anyway, so the UI keeps working against whatever the source
// returns.
func (l *Loader) ensureIdentity(ctx context.Context) error {
	if l.identity == nil {
		return nil
	}
	l.mu.Lock()
	verified := l.verified
	l.mu.Unlock()
	if verified {
		return nil
	}

	ok, err := l.identity.VerifyMember(ctx)
	if err != nil {
		slog.Warn("can't verify calendar member", "error", err)
	} else if !ok {
		if err := l.identity.RegisterMember(ctx, l.displayName, ""); err != nil {
			slog.Warn("can't auto-register calendar member", "error", err)
		} else {
			slog.Info("auto-registered as calendar member", "display_name", l.displayName)
		}
	}

	l.mu.Lock()
	l.verified = true
	l.mu.Unlock()
	return nil
}
