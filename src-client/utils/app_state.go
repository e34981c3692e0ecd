package utils

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"sync"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"famcal/src-client/backend"
	"famcal/src-client/loader"
	"famcal/src-client/store"
)

type AppState struct {
	Config *Config
	RawDB  *sql.DB
	BunDB  *bun.DB

	// Store is always available; Backend is nil in demo mode.
	Store   *store.Demo
	Backend *backend.Client
	Loader  *loader.Loader

	MetricChans        *Metric
	AppCloseSignalChan chan os.Signal

	gracefulShutdownMutex sync.Mutex
	gracefulShutdownChans []*chan struct{}
}

func NewAppState() *AppState {
	as := &AppState{}

	// env
	as.Config = NewConfig()

	// database
	var err error
	as.RawDB, err = sql.Open(sqliteshim.ShimName, as.Config.GetSqlitePath()+"?mode=rwc")
	if err != nil {
		slog.Error("cannot open sqlite database", "error", err)
		os.Exit(1)
	}
	as.RawDB.SetMaxIdleConns(8)

	as.BunDB = bun.NewDB(as.RawDB, sqlitedialect.New())
	as.BunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(false),
		bundebug.FromEnv("BUNDEBUG"),
	))

	as.Store = store.NewDemo(as.BunDB, as.Config.GetLocation())
	if err := as.Store.CreateSchema(context.Background()); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}

	// event source: remote backend when configured, local store otherwise
	if backendURL := as.Config.GetBackendURL(); backendURL != "" {
		as.Backend = backend.New(backendURL, as.Config.GetBackendToken())
		as.Loader = loader.New(as.Backend, as.Backend, CleanupString(as.Config.GetDisplayName()))
	} else {
		as.Loader = loader.New(as.Store, nil, "")
	}

	as.MetricChans = NewMetric()
	as.AppCloseSignalChan = make(chan os.Signal, 1)

	return as
}

// DemoMode reports whether events live in the local fallback store instead
// of the remote backend.
func (as *AppState) DemoMode() bool {
	return as.Backend == nil
}

// CreateGracefulShutdownChan returns a channel that gets closed when the
// app is shutting down.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.gracefulShutdownMutex.Lock()
	defer as.gracefulShutdownMutex.Unlock()

	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, &ch)
	return &ch
}

// GracefulShutdown notifies everyone holding a shutdown channel and closes
// the database.
func (as *AppState) GracefulShutdown() {
	as.gracefulShutdownMutex.Lock()
	defer as.gracefulShutdownMutex.Unlock()

	for _, ch := range as.gracefulShutdownChans {
		close(*ch)
	}
	as.gracefulShutdownChans = nil

	if err := as.RawDB.Close(); err != nil {
		slog.Warn("can't close database", "error", err)
	}
}
