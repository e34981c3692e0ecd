package metric

import (
	"log/slog"
	"time"

	"famcal/src-client/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func databaseEmptyRead(as *utils.AppState, tickerInterval *time.Duration) {
	databaseEmptyRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "famcal_database_empty_read_microsec",
		Help: "The latency of an empty database read in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseEmptyRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register famcal_database_empty_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("famcal_database_empty_read_microsec metric registered")
		databaseEmptyRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseEmptyRead) {
				case true:
					slog.Debug("famcal_database_empty_read_microsec metric unregistered")
				case false:
					slog.Warn("famcal_database_empty_read_microsec metric not registered")
				}
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

func storeRead(as *utils.AppState, clearTickerInterval *time.Duration) {
	storeRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "famcal_store_read_microsec",
		Help: "The latency of a local store read in microseconds",
	})
	good := true
	if err := prometheus.Register(storeRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register famcal_store_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("famcal_store_read_microsec metric registered")
		storeRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(storeRead) {
				case true:
					slog.Debug("famcal_store_read_microsec metric unregistered")
				case false:
					slog.Warn("famcal_store_read_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.StoreRead:
				storeRead.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				storeRead.Set(0)
			}
		}
	}()
}

func storeWrite(as *utils.AppState, clearTickerInterval *time.Duration) {
	storeWrite := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "famcal_store_write_microsec",
		Help: "The latency of a local store write in microseconds",
	})
	good := true
	if err := prometheus.Register(storeWrite); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register famcal_store_write_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("famcal_store_write_microsec metric registered")
		storeWrite.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(storeWrite) {
				case true:
					slog.Debug("famcal_store_write_microsec metric unregistered")
				case false:
					slog.Warn("famcal_store_write_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.StoreWrite:
				storeWrite.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				storeWrite.Set(0)
			}
		}
	}()
}

func backendFetch(as *utils.AppState, clearTickerInterval *time.Duration) {
	backendFetch := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "famcal_backend_fetch_microsec",
		Help: "The latency of a backend event fetch in microseconds",
	})
	good := true
	if err := prometheus.Register(backendFetch); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register famcal_backend_fetch_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("famcal_backend_fetch_microsec metric registered")
		backendFetch.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(backendFetch) {
				case true:
					slog.Debug("famcal_backend_fetch_microsec metric unregistered")
				case false:
					slog.Warn("famcal_backend_fetch_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.BackendFetch:
				backendFetch.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				backendFetch.Set(0)
			}
		}
	}()
}

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	databaseEmptyRead(as, &tickerInterval)
	storeRead(as, &clearTickerInterval)
	storeWrite(as, &clearTickerInterval)
	backendFetch(as, &clearTickerInterval)
}
