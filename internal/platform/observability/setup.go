// Package observability provides lightweight span and metric recording for
// the API and the generation pipeline, backed by structured logging.
package observability

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"brandkit-server-go/internal/domain/eventbus"
)

// Config captures observability toggles.
type Config struct {
	Enabled bool
}

// ShutdownFunc allows callers to tear down any observability exporters.
type ShutdownFunc func(context.Context) error

var (
	loggerMu             sync.RWMutex
	instrumentationLog   *slog.Logger
	instrumentationState Config
)

func currentLogger() (*slog.Logger, Config) {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return instrumentationLog, instrumentationState
}

// Setup wires span recording and subscribes async metric handlers to the
// domain event bus, so recording never blocks a publishing request handler.
func Setup(ctx context.Context, cfg Config, logger *slog.Logger) (ShutdownFunc, error) {
	loggerMu.Lock()
	instrumentationLog = logger
	instrumentationState = cfg
	loggerMu.Unlock()

	if !cfg.Enabled {
		if logger != nil {
			logger.InfoContext(ctx, "[OBSERVABILITY][SETUP] disabled")
		}
		return func(context.Context) error { return nil }, nil
	}

	onGeneration := func(data eventbus.GenerationEventData) {
		RecordMetric(context.Background(), "generation_completed", float64(data.Succeeded), map[string]string{
			"kind": data.Kind,
		})
	}
	onExport := func(data eventbus.ExportEventData) {
		RecordMetric(context.Background(), "export_completed", float64(data.ArchiveBytes), map[string]string{
			"skipped": strconv.Itoa(data.SkippedCount),
		})
	}
	if err := eventbus.SubscribeAsync(eventbus.EventGenerationCompleted, onGeneration); err != nil {
		return nil, err
	}
	if err := eventbus.SubscribeAsync(eventbus.EventExportCompleted, onExport); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.InfoContext(ctx, "[OBSERVABILITY][SETUP] metrics subscribed")
	}
	return func(context.Context) error {
		_ = eventbus.Unsubscribe(eventbus.EventGenerationCompleted, onGeneration)
		_ = eventbus.Unsubscribe(eventbus.EventExportCompleted, onExport)
		return nil
	}, nil
}

