package workers

import (
	"context"
	"log/slog"

	"alumnihub/observability"
	"alumnihub/store"
)

// TelemetryWorker drains the store's best-effort event channel into
// the monitor. If it lags, the store drops events rather than block a
// writer; the counters are indicative, not accounting.
type TelemetryWorker struct {
	log     *slog.Logger
	events  <-chan store.OpEvent
	monitor *observability.Monitor
}

func NewTelemetryWorker(log *slog.Logger, events <-chan store.OpEvent,
	monitor *observability.Monitor) *TelemetryWorker {
	return &TelemetryWorker{log: log, events: events, monitor: monitor}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("telemetry worker stopping")
			return nil
		case ev, ok := <-w.events:
			if !ok {
				return nil
			}
			w.monitor.Record(string(ev.Kind), ev.Path, ev.At)
		}
	}
}
