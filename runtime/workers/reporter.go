package workers

import (
	"context"
	"fmt"
	"time"

	"alumnihub/observability"
)

// ReporterWorker prints a metrics line to the console at a fixed
// interval, the poor man's dashboard while the hub runs.
type ReporterWorker struct {
	monitor  *observability.Monitor
	interval time.Duration
}

func NewReporterWorker(monitor *observability.Monitor, interval time.Duration) *ReporterWorker {
	return &ReporterWorker{monitor: monitor, interval: interval}
}

func (w *ReporterWorker) Run(ctx context.Context) error {
	startTime := time.Now()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.printStats(startTime)
			fmt.Println("\nReporter stopped.")
			return nil
		case <-ticker.C:
			w.printStats(startTime)
		}
	}
}

func (w *ReporterWorker) printStats(startTime time.Time) {
	stats := w.monitor.GetLatest()
	duration := time.Since(startTime).Round(time.Second).String()

	fmt.Printf("\r[%s] RAM: %dMB | CPU: %.1f%% | Ops/s: %.1f | Writes: %d | Appends: %d | Deletes: %d",
		duration,
		stats.AllocMemMb,
		stats.CPUPercent,
		stats.OpsPerSecond,
		stats.StoreWrites,
		stats.StoreAppends,
		stats.StoreDeletes,
	)
}
