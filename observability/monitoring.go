// Package observability aggregates runtime metrics for the console
// reporter and the debug server.
package observability

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Stats is the metrics snapshot served to the reporter and debug UI.
type Stats struct {
	StoreWrites  uint64  `json:"store_writes"`
	StoreAppends uint64  `json:"store_appends"`
	StoreDeletes uint64  `json:"store_deletes"`
	OpsPerSecond float64 `json:"ops_per_second"`

	AllocMemMb uint64  `json:"alloc_mem_mb"`
	NumGC      uint32  `json:"num_gc"`
	CPUPercent float64 `json:"cpu_percent"`
	RSSPercent float32 `json:"rss_percent"`

	RecentOps []RecentOp `json:"recent_ops"`
}

// RecentOp is one store mutation kept for the debug UI.
type RecentOp struct {
	Kind      string `json:"kind"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

const recentOpsKept = 20

// Monitor keeps atomic counters fed by the store telemetry stream and
// samples the process once per second.
type Monitor struct {
	log    *slog.Logger
	mu     sync.RWMutex
	latest Stats

	writes  uint64
	appends uint64
	deletes uint64
	window  uint64 // ops since the last sample, for the rate

	proc      *process.Process
	lastCheck time.Time
}

func NewMonitor(log *slog.Logger) *Monitor {
	// Self-observation only; a missing process handle just disables the
	// CPU and RSS gauges.
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("process metrics unavailable", slog.Any("error", err))
		proc = nil
	}
	return &Monitor{
		log:       log,
		proc:      proc,
		lastCheck: time.Now(),
		latest:    Stats{RecentOps: make([]RecentOp, 0)},
	}
}

// Record counts one store mutation. Called from the telemetry worker,
// never from the write path itself.
func (m *Monitor) Record(kind, path string, at time.Time) {
	switch kind {
	case "write":
		atomic.AddUint64(&m.writes, 1)
	case "append":
		atomic.AddUint64(&m.appends, 1)
	case "delete":
		atomic.AddUint64(&m.deletes, 1)
	}
	atomic.AddUint64(&m.window, 1)

	m.mu.Lock()
	defer m.mu.Unlock()
	op := RecentOp{Kind: kind, Path: path, Timestamp: at.Format("15:04:05")}
	m.latest.RecentOps = append([]RecentOp{op}, m.latest.RecentOps...)
	if len(m.latest.RecentOps) > recentOpsKept {
		m.latest.RecentOps = m.latest.RecentOps[:recentOpsKept]
	}
}

// Listen refreshes the snapshot once per second until the context ends.
func (m *Monitor) Listen(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info("monitor stopped")
			return
		case <-ticker.C:
			m.updateStats()
		}
	}
}

func (m *Monitor) updateStats() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	duration := now.Sub(m.lastCheck).Seconds()
	if duration > 0 {
		ops := atomic.SwapUint64(&m.window, 0)
		m.latest.OpsPerSecond = float64(ops) / duration
	}
	m.lastCheck = now

	m.latest.StoreWrites = atomic.LoadUint64(&m.writes)
	m.latest.StoreAppends = atomic.LoadUint64(&m.appends)
	m.latest.StoreDeletes = atomic.LoadUint64(&m.deletes)

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.latest.AllocMemMb = ms.Alloc / 1024 / 1024
	m.latest.NumGC = ms.NumGC

	if m.proc != nil {
		if cpu, err := m.proc.CPUPercent(); err == nil {
			m.latest.CPUPercent = cpu
		}
		if ram, err := m.proc.MemoryPercent(); err == nil {
			m.latest.RSSPercent = ram
		}
	}

	m.log.Debug("stats refreshed",
		"ops_per_second", m.latest.OpsPerSecond,
		"writes", m.latest.StoreWrites,
		"mem_mb", m.latest.AllocMemMb,
	)
}

func (m *Monitor) GetLatest() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}
