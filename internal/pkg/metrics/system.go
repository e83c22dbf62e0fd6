package metrics

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

const (
	namespace = "ridersync"
	subsystem = "process"

	defaultCollectInterval = 5 * time.Second
)

// Демон живет на телефоне или ноутбуке курьера, поэтому смотрим прежде всего на свой процесс.
var (
	ProcessCPUUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "cpu_usage_percent",
		Help:      "CPU used by the rider-sync process",
	})

	ProcessResidentMemory = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "resident_memory_bytes",
		Help:      "Resident set size of the rider-sync process",
	})

	HeapAlloc = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "heap_alloc_bytes",
		Help:      "Go heap allocation; grows with the order snapshot and alert history",
	})

	Goroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "goroutines",
		Help:      "Number of goroutines; grows if event handlers or refreshes leak",
	})

	HostMemoryUsed = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "host_memory_used_percent",
		Help:      "Memory used on the rider's device",
	})
)

// StartSystemMetricsCollector снимает метрики процесса раз в интервал, пока жив ctx.
// Горутину запускает сам.
func StartSystemMetricsCollector(ctx context.Context) {
	self := selfProcess(ctx)

	go func() {
		ticker := time.NewTicker(defaultCollectInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				collect(ctx, self)
			}
		}
	}()
}

// CollectSystemMetrics - разовый снимок, без фонового цикла.
func CollectSystemMetrics(ctx context.Context) {
	collect(ctx, selfProcess(ctx))
}

// selfProcess возвращает nil, если ОС не отдает сведения о процессе (песочница, урезанный /proc).
func selfProcess(ctx context.Context) *process.Process {
	self, err := process.NewProcessWithContext(ctx, int32(os.Getpid())) //nolint:gosec // pid помещается в int32
	if err != nil {
		return nil
	}
	return self
}

func collect(ctx context.Context, self *process.Process) {
	if self != nil {
		if cpuPercent, err := self.CPUPercentWithContext(ctx); err == nil {
			ProcessCPUUsage.Set(cpuPercent)
		}
		if memInfo, err := self.MemoryInfoWithContext(ctx); err == nil {
			ProcessResidentMemory.Set(float64(memInfo.RSS))
		}
	}

	if vmStat, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		HostMemoryUsed.Set(vmStat.UsedPercent)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	HeapAlloc.Set(float64(m.Alloc))
	Goroutines.Set(float64(runtime.NumGoroutine()))
}
