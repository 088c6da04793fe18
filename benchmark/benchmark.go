// benchmark.go
// A reusable benchmarking module for Shift Buddy
// Measures execution time and memory usage for any wrapped command

package benchmark

import (
	"log/slog"
	"os"
	"runtime"
	"time"
)

const mb = 1024.0 * 1024.0

// Run wraps f to measure its runtime and memory usage, reported through the
// default slog logger together with host and OS information. f's error is
// returned unchanged.
func Run(label string, f func() error) error {
	log := slog.Default().With("benchmark", label)

	host, _ := os.Hostname()
	log.Info("Benchmark starting",
		"timestamp", time.Now().Format(time.RFC1123),
		"hostname", host,
		"go_version", runtime.Version(),
		"os_arch", runtime.GOOS+"/"+runtime.GOARCH,
		"cpu_cores", runtime.NumCPU(),
	)

	runtime.GC() // Start from a clean heap
	var memStart, memEnd runtime.MemStats
	runtime.ReadMemStats(&memStart)
	startGoroutines := runtime.NumGoroutine()
	start := time.Now()

	err := f()

	elapsed := time.Since(start)
	runtime.ReadMemStats(&memEnd)

	log.Info("Benchmark finished",
		"elapsed", elapsed,
		"memory_used_mb", (float64(memEnd.Alloc)-float64(memStart.Alloc))/mb, // Change in live heap
		"total_allocated_mb", float64(memEnd.TotalAlloc-memStart.TotalAlloc)/mb,
		"peak_heap_mb", float64(memEnd.HeapAlloc)/mb,
		"gc_cycles", memEnd.NumGC-memStart.NumGC,
		"system_memory_mb", float64(memEnd.Sys)/mb,
		"goroutines_start", startGoroutines,
		"goroutines_end", runtime.NumGoroutine(),
		"failed", err != nil,
	)
	return err
}
