package metrics

import (
	"fmt"
	"runtime"
	"time"
)

// SysHealth represents real-time process metrics reported by /health.
type SysHealth struct {
	Status         string `json:"status"`
	AllocMB        uint64 `json:"alloc_mb"`
	SysMB          uint64 `json:"sys_mb"`
	NumGC          uint32 `json:"num_gc"`
	Goroutines     int    `json:"goroutines"`
	HeapInUse      string `json:"heap_in_use"`
	Uptime         string `json:"uptime"`
	StoreVersion   uint64 `json:"store_version"`
	MealPlansReady bool   `json:"meal_plans_ready"`
}

// GetSysHealth collects real-time health data. started is the process start time.
func GetSysHealth(started time.Time) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SysHealth{
		Status:     "ok",
		AllocMB:    m.Alloc / 1024 / 1024,
		SysMB:      m.Sys / 1024 / 1024,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
		HeapInUse:  formatBytes(int64(m.HeapInuse)),
		Uptime:     time.Since(started).Round(time.Second).String(),
	}
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
