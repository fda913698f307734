package pipeline

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/khaledhikmat/vs-matting/model"
)

func summarize(stats model.RunStats, procTimes []float64, uptime time.Duration) model.RunStats {
	stats.Uptime = uptime.Seconds()
	stats.Timestamp = time.Now().Unix()
	if stats.Uptime > 0 {
		stats.FPS = float64(stats.Frames) / stats.Uptime
	}

	if len(procTimes) == 0 {
		return stats
	}

	sorted := make([]float64, len(procTimes))
	copy(sorted, procTimes)
	sort.Float64s(sorted)

	stats.AvgProcTime = stat.Mean(sorted, nil)
	stats.P95ProcTime = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return stats
}
