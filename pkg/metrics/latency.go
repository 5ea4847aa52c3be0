package metrics

import (
	"math"
	"sort"
)

// LatencySummary captures page load timings reported by browsers.
type LatencySummary struct {
	Samples int     `json:"samples"`
	AvgMs   float64 `json:"avgMs"`
	P95Ms   float64 `json:"p95Ms"`
	MaxMs   float64 `json:"maxMs"`
}

// Summarize computes average, nearest-rank p95 and maximum in milliseconds.
// NaN and infinite samples are ignored.
func Summarize(samples []float64) LatencySummary {
	sorted := make([]float64, 0, len(samples))
	for _, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sorted = append(sorted, v)
	}
	if len(sorted) == 0 {
		return LatencySummary{}
	}
	sort.Float64s(sorted)

	// Running mean stays finite where a plain sum of large values would not.
	var mean float64
	for i, v := range sorted {
		mean += (v - mean) / float64(i+1)
	}
	rank := int(math.Ceil(0.95*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	return LatencySummary{
		Samples: len(sorted),
		AvgMs:   math.Round(mean),
		P95Ms:   sorted[rank],
		MaxMs:   sorted[len(sorted)-1],
	}
}
