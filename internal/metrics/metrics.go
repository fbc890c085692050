package metrics

// #region imports
import (
	"log"
	"sync"
)

// #endregion

// #region sample

// Sample is one decision's latency breakdown.
type Sample struct {
	DetectionMs float64
	DecisionMs  float64
	ExecutionMs float64
	TotalMs     float64
	CacheHit    bool
}

// #endregion

// #region report

// Report aggregates the most recent samples.
type Report struct {
	AvgTotalMs      float64
	AvgDetectionMs  float64
	AvgDecisionMs   float64
	AvgExecutionMs  float64
	CacheHitRate    float64 // 0-1
	UnderTargetRate float64 // 0-1, share of samples within the latency target
	TargetMs        float64
	SampleSize      int
	Status          string // "excellent" | "needs_optimization" | "no_data"
}

// #endregion

// #region recorder

// Recorder keeps recent latency samples in a fixed-capacity ring buffer.
// On overflow the oldest sample is dropped. Reads snapshot under the same
// mutex, so Report never blocks a Record beyond the lock hold.
type Recorder struct {
	mu       sync.Mutex
	samples  []Sample
	next     int // ring write position
	filled   bool
	targetMs float64
	window   int // samples considered by Report
}

// NewRecorder creates a recorder with the given ring capacity, report
// window, and latency target in milliseconds.
func NewRecorder(capacity, window int, targetMs float64) *Recorder {
	if capacity <= 0 {
		capacity = 100
	}
	if window <= 0 || window > capacity {
		window = capacity
	}
	return &Recorder{
		samples:  make([]Sample, capacity),
		targetMs: targetMs,
		window:   window,
	}
}

// #endregion

// #region record

// Record appends a sample, evicting the oldest on overflow.
func (r *Recorder) Record(s Sample) {
	r.mu.Lock()
	r.samples[r.next] = s
	r.next++
	if r.next == len(r.samples) {
		r.next = 0
		r.filled = true
	}
	r.mu.Unlock()

	if s.TotalMs > r.targetMs {
		log.Printf("[METRICS] latency over target: %.1fms > %.0fms", s.TotalMs, r.targetMs)
	}
}

// #endregion

// #region report-fn

// Report aggregates over the most recent window of samples, or fewer if
// the buffer has not filled that far yet.
func (r *Recorder) Report() Report {
	recent := r.snapshot()
	if len(recent) == 0 {
		return Report{TargetMs: r.targetMs, Status: "no_data"}
	}

	var rep Report
	rep.TargetMs = r.targetMs
	rep.SampleSize = len(recent)

	hits, underTarget := 0, 0
	for _, s := range recent {
		rep.AvgTotalMs += s.TotalMs
		rep.AvgDetectionMs += s.DetectionMs
		rep.AvgDecisionMs += s.DecisionMs
		rep.AvgExecutionMs += s.ExecutionMs
		if s.CacheHit {
			hits++
		}
		if s.TotalMs <= r.targetMs {
			underTarget++
		}
	}
	n := float64(len(recent))
	rep.AvgTotalMs /= n
	rep.AvgDetectionMs /= n
	rep.AvgDecisionMs /= n
	rep.AvgExecutionMs /= n
	rep.CacheHitRate = float64(hits) / n
	rep.UnderTargetRate = float64(underTarget) / n

	if rep.AvgTotalMs <= r.targetMs {
		rep.Status = "excellent"
	} else {
		rep.Status = "needs_optimization"
	}
	return rep
}

// snapshot copies the most recent window of samples in insertion order.
func (r *Recorder) snapshot() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := r.next
	if r.filled {
		size = len(r.samples)
	}
	if size == 0 {
		return nil
	}

	count := r.window
	if count > size {
		count = size
	}

	out := make([]Sample, 0, count)
	start := r.next - count
	if start < 0 {
		start += len(r.samples)
	}
	for i := 0; i < count; i++ {
		out = append(out, r.samples[(start+i)%len(r.samples)])
	}
	return out
}

// #endregion
