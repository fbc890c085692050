package engine

// #region imports
import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/analyzer"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/cache"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/catalog"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/classifier"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/decision"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/metrics"
)

// #endregion

// #region engine-struct

// Engine is the top-level coordinator: fast-path classification, deep
// analysis on miss, switch execution, and latency recording.
type Engine struct {
	fast     *classifier.FastPath
	deep     *analyzer.Analyzer
	exec     Executor
	recorder *metrics.Recorder
	sink     Sink // nil = no persistence

	msgCache *cache.Cache
	decCache *cache.Cache

	config  Config
	enabled bool
}

// #endregion

// #region constructor

// New creates a fully wired engine. sink may be nil. Construction is the
// only point where a configuration error can surface; a returned engine
// is never partially initialized.
// Kill switch: set ENGINE_ENABLED=false to classify without ever calling
// the executor.
func New(cat *catalog.Catalog, exec Executor, sink Sink, config Config) (*Engine, error) {
	if cat == nil {
		return nil, errors.New("engine: nil catalog")
	}
	if exec == nil {
		return nil, errors.New("engine: nil executor")
	}

	msgCache, err := cache.New(config.MessageCacheSize)
	if err != nil {
		return nil, err
	}
	decCache, err := cache.New(config.DecisionCacheSize)
	if err != nil {
		return nil, err
	}

	enabled := true
	if v := os.Getenv("ENGINE_ENABLED"); v == "false" {
		enabled = false
	}

	return &Engine{
		fast:     classifier.New(cat, msgCache),
		deep:     analyzer.New(decCache, config.Analyzer),
		exec:     exec,
		recorder: metrics.NewRecorder(config.MetricsCapacity, config.MetricsWindow, float64(config.TargetLatency.Milliseconds())),
		sink:     sink,
		msgCache: msgCache,
		decCache: decCache,
		config:   config,
		enabled:  enabled,
	}, nil
}

// Enabled returns whether the engine will call the executor.
func (e *Engine) Enabled() bool {
	return e.enabled
}

// #endregion

// #region decide

// Decide runs one message through the pipeline and always returns a
// complete outcome: executor failures and phase timeouts degrade, they
// never propagate as errors.
func (e *Engine) Decide(ctx context.Context, message string, raw map[string]any) decision.Outcome {
	start := time.Now()
	ectx := decision.ParseContext(raw)

	ctx, cancel := context.WithTimeout(ctx, e.config.TargetLatency)
	defer cancel()

	detStart := time.Now()
	match, hit := e.fast.Classify(message)
	detectionMs := msSince(detStart)

	var out decision.Outcome
	if hit {
		out = e.execute(ctx, match.Mode, ectx)
		out.Path = decision.PathFast
		out.CacheHit = match.FromCache
	} else {
		decStart := time.Now()
		res := e.deep.Analyze(ctx, message, ectx)
		decisionMs := msSince(decStart)

		if res.Mode == decision.ModeStay {
			out = decision.Outcome{Mode: decision.ModeStay, Path: decision.PathNone}
		} else {
			out = e.execute(ctx, res.Mode, ectx)
			out.Path = decision.PathDeep
		}
		out.CacheHit = res.FromCache
		out.DecisionMs = decisionMs
	}

	out.DetectionMs = detectionMs
	out.LatencyMs = msSince(start)

	log.Printf("[ENGINE] decide: mode=%s path=%s switched=%v cache_hit=%v latency=%.1fms",
		out.Mode, out.Path, out.Switched, out.CacheHit, out.LatencyMs)

	e.recorder.Record(metrics.Sample{
		DetectionMs: out.DetectionMs,
		DecisionMs:  out.DecisionMs,
		ExecutionMs: out.ExecutionMs,
		TotalMs:     out.LatencyMs,
		CacheHit:    out.CacheHit,
	})

	if e.sink != nil {
		if err := e.sink.Log(message, ectx, out); err != nil {
			log.Printf("[ENGINE] failed to record outcome: %v", err)
		}
	}

	return out
}

// #endregion

// #region execute

// execute applies a switch through the executor under its sub-budget.
// A failed or timed-out Apply is reported, not returned: the outcome
// still completes with ExecutionFailed set.
func (e *Engine) execute(ctx context.Context, mode decision.Mode, ectx decision.Context) decision.Outcome {
	out := decision.Outcome{Mode: mode}
	if !e.enabled {
		return out
	}

	execCtx, cancel := context.WithTimeout(ctx, e.config.ExecBudget)
	defer cancel()

	execStart := time.Now()
	err := e.exec.Apply(execCtx, mode, ectx)
	out.ExecutionMs = msSince(execStart)

	if err != nil {
		log.Printf("[ENGINE] execute %s failed: %v", mode, err)
		out.ExecutionFailed = true
		return out
	}
	out.Switched = true
	return out
}

// #endregion

// #region diagnostics

// Report returns the rolling latency report.
func (e *Engine) Report() metrics.Report {
	return e.recorder.Report()
}

// ClearCaches empties both caches. Operational reset only.
func (e *Engine) ClearCaches() {
	e.msgCache.Clear()
	e.decCache.Clear()
	log.Printf("[ENGINE] caches cleared")
}

// #endregion

// #region helpers

func msSince(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}

// #endregion
