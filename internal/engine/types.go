package engine

// #region imports
import (
	"context"
	"time"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/analyzer"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/decision"
)

// #endregion

// #region executor

// Executor realizes a context switch in the host application. Apply must
// be safe to retry and should return within its context deadline; the
// engine treats overruns as execution failures, never as decision errors.
type Executor interface {
	Apply(ctx context.Context, mode decision.Mode, ectx decision.Context) error
}

// NopExecutor acknowledges every switch without doing anything. Useful
// for hosts that only want decisions, and for tests.
type NopExecutor struct{}

func (NopExecutor) Apply(context.Context, decision.Mode, decision.Context) error { return nil }

// #endregion

// #region sink

// Sink receives completed decisions for persistence. Recording is
// best-effort; sink errors are logged and never affect the outcome.
type Sink interface {
	Log(message string, ectx decision.Context, out decision.Outcome) error
}

// #endregion

// #region config

// Config holds the engine's latency budgets and cache sizes. All values
// are fixed at construction.
type Config struct {
	TargetLatency     time.Duration // hard per-call deadline
	ExecBudget        time.Duration // executor sub-budget
	MessageCacheSize  int           // fast-path cache, keyed by raw message
	DecisionCacheSize int           // deep-path cache, keyed by message hash + mode
	MetricsCapacity   int           // ring buffer size
	MetricsWindow     int           // samples per report
	Analyzer          analyzer.Config
}

// DefaultConfig returns the tuned defaults the 100ms target was designed
// around.
func DefaultConfig() Config {
	return Config{
		TargetLatency:     100 * time.Millisecond,
		ExecBudget:        50 * time.Millisecond,
		MessageCacheSize:  1000,
		DecisionCacheSize: 1000,
		MetricsCapacity:   100,
		MetricsWindow:     20,
		Analyzer:          analyzer.DefaultConfig(),
	}
}

// #endregion
