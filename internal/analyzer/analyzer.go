package analyzer

// #region imports
import (
	"context"
	"log"
	"math"
	"time"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/cache"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/decision"
)

// #endregion

// #region config

// Config holds the deep-path thresholds and budget.
type Config struct {
	SwitchThreshold float64       // total above this → ModeToEditor
	StayThreshold   float64       // total below this → ModeToChat
	Budget          time.Duration // sub-budget for the scoring fan-out
}

// DefaultConfig returns the hand-tuned defaults.
func DefaultConfig() Config {
	return Config{
		SwitchThreshold: 0.7,
		StayThreshold:   -0.3,
		Budget:          30 * time.Millisecond,
	}
}

// #endregion

// #region analyzer

// Analyzer is the deep path: three independent scorers run concurrently
// and their sum is thresholded into a mode. Aggregate decisions are
// memoized in the decision cache.
type Analyzer struct {
	cache  *cache.Cache // keyed by decision.CacheKey
	config Config
}

// New creates an analyzer over the given decision cache.
func New(decisionCache *cache.Cache, config Config) *Analyzer {
	return &Analyzer{cache: decisionCache, config: config}
}

// #endregion

// #region result

// Result is a deep-path decision with its cache provenance.
type Result struct {
	Mode      decision.Mode
	FromCache bool
}

// #endregion

// #region analyze

// Analyze decides a mode for the message. The cached decision is returned
// immediately when present; otherwise all three scorers run concurrently
// and the call blocks until the slowest returns or the budget expires.
// A scorer that misses the budget contributes a neutral zero.
func (a *Analyzer) Analyze(ctx context.Context, message string, ectx decision.Context) Result {
	key := decision.CacheKey(message, ectx.CurrentMode)
	if e, ok := a.cache.Get(key); ok {
		return Result{Mode: e.Mode, FromCache: true}
	}

	budget, cancel := context.WithTimeout(ctx, a.config.Budget)
	defer cancel()

	results := make(chan float64, 3)
	go func() { results <- intentScore(message) }()
	go func() { results <- complexityScore(message) }()
	go func() { results <- affinityScore(ectx) }()

	var total float64
	dropped := 0
collect:
	for i := 0; i < 3; i++ {
		if budget.Err() != nil {
			dropped = 3 - i
			break
		}
		select {
		case s := <-results:
			total += s
		case <-budget.Done():
			dropped = 3 - i
			break collect
		}
	}
	if dropped > 0 {
		// Missing sub-scores degrade to 0 rather than faulting the call.
		log.Printf("[DEEP] scoring budget exceeded, %d sub-score(s) dropped", dropped)
	}

	// Weights are tenth-step constants; rounding to centiunits keeps the
	// strict threshold comparison exact under float accumulation.
	total = math.Round(total*100) / 100

	mode := decision.ModeStay
	switch {
	case total > a.config.SwitchThreshold:
		mode = decision.ModeToEditor
	case total < a.config.StayThreshold:
		mode = decision.ModeToChat
	}

	// Only complete aggregations are worth memoizing.
	if dropped == 0 {
		a.cache.Put(key, mode)
	}
	return Result{Mode: mode}
}

// #endregion
