package history

// #region imports
import "time"

// #endregion

// #region entry

// Entry is a single persisted decision.
type Entry struct {
	DecisionID      string
	ContextKey      string
	CurrentMode     string
	Mode            string
	Path            string
	CacheHit        bool
	Switched        bool
	ExecutionFailed bool
	DetectionMs     float64
	DecisionMs      float64
	ExecutionMs     float64
	TotalMs         float64
	CreatedAt       time.Time
}

// #endregion

// #region summary

// PathStats aggregates decisions that took one route through the engine.
type PathStats struct {
	Decisions  int
	AvgTotalMs float64
}

// Summary is the whole-log aggregate view.
type Summary struct {
	Decisions       int
	AvgTotalMs      float64
	CacheHitRate    float64 // 0-1
	SwitchRate      float64 // 0-1
	UnderTargetRate float64 // 0-1
	ByPath          map[string]PathStats
}

// #endregion
