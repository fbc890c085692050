package decision

// #region imports
import (
	"fmt"
	"hash/fnv"
)

// #endregion

// #region mode

// Mode is the terminal result of a switch decision.
type Mode string

const (
	ModeToEditor Mode = "chat_to_editor"
	ModeToChat   Mode = "editor_to_chat"
	ModeStay     Mode = "stay_current"
)

// #endregion

// #region path

// Path identifies which route through the engine produced a decision.
type Path string

const (
	PathFast Path = "fast"
	PathDeep Path = "deep"
	PathNone Path = "none"
)

// #endregion

// #region context

// CurrentMode values recognized in the request context.
const (
	CurrentEditor = "editor"
	CurrentChat   = "chat"
)

// Context is the snapshot of host state accompanying a message.
// The engine never mutates it.
type Context struct {
	CurrentMode    string
	LastAction     string
	UserPreference float32
}

// ParseContext extracts recognized keys from a raw key-value map,
// applying defaults for missing ones. Unrecognized keys are ignored.
func ParseContext(raw map[string]any) Context {
	ectx := Context{
		CurrentMode:    CurrentChat,
		UserPreference: 0.5,
	}
	if raw == nil {
		return ectx
	}
	if v, ok := raw["current_mode"].(string); ok && (v == CurrentEditor || v == CurrentChat) {
		ectx.CurrentMode = v
	}
	if v, ok := raw["last_action"].(string); ok {
		ectx.LastAction = v
	}
	switch v := raw["user_preference"].(type) {
	case float64:
		ectx.UserPreference = clampUnit(float32(v))
	case float32:
		ectx.UserPreference = clampUnit(v)
	}
	return ectx
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion

// #region cache-key

// CacheKey derives a deterministic key from message text and current mode.
// Other context fields do not participate: identical text in the same mode
// always maps to the same key.
func CacheKey(message, currentMode string) string {
	h := fnv.New64a()
	h.Write([]byte(message))
	return fmt.Sprintf("%x_%s", h.Sum64(), currentMode)
}

// #endregion

// #region outcome

// Outcome is returned to the caller for every Decide call, complete even
// when a phase timed out or the executor failed.
type Outcome struct {
	Switched        bool
	Mode            Mode
	Path            Path
	CacheHit        bool
	ExecutionFailed bool

	LatencyMs   float64 // total wall clock, entry to metrics record
	DetectionMs float64
	DecisionMs  float64 // zero on the fast path
	ExecutionMs float64
}

// #endregion
