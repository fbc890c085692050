package analyzer

// #region imports
import (
	"strings"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/decision"
)

// #endregion

// #region intent-weights

// intentWeights scores editor-vs-chat intent by keyword presence.
// Overlapping keywords all contribute. Hand-tuned, treat as configuration.
var intentWeights = map[string]float64{
	// Strong editor intent
	"create":   0.8,
	"generate": 0.8,
	"write":    0.7,
	"develop":  0.7,
	"design":   0.6,
	"modify":   0.6,

	// Possible editor intent
	"test":   0.4,
	"debug":  0.4,
	"deploy": 0.3,
	"run":    0.3,

	// Conversation-leaning
	"explain": -0.3,
	"what":    -0.3,
	"why":     -0.4,
	"how":     -0.2,
}

// #endregion

// #region complexity-weights

// complexityWeights scores technical depth; framework names weigh highest.
var complexityWeights = map[string]float64{
	"react":      0.8,
	"vue":        0.8,
	"angular":    0.8,
	"javascript": 0.6,
	"python":     0.6,
	"typescript": 0.6,
	"api":        0.5,
	"database":   0.5,
	"server":     0.5,
	"component":  0.7,
	"function":   0.4,
}

// #endregion

// #region scorers

// intentScore sums intent weights over substring presence, clamped to [-1, 1].
func intentScore(message string) float64 {
	lower := strings.ToLower(message)
	var score float64
	for kw, w := range intentWeights {
		if strings.Contains(lower, kw) {
			score += w
		}
	}
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}

// complexityScore sums complexity weights over substring presence,
// clamped to [0, 1].
func complexityScore(message string) float64 {
	lower := strings.ToLower(message)
	var score float64
	for kw, w := range complexityWeights {
		if strings.Contains(lower, kw) {
			score += w
		}
	}
	if score > 1 {
		return 1
	}
	return score
}

// affinityScore is a constant bias from the current mode alone: a session
// in chat leans slightly toward the editor and vice versa. Message content
// is not consulted.
func affinityScore(ectx decision.Context) float64 {
	if ectx.CurrentMode == decision.CurrentEditor {
		return -0.2
	}
	return 0.2
}

// #endregion
