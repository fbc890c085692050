package catalog

// #region imports
import (
	"fmt"
	"regexp"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/decision"
)

// #endregion

// #region keywords

// defaultKeywords maps lowercase tokens to a switch mode. Every built-in
// keyword biases toward editor activation; chat-direction switches only
// come out of deep analysis.
var defaultKeywords = map[string]decision.Mode{
	// Direct triggers
	"claudeditor": decision.ModeToEditor,
	"editor":      decision.ModeToEditor,
	"ce":          decision.ModeToEditor,

	// UI / code related
	"react":     decision.ModeToEditor,
	"vue":       decision.ModeToEditor,
	"component": decision.ModeToEditor,
	"ui":        decision.ModeToEditor,
	"interface": decision.ModeToEditor,

	// Development related
	"code":    decision.ModeToEditor,
	"develop": decision.ModeToEditor,
	"build":   decision.ModeToEditor,
}

// #endregion

// #region patterns

// defaultPatterns are checked in declared order against the raw message;
// first match wins. All map to editor activation.
var defaultPatterns = []string{
	`(?i)(launch|start|open)\s*(claudeditor|editor)`,
	`(?i)switch\s*to\s*(claudeditor|editor)`,
	`(?i)create\s*(an?\s+)?(react|vue|angular)\s*component`,
	`(?i)generate\s*(an?\s+)?(ui|interface)`,
}

// #endregion

// #region catalog

// Catalog holds the precompiled fast-match rules. Immutable after New.
type Catalog struct {
	keywords map[string]decision.Mode
	patterns []*regexp.Regexp
}

// New compiles the given patterns and builds a catalog. An invalid regex
// is the only fatal initialization error in the engine.
func New(keywords map[string]decision.Mode, patterns []string) (*Catalog, error) {
	kw := make(map[string]decision.Mode, len(keywords))
	for k, m := range keywords {
		kw[k] = m
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}

	return &Catalog{keywords: kw, patterns: compiled}, nil
}

// Default builds the catalog of built-in rules. Panics only if the
// built-in patterns themselves are invalid.
func Default() *Catalog {
	c, err := New(defaultKeywords, defaultPatterns)
	if err != nil {
		panic(err)
	}
	return c
}

// #endregion

// #region lookup

// Keyword probes the exact keyword table with a lowercase token.
func (c *Catalog) Keyword(token string) (decision.Mode, bool) {
	m, ok := c.keywords[token]
	return m, ok
}

// MatchPattern runs the compiled patterns in declared order against the
// raw message. First match wins.
func (c *Catalog) MatchPattern(message string) (decision.Mode, bool) {
	for _, re := range c.patterns {
		if re.MatchString(message) {
			return decision.ModeToEditor, true
		}
	}
	return "", false
}

// #endregion
