package classifier

// #region imports
import (
	"strings"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/cache"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/catalog"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/decision"
)

// #endregion

// #region fastpath

// FastPath is the O(1)/O(k) route through the engine: exact-message cache,
// then keyword table, then compiled patterns. It never calls the executor.
type FastPath struct {
	catalog *catalog.Catalog
	cache   *cache.Cache // keyed by raw message text
}

// New creates a fast-path classifier over the given catalog and message cache.
func New(cat *catalog.Catalog, messageCache *cache.Cache) *FastPath {
	return &FastPath{catalog: cat, cache: messageCache}
}

// #endregion

// #region match

// Match is a fast-path classification result.
type Match struct {
	Mode      decision.Mode
	FromCache bool
}

// #endregion

// #region classify

// Classify attempts a fast classification of message. ok=false means no
// rule applied and the caller should fall through to deep analysis.
// Priority order: cache, keyword table, patterns; first hit wins.
func (f *FastPath) Classify(message string) (Match, bool) {
	if e, ok := f.cache.Get(message); ok {
		return Match{Mode: e.Mode, FromCache: true}, true
	}

	lower := strings.ToLower(message)

	for _, token := range strings.Fields(lower) {
		if mode, ok := f.catalog.Keyword(token); ok {
			f.cache.Put(message, mode)
			return Match{Mode: mode}, true
		}
	}

	if mode, ok := f.catalog.MatchPattern(message); ok {
		f.cache.Put(message, mode)
		return Match{Mode: mode}, true
	}

	return Match{}, false
}

// #endregion
