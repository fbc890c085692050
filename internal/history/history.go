package history

// #region imports
import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/decision"
)

// #endregion

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS decision_log (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	decision_id      TEXT NOT NULL,
	context_key      TEXT NOT NULL,
	current_mode     TEXT NOT NULL,
	mode             TEXT NOT NULL,
	path             TEXT NOT NULL,
	cache_hit        INTEGER NOT NULL DEFAULT 0,
	switched         INTEGER NOT NULL DEFAULT 0,
	execution_failed INTEGER NOT NULL DEFAULT 0,
	detection_ms     REAL NOT NULL,
	decision_ms      REAL NOT NULL,
	execution_ms     REAL NOT NULL,
	total_ms         REAL NOT NULL,
	created_at       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decision_log_path
ON decision_log(path, created_at);
`

// #endregion

// #region store

// Store persists decision provenance in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion

// #region log

// Log persists one completed decision. Satisfies the engine's sink.
func (s *Store) Log(message string, ectx decision.Context, out decision.Outcome) error {
	_, err := s.db.Exec(`
		INSERT INTO decision_log
		(decision_id, context_key, current_mode, mode, path, cache_hit,
		 switched, execution_failed, detection_ms, decision_ms, execution_ms,
		 total_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		decision.CacheKey(message, ectx.CurrentMode),
		ectx.CurrentMode,
		string(out.Mode),
		string(out.Path),
		boolToInt(out.CacheHit),
		boolToInt(out.Switched),
		boolToInt(out.ExecutionFailed),
		out.DetectionMs,
		out.DecisionMs,
		out.ExecutionMs,
		out.LatencyMs,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}

// #endregion

// #region recent

// Recent returns the n most recent entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT decision_id, context_key, current_mode, mode, path, cache_hit,
		       switched, execution_failed, detection_ms, decision_ms,
		       execution_ms, total_ms, created_at
		FROM decision_log
		ORDER BY id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var cacheHit, switched, execFailed int
		var createdStr string
		err := rows.Scan(&e.DecisionID, &e.ContextKey, &e.CurrentMode, &e.Mode,
			&e.Path, &cacheHit, &switched, &execFailed, &e.DetectionMs,
			&e.DecisionMs, &e.ExecutionMs, &e.TotalMs, &createdStr)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.CacheHit = cacheHit != 0
		e.Switched = switched != 0
		e.ExecutionFailed = execFailed != 0
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// #endregion

// #region summary

// Summary aggregates the whole log against a latency target.
func (s *Store) Summary(targetMs float64) (Summary, error) {
	var sum Summary
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(AVG(total_ms), 0),
		       COALESCE(AVG(cache_hit), 0),
		       COALESCE(AVG(switched), 0),
		       COALESCE(AVG(CASE WHEN total_ms <= ? THEN 1.0 ELSE 0.0 END), 0)
		FROM decision_log`, targetMs,
	).Scan(&sum.Decisions, &sum.AvgTotalMs, &sum.CacheHitRate, &sum.SwitchRate, &sum.UnderTargetRate)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT path, COUNT(*), AVG(total_ms)
		FROM decision_log
		GROUP BY path`)
	if err != nil {
		return Summary{}, fmt.Errorf("summary by path: %w", err)
	}
	defer rows.Close()

	sum.ByPath = make(map[string]PathStats)
	for rows.Next() {
		var path string
		var st PathStats
		if err := rows.Scan(&path, &st.Decisions, &st.AvgTotalMs); err != nil {
			return Summary{}, fmt.Errorf("scan path stats: %w", err)
		}
		sum.ByPath[path] = st
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("iterate path stats: %w", err)
	}
	return sum, nil
}

// #endregion

// #region helpers

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion
