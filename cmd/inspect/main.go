package main

// #region imports
import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/history"
)

// #endregion

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the decision log database")
	last := flag.Int("last", 20, "show N most recent decisions")
	target := flag.Float64("target", 100, "latency target in ms for the summary")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/decisions.db [--last N] [--target ms] [--json]")
		os.Exit(2)
	}

	store, err := history.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.Recent(*last)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	summary, err := store.Summary(*target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		out := struct {
			Summary history.Summary `json:"summary"`
			Recent  []history.Entry `json:"recent"`
		}{summary, entries}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printTable(summary, entries, *target)
}

// #endregion

// #region table

func printTable(sum history.Summary, entries []history.Entry, targetMs float64) {
	fmt.Printf("decisions=%d avg=%.1fms cache_hit=%.0f%% switch=%.0f%% under_%.0fms=%.0f%%\n",
		sum.Decisions, sum.AvgTotalMs, sum.CacheHitRate*100,
		sum.SwitchRate*100, targetMs, sum.UnderTargetRate*100)
	for path, st := range sum.ByPath {
		fmt.Printf("  path=%-5s n=%-4d avg=%.1fms\n", path, st.Decisions, st.AvgTotalMs)
	}

	if len(entries) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("%-36s %-16s %-5s %-6s %-5s %8s\n", "DECISION", "MODE", "PATH", "HIT", "SW", "TOTAL")
	for _, e := range entries {
		fmt.Printf("%-36s %-16s %-5s %-6v %-5v %6.1fms\n",
			e.DecisionID, e.Mode, e.Path, e.CacheHit, e.Switched, e.TotalMs)
	}
}

// #endregion
