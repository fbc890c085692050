package main

// #region imports
import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/catalog"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/engine"
)

// #endregion

// #region prompts

// benchPrompts is the canonical mix the latency target was validated
// against: shortcuts, editor-bound work, and questions that must stay.
var benchPrompts = []string{
	"create a React component",
	"generate a user interface",
	"launch claudeditor",
	"write a python function",
	"design the login page",
	"what is React?",
	"explain this code to me",
	"ce",
	"develop a web app",
	"test the api endpoint",
}

// #endregion

// #region main

func main() {
	rounds := flag.Int("rounds", 1, "replay the prompt set N times")
	flag.Parse()

	eng, err := engine.New(catalog.Default(), engine.NopExecutor{}, nil, engine.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "build engine: %v\n", err)
		os.Exit(1)
	}

	ectx := map[string]any{"current_mode": "chat", "user_preference": 0.5}
	target := engine.DefaultConfig().TargetLatency.Milliseconds()

	underTarget := 0
	total := 0
	fmt.Printf("%-30s %-8s %-8s %-5s %8s\n", "PROMPT", "SWITCH", "PATH", "HIT", "LATENCY")
	for r := 0; r < *rounds; r++ {
		for _, prompt := range benchPrompts {
			out := eng.Decide(context.Background(), prompt, ectx)
			total++
			if out.LatencyMs <= float64(target) {
				underTarget++
			}
			fmt.Printf("%-30s %-8v %-8s %-5v %6.2fms\n",
				truncate(prompt, 30), out.Switched, out.Path, out.CacheHit, out.LatencyMs)
		}
	}

	rep := eng.Report()
	fmt.Println()
	fmt.Printf("under target: %d/%d (%.1f%%)\n", underTarget, total, float64(underTarget)/float64(total)*100)
	fmt.Printf("recent window: avg=%.2fms cache_hit=%.0f%% status=%s\n",
		rep.AvgTotalMs, rep.CacheHitRate*100, rep.Status)
	fmt.Printf("  breakdown: detection=%.2fms decision=%.2fms execution=%.2fms\n",
		rep.AvgDetectionMs, rep.AvgDecisionMs, rep.AvgExecutionMs)
}

// #endregion

// #region helpers

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// #endregion
