package main

// #region imports
import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/catalog"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/decision"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/engine"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/executor"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/history"
)

// #endregion

// #region main

func main() {
	dbPath := envOr("SWITCH_DB", "")
	execAddr := envOr("EXECUTOR_ADDR", "")

	var exec engine.Executor = engine.NopExecutor{}
	if execAddr != "" {
		client, err := executor.New(execAddr)
		if err != nil {
			log.Fatalf("failed to connect to executor at %s: %v", execAddr, err)
		}
		defer client.Close()
		exec = client
	}

	var sink engine.Sink
	if dbPath != "" {
		store, err := history.NewStore(dbPath)
		if err != nil {
			log.Fatalf("failed to open decision log: %v", err)
		}
		defer store.Close()
		sink = store
	}

	eng, err := engine.New(catalog.Default(), exec, sink, engine.DefaultConfig())
	if err != nil {
		log.Fatalf("failed to build engine: %v", err)
	}

	fmt.Println("Smart Intervention engine ready.")
	fmt.Printf("  Executor: %s | Log: %s | Enabled: %v\n",
		orLabel(execAddr, "nop"), orLabel(dbPath, "off"), eng.Enabled())
	fmt.Println("Type a message ('report', 'clear', or 'quit'):")

	scanner := bufio.NewScanner(os.Stdin)
	currentMode := decision.CurrentChat

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}

		switch message {
		case "quit", "exit":
			return
		case "report":
			printReport(eng)
			continue
		case "clear":
			eng.ClearCaches()
			continue
		}

		out := eng.Decide(context.Background(), message, map[string]any{
			"current_mode": currentMode,
		})

		fmt.Printf("[%s] switched=%v path=%s cache_hit=%v latency=%.1fms\n",
			out.Mode, out.Switched, out.Path, out.CacheHit, out.LatencyMs)
		if out.ExecutionFailed {
			fmt.Println("  switch attempted but execution failed")
		}

		// Track the host's notion of the active context across turns.
		if out.Switched {
			switch out.Mode {
			case decision.ModeToEditor:
				currentMode = decision.CurrentEditor
			case decision.ModeToChat:
				currentMode = decision.CurrentChat
			}
		}
	}
}

// #endregion

// #region report

func printReport(eng *engine.Engine) {
	rep := eng.Report()
	if rep.Status == "no_data" {
		fmt.Println("no decisions recorded yet")
		return
	}
	fmt.Printf("samples=%d avg=%.1fms (target %.0fms) under_target=%.0f%% cache_hit=%.0f%% status=%s\n",
		rep.SampleSize, rep.AvgTotalMs, rep.TargetMs,
		rep.UnderTargetRate*100, rep.CacheHitRate*100, rep.Status)
	fmt.Printf("  breakdown: detection=%.1fms decision=%.1fms execution=%.1fms\n",
		rep.AvgDetectionMs, rep.AvgDecisionMs, rep.AvgExecutionMs)
}

// #endregion

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func orLabel(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// #endregion
