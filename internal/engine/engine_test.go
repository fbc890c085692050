package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/catalog"
	"github.com/danielpatrickdp/smart-intervention/go-engine/internal/decision"
)

// #region fakes

type fakeExecutor struct {
	mu    sync.Mutex
	calls []decision.Mode
	err   error
	delay time.Duration
}

func (f *fakeExecutor) Apply(ctx context.Context, mode decision.Mode, _ decision.Context) error {
	f.mu.Lock()
	f.calls = append(f.calls, mode)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

func (f *fakeExecutor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeSink struct {
	mu      sync.Mutex
	entries []decision.Outcome
	err     error
}

func (f *fakeSink) Log(_ string, _ decision.Context, out decision.Outcome) error {
	f.mu.Lock()
	f.entries = append(f.entries, out)
	f.mu.Unlock()
	return f.err
}

// #endregion

func newEngine(t *testing.T, exec Executor, sink Sink) *Engine {
	t.Helper()
	e, err := New(catalog.Default(), exec, sink, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func chatContext() map[string]any {
	return map[string]any{"current_mode": "chat"}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, NopExecutor{}, nil, DefaultConfig()); err == nil {
		t.Error("expected error for nil catalog")
	}
	if _, err := New(catalog.Default(), nil, nil, DefaultConfig()); err == nil {
		t.Error("expected error for nil executor")
	}

	badCap := DefaultConfig()
	badCap.MessageCacheSize = 0
	if _, err := New(catalog.Default(), NopExecutor{}, nil, badCap); err == nil {
		t.Error("expected error for non-positive cache capacity")
	}
}

func TestDecideFastPathSwitch(t *testing.T) {
	exec := &fakeExecutor{}
	e := newEngine(t, exec, nil)

	out := e.Decide(context.Background(), "creat a React component", chatContext())

	if out.Mode != decision.ModeToEditor {
		t.Errorf("mode: got %q, want %q", out.Mode, decision.ModeToEditor)
	}
	if out.Path != decision.PathFast {
		t.Errorf("path: got %q, want fast", out.Path)
	}
	if !out.Switched {
		t.Error("expected switch to be applied")
	}
	if exec.callCount() != 1 {
		t.Errorf("executor calls: got %d, want 1", exec.callCount())
	}
	if out.LatencyMs <= 0 {
		t.Error("latency must reflect wall-clock time")
	}
}

func TestDecideDeepPathStays(t *testing.T) {
	exec := &fakeExecutor{}
	e := newEngine(t, exec, nil)

	out := e.Decide(context.Background(), "what is React?", chatContext())

	if out.Mode != decision.ModeStay {
		t.Errorf("mode: got %q, want %q", out.Mode, decision.ModeStay)
	}
	if out.Path != decision.PathNone {
		t.Errorf("path: got %q, want none", out.Path)
	}
	if out.Switched {
		t.Error("stay decision must not switch")
	}
	if exec.callCount() != 0 {
		t.Error("executor must not be called on a stay decision")
	}
}

func TestDecideDeepPathSwitch(t *testing.T) {
	exec := &fakeExecutor{}
	e := newEngine(t, exec, nil)

	// No fast keyword or pattern, but scores past the switch threshold:
	// design(0.6) + python(0.6) + chat affinity(0.2) = 1.4.
	out := e.Decide(context.Background(), "design it in python", chatContext())

	if out.Path != decision.PathDeep {
		t.Fatalf("path: got %q, want deep", out.Path)
	}
	if out.Mode != decision.ModeToEditor || !out.Switched {
		t.Fatalf("got mode=%q switched=%v", out.Mode, out.Switched)
	}
}

func TestDecideShortcutAndCacheHit(t *testing.T) {
	exec := &fakeExecutor{}
	e := newEngine(t, exec, nil)

	first := e.Decide(context.Background(), "ce", chatContext())
	if first.Mode != decision.ModeToEditor || first.Path != decision.PathFast {
		t.Fatalf("first: mode=%q path=%q", first.Mode, first.Path)
	}
	if first.CacheHit {
		t.Fatal("first call should not hit cache")
	}

	second := e.Decide(context.Background(), "ce", chatContext())
	if !second.CacheHit {
		t.Fatal("repeated call should hit cache")
	}
	if second.Mode != first.Mode {
		t.Fatalf("cached mode %q differs from first %q", second.Mode, first.Mode)
	}
}

func TestDecideDeterministicUnderCache(t *testing.T) {
	e := newEngine(t, &fakeExecutor{}, nil)

	messages := []string{"ce", "what is React?", "design it in python", "hello"}
	for _, msg := range messages {
		first := e.Decide(context.Background(), msg, chatContext())
		second := e.Decide(context.Background(), msg, chatContext())
		if first.Mode != second.Mode {
			t.Errorf("%q: mode changed across calls: %q then %q", msg, first.Mode, second.Mode)
		}
	}
}

func TestDecideExecutorFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("host unavailable")}
	e := newEngine(t, exec, nil)

	out := e.Decide(context.Background(), "ce", chatContext())

	if out.Switched {
		t.Error("failed execution must not report switched")
	}
	if !out.ExecutionFailed {
		t.Error("failed execution must be distinguishable from no-switch")
	}
	if out.Mode != decision.ModeToEditor {
		t.Errorf("mode must still carry the decision, got %q", out.Mode)
	}
}

func TestDecideSlowExecutorDegrades(t *testing.T) {
	exec := &fakeExecutor{delay: 2 * time.Second}
	e := newEngine(t, exec, nil)

	start := time.Now()
	out := e.Decide(context.Background(), "ce", chatContext())
	elapsed := time.Since(start)

	if !out.ExecutionFailed {
		t.Error("executor overrun must surface as execution failure")
	}
	if out.Switched {
		t.Error("timed-out switch must not report switched")
	}
	if elapsed > 500*time.Millisecond {
		t.Fatalf("Decide blocked for %v; must degrade within the budget", elapsed)
	}
}

func TestDisabledEngineNeverExecutes(t *testing.T) {
	t.Setenv("ENGINE_ENABLED", "false")
	exec := &fakeExecutor{}
	e := newEngine(t, exec, nil)

	if e.Enabled() {
		t.Fatal("kill switch not honored")
	}

	out := e.Decide(context.Background(), "ce", chatContext())
	if exec.callCount() != 0 {
		t.Error("disabled engine must not call the executor")
	}
	if out.Mode != decision.ModeToEditor {
		t.Error("disabled engine still classifies")
	}
	if out.Switched || out.ExecutionFailed {
		t.Errorf("disabled engine: switched=%v executionFailed=%v", out.Switched, out.ExecutionFailed)
	}
}

func TestDecideRecordsToSink(t *testing.T) {
	sink := &fakeSink{}
	e := newEngine(t, &fakeExecutor{}, sink)

	e.Decide(context.Background(), "ce", chatContext())
	e.Decide(context.Background(), "hello", chatContext())

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.entries) != 2 {
		t.Fatalf("sink entries: got %d, want 2", len(sink.entries))
	}
}

func TestDecideSinkErrorIsSwallowed(t *testing.T) {
	sink := &fakeSink{err: errors.New("disk full")}
	e := newEngine(t, &fakeExecutor{}, sink)

	out := e.Decide(context.Background(), "ce", chatContext())
	if out.Mode != decision.ModeToEditor || !out.Switched {
		t.Fatalf("sink error leaked into outcome: %+v", out)
	}
}

func TestReportAfterDecisions(t *testing.T) {
	e := newEngine(t, &fakeExecutor{}, nil)

	for i := 0; i < 5; i++ {
		e.Decide(context.Background(), "ce", chatContext())
	}

	rep := e.Report()
	if rep.SampleSize != 5 {
		t.Fatalf("sample size: got %d, want 5", rep.SampleSize)
	}
	if rep.CacheHitRate == 0 {
		t.Error("repeated identical decisions should produce cache hits")
	}
}

func TestClearCaches(t *testing.T) {
	e := newEngine(t, &fakeExecutor{}, nil)

	e.Decide(context.Background(), "ce", chatContext())
	e.ClearCaches()

	out := e.Decide(context.Background(), "ce", chatContext())
	if out.CacheHit {
		t.Fatal("cache hit after ClearCaches")
	}
}

func TestConcurrentDecide(t *testing.T) {
	e := newEngine(t, &fakeExecutor{}, nil)

	var wg sync.WaitGroup
	messages := []string{"ce", "what is React?", "create a vue component", "hello there"}
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				msg := messages[(g+i)%len(messages)]
				out := e.Decide(context.Background(), msg, chatContext())
				if out.Mode != decision.ModeToEditor && out.Mode != decision.ModeToChat && out.Mode != decision.ModeStay {
					t.Errorf("unknown mode escaped the engine: %q", out.Mode)
				}
			}
		}(g)
	}
	wg.Wait()
}
