package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type memoryHistory struct {
	mu      sync.Mutex
	records []HistoryRecord
}

func (m *memoryHistory) Append(rec HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]HistoryRecord{rec}, m.records...)
	return nil
}

func (m *memoryHistory) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0]
	for _, r := range m.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	m.records = kept
	return nil
}

func (m *memoryHistory) List() ([]HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]HistoryRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func newTestOrchestrator(gen Generator) (*Orchestrator, *memoryHistory, chan Event) {
	history := &memoryHistory{}
	events := make(chan Event, 64)
	orch := NewOrchestrator(gen, NewPromptComposer(), history, NewLogger(nil), func(ev Event) {
		events <- ev
	})
	return orch, history, events
}

func waitForEvent(t *testing.T, events chan Event, kind EventKind) Event {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", kind)
		}
	}
}

func TestOrchestratorRunsAllStagesInOrder(t *testing.T) {
	var mu sync.Mutex
	var prompts []string
	gen := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		mu.Lock()
		prompts = append(prompts, prompt)
		mu.Unlock()
		return mockGenerate(prompt), nil
	})
	orch, history, events := newTestOrchestrator(gen)

	if err := orch.Start(SessionInputs{Title: "Quiet money", Brief: "Lifestyle inflation"}); err != nil {
		t.Fatal(err)
	}
	ev := waitForEvent(t, events, EventRunCompleted)

	view := orch.View()
	if view.Running {
		t.Fatal("run should have finished")
	}
	if view.Position.Phase != PhaseCompleted {
		t.Fatalf("expected completed phase, got %v", view.Position.Phase)
	}
	for _, stage := range Stages() {
		if view.Results[stage.Slot] == "" {
			t.Fatalf("missing result for %s", stage.Slot)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(prompts) != StageCount {
		t.Fatalf("expected %d generator calls, got %d", StageCount, len(prompts))
	}
	for i, prompt := range prompts {
		tag := fmt.Sprintf("[PART %d]", i+1)
		if !strings.Contains(prompt, tag) {
			t.Fatalf("prompt %d missing %s", i, tag)
		}
	}
	// Dependent stages see the upstream output verbatim.
	if !strings.Contains(prompts[1], "mock script output") {
		t.Fatal("tts prompt should embed the script output")
	}
	if !strings.Contains(prompts[3], "mock storyboard output") {
		t.Fatal("video prompt stage should embed the storyboard output")
	}

	records, _ := history.List()
	if len(records) != 1 {
		t.Fatalf("expected one archived record, got %d", len(records))
	}
	if ev.Record == nil || ev.Record.ID != records[0].ID {
		t.Fatal("completion event should carry the archived record")
	}
	if records[0].Title != "Quiet money" {
		t.Fatalf("unexpected record title: %q", records[0].Title)
	}
}

func TestOrchestratorHaltsOnStageFailure(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	gen := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if strings.Contains(prompt, "[PART 3]") {
			return "", boom
		}
		return mockGenerate(prompt), nil
	})
	orch, history, events := newTestOrchestrator(gen)

	if err := orch.Start(SessionInputs{Title: "t", Brief: "b"}); err != nil {
		t.Fatal(err)
	}
	ev := waitForEvent(t, events, EventRunFailed)

	if ev.Stage.ID != StageStoryboard {
		t.Fatalf("expected failure at storyboard, got %s", ev.Stage.ID)
	}
	if ev.Failure != FailureUnknown {
		t.Fatalf("expected unknown failure kind, got %s", ev.Failure)
	}
	if calls != 3 {
		t.Fatalf("later stages must not run after a failure, got %d calls", calls)
	}

	view := orch.View()
	if view.Running {
		t.Fatal("run must not stay active after a failure")
	}
	if _, ok := view.Results["storyboard"]; ok {
		t.Fatal("failed stage must not record a result")
	}
	if view.Results["script"] == "" || view.Results["tts"] == "" {
		t.Fatal("completed stage results must survive the failure")
	}
	if view.Position.Ordinal != 2 {
		t.Fatalf("position should stay at the failed stage, got %d", view.Position.Ordinal)
	}

	records, _ := history.List()
	if len(records) != 0 {
		t.Fatal("failed runs must not be archived")
	}
}

func TestOrchestratorDiscardsStaleResults(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	gen := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		entered <- struct{}{}
		<-release
		return "late output", nil
	})
	orch, history, events := newTestOrchestrator(gen)

	if err := orch.Start(SessionInputs{Title: "t", Brief: "b"}); err != nil {
		t.Fatal(err)
	}
	<-entered

	orch.Reset()
	close(release)

	// The stale result must never land in the fresh session.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if view := orch.View(); len(view.Results) != 0 {
			t.Fatalf("stale result committed: %v", view.Results)
		}
		time.Sleep(10 * time.Millisecond)
	}

	view := orch.View()
	if view.Position.Phase != PhaseIdle {
		t.Fatal("reset should leave the session idle")
	}
	records, _ := history.List()
	if len(records) != 0 {
		t.Fatal("abandoned run must not be archived")
	}
	drainEvents(events)
}

func drainEvents(events chan Event) {
	for {
		select {
		case <-events:
		default:
			return
		}
	}
}

func TestOrchestratorRejectsConcurrentStart(t *testing.T) {
	release := make(chan struct{})
	gen := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		<-release
		return mockGenerate(prompt), nil
	})
	orch, _, events := newTestOrchestrator(gen)

	if err := orch.Start(SessionInputs{Title: "t", Brief: "b"}); err != nil {
		t.Fatal(err)
	}
	if err := orch.Start(SessionInputs{Title: "t2", Brief: "b2"}); !errors.Is(err, ErrRunActive) {
		t.Fatalf("expected ErrRunActive, got %v", err)
	}
	close(release)
	waitForEvent(t, events, EventRunCompleted)
}

func TestOrchestratorValidatesInputs(t *testing.T) {
	orch, _, _ := newTestOrchestrator(GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "x", nil
	}))

	cases := []SessionInputs{
		{},
		{Title: "only title"},
		{Brief: "only brief"},
		{Title: "  ", Brief: "\t"},
	}
	for _, inputs := range cases {
		if err := orch.Start(inputs); !errors.Is(err, ErrEmptyInputs) {
			t.Fatalf("inputs %+v: expected ErrEmptyInputs, got %v", inputs, err)
		}
	}
}

func TestOrchestratorLoadRecord(t *testing.T) {
	orch, _, _ := newTestOrchestrator(GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "x", nil
	}))

	rec := HistoryRecord{
		ID:    "rec-1",
		Title: "Archived run",
		Inputs: SessionInputs{
			Title: "Archived run",
			Brief: "brief",
		},
		Results: SessionResults{"script": "s", "tts": "t"},
	}
	orch.LoadRecord(rec)

	view := orch.View()
	if view.Running {
		t.Fatal("loading a record must not start a run")
	}
	if view.Position.Phase != PhaseCompleted {
		t.Fatal("a loaded record is a finished run")
	}
	if view.Inputs != rec.Inputs {
		t.Fatalf("inputs not restored: %+v", view.Inputs)
	}
	if view.Results["script"] != "s" || view.Results["tts"] != "t" {
		t.Fatalf("results not restored: %v", view.Results)
	}

	// The session holds a copy, not the archived map.
	orch.Reset()
	if rec.Results["script"] != "s" {
		t.Fatal("reset must not mutate the archived record")
	}
}

func TestOrchestratorEmptyOutputIsFailure(t *testing.T) {
	gen := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "   ", nil
	})
	orch, _, events := newTestOrchestrator(gen)

	if err := orch.Start(SessionInputs{Title: "t", Brief: "b"}); err != nil {
		t.Fatal(err)
	}
	ev := waitForEvent(t, events, EventRunFailed)
	if !errors.Is(ev.Err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", ev.Err)
	}
	if view := orch.View(); len(view.Results) != 0 {
		t.Fatal("blank output must not be recorded")
	}
}
