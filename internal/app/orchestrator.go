package app

import (
	"context"
	"strings"
	"sync"
)

// EventKind tags the progress notifications emitted while a run executes.
type EventKind string

const (
	EventStageStarted   EventKind = "stage_started"
	EventStageCompleted EventKind = "stage_completed"
	EventRunCompleted   EventKind = "run_completed"
	EventRunFailed      EventKind = "run_failed"
)

// Event is one progress notification. Stage is set for stage-level events;
// Failure and Err are set when the run halts; Record is set on completion.
type Event struct {
	Kind    EventKind
	Stage   Stage
	Failure FailureKind
	Err     error
	Record  *HistoryRecord
}

// Orchestrator owns the session and drives the seven-stage pipeline strictly
// in order. One run at a time; each Start, Reset, or LoadRecord bumps the run
// epoch, and in-flight results from a superseded epoch are discarded instead
// of being committed.
type Orchestrator struct {
	generator Generator
	composer  *PromptComposer
	history   HistoryStore
	logger    *Logger
	onEvent   func(Event)

	mu      sync.Mutex
	session *Session
	epoch   uint64
	running bool
	cancel  context.CancelFunc
}

func NewOrchestrator(gen Generator, composer *PromptComposer, history HistoryStore, logger *Logger, onEvent func(Event)) *Orchestrator {
	if onEvent == nil {
		onEvent = func(Event) {}
	}
	return &Orchestrator{
		generator: gen,
		composer:  composer,
		history:   history,
		logger:    logger,
		onEvent:   onEvent,
		session:   NewSession(),
	}
}

// Start validates the inputs and launches a run. It fails with ErrRunActive
// while a run is in flight and ErrEmptyInputs when title or brief is blank.
func (o *Orchestrator) Start(inputs SessionInputs) error {
	if strings.TrimSpace(inputs.Title) == "" || strings.TrimSpace(inputs.Brief) == "" {
		return ErrEmptyInputs
	}

	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return ErrRunActive
	}
	o.epoch++
	epoch := o.epoch
	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel
	o.running = true
	o.session = &Session{
		Inputs:   inputs,
		Results:  SessionResults{},
		Position: Position{Phase: PhaseRunning, Ordinal: 0},
	}
	o.mu.Unlock()

	o.logger.Info("run started", map[string]interface{}{"title": inputs.Title, "epoch": epoch})
	go o.run(ctx, epoch)
	return nil
}

// Reset abandons any in-flight run and returns the session to a blank form.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.epoch++
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.running = false
	o.session = NewSession()
	o.mu.Unlock()
	o.logger.Info("session reset", nil)
}

// LoadRecord replaces the session with an archived run's inputs and results.
// Any in-flight run is abandoned first; the archived record itself is copied,
// never aliased, so later resets cannot touch it.
func (o *Orchestrator) LoadRecord(rec HistoryRecord) {
	o.mu.Lock()
	o.epoch++
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.running = false
	o.session = &Session{
		Inputs:   rec.Inputs,
		Results:  rec.Results.Clone(),
		Position: Position{Phase: PhaseCompleted, Ordinal: StageCount},
	}
	o.mu.Unlock()
	o.logger.Info("history record loaded", map[string]interface{}{"id": rec.ID, "title": rec.Title})
}

// View returns a read-only snapshot of the current session.
func (o *Orchestrator) View() SessionView {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.view(o.running)
}

// SetActiveTab selects the displayed stage; locked stages are a silent no-op.
func (o *Orchestrator) SetActiveTab(ordinal int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.SetActiveTab(ordinal)
}

func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// run executes the pipeline for one epoch. Prompts are composed from a
// snapshot taken under the lock, the generator is called outside the lock,
// and the result is committed only if the epoch is still current.
func (o *Orchestrator) run(ctx context.Context, epoch uint64) {
	for ord := 0; ord < StageCount; ord++ {
		stage := StageAt(ord)

		o.mu.Lock()
		if o.epoch != epoch {
			o.mu.Unlock()
			return
		}
		inputs := o.session.Inputs
		results := o.session.Results.Clone()
		o.session.Position = Position{Phase: PhaseRunning, Ordinal: ord}
		// The displayed tab follows the executing stage.
		o.session.ActiveTab = ord
		o.mu.Unlock()

		o.onEvent(Event{Kind: EventStageStarted, Stage: stage})

		text, err := o.generate(ctx, stage, inputs, results)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyResult
		}

		o.mu.Lock()
		if o.epoch != epoch {
			o.mu.Unlock()
			return
		}
		if err != nil {
			kind := Classify(err)
			o.session.Position = Position{Phase: PhaseRunning, Ordinal: ord}
			o.running = false
			o.cancel = nil
			o.mu.Unlock()
			o.logger.Error("run halted", map[string]interface{}{
				"stage": string(stage.ID), "kind": string(kind), "error": err.Error(),
			})
			o.onEvent(Event{Kind: EventRunFailed, Stage: stage, Failure: kind, Err: err})
			return
		}
		o.session.Results[stage.Slot] = text
		o.mu.Unlock()

		o.onEvent(Event{Kind: EventStageCompleted, Stage: stage})
	}

	o.mu.Lock()
	if o.epoch != epoch {
		o.mu.Unlock()
		return
	}
	o.session.Position = Position{Phase: PhaseCompleted, Ordinal: StageCount}
	o.running = false
	o.cancel = nil
	record := NewHistoryRecord(o.session.Inputs, o.session.Results)
	o.mu.Unlock()

	if err := o.history.Append(record); err != nil {
		// The finished run stays usable in the session even if archiving fails.
		o.logger.Error("history append failed", map[string]interface{}{"id": record.ID, "error": err.Error()})
	}
	o.logger.Info("run completed", map[string]interface{}{"id": record.ID, "title": record.Title})
	o.onEvent(Event{Kind: EventRunCompleted, Record: &record})
}

func (o *Orchestrator) generate(ctx context.Context, stage Stage, inputs SessionInputs, results SessionResults) (string, error) {
	prompt, err := o.composer.Compose(stage.ID, inputs, results)
	if err != nil {
		return "", err
	}
	return o.generator.Generate(ctx, prompt)
}
