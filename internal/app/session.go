package app

// SessionInputs is the user-provided seed for one run. Immutable for the
// duration of the run; replaced wholesale on Start, Reset, and LoadRecord.
type SessionInputs struct {
	Title string `json:"title"`
	Brief string `json:"brief"`
}

// SessionResults maps a stage's result slot to its generated text. A slot is
// either absent or holds the complete output of a successful stage.
type SessionResults map[string]string

func (r SessionResults) Clone() SessionResults {
	if r == nil {
		return SessionResults{}
	}
	out := make(SessionResults, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Phase tags the pipeline position so that illegal states (an ordinal while
// idle, an in-range ordinal while completed) are unrepresentable in practice.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseCompleted
)

// Position is the sole driver of which stage is active, done, or locked.
// While running, Ordinal is the stage currently executing (or about to).
type Position struct {
	Phase   Phase
	Ordinal int
}

// Done reports whether the stage at ord has completed.
func (p Position) Done(ord int) bool {
	switch p.Phase {
	case PhaseCompleted:
		return ord < StageCount
	case PhaseRunning:
		return ord < p.Ordinal
	default:
		return false
	}
}

// CanView reports whether the stage at ord may be selected as the active tab.
// Locked stages (beyond the current position) are never navigable.
func (p Position) CanView(ord int) bool {
	if ord < 0 || ord >= StageCount {
		return false
	}
	switch p.Phase {
	case PhaseCompleted:
		return true
	case PhaseRunning:
		return ord <= p.Ordinal
	default:
		return ord == 0
	}
}

// Percent is the progress through the pipeline, 0..100.
func (p Position) Percent() int {
	switch p.Phase {
	case PhaseCompleted:
		return 100
	case PhaseRunning:
		return p.Ordinal * 100 / StageCount
	default:
		return 0
	}
}

// Session holds the single current run: inputs, accumulated results, pipeline
// position, and the displayed tab. It is owned by the Orchestrator; all
// mutation happens under the orchestrator's lock.
type Session struct {
	Inputs    SessionInputs
	Results   SessionResults
	Position  Position
	ActiveTab int
}

func NewSession() *Session {
	return &Session{Results: SessionResults{}}
}

// SetActiveTab selects the displayed stage. Selecting a locked stage is a
// silent no-op; the return value only exists so callers can tell.
func (s *Session) SetActiveTab(ord int) bool {
	if !s.Position.CanView(ord) {
		return false
	}
	s.ActiveTab = ord
	return true
}

// SessionView is a read-only copy handed to the UI.
type SessionView struct {
	Inputs    SessionInputs
	Results   SessionResults
	Position  Position
	ActiveTab int
	Running   bool
}

func (s *Session) view(running bool) SessionView {
	return SessionView{
		Inputs:    s.Inputs,
		Results:   s.Results.Clone(),
		Position:  s.Position,
		ActiveTab: s.ActiveTab,
		Running:   running,
	}
}
