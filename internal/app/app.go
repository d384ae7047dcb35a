package app

import "io"

// Application bundles the wired components behind one constructor so the TUI
// and the headless commands build the stack the same way.
type Application struct {
	Config       Config
	Logger       *Logger
	Orchestrator *Orchestrator
	History      HistoryStore
	Events       chan Event

	closer io.Closer
}

// NewApplication wires the generation client, archive store, and orchestrator
// from config. With mock set the client never leaves the process, which keeps
// demos and tests off the network.
func NewApplication(cfg Config, mock bool) *Application {
	logger := NewLogger(DefaultLogWriter(cfg.StorageRoot))

	if mock {
		cfg.GeminiAPIKey = "mock"
		cfg.BaseURL = "mock://"
	}
	client := NewGeminiClient(cfg)

	var history HistoryStore
	var closer io.Closer
	if cfg.Storage == "sqlite" {
		if st, err := NewSQLiteHistoryStore(cfg.StorageRoot, logger); err == nil {
			history = st
			closer = st
		} else {
			logger.Error("sqlite store unavailable, falling back to file store", map[string]interface{}{"error": err.Error()})
		}
	}
	if history == nil {
		history = NewFileHistoryStore(cfg.StorageRoot, logger)
	}

	// Buffered so the run goroutine never blocks on a slow UI.
	events := make(chan Event, 64)
	orch := NewOrchestrator(client, NewPromptComposer(), history, logger, func(ev Event) {
		events <- ev
	})

	return &Application{
		Config:       cfg,
		Logger:       logger,
		Orchestrator: orch,
		History:      history,
		Events:       events,
		closer:       closer,
	}
}

// Prefs reads the persisted UI preferences for this storage root.
func (a *Application) Prefs() Prefs {
	return LoadPrefs(a.Config.StorageRoot)
}

// SavePrefs persists the UI preferences; failures are logged, not surfaced.
func (a *Application) SavePrefs(p Prefs) {
	if err := SavePrefs(a.Config.StorageRoot, p); err != nil {
		a.Logger.Error("prefs save failed", map[string]interface{}{"error": err.Error()})
	}
}

// Close releases backing resources such as the sqlite handle.
func (a *Application) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
