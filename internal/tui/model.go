package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"faceless-studio/internal/app"
)

type focusArea int

const (
	focusTitle focusArea = iota
	focusBrief
	focusOutput
)

type screen int

const (
	screenMain screen = iota
	screenHistory
	screenHelp
)

// PipelineEventMsg carries one orchestrator event into the update loop.
// Exported so tests can drive the model without a live run.
type PipelineEventMsg struct {
	Event app.Event
}

type spinMsg struct{}

type statusClearMsg struct{ id int }

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type Model struct {
	app   *app.Application
	theme Theme
	prefs app.Prefs
	help  helpModel

	width  int
	height int
	ready  bool

	screen screen
	focus  focusArea

	titleInput textinput.Model
	briefInput textarea.Model
	outputVP   viewport.Model

	session    app.SessionView
	failure    app.FailureKind
	failureMsg string

	records    []app.HistoryRecord
	historySel int

	spinnerPos int
	statusText string
	statusID   int
}

func New(application *app.Application) *Model {
	ti := textinput.New()
	ti.Placeholder = "Video title"
	ti.CharLimit = 300
	ti.Prompt = "▍ "
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Script brief: angle, audience, key points..."
	ta.CharLimit = 8000
	ta.SetHeight(4)
	ta.ShowLineNumbers = false
	ta.Prompt = " "
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()

	prefs := application.Prefs()
	m := &Model{
		app:        application,
		theme:      NewTheme(prefs.Theme),
		prefs:      prefs,
		help:       newHelpModel(),
		width:      100,
		height:     30,
		screen:     screenMain,
		focus:      focusTitle,
		titleInput: ti,
		briefInput: ta,
	}
	m.session = application.Orchestrator.View()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitEvent())
}

// waitEvent pumps the next orchestrator event into the program. It re-arms
// itself from Update after every delivery.
func (m *Model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		return PipelineEventMsg{Event: <-m.app.Events}
	}
}

func (m *Model) spinCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return spinMsg{}
	})
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusText = text
	m.statusID++
	id := m.statusID
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(msg.Width)
		vpW, vpH := m.outputSize()
		if !m.ready {
			m.outputVP = viewport.New(vpW, vpH)
			m.ready = true
		} else {
			m.outputVP.Width = vpW
			m.outputVP.Height = vpH
		}
		m.titleInput.Width = max(10, msg.Width-10)
		m.briefInput.SetWidth(max(10, msg.Width-8))
		m.syncOutput()
		return m, nil

	case PipelineEventMsg:
		cmd := m.onPipelineEvent(msg.Event)
		return m, tea.Batch(cmd, m.waitEvent())

	case spinMsg:
		if m.session.Running {
			m.spinnerPos = (m.spinnerPos + 1) % len(spinnerFrames)
			return m, m.spinCmd()
		}
		return m, nil

	case statusClearMsg:
		if msg.id == m.statusID {
			m.statusText = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, m.updateInputs(msg)
}

func (m *Model) onPipelineEvent(ev app.Event) tea.Cmd {
	m.session = m.app.Orchestrator.View()
	switch ev.Kind {
	case app.EventStageStarted, app.EventStageCompleted:
		m.syncOutput()
		return nil
	case app.EventRunFailed:
		m.failure = ev.Failure
		m.failureMsg = ev.Failure.Message()
		m.syncOutput()
		return nil
	case app.EventRunCompleted:
		m.syncOutput()
		return m.setStatus("Run complete. ctrl+e exports markdown, ctrl+h opens history.")
	}
	return nil
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.help.keys

	// Global bindings work on every screen.
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.ToggleTheme):
		m.toggleTheme()
		return m, nil
	}

	switch m.screen {
	case screenHelp:
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Help) {
			m.screen = screenMain
		}
		return m, nil
	case screenHistory:
		return m.onHistoryKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Help):
		m.screen = screenHelp
		return m, nil

	case key.Matches(msg, keys.History):
		m.openHistory()
		return m, nil

	case key.Matches(msg, keys.Start):
		return m, m.startRun()

	case key.Matches(msg, keys.NewRun):
		m.app.Orchestrator.Reset()
		m.session = m.app.Orchestrator.View()
		m.failure = ""
		m.failureMsg = ""
		m.titleInput.Reset()
		m.briefInput.Reset()
		m.setFocus(focusTitle)
		m.syncOutput()
		return m, m.setStatus("Session cleared.")

	case key.Matches(msg, keys.FocusNext):
		m.cycleFocus()
		return m, nil

	case key.Matches(msg, keys.PrevTab):
		if m.focus == focusOutput {
			m.selectTab(m.session.ActiveTab - 1)
			return m, nil
		}

	case key.Matches(msg, keys.NextTab):
		if m.focus == focusOutput {
			m.selectTab(m.session.ActiveTab + 1)
			return m, nil
		}

	case key.Matches(msg, keys.Copy):
		return m, m.copyActiveStage()

	case key.Matches(msg, keys.ExportMD):
		return m, m.export(app.ExportMarkdown)

	case key.Matches(msg, keys.ExportTXT):
		return m, m.export(app.ExportText)
	}

	return m, m.updateInputs(msg)
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
		cmds = append(cmds, cmd)
	case focusBrief:
		m.briefInput, cmd = m.briefInput.Update(msg)
		cmds = append(cmds, cmd)
	case focusOutput:
		m.outputVP, cmd = m.outputVP.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case focusTitle:
		m.setFocus(focusBrief)
	case focusBrief:
		m.setFocus(focusOutput)
	default:
		m.setFocus(focusTitle)
	}
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	m.titleInput.Blur()
	m.briefInput.Blur()
	switch f {
	case focusTitle:
		m.titleInput.Focus()
	case focusBrief:
		m.briefInput.Focus()
	}
}

func (m *Model) toggleTheme() {
	if m.prefs.Theme == app.ThemeDark {
		m.prefs.Theme = app.ThemeLight
	} else {
		m.prefs.Theme = app.ThemeDark
	}
	m.theme = NewTheme(m.prefs.Theme)
	m.app.SavePrefs(m.prefs)
}

func (m *Model) startRun() tea.Cmd {
	inputs := app.SessionInputs{
		Title: strings.TrimSpace(m.titleInput.Value()),
		Brief: strings.TrimSpace(m.briefInput.Value()),
	}
	err := m.app.Orchestrator.Start(inputs)
	switch {
	case err == nil:
		m.failure = ""
		m.failureMsg = ""
		m.session = m.app.Orchestrator.View()
		m.setFocus(focusOutput)
		m.syncOutput()
		return m.spinCmd()
	case err == app.ErrEmptyInputs:
		return m.setStatus("Enter a title and a brief before generating.")
	case err == app.ErrRunActive:
		return m.setStatus("A run is already in progress.")
	default:
		return m.setStatus("Could not start: " + err.Error())
	}
}

// selectTab asks the orchestrator for the tab change; locked stages stay put.
func (m *Model) selectTab(ordinal int) {
	if m.app.Orchestrator.SetActiveTab(ordinal) {
		m.session = m.app.Orchestrator.View()
		m.syncOutput()
	}
}

func (m *Model) copyActiveStage() tea.Cmd {
	stage := app.StageAt(m.session.ActiveTab)
	text, ok := m.session.Results[stage.Slot]
	if !ok || text == "" {
		return m.setStatus("Nothing to copy yet for " + stage.Label + ".")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return m.setStatus("Clipboard unavailable: " + err.Error())
	}
	return m.setStatus(stage.Label + " copied to clipboard.")
}

func (m *Model) export(format app.ExportFormat) tea.Cmd {
	if len(m.session.Results) == 0 {
		return m.setStatus("Nothing to export yet.")
	}
	name := app.ExportFileName(m.session.Inputs.Title, format)
	doc := app.ExportDocument(m.session.Inputs.Title, m.session.Results, format)
	if err := os.WriteFile(name, []byte(doc), 0o644); err != nil {
		return m.setStatus("Export failed: " + err.Error())
	}
	return m.setStatus("Exported " + name)
}

func (m *Model) openHistory() {
	records, err := m.app.History.List()
	if err != nil {
		records = nil
	}
	m.records = records
	m.historySel = 0
	m.screen = screenHistory
}

func (m *Model) onHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.help.keys
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.History):
		m.screen = screenMain
		return m, nil

	case msg.Type == tea.KeyUp:
		if m.historySel > 0 {
			m.historySel--
		}
		return m, nil

	case msg.Type == tea.KeyDown:
		if m.historySel < len(m.records)-1 {
			m.historySel++
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		if m.historySel >= len(m.records) {
			return m, nil
		}
		rec := m.records[m.historySel]
		m.app.Orchestrator.LoadRecord(rec)
		m.session = m.app.Orchestrator.View()
		m.failure = ""
		m.failureMsg = ""
		m.titleInput.SetValue(rec.Inputs.Title)
		m.briefInput.SetValue(rec.Inputs.Brief)
		m.screen = screenMain
		m.setFocus(focusOutput)
		m.syncOutput()
		return m, m.setStatus("Loaded \"" + rec.Title + "\" from history.")

	case key.Matches(msg, keys.Delete):
		if m.historySel >= len(m.records) {
			return m, nil
		}
		rec := m.records[m.historySel]
		if err := m.app.History.Remove(rec.ID); err != nil {
			return m, m.setStatus("Delete failed: " + err.Error())
		}
		m.records = append(m.records[:m.historySel], m.records[m.historySel+1:]...)
		if m.historySel >= len(m.records) && m.historySel > 0 {
			m.historySel--
		}
		return m, nil
	}
	return m, nil
}

// syncOutput refreshes the viewport with the active stage's text.
func (m *Model) syncOutput() {
	if !m.ready {
		return
	}
	stage := app.StageAt(m.session.ActiveTab)
	text, ok := m.session.Results[stage.Slot]
	switch {
	case ok && text != "":
		m.outputVP.SetContent(text)
	case m.session.Running && m.session.Position.Ordinal == stage.Ordinal:
		m.outputVP.SetContent("Generating " + stage.Label + "...")
	default:
		m.outputVP.SetContent("No output yet. ctrl+s starts the pipeline.")
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// stageGlyph renders one checklist entry for the sidebar.
func (m *Model) stageGlyph(stage app.Stage) string {
	pos := m.session.Position
	switch {
	case pos.Done(stage.Ordinal):
		return m.theme.StageDone.Render("✓ " + stage.Label)
	case m.session.Running && pos.Ordinal == stage.Ordinal:
		frame := spinnerFrames[m.spinnerPos%len(spinnerFrames)]
		return m.theme.StageActive.Render(frame + " " + stage.Label)
	case m.failure != "" && pos.Ordinal == stage.Ordinal:
		return m.theme.BannerError.Render("✗ " + stage.Label)
	default:
		return m.theme.StagePending.Render("· " + stage.Label)
	}
}

func (m *Model) stepIndicator() string {
	pos := m.session.Position
	switch pos.Phase {
	case app.PhaseCompleted:
		return fmt.Sprintf("step %d/%d · 100%%", app.StageCount, app.StageCount)
	case app.PhaseRunning:
		return fmt.Sprintf("step %d/%d · %d%%", pos.Ordinal+1, app.StageCount, pos.Percent())
	default:
		return "ready"
	}
}
