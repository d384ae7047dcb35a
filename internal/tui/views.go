package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"faceless-studio/internal/app"
)

func (m *Model) View() string {
	switch m.screen {
	case screenHelp:
		return m.help.View(m.theme)
	case screenHistory:
		return m.renderHistory()
	default:
		return m.renderMain()
	}
}

// outputSize is the viewport geometry left over after the chrome: top bar,
// form, checklist, tab row, status line, and pane borders.
func (m *Model) outputSize() (int, int) {
	w := max(20, m.width-4)
	h := max(3, m.height-16)
	return w, h
}

func (m *Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderTopBar())
	b.WriteString("\n")
	b.WriteString(m.renderForm())
	b.WriteString("\n")
	b.WriteString(m.renderChecklist())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderOutput())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m *Model) renderTopBar() string {
	t := m.theme
	left := t.TopBarBadge.Render("faceless studio") + "  " + t.TopBarMeta.Render(m.stepIndicator())
	right := t.TopBarMeta.Render(m.prefs.Theme + " theme")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return t.TopBar.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) renderForm() string {
	t := m.theme
	titleBox := t.InputBox
	briefBox := t.InputBox
	if m.focus == focusTitle {
		titleBox = t.InputBoxF
	}
	if m.focus == focusBrief {
		briefBox = t.InputBoxF
	}
	w := max(20, m.width-4)
	return titleBox.Width(w).Render(m.titleInput.View()) + "\n" +
		briefBox.Width(w).Render(m.briefInput.View())
}

func (m *Model) renderChecklist() string {
	parts := make([]string, 0, app.StageCount)
	for _, stage := range app.Stages() {
		parts = append(parts, m.stageGlyph(stage))
	}
	return " " + strings.Join(parts, "   ")
}

func (m *Model) renderTabs() string {
	t := m.theme
	parts := make([]string, 0, app.StageCount)
	for _, stage := range app.Stages() {
		label := fmt.Sprintf(" %d %s ", stage.Ordinal+1, stage.Label)
		switch {
		case stage.Ordinal == m.session.ActiveTab:
			parts = append(parts, t.TabActive.Render(label))
		case m.session.Position.CanView(stage.Ordinal):
			parts = append(parts, t.TabInactive.Render(label))
		default:
			parts = append(parts, t.TabLocked.Render(label))
		}
	}
	return " " + strings.Join(parts, t.TopBarMeta.Render("|"))
}

func (m *Model) renderOutput() string {
	t := m.theme
	pane := t.Pane
	if m.focus == focusOutput {
		pane = t.PaneFocused
	}
	if !m.ready {
		return pane.Render("")
	}
	return pane.Render(m.outputVP.View())
}

func (m *Model) renderStatus() string {
	t := m.theme
	if m.failureMsg != "" {
		return " " + t.BannerError.Render("✗ "+m.failureMsg)
	}
	if m.session.Running {
		stage := app.StageAt(m.session.Position.Ordinal)
		frame := spinnerFrames[m.spinnerPos%len(spinnerFrames)]
		return " " + t.Spinner.Render(frame) + " " + t.TopBarMeta.Render("generating "+stage.Label+"...")
	}
	if m.statusText != "" {
		return " " + t.BannerInfo.Render(m.statusText)
	}
	if m.session.Position.Phase == app.PhaseCompleted {
		return " " + t.BannerSuccess.Render("✓ all stages complete")
	}
	return " " + t.Footer.Render("fill in the form, then ctrl+s")
}

func (m *Model) renderFooter() string {
	return " " + m.theme.Footer.Render(
		"ctrl+s generate · tab focus · ←/→ stages · ctrl+y copy · ctrl+e export · ctrl+h history · ctrl+g help · ctrl+c quit")
}

func (m *Model) renderHistory() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.TopBarTitle.Render("history"))
	b.WriteString("  ")
	b.WriteString(t.TopBarMeta.Render(fmt.Sprintf("%d completed runs", len(m.records))))
	b.WriteString("\n\n")

	if len(m.records) == 0 {
		b.WriteString(t.Footer.Render("  No completed runs yet. Finish a pipeline and it lands here."))
		b.WriteString("\n")
	}

	visible := m.height - 6
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.historySel >= visible {
		start = m.historySel - visible + 1
	}
	for i := start; i < len(m.records) && i < start+visible; i++ {
		rec := m.records[i]
		line := fmt.Sprintf("%s  %s", rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Title)
		if i == m.historySel {
			b.WriteString(t.TabActive.Render("▸ " + line))
		} else {
			b.WriteString(t.TabInactive.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(t.Footer.Render(" enter load · d delete · esc back"))
	return b.String()
}
