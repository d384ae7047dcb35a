package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit        key.Binding
	Start       key.Binding
	NewRun      key.Binding
	FocusNext   key.Binding
	PrevTab     key.Binding
	NextTab     key.Binding
	History     key.Binding
	Copy        key.Binding
	ExportMD    key.Binding
	ExportTXT   key.Binding
	ToggleTheme key.Binding
	Help        key.Binding
	Back        key.Binding
	Enter       key.Binding
	Delete      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Start: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "generate"),
		),
		NewRun: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new run"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←", "previous stage"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next stage"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "history"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy stage"),
		),
		ExportMD: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export .md"),
		),
		ExportTXT: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "export .txt"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete record"),
		),
	}
}

type helpModel struct {
	keys  keyMap
	width int
}

func newHelpModel() helpModel {
	return helpModel{keys: defaultKeyMap(), width: 80}
}

func (m *helpModel) SetWidth(width int) {
	m.width = width
}

func (m helpModel) View(t Theme) string {
	var b strings.Builder

	b.WriteString(t.TopBarTitle.Render("studio help"))
	b.WriteString("\n\n")

	b.WriteString(t.PaneTitleF.Render("pipeline"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  start generating all seven stages\n", t.TopBarBadge.Render("ctrl+s")))
	b.WriteString(fmt.Sprintf("  %s  abandon the session and start over\n", t.TopBarBadge.Render("ctrl+n")))
	b.WriteString(fmt.Sprintf("  %s  move between title, brief, and output\n", t.TopBarBadge.Render("tab")))
	b.WriteString(fmt.Sprintf("  %s  switch between unlocked stage tabs\n", t.TopBarBadge.Render("←/→")))
	b.WriteString("\n")

	b.WriteString(t.PaneTitleF.Render("results"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  copy the visible stage to the clipboard\n", t.TopBarBadge.Render("ctrl+y")))
	b.WriteString(fmt.Sprintf("  %s  export the run as markdown\n", t.TopBarBadge.Render("ctrl+e")))
	b.WriteString(fmt.Sprintf("  %s  export the run as plain text\n", t.TopBarBadge.Render("ctrl+x")))
	b.WriteString("\n")

	b.WriteString(t.PaneTitleF.Render("app"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  browse completed runs\n", t.TopBarBadge.Render("ctrl+h")))
	b.WriteString(fmt.Sprintf("  %s  toggle light/dark theme\n", t.TopBarBadge.Render("ctrl+t")))
	b.WriteString(fmt.Sprintf("  %s  quit\n", t.TopBarBadge.Render("ctrl+c")))
	b.WriteString("\n")
	b.WriteString(t.Footer.Render("esc closes this screen"))

	return b.String()
}
