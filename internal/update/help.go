package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tasklist/internal/views"
)

const helpIntro = "**tasklist** keeps a short list of things to do. Click a row to toggle it, click `×` to delete it."

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Intro:    helpIntro,
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "tab", Action: "switch input/list"},
		{Key: "esc", Action: "clear input"},
		{Key: "ctrl+c", Action: "quit app"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	if m.Mode == ModeInput {
		return []KeyBinding{
			{Key: "enter", Action: "add task"},
		}
	}
	return []KeyBinding{
		{Key: "j/k", Action: "move cursor"},
		{Key: "space/x", Action: "toggle done"},
		{Key: "d", Action: "delete task"},
		{Key: "C", Action: "clear completed"},
		{Key: "1/2/3", Action: "show all/active/completed"},
		{Key: "f", Action: "next filter"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.modeBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.modeBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
