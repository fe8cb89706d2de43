package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// onboardState collects the name and email used to resolve the device's
// reader on first launch.
type onboardState struct {
	active bool
	busy   bool
	err    string
	inputs []textinput.Model
	focus  int
}

func newOnboardState() onboardState {
	name := textinput.New()
	name.Placeholder = "Jane Reader"
	name.CharLimit = 120
	name.Focus()

	email := textinput.New()
	email.Placeholder = "jane@example.com"
	email.CharLimit = 120

	return onboardState{
		active: true,
		inputs: []textinput.Model{name, email},
	}
}

func (o onboardState) updateInputs(msg tea.Msg) (onboardState, tea.Cmd) {
	if !o.active || o.focus >= len(o.inputs) {
		return o, nil
	}
	var cmd tea.Cmd
	o.inputs[o.focus], cmd = o.inputs[o.focus].Update(msg)
	return o, cmd
}

func (o *onboardState) moveFocus(delta int) {
	o.inputs[o.focus].Blur()
	o.focus = (o.focus + delta + len(o.inputs)) % len(o.inputs)
	o.inputs[o.focus].Focus()
}

func (m Model) handleOnboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.onboard.busy {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "down":
		m.onboard.moveFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.onboard.moveFocus(-1)
		return m, nil

	case "enter":
		name := m.onboard.inputs[0].Value()
		email := m.onboard.inputs[1].Value()
		m.onboard.busy = true
		m.onboard.err = ""
		return m, m.resolveIdentityCmd(name, email)
	}

	var cmd tea.Cmd
	m.onboard, cmd = m.onboard.updateInputs(msg)
	return m, cmd
}

func (m Model) renderOnboard() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Who's using this device?"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("Your reviews and reading progress are tracked per reader."))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Label.Render("Name"))
	b.WriteString("\n")
	b.WriteString(m.onboard.inputs[0].View())
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.onboard.inputs[1].View())
	b.WriteString("\n")

	if m.onboard.busy {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Looking you up..."))
		b.WriteString("\n")
	}
	if m.onboard.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.onboard.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter continue · tab next field · ctrl+c quit"))

	return m.overlay(m.styles.Modal.Render(b.String()))
}
