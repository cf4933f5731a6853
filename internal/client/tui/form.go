package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// auth form field indices
const (
	authFieldMode = iota
	authFieldName
	authFieldEmail
	authFieldPassword
	authFieldCount
)

type authForm struct {
	register bool // false = sign in, true = create account
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
}

func newAuthForm() authForm {
	ni := textinput.New()
	ni.Placeholder = "Maria da Silva"
	ni.CharLimit = 100

	ei := textinput.New()
	ei.Placeholder = "you@example.org"
	ei.CharLimit = 200

	pi := textinput.New()
	pi.CharLimit = 200
	pi.EchoMode = textinput.EchoPassword
	pi.EchoCharacter = '*'

	return authForm{
		name:     ni,
		email:    ei,
		password: pi,
		focus:    authFieldMode,
	}
}

// nextField skips the name field while in sign-in mode.
func (f *authForm) nextField(delta int) {
	f.blurCurrent()
	for {
		f.focus = (f.focus + delta + authFieldCount) % authFieldCount
		if f.focus != authFieldName || f.register {
			break
		}
	}
	f.focusCurrent()
}

func (f *authForm) blurCurrent() {
	switch f.focus {
	case authFieldName:
		f.name.Blur()
	case authFieldEmail:
		f.email.Blur()
	case authFieldPassword:
		f.password.Blur()
	}
}

func (f *authForm) focusCurrent() {
	switch f.focus {
	case authFieldName:
		f.name.Focus()
		f.name.CursorEnd()
	case authFieldEmail:
		f.email.Focus()
		f.email.CursorEnd()
	case authFieldPassword:
		f.password.Focus()
		f.password.CursorEnd()
	}
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.authForm
	key := msg.String()

	switch key {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab", "down":
		f.nextField(1)
		return m, nil

	case "shift+tab", "up":
		f.nextField(-1)
		return m, nil

	case "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		if f.register {
			return m, m.registerCmd(f.name.Value(), f.email.Value(), f.password.Value())
		}
		return m, m.loginCmd(f.email.Value(), f.password.Value())
	}

	switch f.focus {
	case authFieldMode:
		switch key {
		case "left", "h":
			f.register = false
		case "right", "l":
			f.register = true
		}
		return m, nil

	case authFieldName:
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		return m, cmd

	case authFieldEmail:
		var cmd tea.Cmd
		f.email, cmd = f.email.Update(msg)
		return m, cmd

	case authFieldPassword:
		var cmd tea.Cmd
		f.password, cmd = f.password.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{err: m.session.Login(context.Background(), email, password)}
	}
}

func (m Model) registerCmd(name, email, password string) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{err: m.session.Register(context.Background(), name, email, password)}
	}
}

func (m Model) viewAuth() string {
	f := m.authForm

	modeLabel := fieldLabel("Mode:", f.focus == authFieldMode)
	modeValue := renderRadio([]string{"Sign in", "Create account"}, boolToIdx(f.register), f.focus == authFieldMode)

	var nameBlock string
	if f.register {
		nameBlock = fieldLabel("Name:", f.focus == authFieldName) + "  " + f.name.View() + "\n\n"
	}

	emailLabel := fieldLabel("Email:", f.focus == authFieldEmail)
	passLabel := fieldLabel("Pass:", f.focus == authFieldPassword)

	status := ""
	switch {
	case m.busy:
		status = dimStyle.Render("Working...")
	case m.errMsg != "":
		status = errorStyle.Render(m.errMsg)
	case m.notice != "":
		status = noticeStyle.Render(m.notice)
	}

	content := fmt.Sprintf(
		"%s\n\n%s  %s\n\n%s%s  %s\n\n%s  %s\n\n%s\n%s",
		boxTitleStyle.Render("Voz Ativa"),
		modeLabel, modeValue,
		nameBlock,
		emailLabel, f.email.View(),
		passLabel, f.password.View(),
		status,
		dimStyle.Render("Enter: submit  Tab: next  ←→: toggle  Ctrl+C: quit"),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(content))
}

func fieldLabel(label string, focused bool) string {
	style := lipgloss.NewStyle().Width(7)
	if focused {
		style = style.Bold(true).Foreground(lipgloss.Color("39"))
	} else {
		style = style.Foreground(lipgloss.Color("252"))
	}
	return style.Render(label)
}

func renderRadio(options []string, selected int, focused bool) string {
	var parts []string
	for i, opt := range options {
		if i == selected {
			style := lipgloss.NewStyle().Bold(true)
			if focused {
				style = style.Foreground(lipgloss.Color("39"))
			} else {
				style = style.Foreground(lipgloss.Color("255"))
			}
			parts = append(parts, style.Render("● "+opt))
		} else {
			parts = append(parts, dimStyle.Render("○ "+opt))
		}
	}
	return strings.Join(parts, "   ")
}

func boolToIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}
