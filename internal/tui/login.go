// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// AuthModel is the login and registration form. On success an
// [authResultMsg] with a nil error is produced and handled by [RootModel].
type AuthModel struct {
	ctx     context.Context
	session authenticator
	mode    authMode

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewAuthModel(ctx context.Context, session authenticator, mode authMode) *AuthModel {
	loginInput := textinput.New()
	loginInput.Placeholder = "login"
	loginInput.CharLimit = 64
	loginInput.Width = 40
	loginInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 72
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &AuthModel{
		ctx:     ctx,
		session: session,
		mode:    mode,
		inputs:  []textinput.Model{loginInput, passwordInput},
	}
}

func (m *AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

// capturing is always true: every printable key belongs to an input.
func (m *AuthModel) capturing() bool { return true }

func (m *AuthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeError(result.err)
			return m, nil
		}
		m.reset()
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.reset()
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case "tab", "down":
			m.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.focusNext()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			login := strings.TrimSpace(m.inputs[0].Value())
			pass := m.inputs[1].Value()
			if login == "" || pass == "" {
				m.errMsg = "Login and password are required"
				return m, nil
			}
			if m.mode == modeRegister && len(pass) < 6 {
				m.errMsg = "Password must be at least 6 characters"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdSubmit(login, pass)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *AuthModel) View() string {
	title, action := "LOG IN", "Log in"
	if m.mode == modeRegister {
		title, action = "REGISTER", "Create account"
	}

	var b strings.Builder
	b.WriteString("Field    │ Value\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	b.WriteString("Login    │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	b.WriteString("\n[" + action)
	if m.submitting {
		b.WriteString("...")
	}
	b.WriteString("]\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *AuthModel) cmdSubmit(login, pass string) tea.Cmd {
	ctx, session, mode := m.ctx, m.session, m.mode

	return func() tea.Msg {
		var err error
		if mode == modeRegister {
			err = session.Register(ctx, login, pass)
		} else {
			err = session.Login(ctx, login, pass)
		}
		return authResultMsg{login: login, err: err}
	}
}

func (m *AuthModel) reset() {
	m.submitting = false
	m.errMsg = ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m *AuthModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
