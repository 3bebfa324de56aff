package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/horizons-app/horizons/internal/api"
	"github.com/horizons-app/horizons/internal/models"
)

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
)

type loginScreen struct {
	online  bool
	signup  bool
	focus   int
	inputs  []textinput.Model
	loading bool
	message string
}

type loginDoneMsg struct {
	user *models.User
	err  error
}

func newLoginScreen(online bool) loginScreen {
	inputs := make([]textinput.Model, 3)
	for i, ph := range []string{"usuario", "correo", "contraseña"} {
		ti := textinput.New()
		ti.Placeholder = ph
		ti.CharLimit = 100
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'

	s := loginScreen{online: online, focus: fieldEmail, inputs: inputs}
	s.inputs[s.focus].Focus()
	return s
}

// fields lists the inputs shown in the current mode.
func (s loginScreen) fields() []int {
	if s.signup {
		return []int{fieldUsername, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (s *loginScreen) moveFocus(delta int) {
	fields := s.fields()
	pos := 0
	for i, f := range fields {
		if f == s.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	s.inputs[s.focus].Blur()
	s.focus = fields[pos]
	s.inputs[s.focus].Focus()
}

func (s loginScreen) value(field int) string {
	return strings.TrimSpace(s.inputs[field].Value())
}

func (m model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &m.login

	switch msg := msg.(type) {
	case loginDoneMsg:
		s.loading = false
		if msg.err != nil {
			s.message = api.UserMessage(msg.err)
			m.deps.Log.Info("login failed", zap.Error(msg.err))
			return m, nil
		}
		if err := m.enter(msg.user); err != nil {
			return m, func() tea.Msg { return errMsg{err} }
		}
		return m, nil

	case tea.KeyMsg:
		if s.loading {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlG:
			if err := m.enter(nil); err != nil {
				return m, func() tea.Msg { return errMsg{err} }
			}
			return m, nil
		case tea.KeyCtrlN:
			s.signup = !s.signup
			s.message = ""
			s.inputs[s.focus].Blur()
			s.focus = s.fields()[0]
			s.inputs[s.focus].Focus()
			return m, nil
		case tea.KeyTab, tea.KeyDown:
			s.moveFocus(1)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			s.moveFocus(-1)
			return m, nil
		case tea.KeyEnter:
			if !s.online {
				if err := m.enter(nil); err != nil {
					return m, func() tea.Msg { return errMsg{err} }
				}
				return m, nil
			}
			if problem := s.validate(); problem != "" {
				s.message = problem
				return m, nil
			}
			s.loading = true
			s.message = ""
			return m, m.authenticate(s.signup, s.value(fieldUsername), s.value(fieldEmail), s.inputs[fieldPassword].Value())
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return m, cmd
}

// validate returns what is missing from the form, or "".
func (s loginScreen) validate() string {
	if s.signup && s.value(fieldUsername) == "" {
		return "Escribe un nombre de usuario."
	}
	if s.value(fieldEmail) == "" || s.inputs[fieldPassword].Value() == "" {
		return "Completa correo y contraseña."
	}
	return ""
}

func (m model) authenticate(signup bool, username, email, password string) tea.Cmd {
	client := m.deps.API
	return func() tea.Msg {
		ctx := context.Background()
		var (
			user *models.User
			err  error
		)
		if signup {
			user, err = client.Signup(ctx, username, email, password)
		} else {
			user, err = client.Login(ctx, email, password)
		}
		return loginDoneMsg{user: user, err: err}
	}
}

func (s loginScreen) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("HORIZONS") + "\n")
	b.WriteString("Descubre tu vocación jugando.\n\n")

	if !s.online {
		b.WriteString("Sin servidor de cuentas configurado.\n\n")
		b.WriteString(helpStyle.Render("Enter: entrar como invitado · Esc: salir"))
		return b.String()
	}

	if s.signup {
		b.WriteString("Crear cuenta\n\n")
	} else {
		b.WriteString("Iniciar sesión\n\n")
	}
	for _, f := range s.fields() {
		b.WriteString(s.inputs[f].View() + "\n")
	}
	b.WriteString("\n")
	switch {
	case s.loading:
		b.WriteString("Conectando...\n")
	case s.message != "":
		b.WriteString(errorStyle.Render(s.message) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("Enter: continuar · Tab: cambiar campo · Ctrl+N: crear cuenta/iniciar sesión · Ctrl+G: invitado · Esc: salir"))
	return b.String()
}
