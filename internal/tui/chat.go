package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/horizons-app/horizons/internal/chat"
	"github.com/horizons-app/horizons/internal/counselor"
)

type chatScreen struct {
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	width    int
	// waiting is set from Enter until the reply arrives.
	waiting bool
}

type chatReplyMsg struct {
	err error
}

func newChatScreen(width, height int) chatScreen {
	ti := textinput.New()
	ti.Placeholder = "Escribe tu mensaje..."
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = helpStyle

	s := chatScreen{input: ti, spinner: sp}
	s.resize(width, height)
	return s
}

func (s *chatScreen) resize(width, height int) {
	if width == 0 {
		width, height = 80, 24
	}
	s.width = int(float64(width) * 0.75)
	if s.viewport.Width == 0 {
		s.viewport = newViewport(s.width, height-8)
		return
	}
	s.viewport.Width = s.width
	s.viewport.Height = height - 8
}

func (s *chatScreen) refresh(sess *chat.Session) {
	if sess == nil {
		return
	}
	s.viewport.SetContent(s.render(sess))
	s.viewport.GotoBottom()
}

func (s chatScreen) render(sess *chat.Session) string {
	var b strings.Builder
	for _, msg := range sess.Messages() {
		stamp := helpStyle.Render(msg.Time.Format("15:04"))
		if msg.IsUser {
			b.WriteString(userStyle.Width(s.width).Render("> "+msg.Text) + "\n" + stamp + "\n\n")
		} else {
			b.WriteString(botStyle.Width(s.width).Render(msg.Text) + "\n" + stamp + "\n\n")
		}
	}
	return b.String()
}

func (m model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &m.talk

	switch msg := msg.(type) {
	case chatReplyMsg:
		if errors.Is(msg.err, chat.ErrReset) {
			return m, nil
		}
		s.waiting = false
		s.refresh(m.chat)
		return m, nil

	case spinner.TickMsg:
		if !s.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		s.refresh(m.chat)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m.backToMenu(), nil
		case tea.KeyCtrlR:
			m.chat.Reset()
			s.waiting = false
			s.refresh(m.chat)
			return m, nil
		case tea.KeyEnter:
			text := strings.TrimSpace(s.input.Value())
			if text == "" || s.waiting || m.chat.InFlight() {
				return m, nil
			}
			s.input.Reset()
			s.waiting = true
			return m, tea.Batch(m.sendChat(text), s.spinner.Tick)
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			s.viewport, cmd = s.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return m, cmd
}

func (m model) sendChat(text string) tea.Cmd {
	sess := m.chat
	return func() tea.Msg {
		_, err := sess.Send(context.Background(), text)
		return chatReplyMsg{err: err}
	}
}

func (s chatScreen) view() string {
	header := titleStyle.Render(strings.ToUpper(counselor.Persona)) + "\n" +
		helpStyle.Render("Tu orientador vocacional") + "\n"

	status := ""
	if s.waiting {
		status = s.spinner.View() + " " + helpStyle.Render(counselor.Persona+" está escribiendo...")
	}

	help := helpStyle.Render("Enter: enviar · PgUp/PgDn: desplazar · Ctrl+R: nueva conversación · Esc: menú")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		s.viewport.View(),
		status,
		"\n"+s.input.View(),
		"\n"+help,
	)
}
