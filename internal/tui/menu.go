package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/horizons-app/horizons/internal/models"
)

type menuItem struct {
	label string
	hint  string
}

var menuItems = []menuItem{
	{"Simulador MUN", "Representa a un país ante el Consejo de Seguridad"},
	{"Design Lab", "Crea proyectos de diseño con herramientas reales"},
	{"Socrat IA", "Conversa sobre tus intereses"},
	{"Mi perfil", "Tu progreso vocacional"},
	{"Carreras", "Explora fichas de carreras"},
	{"Cerrar sesión", ""},
}

const (
	menuMUN = iota
	menuDesignLab
	menuChat
	menuProfile
	menuCareers
	menuLogout
)

type menuScreen struct {
	cursor int
}

func (m model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}
	case "down", "j":
		if m.menu.cursor < len(menuItems)-1 {
			m.menu.cursor++
		}
	case "q", "esc":
		m.shutdown()
		return m, tea.Quit
	case "enter":
		m.status = ""
		switch m.menu.cursor {
		case menuMUN:
			m.mun = newMUNScreen(m.deps.Catalog, m.deps.Rand)
			m.state = stateMUN
		case menuDesignLab:
			m.lab = newLabScreen(m.deps.Catalog, m.deps.Rand)
			m.state = stateDesignLab
		case menuChat:
			m.talk = newChatScreen(m.width, m.height)
			m.talk.refresh(m.chat)
			m.state = stateChat
		case menuProfile:
			m.state = stateProfile
		case menuCareers:
			m.career = newCareerScreen(m.explorer)
			m.state = stateCareer
		case menuLogout:
			m.saveProfile()
			m.dashboard.Logout()
			m.user = nil
			m.login = newLoginScreen(m.deps.API != nil)
			m.state = stateLogin
		}
	}
	return m, nil
}

func (s menuScreen) view(user *models.User, status string) string {
	var b strings.Builder
	name := "invitado"
	if user != nil {
		name = user.Username
	}
	b.WriteString(titleStyle.Render("HORIZONS") + "\n")
	b.WriteString("Hola, " + name + ". ¿Qué quieres explorar hoy?\n\n")

	for i, item := range menuItems {
		line := "  " + item.label
		if i == s.cursor {
			line = selectedStyle.Render("> " + item.label)
			if item.hint != "" {
				line += "  " + helpStyle.Render(item.hint)
			}
		}
		b.WriteString(line + "\n")
	}
	if status != "" {
		b.WriteString("\n" + errorStyle.Render(status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓: mover · Enter: abrir · q: salir"))
	return b.String()
}
