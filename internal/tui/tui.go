package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/horizons-app/horizons/internal/api"
	"github.com/horizons-app/horizons/internal/career"
	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/chat"
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/game/designlab"
	"github.com/horizons-app/horizons/internal/game/mun"
	"github.com/horizons-app/horizons/internal/models"
	"github.com/horizons-app/horizons/internal/profile"
)

type sessionState int

const (
	stateLogin sessionState = iota
	stateMenu
	stateMUN
	stateDesignLab
	stateChat
	stateProfile
	stateCareer
	stateError
)

// Deps are the services the UI talks to.
type Deps struct {
	Catalog *catalog.Catalog
	// API is the auth service. Nil runs the app offline as a guest.
	API   *api.Client
	Chat  chat.Responder
	Rand  game.Rand
	Clock designlab.Clock
	// GuestID names the guest profile and chat user.
	GuestID string
	Log     *zap.Logger
}

type model struct {
	state sessionState
	deps  Deps

	user      *models.User
	dashboard *profile.Dashboard
	chat      *chat.Session
	explorer  *career.Explorer

	login  loginScreen
	menu   menuScreen
	mun    munScreen
	lab    labScreen
	talk   chatScreen
	career careerScreen

	err           error
	status        string
	width, height int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00D7AF")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))
)

func NewModel(deps Deps) model {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Rand == nil {
		deps.Rand = game.NewTimeRand()
	}
	if deps.Clock == nil {
		deps.Clock = designlab.RealClock
	}
	if deps.GuestID == "" {
		deps.GuestID = "demo"
	}
	return model{
		state: stateLogin,
		deps:  deps,
		login: newLoginScreen(deps.API != nil),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type errMsg struct {
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.shutdown()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.talk.resize(msg.Width, msg.Height)
		if m.state == stateChat {
			m.talk.refresh(m.chat)
		}
	case errMsg:
		m.err = msg.err
		m.state = stateError
		return m, nil
	}

	switch m.state {
	case stateLogin:
		return m.updateLogin(msg)
	case stateMenu:
		return m.updateMenu(msg)
	case stateMUN:
		return m.updateMUN(msg)
	case stateDesignLab:
		return m.updateLab(msg)
	case stateChat:
		return m.updateChat(msg)
	case stateProfile:
		return m.updateProfile(msg)
	case stateCareer:
		return m.updateCareer(msg)
	case stateError:
		if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateLogin:
		s = m.login.view()
	case stateMenu:
		s = m.menu.view(m.user, m.status)
	case stateMUN:
		s = m.mun.view()
	case stateDesignLab:
		s = m.lab.view()
	case stateChat:
		s = m.talk.view()
	case stateProfile:
		s = profileView(m.dashboard, m.width)
	case stateCareer:
		s = m.career.view()
	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

// enter sets up the per-user services once the player is known.
func (m *model) enter(user *models.User) error {
	name := m.deps.GuestID
	chatID := m.deps.GuestID
	if user != nil {
		name = user.Username
		chatID = strconv.FormatInt(user.ID, 10)
	}

	d, err := profile.Open(name)
	if err != nil {
		return err
	}
	if user != nil {
		d.SetUser(user)
	}
	m.user = user
	m.dashboard = d
	m.chat = chat.NewSession(m.deps.Chat, chatID, m.deps.Log)
	m.explorer = career.NewExplorer(m.deps.Catalog, m.deps.Rand, d)
	m.menu = menuScreen{}
	m.state = stateMenu
	m.deps.Log.Info("session started", zap.String("profile", name))
	return nil
}

func (m *model) saveProfile() {
	if m.dashboard == nil {
		return
	}
	if err := m.dashboard.Save(); err != nil {
		m.deps.Log.Error("save profile", zap.Error(err))
		m.status = "No se pudo guardar tu perfil."
	}
}

func (m *model) shutdown() {
	m.lab.stopCreation()
	m.saveProfile()
}

func (m model) backToMenu() model {
	m.state = stateMenu
	return m
}

// playedSince is the play time of a game started at start.
func playedSince(start time.Time) time.Duration {
	if start.IsZero() {
		return 0
	}
	return time.Since(start).Round(time.Second)
}

func Run(deps Deps) error {
	p := tea.NewProgram(NewModel(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// newViewport is used by screens that scroll.
func newViewport(width, height int) viewport.Model {
	return viewport.New(width, height)
}
