package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/game/designlab"
	"github.com/horizons-app/horizons/internal/game/mun"
	"github.com/horizons-app/horizons/internal/models"
)

type echoResponder struct{}

func (echoResponder) Send(_ context.Context, _, message string) (string, error) {
	return "eco: " + message, nil
}

type instantClock struct{}

func (instantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestModel(t *testing.T) model {
	t.Helper()
	old := models.SaveDir
	models.SaveDir = t.TempDir()
	t.Cleanup(func() { models.SaveDir = old })

	m := NewModel(Deps{
		Catalog: catalog.Default(),
		Chat:    echoResponder{},
		Rand:    game.NewRand(7),
		Clock:   instantClock{},
		GuestID: "tester",
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = send(t, m, enter)
	require.Equal(t, stateMenu, m.state)
	return m
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

// drain runs cmd and feeds every message it yields back into the model.
func drain(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				m = drain(t, m, c)
			}
			return m
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestOfflineLoginEntersAsGuest(t *testing.T) {
	m := newTestModel(t)
	assert.Nil(t, m.user)
	assert.Equal(t, "tester", m.dashboard.Name())
	assert.Contains(t, m.View(), "Hola, invitado")
}

func TestPlayMUN(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, enter)
	require.Equal(t, stateMUN, m.state)

	m = send(t, m, enter, enter)
	require.Equal(t, mun.StageCrisisPresentation, m.mun.session.State().Stage)

	for range m.mun.session.Machine().CrisisCount() {
		m = send(t, m, enter, enter, enter)
	}
	st := m.mun.session.State()
	require.Equal(t, mun.StageFinalSummary, st.Stage)
	assert.Len(t, st.Decisions, m.mun.session.Machine().CrisisCount())
	assert.True(t, m.mun.recorded)
	assert.Equal(t, 1, m.dashboard.Profile.GamesPlayed)
	assert.Contains(t, m.View(), "Relaciones Internacionales")

	m = send(t, m, enter)
	assert.Equal(t, stateMenu, m.state)
	assert.Equal(t, 1, m.dashboard.Profile.GamesPlayed)
}

func TestPlayDesignLab(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := newTestModel(t)
	m = send(t, m, down, enter)
	require.Equal(t, stateDesignLab, m.state)

	m = send(t, m, enter, enter)
	require.Equal(t, designlab.StageChallengePresentation, m.lab.session.State().Stage)

	for range m.lab.session.Machine().ChallengeCount() {
		m = send(t, m, space, tab, space)
		next, cmd := m.Update(enter)
		m = next.(model)
		require.Equal(t, designlab.StageCreation, m.lab.session.State().Stage)

		m = drain(t, m, cmd)
		require.Equal(t, designlab.CreationSteps, m.lab.session.State().CreationStep)

		m = send(t, m, enter)
		require.Equal(t, designlab.StageResultPresentation, m.lab.session.State().Stage)
		m = send(t, m, enter)
	}

	st := m.lab.session.State()
	require.Equal(t, designlab.StageFinalSummary, st.Stage)
	require.NotNil(t, st.Scores)
	assert.True(t, m.lab.recorded)
	assert.Len(t, m.dashboard.RecordsOf("designlab"), 1)
}

func TestLeavingCreationStopsTimer(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := newTestModel(t)
	m = send(t, m, down, enter, enter, enter, space, tab, space)
	next, cmd := m.Update(enter)
	m = next.(model)
	require.NotNil(t, cmd)
	run := m.lab.run

	m = send(t, m, esc)
	assert.Equal(t, stateMenu, m.state)

	// The relay finishes once the cancelled timer closes its channel.
	for {
		msg := cmd()
		if _, done := msg.(creationDoneMsg); done {
			break
		}
		cmd = waitForTick(run, m.lab.ticks)
	}
}

func TestChat(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, down, down, enter)
	require.Equal(t, stateChat, m.state)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("me gusta dibujar")})
	next, cmd := m.Update(enter)
	m = next.(model)
	assert.True(t, m.talk.waiting)
	assert.Empty(t, m.talk.input.Value())

	m = drain(t, m, cmd)
	assert.False(t, m.talk.waiting)
	msgs := m.chat.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "eco: me gusta dibujar", msgs[2].Text)
	assert.Contains(t, m.View(), "eco: me gusta dibujar")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Len(t, m.chat.Messages(), 1)
}

func TestCareerOpenIsRecorded(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, down, down, down, down, enter)
	require.Equal(t, stateCareer, m.state)

	m = send(t, m, enter)
	require.NotNil(t, m.career.open)
	assert.GreaterOrEqual(t, m.career.open.Match, 65)
	assert.Equal(t, 1, m.dashboard.Profile.CareersExplored)

	m = send(t, m, esc, esc, tea.KeyMsg{Type: tea.KeyUp}, enter)
	require.Equal(t, stateProfile, m.state)
	assert.Contains(t, m.View(), "ACTIVIDAD RECIENTE")
}
