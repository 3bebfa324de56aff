package designlab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestSession(t *testing.T, seed uint64) *Session {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return NewSession(NewMachine(cat.DesignLab, game.NewRand(seed)))
}

func finishCreation(t *testing.T, s *Session) {
	t.Helper()
	require.Equal(t, StageCreation, s.State().Stage)
	for i := 0; i < CreationSteps; i++ {
		require.True(t, s.Tick())
	}
	assert.False(t, s.Tick(), "creation is capped")
	assert.Equal(t, 1.0, s.State().Progress())
	require.True(t, s.Advance())
}

func TestFullRun(t *testing.T) {
	s := newTestSession(t, 11)

	require.True(t, s.Advance())
	require.True(t, s.SelectSpecialty("UX/UI Design"))
	assert.Equal(t, 10, s.State().Points)
	require.True(t, s.Advance())
	assert.Equal(t, "Identidad Visual para Startup", s.State().Challenge.Title)

	require.True(t, s.ToggleTool("Figma"))
	require.True(t, s.ToggleTool("Sketch"))
	require.True(t, s.SelectStyle("Minimalista"))
	assert.Equal(t, 30, s.State().Points)

	require.True(t, s.Advance())
	assert.False(t, s.Advance(), "creation must finish first")
	finishCreation(t, s)

	st := s.State()
	assert.Equal(t, StageResultPresentation, st.Stage)
	assert.Equal(t, 5, st.Rating)
	assert.Equal(t, 80, st.Points)
	require.NotNil(t, st.Feedback)
	assert.NotEmpty(t, st.Feedback.Comment)
	assert.Len(t, st.Feedback.Strengths, 2)
	assert.Len(t, st.Feedback.Improvements, 1)
	require.Len(t, st.Skills, 3)
	assert.Contains(t, st.Specialty.KeyAreas, st.Skills[0])
	assert.Equal(t, []string{"Prototipos", "UI"}, st.Skills[1:])
	assert.True(t, s.HasMoreChallenges())

	require.True(t, s.Advance())
	st = s.State()
	assert.Equal(t, StageChallengePresentation, st.Stage)
	assert.Equal(t, "App de Bienestar Mental", st.Challenge.Title)
	assert.Empty(t, st.Tools)
	assert.Nil(t, st.Style)
	assert.Nil(t, st.Feedback)

	require.True(t, s.ToggleTool("Photoshop"))
	require.True(t, s.SelectStyle("Vintage"))
	require.True(t, s.Advance())
	finishCreation(t, s)
	assert.Equal(t, 4, s.State().Rating)
	assert.Equal(t, 135, s.State().Points)
	assert.False(t, s.HasMoreChallenges())

	require.True(t, s.Advance())
	st = s.State()
	assert.Equal(t, StageFinalSummary, st.Stage)
	assert.ElementsMatch(t, []string{"Figma", "Sketch", "Photoshop"}, st.ToolsUsed)
	require.NotNil(t, st.Scores)
	assert.InDelta(t, 0.75, st.Scores.TechnicalSkills, 1e-9)
	assert.InDelta(t, 0.7, st.Scores.Creativity, 1e-9)
	assert.InDelta(t, 0.4, st.Scores.VisualDesign, 1e-9)
	assert.InDelta(t, 0.35, st.Scores.AestheticSense, 1e-9)

	before := s.State()
	assert.False(t, s.Advance())
	assert.Equal(t, before, s.State())

	s.Restart()
	assert.Equal(t, s.Machine().Initial(), s.State())
}

func TestToggleToolTwiceRestoresSelection(t *testing.T) {
	s := newTestSession(t, 2)
	s.Advance()
	s.SelectSpecialty("Diseño Gráfico")
	s.Advance()
	s.ToggleTool("Illustrator")

	before := s.State()
	require.True(t, s.ToggleTool("Procreate"))
	assert.True(t, s.State().HasTool("Procreate"))
	require.True(t, s.ToggleTool("Procreate"))

	after := s.State()
	assert.Equal(t, before.Points, after.Points)
	assert.ElementsMatch(t, before.Tools, after.Tools)

	assert.False(t, s.ToggleTool("Paint"))
}

func TestGuards(t *testing.T) {
	s := newTestSession(t, 2)
	assert.False(t, s.ToggleTool("Figma"))
	assert.False(t, s.Tick())

	s.Advance()
	assert.False(t, s.Advance(), "specialty required")
	require.True(t, s.SelectSpecialty("Diseño Editorial"))
	assert.False(t, s.SelectSpecialty("Diseño Editorial"))
	require.True(t, s.SelectSpecialty("Diseño de Producto"))
	assert.Equal(t, 10, s.State().Points, "only the first choice scores")

	s.Advance()
	assert.False(t, s.Advance(), "tools and style required")
	s.ToggleTool("Figma")
	assert.False(t, s.Advance(), "style required")
	s.SelectStyle("Orgánico")
	s.SelectStyle("Geométrico")
	assert.Equal(t, 25, s.State().Points)
	assert.Equal(t, "Geométrico", s.State().Style.Name)
	assert.True(t, s.Advance())
	assert.False(t, s.SelectStyle("Vintage"), "style is locked during creation")
}

func TestRate(t *testing.T) {
	assert.Equal(t, 3, Rate(1, false))
	assert.Equal(t, 4, Rate(2, false))
	assert.Equal(t, 4, Rate(0, true))
	assert.Equal(t, 5, Rate(6, true))
}

func TestAwardSkills(t *testing.T) {
	tools := []models.DesignTool{{Name: "a", SkillBonus: "A"}, {Name: "b", SkillBonus: "B"}, {Name: "c", SkillBonus: "C"}}
	got := AwardSkills(&models.DesignSpecialty{}, tools, game.NewRand(1))
	assert.Equal(t, []string{"Diseño", "A", "B"}, got)

	assert.Equal(t, []string{"A"}, AwardSkills(nil, tools[:1], game.NewRand(1)))
}

func TestFeedbackIsDeterministicForSeed(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	a := GenerateFeedback(cat.DesignLab, game.NewRand(9))
	b := GenerateFeedback(cat.DesignLab, game.NewRand(9))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Strengths[0], a.Strengths[1])
}

func TestComputeScores(t *testing.T) {
	assert.Equal(t, baseline, ComputeScores(ScoreInputs{}))

	got := ComputeScores(ScoreInputs{Specialty: "Diseño Gráfico", ToolCount: 20, Points: 5000})
	assert.InDelta(t, 0.7, got.VisualDesign, 1e-9)
	assert.InDelta(t, 0.6, got.AestheticSense, 1e-9)
	assert.InDelta(t, 0.55, got.TechnicalSkills, 1e-9, "tool bonus is capped")
	assert.InDelta(t, 0.5, got.Creativity, 1e-9, "creativity bonus is capped")

	for _, sp := range []string{"Diseño Gráfico", "UX/UI Design", "Diseño de Producto", "Diseño Editorial", "?"} {
		for tools := 0; tools < 8; tools++ {
			for _, v := range ComputeScores(ScoreInputs{Specialty: sp, ToolCount: tools, Points: 400}).Map() {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

type instantClock struct{ calls int }

func (c *instantClock) After(time.Duration) <-chan time.Time {
	c.calls++
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

type stoppedClock struct{}

func (stoppedClock) After(time.Duration) <-chan time.Time { return nil }

func TestRunCreationDeliversFourTicks(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newTestSession(t, 4)
	s.Advance()
	s.SelectSpecialty("UX/UI Design")
	s.Advance()
	s.ToggleTool("Figma")
	s.SelectStyle("Moderno")
	s.Advance()

	ticks := make(chan int)
	done := make(chan error, 1)
	clock := &instantClock{}
	go func() {
		done <- RunCreation(context.Background(), clock, func(step int) { ticks <- step })
		close(ticks)
	}()

	var steps []int
	for step := range ticks {
		steps = append(steps, step)
		s.Tick()
	}
	require.NoError(t, <-done)
	assert.Equal(t, []int{1, 2, 3, 4}, steps)
	assert.Equal(t, 4, clock.calls)
	assert.Equal(t, CreationSteps, s.State().CreationStep)

	label, ok := s.Machine().CreationStep(1)
	require.True(t, ok)
	assert.Equal(t, "Conceptualización", label.Name)
	_, ok = s.Machine().CreationStep(5)
	assert.False(t, ok)
}

func TestRunCreationStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunCreation(ctx, stoppedClock{}, func(int) { t.Error("unexpected tick") })
	}()
	cancel()
	err := <-done
	assert.True(t, errors.Is(err, context.Canceled))
}
