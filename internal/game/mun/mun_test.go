package mun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/models"
)

func newTestSession(t *testing.T, seed uint64) *Session {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return NewSession(NewMachine(cat.MUN, game.NewRand(seed)))
}

func TestBrazilMultilateralResolution(t *testing.T) {
	s := newTestSession(t, 7)

	require.True(t, s.Advance())
	require.True(t, s.SelectCountry("Brasil"))
	require.True(t, s.Advance())
	assert.Equal(t, StageCrisisPresentation, s.State().Stage)
	assert.Equal(t, 1, s.State().Crisis.ID)

	require.True(t, s.Advance())
	require.True(t, s.SelectOption(3))
	require.True(t, s.SubmitDecision())

	st := s.State()
	assert.Equal(t, StageResultPresentation, st.Stage)
	require.NotNil(t, st.LastResult)
	assert.Contains(t, st.LastResult.SkillsGained, "Diplomacia multilateral")
	require.Len(t, st.Decisions, 1)
	assert.Equal(t, models.Diplomatic, st.Decisions[0].Approach)
	assert.Equal(t, "Brasil", st.Country.Name)
}

func TestFullRunReachesFinalSummary(t *testing.T) {
	s := newTestSession(t, 1)
	s.Advance()
	s.SelectCountry("Japón")
	s.Advance()

	for i := 0; i < s.Machine().CrisisCount(); i++ {
		require.Equal(t, i, s.State().CrisisIndex)
		s.Advance()
		opt := s.State().Crisis.Options[0]
		require.True(t, s.SelectOption(opt.ID))
		require.True(t, s.Advance(), "advance in decision capture submits")
		require.Equal(t, StageResultPresentation, s.State().Stage)
		assert.Equal(t, i < s.Machine().CrisisCount()-1, s.HasMoreCrises())
		s.Advance()
	}

	st := s.State()
	assert.Equal(t, StageFinalSummary, st.Stage)
	assert.Len(t, st.Decisions, 2)
	require.NotNil(t, st.Scores)
	assert.Equal(t, ComputeScores(st.Decisions), *st.Scores)
	assert.Equal(t, 1, st.CrisisIndex, "cursor stays on the last crisis")

	before := st
	assert.False(t, s.Advance())
	assert.False(t, s.SubmitDecision())
	assert.Equal(t, before, s.State())
}

func TestAdvanceIsMonotonic(t *testing.T) {
	s := newTestSession(t, 3)
	prev := s.State()
	events := []Event{
		Advance{}, SelectCountry{Name: "Francia"}, Advance{}, Advance{},
		SelectOption{ID: 2}, SubmitDecision{}, Advance{}, Advance{},
		SelectOption{ID: 6}, Advance{}, Advance{}, Advance{},
	}
	for _, ev := range events {
		changed := s.Dispatch(ev)
		cur := s.State()
		if cur.Stage != prev.Stage {
			assert.Greater(t, cur.Step, prev.Step)
		}
		if changed {
			assert.GreaterOrEqual(t, cur.Step, prev.Step)
		} else {
			assert.Equal(t, prev, cur)
		}
		// Stages only move back when the cursor moves to the next crisis.
		if cur.CrisisIndex == prev.CrisisIndex {
			assert.GreaterOrEqual(t, int(cur.Stage), int(prev.Stage))
		} else {
			assert.Equal(t, prev.CrisisIndex+1, cur.CrisisIndex)
		}
		prev = cur
	}
	assert.Equal(t, StageFinalSummary, prev.Stage)
}

func TestGuardsRejectInvalidEvents(t *testing.T) {
	s := newTestSession(t, 3)

	assert.False(t, s.SelectCountry("Brasil"), "not in country selection yet")
	s.Advance()
	assert.False(t, s.Advance(), "country required")
	assert.False(t, s.SelectCountry("Atlántida"))
	assert.True(t, s.SelectCountry("Brasil"))
	assert.False(t, s.SelectCountry("Brasil"), "same country twice")
	assert.False(t, s.SelectOption(1), "options belong to decision capture")

	s.Advance()
	s.Advance()
	require.Equal(t, StageDecisionCapture, s.State().Stage)
	assert.False(t, s.SubmitDecision(), "option required")
	assert.False(t, s.Advance())
	assert.False(t, s.SelectOption(4), "option of another crisis")
	assert.Empty(t, s.State().Decisions)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	m := NewMachine(cat.MUN, game.NewRand(1))

	s := m.Initial()
	for _, ev := range []Event{Advance{}, SelectCountry{Name: "Brasil"}, Advance{}, Advance{}, SelectOption{ID: 1}} {
		s, _ = m.Apply(s, ev)
	}
	first, ok := m.Apply(s, SubmitDecision{})
	require.True(t, ok)
	assert.Empty(t, s.Decisions)
	assert.Equal(t, StageDecisionCapture, s.Stage)
	assert.Len(t, first.Decisions, 1)
}

func TestRestart(t *testing.T) {
	s := newTestSession(t, 3)
	s.Advance()
	s.SelectCountry("Brasil")
	s.Advance()
	s.Restart()
	assert.Equal(t, s.Machine().Initial(), s.State())
}

func TestGenerateResult(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	opt := cat.MUN.Crises[0].Options[0]

	for seed := uint64(0); seed < 10; seed++ {
		a := GenerateResult(opt, cat.MUN.Outcomes, game.NewRand(seed))
		b := GenerateResult(opt, cat.MUN.Outcomes, game.NewRand(seed))
		assert.Equal(t, a, b)
		assert.Equal(t, opt.SkillsAwarded, a.SkillsGained)
		assert.Contains(t, []string{"Vidas Salvadas", "Acceso Limitado"}, a.Title)
	}

	res := GenerateResult(opt, nil, game.NewRand(1))
	assert.Equal(t, DefaultOutcome.Title, res.Title)
	assert.True(t, res.IsPositive)

	res.SkillsGained[0] = "changed"
	assert.NotEqual(t, "changed", opt.SkillsAwarded[0])
}

func TestComputeScores(t *testing.T) {
	empty := ComputeScores(nil)
	assert.Equal(t, baseline, empty)

	one := ComputeScores([]models.DecisionOption{{Approach: models.Diplomatic}})
	assert.InDelta(t, 0.7, one.InternationalRelations, 1e-9)
	assert.InDelta(t, 0.5, one.Communication, 1e-9)
	assert.InDelta(t, 0.55, one.Law, 1e-9)
	assert.InDelta(t, 0.3, one.Leadership, 1e-9)

	var log []models.DecisionOption
	prev := empty
	for i := 0; i < 8; i++ {
		log = append(log, models.DecisionOption{Approach: models.Approaches[i%len(models.Approaches)]})
		cur := ComputeScores(log)
		for k, v := range cur.Map() {
			assert.GreaterOrEqual(t, v, prev.Map()[k])
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
		prev = cur
	}
	assert.Equal(t, 1.0, prev.InternationalRelations)

	unknown := ComputeScores([]models.DecisionOption{{Approach: "pacifist"}})
	assert.Equal(t, baseline, unknown)
}

func TestEachDecisionRaisesWeightedMetrics(t *testing.T) {
	for _, a := range models.Approaches {
		t.Run(string(a), func(t *testing.T) {
			weights := approachWeights[a].Map()
			var log []models.DecisionOption
			prev := ComputeScores(nil).Map()
			for i := 0; i < 6; i++ {
				log = append(log, models.DecisionOption{Approach: a})
				cur := ComputeScores(log).Map()
				for k, w := range weights {
					switch {
					case w == 0:
						assert.Equal(t, prev[k], cur[k], "%s moved without weight", k)
					case prev[k] < 1:
						assert.Greater(t, cur[k], prev[k], "%s after %d decisions", k, i+1)
					default:
						assert.Equal(t, 1.0, cur[k], "%s stays capped", k)
					}
				}
				prev = cur
			}
		})
	}
}
