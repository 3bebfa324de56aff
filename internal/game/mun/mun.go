// Package mun implements the Model UN crisis simulator: a linear wizard
// where the player picks a country, answers each crisis with one position
// and receives a vocational score card at the end.
package mun

import (
	"slices"

	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/models"
)

// Stage is a phase of the simulator. Stages are totally ordered.
type Stage int

const (
	StageIntro Stage = iota
	StageCountrySelection
	StageCrisisPresentation
	StageDecisionCapture
	StageResultPresentation
	StageFinalSummary
)

func (s Stage) String() string {
	switch s {
	case StageIntro:
		return "intro"
	case StageCountrySelection:
		return "country_selection"
	case StageCrisisPresentation:
		return "crisis_presentation"
	case StageDecisionCapture:
		return "decision_capture"
	case StageResultPresentation:
		return "result_presentation"
	case StageFinalSummary:
		return "final_summary"
	}
	return "unknown"
}

// State is a snapshot of a simulator session. Apply never mutates the
// State it is given.
type State struct {
	Stage Stage
	// Step counts successful transitions since the last restart.
	Step int

	Country     *models.Country
	CrisisIndex int
	Crisis      models.Crisis
	Selected    *models.DecisionOption

	// Decisions is the ordered decision log used for the final scores.
	Decisions  []models.DecisionOption
	LastResult *models.DecisionResult
	Scores     *Scores
}

// Event is a player action. The concrete types below are the only events.
type Event interface{ isEvent() }

type (
	Advance        struct{}
	SelectCountry  struct{ Name string }
	SelectOption   struct{ ID int }
	SubmitDecision struct{}
	Restart        struct{}
)

func (Advance) isEvent() {}
func (SelectCountry) isEvent() {}
func (SelectOption) isEvent() {}
func (SubmitDecision) isEvent() {}
func (Restart) isEvent() {}

// Machine is the transition function of the simulator over fixed content.
type Machine struct {
	content catalog.MUN
	rng     game.Rand
}

// NewMachine creates a machine over the given content. rng drives the
// outcome draw of each decision.
func NewMachine(content catalog.MUN, rng game.Rand) *Machine {
	return &Machine{content: content, rng: rng}
}

// Countries returns the selectable delegations.
func (m *Machine) Countries() []models.Country {
	return m.content.Countries
}

// CrisisCount returns the number of scripted crises.
func (m *Machine) CrisisCount() int {
	return len(m.content.Crises)
}

// Initial returns the state of a fresh session.
func (m *Machine) Initial() State {
	return State{Stage: StageIntro}
}

// HasMoreCrises reports whether another crisis follows the current one.
func (m *Machine) HasMoreCrises(s State) bool {
	return s.CrisisIndex < len(m.content.Crises)-1
}

// Apply returns the state after ev and whether anything changed.
// Events that are invalid in the current stage are ignored.
func (m *Machine) Apply(s State, ev Event) (State, bool) {
	switch ev := ev.(type) {
	case Advance:
		return m.advance(s)
	case SelectCountry:
		return m.selectCountry(s, ev.Name)
	case SelectOption:
		return m.selectOption(s, ev.ID)
	case SubmitDecision:
		return m.submit(s)
	case Restart:
		return m.Initial(), true
	}
	return s, false
}

func (m *Machine) advance(s State) (State, bool) {
	switch s.Stage {
	case StageIntro:
		return s.enter(StageCountrySelection), true
	case StageCountrySelection:
		if s.Country == nil {
			return s, false
		}
		next := s.enter(StageCrisisPresentation)
		return m.loadCrisis(next), true
	case StageCrisisPresentation:
		return s.enter(StageDecisionCapture), true
	case StageDecisionCapture:
		return m.submit(s)
	case StageResultPresentation:
		if m.HasMoreCrises(s) {
			next := s.enter(StageCrisisPresentation)
			next.CrisisIndex++
			next.Selected = nil
			next.LastResult = nil
			return m.loadCrisis(next), true
		}
		next := s.enter(StageFinalSummary)
		scores := ComputeScores(s.Decisions)
		next.Scores = &scores
		return next, true
	}
	return s, false
}

func (m *Machine) selectCountry(s State, name string) (State, bool) {
	if s.Stage != StageCountrySelection {
		return s, false
	}
	idx := slices.IndexFunc(m.content.Countries, func(c models.Country) bool { return c.Name == name })
	if idx < 0 {
		return s, false
	}
	if s.Country != nil && s.Country.Name == name {
		return s, false
	}
	country := m.content.Countries[idx]
	s.Country = &country
	return s, true
}

func (m *Machine) selectOption(s State, id int) (State, bool) {
	if s.Stage != StageDecisionCapture {
		return s, false
	}
	idx := slices.IndexFunc(s.Crisis.Options, func(o models.DecisionOption) bool { return o.ID == id })
	if idx < 0 {
		return s, false
	}
	if s.Selected != nil && s.Selected.ID == id {
		return s, false
	}
	opt := s.Crisis.Options[idx]
	s.Selected = &opt
	return s, true
}

func (m *Machine) submit(s State) (State, bool) {
	if s.Stage != StageDecisionCapture || s.Selected == nil {
		return s, false
	}
	opt := *s.Selected
	next := s.enter(StageResultPresentation)
	next.Decisions = append(slices.Clone(s.Decisions), opt)
	result := GenerateResult(opt, m.content.Outcomes, m.rng)
	next.LastResult = &result
	return next, true
}

// loadCrisis copies the crisis under the cursor into the state. The cursor
// is left untouched when it points past the last crisis.
func (m *Machine) loadCrisis(s State) State {
	if s.CrisisIndex >= len(m.content.Crises) {
		return s
	}
	s.Crisis = m.content.Crises[s.CrisisIndex]
	return s
}

func (s State) enter(stage Stage) State {
	s.Stage = stage
	s.Step++
	return s
}
