// Package designlab implements the Design Lab simulator. The player picks a
// design specialty, then for each brief chooses tools and a style, watches
// the creation run and gets a critique.
package designlab

import (
	"slices"

	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/models"
)

type Stage int

const (
	StageIntro Stage = iota
	StageSpecialtySelection
	StageChallengePresentation
	StageCreation
	StageResultPresentation
	StageFinalSummary
)

func (s Stage) String() string {
	switch s {
	case StageIntro:
		return "intro"
	case StageSpecialtySelection:
		return "specialty_selection"
	case StageChallengePresentation:
		return "challenge_presentation"
	case StageCreation:
		return "creation"
	case StageResultPresentation:
		return "result_presentation"
	case StageFinalSummary:
		return "final_summary"
	}
	return "unknown"
}

// CreationSteps is the number of ticks a creation takes.
const CreationSteps = 4

// Points awarded by player choices. The counter is display only.
const (
	pointsFirstChoice = 10
	pointsTool        = 5
	pointsPerStar     = 10
)

type State struct {
	Stage Stage
	Step  int

	Specialty      *models.DesignSpecialty
	ChallengeIndex int
	Challenge      models.DesignChallenge

	// Tools holds the selected tools in the order they were picked.
	Tools []models.DesignTool
	Style *models.DesignStyle

	CreationStep int
	Points       int

	Rating   int
	Feedback *models.DesignFeedback
	Skills   []string

	// ToolsUsed is every distinct tool name taken into a creation.
	ToolsUsed []string
	Scores    *Scores
}

// Progress is the creation progress in [0,1].
func (s State) Progress() float64 {
	return float64(s.CreationStep) / CreationSteps
}

// HasTool reports whether the named tool is selected.
func (s State) HasTool(name string) bool {
	return slices.ContainsFunc(s.Tools, func(t models.DesignTool) bool { return t.Name == name })
}

type Event interface{ isEvent() }

// Tick moves the creation one step forward. It is sent by RunCreation.
type Tick struct{}

type (
	Advance         struct{}
	SelectSpecialty struct{ Name string }
	ToggleTool      struct{ Name string }
	SelectStyle     struct{ Name string }
	Restart         struct{}
)

func (Advance) isEvent() {}
func (SelectSpecialty) isEvent() {}
func (ToggleTool) isEvent() {}
func (SelectStyle) isEvent() {}
func (Tick) isEvent() {}
func (Restart) isEvent() {}

type Machine struct {
	content catalog.DesignLab
	rng     game.Rand
}

// NewMachine creates a machine over the given content. rng drives the
// critique and skill draws.
func NewMachine(content catalog.DesignLab, rng game.Rand) *Machine {
	return &Machine{content: content, rng: rng}
}

func (m *Machine) Specialties() []models.DesignSpecialty { return m.content.Specialties }
func (m *Machine) Tools() []models.DesignTool { return m.content.Tools }
func (m *Machine) Styles() []models.DesignStyle { return m.content.Styles }
func (m *Machine) ChallengeCount() int { return len(m.content.Challenges) }

// CreationStep returns the label of the given tick, counted from 1.
func (m *Machine) CreationStep(step int) (catalog.CreationStep, bool) {
	if step < 1 || step > len(m.content.CreationSteps) {
		return catalog.CreationStep{}, false
	}
	return m.content.CreationSteps[step-1], true
}

func (m *Machine) Initial() State {
	return State{Stage: StageIntro}
}

func (m *Machine) HasMoreChallenges(s State) bool {
	return s.ChallengeIndex < len(m.content.Challenges)-1
}

// Apply returns the state after ev and whether anything changed. Events
// that are invalid in the current stage are ignored.
func (m *Machine) Apply(s State, ev Event) (State, bool) {
	switch ev := ev.(type) {
	case Advance:
		return m.advance(s)
	case SelectSpecialty:
		return m.selectSpecialty(s, ev.Name)
	case ToggleTool:
		return m.toggleTool(s, ev.Name)
	case SelectStyle:
		return m.selectStyle(s, ev.Name)
	case Tick:
		if s.Stage != StageCreation || s.CreationStep >= CreationSteps {
			return s, false
		}
		s.CreationStep++
		return s, true
	case Restart:
		return m.Initial(), true
	}
	return s, false
}

func (m *Machine) advance(s State) (State, bool) {
	switch s.Stage {
	case StageIntro:
		return s.enter(StageSpecialtySelection), true
	case StageSpecialtySelection:
		if s.Specialty == nil {
			return s, false
		}
		return m.loadChallenge(s.enter(StageChallengePresentation)), true
	case StageChallengePresentation:
		if len(s.Tools) == 0 || s.Style == nil {
			return s, false
		}
		next := s.enter(StageCreation)
		next.CreationStep = 0
		next.ToolsUsed = slices.Clone(s.ToolsUsed)
		for _, t := range s.Tools {
			if !slices.Contains(next.ToolsUsed, t.Name) {
				next.ToolsUsed = append(next.ToolsUsed, t.Name)
			}
		}
		return next, true
	case StageCreation:
		if s.CreationStep < CreationSteps {
			return s, false
		}
		return m.critique(s.enter(StageResultPresentation)), true
	case StageResultPresentation:
		if m.HasMoreChallenges(s) {
			next := s.enter(StageChallengePresentation)
			next.ChallengeIndex++
			next.Tools = nil
			next.Style = nil
			next.CreationStep = 0
			next.Rating = 0
			next.Feedback = nil
			next.Skills = nil
			return m.loadChallenge(next), true
		}
		next := s.enter(StageFinalSummary)
		scores := ComputeScores(ScoreInputs{
			Specialty: s.Specialty.Name,
			ToolCount: len(s.ToolsUsed),
			Points:    s.Points,
		})
		next.Scores = &scores
		return next, true
	}
	return s, false
}

func (m *Machine) selectSpecialty(s State, name string) (State, bool) {
	if s.Stage != StageSpecialtySelection {
		return s, false
	}
	idx := slices.IndexFunc(m.content.Specialties, func(sp models.DesignSpecialty) bool { return sp.Name == name })
	if idx < 0 || (s.Specialty != nil && s.Specialty.Name == name) {
		return s, false
	}
	if s.Specialty == nil {
		s.Points += pointsFirstChoice
	}
	sp := m.content.Specialties[idx]
	s.Specialty = &sp
	return s, true
}

func (m *Machine) toggleTool(s State, name string) (State, bool) {
	if s.Stage != StageChallengePresentation {
		return s, false
	}
	idx := slices.IndexFunc(m.content.Tools, func(t models.DesignTool) bool { return t.Name == name })
	if idx < 0 {
		return s, false
	}
	if s.HasTool(name) {
		s.Tools = slices.DeleteFunc(slices.Clone(s.Tools), func(t models.DesignTool) bool { return t.Name == name })
		s.Points -= pointsTool
		return s, true
	}
	s.Tools = append(slices.Clone(s.Tools), m.content.Tools[idx])
	s.Points += pointsTool
	return s, true
}

func (m *Machine) selectStyle(s State, name string) (State, bool) {
	if s.Stage != StageChallengePresentation {
		return s, false
	}
	idx := slices.IndexFunc(m.content.Styles, func(st models.DesignStyle) bool { return st.Name == name })
	if idx < 0 || (s.Style != nil && s.Style.Name == name) {
		return s, false
	}
	if s.Style == nil {
		s.Points += pointsFirstChoice
	}
	st := m.content.Styles[idx]
	s.Style = &st
	return s, true
}

// critique rates the finished creation and fills in the feedback.
func (m *Machine) critique(s State) State {
	s.Rating = Rate(len(s.Tools), s.Style != nil)
	s.Points += s.Rating * pointsPerStar
	fb := GenerateFeedback(m.content, m.rng)
	s.Feedback = &fb
	s.Skills = AwardSkills(s.Specialty, s.Tools, m.rng)
	return s
}

func (m *Machine) loadChallenge(s State) State {
	if s.ChallengeIndex >= len(m.content.Challenges) {
		return s
	}
	s.Challenge = m.content.Challenges[s.ChallengeIndex]
	return s
}

func (s State) enter(stage Stage) State {
	s.Stage = stage
	s.Step++
	return s
}
