package designlab

import (
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/models"
)

// Scores is the Design Lab creative profile, every field in [0,1].
type Scores struct {
	VisualDesign    float64 `yaml:"visual_design"`
	Creativity      float64 `yaml:"creativity"`
	AestheticSense  float64 `yaml:"aesthetic_sense"`
	TechnicalSkills float64 `yaml:"technical_skills"`
}

// ScoreInputs are the session facts the final scores depend on.
type ScoreInputs struct {
	Specialty string
	ToolCount int
	Points    int
}

var baseline = Scores{
	VisualDesign:    0.4,
	Creativity:      0.3,
	AestheticSense:  0.35,
	TechnicalSkills: 0.25,
}

var specialtyBonus = map[string]Scores{
	"Diseño Gráfico":     {VisualDesign: 0.3, AestheticSense: 0.25},
	"UX/UI Design":       {TechnicalSkills: 0.35, Creativity: 0.2},
	"Diseño de Producto": {Creativity: 0.3, TechnicalSkills: 0.2},
	"Diseño Editorial":   {VisualDesign: 0.25, TechnicalSkills: 0.25},
}

const (
	toolBonusStep       = 0.05
	maxToolBonus        = 0.3
	pointsPerCreativity = 500.0
	maxCreativityBonus  = 0.2
)

func ComputeScores(in ScoreInputs) Scores {
	s := baseline
	b := specialtyBonus[in.Specialty]
	s.VisualDesign += b.VisualDesign
	s.Creativity += b.Creativity
	s.AestheticSense += b.AestheticSense
	s.TechnicalSkills += b.TechnicalSkills

	s.TechnicalSkills += min(maxToolBonus, float64(in.ToolCount)*toolBonusStep)
	s.Creativity += min(maxCreativityBonus, max(0, float64(in.Points)/pointsPerCreativity))

	return Scores{
		VisualDesign:    game.Clamp01(s.VisualDesign),
		Creativity:      game.Clamp01(s.Creativity),
		AestheticSense:  game.Clamp01(s.AestheticSense),
		TechnicalSkills: game.Clamp01(s.TechnicalSkills),
	}
}

// Map returns the profile keyed by metric name, as stored on the profile.
func (s Scores) Map() models.Scores {
	return models.Scores{
		"visual_design":    s.VisualDesign,
		"creativity":       s.Creativity,
		"aesthetic_sense":  s.AestheticSense,
		"technical_skills": s.TechnicalSkills,
	}
}
