package mun

import (
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/models"
)

// Scores is the MUN career compatibility card, every field in [0,1].
type Scores struct {
	InternationalRelations float64 `yaml:"international_relations"`
	Leadership             float64 `yaml:"leadership"`
	Law                    float64 `yaml:"law"`
	Communication          float64 `yaml:"communication"`
}

var baseline = Scores{
	InternationalRelations: 0.4,
	Leadership:             0.3,
	Law:                    0.35,
	Communication:          0.25,
}

var approachWeights = map[models.Approach]Scores{
	models.Diplomatic:   {InternationalRelations: 0.3, Communication: 0.25, Law: 0.2},
	models.Economic:     {Leadership: 0.25, InternationalRelations: 0.2, Communication: 0.15},
	models.Military:     {Leadership: 0.3, Law: 0.15, InternationalRelations: 0.1},
	models.Humanitarian: {Communication: 0.3, InternationalRelations: 0.25, Leadership: 0.2},
}

// ComputeScores folds the decision log into the final card.
func ComputeScores(decisions []models.DecisionOption) Scores {
	s := baseline
	for _, d := range decisions {
		w := approachWeights[d.Approach]
		s.InternationalRelations += w.InternationalRelations
		s.Leadership += w.Leadership
		s.Law += w.Law
		s.Communication += w.Communication
	}
	return Scores{
		InternationalRelations: game.Clamp01(s.InternationalRelations),
		Leadership:             game.Clamp01(s.Leadership),
		Law:                    game.Clamp01(s.Law),
		Communication:          game.Clamp01(s.Communication),
	}
}

// Map returns the card keyed by metric name, as stored on the profile.
func (s Scores) Map() models.Scores {
	return models.Scores{
		"international_relations": s.InternationalRelations,
		"leadership":              s.Leadership,
		"law":                     s.Law,
		"communication":           s.Communication,
	}
}
