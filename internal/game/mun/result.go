package mun

import (
	"slices"

	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/models"
)

// DefaultOutcome is used when no authored outcome matches an approach.
var DefaultOutcome = models.Outcome{
	Positive:    true,
	Title:       "Decisión Registrada",
	Description: "Tu posición quedó registrada ante el Consejo de Seguridad.",
}

// GenerateResult draws one outcome authored for the option's approach and
// attaches the option's skills. The draw depends on rng, so two calls with
// an unseeded source may differ.
func GenerateResult(opt models.DecisionOption, outcomes []models.Outcome, rng game.Rand) models.DecisionResult {
	var relevant []models.Outcome
	for _, o := range outcomes {
		if o.Approach == opt.Approach {
			relevant = append(relevant, o)
		}
	}
	outcome, ok := game.Pick(rng, relevant)
	if !ok {
		outcome = DefaultOutcome
	}
	return models.DecisionResult{
		Title:        outcome.Title,
		Description:  outcome.Description,
		IsPositive:   outcome.Positive,
		SkillsGained: slices.Clone(opt.SkillsAwarded),
	}
}
