package designlab

import (
	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/models"
)

// fallbackSkill is awarded when a specialty lists no key areas.
const fallbackSkill = "Diseño"

// Rate scores a creation from 3 to 5 stars.
func Rate(toolCount int, hasStyle bool) int {
	rating := 3
	if toolCount >= 2 {
		rating++
	}
	if hasStyle {
		rating++
	}
	return min(5, rating)
}

// GenerateFeedback draws one comment, two strengths and one improvement.
func GenerateFeedback(content catalog.DesignLab, rng game.Rand) models.DesignFeedback {
	comment, _ := game.Pick(rng, content.Comments)
	return models.DesignFeedback{
		Comment:      comment,
		Strengths:    game.Sample(rng, content.Strengths, 2),
		Improvements: game.Sample(rng, content.Improvements, 1),
	}
}

// AwardSkills returns one key area of the specialty followed by the skill
// bonus of the first two tools picked.
func AwardSkills(specialty *models.DesignSpecialty, tools []models.DesignTool, rng game.Rand) []string {
	var skills []string
	if specialty != nil {
		area, ok := game.Pick(rng, specialty.KeyAreas)
		if !ok {
			area = fallbackSkill
		}
		skills = append(skills, area)
	}
	for _, t := range tools[:min(2, len(tools))] {
		skills = append(skills, t.SkillBonus)
	}
	return skills
}
