package catalog

import (
	"time"

	"health_edu_backend/internal/model"
)

const (
	BadgeFirstSteps       = "first-steps"
	BadgeNutritionExpert  = "nutrition-expert"
	BadgeFitness          = "fitness-enthusiast"
	BadgeSugarAware       = "sugar-aware"
	BadgeHabitBuilder     = "habit-builder"
	BadgeObesityAware     = "obesity-aware"
	BadgePerfectScore     = "perfect-score"
	BadgeDedicatedLearner = "dedicated-learner"
)

type BadgeDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Earn returns an earned copy of the definition stamped with at.
func (d BadgeDefinition) Earn(at time.Time) model.Badge {
	return model.Badge{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Icon:        d.Icon,
		UnlockedAt:  at,
	}
}

var badges = []BadgeDefinition{
	{ID: BadgeFirstSteps, Name: "First Steps", Description: "Complete your first module", Icon: "🌟"},
	{ID: BadgeNutritionExpert, Name: "Nutrition Expert", Description: "Master the nutrition module", Icon: "🍎"},
	{ID: BadgeFitness, Name: "Fitness Enthusiast", Description: "Complete the physical activity module", Icon: "💪"},
	{ID: BadgeSugarAware, Name: "Sugar Aware", Description: "Learn about hidden sugars", Icon: "🚫"},
	{ID: BadgeHabitBuilder, Name: "Habit Builder", Description: "Master healthy habit formation", Icon: "🎯"},
	{ID: BadgeObesityAware, Name: "Health Guardian", Description: "Understand obesity prevention", Icon: "❤️"},
	{ID: BadgePerfectScore, Name: "Perfect Score", Description: "Get 100% on any quiz", Icon: "🏆"},
	{ID: BadgeDedicatedLearner, Name: "Dedicated Learner", Description: "Complete all modules", Icon: "🎓"},
}

// moduleBadges maps each module to the badge its first pass unlocks.
var moduleBadges = map[string]string{
	ModuleNutrition:        BadgeNutritionExpert,
	ModulePhysicalActivity: BadgeFitness,
	ModuleSugarSalt:        BadgeSugarAware,
	ModuleHealthyHabits:    BadgeHabitBuilder,
	ModuleObesity:          BadgeObesityAware,
}

func ModuleBadge(moduleID string) (string, bool) {
	id, ok := moduleBadges[moduleID]
	return id, ok
}
