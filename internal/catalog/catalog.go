// Package catalog holds the static learning content: modules with their
// quizzes, challenge templates and badge definitions. Everything here is
// built once at package init and never mutated.
package catalog

import "health_edu_backend/internal/model"

type Module struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	Questions   []Question `json:"questions"`
	Icon        string     `json:"icon"`
	Color       string     `json:"color"`
}

type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type Category string

const (
	CategoryNutrition    Category = "nutrition"
	CategoryHydration    Category = "hydration"
	CategoryMovement     Category = "movement"
	CategoryMentalHealth Category = "mental-health"
	CategorySleep        Category = "sleep"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	defaultTargetCount  = 1
	defaultTimerSeconds = 600
)

type Challenge struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Task            string                `json:"task"`
	Feedback        string                `json:"feedback"`
	Category        Category              `json:"category"`
	Difficulty      Difficulty            `json:"difficulty"`
	EstimatedTime   string                `json:"estimatedTime"`
	Points          int                   `json:"points"`
	Icon            string                `json:"icon"`
	Color           string                `json:"color"`
	InteractionType model.InteractionType `json:"interactionType"`
	TargetCount     int                   `json:"targetCount,omitempty"`
	MaxValue        int                   `json:"maxValue,omitempty"`
	Items           []string              `json:"items,omitempty"`
}

// Target returns the counter target, defaulting to 1.
func (c Challenge) Target() int {
	if c.TargetCount > 0 {
		return c.TargetCount
	}
	return defaultTargetCount
}

// TimerSeconds returns the timer goal, defaulting to ten minutes.
func (c Challenge) TimerSeconds() int {
	if c.MaxValue > 0 {
		return c.MaxValue
	}
	return defaultTimerSeconds
}

// InitialProgress is the payload a freshly started instance carries.
func (c Challenge) InitialProgress() model.Progress {
	switch c.InteractionType {
	case model.InteractionCounter:
		return model.CounterProgress{Count: 0, Target: c.Target()}
	case model.InteractionTimer:
		return model.TimerProgress{Seconds: 0, Target: c.TimerSeconds()}
	case model.InteractionChecklist:
		return model.ChecklistProgress{Items: append([]string{}, c.Items...), Completed: []string{}}
	default:
		return model.SimpleProgress{Completed: false}
	}
}

var (
	moduleByID    map[string]Module
	challengeByID map[string]Challenge
	badgeByID     map[string]BadgeDefinition
)

func init() {
	moduleByID = make(map[string]Module, len(modules))
	for _, m := range modules {
		moduleByID[m.ID] = m
	}
	challengeByID = make(map[string]Challenge, len(challenges))
	for _, c := range challenges {
		challengeByID[c.ID] = c
	}
	badgeByID = make(map[string]BadgeDefinition, len(badges))
	for _, b := range badges {
		badgeByID[b.ID] = b
	}
}

// Modules returns a copy of the module list in display order.
func Modules() []Module {
	return append([]Module{}, modules...)
}

func ModuleByID(id string) (Module, bool) {
	m, ok := moduleByID[id]
	return m, ok
}

// ModuleCount is the number of modules a learner must pass for Dedicated Learner.
func ModuleCount() int {
	return len(modules)
}

func Challenges() []Challenge {
	return append([]Challenge{}, challenges...)
}

func ChallengeByID(id string) (Challenge, bool) {
	c, ok := challengeByID[id]
	return c, ok
}

func Badges() []BadgeDefinition {
	return append([]BadgeDefinition{}, badges...)
}

func BadgeByID(id string) (BadgeDefinition, bool) {
	b, ok := badgeByID[id]
	return b, ok
}
