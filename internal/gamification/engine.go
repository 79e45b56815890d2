package gamification

import (
	"time"

	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/model"
)

// ApplyQuiz records one quiz attempt on the user and returns the badges it
// newly unlocked, in rule order. The returned badges are already appended to
// user.Badges.
//
// Completion is sticky: a failed retake of a passed module keeps it completed.
func ApplyQuiz(user *model.User, moduleID string, result model.QuizResult, now time.Time) []model.Badge {
	user.Normalize()

	priorCompleted := len(user.CompletedModules)
	alreadyCompleted := user.HasCompleted(moduleID)
	prev := user.ModuleProgress[moduleID]

	user.Points += result.PointsEarned

	at := now
	user.ModuleProgress[moduleID] = model.ModuleProgress{
		Completed:   prev.Completed || result.Passed,
		Score:       result.Score,
		Attempts:    prev.Attempts + 1,
		LastAttempt: &at,
	}

	completedAfter := priorCompleted
	if result.Passed && !alreadyCompleted {
		user.CompletedModules = append(user.CompletedModules, moduleID)
		completedAfter++
	}

	unlocked := unlockBadges(user, moduleID, result, priorCompleted, completedAfter, now)
	user.Badges = append(user.Badges, unlocked...)
	return unlocked
}

// unlockBadges evaluates the badge rules in their fixed order. Each rule is
// skipped when the user already owns the badge.
func unlockBadges(user *model.User, moduleID string, result model.QuizResult, priorCompleted, completedAfter int, now time.Time) []model.Badge {
	var unlocked []model.Badge
	award := func(id string) {
		if user.HasBadge(id) {
			return
		}
		for _, b := range unlocked {
			if b.ID == id {
				return
			}
		}
		def, ok := catalog.BadgeByID(id)
		if !ok {
			return
		}
		unlocked = append(unlocked, def.Earn(now))
	}

	if priorCompleted == 0 && result.Passed {
		award(catalog.BadgeFirstSteps)
	}

	if badgeID, ok := catalog.ModuleBadge(moduleID); ok && result.Passed {
		award(badgeID)
	}

	if result.TotalQuestions > 0 && result.Score == result.TotalQuestions {
		award(catalog.BadgePerfectScore)
	}

	if completedAfter >= catalog.ModuleCount() {
		award(catalog.BadgeDedicatedLearner)
	}

	return unlocked
}

// AwardPoints adds challenge or bonus points to the user.
func AwardPoints(user *model.User, points int) {
	if points <= 0 {
		return
	}
	user.Points += points
}

// Reset wipes points, badges and module progress. Identity fields are kept.
func Reset(user *model.User) {
	user.Points = 0
	user.Badges = []model.Badge{}
	user.CompletedModules = []string{}
	user.ModuleProgress = map[string]model.ModuleProgress{}
}
