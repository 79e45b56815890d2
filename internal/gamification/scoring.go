// Package gamification holds the pure scoring and badge rules. Nothing in
// here touches persistence; callers load a user, apply a rule and save.
package gamification

import (
	"math"

	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/model"
)

const (
	PointsPerCorrectAnswer = 10
	// passPercent is the share of correct answers needed to pass, in percent.
	passPercent = 60
)

// PassingScore is ceil(total * 0.6), computed in integers.
func PassingScore(total int) int {
	if total <= 0 {
		return 0
	}
	return (total*passPercent + 99) / 100
}

// NewQuizResult derives pass/fail and points from a raw score.
func NewQuizResult(score, total int) model.QuizResult {
	if score < 0 {
		score = 0
	}
	if total < 0 {
		total = 0
	}
	if score > total {
		score = total
	}
	return model.QuizResult{
		Score:          score,
		TotalQuestions: total,
		PointsEarned:   score * PointsPerCorrectAnswer,
		Passed:         score >= PassingScore(total),
	}
}

// Normalize recomputes the derived fields so a client-supplied result can't
// claim points or a pass it didn't earn.
func Normalize(result model.QuizResult) model.QuizResult {
	return NewQuizResult(result.Score, result.TotalQuestions)
}

// ScoreQuiz grades answers (question id -> selected option index) against a module.
func ScoreQuiz(module catalog.Module, answers map[string]int) model.QuizResult {
	score := 0
	for _, q := range module.Questions {
		if selected, ok := answers[q.ID]; ok && selected == q.CorrectAnswer {
			score++
		}
	}
	return NewQuizResult(score, len(module.Questions))
}

// ProgressPercentage is the rounded share of catalog modules the user has completed.
func ProgressPercentage(user *model.User) int {
	total := catalog.ModuleCount()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(len(user.CompletedModules)) / float64(total) * 100))
}
