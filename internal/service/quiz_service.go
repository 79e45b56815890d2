package service

import (
	"context"
	"fmt"
	"time"

	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/gamification"
	"health_edu_backend/internal/model"
	"health_edu_backend/internal/store"
	"health_edu_backend/pkg/monitoring"
)

type QuizService struct {
	Now func() time.Time
}

func NewQuizService() *QuizService {
	return &QuizService{Now: time.Now}
}

// QuizOutcome is what a learner sees after an attempt.
type QuizOutcome struct {
	ModuleID  string           `json:"moduleId"`
	Result    model.QuizResult `json:"result"`
	NewBadges []model.Badge    `json:"newBadges"`
	User      *model.User      `json:"user"`
	Notices   []model.Notice   `json:"notices"`
}

// SubmitQuiz grades raw answers (question id -> option index) and records the attempt.
func (s *QuizService) SubmitQuiz(ctx context.Context, st store.ProgressStore, moduleID string, answers map[string]int) (*QuizOutcome, error) {
	module, ok := catalog.ModuleByID(moduleID)
	if !ok {
		return nil, nil
	}
	return s.CompleteQuiz(ctx, st, moduleID, gamification.ScoreQuiz(module, answers))
}

// CompleteQuiz records an attempt and returns the badges it unlocked. An
// unknown module is a no-op and returns nil. Save failures are reported as
// notices; the outcome itself is unchanged.
func (s *QuizService) CompleteQuiz(ctx context.Context, st store.ProgressStore, moduleID string, result model.QuizResult) (*QuizOutcome, error) {
	module, ok := catalog.ModuleByID(moduleID)
	if !ok {
		return nil, nil
	}
	if result.TotalQuestions == 0 {
		result.TotalQuestions = len(module.Questions)
	}
	result = gamification.Normalize(result)

	outcome := &QuizOutcome{ModuleID: moduleID, Result: result, NewBadges: []model.Badge{}, Notices: []model.Notice{}}

	user, notice := loadUser(ctx, st)
	outcome.Notices = appendNotice(outcome.Notices, notice)

	badges := gamification.ApplyQuiz(user, moduleID, result, s.Now())
	outcome.User = user
	if len(badges) > 0 {
		outcome.NewBadges = badges
	}

	err := st.SaveUser(ctx, user, store.Delta{
		Points:    result.PointsEarned,
		ModuleID:  moduleID,
		Result:    &result,
		NewBadges: badges,
	})
	outcome.Notices = appendNotice(outcome.Notices, storageNotice(err, "save progress"))
	outcome.Notices = append(outcome.Notices, quizNotice(result, len(badges)))

	label := "failed"
	if result.Passed {
		label = "passed"
	}
	monitoring.QuizSubmissions.WithLabelValues(moduleID, label).Inc()
	for _, b := range badges {
		monitoring.BadgesUnlocked.WithLabelValues(b.ID).Inc()
	}
	return outcome, nil
}

func quizNotice(result model.QuizResult, newBadges int) model.Notice {
	if !result.Passed {
		return model.Notice{
			Title:       "Quiz Complete",
			Description: "You can retake the quiz to improve your score!",
			Variant:     model.NoticeDestructive,
		}
	}
	desc := fmt.Sprintf("You earned %d points!", result.PointsEarned)
	if newBadges > 0 {
		desc = fmt.Sprintf("You earned %d points and %d new badge(s)!", result.PointsEarned, newBadges)
	}
	return model.Notice{
		Title:       "Module Completed! 🎉",
		Description: desc,
		Variant:     model.NoticeDefault,
	}
}
