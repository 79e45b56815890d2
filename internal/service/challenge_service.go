package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/challenge"
	"health_edu_backend/internal/gamification"
	"health_edu_backend/internal/model"
	"health_edu_backend/internal/store"
	"health_edu_backend/internal/util"
	"health_edu_backend/pkg/logger"
	"health_edu_backend/pkg/monitoring"

	"go.uber.org/zap"
)

var ErrChallengeCompleted = errors.New("challenge already completed")

type ChallengeService struct {
	Runtime *challenge.Runtime
	Timers  *challenge.TimerRegistry
	Now     func() time.Time
}

func NewChallengeService(runtime *challenge.Runtime, timers *challenge.TimerRegistry) *ChallengeService {
	return &ChallengeService{Runtime: runtime, Timers: timers, Now: time.Now}
}

// ChallengeOverview groups a learner's instances the way the dashboard shows them.
type ChallengeOverview struct {
	Today       []*model.UserChallenge `json:"today"`
	Available   []catalog.Challenge    `json:"available"`
	Completed   []*model.UserChallenge `json:"completed"`
	TotalPoints int                    `json:"totalPoints"`
	Notices     []model.Notice         `json:"notices"`
}

// ChallengeOutcome is the result of one challenge action. Instance is nil
// when the action was a no-op.
type ChallengeOutcome struct {
	Instance      *model.UserChallenge `json:"instance"`
	PointsAwarded int                  `json:"pointsAwarded"`
	// Running is the live elapsed seconds for a timer that keeps going.
	Running *int           `json:"running,omitempty"`
	Notices []model.Notice `json:"notices"`
}

func (s *ChallengeService) Overview(ctx context.Context, st store.ProgressStore) (*ChallengeOverview, error) {
	list, notice := loadChallenges(ctx, st)
	now := s.Now()
	return &ChallengeOverview{
		Today:       s.Runtime.Today(list, now),
		Available:   s.Runtime.Available(list, now),
		Completed:   challenge.Completed(list),
		TotalPoints: challenge.TotalPoints(list),
		Notices:     appendNotice([]model.Notice{}, notice),
	}, nil
}

// Start begins a new instance of a template. Unknown templates are a no-op.
func (s *ChallengeService) Start(ctx context.Context, st store.ProgressStore, templateID string) (*ChallengeOutcome, error) {
	list, notice := loadChallenges(ctx, st)
	out := &ChallengeOutcome{Notices: appendNotice([]model.Notice{}, notice)}

	uc, n := s.Runtime.Start(list, templateID, s.Now())
	out.Notices = appendNotice(out.Notices, n)
	if uc == nil {
		if n != nil {
			monitoring.ChallengeEvents.WithLabelValues("duplicate").Inc()
		}
		return out, nil
	}

	list = append(list, uc)
	err := st.SaveChallenge(ctx, list, uc, true)
	out.Notices = appendNotice(out.Notices, storageNotice(err, "start challenge"))
	out.Instance = uc
	monitoring.ChallengeEvents.WithLabelValues("started").Inc()
	return out, nil
}

// UpdateProgress replaces an instance's payload. Unknown instances are a no-op.
func (s *ChallengeService) UpdateProgress(ctx context.Context, st store.ProgressStore, instanceID string, progress model.Progress) (*ChallengeOutcome, error) {
	return s.mutate(ctx, st, instanceID, func(list []*model.UserChallenge) (*challenge.Update, error) {
		return s.Runtime.UpdateProgress(list, instanceID, progress, s.Now())
	})
}

// UpdateProgressJSON decodes a client payload against the instance's own
// interaction type before applying it.
func (s *ChallengeService) UpdateProgressJSON(ctx context.Context, st store.ProgressStore, instanceID string, raw json.RawMessage) (*ChallengeOutcome, error) {
	return s.mutate(ctx, st, instanceID, func(list []*model.UserChallenge) (*challenge.Update, error) {
		uc := challenge.Find(list, instanceID)
		if uc == nil {
			return nil, nil
		}
		p, err := model.DecodeProgress(uc.InteractionType, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrInvalidInput, err)
		}
		return s.Runtime.UpdateProgress(list, instanceID, p, s.Now())
	})
}

// Increment adds one to a counter instance.
func (s *ChallengeService) Increment(ctx context.Context, st store.ProgressStore, instanceID string) (*ChallengeOutcome, error) {
	return s.mutate(ctx, st, instanceID, func(list []*model.UserChallenge) (*challenge.Update, error) {
		return s.Runtime.Increment(list, instanceID, s.Now())
	})
}

func (s *ChallengeService) mutate(ctx context.Context, st store.ProgressStore, instanceID string, apply func([]*model.UserChallenge) (*challenge.Update, error)) (*ChallengeOutcome, error) {
	list, notice := loadChallenges(ctx, st)
	out := &ChallengeOutcome{Notices: appendNotice([]model.Notice{}, notice)}

	wasCompleted := false
	if uc := challenge.Find(list, instanceID); uc != nil {
		wasCompleted = uc.IsCompleted
	}

	upd, err := apply(list)
	if err != nil {
		return nil, err
	}
	if upd == nil {
		return out, nil
	}
	out.Instance = upd.Instance
	if wasCompleted {
		return out, nil
	}

	err = st.SaveChallenge(ctx, list, upd.Instance, false)
	out.Notices = appendNotice(out.Notices, storageNotice(err, "update progress"))

	if upd.JustCompleted {
		out.Notices = appendNotice(out.Notices, upd.Notice)
		out.PointsAwarded = upd.Instance.PointsEarned
		out.Notices = appendNotice(out.Notices, s.awardPoints(ctx, st, upd.Instance.PointsEarned))
		s.Timers.Cancel(instanceID)
		monitoring.ChallengeEvents.WithLabelValues("completed").Inc()
	}
	return out, nil
}

// awardPoints credits completion points to the learner's running total.
func (s *ChallengeService) awardPoints(ctx context.Context, st store.ProgressStore, points int) *model.Notice {
	if points <= 0 {
		return nil
	}
	user, loadNotice := loadUser(ctx, st)
	gamification.AwardPoints(user, points)
	if n := storageNotice(st.SaveUser(ctx, user, store.Delta{Points: points}), "award points"); n != nil {
		return n
	}
	return loadNotice
}

// StartTimer starts the per-instance timer from the persisted seconds. When
// the timer reaches its target the elapsed time is written back and the
// instance completes.
func (s *ChallengeService) StartTimer(ctx context.Context, st store.ProgressStore, instanceID string) (*ChallengeOutcome, error) {
	list, notice := loadChallenges(ctx, st)
	out := &ChallengeOutcome{Notices: appendNotice([]model.Notice{}, notice)}

	uc := challenge.Find(list, instanceID)
	if uc == nil {
		return out, nil
	}
	tp, ok := uc.Progress.(model.TimerProgress)
	if !ok {
		return nil, challenge.ErrNotTimer
	}
	if uc.IsCompleted {
		return nil, ErrChallengeCompleted
	}

	onFinish := func(seconds int) {
		// The request context is gone by now.
		bg := context.Background()
		if _, err := s.UpdateProgress(bg, st, instanceID, model.TimerProgress{Seconds: seconds, Target: tp.Target}); err != nil {
			logger.Log.Error("timer flush failed",
				zap.String("instance_id", instanceID),
				zap.Int("seconds", seconds),
				zap.Error(err))
		}
	}
	if err := s.Timers.Start(instanceID, tp.Seconds, tp.Target, onFinish); err != nil {
		return nil, err
	}
	out.Instance = uc
	running := tp.Seconds
	out.Running = &running
	return out, nil
}

// StopTimer halts the timer and persists the elapsed seconds.
func (s *ChallengeService) StopTimer(ctx context.Context, st store.ProgressStore, instanceID string) (*ChallengeOutcome, error) {
	list, _ := loadChallenges(ctx, st)
	uc := challenge.Find(list, instanceID)
	if uc == nil {
		return &ChallengeOutcome{Notices: []model.Notice{}}, nil
	}
	seconds, err := s.Timers.Stop(instanceID)
	if err != nil {
		return nil, err
	}
	return s.UpdateProgress(ctx, st, instanceID, model.TimerProgress{Seconds: seconds})
}

// CancelTimer halts the timer without saving. The instance must belong to
// the caller's store.
func (s *ChallengeService) CancelTimer(ctx context.Context, st store.ProgressStore, instanceID string) (bool, error) {
	list, _ := loadChallenges(ctx, st)
	if challenge.Find(list, instanceID) == nil {
		return false, nil
	}
	return s.Timers.Cancel(instanceID), nil
}

// TimerStatus reports the live elapsed seconds of a running timer.
func (s *ChallengeService) TimerStatus(instanceID string) (int, bool) {
	return s.Timers.Elapsed(instanceID)
}
