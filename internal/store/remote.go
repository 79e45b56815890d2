package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/gamification"
	"health_edu_backend/internal/model"
	"health_edu_backend/internal/repository"
	"health_edu_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// Repositories bundles the tables RemoteStore writes to.
type Repositories struct {
	DB         *gorm.DB
	Profile    *repository.ProfileRepository
	Progress   *repository.UserProgressRepository
	Badge      *repository.UserBadgeRepository
	Challenges *repository.ChallengeRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:         db,
		Profile:    repository.NewProfileRepository(db),
		Progress:   repository.NewUserProgressRepository(db),
		Badge:      repository.NewUserBadgeRepository(db),
		Challenges: repository.NewChallengeRepository(db),
	}
}

// RemoteStore maps the aggregate onto per-user rows.
type RemoteStore struct {
	repos  *Repositories
	userID uint
}

func NewRemoteStore(repos *Repositories, userID uint) *RemoteStore {
	return &RemoteStore{repos: repos, userID: userID}
}

func (s *RemoteStore) Mode() Mode {
	return ModeRemote
}

func (s *RemoteStore) span(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracing.Tracer.Start(ctx, "RemoteStore."+name,
		trace.WithAttributes(attribute.Int64("user_id", int64(s.userID))))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *RemoteStore) LoadUser(ctx context.Context) (user *model.User, err error) {
	ctx, span := s.span(ctx, "LoadUser")
	defer func() { endSpan(span, err) }()

	profile, err := s.repos.Profile.FindByID(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	rows, err := s.repos.Progress.FindByUser(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("load module progress: %w", err)
	}
	badges, err := s.repos.Badge.FindByUser(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("load badges: %w", err)
	}

	user = &model.User{
		ID:     strconv.FormatUint(uint64(profile.ID), 10),
		Name:   profile.DisplayName,
		Email:  profile.Email,
		Points: profile.Points,
	}
	user.Normalize()
	completed := make([]model.UserProgress, 0, len(rows))
	for _, row := range rows {
		user.ModuleProgress[row.ModuleID] = model.ModuleProgress{
			Completed:   row.Completed,
			Score:       row.Score,
			Attempts:    row.Attempts,
			LastAttempt: row.LastAttempt,
		}
		if row.Completed {
			completed = append(completed, row)
		}
	}
	// 按首次完成时间排序，与本地模式的完成顺序一致
	sort.SliceStable(completed, func(i, j int) bool {
		return completedBefore(completed[i], completed[j])
	})
	for _, row := range completed {
		user.CompletedModules = append(user.CompletedModules, row.ModuleID)
	}
	for _, b := range badges {
		user.Badges = append(user.Badges, b.ToBadge())
	}
	return user, nil
}

// SaveUser writes only what delta names: a points increment, the attempted
// module's row and any new badges, in one transaction.
func (s *RemoteStore) SaveUser(ctx context.Context, user *model.User, delta Delta) (err error) {
	ctx, span := s.span(ctx, "SaveUser")
	defer func() { endSpan(span, err) }()

	return s.repos.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if delta.Points != 0 {
			if err := s.repos.Profile.WithTx(tx).AddPoints(ctx, s.userID, delta.Points); err != nil {
				return fmt.Errorf("add points: %w", err)
			}
		}

		if delta.ModuleID != "" {
			mp := user.ModuleProgress[delta.ModuleID]
			row := &model.UserProgress{
				UserID:      s.userID,
				ModuleID:    delta.ModuleID,
				Completed:   mp.Completed,
				Score:       mp.Score,
				Attempts:    mp.Attempts,
				LastAttempt: mp.LastAttempt,
			}
			if delta.Result != nil {
				row.TotalQuestions = delta.Result.TotalQuestions
				row.PointsEarned = delta.Result.PointsEarned
			}
			progress := s.repos.Progress.WithTx(tx)
			if err := progress.Upsert(ctx, row); err != nil {
				return fmt.Errorf("upsert module progress: %w", err)
			}
			if row.Completed {
				at := time.Now()
				if mp.LastAttempt != nil {
					at = *mp.LastAttempt
				}
				if err := progress.MarkCompleted(ctx, s.userID, delta.ModuleID, at); err != nil {
					return fmt.Errorf("mark module completed: %w", err)
				}
			}
		}

		badges := s.repos.Badge.WithTx(tx)
		for _, b := range delta.NewBadges {
			if err := badges.Award(ctx, s.userID, b); err != nil {
				return fmt.Errorf("award badge %s: %w", b.ID, err)
			}
		}
		return nil
	})
}

// ResetUser deletes module progress and badges and zeroes points. Challenge
// history is kept.
func (s *RemoteStore) ResetUser(ctx context.Context) (err error) {
	ctx, span := s.span(ctx, "ResetUser")
	defer func() { endSpan(span, err) }()

	return s.repos.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repos.Progress.WithTx(tx).DeleteByUser(ctx, s.userID); err != nil {
			return err
		}
		if err := s.repos.Badge.WithTx(tx).DeleteByUser(ctx, s.userID); err != nil {
			return err
		}
		return s.repos.Profile.WithTx(tx).SetPoints(ctx, s.userID, 0)
	})
}

func (s *RemoteStore) LoadChallenges(ctx context.Context) (out []*model.UserChallenge, err error) {
	ctx, span := s.span(ctx, "LoadChallenges")
	defer func() { endSpan(span, err) }()

	rows, err := s.repos.Challenges.FindByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	out = make([]*model.UserChallenge, 0, len(rows))
	for i := range rows {
		uc, err := rows[i].ToUserChallenge()
		if err != nil {
			return nil, fmt.Errorf("decode challenge %s: %w", rows[i].ID, err)
		}
		out = append(out, uc)
	}
	return out, nil
}

// SaveChallenge inserts a new instance or updates an existing one.
func (s *RemoteStore) SaveChallenge(ctx context.Context, _ []*model.UserChallenge, changed *model.UserChallenge, created bool) (err error) {
	ctx, span := s.span(ctx, "SaveChallenge")
	defer func() { endSpan(span, err) }()

	record, err := model.NewChallengeRecord(s.userID, challengeCategory(changed.ChallengeID), changed)
	if err != nil {
		return err
	}
	if created {
		return s.repos.Challenges.Create(ctx, record)
	}
	return s.repos.Challenges.UpdateProgress(ctx, record)
}

// ImportUser copies a whole aggregate into the account in one transaction:
// every module row, every badge, the point total and the challenge instances
// the account does not have yet. Used once, on an empty account. It returns
// the number of challenge instances inserted.
func (s *RemoteStore) ImportUser(ctx context.Context, user *model.User, challenges []*model.UserChallenge) (imported int, err error) {
	ctx, span := s.span(ctx, "ImportUser")
	defer func() { endSpan(span, err) }()

	importedAt := time.Now()
	err = s.repos.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		imported = 0
		progress := s.repos.Progress.WithTx(tx)
		for _, moduleID := range importOrder(user) {
			mp := user.ModuleProgress[moduleID]
			row := &model.UserProgress{
				UserID:       s.userID,
				ModuleID:     moduleID,
				Completed:    mp.Completed || user.HasCompleted(moduleID),
				Score:        mp.Score,
				Attempts:     mp.Attempts,
				PointsEarned: mp.Score * gamification.PointsPerCorrectAnswer,
				LastAttempt:  mp.LastAttempt,
			}
			if m, ok := catalog.ModuleByID(moduleID); ok {
				row.TotalQuestions = len(m.Questions)
			}
			// 同一时间戳下按插入顺序（即完成顺序）排序
			if row.Completed {
				row.CompletedAt = &importedAt
			}
			if err := progress.Upsert(ctx, row); err != nil {
				return fmt.Errorf("import module %s: %w", moduleID, err)
			}
		}

		badges := s.repos.Badge.WithTx(tx)
		for _, b := range user.Badges {
			if err := badges.Award(ctx, s.userID, b); err != nil {
				return fmt.Errorf("import badge %s: %w", b.ID, err)
			}
		}

		if user.Points > 0 {
			if err := s.repos.Profile.WithTx(tx).AddPoints(ctx, s.userID, user.Points); err != nil {
				return fmt.Errorf("import points: %w", err)
			}
		}

		repo := s.repos.Challenges.WithTx(tx)
		existing, err := repo.FindByUser(ctx, s.userID)
		if err != nil {
			return err
		}
		seen := make(map[string]bool, len(existing))
		for _, r := range existing {
			seen[r.ID] = true
		}
		for _, uc := range challenges {
			if seen[uc.ID] {
				continue
			}
			record, err := model.NewChallengeRecord(s.userID, challengeCategory(uc.ChallengeID), uc)
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, record); err != nil {
				return fmt.Errorf("import challenge %s: %w", uc.ID, err)
			}
			seen[uc.ID] = true
			imported++
		}
		return nil
	})
	return imported, err
}

func challengeCategory(templateID string) string {
	if tpl, ok := catalog.ChallengeByID(templateID); ok {
		return string(tpl.Category)
	}
	return ""
}

func completedBefore(a, b model.UserProgress) bool {
	switch {
	case a.CompletedAt == nil:
		return false
	case b.CompletedAt == nil:
		return true
	}
	return a.CompletedAt.Before(*b.CompletedAt)
}

// importOrder lists completed modules first, in completion order, so the
// reloaded aggregate keeps the same completedModules sequence.
func importOrder(user *model.User) []string {
	seen := make(map[string]bool, len(user.ModuleProgress))
	order := make([]string, 0, len(user.ModuleProgress))
	for _, id := range user.CompletedModules {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	rest := make([]string, 0, len(user.ModuleProgress))
	for id := range user.ModuleProgress {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}
