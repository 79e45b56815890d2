package service

import (
	"context"
	"fmt"
	"time"

	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/gamification"
	"health_edu_backend/internal/model"
	"health_edu_backend/internal/store"
	"health_edu_backend/internal/util"
	"health_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

type ProgressService struct {
	Provider *store.Provider
	Archiver Archiver
	Now      func() time.Time
}

func NewProgressService(provider *store.Provider, archiver Archiver) *ProgressService {
	if archiver == nil {
		archiver = NopArchiver{}
	}
	return &ProgressService{Provider: provider, Archiver: archiver, Now: time.Now}
}

type ProgressView struct {
	User               *model.User    `json:"user"`
	ProgressPercentage int            `json:"progressPercentage"`
	TotalModules       int            `json:"totalModules"`
	Mode               store.Mode     `json:"mode"`
	Notices            []model.Notice `json:"notices"`
}

func (s *ProgressService) GetProgress(ctx context.Context, st store.ProgressStore) (*ProgressView, error) {
	user, notice := loadUser(ctx, st)
	return &ProgressView{
		User:               user,
		ProgressPercentage: gamification.ProgressPercentage(user),
		TotalModules:       catalog.ModuleCount(),
		Mode:               st.Mode(),
		Notices:            appendNotice([]model.Notice{}, notice),
	}, nil
}

type ResetOutcome struct {
	User       *model.User    `json:"user"`
	ArchiveKey string         `json:"archiveKey,omitempty"`
	Notices    []model.Notice `json:"notices"`
}

// ResetProgress snapshots the current state to the archive, then clears
// points, badges and module progress. Challenge history is kept.
func (s *ProgressService) ResetProgress(ctx context.Context, st store.ProgressStore, scope string) (*ResetOutcome, error) {
	user, notice := loadUser(ctx, st)
	out := &ResetOutcome{Notices: appendNotice([]model.Notice{}, notice)}

	challenges, err := st.LoadChallenges(ctx)
	if loadFailed(err) {
		logger.Log.Warn("reset snapshot without challenge history", zap.String("scope", scope), zap.Error(err))
	}
	snapshot := &ResetSnapshot{
		Scope:      scope,
		Mode:       string(st.Mode()),
		TakenAt:    s.Now(),
		User:       user.Clone(),
		Challenges: challenges,
	}
	key, err := s.Archiver.Archive(ctx, snapshot)
	if err != nil {
		logger.Log.Warn("reset snapshot not archived", zap.String("scope", scope), zap.Error(err))
	}
	out.ArchiveKey = key

	err = st.ResetUser(ctx)
	out.Notices = appendNotice(out.Notices, storageNotice(err, "reset progress"))

	gamification.Reset(user)
	out.User = user
	out.Notices = append(out.Notices, model.Notice{
		Title:       "Progress reset",
		Description: "Your points, badges and module progress have been cleared.",
		Variant:     model.NoticeDefault,
	})
	return out, nil
}

type ImportOutcome struct {
	User               *model.User `json:"user"`
	ImportedChallenges int         `json:"importedChallenges"`
}

// ImportLocalProgress copies the device's demo progress into a signed-in
// account. It refuses accounts that already have progress.
func (s *ProgressService) ImportLocalProgress(ctx context.Context, session *model.Session, deviceID string) (*ImportOutcome, error) {
	if session == nil {
		return nil, util.ErrSessionRequired
	}
	remote := s.Provider.Remote(session)
	if remote == nil {
		return nil, util.ErrRemoteUnavailable
	}

	current, err := remote.LoadUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrRemoteUnavailable, err)
	}
	if !current.IsEmpty() {
		return nil, util.ErrRemoteNotEmpty
	}

	local := s.Provider.Local(deviceID)
	demo, err := local.LoadUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local progress: %w", err)
	}
	challenges, err := local.LoadChallenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local challenges: %w", err)
	}
	imported, err := remote.ImportUser(ctx, demo, challenges)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrRemoteUnavailable, err)
	}

	user, err := remote.LoadUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrRemoteUnavailable, err)
	}
	logger.Log.Info("imported local progress",
		zap.Uint("user_id", session.UserID),
		zap.Int("points", user.Points),
		zap.Int("challenges", imported))
	return &ImportOutcome{User: user, ImportedChallenges: imported}, nil
}
