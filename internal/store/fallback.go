package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"health_edu_backend/internal/model"
	"health_edu_backend/pkg/logger"
	"health_edu_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// FallbackStore serves a signed-in learner from the remote store and answers
// any remote failure from the local store. Successful fallbacks return a
// *FallbackError so the caller can tell the learner.
type FallbackStore struct {
	remote  ProgressStore
	local   ProgressStore
	session *model.Session
}

func NewFallbackStore(remote, local ProgressStore) *FallbackStore {
	return &FallbackStore{remote: remote, local: local}
}

// WithSession makes local fallbacks report the signed-in identity instead of
// the demo learner.
func (s *FallbackStore) WithSession(session *model.Session) *FallbackStore {
	s.session = session
	return s
}

func (s *FallbackStore) stampIdentity(user *model.User) {
	if user == nil || s.session == nil {
		return
	}
	user.ID = strconv.FormatUint(uint64(s.session.UserID), 10)
	if s.session.Email != "" {
		user.Email = s.session.Email
		if user.Name == "" || user.Name == model.DemoUserName {
			user.Name = strings.SplitN(s.session.Email, "@", 2)[0]
		}
	}
}

func (s *FallbackStore) Mode() Mode {
	return s.remote.Mode()
}

func (s *FallbackStore) fallback(op string, remoteErr, localErr error) error {
	monitoring.StoreFallbacks.WithLabelValues(op).Inc()
	if localErr != nil {
		logger.Log.Error("progress store unavailable",
			zap.String("op", op),
			zap.Error(remoteErr),
			zap.NamedError("local_error", localErr))
		return fmt.Errorf("%s: %w (local fallback: %v)", op, remoteErr, localErr)
	}
	logger.Log.Warn("remote progress store failed, using local storage",
		zap.String("op", op),
		zap.Error(remoteErr))
	return &FallbackError{Op: op, Err: remoteErr}
}

func (s *FallbackStore) LoadUser(ctx context.Context) (*model.User, error) {
	user, err := s.remote.LoadUser(ctx)
	if err == nil {
		return user, nil
	}
	user, localErr := s.local.LoadUser(ctx)
	if localErr == nil {
		s.stampIdentity(user)
	}
	return user, s.fallback("load_user", err, localErr)
}

func (s *FallbackStore) SaveUser(ctx context.Context, user *model.User, delta Delta) error {
	err := s.remote.SaveUser(ctx, user, delta)
	if err == nil {
		return nil
	}
	return s.fallback("save_user", err, s.local.SaveUser(ctx, user, delta))
}

func (s *FallbackStore) ResetUser(ctx context.Context) error {
	err := s.remote.ResetUser(ctx)
	if err == nil {
		return nil
	}
	return s.fallback("reset_user", err, s.local.ResetUser(ctx))
}

func (s *FallbackStore) LoadChallenges(ctx context.Context) ([]*model.UserChallenge, error) {
	list, err := s.remote.LoadChallenges(ctx)
	if err == nil {
		return list, nil
	}
	list, localErr := s.local.LoadChallenges(ctx)
	return list, s.fallback("load_challenges", err, localErr)
}

func (s *FallbackStore) SaveChallenge(ctx context.Context, all []*model.UserChallenge, changed *model.UserChallenge, created bool) error {
	err := s.remote.SaveChallenge(ctx, all, changed, created)
	if err == nil {
		return nil
	}
	return s.fallback("save_challenge", err, s.local.SaveChallenge(ctx, all, changed, created))
}
