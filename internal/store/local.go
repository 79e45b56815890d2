package store

import (
	"context"
	"encoding/json"
	"fmt"

	"health_edu_backend/internal/gamification"
	"health_edu_backend/internal/model"
	"health_edu_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	UserKeyPrefix       = "health-education-user"
	ChallengesKeyPrefix = "user-challenges"
)

// LocalStore keeps the whole aggregate as JSON documents in a KV backend.
type LocalStore struct {
	kv    KV
	scope string
}

func NewLocalStore(kv KV, scope string) *LocalStore {
	return &LocalStore{kv: kv, scope: scope}
}

func (s *LocalStore) userKey() string {
	return UserKeyPrefix + ":" + s.scope
}

func (s *LocalStore) challengesKey() string {
	return ChallengesKeyPrefix + ":" + s.scope
}

func (s *LocalStore) Mode() Mode {
	return ModeLocal
}

// LoadUser returns the default demo learner when nothing is stored yet.
func (s *LocalStore) LoadUser(ctx context.Context) (*model.User, error) {
	ctx, span := tracing.Tracer.Start(ctx, "LocalStore.LoadUser", trace.WithAttributes(attribute.String("scope", s.scope)))
	defer span.End()

	data, err := s.kv.Get(ctx, s.userKey())
	if err != nil {
		return nil, err
	}
	if data == nil {
		return model.DefaultUser(), nil
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode local user: %w", err)
	}
	user.Normalize()
	return &user, nil
}

func (s *LocalStore) SaveUser(ctx context.Context, user *model.User, _ Delta) error {
	ctx, span := tracing.Tracer.Start(ctx, "LocalStore.SaveUser")
	defer span.End()

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.userKey(), data, 0)
}

// ResetUser stores an empty aggregate that keeps the learner's identity.
func (s *LocalStore) ResetUser(ctx context.Context) error {
	user, err := s.LoadUser(ctx)
	if err != nil {
		return err
	}
	gamification.Reset(user)
	return s.SaveUser(ctx, user, Delta{})
}

func (s *LocalStore) LoadChallenges(ctx context.Context) ([]*model.UserChallenge, error) {
	ctx, span := tracing.Tracer.Start(ctx, "LocalStore.LoadChallenges")
	defer span.End()

	data, err := s.kv.Get(ctx, s.challengesKey())
	if err != nil {
		return nil, err
	}
	out := []*model.UserChallenge{}
	if data == nil {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode local challenges: %w", err)
	}
	return out, nil
}

// SaveChallenge rewrites the whole list; changed and created are not needed.
func (s *LocalStore) SaveChallenge(ctx context.Context, all []*model.UserChallenge, _ *model.UserChallenge, _ bool) error {
	ctx, span := tracing.Tracer.Start(ctx, "LocalStore.SaveChallenge")
	defer span.End()

	if all == nil {
		all = []*model.UserChallenge{}
	}
	data, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.challengesKey(), data, 0)
}
