// Package store persists learner progress. Signed-in learners are stored
// remotely with a local fallback; everyone else is stored locally under a
// fixed key namespace.
package store

import (
	"context"
	"fmt"

	"health_edu_backend/internal/model"
)

type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// Delta describes what a SaveUser call changed, so row-based stores can
// write upserts instead of rewriting the aggregate.
type Delta struct {
	// Points added to the running total.
	Points int
	// ModuleID and Result are set for a quiz attempt.
	ModuleID  string
	Result    *model.QuizResult
	NewBadges []model.Badge
}

// ProgressStore is the single persistence contract the services use.
// Callers never branch on which implementation they hold.
type ProgressStore interface {
	Mode() Mode
	LoadUser(ctx context.Context) (*model.User, error)
	SaveUser(ctx context.Context, user *model.User, delta Delta) error
	ResetUser(ctx context.Context) error
	LoadChallenges(ctx context.Context) ([]*model.UserChallenge, error)
	// SaveChallenge persists changed; all is the full list after the change.
	SaveChallenge(ctx context.Context, all []*model.UserChallenge, changed *model.UserChallenge, created bool) error
}

// FallbackError reports that the remote store failed and the operation was
// served by the local store instead. The operation itself succeeded.
type FallbackError struct {
	Op  string
	Err error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("remote %s failed, used local storage: %v", e.Op, e.Err)
}

func (e *FallbackError) Unwrap() error {
	return e.Err
}
