package service

import (
	"context"
	"errors"
	"fmt"

	"health_edu_backend/internal/model"
	"health_edu_backend/internal/store"
	"health_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// storageNotice turns a store error into a soft notice. A nil error yields nil.
func storageNotice(err error, action string) *model.Notice {
	if err == nil {
		return nil
	}
	var fe *store.FallbackError
	if errors.As(err, &fe) {
		return &model.Notice{
			Title:       "Saved on this device",
			Description: "We couldn't reach your account, so your progress is stored locally for now.",
			Variant:     model.NoticeDefault,
		}
	}
	logger.Log.Error("progress not saved", zap.String("action", action), zap.Error(err))
	return &model.Notice{
		Title:       "Error",
		Description: fmt.Sprintf("Failed to %s", action),
		Variant:     model.NoticeDestructive,
	}
}

// loadFailed reports whether a load error left the caller without data.
func loadFailed(err error) bool {
	if err == nil {
		return false
	}
	var fe *store.FallbackError
	return !errors.As(err, &fe)
}

// loadUser never fails: an unreadable store yields a fresh aggregate and a
// destructive notice, and the caller carries on in memory.
func loadUser(ctx context.Context, st store.ProgressStore) (*model.User, *model.Notice) {
	user, err := st.LoadUser(ctx)
	if loadFailed(err) || user == nil {
		user = model.DefaultUser()
	}
	return user, storageNotice(err, "load progress")
}

func loadChallenges(ctx context.Context, st store.ProgressStore) ([]*model.UserChallenge, *model.Notice) {
	list, err := st.LoadChallenges(ctx)
	if loadFailed(err) {
		list = nil
	}
	if list == nil {
		list = []*model.UserChallenge{}
	}
	return list, storageNotice(err, "load challenges")
}

func appendNotice(list []model.Notice, n *model.Notice) []model.Notice {
	if n == nil {
		return list
	}
	return append(list, *n)
}
