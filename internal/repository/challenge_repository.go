package repository

import (
	"context"

	"health_edu_backend/internal/model"

	"gorm.io/gorm"
)

// ChallengeRepository stores challenge instances. Rows are never deleted.
type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) WithTx(tx *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: tx}
}

func (r *ChallengeRepository) FindByUser(ctx context.Context, userID uint) ([]model.ChallengeRecord, error) {
	var rows []model.ChallengeRecord
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ChallengeRepository) Create(ctx context.Context, record *model.ChallengeRecord) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

// UpdateProgress writes the mutable columns of an instance owned by the user.
func (r *ChallengeRepository) UpdateProgress(ctx context.Context, record *model.ChallengeRecord) error {
	return r.DB.WithContext(ctx).Model(&model.ChallengeRecord{}).
		Where("id = ? AND user_id = ?", record.ID, record.UserID).
		Updates(map[string]interface{}{
			"progress":      record.Progress,
			"is_completed":  record.IsCompleted,
			"points_earned": record.PointsEarned,
			"completed_at":  record.CompletedAt,
		}).Error
}
