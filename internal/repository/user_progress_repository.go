package repository

import (
	"context"
	"time"

	"health_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserProgressRepository struct {
	DB *gorm.DB
}

func NewUserProgressRepository(db *gorm.DB) *UserProgressRepository {
	return &UserProgressRepository{DB: db}
}

func (r *UserProgressRepository) WithTx(tx *gorm.DB) *UserProgressRepository {
	return &UserProgressRepository{DB: tx}
}

// FindByUser returns rows in insertion order so completion order survives a reload.
func (r *UserProgressRepository) FindByUser(ctx context.Context, userID uint) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// Upsert 按 (user_id, module_id) 插入或覆盖
func (r *UserProgressRepository) Upsert(ctx context.Context, p *model.UserProgress) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed", "score", "total_questions", "attempts",
			"points_earned", "last_attempt", "updated_at",
		}),
	}).Create(p).Error
}

// MarkCompleted stamps the first completion time; later passes leave it alone.
func (r *UserProgressRepository) MarkCompleted(ctx context.Context, userID uint, moduleID string, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&model.UserProgress{}).
		Where("user_id = ? AND module_id = ? AND completed_at IS NULL", userID, moduleID).
		Update("completed_at", at).Error
}

func (r *UserProgressRepository) CountCompleted(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

// DeleteByUser hard-deletes so the unique index is free for the next attempt.
func (r *UserProgressRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&model.UserProgress{}).Error
}
