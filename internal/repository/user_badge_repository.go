package repository

import (
	"context"

	"health_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserBadgeRepository struct {
	DB *gorm.DB
}

func NewUserBadgeRepository(db *gorm.DB) *UserBadgeRepository {
	return &UserBadgeRepository{DB: db}
}

func (r *UserBadgeRepository) WithTx(tx *gorm.DB) *UserBadgeRepository {
	return &UserBadgeRepository{DB: tx}
}

// FindByUser returns badges in unlock order.
func (r *UserBadgeRepository) FindByUser(ctx context.Context, userID uint) ([]model.UserBadge, error) {
	var rows []model.UserBadge
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// Award inserts the badge; a badge the user already holds is left untouched.
func (r *UserBadgeRepository) Award(ctx context.Context, userID uint, badge model.Badge) error {
	row := &model.UserBadge{
		UserID:           userID,
		BadgeID:          badge.ID,
		BadgeName:        badge.Name,
		BadgeDescription: badge.Description,
		BadgeIcon:        badge.Icon,
		UnlockedAt:       badge.UnlockedAt,
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
}

func (r *UserBadgeRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&model.UserBadge{}).Error
}
