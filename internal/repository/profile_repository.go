package repository

import (
	"context"
	"errors"

	"health_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// WithTx 返回绑定到事务的仓库副本
func (r *ProfileRepository) WithTx(tx *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: tx}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.DB.WithContext(ctx).Create(profile).Error
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.WithContext(ctx).First(&profile, id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByEmail returns (nil, nil) when no account uses the email.
func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddPoints 原子累加积分，避免读-改-写覆盖
func (r *ProfileRepository) AddPoints(ctx context.Context, id uint, points int) error {
	return r.DB.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", id).
		Update("points", gorm.Expr("points + ?", points)).Error
}

func (r *ProfileRepository) SetPoints(ctx context.Context, id uint, points int) error {
	return r.DB.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", id).
		Update("points", points).Error
}

// UpdateDetails changes the display name and demographics only.
func (r *ProfileRepository) UpdateDetails(ctx context.Context, profile *model.Profile) error {
	return r.DB.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"display_name": profile.DisplayName,
			"age":          profile.Age,
			"gender":       profile.Gender,
			"country":      profile.Country,
		}).Error
}
