package model

import (
	"time"
)

// UserProgress 每个用户每个模块一行
type UserProgress struct {
	BaseModel
	UserID         uint       `gorm:"uniqueIndex:idx_user_module;not null" json:"userId"`
	ModuleID       string     `gorm:"size:64;uniqueIndex:idx_user_module;not null" json:"moduleId"`
	Completed      bool       `gorm:"default:false" json:"completed"`
	Score          int        `gorm:"default:0" json:"score"`
	TotalQuestions int        `gorm:"default:0" json:"totalQuestions"`
	Attempts       int        `gorm:"default:0" json:"attempts"`
	PointsEarned   int        `gorm:"default:0" json:"pointsEarned"`
	LastAttempt    *time.Time `json:"lastAttempt"`
	// CompletedAt is set on the first passing attempt and never moved.
	CompletedAt *time.Time `json:"completedAt"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
