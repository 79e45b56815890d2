package model

import "time"

type UserBadge struct {
	BaseModel
	UserID           uint      `gorm:"uniqueIndex:idx_user_badge;not null" json:"userId"`
	BadgeID          string    `gorm:"size:64;uniqueIndex:idx_user_badge;not null" json:"badgeId"`
	BadgeName        string    `gorm:"size:100;not null" json:"badgeName"`
	BadgeDescription string    `gorm:"size:255" json:"badgeDescription"`
	BadgeIcon        string    `gorm:"size:32" json:"badgeIcon"`
	UnlockedAt       time.Time `gorm:"not null" json:"unlockedAt"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

func (b UserBadge) ToBadge() Badge {
	return Badge{
		ID:          b.BadgeID,
		Name:        b.BadgeName,
		Description: b.BadgeDescription,
		Icon:        b.BadgeIcon,
		UnlockedAt:  b.UnlockedAt,
	}
}
