package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// UserChallenge is one started instance of a challenge template.
type UserChallenge struct {
	ID              string          `json:"id"`
	ChallengeID     string          `json:"challengeId"`
	InteractionType InteractionType `json:"interactionType"`
	StartedAt       time.Time       `json:"startedAt"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty"`
	Progress        Progress        `json:"progress"`
	IsCompleted     bool            `json:"isCompleted"`
	PointsEarned    int             `json:"pointsEarned"`
}

type userChallengeJSON struct {
	ID              string          `json:"id"`
	ChallengeID     string          `json:"challengeId"`
	InteractionType InteractionType `json:"interactionType"`
	StartedAt       time.Time       `json:"startedAt"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty"`
	Progress        json.RawMessage `json:"progress"`
	IsCompleted     bool            `json:"isCompleted"`
	PointsEarned    int             `json:"pointsEarned"`
}

func (uc UserChallenge) MarshalJSON() ([]byte, error) {
	raw, err := EncodeProgress(uc.Progress)
	if err != nil {
		return nil, err
	}
	return json.Marshal(userChallengeJSON{
		ID:              uc.ID,
		ChallengeID:     uc.ChallengeID,
		InteractionType: uc.InteractionType,
		StartedAt:       uc.StartedAt,
		CompletedAt:     uc.CompletedAt,
		Progress:        raw,
		IsCompleted:     uc.IsCompleted,
		PointsEarned:    uc.PointsEarned,
	})
}

func (uc *UserChallenge) UnmarshalJSON(data []byte) error {
	var aux userChallengeJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p, err := DecodeProgress(aux.InteractionType, aux.Progress)
	if err != nil {
		return err
	}
	*uc = UserChallenge{
		ID:              aux.ID,
		ChallengeID:     aux.ChallengeID,
		InteractionType: aux.InteractionType,
		StartedAt:       aux.StartedAt,
		CompletedAt:     aux.CompletedAt,
		Progress:        p,
		IsCompleted:     aux.IsCompleted,
		PointsEarned:    aux.PointsEarned,
	}
	return nil
}

// ChallengeRecord is the remote row of a UserChallenge.
type ChallengeRecord struct {
	ID              string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"userId"`
	ChallengeID     string          `gorm:"size:64;index;not null" json:"challengeId"`
	ChallengeType   string          `gorm:"size:32;not null" json:"challengeType"`
	InteractionType InteractionType `gorm:"size:16;not null" json:"interactionType"`
	StartedAt       time.Time       `gorm:"not null" json:"startedAt"`
	CompletedAt     *time.Time      `json:"completedAt"`
	Progress        datatypes.JSON  `json:"progress"`
	IsCompleted     bool            `gorm:"default:false" json:"isCompleted"`
	PointsEarned    int             `gorm:"default:0" json:"pointsEarned"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (ChallengeRecord) TableName() string {
	return "user_challenges"
}

func NewChallengeRecord(userID uint, category string, uc *UserChallenge) (*ChallengeRecord, error) {
	raw, err := EncodeProgress(uc.Progress)
	if err != nil {
		return nil, err
	}
	return &ChallengeRecord{
		ID:              uc.ID,
		UserID:          userID,
		ChallengeID:     uc.ChallengeID,
		ChallengeType:   category,
		InteractionType: uc.InteractionType,
		StartedAt:       uc.StartedAt,
		CompletedAt:     uc.CompletedAt,
		Progress:        datatypes.JSON(raw),
		IsCompleted:     uc.IsCompleted,
		PointsEarned:    uc.PointsEarned,
	}, nil
}

func (r *ChallengeRecord) ToUserChallenge() (*UserChallenge, error) {
	p, err := DecodeProgress(r.InteractionType, r.Progress)
	if err != nil {
		return nil, err
	}
	return &UserChallenge{
		ID:              r.ID,
		ChallengeID:     r.ChallengeID,
		InteractionType: r.InteractionType,
		StartedAt:       r.StartedAt,
		CompletedAt:     r.CompletedAt,
		Progress:        p,
		IsCompleted:     r.IsCompleted,
		PointsEarned:    r.PointsEarned,
	}, nil
}
