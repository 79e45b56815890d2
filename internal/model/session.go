package model

import "time"

// Session identifies a signed-in learner. A nil *Session means demo mode.
type Session struct {
	UserID    uint      `json:"userId"`
	Email     string    `json:"email"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}
