package model

import (
	"time"
)

const (
	DemoUserID    = "demo-user"
	DemoUserName  = "Demo Learner"
	DemoUserEmail = "demo@example.com"
)

// User is the progress aggregate a learner owns: points, earned badges and
// per-module quiz progress.
// swagger:model User
type User struct {
	ID               string                    `json:"id"`
	Name             string                    `json:"name"`
	Email            string                    `json:"email"`
	Points           int                       `json:"points"`
	Badges           []Badge                   `json:"badges"`
	CompletedModules []string                  `json:"completedModules"`
	ModuleProgress   map[string]ModuleProgress `json:"moduleProgress"`
}

// Badge is an earned badge; UnlockedAt is stamped when it is awarded.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

type ModuleProgress struct {
	Completed   bool       `json:"completed"`
	Score       int        `json:"score"`
	Attempts    int        `json:"attempts"`
	LastAttempt *time.Time `json:"lastAttempt,omitempty"`
}

// QuizResult is the outcome of one quiz attempt.
type QuizResult struct {
	Score          int  `json:"score"`
	TotalQuestions int  `json:"totalQuestions"`
	PointsEarned   int  `json:"pointsEarned"`
	Passed         bool `json:"passed"`
}

func DefaultUser() *User {
	return &User{
		ID:               DemoUserID,
		Name:             DemoUserName,
		Email:            DemoUserEmail,
		Badges:           []Badge{},
		CompletedModules: []string{},
		ModuleProgress:   map[string]ModuleProgress{},
	}
}

// Normalize replaces nil collections so the aggregate always serializes to
// empty arrays/objects.
func (u *User) Normalize() {
	if u.Badges == nil {
		u.Badges = []Badge{}
	}
	if u.CompletedModules == nil {
		u.CompletedModules = []string{}
	}
	if u.ModuleProgress == nil {
		u.ModuleProgress = map[string]ModuleProgress{}
	}
}

func (u *User) HasBadge(id string) bool {
	for _, b := range u.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (u *User) HasCompleted(moduleID string) bool {
	for _, id := range u.CompletedModules {
		if id == moduleID {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the user has no recorded progress at all.
func (u *User) IsEmpty() bool {
	return u.Points == 0 && len(u.Badges) == 0 && len(u.CompletedModules) == 0 && len(u.ModuleProgress) == 0
}

func (u *User) Clone() *User {
	c := *u
	c.Badges = append([]Badge{}, u.Badges...)
	c.CompletedModules = append([]string{}, u.CompletedModules...)
	c.ModuleProgress = make(map[string]ModuleProgress, len(u.ModuleProgress))
	for k, v := range u.ModuleProgress {
		if v.LastAttempt != nil {
			t := *v.LastAttempt
			v.LastAttempt = &t
		}
		c.ModuleProgress[k] = v
	}
	return &c
}
