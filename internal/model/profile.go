package model

// Profile is the remote account row; its ID is the session user id.
// swagger:model Profile
type Profile struct {
	BaseModel
	DisplayName  string `gorm:"size:100" json:"displayName"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	Age          *int   `json:"age,omitempty"`
	Gender       string `gorm:"size:32" json:"gender,omitempty"`
	Country      string `gorm:"size:64" json:"country,omitempty"`
	Points       int    `gorm:"default:0" json:"points"`
}

func (Profile) TableName() string {
	return "profiles"
}
