package models

// Goal represents a user's single savings target. CurrentAmount is derived
// from income transactions plus the remaining budget and refreshed on reads.
type Goal struct {
	Base
	UserID        uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	Name          string  `gorm:"not null" json:"name"`
	TargetAmount  float64 `gorm:"not null" json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
}
