package models

// Provider represents how a user authenticates.
type Provider string

const (
	ProviderSelf   Provider = "SELF"
	ProviderGoogle Provider = "GOOGLE"
	ProviderGithub Provider = "GITHUB"
)

// User represents the user model in the database
type User struct {
	Base
	FullName         string   `gorm:"uniqueIndex;not null" json:"full_name"`
	Email            string   `gorm:"not null" json:"email"`
	Password         string   `gorm:"not null" json:"-"`
	Provider         Provider `gorm:"default:'SELF'" json:"provider"`
	RefreshTokenHash string   `gorm:"size:64" json:"-"`

	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	Investments  []Investment  `gorm:"foreignKey:UserID" json:"investments,omitempty"`
	Budget       *Budget       `gorm:"foreignKey:UserID" json:"budget,omitempty"`
	Goal         *Goal         `gorm:"foreignKey:UserID" json:"goal,omitempty"`
}
