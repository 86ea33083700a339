package models

// Investment represents a held position contributing to portfolio performance.
// Amount is always Quantity times PurchasePrice and is recomputed whenever either
// field changes.
type Investment struct {
	Base
	UserID        uint    `gorm:"not null;index" json:"user_id"`
	Type          string  `gorm:"not null" json:"type"`
	Symbol        string  `gorm:"not null" json:"symbol"`
	Quantity      float64 `gorm:"not null" json:"quantity"`
	PurchasePrice float64 `gorm:"not null" json:"purchase_price"`
	Amount        float64 `gorm:"not null" json:"amount"`
	Description   string  `json:"description"`
}
