package models

// Budget represents a user's single spending ceiling. SpentAmount is derived
// from the user's expense transactions and refreshed on every read; the
// remaining budget is never stored.
type Budget struct {
	Base
	UserID      uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	TotalAmount float64 `gorm:"not null" json:"total_amount"`
	SpentAmount float64 `json:"spent_amount"`
	Period      string  `gorm:"not null" json:"period"`
}

// RemainingBudget returns the derived remainder of the budget.
func (b *Budget) RemainingBudget() float64 {
	return b.TotalAmount - b.SpentAmount
}
