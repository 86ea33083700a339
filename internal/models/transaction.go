package models

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Transaction represents a financial transaction in the system
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Category    string          `gorm:"not null" json:"category"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Description string          `json:"description"`
}
