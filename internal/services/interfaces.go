package services

import (
	"context"
	"time"

	"finpro/internal/models"
	"finpro/internal/pagination"
	"finpro/internal/quotes"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(fullName, password, email string, provider models.Provider) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUser(callerID, id uint) (*models.User, error)
	UpdateUser(callerID, id uint, input UpdateUserInput) (*models.User, error)
	DeleteUser(callerID, id uint) error
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// UpdateUserInput holds optional fields for a partial user update.
type UpdateUserInput struct {
	FullName *string
	Password *string
	Email    *string
	Provider *models.Provider
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID uint, category string, amount float64, transactionType models.TransactionType, description string) (*models.Transaction, error)
	GetTransactionsByUserID(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionsByType(userID uint, transactionType models.TransactionType, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionsByDateRange(userID uint, start, end time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	UpdateTransaction(transactionID uint, category string, amount float64, transactionType models.TransactionType, description string) (*models.Transaction, error)
	DeleteTransaction(transactionID uint) error
	CalculateIncomeSum(userID uint) (float64, error)
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID uint, totalAmount float64, period string) (*models.Budget, error)
	UpdateBudget(budgetID uint, totalAmount float64) (*models.Budget, error)
	GetBudgetByUser(userID uint) (*models.Budget, error)
	GetBudgetByUserAndPeriod(userID uint, period string) (*models.Budget, error)
	GetCurrentRemainingBudget(userID uint) (float64, error)
	IsUserAuthorizedForBudget(budgetID, userID uint) (bool, error)
}

// GoalProgress is a snapshot of a goal's standing relative to its target.
type GoalProgress struct {
	TargetAmount       float64 `json:"target_amount"`
	CurrentAmount      float64 `json:"current_amount"`
	Difference         float64 `json:"difference"`
	Status             string  `json:"status"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// GoalServicer defines the contract for savings-goal business logic.
type GoalServicer interface {
	CreateGoal(userID uint, name string, targetAmount float64) (*models.Goal, error)
	UpdateGoal(goalID uint, targetAmount float64) (*models.Goal, error)
	GetGoalByUserID(userID uint) (*models.Goal, error)
	CalculateGoalProgressByUserID(userID uint) (*GoalProgress, error)
	IsUserAuthorizedForGoal(goalID, userID uint) (bool, error)
}

// PortfolioPerformance aggregates invested capital against current market value.
type PortfolioPerformance struct {
	TotalInvested    float64 `json:"total_invested"`
	CurrentValue     float64 `json:"current_value"`
	ProfitLoss       float64 `json:"profit_loss"`
	ReturnPercentage float64 `json:"return_percentage"`
}

// UpdateInvestmentInput holds optional fields for a partial investment update.
type UpdateInvestmentInput struct {
	Type          *string
	Description   *string
	Quantity      *float64
	PurchasePrice *float64
}

// InvestmentServicer defines the contract for investment-related business logic.
type InvestmentServicer interface {
	CreateInvestment(userID uint, investmentType, symbol string, quantity, purchasePrice float64, description string) (*models.Investment, error)
	UpdateInvestment(callerID, investmentID uint, input UpdateInvestmentInput) (*models.Investment, error)
	GetInvestment(id uint) (*models.Investment, error)
	GetUserInvestments(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	DeleteInvestment(id uint) error
	GetStockQuote(ctx context.Context, symbol string) (*quotes.StockQuote, error)
	CalculatePortfolioPerformance(ctx context.Context, userID uint) (*PortfolioPerformance, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
