package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finpro/internal/errors"
	"finpro/internal/models"
	"finpro/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a new transaction for a user. When the transaction
// is an expense, the user's budget spentAmount is incremented as well; the
// budget lookup happens after the transaction is persisted, so a missing
// budget surfaces NotFound while the transaction itself remains stored. Every
// read of the budget recomputes spentAmount from scratch anyway, so the bump
// only keeps it approximately fresh between reads.
func (s *transactionService) CreateTransaction(
	userID uint,
	category string,
	amount float64,
	transactionType models.TransactionType,
	description string,
) (*models.Transaction, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if transactionType != models.TransactionTypeIncome && transactionType != models.TransactionTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be INCOME or EXPENSE")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Category:    category,
		Amount:      amount,
		Type:        transactionType,
		Description: description,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if transactionType == models.TransactionTypeExpense {
		var budget models.Budget
		if err := s.db.Where("user_id = ?", userID).First(&budget).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrBudgetNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Model(&budget).Update("spent_amount", budget.SpentAmount+amount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return transaction, nil
}

// listTransactions runs a paginated transaction query, surfacing NotFound for
// an empty result set.
func (s *transactionService) listTransactions(base *gorm.DB, page pagination.PageRequest, emptyMessage string) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if totalItems == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrTransactionNotFound, emptyMessage)
	}

	var transactions []models.Transaction
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionsByUserID returns all transactions for a user.
func (s *transactionService) GetTransactionsByUserID(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	return s.listTransactions(base, page, "No transactions found for this user")
}

// GetTransactionsByType returns a user's transactions of the given type.
func (s *transactionService) GetTransactionsByType(userID uint, transactionType models.TransactionType, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	base := s.db.Model(&models.Transaction{}).Where("user_id = ? AND type = ?", userID, transactionType)
	return s.listTransactions(base, page, "No "+string(transactionType)+" transactions found for this user")
}

// GetTransactionsByDateRange returns a user's transactions created within [start, end].
func (s *transactionService) GetTransactionsByDateRange(userID uint, start, end time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	base := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, start, end)
	return s.listTransactions(base, page, "No transactions found for this user in the given date range")
}

// UpdateTransaction replaces the mutable fields of a transaction. Ownership is
// immutable; the user cannot be reassigned.
func (s *transactionService) UpdateTransaction(
	transactionID uint,
	category string,
	amount float64,
	transactionType models.TransactionType,
	description string,
) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction.Category = category
	transaction.Amount = amount
	transaction.Type = transactionType
	transaction.Description = description

	if err := s.db.Save(&transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction deletes a transaction by ID.
func (s *transactionService) DeleteTransaction(transactionID uint) error {
	var count int64
	if err := s.db.Model(&models.Transaction{}).Where("id = ?", transactionID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrTransactionNotFound
	}

	if err := s.db.Delete(&models.Transaction{}, transactionID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CalculateIncomeSum returns the lifetime sum of a user's INCOME transactions.
func (s *transactionService) CalculateIncomeSum(userID uint) (float64, error) {
	var sum float64
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ?", userID, models.TransactionTypeIncome).
		Scan(&sum).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sum, nil
}
