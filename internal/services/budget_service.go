package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finpro/internal/errors"
	"finpro/internal/models"
)

// budgetService owns the spent/remaining derivation for a user's single budget.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates the single budget for a user. The spent amount is
// back-filled from the user's existing expense history rather than starting
// at zero.
func (s *budgetService) CreateBudget(userID uint, totalAmount float64, period string) (*models.Budget, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.Budget{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	spent, err := s.calculateSpentAmount(userID)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:      userID,
		TotalAmount: totalAmount,
		SpentAmount: spent,
		Period:      period,
	}

	if err := s.db.Create(budget).Error; err != nil {
		// The unique index on user_id closes the race between the
		// existence check above and this insert.
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateBudget
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// UpdateBudget sets a new total amount, discarding the stored spent amount in
// favor of a fresh recomputation from the expense history.
func (s *budgetService) UpdateBudget(budgetID uint, totalAmount float64) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	spent, err := s.calculateSpentAmount(budget.UserID)
	if err != nil {
		return nil, err
	}

	budget.TotalAmount = totalAmount
	budget.SpentAmount = spent

	if err := s.db.Save(&budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// GetBudgetByUser returns the user's budget with a freshly recomputed spent
// amount. The refreshed value is persisted as a side effect of the read.
func (s *budgetService) GetBudgetByUser(userID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("user_id = ?", userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.refreshSpentAmount(&budget)
}

// GetBudgetByUserAndPeriod returns the user's budget matching the given
// period label, refreshing the spent amount like GetBudgetByUser.
func (s *budgetService) GetBudgetByUserAndPeriod(userID uint, period string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("user_id = ? AND period = ?", userID, period).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.refreshSpentAmount(&budget)
}

// GetCurrentRemainingBudget returns totalAmount minus the freshly computed
// spent amount without persisting anything. Read-only variant used by the
// goal progress computation.
func (s *budgetService) GetCurrentRemainingBudget(userID uint) (float64, error) {
	var budget models.Budget
	if err := s.db.Where("user_id = ?", userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrBudgetNotFound
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	spent, err := s.calculateSpentAmount(userID)
	if err != nil {
		return 0, err
	}
	return budget.TotalAmount - spent, nil
}

// IsUserAuthorizedForBudget reports whether the budget belongs to the user.
func (s *budgetService) IsUserAuthorizedForBudget(budgetID, userID uint) (bool, error) {
	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.ErrBudgetNotFound
		}
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget.UserID == userID, nil
}

// refreshSpentAmount recomputes the spent amount and persists it, overwriting
// whatever incremental bumps accumulated since the last read.
func (s *budgetService) refreshSpentAmount(budget *models.Budget) (*models.Budget, error) {
	spent, err := s.calculateSpentAmount(budget.UserID)
	if err != nil {
		return nil, err
	}

	budget.SpentAmount = spent
	if err := s.db.Model(budget).Update("spent_amount", spent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// calculateSpentAmount sums the user's lifetime EXPENSE transactions. The
// budget's period label does not scope this sum.
func (s *budgetService) calculateSpentAmount(userID uint) (float64, error) {
	var sum float64
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ?", userID, models.TransactionTypeExpense).
		Scan(&sum).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sum, nil
}
