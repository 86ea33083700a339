package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finpro/internal/errors"
	"finpro/internal/models"
)

// goalService derives a savings goal's current amount from the user's income
// history and remaining budget.
type goalService struct {
	db                 *gorm.DB
	budgetService      BudgetServicer
	transactionService TransactionServicer
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, budgetService BudgetServicer, transactionService TransactionServicer) GoalServicer {
	return &goalService{
		db:                 db,
		budgetService:      budgetService,
		transactionService: transactionService,
	}
}

// CreateGoal creates the single savings goal for a user. The current amount
// starts at zero and is derived on subsequent reads.
func (s *goalService) CreateGoal(userID uint, name string, targetAmount float64) (*models.Goal, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.Goal{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateGoal
	}

	goal := &models.Goal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: 0,
	}

	if err := s.db.Create(goal).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateGoal
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// UpdateGoal sets a new target amount and refreshes the derived current
// amount in the same write.
func (s *goalService) UpdateGoal(goalID uint, targetAmount float64) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	current, err := s.calculateCurrentAmount(goal.UserID)
	if err != nil {
		return nil, err
	}

	goal.TargetAmount = targetAmount
	goal.CurrentAmount = current

	if err := s.db.Save(&goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// GetGoalByUserID returns the user's goal with a freshly derived current
// amount, persisting the refreshed value as a side effect of the read.
func (s *goalService) GetGoalByUserID(userID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("user_id = ?", userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	current, err := s.calculateCurrentAmount(userID)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount = current
	if err := s.db.Model(&goal).Update("current_amount", current).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// CalculateGoalProgressByUserID computes the progress report without
// persisting anything. A zero target cannot yield a percentage, so it is
// rejected rather than dividing by zero.
func (s *goalService) CalculateGoalProgressByUserID(userID uint) (*GoalProgress, error) {
	var goal models.Goal
	if err := s.db.Where("user_id = ?", userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if goal.TargetAmount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal target amount must be greater than zero")
	}

	current, err := s.calculateCurrentAmount(userID)
	if err != nil {
		return nil, err
	}

	difference := current - goal.TargetAmount
	status := "BEHIND"
	if difference >= 0 {
		status = "AHEAD"
	}

	return &GoalProgress{
		TargetAmount:       goal.TargetAmount,
		CurrentAmount:      current,
		Difference:         difference,
		Status:             status,
		ProgressPercentage: current / goal.TargetAmount * 100,
	}, nil
}

// IsUserAuthorizedForGoal reports whether the goal belongs to the user.
func (s *goalService) IsUserAuthorizedForGoal(goalID, userID uint) (bool, error) {
	var goal models.Goal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.ErrGoalNotFound
		}
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal.UserID == userID, nil
}

// calculateCurrentAmount derives the goal amount as total income plus the
// remaining budget. A user without a budget has no defined goal amount.
func (s *goalService) calculateCurrentAmount(userID uint) (float64, error) {
	incomeSum, err := s.transactionService.CalculateIncomeSum(userID)
	if err != nil {
		return 0, err
	}

	remaining, err := s.budgetService.GetCurrentRemainingBudget(userID)
	if err != nil {
		return 0, err
	}

	return incomeSum + remaining, nil
}
