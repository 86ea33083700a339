package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "finpro/internal/errors"
	"finpro/internal/logger"
	"finpro/internal/models"
	"finpro/internal/pagination"
	"finpro/internal/quotes"
)

// investmentService manages investment records and prices them through the
// quote provider.
type investmentService struct {
	db       *gorm.DB
	provider quotes.Provider
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB, provider quotes.Provider) InvestmentServicer {
	return &investmentService{db: db, provider: provider}
}

// CreateInvestment records a new holding. The stored amount is always
// quantity times purchase price.
func (s *investmentService) CreateInvestment(userID uint, investmentType, symbol string, quantity, purchasePrice float64, description string) (*models.Investment, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be greater than zero")
	}
	if purchasePrice <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase price must be greater than zero")
	}

	investment := &models.Investment{
		UserID:        userID,
		Type:          investmentType,
		Symbol:        symbol,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		Amount:        quantity * purchasePrice,
		Description:   description,
	}

	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// UpdateInvestment applies a partial update. Only the caller who owns the
// investment may modify it, and the amount is recomputed from the
// post-update quantity and purchase price.
func (s *investmentService) UpdateInvestment(callerID, investmentID uint, input UpdateInvestmentInput) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.First(&investment, investmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if investment.UserID != callerID {
		return nil, apperrors.ErrForbidden
	}

	if input.Type != nil {
		investment.Type = *input.Type
	}
	if input.Description != nil {
		investment.Description = *input.Description
	}
	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be greater than zero")
		}
		investment.Quantity = *input.Quantity
	}
	if input.PurchasePrice != nil {
		if *input.PurchasePrice <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase price must be greater than zero")
		}
		investment.PurchasePrice = *input.PurchasePrice
	}

	investment.Amount = investment.Quantity * investment.PurchasePrice

	if err := s.db.Save(&investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// GetInvestment retrieves a single investment by ID.
func (s *investmentService) GetInvestment(investmentID uint) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.First(&investment, investmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// GetUserInvestments returns the user's investments, newest first. An empty
// portfolio is a valid empty page, not an error.
func (s *investmentService) GetUserInvestments(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	var totalItems int64
	if err := s.db.Model(&models.Investment{}).Where("user_id = ?", userID).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&investments).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteInvestment removes an investment by ID.
func (s *investmentService) DeleteInvestment(investmentID uint) error {
	var investment models.Investment
	if err := s.db.First(&investment, investmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvestmentNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&investment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetStockQuote returns the current quote for a symbol via the provider.
func (s *investmentService) GetStockQuote(ctx context.Context, symbol string) (*quotes.StockQuote, error) {
	return s.provider.GetStockQuote(ctx, symbol)
}

// CalculatePortfolioPerformance values the user's holdings at current market
// prices. Each distinct symbol is quoted once; holdings whose quote fails are
// excluded from the current value but still count toward the cost basis.
func (s *investmentService) CalculatePortfolioPerformance(ctx context.Context, userID uint) (*PortfolioPerformance, error) {
	var investments []models.Investment
	if err := s.db.Where("user_id = ?", userID).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	prices := make(map[string]float64)
	for _, inv := range investments {
		if _, seen := prices[inv.Symbol]; seen {
			continue
		}
		quote, err := s.provider.GetStockQuote(ctx, inv.Symbol)
		if err != nil {
			logger.Get().Warnw("skipping symbol in portfolio valuation",
				"symbol", inv.Symbol,
				"error", err,
			)
			continue
		}
		prices[inv.Symbol] = quote.CurrentPrice
	}

	perf := &PortfolioPerformance{}
	for _, inv := range investments {
		perf.TotalInvested += inv.Amount
		if price, ok := prices[inv.Symbol]; ok {
			perf.CurrentValue += inv.Quantity * price
		}
	}

	perf.ProfitLoss = perf.CurrentValue - perf.TotalInvested
	if perf.TotalInvested > 0 {
		perf.ReturnPercentage = perf.ProfitLoss / perf.TotalInvested * 100
	}

	return perf, nil
}
