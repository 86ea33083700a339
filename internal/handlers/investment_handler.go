package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "finpro/internal/errors"
	"finpro/internal/pagination"
	"finpro/internal/services"
)

// InvestmentHandler handles investment and stock quote requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, auditService: auditService}
}

// CreateInvestmentRequest represents the request payload for creating an investment
type CreateInvestmentRequest struct {
	Type          string  `json:"type" binding:"required,max=50"`
	Symbol        string  `json:"symbol" binding:"required,max=10"`
	Quantity      float64 `json:"quantity" binding:"required,gt=0"`
	PurchasePrice float64 `json:"purchase_price" binding:"required,gt=0"`
	Description   string  `json:"description" binding:"max=500"`
}

// UpdateInvestmentRequest represents the request payload for updating an investment
type UpdateInvestmentRequest struct {
	Type          *string  `json:"type" binding:"omitempty,max=50"`
	Quantity      *float64 `json:"quantity" binding:"omitempty,gt=0"`
	PurchasePrice *float64 `json:"purchase_price" binding:"omitempty,gt=0"`
	Description   *string  `json:"description" binding:"omitempty,max=500"`
}

// CreateInvestment handles the creation of a new investment
// @Summary     Create an investment
// @Description Record a new holding for the authenticated user. The amount is quantity times purchase price.
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.CreateInvestment(
		userID,
		req.Type,
		strings.ToUpper(req.Symbol),
		req.Quantity,
		req.PurchasePrice,
		req.Description,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INVESTMENT", "investment", investment.ID, c.ClientIP(),
		map[string]interface{}{"symbol": investment.Symbol, "quantity": req.Quantity, "purchase_price": req.PurchasePrice})

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// GetInvestments handles the retrieval of the caller's investments
// @Summary     Get investments
// @Description Get a paginated list of the authenticated user's investments, newest first
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	result, err := h.investmentService.GetUserInvestments(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestment handles the retrieval of a single investment
// @Summary     Get an investment
// @Description Get one of the authenticated user's investments by ID
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Success     200 {object} models.Investment "Investment"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestment(investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if investment.UserID != userID {
		respondWithError(c, apperrors.ErrForbidden)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// UpdateInvestment handles a partial update of an investment
// @Summary     Update an investment
// @Description Update fields of an investment the caller owns. The amount is recomputed.
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                     true "Investment ID"
// @Param       request body UpdateInvestmentRequest true "Fields to update"
// @Success     200 {object} models.Investment "Updated investment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.UpdateInvestment(userID, investmentID, services.UpdateInvestmentInput{
		Type:          req.Type,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		Description:   req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INVESTMENT", "investment", investmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// DeleteInvestment handles the deletion of an investment
// @Summary     Delete an investment
// @Description Delete an investment the caller owns
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestment(investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if investment.UserID != userID {
		respondWithError(c, apperrors.ErrForbidden)
		return
	}

	if err := h.investmentService.DeleteInvestment(investmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INVESTMENT", "investment", investmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted successfully"})
}

// GetStockQuote handles the retrieval of a stock quote
// @Summary     Get a stock quote
// @Description Get the latest quote for a symbol, served from cache when fresh
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Stock symbol (e.g. AAPL)"
// @Success     200 {object} quotes.StockQuote "Quote"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Symbol not found"
// @Failure     503 {object} ErrorResponse "Quote unavailable"
// @Router      /investments/stock/{symbol} [get]
func (h *InvestmentHandler) GetStockQuote(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	symbol := strings.ToUpper(c.Param("symbol"))
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required"))
		return
	}

	quote, err := h.investmentService.GetStockQuote(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// GetPortfolioPerformance handles the retrieval of the caller's portfolio performance
// @Summary     Get portfolio performance
// @Description Value the authenticated user's holdings at current market prices
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.PortfolioPerformance "Performance report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/portfolio/performance [get]
func (h *InvestmentHandler) GetPortfolioPerformance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	performance, err := h.investmentService.CalculatePortfolioPerformance(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"performance": performance})
}
