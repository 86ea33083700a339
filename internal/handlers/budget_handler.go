package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finpro/internal/errors"
	"finpro/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CreateBudgetRequest represents the request payload for creating a budget
type CreateBudgetRequest struct {
	TotalAmount float64 `json:"total_amount" binding:"required,gt=0"`
	Period      string  `json:"period" binding:"required,max=50"`
}

// UpdateBudgetRequest represents the request payload for updating a budget
type UpdateBudgetRequest struct {
	TotalAmount float64 `json:"total_amount" binding:"required,gt=0"`
}

// CreateBudget handles the creation of the caller's budget
// @Summary     Create a budget
// @Description Create the authenticated user's single budget. The spent amount is back-filled from expense history.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate budget"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(userID, req.TotalAmount, req.Period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"total_amount": req.TotalAmount, "period": req.Period})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// UpdateBudget handles updating a budget's total amount
// @Summary     Update a budget
// @Description Set a new total amount on a budget the caller owns. The spent amount is recomputed.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Budget ID"
// @Param       request body UpdateBudgetRequest true "New total amount"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	authorized, err := h.budgetService.IsUserAuthorizedForBudget(budgetID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !authorized {
		respondWithError(c, apperrors.ErrForbidden)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(budgetID, req.TotalAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUDGET", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"total_amount": req.TotalAmount})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetBudget handles the retrieval of the caller's budget
// @Summary     Get the budget
// @Description Get the authenticated user's budget with a freshly recomputed spent amount
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Budget "Budget"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetBudgetByPeriod handles the retrieval of the caller's budget by period label
// @Summary     Get the budget by period
// @Description Get the authenticated user's budget matching the given period label
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       period path string true "Period label (e.g. MONTHLY)"
// @Success     200 {object} models.Budget "Budget"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/period/{period} [get]
func (h *BudgetHandler) GetBudgetByPeriod(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByUserAndPeriod(userID, c.Param("period"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetRemainingBudget handles the retrieval of the caller's remaining budget
// @Summary     Get remaining budget
// @Description Get the authenticated user's remaining budget without persisting the recomputation
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]float64 "Remaining budget"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/remaining [get]
func (h *BudgetHandler) GetRemainingBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	remaining, err := h.budgetService.GetCurrentRemainingBudget(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"remaining_budget": remaining})
}
