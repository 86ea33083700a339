package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finpro/internal/errors"
	"finpro/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a goal
type CreateGoalRequest struct {
	Name         string  `json:"name" binding:"required,max=255"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0"`
}

// UpdateGoalRequest represents the request payload for updating a goal
type UpdateGoalRequest struct {
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0"`
}

// CreateGoal handles the creation of the caller's savings goal
// @Summary     Create a goal
// @Description Create the authenticated user's single savings goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate goal"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(userID, req.Name, req.TargetAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GOAL", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "target_amount": req.TargetAmount})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// UpdateGoal handles updating a goal's target amount
// @Summary     Update a goal
// @Description Set a new target amount on a goal the caller owns. The current amount is refreshed.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Goal ID"
// @Param       request body UpdateGoalRequest true "New target amount"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Goal or budget not found"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	authorized, err := h.goalService.IsUserAuthorizedForGoal(goalID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !authorized {
		respondWithError(c, apperrors.ErrForbidden)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(goalID, req.TargetAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GOAL", "goal", goalID, c.ClientIP(),
		map[string]interface{}{"target_amount": req.TargetAmount})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// GetGoal handles the retrieval of the caller's goal
// @Summary     Get the goal
// @Description Get the authenticated user's goal with a freshly derived current amount
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Goal "Goal"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal or budget not found"
// @Router      /goals [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByUserID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// GetGoalProgress handles the retrieval of the caller's goal progress report
// @Summary     Get goal progress
// @Description Get the authenticated user's progress toward their savings goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.GoalProgress "Progress report"
// @Failure     400 {object} ErrorResponse "Zero target amount"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal or budget not found"
// @Router      /goals/progress [get]
func (h *GoalHandler) GetGoalProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.goalService.CalculateGoalProgressByUserID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
