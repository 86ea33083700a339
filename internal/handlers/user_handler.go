package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finpro/internal/errors"
	"finpro/internal/models"
	"finpro/internal/services"
)

// UserHandler handles user management requests.
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

// UpdateUserRequest represents the request payload for updating a user
type UpdateUserRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	Password *string `json:"password" binding:"omitempty,min=8,max=128"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Provider *string `json:"provider" binding:"omitempty,auth_provider"`
}

// GetUser handles the retrieval of a user by ID
// @Summary     Get a user
// @Description Get a user by ID. Users may only read their own record.
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} UserResponse "User"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUser(callerID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}

// UpdateUser handles a partial update of a user
// @Summary     Update a user
// @Description Update the caller's own user record
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "User ID"
// @Param       request body UpdateUserRequest true "Fields to update"
// @Success     200 {object} UserResponse "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateUserInput{
		FullName: req.FullName,
		Password: req.Password,
		Email:    req.Email,
	}
	if req.Provider != nil {
		provider := models.Provider(*req.Provider)
		input.Provider = &provider
	}

	user, err := h.userService.UpdateUser(callerID, id, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(callerID, "UPDATE_USER", "user", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}

// DeleteUser handles the deletion of a user
// @Summary     Delete a user
// @Description Delete the caller's own user record and all owned data
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(callerID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(callerID, "DELETE_USER", "user", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
