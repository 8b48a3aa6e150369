package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "centavo/internal/errors"
	"centavo/internal/services"
)

// SavingsGoalHandler handles savings goal requests.
type SavingsGoalHandler struct {
	goalService  services.SavingsGoalServicer
	auditService services.AuditServicer
}

// NewSavingsGoalHandler creates a new SavingsGoalHandler.
func NewSavingsGoalHandler(goalService services.SavingsGoalServicer, auditService services.AuditServicer) *SavingsGoalHandler {
	return &SavingsGoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a savings goal.
type CreateGoalRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=100"`
	Target   decimal.Decimal `json:"target" binding:"required"`
	Deadline *time.Time      `json:"deadline"`
}

// UpdateGoalRequest represents the request payload for updating a savings goal.
type UpdateGoalRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Target   *decimal.Decimal `json:"target"`
	Deadline *time.Time       `json:"deadline"`
}

// ContributeRequest represents the request payload for a goal contribution.
type ContributeRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// GetGoals handles listing the user's savings goals.
// @Summary     Get savings goals
// @Description Get all of the user's savings goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.SavingsGoal "Savings goals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *SavingsGoalHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.GetUserGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// CreateGoal handles the creation of a savings goal.
// @Summary     Create a savings goal
// @Description Create a savings goal with a target amount and optional deadline
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.SavingsGoal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *SavingsGoalHandler) CreateGoal(c *gin.Context) {
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

	goal, err := h.goalService.CreateGoal(userID, req.Name, req.Target, req.Deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GOAL", "savings_goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "target": req.Target.String()})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// UpdateGoal handles updating a savings goal.
// @Summary     Update savings goal
// @Description Update a savings goal's name, target, or deadline
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Updated fields"
// @Success     200 {object} models.SavingsGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *SavingsGoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, req.Name, req.Target, req.Deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GOAL", "savings_goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// Contribute handles adding an amount towards a savings goal.
// @Summary     Contribute to goal
// @Description Add an amount to a savings goal's saved total
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Goal ID"
// @Param       request body ContributeRequest true "Contribution amount"
// @Success     200 {object} models.SavingsGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/contribute [post]
func (h *SavingsGoalHandler) Contribute(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.Contribute(userID, goalID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CONTRIBUTE_GOAL", "savings_goal", goalID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount.String()})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles deleting a savings goal.
// @Summary     Delete savings goal
// @Description Delete a savings goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *SavingsGoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GOAL", "savings_goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
