package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/services"
)

// RecurringHandler handles recurring transaction template requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
	auditService     services.AuditServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer, auditService services.AuditServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService, auditService: auditService}
}

// CreateRecurringRequest represents the request payload for creating a
// recurring transaction template.
type CreateRecurringRequest struct {
	CategoryID  string                    `json:"category_id" binding:"required,uuid"`
	Amount      decimal.Decimal           `json:"amount" binding:"required"`
	Description string                    `json:"description" binding:"required,min=1,max=200"`
	Frequency   models.RecurringFrequency `json:"frequency" binding:"required,recurring_frequency"`
	NextDate    time.Time                 `json:"next_date" binding:"required"`
}

// GetRecurring handles listing the user's recurring templates.
// @Summary     Get recurring transactions
// @Description Get the user's recurring transaction templates, next due first
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.RecurringTransaction "Recurring templates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring [get]
func (h *RecurringHandler) GetRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurring, err := h.recurringService.GetUserRecurring(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring": recurring})
}

// CreateRecurring handles creating a recurring transaction template.
// @Summary     Create recurring transaction
// @Description Create a template that records a transaction on a schedule
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateRecurringRequest true "Template details"
// @Success     201 {object} models.RecurringTransaction "Template created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring [post]
func (h *RecurringHandler) CreateRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recurring, err := h.recurringService.CreateRecurring(userID, req.CategoryID, req.Amount, req.Description, req.Frequency, req.NextDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_RECURRING", "recurring_transaction", recurring.ID, c.ClientIP(),
		map[string]interface{}{"frequency": req.Frequency, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"recurring": recurring})
}

// DeleteRecurring handles deleting a recurring template.
// @Summary     Delete recurring transaction
// @Description Delete a template; past transactions keep their reference
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Recurring template ID"
// @Success     200 {object} MessageResponse "Template deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring/{id} [delete]
func (h *RecurringHandler) DeleteRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeleteRecurring(userID, recurringID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_RECURRING", "recurring_transaction", recurringID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
