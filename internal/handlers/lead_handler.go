package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assekura/internal/models"
	"assekura/internal/services"
)

type LeadHandler struct {
	Service *services.LeadService
}

func NewLeadHandler(service *services.LeadService) *LeadHandler {
	return &LeadHandler{Service: service}
}

type SubmitLeadRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	InsuranceType string `json:"insurance_type" binding:"required"`
	Message       string `json:"message"`
	Language      string `json:"language"`
}

// Submit accepts the final funnel payload. Submission is refused
// unless the phone number has a verified record server-side.
//
// @Summary      Submit a contact form lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body SubmitLeadRequest true "lead payload"
// @Success      201 {object} models.Lead
// @Router       /leads [post]
func (h *LeadHandler) Submit(c *gin.Context) {
	var req SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead := &models.Lead{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		InsuranceType: req.InsuranceType,
		Message:       req.Message,
		Language:      req.Language,
	}

	if err := h.Service.Submit(lead); err != nil {
		if errors.Is(err, services.ErrPhoneNotVerified) {
			c.JSON(http.StatusForbidden, gin.H{"error": "phone number is not verified"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit lead"})
		return
	}

	c.JSON(http.StatusCreated, lead)
}
