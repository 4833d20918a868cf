package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assekura/internal/services"
)

type VerifyHandler struct {
	Service *services.VerificationService
}

func NewVerifyHandler(service *services.VerificationService) *VerifyHandler {
	return &VerifyHandler{Service: service}
}

type VerifyPhoneRequest struct {
	Phone  string `json:"phone" binding:"required"`
	Action string `json:"action" binding:"required"`
	Code   string `json:"code"`
}

type VerifyPhoneResponse struct {
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	AttemptsLeft *int   `json:"attemptsLeft,omitempty"`
}

// VerifyPhone handles both actions of the funnel's phone check.
// Business-rule failures come back as 200 with success=false; only
// infrastructure failures use non-2xx status.
//
// @Summary      Send or verify a phone confirmation code
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        request body VerifyPhoneRequest true "phone, action (send|verify), code for verify"
// @Success      200 {object} VerifyPhoneResponse
// @Router       /verify-phone [post]
func (h *VerifyHandler) VerifyPhone(c *gin.Context) {
	var req VerifyPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, VerifyPhoneResponse{Success: false, Error: "invalid request body"})
		return
	}

	switch req.Action {
	case "send":
		h.send(c, req.Phone)
	case "verify":
		h.verify(c, req.Phone, req.Code)
	default:
		c.JSON(http.StatusBadRequest, VerifyPhoneResponse{Success: false, Error: "unknown action"})
	}
}

func (h *VerifyHandler) send(c *gin.Context, phone string) {
	err := h.Service.Send(phone)
	if err == nil {
		c.JSON(http.StatusOK, VerifyPhoneResponse{Success: true})
		return
	}

	switch {
	case errors.Is(err, services.ErrPhoneRequired):
		c.JSON(http.StatusOK, VerifyPhoneResponse{Success: false, Error: "phone number is required"})
	case errors.Is(err, services.ErrAlreadyVerified):
		c.JSON(http.StatusOK, VerifyPhoneResponse{Success: false, Error: "number already verified"})
	case errors.Is(err, services.ErrResendThrottled):
		c.JSON(http.StatusOK, VerifyPhoneResponse{Success: false, Error: "too many code requests, try again later"})
	default:
		c.JSON(http.StatusInternalServerError, VerifyPhoneResponse{Success: false, Error: "could not send code"})
	}
}

func (h *VerifyHandler) verify(c *gin.Context, phone, code string) {
	attemptsLeft, err := h.Service.Verify(phone, code)
	if err == nil {
		c.JSON(http.StatusOK, VerifyPhoneResponse{Success: true})
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidFormat):
		c.JSON(http.StatusOK, VerifyPhoneResponse{Success: false, Error: "code must be exactly 6 digits"})
	case errors.Is(err, services.ErrPhoneRequired):
		c.JSON(http.StatusOK, VerifyPhoneResponse{Success: false, Error: "phone number is required"})
	case errors.Is(err, services.ErrNoPending):
		c.JSON(http.StatusOK, VerifyPhoneResponse{Success: false, Error: "no code was requested for this number"})
	case errors.Is(err, services.ErrTooManyAttempts):
		c.JSON(http.StatusOK, VerifyPhoneResponse{Success: false, Error: "too many attempts, request a new code"})
	case errors.Is(err, services.ErrCodeExpired):
		c.JSON(http.StatusOK, VerifyPhoneResponse{Success: false, Error: "code expired, request a new code"})
	case errors.Is(err, services.ErrCodeInvalid):
		c.JSON(http.StatusOK, VerifyPhoneResponse{Success: false, Error: "invalid code", AttemptsLeft: &attemptsLeft})
	default:
		c.JSON(http.StatusInternalServerError, VerifyPhoneResponse{Success: false, Error: "verification failed"})
	}
}
