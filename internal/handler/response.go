package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bet_tracker/internal/account"
	"bet_tracker/internal/display"
	"bet_tracker/internal/wager"
)

type apiResponse struct {
	Code     int               `json:"code"`
	Message  string            `json:"message"`
	Data     any               `json:"data,omitempty"`
	Feedback *display.Feedback `json:"feedback,omitempty"`
}

func Ok(c *gin.Context, data any, feedback *display.Feedback) {
	c.JSON(http.StatusOK, apiResponse{
		Code:     0,
		Message:  "ok",
		Data:     data,
		Feedback: feedback,
	})
}

func Error(c *gin.Context, status int, feedback display.Feedback) {
	c.JSON(status, apiResponse{
		Code:     status,
		Message:  feedback.Message,
		Feedback: &feedback,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, wager.ErrNotFound), errors.Is(err, account.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, wager.ErrInvalidOutcome):
		return http.StatusUnprocessableEntity
	case errors.Is(err, wager.ErrValidation), errors.Is(err, wager.ErrParse):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail reports err to the caller. Storage failures are logged; core errors
// are the caller's to fix and only echoed back.
func fail(c *gin.Context, log *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	if errors.Is(err, account.ErrAccountNotFound) {
		Error(c, status, display.Feedback{Message: "Account not found.", Severity: display.SeverityDanger})
		return
	}
	Error(c, status, display.ErrorFeedback(err))
}

func badRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, display.Feedback{Message: msg, Severity: display.SeverityDanger})
}
