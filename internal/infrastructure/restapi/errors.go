package restapi

import (
	"errors"
	"net/http"

	"balance_formatter/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidAddress),
		errors.Is(err, entity.ErrInvalidAmount),
		errors.Is(err, entity.ErrInvalidSwapSide),
		errors.Is(err, entity.ErrSameCurrency):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrWalletNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInsufficientFunds),
		errors.Is(err, entity.ErrUnknownCurrency):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrNoPrices):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, APIError{Error: msg, RequestID: c.GetString(requestIDKey)})
}
