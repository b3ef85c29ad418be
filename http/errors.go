package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agriconnect/repository"
	"agriconnect/service"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrProfileNotFound),
		errors.Is(err, repository.ErrLoanRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidSort),
		errors.Is(err, service.ErrInvalidLoanRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrRequestNotPending):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError records err on the context and writes it as JSON. Internal
// errors are not echoed to the client.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
