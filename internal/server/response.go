package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dshills/rootcause/internal/workflow"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// statusFor maps workflow errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, workflow.ErrInvalid):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, workflow.ErrProblemNotFound):
		return http.StatusNotFound, "problem_not_found"
	case errors.Is(err, workflow.ErrUnknownMethodology):
		return http.StatusNotFound, "unknown_methodology"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
