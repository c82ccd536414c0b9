package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gdugdh24/fourthmouse-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error  string               `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// respondError writes the status and body for err. Unexpected errors are
// attached to the context for the request logger and reported without detail.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		status := http.StatusUnprocessableEntity
		if verr.HasCode(domain.CodeDuplicate) {
			status = http.StatusConflict
		}
		c.JSON(status, ErrorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, domain.ErrResetTokenInvalid):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password reset token is invalid or has expired"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, domain.ErrBlocked):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCollaboratorNotEnabled):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "feature not available"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "please retry"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// accountID returns the authenticated account, or writes 401.
func accountID(c *gin.Context) (int, bool) {
	id, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return 0, false
	}
	return id, true
}

// intParam parses a positive integer path parameter, or writes 400.
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}
