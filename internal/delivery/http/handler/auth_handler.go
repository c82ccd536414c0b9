package handler

import (
	"net/http"

	"github.com/gdugdh24/fourthmouse-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/auth"
	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/credential"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
	credentials *credential.Manager
	resetURL    string
}

// NewAuthHandler builds the auth handlers. Reset links are resetURL followed
// by the token.
func NewAuthHandler(authUseCase *auth.AuthUseCase, credentials *credential.Manager, resetURL string) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		credentials: credentials,
		resetURL:    resetURL,
	}
}

func clientInfo(c *gin.Context) auth.ClientInfo {
	return auth.ClientInfo{
		DeviceInfo: c.GetHeader("User-Agent"),
		IPAddress:  c.ClientIP(),
	}
}

// Signup handles POST /auth/signup
// @Summary Sign up
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.SignupRequest true "Credentials"
// @Success 201 {object} auth.AuthResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req auth.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.authUseCase.Signup(c.Request.Context(), &req, clientInfo(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Login handles POST /auth/login
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "Credentials"
// @Success 200 {object} auth.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.authUseCase.Login(c.Request.Context(), &req, clientInfo(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword handles POST /auth/forgot
// @Summary Request a password reset email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Email"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/forgot [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.credentials.ForgotPassword(c.Request.Context(), req.Email, h.resetURL)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.NotifyErr != nil {
		c.JSON(http.StatusAccepted, SuccessResponse{
			Message: "reset token issued but the email could not be sent",
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "an email has been sent to " + result.Email + " with further instructions",
	})
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
	Confirm  string `json:"confirm_password" binding:"required"`
}

// ResetPassword handles POST /auth/reset/:token
// @Summary Reset password with an emailed token
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body ResetPasswordRequest true "New password"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /auth/reset/{token} [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	if _, err := h.credentials.ResetPassword(c.Request.Context(), c.Param("token"), req.Password, req.Confirm); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "your password has been changed",
	})
}

// Logout handles POST /auth/logout
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "missing authorization token",
		})
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "logged out successfully",
	})
}
