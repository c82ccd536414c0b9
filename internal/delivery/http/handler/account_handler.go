package handler

import (
	"net/http"

	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/auth"
	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/credential"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	authUseCase *auth.AuthUseCase
	credentials *credential.Manager
}

func NewAccountHandler(authUseCase *auth.AuthUseCase, credentials *credential.Manager) *AccountHandler {
	return &AccountHandler{
		authUseCase: authUseCase,
		credentials: credentials,
	}
}

// GetAccount handles GET /account
// @Summary Current account
// @Tags account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Account
// @Router /account [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	account, err := h.authUseCase.GetAccount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// DeleteAccount handles DELETE /account
// @Summary Delete the current account
// @Tags account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /account [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	if err := h.authUseCase.DeleteAccount(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "your account has been deleted",
	})
}

type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required"`
	Confirm  string `json:"confirm_password" binding:"required"`
}

// ChangePassword handles PUT /account/password
// @Summary Change password
// @Tags account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "New password"
// @Success 200 {object} SuccessResponse
// @Failure 422 {object} ErrorResponse
// @Router /account/password [put]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	changed, err := h.credentials.ChangePassword(c.Request.Context(), id, req.Password, req.Confirm)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "password has been changed"
	if !changed {
		message = "password unchanged"
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// LinkProvider handles POST /account/providers/:provider
// @Summary Link an external identity
// @Tags account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param provider path string true "Provider kind"
// @Param request body auth.LinkProviderRequest true "Provider identity"
// @Success 200 {object} domain.Account
// @Failure 409 {object} ErrorResponse
// @Router /account/providers/{provider} [post]
func (h *AccountHandler) LinkProvider(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req auth.LinkProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	account, err := h.authUseCase.LinkProvider(c.Request.Context(), id, c.Param("provider"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// UnlinkProvider handles DELETE /account/providers/:provider
// @Summary Unlink an external identity
// @Tags account
// @Security BearerAuth
// @Produce json
// @Param provider path string true "Provider kind"
// @Success 200 {object} domain.Account
// @Failure 404 {object} ErrorResponse
// @Router /account/providers/{provider} [delete]
func (h *AccountHandler) UnlinkProvider(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	account, err := h.authUseCase.UnlinkProvider(c.Request.Context(), id, c.Param("provider"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}
