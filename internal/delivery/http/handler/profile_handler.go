package handler

import (
	"net/http"

	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Account
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	account, err := h.profileUseCase.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// UpdateMyProfile handles PUT /profile/me
// @Summary Update my profile
// @Description Partial update. Omitted and null fields keep their stored values.
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.UpdateProfileRequest true "Changed fields"
// @Success 200 {object} domain.Account
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /profile/me [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	account, err := h.profileUseCase.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

type SummariesResponse struct {
	Summaries []string `json:"summaries"`
}

// GenerateSummaries handles POST /profile/me/summaries
// @Summary Draft profile summaries
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SummariesResponse
// @Router /profile/me/summaries [post]
func (h *ProfileHandler) GenerateSummaries(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	summaries, err := h.profileUseCase.GenerateSummaries(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummariesResponse{Summaries: summaries})
}

// UploadPicture handles POST /profile/me/pictures
// @Summary Upload a profile picture
// @Tags profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param picture formData file true "Image"
// @Success 201 {object} domain.Account
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /profile/me/pictures [post]
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, profile.MaxPictureBytes+1<<20)
	header, err := c.FormFile("picture")
	if err != nil {
		badRequest(c, "picture file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, "picture file is unreadable")
		return
	}
	defer file.Close()

	account, err := h.profileUseCase.UploadPicture(c.Request.Context(), id, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

type RemovePictureRequest struct {
	URL string `json:"url" binding:"required"`
}

// RemovePicture handles DELETE /profile/me/pictures
// @Summary Remove a profile picture
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RemovePictureRequest true "Picture URL"
// @Success 200 {object} domain.Account
// @Failure 404 {object} ErrorResponse
// @Router /profile/me/pictures [delete]
func (h *ProfileHandler) RemovePicture(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req RemovePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	account, err := h.profileUseCase.RemovePicture(c.Request.Context(), id, req.URL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}
