package handler

import (
	"net/http"
	"strconv"

	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/interest"
	"github.com/gin-gonic/gin"
)

type InterestHandler struct {
	interestUseCase *interest.InterestUseCase
}

func NewInterestHandler(interestUseCase *interest.InterestUseCase) *InterestHandler {
	return &InterestHandler{interestUseCase: interestUseCase}
}

// ListCategories handles GET /interests/categories
// @Summary Interest categories
// @Tags interests
// @Produce json
// @Success 200 {array} domain.InterestCategory
// @Router /interests/categories [get]
func (h *InterestHandler) ListCategories(c *gin.Context) {
	categories, err := h.interestUseCase.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListInterests handles GET /interests
// @Summary Interest catalogue
// @Tags interests
// @Produce json
// @Param category_id query int false "Category filter"
// @Success 200 {array} domain.Interest
// @Router /interests [get]
func (h *InterestHandler) ListInterests(c *gin.Context) {
	var categoryID *int
	if raw := c.Query("category_id"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "invalid category_id")
			return
		}
		categoryID = &v
	}

	interests, err := h.interestUseCase.ListInterests(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interests)
}

// ListMine handles GET /profile/me/interests
// @Summary My interests
// @Tags interests
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Interest
// @Router /profile/me/interests [get]
func (h *InterestHandler) ListMine(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	interests, err := h.interestUseCase.ListAccountInterests(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interests)
}

// Add handles POST /profile/me/interests/:id
// @Summary Add an interest
// @Tags interests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Interest ID"
// @Success 200 {array} domain.Interest
// @Failure 404 {object} ErrorResponse
// @Router /profile/me/interests/{id} [post]
func (h *InterestHandler) Add(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	interestID, ok := intParam(c, "id")
	if !ok {
		return
	}

	interests, err := h.interestUseCase.AddInterest(c.Request.Context(), id, interestID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interests)
}

// Remove handles DELETE /profile/me/interests/:id
// @Summary Remove an interest
// @Tags interests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Interest ID"
// @Success 200 {array} domain.Interest
// @Failure 404 {object} ErrorResponse
// @Router /profile/me/interests/{id} [delete]
func (h *InterestHandler) Remove(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	interestID, ok := intParam(c, "id")
	if !ok {
		return
	}

	interests, err := h.interestUseCase.RemoveInterest(c.Request.Context(), id, interestID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interests)
}
