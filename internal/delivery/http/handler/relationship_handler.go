package handler

import (
	"net/http"
	"strconv"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/usecase/relationship"
	"github.com/gin-gonic/gin"
)

type RelationshipHandler struct {
	relationshipUseCase *relationship.RelationshipUseCase
}

func NewRelationshipHandler(relationshipUseCase *relationship.RelationshipUseCase) *RelationshipHandler {
	return &RelationshipHandler{relationshipUseCase: relationshipUseCase}
}

func bindPage(c *gin.Context) (relationship.Page, bool) {
	var page relationship.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, "invalid paging parameters")
		return page, false
	}
	return page, true
}

// subjectAccount returns the account_id query parameter, defaulting to the
// caller.
func subjectAccount(c *gin.Context, self int) (int, bool) {
	raw := c.Query("account_id")
	if raw == "" {
		return self, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		badRequest(c, "invalid account_id")
		return 0, false
	}
	return v, true
}

// ListMatches handles GET /matches
// @Summary My matches
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param include_hidden query bool false "Include hidden and blocked matches"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} domain.Match
// @Router /matches [get]
func (h *RelationshipHandler) ListMatches(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}
	includeHidden, _ := strconv.ParseBool(c.Query("include_hidden"))

	matches, err := h.relationshipUseCase.ListMatches(c.Request.Context(), id, includeHidden, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// GetMatch handles GET /matches/:id
// @Summary Get a match
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} domain.Match
// @Failure 404 {object} ErrorResponse
// @Router /matches/{id} [get]
func (h *RelationshipHandler) GetMatch(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	matchID, ok := intParam(c, "id")
	if !ok {
		return
	}

	match, err := h.relationshipUseCase.GetMatch(c.Request.Context(), id, matchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

// UpdateMatch handles PATCH /matches/:id
// @Summary Update match flags
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body domain.MatchFlags true "Flags to change"
// @Success 200 {object} domain.Match
// @Router /matches/{id} [patch]
func (h *RelationshipHandler) UpdateMatch(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	matchID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var flags domain.MatchFlags
	if err := c.ShouldBindJSON(&flags); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	match, err := h.relationshipUseCase.UpdateMatchFlags(c.Request.Context(), id, matchID, flags)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

type RateRequest struct {
	Value int `json:"value" binding:"required"`
}

// RateMatch handles POST /matches/:id/rating
// @Summary Rate the matched account
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body RateRequest true "Rating"
// @Success 200 {object} domain.Match
// @Router /matches/{id}/rating [post]
func (h *RelationshipHandler) RateMatch(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	matchID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	match, err := h.relationshipUseCase.RateMatch(c.Request.Context(), id, matchID, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

type SendMessageRequest struct {
	ToAccountID int    `json:"to_account_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

// SendMessage handles POST /messages
// @Summary Send a message
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} domain.Message
// @Failure 403 {object} ErrorResponse
// @Router /messages [post]
func (h *RelationshipHandler) SendMessage(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	message, err := h.relationshipUseCase.SendMessage(c.Request.Context(), id, req.ToAccountID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// ListMessages handles GET /messages
// @Summary Messages sent or received
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Message
// @Router /messages [get]
func (h *RelationshipHandler) ListMessages(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	messages, err := h.relationshipUseCase.ListMessages(c.Request.Context(), id, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// ListConversation handles GET /messages/with/:account_id
// @Summary Conversation with one account
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Param account_id path int true "Other account"
// @Success 200 {array} domain.Message
// @Router /messages/with/{account_id} [get]
func (h *RelationshipHandler) ListConversation(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	otherID, ok := intParam(c, "account_id")
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	messages, err := h.relationshipUseCase.ListConversation(c.Request.Context(), id, otherID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetMessage handles GET /messages/:id
// @Summary Get a message
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} domain.Message
// @Failure 404 {object} ErrorResponse
// @Router /messages/{id} [get]
func (h *RelationshipHandler) GetMessage(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	messageID, ok := intParam(c, "id")
	if !ok {
		return
	}

	message, err := h.relationshipUseCase.GetMessage(c.Request.Context(), id, messageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

type CreateRatingRequest struct {
	AccountID int `json:"account_id" binding:"required"`
	Value     int `json:"value" binding:"required"`
}

// CreateRating handles POST /ratings
// @Summary Rate an account
// @Tags ratings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateRatingRequest true "Rating"
// @Success 201 {object} domain.Rating
// @Router /ratings [post]
func (h *RelationshipHandler) CreateRating(c *gin.Context) {
	if _, ok := accountID(c); !ok {
		return
	}

	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	rating, err := h.relationshipUseCase.CreateRating(c.Request.Context(), req.AccountID, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

// ListRatings handles GET /ratings
// @Summary Ratings of an account
// @Tags ratings
// @Security BearerAuth
// @Produce json
// @Param account_id query int false "Rated account, defaults to the caller"
// @Success 200 {array} domain.Rating
// @Router /ratings [get]
func (h *RelationshipHandler) ListRatings(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	subject, ok := subjectAccount(c, id)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	ratings, err := h.relationshipUseCase.ListRatings(c.Request.Context(), subject, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// GetRating handles GET /ratings/:id
// @Summary Get a rating
// @Tags ratings
// @Security BearerAuth
// @Produce json
// @Param id path int true "Rating ID"
// @Success 200 {object} domain.Rating
// @Router /ratings/{id} [get]
func (h *RelationshipHandler) GetRating(c *gin.Context) {
	ratingID, ok := intParam(c, "id")
	if !ok {
		return
	}

	rating, err := h.relationshipUseCase.GetRating(c.Request.Context(), ratingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

type CreateReportRequest struct {
	AccountID int    `json:"account_id" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// CreateReport handles POST /reports
// @Summary Report an account
// @Tags reports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateReportRequest true "Report"
// @Success 201 {object} domain.Report
// @Router /reports [post]
func (h *RelationshipHandler) CreateReport(c *gin.Context) {
	if _, ok := accountID(c); !ok {
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	report, err := h.relationshipUseCase.CreateReport(c.Request.Context(), req.AccountID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// ListReports handles GET /reports
// @Summary Reports against an account
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param account_id query int false "Reported account, defaults to the caller"
// @Success 200 {array} domain.Report
// @Router /reports [get]
func (h *RelationshipHandler) ListReports(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	subject, ok := subjectAccount(c, id)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	reports, err := h.relationshipUseCase.ListReports(c.Request.Context(), subject, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// GetReport handles GET /reports/:id
// @Summary Get a report
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} domain.Report
// @Router /reports/{id} [get]
func (h *RelationshipHandler) GetReport(c *gin.Context) {
	reportID, ok := intParam(c, "id")
	if !ok {
		return
	}

	report, err := h.relationshipUseCase.GetReport(c.Request.Context(), reportID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
