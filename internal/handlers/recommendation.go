package handlers

import (
	"net/http"
	"singmeasong/internal/services"
	"singmeasong/internal/utils"

	"github.com/gin-gonic/gin"
)

// RecommendationHandler serves the JSON API under /recommendations.
type RecommendationHandler struct {
	svc *services.RecommendationService
}

func NewRecommendationHandler(svc *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// Create POST /recommendations
func (h *RecommendationHandler) Create(c *gin.Context) {
	var req createRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ValidationError(err.Error()))
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), req.Name, req.YoutubeLink)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Upvote POST /recommendations/:id/upvote
func (h *RecommendationHandler) Upvote(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		respondError(c, services.NotFoundError(""))
		return
	}

	rec, err := h.svc.Upvote(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Downvote POST /recommendations/:id/downvote
// 推荐被删除时返回 200 且无响应体
func (h *RecommendationHandler) Downvote(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		respondError(c, services.NotFoundError(""))
		return
	}

	rec, deleted, err := h.svc.Downvote(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if deleted {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// List GET /recommendations
func (h *RecommendationHandler) List(c *gin.Context) {
	recs, err := h.svc.Latest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// Get GET /recommendations/:id
func (h *RecommendationHandler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		respondError(c, services.NotFoundError(""))
		return
	}

	rec, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Random GET /recommendations/random
func (h *RecommendationHandler) Random(c *gin.Context) {
	rec, err := h.svc.Random(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Top GET /recommendations/top/:amount
func (h *RecommendationHandler) Top(c *gin.Context) {
	amount, ok := utils.ParseAmount(c.Param("amount"))
	if !ok {
		respondError(c, services.ValidationError("amount must be a non-negative integer"))
		return
	}

	recs, err := h.svc.Top(c.Request.Context(), amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// Reset POST /recommendations/reset
func (h *RecommendationHandler) Reset(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
