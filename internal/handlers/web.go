package handlers

import (
	"html/template"
	"net/http"
	"singmeasong/internal/middleware"
	"singmeasong/internal/models"
	"singmeasong/internal/services"
	"singmeasong/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WebTopLimit 页面“热门”列表的条数
const WebTopLimit = 10

const (
	flashGone   = "That recommendation no longer exists."
	flashFailed = "Something went wrong, please try again."
)

// WebHandler renders the browser client.
type WebHandler struct {
	svc   *services.RecommendationService
	about template.HTML
}

func NewWebHandler(svc *services.RecommendationService, about template.HTML) *WebHandler {
	return &WebHandler{svc: svc, about: about}
}

func (h *WebHandler) renderList(c *gin.Context, active, title string, recs []models.Recommendation) {
	Render(c, http.StatusOK, "recommendation/list.html", gin.H{
		"Recommendations": recs,
		"Active":          active,
		"Title":           title,
	})
}

// Home 首页：发布表单 + 最新推荐
func (h *WebHandler) Home(c *gin.Context) {
	recs, err := h.svc.Latest(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to load latest recommendations")
		RenderError(c, http.StatusInternalServerError, "Could not load recommendations")
		return
	}
	h.renderList(c, "home", "Latest", recs)
}

// Top 分数最高的推荐
func (h *WebHandler) Top(c *gin.Context) {
	recs, err := h.svc.Top(c.Request.Context(), WebTopLimit)
	if err != nil {
		logrus.WithError(err).Error("Failed to load top recommendations")
		RenderError(c, http.StatusInternalServerError, "Could not load recommendations")
		return
	}
	h.renderList(c, "top", "Top", recs)
}

// Random 随机推荐一首
func (h *WebHandler) Random(c *gin.Context) {
	rec, err := h.svc.Random(c.Request.Context())
	if err != nil {
		if services.IsNotFound(err) {
			h.renderList(c, "random", "Random", nil)
			return
		}
		logrus.WithError(err).Error("Failed to pick a random recommendation")
		RenderError(c, http.StatusInternalServerError, "Could not load recommendations")
		return
	}
	h.renderList(c, "random", "Random", []models.Recommendation{*rec})
}

// About renders the static markdown page.
func (h *WebHandler) About(c *gin.Context) {
	Render(c, http.StatusOK, "about.html", gin.H{
		"Content": h.about,
		"Active":  "about",
		"Title":   "About",
	})
}

// Submit handles the create form.
func (h *WebHandler) Submit(c *gin.Context) {
	var req createRecommendationRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.AddFlash(c, "Please enter a name and a valid YouTube link.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if _, err := h.svc.Create(c.Request.Context(), req.Name, req.YoutubeLink); err != nil {
		if appErr, ok := services.AsAppError(err); ok {
			middleware.AddFlash(c, appErr.Message)
		} else {
			logrus.WithError(err).Error("Failed to create recommendation")
			middleware.AddFlash(c, flashFailed)
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Upvote 点赞后返回来源页面
func (h *WebHandler) Upvote(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		middleware.AddFlash(c, flashGone)
		redirectBack(c, "/")
		return
	}

	_, err := h.svc.Upvote(c.Request.Context(), id)
	flashVoteError(c, err, id, "Upvote failed")
	redirectBack(c, "/")
}

// Downvote 点踩后返回来源页面
func (h *WebHandler) Downvote(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		middleware.AddFlash(c, flashGone)
		redirectBack(c, "/")
		return
	}

	_, _, err := h.svc.Downvote(c.Request.Context(), id)
	flashVoteError(c, err, id, "Downvote failed")
	redirectBack(c, "/")
}

// flashVoteError 未找到提示已删除，其他错误记录日志并给出通用提示
func flashVoteError(c *gin.Context, err error, id uint, msg string) {
	switch {
	case err == nil:
	case services.IsNotFound(err):
		middleware.AddFlash(c, flashGone)
	default:
		logrus.WithError(err).WithField("id", id).Error(msg)
		middleware.AddFlash(c, flashFailed)
	}
}
