package router

import (
	"os"
	"path/filepath"
	"singmeasong/internal/config"
	"singmeasong/internal/handlers"
	"singmeasong/internal/middleware"
	"singmeasong/internal/services"
	"singmeasong/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// New builds the engine with middleware, templates and every route.
func New(cfg config.Config, svc *services.RecommendationService) (*gin.Engine, error) {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("singmeasong_session", store))
	r.Use(middleware.LoadFlashes())

	renderer, err := LoadTemplates(cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	staticDir := filepath.Join(filepath.Dir(cfg.TemplatesDir), "static")
	if _, err := os.Stat(staticDir); err == nil {
		r.Static("/static", staticDir)
	}

	source, err := os.ReadFile(filepath.Join(cfg.ContentDir, "about.md"))
	if err != nil {
		logrus.WithError(err).Warn("About page content not found")
	}
	about, err := utils.RenderMarkdown(source)
	if err != nil {
		return nil, err
	}

	RegisterRoutes(r, cfg,
		handlers.NewRecommendationHandler(svc),
		handlers.NewWebHandler(svc, about),
	)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, cfg config.Config, api *handlers.RecommendationHandler, web *handlers.WebHandler) {
	// JSON API
	recs := r.Group("/recommendations")
	{
		recs.POST("", api.Create)                                                    // 创建推荐
		recs.GET("", api.List)                                                       // 最新 10 条
		recs.GET("/random", api.Random)                                              // 加权随机
		recs.GET("/top/:amount", api.Top)                                            // 分数最高的 n 条
		recs.GET("/:id", api.Get)                                                    // 单条
		recs.POST("/:id/upvote", api.Upvote)                                         // 点赞
		recs.POST("/:id/downvote", api.Downvote)                                     // 点踩
		recs.POST("/reset", middleware.ResetRequired(cfg.ResetEnabled()), api.Reset) // 清空（测试用）
	}

	// 网页客户端 (Web Client)
	r.GET("/", web.Home)
	r.GET("/top", web.Top)
	r.GET("/random", web.Random)
	r.GET("/about", web.About)
	r.POST("/submit", web.Submit)
	r.POST("/r/:id/upvote", web.Upvote)
	r.POST("/r/:id/downvote", web.Downvote)
}
