package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-api/internal/application/usecase/access"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/metrics"
)

type RouterConfig struct {
	Logger  logger.Logger
	Metrics *metrics.Metrics
	JWT     *auth.JWTService
	Gates   *access.Gatekeeper

	Auth     *AuthHandler
	Content  *ContentHandler
	Snapshot *SnapshotHandler
	Feed     *FeedHandler
}

func NewRouter(rc RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if rc.Metrics != nil {
		router.Use(rc.Metrics.GinMiddleware())
		router.GET("/metrics", gin.WrapH(rc.Metrics.Handler()))
	}
	router.Use(ErrorMiddleware(rc.Logger))

	sessionMiddleware := SessionMiddleware(rc.JWT, rc.Gates)

	api := router.Group("/api")
	{
		admin := api.Group("/admin")
		{
			admin.POST("/auth/login", rc.Auth.Login)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(sessionMiddleware)
			{
				adminPrivate.POST("/auth/logout", rc.Auth.Logout)
				adminPrivate.GET("/auth/status", rc.Auth.Status)

				projects := adminPrivate.Group("/projects")
				{
					projects.POST("", rc.Content.CreateProject)
					projects.PUT("/:id", rc.Content.UpdateProject)
					projects.DELETE("/:id", rc.Content.DeleteProject)
				}

				experience := adminPrivate.Group("/experience")
				{
					experience.POST("", rc.Content.CreateExperience)
					experience.PUT("/:id", rc.Content.UpdateExperience)
					experience.DELETE("/:id", rc.Content.DeleteExperience)
				}

				achievements := adminPrivate.Group("/achievements")
				{
					achievements.POST("", rc.Content.CreateAchievement)
					achievements.PUT("/:id", rc.Content.UpdateAchievement)
					achievements.DELETE("/:id", rc.Content.DeleteAchievement)
				}

				adminPrivate.PUT("/hero", rc.Content.UpdateHero)
				adminPrivate.PUT("/social", rc.Content.UpdateSocialLinks)
				adminPrivate.PUT("/skills", rc.Content.UpdateSkills)
				adminPrivate.PUT("/about-stats", rc.Content.UpdateAboutStats)
				adminPrivate.POST("/reset", rc.Content.ResetToDefaults)

				adminPrivate.GET("/export", rc.Snapshot.Export)
				adminPrivate.POST("/snapshots", rc.Snapshot.CreateSnapshot)
			}
		}

		public := api.Group("/")
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
			public.GET("/content", rc.Content.GetContent)
			public.GET("/projects", rc.Content.ListProjects)
			public.GET("/projects/:id", rc.Content.GetProject)
			public.GET("/experience", rc.Content.ListExperience)
			public.GET("/achievements", rc.Content.ListAchievements)
			public.GET("/skills", rc.Content.GetSkills)
			public.GET("/hero", rc.Content.GetHero)
			public.GET("/social", rc.Content.GetSocialLinks)
			public.GET("/about-stats", rc.Content.GetAboutStats)
			public.GET("/feed.xml", rc.Feed.GenerateRSS)
		}
	}

	return router
}
