package app

import (
	"health_edu_backend/docs"
	"health_edu_backend/internal/middleware"
	"health_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 所有接口都可匿名访问（演示模式），携带令牌则使用账户进度
	api := router.Group("/api")
	api.Use(middleware.TryAuth(s.auth))
	{
		a.registerAuthRoutes(api, c)
		a.registerLearningRoutes(api, c)
		a.registerChallengeRoutes(api, c)
	}
}

func (a *App) registerAuthRoutes(api *gin.RouterGroup, c *controllers) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)

		authorized := auth.Group("")
		authorized.Use(middleware.RequireAuth())
		{
			authorized.POST("/logout", c.auth.Logout)
			authorized.GET("/me", c.auth.Me)
			authorized.PUT("/me", c.auth.UpdateMe)
		}
	}
}

func (a *App) registerLearningRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/modules", c.catalog.ListModules)
	api.GET("/modules/:id", c.catalog.GetModule)
	api.POST("/modules/:id/quiz", c.quiz.SubmitQuiz)
	api.GET("/badges", c.catalog.ListBadges)

	progress := api.Group("/progress")
	{
		progress.GET("", c.progress.GetProgress)
		progress.POST("/reset", c.progress.ResetProgress)
		progress.POST("/import", middleware.RequireAuth(), c.progress.ImportProgress)
	}
}

func (a *App) registerChallengeRoutes(api *gin.RouterGroup, c *controllers) {
	challenges := api.Group("/challenges")
	{
		challenges.GET("", c.catalog.ListChallenges)
		challenges.GET("/mine", c.challenge.GetMyChallenges)
		challenges.POST("/:id/start", c.challenge.StartChallenge)
	}

	instances := api.Group("/user-challenges/:id")
	{
		instances.PUT("/progress", c.challenge.UpdateProgress)
		instances.POST("/increment", c.challenge.IncrementProgress)
		instances.GET("/timer", c.challenge.GetTimer)
		instances.POST("/timer/start", c.challenge.StartTimer)
		instances.POST("/timer/stop", c.challenge.StopTimer)
		instances.POST("/timer/cancel", c.challenge.CancelTimer)
	}
}
