package app

import (
	"github.com/Gauraviiitian/PrepZone-Mock-Test/docs"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/middleware"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Every quiz route runs inside a session: created on first visit,
	// carried by cookie across the render cycle.
	api := router.Group("/api")
	api.Use(middleware.SessionMiddleware(a.services.sessions))
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/leaderboard", c.leaderboard.GetLeaderboard)

		quiz := api.Group("/quiz")
		{
			quiz.GET("", c.quiz.GetQuiz)
			quiz.POST("/name", c.quiz.SetName)
			quiz.POST("/answer", c.quiz.RecordAnswer)
			quiz.POST("/submit", c.quiz.Submit)
			quiz.POST("/retake", c.quiz.Retake)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/login", c.admin.Login)
			admin.POST("/logout", c.admin.Logout)

			guarded := admin.Group("")
			guarded.Use(middleware.AdminAuth(a.services.admin))
			{
				guarded.GET("/questions", c.admin.Questions)
				guarded.POST("/questions/upload", c.admin.UploadQuestions)
			}
		}
	}
}
