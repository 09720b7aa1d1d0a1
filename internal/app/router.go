package app

import (
	"feedback_backend/docs"
	"feedback_backend/internal/config"
	"feedback_backend/internal/middleware"
	"feedback_backend/internal/model"
	"feedback_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. public routes
	a.registerPublicRoutes(router, c)

	// 2. signed-in, verified accounts
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerAccountRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		public.POST("/sign-up", c.auth.SignUp)
		public.POST("/verify", c.auth.Verify)
		public.POST("/resend-otp", c.auth.ResendOTP)
		public.GET("/check-username", c.auth.CheckUsername)
		public.POST("/sign-in", c.auth.SignIn)

		public.POST("/send-message", c.message.SendMessage)
		public.POST("/suggest-messages", c.suggestion.SuggestMessages)
	}
}

func (a *App) registerAccountRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	rg.GET("/messages", c.message.ListMessages)
	rg.DELETE("/messages/:id", c.message.DeleteMessage)
	rg.GET("/accept-messages", c.message.GetAcceptMessages)
	rg.POST("/accept-messages", c.message.SetAcceptMessages)

	rg.GET("/tests", c.test.ListTests)
	rg.GET("/tests/:id", c.test.GetTest)
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/question-set", c.questionSet.GetRandomSet)
		student.GET("/tests/:id/attempted", c.test.CheckAttempted)
		student.POST("/tests/:id/sets/:setId/answers", c.answer.SubmitAnswers)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/tests", c.test.CreateTest)
		teacher.PATCH("/tests/:id", c.test.UpdateTest)
		teacher.DELETE("/tests/:id", c.test.DeleteTest)

		teacher.POST("/tests/:id/sets", c.questionSet.CreateSet)
		teacher.GET("/tests/:id/sets/:setId", c.questionSet.GetSet)
		teacher.PUT("/tests/:id/sets/:setId", c.questionSet.UpdateSet)
		teacher.DELETE("/tests/:id/sets/:setId", c.questionSet.DeleteSet)

		teacher.GET("/tests/:id/answers", c.answer.ListAnswers)
		teacher.PATCH("/answers/:id/grade", c.answer.GradeAnswer)
	}
}
