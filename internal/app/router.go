package app

import (
	"quiz_app_backend/internal/config"
	"quiz_app_backend/internal/middleware"
	"quiz_app_backend/internal/model"
	"quiz_app_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerSharedRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

// Routes any authenticated user may hit.
func (a *App) registerSharedRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.GET("/questions", c.question.ListQuestions)
	rg.GET("/questions/deleted", c.question.ListDeleted)
	rg.GET("/questions/:id", c.question.GetQuestion)
	rg.GET("/quizzes", c.quiz.ListQuizzes)
	rg.GET("/quizzes/deleted", c.quiz.ListDeleted)
	rg.GET("/quizzes/:id", c.quiz.GetQuiz)
	rg.GET("/quiz-attempts/:quizId/leaderboard", c.attempt.GetLeaderboard)
}

// Authoring routes, teacher role only.
func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/questions/mcq", c.question.AddMCQ)
		teacher.POST("/questions/fillups", c.question.AddFillUps)
		teacher.PUT("/questions/mcq/:id", c.question.UpdateMCQ)
		teacher.PUT("/questions/fillups/:id", c.question.UpdateFillUps)
		teacher.DELETE("/questions/:id", c.question.SoftDelete)
		teacher.POST("/questions/:id/restore", c.question.Restore)
		teacher.DELETE("/questions/:id/permanent", c.question.Delete)

		teacher.POST("/quizzes", c.quiz.AddQuiz)
		teacher.GET("/quizzes/mine", c.quiz.ListMine)
		teacher.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		teacher.DELETE("/quizzes/:id", c.quiz.SoftDelete)
		teacher.POST("/quizzes/:id/restore", c.quiz.Restore)
		teacher.DELETE("/quizzes/:id/permanent", c.quiz.Delete)
		teacher.POST("/quizzes/:id/duplicate", c.quiz.Duplicate)
	}
}

// Attempt routes, student role only.
func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("/")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.POST("/quiz-attempts/:quizId/start", c.attempt.StartQuiz)
		student.POST("/quiz-attempts/:quizId/answers", c.attempt.SubmitAnswer)
		student.POST("/quiz-attempts/:quizId/answers/bulk", c.attempt.SubmitAllAnswers)
		student.GET("/quiz-attempts/:quizId/result", c.attempt.GetResult)
		student.GET("/quiz-attempts/:quizId/leaderboard/me", c.attempt.GetMyPosition)
	}
}
