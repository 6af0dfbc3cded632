package app

import (
	"learnhub_backend/docs"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 后台管理接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/contact", c.contact.Submit)
	}

	// 目录和测验对游客开放，登录用户附带个人状态
	optional := router.Group("/api")
	optional.Use(middleware.TryAuthMiddleware(a.Config))
	{
		optional.GET("/courses", c.content.ListCourses)
		optional.GET("/courses/:slug", c.content.GetCourse)
		optional.GET("/quiz/static/:num", c.quiz.GetStaticQuiz)
		optional.GET("/quiz/:id", c.quiz.GetQuiz)
		optional.POST("/quiz/:id/attempt", c.quiz.SubmitAttempt)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/dashboard", c.enrollment.Dashboard)

	rg.POST("/courses/:slug/enroll", c.enrollment.Enroll)
	rg.DELETE("/courses/:slug/enroll", c.enrollment.Unenroll)
	rg.GET("/courses/:slug/player", c.content.CoursePlayer)

	rg.POST("/lessons/toggle", c.learning.ToggleLesson)
	rg.GET("/quiz/:id/attempts", c.quiz.ListAttempts)

	rg.GET("/profile", c.user.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.GET("/preferences", c.user.GetPreferences)
	rg.PUT("/preferences", c.user.UpdatePreferences)
	rg.POST("/account/delete", c.user.DeleteAccount)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Staff, model.Admin))
	{
		admin.POST("/courses", c.content.CreateCourse)
		admin.PUT("/courses/:id", c.content.UpdateCourse)
		admin.DELETE("/courses/:id", c.content.DeleteCourse)

		admin.POST("/modules", c.content.CreateModule)
		admin.PUT("/modules/:id", c.content.UpdateModule)
		admin.DELETE("/modules/:id", c.content.DeleteModule)

		admin.POST("/lessons", c.content.CreateLesson)
		admin.PUT("/lessons/:id", c.content.UpdateLesson)
		admin.DELETE("/lessons/:id", c.content.DeleteLesson)

		admin.POST("/lessons/:id/resources", c.content.UploadResource)
		admin.DELETE("/resources/:id", c.content.DeleteResource)

		admin.PUT("/lessons/:id/quiz", c.quiz.UpsertLessonQuiz)
		admin.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
		admin.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
		admin.DELETE("/questions/:questionId", c.quiz.DeleteQuestion)
		admin.POST("/questions/:questionId/choices", c.quiz.AddChoice)
		admin.DELETE("/choices/:choiceId", c.quiz.DeleteChoice)

		admin.POST("/enrollments", c.enrollment.AdminEnroll)
		admin.DELETE("/enrollments", c.enrollment.AdminUnenroll)
		admin.PUT("/enrollments/status", c.enrollment.AdminSetStatus)

		admin.GET("/contact", c.contact.List)
	}
}
