package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.Use(middleware.RequestID())

	a.registerPublicRoutes(router, c, cfg)
	a.registerStudentRoutes(router, c, cfg)
	a.registerAdminRoutes(router, c, cfg)
}

// Public reads carry optional auth so enrolled callers see ungated content.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	browse := router.Group("/api")
	browse.Use(middleware.TryAuthMiddleware(cfg))
	{
		browse.GET("/courses", c.course.List)
		browse.GET("/courses/:courseId", c.course.Get)
		browse.GET("/courses/:courseId/lessons", c.lesson.ListByCourse)
		browse.GET("/lessons/:lessonId", c.lesson.Get)
	}
}

func (a *App) registerStudentRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	auth := router.Group("/api")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/users/me", c.user.Me)
		auth.PUT("/users/me", c.user.UpdateMe)
		auth.GET("/users/me/enrollments", c.course.MyEnrollments)
		auth.GET("/users/me/attempts", c.attempt.ListMine)
		auth.GET("/users/me/progress", c.progress.MyProgress)
		auth.GET("/users/me/completions", c.progress.MyCompletions)

		auth.GET("/courses/:courseId/quizzes", c.quiz.ListByCourse)
		auth.GET("/quizzes/:quizId", c.quiz.Get)
		auth.GET("/quizzes/:quizId/questions", c.quiz.ListQuestions)
		auth.GET("/questions/:questionId", c.quiz.GetQuestion)
		auth.GET("/lessons/:lessonId/resources", c.lesson.ListResources)
		auth.GET("/attempts/:attemptId", c.attempt.Get)
		auth.GET("/quizzes/:quizId/attempts", c.attempt.ListByQuiz)
	}

	student := router.Group("/api")
	student.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Student))
	{
		student.POST("/courses/:courseId/enroll", c.course.Enroll)
		student.DELETE("/courses/:courseId/enroll", c.course.Withdraw)
		student.POST("/quizzes/:quizId/attempts", c.attempt.Submit)
		student.POST("/lessons/:lessonId/complete", c.progress.MarkLessonComplete)
		student.GET("/courses/:courseId/progress", c.progress.CourseProgress)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/admin/users", c.user.List)
		admin.GET("/admin/users/:id", c.user.Get)
		admin.PUT("/admin/users/:id", c.user.Update)
		admin.DELETE("/admin/users/:id", c.user.Delete)

		admin.POST("/courses", c.course.Create)
		admin.PUT("/courses/:courseId", c.course.Update)
		admin.DELETE("/courses/:courseId", c.course.Delete)
		admin.GET("/courses/:courseId/enrollments", c.course.Enrollees)

		admin.POST("/courses/:courseId/lessons", c.lesson.Create)
		admin.PUT("/lessons/:lessonId", c.lesson.Update)
		admin.DELETE("/lessons/:lessonId", c.lesson.Delete)
		admin.POST("/lessons/:lessonId/resources", c.lesson.UploadResource)
		admin.DELETE("/resources/:resourceId", c.lesson.DeleteResource)

		admin.POST("/courses/:courseId/quizzes", c.quiz.Create)
		admin.PUT("/quizzes/:quizId", c.quiz.Update)
		admin.DELETE("/quizzes/:quizId", c.quiz.Delete)
		admin.POST("/quizzes/:quizId/questions", c.quiz.AddQuestion)
		admin.PUT("/questions/:questionId", c.quiz.UpdateQuestion)
		admin.DELETE("/questions/:questionId", c.quiz.DeleteQuestion)
		admin.POST("/questions/:questionId/options", c.quiz.AddOption)
		admin.PUT("/options/:optionId", c.quiz.UpdateOption)
		admin.DELETE("/options/:optionId", c.quiz.DeleteOption)
	}
}
