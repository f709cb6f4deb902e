package app

import (
	"manassa_backend/docs"
	"manassa_backend/internal/config"
	"manassa_backend/internal/middleware"
	"manassa_backend/internal/model"
	"manassa_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// Course discovery is open; logged-in viewers get extra fields
		browse := public.Group("/")
		browse.Use(middleware.TryAuthMiddleware(a.Config))
		{
			browse.GET("/courses", c.course.List)
			browse.GET("/courses/:id", c.course.Get)
			browse.GET("/courses/:id/content", c.content.GetCourseContent)
		}
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.GET("/users/profile", c.user.GetProfile)
	rg.PUT("/users/profile", c.user.UpdateProfile)
	rg.POST("/users/avatar", c.user.UploadAvatar)

	rg.GET("/chapters/:id", c.content.GetChapter)
	rg.POST("/chapters/:id/progress", c.content.MarkProgress)

	rg.POST("/purchases/redeem", c.course.Redeem)

	rg.GET("/assessments/:id", c.assessment.GetForStudent)
	rg.POST("/assessments/:id/submit", c.assessment.Submit)
	rg.GET("/assessments/:id/results", c.result.ListMine)

	rg.GET("/results/overview", c.result.Overview)
	rg.GET("/results/:id", c.result.GetDetail)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/courses", c.course.Create)
		teacher.PUT("/courses/:id", c.course.Update)
		teacher.PUT("/courses/:id/publish", c.course.SetPublished)
		teacher.DELETE("/courses/:id", c.course.Delete)

		teacher.POST("/courses/:id/chapters", c.content.CreateChapter)
		teacher.PUT("/chapters/:id", c.content.UpdateChapter)
		teacher.PUT("/chapters/:id/publish", c.content.SetChapterPublished)
		teacher.DELETE("/chapters/:id", c.content.DeleteChapter)
		teacher.POST("/chapters/:id/video", c.content.UploadChapterVideo)
		teacher.GET("/uploads/:uploadId/progress", c.content.GetUploadProgress)
		teacher.POST("/question-images", c.content.UploadQuestionImage)

		teacher.POST("/courses/:id/assessments", c.assessment.Create)
		teacher.GET("/courses/:id/assessments", c.assessment.ListByCourse)
		teacher.GET("/assessments/:id", c.assessment.GetForAuthor)
		teacher.PUT("/assessments/:id", c.assessment.Update)
		teacher.PUT("/assessments/:id/publish", c.assessment.SetPublished)
		teacher.DELETE("/assessments/:id", c.assessment.Delete)

		teacher.POST("/courses/:id/purchase-codes", c.course.GenerateCodes)
		teacher.GET("/courses/:id/purchase-codes", c.course.ListCodes)

		teacher.GET("/results", c.result.ListAll)
	}
}
