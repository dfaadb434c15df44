package routes

import (
	"github.com/gin-gonic/gin"

	"tasker/internal/handlers"
	"tasker/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	tagHandler *handlers.TagHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/register", userHandler.Register)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	// USERS
	users := r.Group("/users")
	{
		users.POST("/", middleware.RequireStaff(), userHandler.CreateUser)
		users.GET("/count", userHandler.GetUserCount)
		users.GET("/", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUserByID)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", middleware.RequireStaff(), userHandler.DeleteUser)
	}

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("/", taskHandler.Create)
		tasks.GET("/", taskHandler.GetAll)
		tasks.GET("/today", taskHandler.Today)
		tasks.GET("/kanban", taskHandler.Kanban)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/status", taskHandler.ChangeStatus)
		tasks.PUT("/:id/tags", taskHandler.SetTags)
		tasks.DELETE("/:id/tags", taskHandler.ClearTags)
		tasks.POST("/:id/tags/:tag_id", taskHandler.AddTag)
		tasks.DELETE("/:id/tags/:tag_id", taskHandler.RemoveTag)
	}

	// TAGS
	tags := r.Group("/tags")
	{
		tags.POST("/", tagHandler.Create)
		tags.GET("/", tagHandler.List)
		tags.GET("/:id", tagHandler.GetByID)
		tags.PUT("/:id", tagHandler.Update)
		tags.DELETE("/:id", tagHandler.Delete)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/tasks/pdf", reportHandler.TasksPDF)
	}

	return r
}
