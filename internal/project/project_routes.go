package project

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.GET("", middleware.RBACAuthorize(rbacService, "project", "read"), handler.GetAllProjects)
		projects.GET("/mine", handler.GetMyProjects)
		projects.GET("/:id/tasks", middleware.RBACAuthorize(rbacService, "project", "read"), handler.GetProjectTasks)
		projects.POST("", middleware.RBACAuthorize(rbacService, "project", "create"), handler.CreateProject)
		projects.PUT("/:id", middleware.RBACAuthorize(rbacService, "project", "update"), handler.UpdateProject)
		projects.DELETE("/:id", middleware.RBACAuthorize(rbacService, "project", "delete"), handler.DeleteProject)
	}

	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.GET("/mine", handler.GetMyTasks)
		tasks.POST("", handler.LogTask)
		tasks.PATCH("/:id", handler.UpdateTask)
	}
}
