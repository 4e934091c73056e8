package attendance

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendance")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/clock-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.ClockIn)
		attendances.POST("/break-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.BreakIn)
		attendances.POST("/break-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.BreakOut)
		attendances.POST("/clock-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.ClockOut)
		attendances.GET("/logs", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetLogs)
		attendances.GET("/today-status", middleware.RoleMiddleware("ADMIN"), h.TodayStatus)
		attendances.GET("/employee/:id", middleware.RoleMiddleware("ADMIN"), h.EmployeeDetails)
	}
}
