package holiday

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
) {
	holidays := r.Group("/holidays")

	holidays.Use(middleware.AuthMiddleware())

	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), h.GetAll)
		holidays.GET("/:id", middleware.RBACAuthorize(rbacService, "holiday", "read"), h.GetById)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "manage"), h.Create)
		holidays.PUT("/:id", middleware.RBACAuthorize(rbacService, "holiday", "manage"), h.Update)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "manage"), h.Delete)
	}
}
