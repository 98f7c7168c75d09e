package payroll

import (
	"hrflow/internal/middleware"
	"hrflow/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	group := r.Group("/payroll")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/calculations", middleware.RBACAuthorize(rbacService, "payroll", "calculate"), handler.Calculate)
		group.POST("/run-summary", middleware.RBACAuthorize(rbacService, "payroll", "calculate"), handler.RunSummary)
	}
}
