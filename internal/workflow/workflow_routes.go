package workflow

import (
	"github.com/gin-gonic/gin"

	"hrflow/internal/middleware"
	"hrflow/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	requests := r.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", middleware.RBACAuthorize(rbacService, "request", "create"), handler.SubmitRequest)
		requests.POST("/:id/approval", middleware.RBACAuthorize(rbacService, "request", "approve"), handler.ProcessApproval)
		requests.GET("", middleware.RBACAuthorize(rbacService, "request", "read"), handler.ListEmployeeRequests)
		requests.GET("/pending", middleware.RBACAuthorize(rbacService, "request", "approve"), handler.ListPendingApprovals)
		requests.GET("/team", middleware.RBACAuthorize(rbacService, "request", "approve"), handler.ListTeamRequests)
		requests.GET("/form-config/:type", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetFormConfig)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetRequest)
	}

	workflows := r.Group("/workflows")
	workflows.Use(middleware.AuthMiddleware())
	{
		workflows.GET("", middleware.RBACAuthorize(rbacService, "request", "read"), handler.ListWorkflows)
	}
}
