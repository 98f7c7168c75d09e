package audit

import (
	"github.com/gin-gonic/gin"

	"hrflow/internal/middleware"
	"hrflow/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	group := r.Group("/audit")
	group.Use(middleware.AuthMiddleware())
	{
		reports := group.Group("/reports")
		{
			reports.POST("/payroll", middleware.RBACAuthorize(rbacService, "audit", "generate"), handler.GeneratePayrollReport)
			reports.POST("/attendance", middleware.RBACAuthorize(rbacService, "audit", "generate"), handler.GenerateAttendanceReport)
			reports.POST("/compliance", middleware.RBACAuthorize(rbacService, "audit", "generate"), handler.GenerateComplianceReport)
			reports.GET("/:id", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.GetReport)
			reports.POST("/:id/export", middleware.RBACAuthorize(rbacService, "audit", "export"), handler.ExportReport)
		}

		schedules := group.Group("/schedules")
		{
			schedules.POST("", middleware.RBACAuthorize(rbacService, "audit", "schedule"), handler.CreateSchedule)
			schedules.GET("", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.ListSchedules)
			schedules.DELETE("/:id", middleware.RBACAuthorize(rbacService, "audit", "schedule"), handler.DeleteSchedule)
		}
	}
}
