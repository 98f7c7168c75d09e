package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"hrflow/internal/audit"
	"hrflow/internal/messaging/kafka"
	"hrflow/internal/notification"
	"hrflow/internal/payroll"
	"hrflow/internal/rbac"
	"hrflow/internal/workflow"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	if err := gormDB.AutoMigrate(
		&audit.PayrollRunRecord{},
		&audit.AttendanceRecord{},
		&audit.ComplianceRecord{},
	); err != nil {
		return err
	}

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Repositories & collaborators ---
	outboxRepo := kafka.NewOutboxRepository(db)
	notifier := notification.NewOutboxNotifier(outboxRepo)
	recordSource := audit.NewRecordSource(gormDB)

	// --- Services ---
	engine := workflow.NewEngine(workflow.EngineConfig{
		Directory: workflow.NewStaticDirectory(),
		Notifier:  notifier,
	})
	auditService := audit.NewService(recordSource)
	exporter := audit.NewExporter(nil)
	scheduleStore := audit.NewScheduleStore(rdb)

	// --- Handlers ---
	payrollHandler := payroll.NewHandler()
	workflowHandler := workflow.NewHandler(engine)
	auditHandler := audit.NewHandler(auditService, exporter, scheduleStore)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		payroll.RegisterRoutes(api, payrollHandler, rbacService)
		workflow.RegisterRoutes(api, workflowHandler, rbacService)
		audit.RegisterRoutes(api, auditHandler, rbacService)
	}

	return nil
}
