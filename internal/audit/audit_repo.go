package audit

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// PayrollRunRecord is one processed payroll line used as audit evidence.
type PayrollRunRecord struct {
	ID               string    `gorm:"type:varchar(40);primaryKey" json:"id"`
	EmployeeID       string    `gorm:"type:varchar(40);not null;index" json:"employee_id"`
	Department       string    `gorm:"type:varchar(80);index" json:"department"`
	BasicSalary      float64   `gorm:"not null;default:0" json:"basic_salary"`
	GOSIContribution float64   `gorm:"column:gosi_contribution;not null;default:0" json:"gosi_contribution"`
	NetPay           float64   `gorm:"not null;default:0" json:"net_pay"`
	ComplianceStatus string    `gorm:"type:varchar(20);not null;default:'compliant'" json:"compliance_status"`
	PayDate          time.Time `gorm:"type:date;not null;index" json:"pay_date"`
	CreatedAt        time.Time `json:"created_at"`
}

func (PayrollRunRecord) TableName() string {
	return "payroll_run_records"
}

type AttendanceRecord struct {
	ID              string    `gorm:"type:varchar(40);primaryKey" json:"id"`
	EmployeeID      string    `gorm:"type:varchar(40);not null;index" json:"employee_id"`
	TotalHours      float64   `gorm:"not null;default:0" json:"total_hours"`
	OvertimeHours   float64   `gorm:"not null;default:0" json:"overtime_hours"`
	Violations      int       `gorm:"not null;default:0" json:"violations"`
	ComplianceScore float64   `gorm:"not null;default:100" json:"compliance_score"`
	RecordDate      time.Time `gorm:"type:date;not null;index" json:"record_date"`
	CreatedAt       time.Time `json:"created_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

type ComplianceRecord struct {
	ID                string     `gorm:"type:varchar(40);primaryKey" json:"id"`
	EmployeeID        string     `gorm:"type:varchar(40);not null;index" json:"employee_id"`
	VisaExpiryDate    *time.Time `gorm:"type:date;index" json:"visa_expiry_date,omitempty"`
	GOSIRegistered    bool       `gorm:"column:gosi_registered;not null;default:true" json:"gosi_registered"`
	ContractRenewedOnTime bool   `gorm:"not null;default:true" json:"contract_renewed_on_time"`
	RecordDate        time.Time  `gorm:"type:date;not null;index" json:"record_date"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (ComplianceRecord) TableName() string {
	return "compliance_records"
}

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type RecordSource interface {
	FindPayrollRecords(ctx context.Context, start, end time.Time, departments []string) ([]PayrollRunRecord, error)
	FindAttendanceRecords(ctx context.Context, start, end time.Time) ([]AttendanceRecord, error)
	FindComplianceRecords(ctx context.Context, start, end time.Time) ([]ComplianceRecord, error)
}

type recordSource struct {
	db *gorm.DB
}

func NewRecordSource(db *gorm.DB) RecordSource {
	return &recordSource{db: db}
}

func (r *recordSource) FindPayrollRecords(ctx context.Context, start, end time.Time, departments []string) ([]PayrollRunRecord, error) {
	var records []PayrollRunRecord
	db := r.db.WithContext(ctx).
		Where("pay_date BETWEEN ? AND ?", start, end).
		Order("pay_date ASC, id ASC")
	if len(departments) > 0 {
		db = db.Where("department IN ?", departments)
	}
	err := db.Find(&records).Error
	return records, err
}

func (r *recordSource) FindAttendanceRecords(ctx context.Context, start, end time.Time) ([]AttendanceRecord, error) {
	var records []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("record_date BETWEEN ? AND ?", start, end).
		Order("record_date ASC, id ASC").
		Find(&records).Error
	return records, err
}

func (r *recordSource) FindComplianceRecords(ctx context.Context, start, end time.Time) ([]ComplianceRecord, error) {
	var records []ComplianceRecord
	err := r.db.WithContext(ctx).
		Where("record_date BETWEEN ? AND ?", start, end).
		Order("record_date ASC, id ASC").
		Find(&records).Error
	return records, err
}
