package models

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"gorm.io/gorm"

	"rf-loans/internal/core/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ============================================================
// Catalog tables
// ============================================================

// Employee represents employees table
type Employee struct {
	DocumentNumber string    `gorm:"primaryKey;size:15" json:"document_number"`
	FullName       string    `gorm:"size:150;not null;index" json:"full_name"`
	Active         bool      `gorm:"not null" json:"active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) ToDomain() domain.Employee {
	return domain.Employee{
		DocumentNumber: e.DocumentNumber,
		FullName:       e.FullName,
		Active:         e.Active,
	}
}

func EmployeeFromDomain(e domain.Employee) *Employee {
	return &Employee{
		DocumentNumber: e.DocumentNumber,
		FullName:       e.FullName,
		Active:         e.Active,
	}
}

// RadioUnit represents radio_units table
type RadioUnit struct {
	Code        string    `gorm:"primaryKey;size:25" json:"code"`
	Description *string   `gorm:"size:255" json:"description"`
	Active      bool      `gorm:"not null" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RadioUnit) TableName() string {
	return "radio_units"
}

func (r *RadioUnit) ToDomain() domain.RadioUnit {
	return domain.RadioUnit{
		Code:        r.Code,
		Description: r.Description,
		Active:      r.Active,
	}
}

func RadioUnitFromDomain(r domain.RadioUnit) *RadioUnit {
	return &RadioUnit{
		Code:        r.Code,
		Description: r.Description,
		Active:      r.Active,
	}
}

// OperatorAccount represents operator_accounts table.
// EmployeeKey is a loose reference and carries no foreign key.
type OperatorAccount struct {
	Username    string    `gorm:"primaryKey;size:50" json:"username"`
	EmployeeKey *string   `gorm:"size:15;index" json:"employee_key"`
	Active      bool      `gorm:"not null" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OperatorAccount) TableName() string {
	return "operator_accounts"
}

func (a *OperatorAccount) ToDomain() domain.OperatorAccount {
	return domain.OperatorAccount{
		Username:    a.Username,
		EmployeeKey: a.EmployeeKey,
		Active:      a.Active,
	}
}

func OperatorAccountFromDomain(a domain.OperatorAccount) *OperatorAccount {
	return &OperatorAccount{
		Username:    a.Username,
		EmployeeKey: a.EmployeeKey,
		Active:      a.Active,
	}
}

// ============================================================
// Loans
// ============================================================

// Loan represents loans table
type Loan struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	EmployeeKey      string     `gorm:"size:15;not null;index:idx_loans_employee_state,priority:1" json:"employee_key"`
	EmployeeName     string     `gorm:"size:150;not null" json:"employee_name"`
	OperatorUsername string     `gorm:"size:50;not null;index:idx_loans_operator_state,priority:1" json:"operator_username"`
	RadioUnitCode    string     `gorm:"size:25;not null;index:idx_loans_radio_state,priority:1" json:"radio_unit_code"`
	AssignedAt       time.Time  `gorm:"not null;index" json:"assigned_at"`
	Shift            string     `gorm:"size:40;not null" json:"shift"`
	State            string     `gorm:"size:10;not null;index:idx_loans_employee_state,priority:2;index:idx_loans_operator_state,priority:2;index:idx_loans_radio_state,priority:2" json:"state"`
	ReturnedAt       *time.Time `json:"returned_at"`
	RegisteredBy     uint       `gorm:"not null" json:"registered_by"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) ToDomain() (domain.Loan, error) {
	shift, err := domain.ParseShift(l.Shift)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("loan %d: %w", l.ID, err)
	}
	state, err := domain.ParseLoanState(l.State)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("loan %d: %w", l.ID, err)
	}
	return domain.Loan{
		ID:               l.ID,
		EmployeeKey:      l.EmployeeKey,
		EmployeeName:     l.EmployeeName,
		OperatorUsername: l.OperatorUsername,
		RadioUnitCode:    l.RadioUnitCode,
		AssignedAt:       l.AssignedAt,
		Shift:            shift,
		State:            state,
		ReturnedAt:       l.ReturnedAt,
		RegisteredBy:     l.RegisteredBy,
	}, nil
}

func LoanFromDomain(l domain.Loan) *Loan {
	return &Loan{
		ID:               l.ID,
		EmployeeKey:      l.EmployeeKey,
		EmployeeName:     l.EmployeeName,
		OperatorUsername: l.OperatorUsername,
		RadioUnitCode:    l.RadioUnitCode,
		AssignedAt:       l.AssignedAt,
		Shift:            l.Shift.String(),
		State:            l.State.String(),
		ReturnedAt:       l.ReturnedAt,
		RegisteredBy:     l.RegisteredBy,
	}
}

// ============================================================
// Audit
// ============================================================

// AuditEntry represents admin_audit_log table. Rows are only ever inserted.
type AuditEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventID     string    `gorm:"size:36;not null;uniqueIndex" json:"event_id"`
	Aggregate   string    `gorm:"size:20;not null;index:idx_audit_aggregate_at,priority:1" json:"aggregate"`
	Action      string    `gorm:"size:10;not null" json:"action"`
	KeyRef      string    `gorm:"size:50;not null;index" json:"key_ref"`
	At          time.Time `gorm:"column:occurred_at;not null;index:idx_audit_aggregate_at,priority:2" json:"at"`
	ActorUserID uint      `gorm:"not null" json:"actor_user_id"`
	Before      *string   `gorm:"type:text" json:"before"`
	After       *string   `gorm:"type:text" json:"after"`
	Reason      *string   `gorm:"size:255" json:"reason"`
}

func (AuditEntry) TableName() string {
	return "admin_audit_log"
}

// AuditEntryFromDomain encodes an event for storage under the given event id
func AuditEntryFromDomain(eventID string, e domain.AdminChangeEvent) (*AuditEntry, error) {
	before, err := encodeSnapshot(e.Before)
	if err != nil {
		return nil, fmt.Errorf("encode before snapshot: %w", err)
	}
	after, err := encodeSnapshot(e.After)
	if err != nil {
		return nil, fmt.Errorf("encode after snapshot: %w", err)
	}
	return &AuditEntry{
		EventID:     eventID,
		Aggregate:   string(e.Aggregate),
		Action:      string(e.Action),
		KeyRef:      e.KeyRef,
		At:          e.At.UTC(),
		ActorUserID: e.ActorUserID,
		Before:      before,
		After:       after,
		Reason:      e.Reason,
	}, nil
}

func (a *AuditEntry) ToDomain() (domain.AdminChangeEvent, error) {
	before, err := decodeSnapshot(a.Before)
	if err != nil {
		return domain.AdminChangeEvent{}, fmt.Errorf("audit %s before: %w", a.EventID, err)
	}
	after, err := decodeSnapshot(a.After)
	if err != nil {
		return domain.AdminChangeEvent{}, fmt.Errorf("audit %s after: %w", a.EventID, err)
	}
	return domain.AdminChangeEvent{
		Aggregate:   domain.Aggregate(a.Aggregate),
		Action:      domain.Action(a.Action),
		KeyRef:      a.KeyRef,
		At:          a.At.UTC(),
		ActorUserID: a.ActorUserID,
		Before:      before,
		After:       after,
		Reason:      a.Reason,
	}, nil
}

func encodeSnapshot(s domain.Snapshot) (*string, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	out := string(b)
	return &out, nil
}

func decodeSnapshot(raw *string) (domain.Snapshot, error) {
	if raw == nil {
		return nil, nil
	}
	s := domain.Snapshot{}
	if err := json.UnmarshalFromString(*raw, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// AutoMigrate creates or updates every table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Employee{},
		&RadioUnit{},
		&OperatorAccount{},
		&Loan{},
		&AuditEntry{},
	)
}
