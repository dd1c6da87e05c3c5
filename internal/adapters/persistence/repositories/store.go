package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rf-loans/internal/adapters/persistence/models"
	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/ports"
)

// Store binds every repository to one gorm handle, usually a transaction
type Store struct {
	db *gorm.DB
}

// NewStore creates repositories over db
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Employees() ports.EmployeeRepository { return &employeeRepository{db: s.db} }

func (s *Store) RadioUnits() ports.RadioUnitRepository { return &radioUnitRepository{db: s.db} }

func (s *Store) OperatorAccounts() ports.OperatorAccountRepository {
	return &operatorAccountRepository{db: s.db}
}

func (s *Store) Loans() ports.LoanRepository { return &loanRepository{db: s.db} }

func (s *Store) AuditLog() ports.AuditLog { return &auditRepository{db: s.db} }

// likePattern builds a case-insensitive substring pattern
func likePattern(query string) string {
	return "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
}

// ============================================================
// Employee
// ============================================================

type employeeRepository struct {
	db *gorm.DB
}

// FindByDocument gets an employee by document number
func (r *employeeRepository) FindByDocument(ctx context.Context, documentNumber string) (domain.Employee, error) {
	var m models.Employee
	if err := r.db.WithContext(ctx).Where("document_number = ?", documentNumber).First(&m).Error; err != nil {
		return domain.Employee{}, translateError(err)
	}
	return m.ToDomain(), nil
}

// List lists employees whose document number or name contains query
func (r *employeeRepository) List(ctx context.Context, query string) ([]domain.Employee, error) {
	db := r.db.WithContext(ctx).Order("document_number")
	if strings.TrimSpace(query) != "" {
		p := likePattern(query)
		db = db.Where("LOWER(document_number) LIKE ? OR LOWER(full_name) LIKE ?", p, p)
	}

	var rows []models.Employee
	if err := db.Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	out := make([]domain.Employee, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// Create inserts an employee
func (r *employeeRepository) Create(ctx context.Context, employee domain.Employee) (domain.Employee, error) {
	m := models.EmployeeFromDomain(employee)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return domain.Employee{}, translateError(err)
	}
	return m.ToDomain(), nil
}

// Update applies a partial update
func (r *employeeRepository) Update(ctx context.Context, documentNumber string, changes domain.EmployeeChanges) (domain.Employee, error) {
	current, err := r.FindByDocument(ctx, documentNumber)
	if err != nil {
		return domain.Employee{}, err
	}
	updated := changes.Apply(current)

	err = r.db.WithContext(ctx).Model(&models.Employee{}).
		Where("document_number = ?", documentNumber).
		Updates(map[string]any{"full_name": updated.FullName, "active": updated.Active}).Error
	if err != nil {
		return domain.Employee{}, translateError(err)
	}
	return updated, nil
}

// Delete hard deletes an employee
func (r *employeeRepository) Delete(ctx context.Context, documentNumber string) error {
	res := r.db.WithContext(ctx).Where("document_number = ?", documentNumber).Delete(&models.Employee{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ============================================================
// Radio unit
// ============================================================

type radioUnitRepository struct {
	db *gorm.DB
}

// FindByCode gets a radio unit by code
func (r *radioUnitRepository) FindByCode(ctx context.Context, code string) (domain.RadioUnit, error) {
	var m models.RadioUnit
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		return domain.RadioUnit{}, translateError(err)
	}
	return m.ToDomain(), nil
}

// List lists radio units whose code or description contains query
func (r *radioUnitRepository) List(ctx context.Context, query string) ([]domain.RadioUnit, error) {
	db := r.db.WithContext(ctx).Order("code")
	if strings.TrimSpace(query) != "" {
		p := likePattern(query)
		db = db.Where("LOWER(code) LIKE ? OR LOWER(description) LIKE ?", p, p)
	}

	var rows []models.RadioUnit
	if err := db.Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	out := make([]domain.RadioUnit, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// Create inserts a radio unit
func (r *radioUnitRepository) Create(ctx context.Context, unit domain.RadioUnit) (domain.RadioUnit, error) {
	m := models.RadioUnitFromDomain(unit)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return domain.RadioUnit{}, translateError(err)
	}
	return m.ToDomain(), nil
}

// Update applies a partial update
func (r *radioUnitRepository) Update(ctx context.Context, code string, changes domain.RadioUnitChanges) (domain.RadioUnit, error) {
	current, err := r.FindByCode(ctx, code)
	if err != nil {
		return domain.RadioUnit{}, err
	}
	updated := changes.Apply(current)

	err = r.db.WithContext(ctx).Model(&models.RadioUnit{}).
		Where("code = ?", code).
		Updates(map[string]any{"description": updated.Description, "active": updated.Active}).Error
	if err != nil {
		return domain.RadioUnit{}, translateError(err)
	}
	return updated, nil
}

// Delete hard deletes a radio unit
func (r *radioUnitRepository) Delete(ctx context.Context, code string) error {
	res := r.db.WithContext(ctx).Where("code = ?", code).Delete(&models.RadioUnit{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ============================================================
// Operator account
// ============================================================

type operatorAccountRepository struct {
	db *gorm.DB
}

// FindByUsername gets an operator account by username
func (r *operatorAccountRepository) FindByUsername(ctx context.Context, username string) (domain.OperatorAccount, error) {
	var m models.OperatorAccount
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return domain.OperatorAccount{}, translateError(err)
	}
	return m.ToDomain(), nil
}

// List lists operator accounts whose username, linked employee key or linked employee name contains query
func (r *operatorAccountRepository) List(ctx context.Context, query string) ([]domain.OperatorAccount, error) {
	db := r.db.WithContext(ctx).Model(&models.OperatorAccount{}).Order("operator_accounts.username")
	if strings.TrimSpace(query) != "" {
		p := likePattern(query)
		db = db.Joins("LEFT JOIN employees ON employees.document_number = operator_accounts.employee_key").
			Where("LOWER(operator_accounts.username) LIKE ? OR LOWER(operator_accounts.employee_key) LIKE ? OR LOWER(employees.full_name) LIKE ?", p, p, p)
	}

	var rows []models.OperatorAccount
	if err := db.Select("operator_accounts.*").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	out := make([]domain.OperatorAccount, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// Create inserts an operator account
func (r *operatorAccountRepository) Create(ctx context.Context, account domain.OperatorAccount) (domain.OperatorAccount, error) {
	m := models.OperatorAccountFromDomain(account)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return domain.OperatorAccount{}, translateError(err)
	}
	return m.ToDomain(), nil
}

// Update applies a partial update
func (r *operatorAccountRepository) Update(ctx context.Context, username string, changes domain.OperatorAccountChanges) (domain.OperatorAccount, error) {
	current, err := r.FindByUsername(ctx, username)
	if err != nil {
		return domain.OperatorAccount{}, err
	}
	updated := changes.Apply(current)

	err = r.db.WithContext(ctx).Model(&models.OperatorAccount{}).
		Where("username = ?", username).
		Updates(map[string]any{"employee_key": updated.EmployeeKey, "active": updated.Active}).Error
	if err != nil {
		return domain.OperatorAccount{}, translateError(err)
	}
	return updated, nil
}

// Delete hard deletes an operator account
func (r *operatorAccountRepository) Delete(ctx context.Context, username string) error {
	res := r.db.WithContext(ctx).Where("username = ?", username).Delete(&models.OperatorAccount{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ============================================================
// Loan
// ============================================================

type loanRepository struct {
	db *gorm.DB
}

// FindByID gets a loan by id
func (r *loanRepository) FindByID(ctx context.Context, id uint) (domain.Loan, error) {
	var m models.Loan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return domain.Loan{}, translateError(err)
	}
	return m.ToDomain()
}

// List lists loans newest first with total count
func (r *loanRepository) List(ctx context.Context, query ports.LoanQuery) ([]domain.Loan, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if query.EmployeeKey != "" {
			db = db.Where("employee_key = ?", query.EmployeeKey)
		}
		if query.RadioUnitCode != "" {
			db = db.Where("radio_unit_code = ?", query.RadioUnitCode)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Loan{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	db := r.db.WithContext(ctx).Scopes(filter).Order("assigned_at DESC, id DESC").Offset(query.Offset)
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}

	var rows []models.Loan
	if err := db.Find(&rows).Error; err != nil {
		return nil, 0, translateError(err)
	}

	out := make([]domain.Loan, 0, len(rows))
	for i := range rows {
		l, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, nil
}

// Create inserts a loan and returns it with its assigned id
func (r *loanRepository) Create(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	m := models.LoanFromDomain(loan)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return domain.Loan{}, translateError(err)
	}
	loan.ID = m.ID
	return loan, nil
}

// Update applies a corrective update
func (r *loanRepository) Update(ctx context.Context, id uint, changes domain.LoanChanges) (domain.Loan, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("loan %d: %w", id, err)
	}
	updated := changes.Apply(current)

	err = r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("id = ?", id).
		Updates(map[string]any{"employee_name": updated.EmployeeName, "registered_by": updated.RegisteredBy}).Error
	if err != nil {
		return domain.Loan{}, translateError(err)
	}
	return updated, nil
}

// Delete hard deletes a loan
func (r *loanRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Loan{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("loan %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// FindOpen gets the most recent open loan for key under binding
func (r *loanRepository) FindOpen(ctx context.Context, binding domain.LoanBinding, key string) (domain.Loan, error) {
	column, err := bindingColumn(binding)
	if err != nil {
		return domain.Loan{}, err
	}

	var m models.Loan
	err = r.db.WithContext(ctx).
		Where(column+" = ? AND state = ?", key, domain.LoanAssigned.String()).
		Order("assigned_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		return domain.Loan{}, translateError(err)
	}
	return m.ToDomain()
}

// MarkReturned closes a loan at the given time
func (r *loanRepository) MarkReturned(ctx context.Context, id uint, at time.Time) (domain.Loan, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("loan %d: %w", id, err)
	}
	returned := current.Return(at)

	err = r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("id = ?", id).
		Updates(map[string]any{"state": returned.State.String(), "returned_at": returned.ReturnedAt}).Error
	if err != nil {
		return domain.Loan{}, translateError(err)
	}
	return returned, nil
}

func bindingColumn(b domain.LoanBinding) (string, error) {
	switch b {
	case domain.ByEmployee:
		return "employee_key", nil
	case domain.ByOperatorAccount:
		return "operator_username", nil
	case domain.ByRadioUnit:
		return "radio_unit_code", nil
	default:
		return "", fmt.Errorf("unknown loan binding %d: %w", uint8(b), domain.ErrInvalidInput)
	}
}

// ============================================================
// Audit
// ============================================================

type auditRepository struct {
	db *gorm.DB
}

// Append inserts an audit entry under a fresh event id
func (r *auditRepository) Append(ctx context.Context, event domain.AdminChangeEvent) error {
	entry, err := models.AuditEntryFromDomain(uuid.NewString(), event)
	if err != nil {
		return err
	}
	return translateError(r.db.WithContext(ctx).Create(entry).Error)
}

// AuditReader lists committed audit entries outside any unit of work
type AuditReader struct {
	db *gorm.DB
}

// NewAuditReader creates a new audit reader
func NewAuditReader(db *gorm.DB) *AuditReader {
	return &AuditReader{db: db}
}

// List lists audit events newest first with total count
func (r *AuditReader) List(ctx context.Context, query ports.AuditQuery) ([]domain.AdminChangeEvent, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if query.Aggregate != "" {
			db = db.Where("aggregate = ?", string(query.Aggregate))
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.AuditEntry{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	db := r.db.WithContext(ctx).Scopes(filter).Order("occurred_at DESC, id DESC").Offset(query.Offset)
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}

	var rows []models.AuditEntry
	if err := db.Find(&rows).Error; err != nil {
		return nil, 0, translateError(err)
	}

	out := make([]domain.AdminChangeEvent, 0, len(rows))
	for i := range rows {
		e, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, nil
}
