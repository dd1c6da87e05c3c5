// Package memory is an in-process implementation of the persistence ports.
// A unit of work runs against a private copy of the state that replaces the
// shared state only when the callback succeeds.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/ports"
)

type state struct {
	employees  map[string]domain.Employee
	radioUnits map[string]domain.RadioUnit
	accounts   map[string]domain.OperatorAccount
	loans      []domain.Loan
	nextLoanID uint
	events     []domain.AdminChangeEvent
}

func newState() state {
	return state{
		employees:  map[string]domain.Employee{},
		radioUnits: map[string]domain.RadioUnit{},
		accounts:   map[string]domain.OperatorAccount{},
		nextLoanID: 1,
	}
}

func (s state) clone() state {
	c := state{
		employees:  make(map[string]domain.Employee, len(s.employees)),
		radioUnits: make(map[string]domain.RadioUnit, len(s.radioUnits)),
		accounts:   make(map[string]domain.OperatorAccount, len(s.accounts)),
		loans:      append([]domain.Loan(nil), s.loans...),
		nextLoanID: s.nextLoanID,
		events:     append([]domain.AdminChangeEvent(nil), s.events...),
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.radioUnits {
		c.radioUnits[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	return c
}

// Store holds all entities in memory and implements ports.UnitOfWork and ports.AuditReader.
type Store struct {
	mu        sync.Mutex
	state     state
	failAudit error
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{state: newState()}
}

// FailAuditWith makes every subsequent audit append return err. A nil err restores normal behaviour.
func (s *Store) FailAuditWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAudit = err
}

// AuditEvents returns the committed audit events in append order
func (s *Store) AuditEvents() []domain.AdminChangeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AdminChangeEvent(nil), s.state.events...)
}

// Do runs fn against a copy of the state. Scopes are serialised by the store mutex.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(ctx, &repositories{state: &working, failAudit: s.failAudit}); err != nil {
		return err
	}
	s.state = working
	return nil
}

// List returns committed audit events newest first
func (s *Store) List(_ context.Context, query ports.AuditQuery) ([]domain.AdminChangeEvent, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.AdminChangeEvent
	for i := len(s.state.events) - 1; i >= 0; i-- {
		e := s.state.events[i]
		if query.Aggregate != "" && e.Aggregate != query.Aggregate {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].At.After(matched[j].At) })

	return page(matched, query.Offset, query.Limit), int64(len(matched)), nil
}

type repositories struct {
	state     *state
	failAudit error
}

func (r *repositories) Employees() ports.EmployeeRepository { return employeeRepository{r.state} }

func (r *repositories) RadioUnits() ports.RadioUnitRepository { return radioUnitRepository{r.state} }

func (r *repositories) OperatorAccounts() ports.OperatorAccountRepository {
	return operatorAccountRepository{r.state}
}

func (r *repositories) Loans() ports.LoanRepository { return loanRepository{r.state} }

func (r *repositories) AuditLog() ports.AuditLog { return auditLog{r.state, r.failAudit} }

// ============================================================
// Catalog
// ============================================================

type employeeRepository struct{ s *state }

func (r employeeRepository) FindByDocument(_ context.Context, documentNumber string) (domain.Employee, error) {
	e, ok := r.s.employees[documentNumber]
	if !ok {
		return domain.Employee{}, domain.ErrNotFound
	}
	return e, nil
}

func (r employeeRepository) List(_ context.Context, query string) ([]domain.Employee, error) {
	out := make([]domain.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		if matches(query, e.DocumentNumber, e.FullName) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocumentNumber < out[j].DocumentNumber })
	return out, nil
}

func (r employeeRepository) Create(_ context.Context, employee domain.Employee) (domain.Employee, error) {
	if _, ok := r.s.employees[employee.DocumentNumber]; ok {
		return domain.Employee{}, domain.ErrAlreadyExists
	}
	r.s.employees[employee.DocumentNumber] = employee
	return employee, nil
}

func (r employeeRepository) Update(_ context.Context, documentNumber string, changes domain.EmployeeChanges) (domain.Employee, error) {
	e, ok := r.s.employees[documentNumber]
	if !ok {
		return domain.Employee{}, domain.ErrNotFound
	}
	e = changes.Apply(e)
	r.s.employees[documentNumber] = e
	return e, nil
}

func (r employeeRepository) Delete(_ context.Context, documentNumber string) error {
	if _, ok := r.s.employees[documentNumber]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.employees, documentNumber)
	return nil
}

type radioUnitRepository struct{ s *state }

func (r radioUnitRepository) FindByCode(_ context.Context, code string) (domain.RadioUnit, error) {
	u, ok := r.s.radioUnits[code]
	if !ok {
		return domain.RadioUnit{}, domain.ErrNotFound
	}
	return u, nil
}

func (r radioUnitRepository) List(_ context.Context, query string) ([]domain.RadioUnit, error) {
	out := make([]domain.RadioUnit, 0, len(r.s.radioUnits))
	for _, u := range r.s.radioUnits {
		var desc string
		if u.Description != nil {
			desc = *u.Description
		}
		if matches(query, u.Code, desc) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r radioUnitRepository) Create(_ context.Context, unit domain.RadioUnit) (domain.RadioUnit, error) {
	if _, ok := r.s.radioUnits[unit.Code]; ok {
		return domain.RadioUnit{}, domain.ErrAlreadyExists
	}
	r.s.radioUnits[unit.Code] = unit
	return unit, nil
}

func (r radioUnitRepository) Update(_ context.Context, code string, changes domain.RadioUnitChanges) (domain.RadioUnit, error) {
	u, ok := r.s.radioUnits[code]
	if !ok {
		return domain.RadioUnit{}, domain.ErrNotFound
	}
	u = changes.Apply(u)
	r.s.radioUnits[code] = u
	return u, nil
}

func (r radioUnitRepository) Delete(_ context.Context, code string) error {
	if _, ok := r.s.radioUnits[code]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.radioUnits, code)
	return nil
}

type operatorAccountRepository struct{ s *state }

func (r operatorAccountRepository) FindByUsername(_ context.Context, username string) (domain.OperatorAccount, error) {
	a, ok := r.s.accounts[username]
	if !ok {
		return domain.OperatorAccount{}, domain.ErrNotFound
	}
	return a, nil
}

func (r operatorAccountRepository) List(_ context.Context, query string) ([]domain.OperatorAccount, error) {
	out := make([]domain.OperatorAccount, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		var key, name string
		if a.EmployeeKey != nil {
			key = *a.EmployeeKey
			name = r.s.employees[key].FullName
		}
		if matches(query, a.Username, key, name) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r operatorAccountRepository) Create(_ context.Context, account domain.OperatorAccount) (domain.OperatorAccount, error) {
	if _, ok := r.s.accounts[account.Username]; ok {
		return domain.OperatorAccount{}, domain.ErrAlreadyExists
	}
	r.s.accounts[account.Username] = account
	return account, nil
}

func (r operatorAccountRepository) Update(_ context.Context, username string, changes domain.OperatorAccountChanges) (domain.OperatorAccount, error) {
	a, ok := r.s.accounts[username]
	if !ok {
		return domain.OperatorAccount{}, domain.ErrNotFound
	}
	a = changes.Apply(a)
	r.s.accounts[username] = a
	return a, nil
}

func (r operatorAccountRepository) Delete(_ context.Context, username string) error {
	if _, ok := r.s.accounts[username]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.accounts, username)
	return nil
}

// ============================================================
// Loans
// ============================================================

type loanRepository struct{ s *state }

func (r loanRepository) FindByID(_ context.Context, id uint) (domain.Loan, error) {
	for _, l := range r.s.loans {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Loan{}, domain.ErrNotFound
}

func (r loanRepository) List(_ context.Context, query ports.LoanQuery) ([]domain.Loan, int64, error) {
	var matched []domain.Loan
	for _, l := range r.s.loans {
		if query.EmployeeKey != "" && l.EmployeeKey != query.EmployeeKey {
			continue
		}
		if query.RadioUnitCode != "" && l.RadioUnitCode != query.RadioUnitCode {
			continue
		}
		matched = append(matched, l)
	}
	sort.Slice(matched, func(i, j int) bool { return newer(matched[i], matched[j]) })

	return page(matched, query.Offset, query.Limit), int64(len(matched)), nil
}

func (r loanRepository) Create(_ context.Context, loan domain.Loan) (domain.Loan, error) {
	loan.ID = r.s.nextLoanID
	r.s.nextLoanID++
	r.s.loans = append(r.s.loans, loan)
	return loan, nil
}

func (r loanRepository) Update(_ context.Context, id uint, changes domain.LoanChanges) (domain.Loan, error) {
	for i, l := range r.s.loans {
		if l.ID == id {
			r.s.loans[i] = changes.Apply(l)
			return r.s.loans[i], nil
		}
	}
	return domain.Loan{}, fmt.Errorf("loan %d: %w", id, domain.ErrNotFound)
}

func (r loanRepository) Delete(_ context.Context, id uint) error {
	for i, l := range r.s.loans {
		if l.ID == id {
			r.s.loans = append(r.s.loans[:i], r.s.loans[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("loan %d: %w", id, domain.ErrNotFound)
}

func (r loanRepository) FindOpen(_ context.Context, binding domain.LoanBinding, key string) (domain.Loan, error) {
	var (
		found domain.Loan
		ok    bool
	)
	for _, l := range r.s.loans {
		if !l.IsOpen() || l.KeyFor(binding) != key {
			continue
		}
		if !ok || newer(l, found) {
			found, ok = l, true
		}
	}
	if !ok {
		return domain.Loan{}, domain.ErrNotFound
	}
	return found, nil
}

func (r loanRepository) MarkReturned(_ context.Context, id uint, at time.Time) (domain.Loan, error) {
	for i, l := range r.s.loans {
		if l.ID == id {
			r.s.loans[i] = l.Return(at)
			return r.s.loans[i], nil
		}
	}
	return domain.Loan{}, fmt.Errorf("loan %d: %w", id, domain.ErrNotFound)
}

// ============================================================
// Audit
// ============================================================

type auditLog struct {
	s    *state
	fail error
}

func (a auditLog) Append(_ context.Context, event domain.AdminChangeEvent) error {
	if a.fail != nil {
		return a.fail
	}
	a.s.events = append(a.s.events, event)
	return nil
}

// ============================================================
// Helpers
// ============================================================

func matches(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func newer(a, b domain.Loan) bool {
	if !a.AssignedAt.Equal(b.AssignedAt) {
		return a.AssignedAt.After(b.AssignedAt)
	}
	return a.ID > b.ID
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	if offset < 0 {
		offset = 0
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
