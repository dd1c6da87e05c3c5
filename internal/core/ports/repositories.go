// Package ports declares the contracts the core services depend on.
// Persistence adapters implement them; services never see a concrete store.
package ports

import (
	"context"
	"time"

	"rf-loans/internal/core/domain"
)

// EmployeeRepository defines employee data access
type EmployeeRepository interface {
	FindByDocument(ctx context.Context, documentNumber string) (domain.Employee, error)
	List(ctx context.Context, query string) ([]domain.Employee, error)
	Create(ctx context.Context, employee domain.Employee) (domain.Employee, error)
	Update(ctx context.Context, documentNumber string, changes domain.EmployeeChanges) (domain.Employee, error)
	Delete(ctx context.Context, documentNumber string) error
}

// RadioUnitRepository defines radio unit data access
type RadioUnitRepository interface {
	FindByCode(ctx context.Context, code string) (domain.RadioUnit, error)
	List(ctx context.Context, query string) ([]domain.RadioUnit, error)
	Create(ctx context.Context, unit domain.RadioUnit) (domain.RadioUnit, error)
	Update(ctx context.Context, code string, changes domain.RadioUnitChanges) (domain.RadioUnit, error)
	Delete(ctx context.Context, code string) error
}

// OperatorAccountRepository defines operator account data access
type OperatorAccountRepository interface {
	FindByUsername(ctx context.Context, username string) (domain.OperatorAccount, error)
	List(ctx context.Context, query string) ([]domain.OperatorAccount, error)
	Create(ctx context.Context, account domain.OperatorAccount) (domain.OperatorAccount, error)
	Update(ctx context.Context, username string, changes domain.OperatorAccountChanges) (domain.OperatorAccount, error)
	Delete(ctx context.Context, username string) error
}

// LoanQuery filters a loan listing. Empty fields do not filter.
type LoanQuery struct {
	EmployeeKey   string
	RadioUnitCode string
	Offset        int
	Limit         int
}

// LoanRepository defines loan data access.
// FindOpen returns the most recent open loan for the key under the given binding.
// Update and Delete fail with domain.ErrNotFound when the id does not resolve.
type LoanRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Loan, error)
	List(ctx context.Context, query LoanQuery) ([]domain.Loan, int64, error)
	Create(ctx context.Context, loan domain.Loan) (domain.Loan, error)
	Update(ctx context.Context, id uint, changes domain.LoanChanges) (domain.Loan, error)
	Delete(ctx context.Context, id uint) error
	FindOpen(ctx context.Context, binding domain.LoanBinding, key string) (domain.Loan, error)
	MarkReturned(ctx context.Context, id uint, at time.Time) (domain.Loan, error)
}
