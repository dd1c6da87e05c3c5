package ports

import "context"

// Repositories is the set of stores bound to one unit of work
type Repositories interface {
	Employees() EmployeeRepository
	RadioUnits() RadioUnitRepository
	OperatorAccounts() OperatorAccountRepository
	Loans() LoanRepository
	AuditLog() AuditLog
}

// UnitOfWork runs fn inside one transaction.
// A nil return commits; an error or panic rolls everything back.
// Scopes do not nest.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
