// Package usecases exposes the core operations as command-driven entry points
// for outer layers. Each use case forwards to a service and adds no rules.
package usecases

import (
	"context"
	"time"

	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/services"
)

// LoanService is what the loan use cases need from the service layer
type LoanService interface {
	Assign(ctx context.Context, in services.AssignLoanInput) (domain.Loan, error)
	Return(ctx context.Context, in services.ReturnLoanInput) (domain.Loan, error)
	ReturnByRadioUnit(ctx context.Context, in services.ReturnLoanInput) (domain.Loan, error)
	ReturnByEmployee(ctx context.Context, in services.ReturnLoanInput) (domain.Loan, error)
	ReturnByOperatorAccount(ctx context.Context, in services.ReturnLoanInput) (domain.Loan, error)
}

// AssignRadio asks for a radio unit to be loaned
type AssignRadio struct {
	EmployeeKey      string
	RadioUnitCode    string
	OperatorUsername string
	RegisteredBy     uint
	At               time.Time
}

// ReturnLoan returns an open loan found through exactly one non-blank key
type ReturnLoan struct {
	EmployeeKey      string
	OperatorUsername string
	RadioUnitCode    string
	At               time.Time
}

// ReturnByRadioUnit returns the open loan of a radio unit
type ReturnByRadioUnit struct {
	RadioUnitCode string
	At            time.Time
}

// ReturnByEmployee returns the open loan of an employee
type ReturnByEmployee struct {
	EmployeeKey string
	At          time.Time
}

// ReturnByOperatorAccount returns the open loan of an operator account
type ReturnByOperatorAccount struct {
	OperatorUsername string
	At               time.Time
}

// Loans groups the loan use cases
type Loans struct {
	service LoanService
}

// NewLoans creates the loan use cases
func NewLoans(service LoanService) *Loans {
	return &Loans{service: service}
}

// Assign executes an AssignRadio command
func (u *Loans) Assign(ctx context.Context, cmd AssignRadio) (domain.Loan, error) {
	return u.service.Assign(ctx, services.AssignLoanInput{
		EmployeeKey:      cmd.EmployeeKey,
		RadioUnitCode:    cmd.RadioUnitCode,
		OperatorUsername: cmd.OperatorUsername,
		RegisteredBy:     cmd.RegisteredBy,
		At:               cmd.At,
	})
}

// Return executes a ReturnLoan command
func (u *Loans) Return(ctx context.Context, cmd ReturnLoan) (domain.Loan, error) {
	return u.service.Return(ctx, services.ReturnLoanInput(cmd))
}

// ReturnByRadioUnit executes a ReturnByRadioUnit command
func (u *Loans) ReturnByRadioUnit(ctx context.Context, cmd ReturnByRadioUnit) (domain.Loan, error) {
	return u.service.ReturnByRadioUnit(ctx, services.ReturnLoanInput{RadioUnitCode: cmd.RadioUnitCode, At: cmd.At})
}

// ReturnByEmployee executes a ReturnByEmployee command
func (u *Loans) ReturnByEmployee(ctx context.Context, cmd ReturnByEmployee) (domain.Loan, error) {
	return u.service.ReturnByEmployee(ctx, services.ReturnLoanInput{EmployeeKey: cmd.EmployeeKey, At: cmd.At})
}

// ReturnByOperatorAccount executes a ReturnByOperatorAccount command
func (u *Loans) ReturnByOperatorAccount(ctx context.Context, cmd ReturnByOperatorAccount) (domain.Loan, error) {
	return u.service.ReturnByOperatorAccount(ctx, services.ReturnLoanInput{OperatorUsername: cmd.OperatorUsername, At: cmd.At})
}
