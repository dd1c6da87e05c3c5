package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/ports"
)

// LoanService handles radio unit assignment and return
type LoanService struct {
	uow    ports.UnitOfWork
	logger *slog.Logger
}

// NewLoanService creates a new loan service
func NewLoanService(uow ports.UnitOfWork, opts ...Option) *LoanService {
	o := newOptions(opts)
	return &LoanService{
		uow:    uow,
		logger: o.logger,
	}
}

// Assign creates an open loan binding an employee, a radio unit and an operator account.
//
// Checks run in a fixed order and the first failure wins:
// employee, radio unit and operator account must exist and be active, then no open loan may
// exist for the employee, the operator account or the radio unit, in that order.
func (s *LoanService) Assign(ctx context.Context, in AssignLoanInput) (domain.Loan, error) {
	var created domain.Loan
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		employee, err := repos.Employees().FindByDocument(ctx, in.EmployeeKey)
		if err != nil {
			return fmt.Errorf("employee %s: %w", in.EmployeeKey, err)
		}
		if !employee.Active {
			return fmt.Errorf("employee %s: %w", in.EmployeeKey, domain.ErrInactive)
		}

		unit, err := repos.RadioUnits().FindByCode(ctx, in.RadioUnitCode)
		if err != nil {
			return fmt.Errorf("radio unit %s: %w", in.RadioUnitCode, err)
		}
		if !unit.Active {
			return fmt.Errorf("radio unit %s: %w", in.RadioUnitCode, domain.ErrInactive)
		}

		account, err := repos.OperatorAccounts().FindByUsername(ctx, in.OperatorUsername)
		if err != nil {
			return fmt.Errorf("operator account %s: %w", in.OperatorUsername, err)
		}
		if !account.Active {
			return fmt.Errorf("operator account %s: %w", in.OperatorUsername, domain.ErrInactive)
		}

		for _, b := range []struct {
			binding domain.LoanBinding
			key     string
		}{
			{domain.ByEmployee, in.EmployeeKey},
			{domain.ByOperatorAccount, in.OperatorUsername},
			{domain.ByRadioUnit, in.RadioUnitCode},
		} {
			if err := s.ensureNoOpenLoan(ctx, repos.Loans(), b.binding, b.key); err != nil {
				return err
			}
		}

		shift, err := domain.ClassifyShift(in.At)
		if err != nil {
			return err
		}

		created, err = repos.Loans().Create(ctx, domain.Loan{
			EmployeeKey:      employee.DocumentNumber,
			EmployeeName:     employee.FullName,
			OperatorUsername: account.Username,
			RadioUnitCode:    unit.Code,
			AssignedAt:       in.At,
			Shift:            shift,
			State:            domain.LoanAssigned,
			RegisteredBy:     in.RegisteredBy,
		})
		if err != nil {
			return fmt.Errorf("create loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Loan{}, err
	}

	s.logger.Info("loan assigned",
		"loan_id", created.ID,
		"employee", created.EmployeeKey,
		"radio_unit", created.RadioUnitCode,
		"operator", created.OperatorUsername,
		"shift", created.Shift.String(),
	)
	return created, nil
}

func (s *LoanService) ensureNoOpenLoan(ctx context.Context, loans ports.LoanRepository, binding domain.LoanBinding, key string) error {
	open, err := loans.FindOpen(ctx, binding, key)
	switch {
	case err == nil:
		return fmt.Errorf("%s %s already has open loan %d: %w", binding, key, open.ID, domain.ErrBusinessRule)
	case domain.KindOf(err) == domain.KindNotFound:
		return nil
	default:
		return fmt.Errorf("find open loan by %s: %w", binding, err)
	}
}

// Return closes the open loan found through exactly one of the input keys
func (s *LoanService) Return(ctx context.Context, in ReturnLoanInput) (domain.Loan, error) {
	binding, key, err := selectBinding(in)
	if err != nil {
		return domain.Loan{}, err
	}
	if in.At.IsZero() {
		return domain.Loan{}, fmt.Errorf("a return timestamp is required: %w", domain.ErrInvalidInput)
	}

	var returned domain.Loan
	err = s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		open, err := repos.Loans().FindOpen(ctx, binding, key)
		if err != nil {
			return fmt.Errorf("no open loan for %s %s: %w", binding, key, err)
		}

		returned, err = repos.Loans().MarkReturned(ctx, open.ID, in.At)
		if err != nil {
			return fmt.Errorf("return loan %d: %w", open.ID, err)
		}
		return nil
	})
	if err != nil {
		return domain.Loan{}, err
	}

	s.logger.Info("loan returned", "loan_id", returned.ID, "by", binding.String(), "key", key)
	return returned, nil
}

// ReturnByRadioUnit returns the open loan of a radio unit
func (s *LoanService) ReturnByRadioUnit(ctx context.Context, in ReturnLoanInput) (domain.Loan, error) {
	return s.Return(ctx, ReturnLoanInput{RadioUnitCode: in.RadioUnitCode, At: in.At})
}

// ReturnByEmployee returns the open loan of an employee
func (s *LoanService) ReturnByEmployee(ctx context.Context, in ReturnLoanInput) (domain.Loan, error) {
	return s.Return(ctx, ReturnLoanInput{EmployeeKey: in.EmployeeKey, At: in.At})
}

// ReturnByOperatorAccount returns the open loan of an operator account
func (s *LoanService) ReturnByOperatorAccount(ctx context.Context, in ReturnLoanInput) (domain.Loan, error) {
	return s.Return(ctx, ReturnLoanInput{OperatorUsername: in.OperatorUsername, At: in.At})
}

// selectBinding picks the single non-blank key of a return request
func selectBinding(in ReturnLoanInput) (domain.LoanBinding, string, error) {
	var (
		binding domain.LoanBinding
		key     string
		count   int
	)
	if k := strings.TrimSpace(in.RadioUnitCode); k != "" {
		binding, key = domain.ByRadioUnit, k
		count++
	}
	if k := strings.TrimSpace(in.EmployeeKey); k != "" {
		binding, key = domain.ByEmployee, k
		count++
	}
	if k := strings.TrimSpace(in.OperatorUsername); k != "" {
		binding, key = domain.ByOperatorAccount, k
		count++
	}
	if count != 1 {
		return 0, "", fmt.Errorf("exactly one of radio unit, employee or operator account is required, got %d: %w", count, domain.ErrBusinessRule)
	}
	return binding, key, nil
}
