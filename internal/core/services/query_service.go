package services

import (
	"context"

	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/ports"
)

// QueryService serves the read side of the catalog, loans and audit log
type QueryService struct {
	uow   ports.UnitOfWork
	audit ports.AuditReader
}

// NewQueryService creates a new query service
func NewQueryService(uow ports.UnitOfWork, audit ports.AuditReader) *QueryService {
	return &QueryService{uow: uow, audit: audit}
}

// GetEmployee finds an employee by document number
func (s *QueryService) GetEmployee(ctx context.Context, documentNumber string) (domain.Employee, error) {
	var out domain.Employee
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) (err error) {
		out, err = repos.Employees().FindByDocument(ctx, documentNumber)
		return err
	})
	return out, err
}

// ListEmployees lists employees matching query, ordered by document number
func (s *QueryService) ListEmployees(ctx context.Context, query string) ([]domain.Employee, error) {
	var out []domain.Employee
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) (err error) {
		out, err = repos.Employees().List(ctx, query)
		return err
	})
	return out, err
}

// GetRadioUnit finds a radio unit by code
func (s *QueryService) GetRadioUnit(ctx context.Context, code string) (domain.RadioUnit, error) {
	var out domain.RadioUnit
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) (err error) {
		out, err = repos.RadioUnits().FindByCode(ctx, code)
		return err
	})
	return out, err
}

// ListRadioUnits lists radio units matching query, ordered by code
func (s *QueryService) ListRadioUnits(ctx context.Context, query string) ([]domain.RadioUnit, error) {
	var out []domain.RadioUnit
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) (err error) {
		out, err = repos.RadioUnits().List(ctx, query)
		return err
	})
	return out, err
}

// GetOperatorAccount finds an operator account by username
func (s *QueryService) GetOperatorAccount(ctx context.Context, username string) (domain.OperatorAccount, error) {
	var out domain.OperatorAccount
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) (err error) {
		out, err = repos.OperatorAccounts().FindByUsername(ctx, username)
		return err
	})
	return out, err
}

// ListOperatorAccounts lists operator accounts matching query, ordered by username
func (s *QueryService) ListOperatorAccounts(ctx context.Context, query string) ([]domain.OperatorAccount, error) {
	var out []domain.OperatorAccount
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) (err error) {
		out, err = repos.OperatorAccounts().List(ctx, query)
		return err
	})
	return out, err
}

// ListLoans lists loans newest first with the total before paging
func (s *QueryService) ListLoans(ctx context.Context, query ports.LoanQuery) ([]domain.Loan, int64, error) {
	var (
		out   []domain.Loan
		total int64
	)
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) (err error) {
		out, total, err = repos.Loans().List(ctx, query)
		return err
	})
	return out, total, err
}

// ListAudit lists audit events newest first with the total before paging
func (s *QueryService) ListAudit(ctx context.Context, query ports.AuditQuery) ([]domain.AdminChangeEvent, int64, error) {
	return s.audit.List(ctx, query)
}
