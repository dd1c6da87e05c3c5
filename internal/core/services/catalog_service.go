package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/ports"
)

// CatalogService handles employee, radio unit and operator account administration.
// Every mutation appends an audit event in the same unit of work.
type CatalogService struct {
	uow    ports.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(uow ports.UnitOfWork, opts ...Option) *CatalogService {
	o := newOptions(opts)
	return &CatalogService{
		uow:    uow,
		logger: o.logger,
		now:    o.now,
	}
}

// ============================================================
// Employee
// ============================================================

// CreateEmployee creates an employee
func (s *CatalogService) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (domain.Employee, error) {
	var created domain.Employee
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if err := absent(repos.Employees().FindByDocument(ctx, in.DocumentNumber)); err != nil {
			return fmt.Errorf("employee %s: %w", in.DocumentNumber, err)
		}

		var err error
		created, err = repos.Employees().Create(ctx, domain.Employee{
			DocumentNumber: in.DocumentNumber,
			FullName:       in.FullName,
			Active:         in.Active,
		})
		if err != nil {
			return fmt.Errorf("create employee %s: %w", in.DocumentNumber, err)
		}

		return s.appendEvent(ctx, repos, domain.AdminChangeEvent{
			Aggregate:   domain.AggregateEmployee,
			Action:      domain.ActionCreated,
			KeyRef:      created.DocumentNumber,
			ActorUserID: in.ActorID,
			After:       created.Snapshot(),
		}, in.Reason)
	})
	if err != nil {
		return domain.Employee{}, err
	}

	s.logger.Info("employee created", "document_number", created.DocumentNumber, "actor", in.ActorID)
	return created, nil
}

// UpdateEmployee applies a partial update to an employee
func (s *CatalogService) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (domain.Employee, error) {
	var updated domain.Employee
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		before, err := repos.Employees().FindByDocument(ctx, in.DocumentNumber)
		if err != nil {
			return fmt.Errorf("employee %s: %w", in.DocumentNumber, err)
		}

		updated, err = repos.Employees().Update(ctx, in.DocumentNumber, in.Changes)
		if err != nil {
			return fmt.Errorf("update employee %s: %w", in.DocumentNumber, err)
		}

		fields := in.Changes.Fields()
		return s.appendEvent(ctx, repos, domain.AdminChangeEvent{
			Aggregate:   domain.AggregateEmployee,
			Action:      domain.ActionUpdated,
			KeyRef:      in.DocumentNumber,
			ActorUserID: in.ActorID,
			Before:      before.Snapshot().Pick(fields...),
			After:       updated.Snapshot().Pick(fields...),
		}, in.Reason)
	})
	if err != nil {
		return domain.Employee{}, err
	}

	s.logger.Info("employee updated", "document_number", in.DocumentNumber, "actor", in.ActorID)
	return updated, nil
}

// DeleteEmployee hard deletes an employee
func (s *CatalogService) DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error {
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		before, err := repos.Employees().FindByDocument(ctx, in.DocumentNumber)
		if err != nil {
			return fmt.Errorf("employee %s: %w", in.DocumentNumber, err)
		}

		if err := repos.Employees().Delete(ctx, in.DocumentNumber); err != nil {
			return fmt.Errorf("delete employee %s: %w", in.DocumentNumber, err)
		}

		return s.appendEvent(ctx, repos, domain.AdminChangeEvent{
			Aggregate:   domain.AggregateEmployee,
			Action:      domain.ActionDeleted,
			KeyRef:      in.DocumentNumber,
			ActorUserID: in.ActorID,
			Before:      before.Snapshot(),
		}, in.Reason)
	})
	if err != nil {
		return err
	}

	s.logger.Info("employee deleted", "document_number", in.DocumentNumber, "actor", in.ActorID)
	return nil
}

// ============================================================
// Radio unit
// ============================================================

// CreateRadioUnit creates a radio unit
func (s *CatalogService) CreateRadioUnit(ctx context.Context, in CreateRadioUnitInput) (domain.RadioUnit, error) {
	var created domain.RadioUnit
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if err := absent(repos.RadioUnits().FindByCode(ctx, in.Code)); err != nil {
			return fmt.Errorf("radio unit %s: %w", in.Code, err)
		}

		var err error
		created, err = repos.RadioUnits().Create(ctx, domain.RadioUnit{
			Code:        in.Code,
			Description: in.Description,
			Active:      in.Active,
		})
		if err != nil {
			return fmt.Errorf("create radio unit %s: %w", in.Code, err)
		}

		return s.appendEvent(ctx, repos, domain.AdminChangeEvent{
			Aggregate:   domain.AggregateRadioUnit,
			Action:      domain.ActionCreated,
			KeyRef:      created.Code,
			ActorUserID: in.ActorID,
			After:       created.Snapshot(),
		}, in.Reason)
	})
	if err != nil {
		return domain.RadioUnit{}, err
	}

	s.logger.Info("radio unit created", "code", created.Code, "actor", in.ActorID)
	return created, nil
}

// UpdateRadioUnit applies a partial update to a radio unit
func (s *CatalogService) UpdateRadioUnit(ctx context.Context, in UpdateRadioUnitInput) (domain.RadioUnit, error) {
	var updated domain.RadioUnit
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		before, err := repos.RadioUnits().FindByCode(ctx, in.Code)
		if err != nil {
			return fmt.Errorf("radio unit %s: %w", in.Code, err)
		}

		updated, err = repos.RadioUnits().Update(ctx, in.Code, in.Changes)
		if err != nil {
			return fmt.Errorf("update radio unit %s: %w", in.Code, err)
		}

		fields := in.Changes.Fields()
		return s.appendEvent(ctx, repos, domain.AdminChangeEvent{
			Aggregate:   domain.AggregateRadioUnit,
			Action:      domain.ActionUpdated,
			KeyRef:      in.Code,
			ActorUserID: in.ActorID,
			Before:      before.Snapshot().Pick(fields...),
			After:       updated.Snapshot().Pick(fields...),
		}, in.Reason)
	})
	if err != nil {
		return domain.RadioUnit{}, err
	}

	s.logger.Info("radio unit updated", "code", in.Code, "actor", in.ActorID)
	return updated, nil
}

// DeleteRadioUnit hard deletes a radio unit
func (s *CatalogService) DeleteRadioUnit(ctx context.Context, in DeleteRadioUnitInput) error {
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		before, err := repos.RadioUnits().FindByCode(ctx, in.Code)
		if err != nil {
			return fmt.Errorf("radio unit %s: %w", in.Code, err)
		}

		if err := repos.RadioUnits().Delete(ctx, in.Code); err != nil {
			return fmt.Errorf("delete radio unit %s: %w", in.Code, err)
		}

		return s.appendEvent(ctx, repos, domain.AdminChangeEvent{
			Aggregate:   domain.AggregateRadioUnit,
			Action:      domain.ActionDeleted,
			KeyRef:      in.Code,
			ActorUserID: in.ActorID,
			Before:      before.Snapshot(),
		}, in.Reason)
	})
	if err != nil {
		return err
	}

	s.logger.Info("radio unit deleted", "code", in.Code, "actor", in.ActorID)
	return nil
}

// ============================================================
// Operator account
// ============================================================

// CreateOperatorAccount creates an operator account
func (s *CatalogService) CreateOperatorAccount(ctx context.Context, in CreateOperatorAccountInput) (domain.OperatorAccount, error) {
	var created domain.OperatorAccount
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if err := absent(repos.OperatorAccounts().FindByUsername(ctx, in.Username)); err != nil {
			return fmt.Errorf("operator account %s: %w", in.Username, err)
		}

		var err error
		created, err = repos.OperatorAccounts().Create(ctx, domain.OperatorAccount{
			Username:    in.Username,
			EmployeeKey: in.EmployeeKey,
			Active:      in.Active,
		})
		if err != nil {
			return fmt.Errorf("create operator account %s: %w", in.Username, err)
		}

		return s.appendEvent(ctx, repos, domain.AdminChangeEvent{
			Aggregate:   domain.AggregateOperatorAccount,
			Action:      domain.ActionCreated,
			KeyRef:      created.Username,
			ActorUserID: in.ActorID,
			After:       created.Snapshot(),
		}, in.Reason)
	})
	if err != nil {
		return domain.OperatorAccount{}, err
	}

	s.logger.Info("operator account created", "username", created.Username, "actor", in.ActorID)
	return created, nil
}

// UpdateOperatorAccount applies a partial update to an operator account
func (s *CatalogService) UpdateOperatorAccount(ctx context.Context, in UpdateOperatorAccountInput) (domain.OperatorAccount, error) {
	var updated domain.OperatorAccount
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		before, err := repos.OperatorAccounts().FindByUsername(ctx, in.Username)
		if err != nil {
			return fmt.Errorf("operator account %s: %w", in.Username, err)
		}

		updated, err = repos.OperatorAccounts().Update(ctx, in.Username, in.Changes)
		if err != nil {
			return fmt.Errorf("update operator account %s: %w", in.Username, err)
		}

		fields := in.Changes.Fields()
		return s.appendEvent(ctx, repos, domain.AdminChangeEvent{
			Aggregate:   domain.AggregateOperatorAccount,
			Action:      domain.ActionUpdated,
			KeyRef:      in.Username,
			ActorUserID: in.ActorID,
			Before:      before.Snapshot().Pick(fields...),
			After:       updated.Snapshot().Pick(fields...),
		}, in.Reason)
	})
	if err != nil {
		return domain.OperatorAccount{}, err
	}

	s.logger.Info("operator account updated", "username", in.Username, "actor", in.ActorID)
	return updated, nil
}

// DeleteOperatorAccount hard deletes an operator account
func (s *CatalogService) DeleteOperatorAccount(ctx context.Context, in DeleteOperatorAccountInput) error {
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		before, err := repos.OperatorAccounts().FindByUsername(ctx, in.Username)
		if err != nil {
			return fmt.Errorf("operator account %s: %w", in.Username, err)
		}

		if err := repos.OperatorAccounts().Delete(ctx, in.Username); err != nil {
			return fmt.Errorf("delete operator account %s: %w", in.Username, err)
		}

		return s.appendEvent(ctx, repos, domain.AdminChangeEvent{
			Aggregate:   domain.AggregateOperatorAccount,
			Action:      domain.ActionDeleted,
			KeyRef:      in.Username,
			ActorUserID: in.ActorID,
			Before:      before.Snapshot(),
		}, in.Reason)
	})
	if err != nil {
		return err
	}

	s.logger.Info("operator account deleted", "username", in.Username, "actor", in.ActorID)
	return nil
}

// appendEvent stamps the event and appends it through the unit of work's audit log
func (s *CatalogService) appendEvent(ctx context.Context, repos ports.Repositories, event domain.AdminChangeEvent, reason string) error {
	event.At = s.now().UTC()
	if reason != "" {
		event.Reason = &reason
	}
	if err := repos.AuditLog().Append(ctx, event); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// absent turns a lookup result into nil when the key is free
func absent[T any](_ T, err error) error {
	switch {
	case err == nil:
		return domain.ErrAlreadyExists
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}
