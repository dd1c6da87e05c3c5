package usecases

import (
	"context"

	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/services"
)

// CatalogService is what the catalog use cases need from the service layer
type CatalogService interface {
	CreateEmployee(ctx context.Context, in services.CreateEmployeeInput) (domain.Employee, error)
	UpdateEmployee(ctx context.Context, in services.UpdateEmployeeInput) (domain.Employee, error)
	DeleteEmployee(ctx context.Context, in services.DeleteEmployeeInput) error
	CreateRadioUnit(ctx context.Context, in services.CreateRadioUnitInput) (domain.RadioUnit, error)
	UpdateRadioUnit(ctx context.Context, in services.UpdateRadioUnitInput) (domain.RadioUnit, error)
	DeleteRadioUnit(ctx context.Context, in services.DeleteRadioUnitInput) error
	CreateOperatorAccount(ctx context.Context, in services.CreateOperatorAccountInput) (domain.OperatorAccount, error)
	UpdateOperatorAccount(ctx context.Context, in services.UpdateOperatorAccountInput) (domain.OperatorAccount, error)
	DeleteOperatorAccount(ctx context.Context, in services.DeleteOperatorAccountInput) error
}

// Commands. Reason is optional; an empty string records no reason.

type CreateEmployee struct {
	DocumentNumber string
	FullName       string
	Active         bool
	ActorID        uint
	Reason         string
}

type UpdateEmployee struct {
	DocumentNumber string
	Changes        domain.EmployeeChanges
	ActorID        uint
	Reason         string
}

type DeleteEmployee struct {
	DocumentNumber string
	ActorID        uint
	Reason         string
}

type CreateRadioUnit struct {
	Code        string
	Description *string
	Active      bool
	ActorID     uint
	Reason      string
}

type UpdateRadioUnit struct {
	Code    string
	Changes domain.RadioUnitChanges
	ActorID uint
	Reason  string
}

type DeleteRadioUnit struct {
	Code    string
	ActorID uint
	Reason  string
}

type CreateOperatorAccount struct {
	Username    string
	EmployeeKey *string
	Active      bool
	ActorID     uint
	Reason      string
}

type UpdateOperatorAccount struct {
	Username string
	Changes  domain.OperatorAccountChanges
	ActorID  uint
	Reason   string
}

type DeleteOperatorAccount struct {
	Username string
	ActorID  uint
	Reason   string
}

// Catalog groups the catalog administration use cases
type Catalog struct {
	service CatalogService
}

// NewCatalog creates the catalog use cases
func NewCatalog(service CatalogService) *Catalog {
	return &Catalog{service: service}
}

func (u *Catalog) CreateEmployee(ctx context.Context, cmd CreateEmployee) (domain.Employee, error) {
	return u.service.CreateEmployee(ctx, services.CreateEmployeeInput(cmd))
}

func (u *Catalog) UpdateEmployee(ctx context.Context, cmd UpdateEmployee) (domain.Employee, error) {
	return u.service.UpdateEmployee(ctx, services.UpdateEmployeeInput(cmd))
}

func (u *Catalog) DeleteEmployee(ctx context.Context, cmd DeleteEmployee) error {
	return u.service.DeleteEmployee(ctx, services.DeleteEmployeeInput(cmd))
}

func (u *Catalog) CreateRadioUnit(ctx context.Context, cmd CreateRadioUnit) (domain.RadioUnit, error) {
	return u.service.CreateRadioUnit(ctx, services.CreateRadioUnitInput(cmd))
}

func (u *Catalog) UpdateRadioUnit(ctx context.Context, cmd UpdateRadioUnit) (domain.RadioUnit, error) {
	return u.service.UpdateRadioUnit(ctx, services.UpdateRadioUnitInput(cmd))
}

func (u *Catalog) DeleteRadioUnit(ctx context.Context, cmd DeleteRadioUnit) error {
	return u.service.DeleteRadioUnit(ctx, services.DeleteRadioUnitInput(cmd))
}

func (u *Catalog) CreateOperatorAccount(ctx context.Context, cmd CreateOperatorAccount) (domain.OperatorAccount, error) {
	return u.service.CreateOperatorAccount(ctx, services.CreateOperatorAccountInput(cmd))
}

func (u *Catalog) UpdateOperatorAccount(ctx context.Context, cmd UpdateOperatorAccount) (domain.OperatorAccount, error) {
	return u.service.UpdateOperatorAccount(ctx, services.UpdateOperatorAccountInput(cmd))
}

func (u *Catalog) DeleteOperatorAccount(ctx context.Context, cmd DeleteOperatorAccount) error {
	return u.service.DeleteOperatorAccount(ctx, services.DeleteOperatorAccountInput(cmd))
}
