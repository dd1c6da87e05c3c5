package services

import (
	"log/slog"
	"time"

	"rf-loans/internal/core/domain"
)

// Option configures a service
type Option func(*options)

type options struct {
	logger *slog.Logger
	now    func() time.Time
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for successful mutations
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp audit events
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Catalog inputs

// CreateEmployeeInput for creating an employee
type CreateEmployeeInput struct {
	DocumentNumber string
	FullName       string
	Active         bool
	ActorID        uint
	Reason         string
}

// UpdateEmployeeInput for partially updating an employee
type UpdateEmployeeInput struct {
	DocumentNumber string
	Changes        domain.EmployeeChanges
	ActorID        uint
	Reason         string
}

// DeleteEmployeeInput for deleting an employee
type DeleteEmployeeInput struct {
	DocumentNumber string
	ActorID        uint
	Reason         string
}

// CreateRadioUnitInput for creating a radio unit
type CreateRadioUnitInput struct {
	Code        string
	Description *string
	Active      bool
	ActorID     uint
	Reason      string
}

// UpdateRadioUnitInput for partially updating a radio unit
type UpdateRadioUnitInput struct {
	Code    string
	Changes domain.RadioUnitChanges
	ActorID uint
	Reason  string
}

// DeleteRadioUnitInput for deleting a radio unit
type DeleteRadioUnitInput struct {
	Code    string
	ActorID uint
	Reason  string
}

// CreateOperatorAccountInput for creating an operator account
type CreateOperatorAccountInput struct {
	Username    string
	EmployeeKey *string
	Active      bool
	ActorID     uint
	Reason      string
}

// UpdateOperatorAccountInput for partially updating an operator account
type UpdateOperatorAccountInput struct {
	Username string
	Changes  domain.OperatorAccountChanges
	ActorID  uint
	Reason   string
}

// DeleteOperatorAccountInput for deleting an operator account
type DeleteOperatorAccountInput struct {
	Username string
	ActorID  uint
	Reason   string
}

// Loan inputs

// AssignLoanInput for assigning a radio unit
type AssignLoanInput struct {
	EmployeeKey      string
	RadioUnitCode    string
	OperatorUsername string
	RegisteredBy     uint
	At               time.Time
}

// ReturnLoanInput for returning a loan. Exactly one key must be non-blank.
type ReturnLoanInput struct {
	EmployeeKey      string
	OperatorUsername string
	RadioUnitCode    string
	At               time.Time
}
