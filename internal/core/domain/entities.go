package domain

import (
	"fmt"
	"time"
)

// Employee represents a person who can receive radio loans
type Employee struct {
	DocumentNumber string
	FullName       string
	Active         bool
}

// Snapshot returns every audited field of the employee
func (e Employee) Snapshot() Snapshot {
	return Snapshot{
		"document_number": e.DocumentNumber,
		"full_name":        e.FullName,
		"active":           e.Active,
	}
}

// EmployeeChanges is a partial update for an employee. Nil fields are left untouched.
type EmployeeChanges struct {
	FullName *string
	Active   *bool
}

// Fields lists the snapshot keys touched by the change set
func (c EmployeeChanges) Fields() []string {
	var fields []string
	if c.FullName != nil {
		fields = append(fields, "full_name")
	}
	if c.Active != nil {
		fields = append(fields, "active")
	}
	return fields
}

// Apply returns a copy of e with the changes applied
func (c EmployeeChanges) Apply(e Employee) Employee {
	if c.FullName != nil {
		e.FullName = *c.FullName
	}
	if c.Active != nil {
		e.Active = *c.Active
	}
	return e
}

// RadioUnit represents a loanable radio device
type RadioUnit struct {
	Code        string
	Description *string
	Active      bool
}

// Snapshot returns every audited field of the radio unit
func (r RadioUnit) Snapshot() Snapshot {
	var description any
	if r.Description != nil {
		description = *r.Description
	}
	return Snapshot{
		"code":        r.Code,
		"description": description,
		"active":      r.Active,
	}
}

// RadioUnitChanges is a partial update for a radio unit.
// A Description pointing to an empty string clears the description.
type RadioUnitChanges struct {
	Description *string
	Active      *bool
}

// Fields lists the snapshot keys touched by the change set
func (c RadioUnitChanges) Fields() []string {
	var fields []string
	if c.Description != nil {
		fields = append(fields, "description")
	}
	if c.Active != nil {
		fields = append(fields, "active")
	}
	return fields
}

// Apply returns a copy of r with the changes applied
func (c RadioUnitChanges) Apply(r RadioUnit) RadioUnit {
	if c.Description != nil {
		if *c.Description == "" {
			r.Description = nil
		} else {
			d := *c.Description
			r.Description = &d
		}
	}
	if c.Active != nil {
		r.Active = *c.Active
	}
	return r
}

// OperatorAccount represents the system account a loan is also bound to.
// EmployeeKey is a loose reference; a key that no longer resolves is tolerated.
type OperatorAccount struct {
	Username    string
	EmployeeKey *string
	Active      bool
}

// Snapshot returns every audited field of the operator account
func (a OperatorAccount) Snapshot() Snapshot {
	var employeeKey any
	if a.EmployeeKey != nil {
		employeeKey = *a.EmployeeKey
	}
	return Snapshot{
		"username":     a.Username,
		"employee_key": employeeKey,
		"active":       a.Active,
	}
}

// OperatorAccountChanges is a partial update for an operator account.
// An EmployeeKey pointing to an empty string unlinks the employee.
type OperatorAccountChanges struct {
	EmployeeKey *string
	Active      *bool
}

// Fields lists the snapshot keys touched by the change set
func (c OperatorAccountChanges) Fields() []string {
	var fields []string
	if c.EmployeeKey != nil {
		fields = append(fields, "employee_key")
	}
	if c.Active != nil {
		fields = append(fields, "active")
	}
	return fields
}

// Apply returns a copy of a with the changes applied
func (c OperatorAccountChanges) Apply(a OperatorAccount) OperatorAccount {
	if c.EmployeeKey != nil {
		if *c.EmployeeKey == "" {
			a.EmployeeKey = nil
		} else {
			k := *c.EmployeeKey
			a.EmployeeKey = &k
		}
	}
	if c.Active != nil {
		a.Active = *c.Active
	}
	return a
}

// LoanState is the lifecycle state of a loan
type LoanState uint8

const (
	LoanAssigned LoanState = iota + 1
	LoanReturned
)

func (s LoanState) String() string {
	switch s {
	case LoanAssigned:
		return "ASSIGNED"
	case LoanReturned:
		return "RETURNED"
	default:
		return fmt.Sprintf("LoanState(%d)", uint8(s))
	}
}

// ParseLoanState parses the stored representation of a loan state
func ParseLoanState(s string) (LoanState, error) {
	switch s {
	case "ASSIGNED":
		return LoanAssigned, nil
	case "RETURNED":
		return LoanReturned, nil
	default:
		return 0, fmt.Errorf("unknown loan state %q: %w", s, ErrInvalidInput)
	}
}

// LoanBinding selects which of the three loan bindings a lookup goes through
type LoanBinding uint8

const (
	ByEmployee LoanBinding = iota + 1
	ByOperatorAccount
	ByRadioUnit
)

func (b LoanBinding) String() string {
	switch b {
	case ByEmployee:
		return "employee"
	case ByOperatorAccount:
		return "operator account"
	case ByRadioUnit:
		return "radio unit"
	default:
		return fmt.Sprintf("LoanBinding(%d)", uint8(b))
	}
}

// Loan represents one radio unit assigned to an employee and operator account
type Loan struct {
	ID               uint
	EmployeeKey      string
	EmployeeName     string
	OperatorUsername string
	RadioUnitCode    string
	AssignedAt       time.Time
	Shift            Shift
	State            LoanState
	ReturnedAt       *time.Time
	RegisteredBy     uint
}

// LoanChanges is a corrective update for a loan. Bindings, state and
// timestamps are not editable; returning goes through Loan.Return.
type LoanChanges struct {
	EmployeeName *string
	RegisteredBy *uint
}

// Apply returns a copy of l with the changes applied
func (c LoanChanges) Apply(l Loan) Loan {
	if c.EmployeeName != nil {
		l.EmployeeName = *c.EmployeeName
	}
	if c.RegisteredBy != nil {
		l.RegisteredBy = *c.RegisteredBy
	}
	return l
}

// IsOpen reports whether the loan is still assigned
func (l Loan) IsOpen() bool {
	switch l.State {
	case LoanAssigned:
		return l.ReturnedAt == nil
	case LoanReturned:
		return false
	default:
		return false
	}
}

// KeyFor returns the loan's key for the given binding
func (l Loan) KeyFor(b LoanBinding) string {
	switch b {
	case ByEmployee:
		return l.EmployeeKey
	case ByOperatorAccount:
		return l.OperatorUsername
	case ByRadioUnit:
		return l.RadioUnitCode
	default:
		return ""
	}
}

// Return returns a copy of the loan marked as returned at the given time.
// Returning a loan that is no longer open yields it unchanged.
func (l Loan) Return(at time.Time) Loan {
	if !l.IsOpen() {
		return l
	}
	l.State = LoanReturned
	l.ReturnedAt = &at
	return l
}
