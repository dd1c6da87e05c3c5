package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rf-loans/internal/core/domain"
)

func Test_Loan_Return_TransitionsOnce(t *testing.T) {
	// arrange
	loan := domain.Loan{ID: 1, State: domain.LoanAssigned, AssignedAt: at(10, 0, 0)}
	first := at(15, 0, 0)
	second := at(16, 0, 0)

	// act
	returned := loan.Return(first)
	again := returned.Return(second)

	// assert
	assert.True(t, loan.IsOpen(), "original value must not be mutated")
	assert.Equal(t, domain.LoanReturned, returned.State)
	require.NotNil(t, returned.ReturnedAt)
	assert.Equal(t, first, *returned.ReturnedAt)
	assert.Equal(t, returned, again)
}

func Test_Loan_KeyFor(t *testing.T) {
	loan := domain.Loan{EmployeeKey: "12345678", OperatorUsername: "jdoe", RadioUnitCode: "RF01"}

	assert.Equal(t, "12345678", loan.KeyFor(domain.ByEmployee))
	assert.Equal(t, "jdoe", loan.KeyFor(domain.ByOperatorAccount))
	assert.Equal(t, "RF01", loan.KeyFor(domain.ByRadioUnit))
}

func Test_ParseLoanState(t *testing.T) {
	for _, s := range []domain.LoanState{domain.LoanAssigned, domain.LoanReturned} {
		parsed, err := domain.ParseLoanState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := domain.ParseLoanState("LOST")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func Test_EmployeeChanges_ApplyAndFields(t *testing.T) {
	name := "Jane Doe"
	inactive := false
	employee := domain.Employee{DocumentNumber: "1", FullName: "J. Doe", Active: true}

	changes := domain.EmployeeChanges{FullName: &name, Active: &inactive}
	updated := changes.Apply(employee)

	assert.Equal(t, []string{"full_name", "active"}, changes.Fields())
	assert.Equal(t, domain.Employee{DocumentNumber: "1", FullName: "Jane Doe", Active: false}, updated)
	assert.Equal(t, "J. Doe", employee.FullName)
}

func Test_LoanChanges_LeavesBindingsAndStateAlone(t *testing.T) {
	name := "Jane Doe"
	by := uint(4)
	loan := domain.Loan{ID: 1, EmployeeKey: "1", EmployeeName: "J. Doe", RadioUnitCode: "RF01", State: domain.LoanAssigned, RegisteredBy: 2}

	updated := domain.LoanChanges{EmployeeName: &name, RegisteredBy: &by}.Apply(loan)

	assert.Equal(t, "Jane Doe", updated.EmployeeName)
	assert.Equal(t, uint(4), updated.RegisteredBy)
	assert.Equal(t, "RF01", updated.RadioUnitCode)
	assert.True(t, updated.IsOpen())
	assert.Equal(t, "J. Doe", loan.EmployeeName)
}

func Test_RadioUnitChanges_EmptyDescriptionClears(t *testing.T) {
	desc := "Motorola"
	empty := ""
	unit := domain.RadioUnit{Code: "RF01", Description: &desc, Active: true}

	updated := domain.RadioUnitChanges{Description: &empty}.Apply(unit)

	assert.Nil(t, updated.Description)
	assert.Nil(t, updated.Snapshot()["description"])
	assert.Equal(t, "Motorola", unit.Snapshot()["description"])
}

func Test_OperatorAccountChanges_LinkAndUnlink(t *testing.T) {
	key := "12345678"
	empty := ""
	account := domain.OperatorAccount{Username: "jdoe", Active: true}

	linked := domain.OperatorAccountChanges{EmployeeKey: &key}.Apply(account)
	unlinked := domain.OperatorAccountChanges{EmployeeKey: &empty}.Apply(linked)

	require.NotNil(t, linked.EmployeeKey)
	assert.Equal(t, "12345678", *linked.EmployeeKey)
	assert.Nil(t, unlinked.EmployeeKey)
}

func Test_Snapshot_Pick(t *testing.T) {
	snap := domain.Employee{DocumentNumber: "1", FullName: "A", Active: true}.Snapshot()

	picked := snap.Pick("active", "missing")

	assert.Equal(t, domain.Snapshot{"active": true}, picked)
}

func Test_KindOf(t *testing.T) {
	testCases := []struct {
		err  error
		kind domain.ErrorKind
	}{
		{fmt.Errorf("employee 1: %w", domain.ErrNotFound), domain.KindNotFound},
		{fmt.Errorf("x: %w", domain.ErrAlreadyExists), domain.KindAlreadyExists},
		{fmt.Errorf("x: %w", domain.ErrInactive), domain.KindInactive},
		{fmt.Errorf("x: %w", domain.ErrBusinessRule), domain.KindBusinessRule},
		{fmt.Errorf("x: %w", domain.ErrInvalidInput), domain.KindInvalidInput},
		{fmt.Errorf("x: %w", domain.ErrConflict), domain.KindConflict},
		{fmt.Errorf("boom"), domain.KindUnknown},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.kind, domain.KindOf(tc.err), tc.err.Error())
	}
}

func Test_ParseAggregate(t *testing.T) {
	a, err := domain.ParseAggregate("RadioUnit")
	require.NoError(t, err)
	assert.Equal(t, domain.AggregateRadioUnit, a)

	_, err = domain.ParseAggregate("Loan")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
