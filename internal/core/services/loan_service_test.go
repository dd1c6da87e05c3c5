package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rf-loans/internal/adapters/persistence/memory"
	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/ports"
	"rf-loans/internal/core/services"
)

func localAt(hh, mm int) time.Time {
	return time.Date(2024, 1, 1, hh, mm, 0, 0, time.Local)
}

type loanFixture struct {
	ctx     context.Context
	store   *memory.Store
	catalog *services.CatalogService
	loans   *services.LoanService
}

func newLoanFixture(t *testing.T) loanFixture {
	t.Helper()

	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := loanFixture{
		ctx:     context.Background(),
		store:   store,
		catalog: services.NewCatalogService(store, services.WithLogger(logger)),
		loans:   services.NewLoanService(store, services.WithLogger(logger)),
	}

	f.employee(t, "12345678", true)
	f.radio(t, "RF01", true)
	f.account(t, "jdoe", true)
	return f
}

func (f loanFixture) loanCount(t *testing.T) int64 {
	t.Helper()
	var total int64
	err := f.store.Do(f.ctx, func(ctx context.Context, repos ports.Repositories) (err error) {
		_, total, err = repos.Loans().List(ctx, ports.LoanQuery{})
		return err
	})
	require.NoError(t, err)
	return total
}

func (f loanFixture) employee(t *testing.T, key string, active bool) {
	t.Helper()
	_, err := f.catalog.CreateEmployee(f.ctx, services.CreateEmployeeInput{DocumentNumber: key, FullName: "Employee " + key, Active: active})
	require.NoError(t, err)
}

func (f loanFixture) radio(t *testing.T, code string, active bool) {
	t.Helper()
	_, err := f.catalog.CreateRadioUnit(f.ctx, services.CreateRadioUnitInput{Code: code, Active: active})
	require.NoError(t, err)
}

func (f loanFixture) account(t *testing.T, username string, active bool) {
	t.Helper()
	_, err := f.catalog.CreateOperatorAccount(f.ctx, services.CreateOperatorAccountInput{Username: username, Active: active})
	require.NoError(t, err)
}

func (f loanFixture) assign(employee, radio, account string, at time.Time) (domain.Loan, error) {
	return f.loans.Assign(f.ctx, services.AssignLoanInput{
		EmployeeKey:      employee,
		RadioUnitCode:    radio,
		OperatorUsername: account,
		RegisteredBy:     1,
		At:               at,
	})
}

func Test_AssignAndReturn_FullLifecycle(t *testing.T) {
	// arrange
	f := newLoanFixture(t)

	// act
	loan, err := f.assign("12345678", "RF01", "jdoe", localAt(10, 0))

	// assert
	require.NoError(t, err)
	assert.Equal(t, domain.Shift1, loan.Shift)
	assert.Equal(t, domain.LoanAssigned, loan.State)
	assert.Equal(t, "Employee 12345678", loan.EmployeeName)
	assert.Equal(t, "jdoe", loan.OperatorUsername)
	assert.Nil(t, loan.ReturnedAt)

	// act
	returned, err := f.loans.ReturnByRadioUnit(f.ctx, services.ReturnLoanInput{RadioUnitCode: "RF01", At: localAt(15, 0)})

	// assert
	require.NoError(t, err)
	assert.Equal(t, loan.ID, returned.ID)
	assert.Equal(t, domain.LoanReturned, returned.State)
	require.NotNil(t, returned.ReturnedAt)
	assert.Equal(t, localAt(15, 0), *returned.ReturnedAt)

	_, err = f.loans.ReturnByEmployee(f.ctx, services.ReturnLoanInput{EmployeeKey: "12345678", At: localAt(16, 0)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func Test_Assign_ChecksInFixedOrder(t *testing.T) {
	testCases := []struct {
		name     string
		setup    func(t *testing.T, f loanFixture)
		employee string
		radio    string
		account  string
		expected error
	}{
		{name: "unknown employee wins over unknown radio", employee: "999", radio: "RF99", account: "jdoe", expected: domain.ErrNotFound},
		{
			name:     "inactive employee wins over unknown account",
			setup:    func(t *testing.T, f loanFixture) { f.employee(t, "555", false) },
			employee: "555", radio: "RF01", account: "ghost",
			expected: domain.ErrInactive,
		},
		{name: "unknown radio", employee: "12345678", radio: "RF99", account: "jdoe", expected: domain.ErrNotFound},
		{
			name:     "inactive radio",
			setup:    func(t *testing.T, f loanFixture) { f.radio(t, "RF09", false) },
			employee: "12345678", radio: "RF09", account: "jdoe",
			expected: domain.ErrInactive,
		},
		{name: "unknown account", employee: "12345678", radio: "RF01", account: "ghost", expected: domain.ErrNotFound},
		{
			name:     "inactive account",
			setup:    func(t *testing.T, f loanFixture) { f.account(t, "off", false) },
			employee: "12345678", radio: "RF01", account: "off",
			expected: domain.ErrInactive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newLoanFixture(t)
			if tc.setup != nil {
				tc.setup(t, f)
			}

			_, err := f.assign(tc.employee, tc.radio, tc.account, localAt(10, 0))

			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func Test_Assign_RejectsSecondOpenLoanPerBinding(t *testing.T) {
	// arrange
	f := newLoanFixture(t)
	f.employee(t, "222", true)
	f.radio(t, "RF02", true)
	f.account(t, "asmith", true)
	_, err := f.assign("12345678", "RF01", "jdoe", localAt(7, 0))
	require.NoError(t, err)

	testCases := []struct {
		name     string
		employee string
		radio    string
		account  string
		contains string
	}{
		{name: "same employee", employee: "12345678", radio: "RF02", account: "asmith", contains: "employee"},
		{name: "same operator account", employee: "222", radio: "RF02", account: "jdoe", contains: "operator account"},
		{name: "same radio unit", employee: "222", radio: "RF01", account: "asmith", contains: "radio unit"},
		{name: "employee reported before radio", employee: "12345678", radio: "RF01", account: "asmith", contains: "employee 12345678"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := f.assign(tc.employee, tc.radio, tc.account, localAt(8, 0))

			// assert
			require.ErrorIs(t, err, domain.ErrBusinessRule)
			assert.Contains(t, err.Error(), tc.contains)
			assert.Equal(t, int64(1), f.loanCount(t))
		})
	}
}

func Test_Assign_ClassifiesShift(t *testing.T) {
	f := newLoanFixture(t)

	loan, err := f.assign("12345678", "RF01", "jdoe", localAt(23, 15))

	require.NoError(t, err)
	assert.Equal(t, domain.Shift3, loan.Shift)
}

func Test_Assign_RequiresTimestamp(t *testing.T) {
	f := newLoanFixture(t)

	_, err := f.assign("12345678", "RF01", "jdoe", time.Time{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func Test_Return_RequiresExactlyOneKey(t *testing.T) {
	f := newLoanFixture(t)

	testCases := []struct {
		name string
		in   services.ReturnLoanInput
	}{
		{name: "none", in: services.ReturnLoanInput{At: localAt(9, 0)}},
		{name: "blank only", in: services.ReturnLoanInput{RadioUnitCode: "  ", At: localAt(9, 0)}},
		{name: "two", in: services.ReturnLoanInput{RadioUnitCode: "RF01", EmployeeKey: "12345678", At: localAt(9, 0)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.loans.Return(f.ctx, tc.in)

			assert.ErrorIs(t, err, domain.ErrBusinessRule)
		})
	}
}

func Test_Return_RequiresTimestamp(t *testing.T) {
	f := newLoanFixture(t)
	_, err := f.assign("12345678", "RF01", "jdoe", localAt(10, 0))
	require.NoError(t, err)

	_, err = f.loans.ReturnByOperatorAccount(f.ctx, services.ReturnLoanInput{OperatorUsername: "jdoe"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func Test_Return_ByOperatorAccountFreesAllBindings(t *testing.T) {
	// arrange
	f := newLoanFixture(t)
	_, err := f.assign("12345678", "RF01", "jdoe", localAt(10, 0))
	require.NoError(t, err)

	// act
	_, err = f.loans.ReturnByOperatorAccount(f.ctx, services.ReturnLoanInput{OperatorUsername: "jdoe", At: localAt(11, 0)})
	require.NoError(t, err)
	second, err := f.assign("12345678", "RF01", "jdoe", localAt(14, 30))

	// assert
	require.NoError(t, err)
	assert.Equal(t, domain.Shift2, second.Shift)

	loans, total, err := services.NewQueryService(f.store, f.store).ListLoans(f.ctx, ports.LoanQuery{EmployeeKey: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, second.ID, loans[0].ID)
}

func Test_LoanOperations_DoNotAudit(t *testing.T) {
	f := newLoanFixture(t)
	before := len(f.store.AuditEvents())

	_, err := f.assign("12345678", "RF01", "jdoe", localAt(10, 0))
	require.NoError(t, err)
	_, err = f.loans.ReturnByRadioUnit(f.ctx, services.ReturnLoanInput{RadioUnitCode: "RF01", At: localAt(12, 0)})
	require.NoError(t, err)

	assert.Len(t, f.store.AuditEvents(), before)
}
