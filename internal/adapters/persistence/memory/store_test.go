package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rf-loans/internal/adapters/persistence/memory"
	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/ports"
)

func Test_Do_CommitsOnSuccess(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memory.NewStore()

	// act
	err := store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		_, err := repos.Employees().Create(ctx, domain.Employee{DocumentNumber: "1", FullName: "Ann", Active: true})
		return err
	})

	// assert
	require.NoError(t, err)
	_ = store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		e, err := repos.Employees().FindByDocument(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Ann", e.FullName)
		return nil
	})
}

func Test_Do_RollsBackOnError(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("boom")

	// act
	err := store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if _, err := repos.RadioUnits().Create(ctx, domain.RadioUnit{Code: "RF01", Active: true}); err != nil {
			return err
		}
		return boom
	})

	// assert
	assert.ErrorIs(t, err, boom)
	_ = store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		_, err := repos.RadioUnits().FindByCode(ctx, "RF01")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		return nil
	})
}

func Test_Do_RollsBackAndRepanics(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	assert.Panics(t, func() {
		_ = store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
			_, _ = repos.OperatorAccounts().Create(ctx, domain.OperatorAccount{Username: "jdoe", Active: true})
			panic("unexpected")
		})
	})

	// the mutex must have been released and nothing committed
	err := store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		_, err := repos.OperatorAccounts().FindByUsername(ctx, "jdoe")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func Test_FailAuditWith(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.FailAuditWith(errors.New("audit down"))

	err := store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		return repos.AuditLog().Append(ctx, domain.AdminChangeEvent{Aggregate: domain.AggregateEmployee})
	})
	require.Error(t, err)
	assert.Empty(t, store.AuditEvents())

	store.FailAuditWith(nil)
	err = store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		return repos.AuditLog().Append(ctx, domain.AdminChangeEvent{Aggregate: domain.AggregateEmployee})
	})
	require.NoError(t, err)
	assert.Len(t, store.AuditEvents(), 1)
}

func Test_Loans_FindOpenAndMarkReturned(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memory.NewStore()
	assignedAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	// act & assert
	err := store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		loans := repos.Loans()
		first, err := loans.Create(ctx, domain.Loan{
			EmployeeKey: "1", OperatorUsername: "jdoe", RadioUnitCode: "RF01",
			AssignedAt: assignedAt, Shift: domain.Shift1, State: domain.LoanAssigned,
		})
		require.NoError(t, err)
		assert.Equal(t, uint(1), first.ID)

		for _, b := range []domain.LoanBinding{domain.ByEmployee, domain.ByOperatorAccount, domain.ByRadioUnit} {
			open, err := loans.FindOpen(ctx, b, first.KeyFor(b))
			require.NoError(t, err, b.String())
			assert.Equal(t, first.ID, open.ID)
		}

		returned, err := loans.MarkReturned(ctx, first.ID, assignedAt.Add(5*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, domain.LoanReturned, returned.State)

		_, err = loans.FindOpen(ctx, domain.ByRadioUnit, "RF01")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = loans.MarkReturned(ctx, 99, assignedAt)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func Test_Loans_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	name := "Jane Doe"

	err := store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		loans := repos.Loans()
		loan, err := loans.Create(ctx, domain.Loan{
			EmployeeKey: "1", EmployeeName: "J. Doe", OperatorUsername: "jdoe", RadioUnitCode: "RF01",
			AssignedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), Shift: domain.Shift1, State: domain.LoanAssigned,
		})
		require.NoError(t, err)

		updated, err := loans.Update(ctx, loan.ID, domain.LoanChanges{EmployeeName: &name})
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", updated.EmployeeName)
		open, err := loans.FindOpen(ctx, domain.ByRadioUnit, "RF01")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", open.EmployeeName)

		require.NoError(t, loans.Delete(ctx, loan.ID))
		_, err = loans.FindByID(ctx, loan.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = loans.Update(ctx, loan.ID, domain.LoanChanges{EmployeeName: &name})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, loans.Delete(ctx, loan.ID), domain.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func Test_Loans_ListNewestFirstWithFilters(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	err := store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		for i, code := range []string{"RF01", "RF02", "RF01"} {
			_, err := repos.Loans().Create(ctx, domain.Loan{
				EmployeeKey: "1", RadioUnitCode: code, AssignedAt: base.Add(time.Duration(i) * time.Hour),
				State: domain.LoanReturned,
			})
			require.NoError(t, err)
		}

		all, total, err := repos.Loans().List(ctx, ports.LoanQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Equal(t, []uint{3, 2, 1}, []uint{all[0].ID, all[1].ID, all[2].ID})

		rf01, total, err := repos.Loans().List(ctx, ports.LoanQuery{RadioUnitCode: "RF01", Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, rf01, 1)
		assert.Equal(t, uint(3), rf01[0].ID)
		return nil
	})
	require.NoError(t, err)
}

func Test_Catalog_ListMatchesCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	desc := "Motorola handheld"

	err := store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		_, _ = repos.RadioUnits().Create(ctx, domain.RadioUnit{Code: "RF02", Description: &desc})
		_, _ = repos.RadioUnits().Create(ctx, domain.RadioUnit{Code: "RF01"})

		units, err := repos.RadioUnits().List(ctx, "motorola")
		require.NoError(t, err)
		require.Len(t, units, 1)
		assert.Equal(t, "RF02", units[0].Code)

		units, err = repos.RadioUnits().List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "RF01", units[0].Code)
		return nil
	})
	require.NoError(t, err)
}

func Test_OperatorAccounts_ListMatchesLinkedEmployeeName(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	key := "1"

	err := store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		_, _ = repos.Employees().Create(ctx, domain.Employee{DocumentNumber: key, FullName: "Jane Doe", Active: true})
		_, _ = repos.OperatorAccounts().Create(ctx, domain.OperatorAccount{Username: "op1", EmployeeKey: &key, Active: true})
		_, _ = repos.OperatorAccounts().Create(ctx, domain.OperatorAccount{Username: "op2", Active: true})

		accounts, err := repos.OperatorAccounts().List(ctx, "jane")
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, "op1", accounts[0].Username)
		return nil
	})
	require.NoError(t, err)
}

func Test_AuditList_FiltersByAggregate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	err := store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		for i, a := range []domain.Aggregate{domain.AggregateEmployee, domain.AggregateRadioUnit, domain.AggregateEmployee} {
			if err := repos.AuditLog().Append(ctx, domain.AdminChangeEvent{
				Aggregate: a, Action: domain.ActionCreated, KeyRef: string(rune('a' + i)), At: at.Add(time.Duration(i) * time.Minute),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	events, total, err := store.List(ctx, ports.AuditQuery{Aggregate: domain.AggregateEmployee, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, events, 2)
	assert.Equal(t, "c", events[0].KeyRef)
	assert.Equal(t, "a", events[1].KeyRef)
}
