package usecases_test

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
	"rf-loans/internal/core/services"
	"rf-loans/internal/core/usecases"
)

func newUseCases() (*usecases.Catalog, *usecases.Loans, *memory.Store) {
	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := usecases.NewCatalog(services.NewCatalogService(store, services.WithLogger(logger)))
	loans := usecases.NewLoans(services.NewLoanService(store, services.WithLogger(logger)))
	return catalog, loans, store
}

func Test_Loans_AssignThenReturnEachWay(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, loans, _ := newUseCases()
	_, err := catalog.CreateEmployee(ctx, usecases.CreateEmployee{DocumentNumber: "12345678", FullName: "Jane", Active: true})
	require.NoError(t, err)
	_, err = catalog.CreateRadioUnit(ctx, usecases.CreateRadioUnit{Code: "RF01", Active: true})
	require.NoError(t, err)
	_, err = catalog.CreateOperatorAccount(ctx, usecases.CreateOperatorAccount{Username: "jdoe", Active: true})
	require.NoError(t, err)

	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	assign := usecases.AssignRadio{EmployeeKey: "12345678", RadioUnitCode: "RF01", OperatorUsername: "jdoe", RegisteredBy: 3, At: at}

	returns := []func() (domain.Loan, error){
		func() (domain.Loan, error) {
			return loans.ReturnByRadioUnit(ctx, usecases.ReturnByRadioUnit{RadioUnitCode: "RF01", At: at.Add(time.Hour)})
		},
		func() (domain.Loan, error) {
			return loans.ReturnByEmployee(ctx, usecases.ReturnByEmployee{EmployeeKey: "12345678", At: at.Add(time.Hour)})
		},
		func() (domain.Loan, error) {
			return loans.ReturnByOperatorAccount(ctx, usecases.ReturnByOperatorAccount{OperatorUsername: "jdoe", At: at.Add(time.Hour)})
		},
	}

	for _, ret := range returns {
		// act
		loan, err := loans.Assign(ctx, assign)
		require.NoError(t, err)
		returned, err := ret()

		// assert
		require.NoError(t, err)
		assert.Equal(t, uint(3), loan.RegisteredBy)
		assert.Equal(t, loan.ID, returned.ID)
		assert.Equal(t, domain.LoanReturned, returned.State)
	}
}

func Test_Catalog_ForwardsAllCommands(t *testing.T) {
	ctx := context.Background()
	catalog, _, store := newUseCases()
	name := "Jane Doe"
	desc := "spare"
	key := "12345678"

	_, err := catalog.CreateEmployee(ctx, usecases.CreateEmployee{DocumentNumber: key, FullName: "Jane", Active: true, ActorID: 1})
	require.NoError(t, err)
	_, err = catalog.UpdateEmployee(ctx, usecases.UpdateEmployee{DocumentNumber: key, Changes: domain.EmployeeChanges{FullName: &name}, ActorID: 1})
	require.NoError(t, err)
	_, err = catalog.CreateRadioUnit(ctx, usecases.CreateRadioUnit{Code: "RF01", ActorID: 1})
	require.NoError(t, err)
	_, err = catalog.UpdateRadioUnit(ctx, usecases.UpdateRadioUnit{Code: "RF01", Changes: domain.RadioUnitChanges{Description: &desc}, ActorID: 1})
	require.NoError(t, err)
	_, err = catalog.CreateOperatorAccount(ctx, usecases.CreateOperatorAccount{Username: "jdoe", ActorID: 1})
	require.NoError(t, err)
	_, err = catalog.UpdateOperatorAccount(ctx, usecases.UpdateOperatorAccount{Username: "jdoe", Changes: domain.OperatorAccountChanges{EmployeeKey: &key}, ActorID: 1})
	require.NoError(t, err)
	require.NoError(t, catalog.DeleteOperatorAccount(ctx, usecases.DeleteOperatorAccount{Username: "jdoe", ActorID: 1}))
	require.NoError(t, catalog.DeleteRadioUnit(ctx, usecases.DeleteRadioUnit{Code: "RF01", ActorID: 1}))
	require.NoError(t, catalog.DeleteEmployee(ctx, usecases.DeleteEmployee{DocumentNumber: key, ActorID: 1, Reason: "cleanup"}))

	events := store.AuditEvents()
	require.Len(t, events, 9)
	last := events[8]
	assert.Equal(t, domain.ActionDeleted, last.Action)
	require.NotNil(t, last.Reason)
	assert.Equal(t, "cleanup", *last.Reason)
}

func Test_Loans_ReturnRejectsAmbiguousKeys(t *testing.T) {
	_, loans, _ := newUseCases()

	_, err := loans.Return(context.Background(), usecases.ReturnLoan{
		EmployeeKey:   "12345678",
		RadioUnitCode: "RF01",
		At:            time.Now(),
	})

	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}
