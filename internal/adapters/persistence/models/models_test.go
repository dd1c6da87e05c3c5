package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rf-loans/internal/adapters/persistence/models"
	"rf-loans/internal/core/domain"
)

func Test_Loan_ToDomain_RejectsUnknownState(t *testing.T) {
	m := models.Loan{ID: 3, Shift: domain.Shift2.String(), State: "LOST"}

	_, err := m.ToDomain()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "loan 3")
}

func Test_AuditEntry_KeepsMissingSnapshotsNull(t *testing.T) {
	// arrange
	event := domain.AdminChangeEvent{
		Aggregate: domain.AggregateEmployee,
		Action:    domain.ActionDeleted,
		KeyRef:    "1",
		Before:    domain.Snapshot{"document_number": "1", "full_name": "A", "active": false},
	}

	// act
	entry, err := models.AuditEntryFromDomain("7f1c0a52-9a43-4a39-9c39-0a4c3f1d2b6e", event)
	require.NoError(t, err)
	back, err := entry.ToDomain()

	// assert
	require.NoError(t, err)
	assert.Nil(t, entry.After)
	require.NotNil(t, entry.Before)
	assert.JSONEq(t, `{"document_number":"1","full_name":"A","active":false}`, *entry.Before)
	assert.Equal(t, event.Before, back.Before)
	assert.Nil(t, back.After)
}
