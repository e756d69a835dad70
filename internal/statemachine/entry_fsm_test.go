package statemachine

import (
	"context"
	"testing"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryFSM_ValidateFromDraft(t *testing.T) {
	entry := &domain.Entry{Status: domain.Draft}
	m := NewEntryFSM(entry)

	assert.True(t, m.MayValidate())
	require.NoError(t, m.Validate(context.Background()))
	assert.Equal(t, domain.Validated, entry.Status)
	assert.Equal(t, domain.Validated, m.Current())
}

func TestEntryFSM_ValidationIsTerminal(t *testing.T) {
	entry := &domain.Entry{Status: domain.Draft}
	m := NewEntryFSM(entry)

	require.NoError(t, m.Validate(context.Background()))

	assert.False(t, m.MayValidate())
	err := m.Validate(context.Background())
	assert.Error(t, err, "second validation must be rejected")
	assert.Equal(t, domain.Validated, entry.Status)
}

func TestEntryFSM_SeededFromValidated(t *testing.T) {
	entry := &domain.Entry{Status: domain.Validated}
	m := NewEntryFSM(entry)

	assert.False(t, m.MayValidate())
	assert.Error(t, m.Validate(context.Background()))
}
