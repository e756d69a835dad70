package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/mkamgno/ohada_ledger/internal/core/domain"
)

// EntryFSM wraps a journal entry with its lifecycle state machine.
// The only event is "validate", and it is terminal: there is no path
// out of the VALIDATED state.
type EntryFSM struct {
	entry *domain.Entry
	fsm   *fsm.FSM
}

// NewEntryFSM creates a state machine seeded with the entry's current status.
func NewEntryFSM(entry *domain.Entry) *EntryFSM {
	e := &EntryFSM{entry: entry}

	e.fsm = fsm.NewFSM(
		string(entry.Status),
		fsm.Events{
			{Name: "validate", Src: []string{string(domain.Draft)}, Dst: string(domain.Validated)},
		},
		fsm.Callbacks{},
	)

	return e
}

// MayValidate reports whether the entry can still be validated.
func (e *EntryFSM) MayValidate() bool {
	return e.fsm.Can("validate")
}

// Validate transitions the entry to its terminal VALIDATED state.
func (e *EntryFSM) Validate(ctx context.Context) error {
	if !e.MayValidate() {
		return fmt.Errorf("entry cannot be validated in current state: %s", e.entry.Status)
	}

	if err := e.fsm.Event(ctx, "validate"); err != nil {
		return fmt.Errorf("failed to validate entry: %w", err)
	}

	e.entry.Status = domain.EntryStatus(e.fsm.Current())
	return nil
}

// Current returns the state the machine currently holds.
func (e *EntryFSM) Current() domain.EntryStatus {
	return domain.EntryStatus(e.fsm.Current())
}
