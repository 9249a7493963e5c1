package mocks

import (
	"context"

	"github.com/finbook/finbook-api/internal/store"
)

// MockTxRunner implements store.TxRunner for testing.
// By default it invokes the function with a nil transaction; the mock stores
// ignore the transaction handle, so services behave as if every operation
// committed immediately.
type MockTxRunner struct {
	RunFn func(ctx context.Context, fn store.TxFn) error

	// Calls counts how many transactions were started.
	Calls int
}

// NewMockTxRunner creates a new mock transaction runner
func NewMockTxRunner() *MockTxRunner {
	return &MockTxRunner{}
}

// Ensure MockTxRunner implements store.TxRunner interface
var _ store.TxRunner = (*MockTxRunner)(nil)

// RunInTransaction implements the TxRunner interface
func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.RunFn != nil {
		return m.RunFn(ctx, fn)
	}
	return fn(ctx, nil)
}
