package store

import (
	"context"
	"database/sql"

	"github.com/finbook/finbook-api/internal/domain"
)

// BalanceHistoryStore defines the interface for balance history persistence.
type BalanceHistoryStore interface {
	// CreateMultiple saves a batch of balance records and assigns their IDs.
	// Run it inside a transaction (via WithTx and a TxRunner) when the batch
	// must land atomically.
	CreateMultiple(ctx context.Context, records []*domain.BalanceHistory) error

	// FindByCard retrieves every balance record for the given card,
	// ordered by recording timestamp descending (ties broken by ID descending).
	// Returns an empty slice if the card has no history.
	FindByCard(ctx context.Context, cardID int64) ([]*domain.BalanceHistory, error)

	// DeleteByOwner removes all balance records belonging to cards owned by
	// the given user and returns the number of records removed. Used by the
	// user deletion cascade; must run inside the same transaction as the
	// cards' deletion.
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)

	// WithTx returns a new BalanceHistoryStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) BalanceHistoryStore
}
