package store

import (
	"context"
	"database/sql"

	"github.com/finbook/finbook-api/internal/domain"
)

// CreditCardStore defines the interface for credit card data persistence.
type CreditCardStore interface {
	// Create saves a new credit card to the store and assigns its ID.
	// Returns ErrUserNotFound if the owner does not exist (foreign key violation).
	// Returns ErrCardNumberExists if the card number is already registered.
	Create(ctx context.Context, card *domain.CreditCard) error

	// GetByNumber retrieves a credit card by its number.
	// Returns ErrCardNotFound if no card has that number. Card numbers are
	// unique (enforced at write time), so at most one card can match.
	GetByNumber(ctx context.Context, number string) (*domain.CreditCard, error)

	// FindByOwner retrieves all credit cards owned by the given user,
	// in store iteration order. Returns an empty slice if the user owns none.
	FindByOwner(ctx context.Context, ownerID int64) ([]*domain.CreditCard, error)

	// DeleteByOwner removes all credit cards owned by the given user and
	// returns the number of cards removed. Used by the user deletion cascade;
	// must run inside the same transaction as the owner's deletion.
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)

	// WithTx returns a new CreditCardStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CreditCardStore
}
