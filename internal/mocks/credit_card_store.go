package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/finbook/finbook-api/internal/domain"
	"github.com/finbook/finbook-api/internal/store"
)

// MockCreditCardStore implements store.CreditCardStore for testing
type MockCreditCardStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, card *domain.CreditCard) error
	GetByNumberFn   func(ctx context.Context, number string) (*domain.CreditCard, error)
	FindByOwnerFn   func(ctx context.Context, ownerID int64) ([]*domain.CreditCard, error)
	DeleteByOwnerFn func(ctx context.Context, ownerID int64) (int64, error)

	// Data for default implementation
	Cards       map[int64]*domain.CreditCard
	CreateError error
	nextID      int64
}

// NewMockCreditCardStore creates a new mock store with initialized defaults
func NewMockCreditCardStore() *MockCreditCardStore {
	return &MockCreditCardStore{
		Cards: make(map[int64]*domain.CreditCard),
	}
}

// Ensure MockCreditCardStore implements store.CreditCardStore interface
var _ store.CreditCardStore = (*MockCreditCardStore)(nil)

// Create implements the CreditCardStore interface.
// The default implementation enforces card number uniqueness like the
// postgres store's unique index does.
func (m *MockCreditCardStore) Create(ctx context.Context, card *domain.CreditCard) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	for _, existing := range m.Cards {
		if existing.Number == card.Number {
			return store.ErrCardNumberExists
		}
	}

	m.nextID++
	card.ID = m.nextID
	m.Cards[card.ID] = card
	return nil
}

// GetByNumber implements the CreditCardStore interface
func (m *MockCreditCardStore) GetByNumber(ctx context.Context, number string) (*domain.CreditCard, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, number)
	}

	for _, card := range m.Cards {
		if card.Number == number {
			return card, nil
		}
	}
	return nil, store.ErrCardNotFound
}

// FindByOwner implements the CreditCardStore interface.
// Cards are returned in creation order for deterministic tests.
func (m *MockCreditCardStore) FindByOwner(ctx context.Context, ownerID int64) ([]*domain.CreditCard, error) {
	if m.FindByOwnerFn != nil {
		return m.FindByOwnerFn(ctx, ownerID)
	}

	cards := []*domain.CreditCard{}
	for _, card := range m.Cards {
		if card.OwnerID == ownerID {
			cards = append(cards, card)
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}

// DeleteByOwner implements the CreditCardStore interface
func (m *MockCreditCardStore) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	if m.DeleteByOwnerFn != nil {
		return m.DeleteByOwnerFn(ctx, ownerID)
	}

	var count int64
	for id, card := range m.Cards {
		if card.OwnerID == ownerID {
			delete(m.Cards, id)
			count++
		}
	}
	return count, nil
}

// WithTx implements the CreditCardStore interface.
// The mock has no transaction semantics, so it returns itself.
func (m *MockCreditCardStore) WithTx(tx *sql.Tx) store.CreditCardStore {
	return m
}
