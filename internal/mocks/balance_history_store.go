package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/finbook/finbook-api/internal/domain"
	"github.com/finbook/finbook-api/internal/store"
)

// MockBalanceHistoryStore implements store.BalanceHistoryStore for testing
type MockBalanceHistoryStore struct {
	// Function fields for customizable behavior
	CreateMultipleFn func(ctx context.Context, records []*domain.BalanceHistory) error
	FindByCardFn     func(ctx context.Context, cardID int64) ([]*domain.BalanceHistory, error)
	DeleteByOwnerFn  func(ctx context.Context, ownerID int64) (int64, error)

	// Data for default implementation
	Records []*domain.BalanceHistory

	// CardStore, when set, lets the default DeleteByOwner resolve which
	// cards belong to the owner, mirroring the cascade subquery in postgres.
	CardStore *MockCreditCardStore

	CreateError error
	nextID      int64
}

// NewMockBalanceHistoryStore creates a new mock store with initialized defaults.
// The card store may be nil if DeleteByOwner is overridden or unused.
func NewMockBalanceHistoryStore(cards *MockCreditCardStore) *MockBalanceHistoryStore {
	return &MockBalanceHistoryStore{
		Records:   []*domain.BalanceHistory{},
		CardStore: cards,
	}
}

// Ensure MockBalanceHistoryStore implements store.BalanceHistoryStore interface
var _ store.BalanceHistoryStore = (*MockBalanceHistoryStore)(nil)

// CreateMultiple implements the BalanceHistoryStore interface
func (m *MockBalanceHistoryStore) CreateMultiple(ctx context.Context, records []*domain.BalanceHistory) error {
	if m.CreateMultipleFn != nil {
		return m.CreateMultipleFn(ctx, records)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	for _, record := range records {
		m.nextID++
		record.ID = m.nextID
		m.Records = append(m.Records, record)
	}
	return nil
}

// FindByCard implements the BalanceHistoryStore interface.
// Matches the postgres store's ordering contract: newest first, ties broken
// by ID descending.
func (m *MockBalanceHistoryStore) FindByCard(ctx context.Context, cardID int64) ([]*domain.BalanceHistory, error) {
	if m.FindByCardFn != nil {
		return m.FindByCardFn(ctx, cardID)
	}

	records := []*domain.BalanceHistory{}
	for _, record := range m.Records {
		if record.CreditCardID == cardID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].RecordedAt.Equal(records[j].RecordedAt) {
			return records[i].RecordedAt.After(records[j].RecordedAt)
		}
		return records[i].ID > records[j].ID
	})
	return records, nil
}

// DeleteByOwner implements the BalanceHistoryStore interface
func (m *MockBalanceHistoryStore) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	if m.DeleteByOwnerFn != nil {
		return m.DeleteByOwnerFn(ctx, ownerID)
	}

	owned := make(map[int64]bool)
	if m.CardStore != nil {
		for _, card := range m.CardStore.Cards {
			if card.OwnerID == ownerID {
				owned[card.ID] = true
			}
		}
	}

	var kept []*domain.BalanceHistory
	var count int64
	for _, record := range m.Records {
		if owned[record.CreditCardID] {
			count++
			continue
		}
		kept = append(kept, record)
	}
	m.Records = kept
	return count, nil
}

// WithTx implements the BalanceHistoryStore interface.
// The mock has no transaction semantics, so it returns itself.
func (m *MockBalanceHistoryStore) WithTx(tx *sql.Tx) store.BalanceHistoryStore {
	return m
}
