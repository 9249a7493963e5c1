package service

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook/finbook-api/internal/domain"
	"github.com/finbook/finbook-api/internal/platform/logger"
	"github.com/finbook/finbook-api/internal/store"
)

// BalanceEntry is one element of a balance-update batch: the balance
// observed on the card with the given number at the given instant.
type BalanceEntry struct {
	CardNumber string
	RecordedAt time.Time
	Balance    decimal.Decimal
}

// CardService provides credit-card-related operations
type CardService interface {
	// AddCard attaches a new credit card to the given user and returns it
	// with its assigned ID. The owner existence check and the insert run in
	// one transaction so a concurrent user deletion cannot orphan the card.
	// Returns store.ErrUserNotFound if the owner does not exist.
	// Returns store.ErrCardNumberExists if the number is already registered.
	AddCard(ctx context.Context, ownerID int64, issuanceBank, number string) (*domain.CreditCard, error)

	// ListCardsForUser returns all credit cards owned by the given user.
	// Returns store.ErrUserNotFound if the user does not exist.
	ListCardsForUser(ctx context.Context, ownerID int64) ([]*domain.CreditCard, error)

	// ResolveOwner returns the ID of the user owning the card with the
	// given number. Returns store.ErrCardNotFound if no card matches.
	ResolveOwner(ctx context.Context, number string) (int64, error)

	// RecordBalances persists a batch of balance snapshots atomically:
	// either every entry lands or none do. All card numbers are resolved
	// before anything is written; the first unresolvable number aborts the
	// batch with an *InvalidCardNumberError naming it.
	RecordBalances(ctx context.Context, entries []BalanceEntry) error

	// ListBalanceHistory returns every balance record for the card with the
	// given number, sorted by recording timestamp descending (ties broken
	// by ID descending). Returns store.ErrCardNotFound if no card matches.
	ListBalanceHistory(ctx context.Context, number string) ([]*domain.BalanceHistory, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	runner       store.TxRunner
	userStore    store.UserStore
	cardStore    store.CreditCardStore
	historyStore store.BalanceHistoryStore
	logger       *slog.Logger
}

// NewCardService creates a new CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	runner store.TxRunner,
	userStore store.UserStore,
	cardStore store.CreditCardStore,
	historyStore store.BalanceHistoryStore,
	log *slog.Logger,
) (CardService, error) {
	if runner == nil {
		return nil, domain.NewValidationError("runner", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if cardStore == nil {
		return nil, domain.NewValidationError("cardStore", "cannot be nil", domain.ErrValidation)
	}
	if historyStore == nil {
		return nil, domain.NewValidationError("historyStore", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &cardServiceImpl{
		runner:       runner,
		userStore:    userStore,
		cardStore:    cardStore,
		historyStore: historyStore,
		logger:       log.With(slog.String("component", "card_service")),
	}, nil
}

// AddCard implements CardService.AddCard
func (s *cardServiceImpl) AddCard(ctx context.Context, ownerID int64, issuanceBank, number string) (*domain.CreditCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCreditCard(ownerID, issuanceBank, number)
	if err != nil {
		log.Warn("invalid credit card data",
			slog.String("error", err.Error()))
		return nil, err
	}

	err = s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.userStore.WithTx(tx)
		cards := s.cardStore.WithTx(tx)

		if _, err := users.GetByID(ctx, ownerID); err != nil {
			log.Debug("card attach requested for missing user",
				slog.Int64("owner_id", ownerID))
			return err
		}

		return cards.Create(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	log.Info("credit card attached",
		slog.Int64("card_id", card.ID),
		slog.Int64("owner_id", ownerID))
	return card, nil
}

// ListCardsForUser implements CardService.ListCardsForUser
func (s *cardServiceImpl) ListCardsForUser(ctx context.Context, ownerID int64) ([]*domain.CreditCard, error) {
	if _, err := s.userStore.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	return s.cardStore.FindByOwner(ctx, ownerID)
}

// ResolveOwner implements CardService.ResolveOwner
func (s *cardServiceImpl) ResolveOwner(ctx context.Context, number string) (int64, error) {
	card, err := s.cardStore.GetByNumber(ctx, number)
	if err != nil {
		return 0, err
	}
	return card.OwnerID, nil
}

// RecordBalances implements CardService.RecordBalances
// Entries are resolved in input order before anything is written, so an
// invalid number late in the batch leaves no partial state behind.
func (s *cardServiceImpl) RecordBalances(ctx context.Context, entries []BalanceEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(entries) == 0 {
		log.Debug("empty balance batch, nothing to record")
		return nil
	}

	return s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cardStore.WithTx(tx)
		history := s.historyStore.WithTx(tx)

		records := make([]*domain.BalanceHistory, 0, len(entries))
		for _, entry := range entries {
			card, err := cards.GetByNumber(ctx, entry.CardNumber)
			if err != nil {
				if store.IsNotFoundError(err) {
					log.Warn("balance batch references unknown card number")
					return &InvalidCardNumberError{Number: entry.CardNumber}
				}
				return err
			}

			record, err := domain.NewBalanceHistory(card.ID, entry.RecordedAt, entry.Balance)
			if err != nil {
				return err
			}
			records = append(records, record)
		}

		if err := history.CreateMultiple(ctx, records); err != nil {
			return err
		}

		log.Info("balance batch recorded",
			slog.Int("count", len(records)))
		return nil
	})
}

// ListBalanceHistory implements CardService.ListBalanceHistory
func (s *cardServiceImpl) ListBalanceHistory(ctx context.Context, number string) ([]*domain.BalanceHistory, error) {
	card, err := s.cardStore.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	records, err := s.historyStore.FindByCard(ctx, card.ID)
	if err != nil {
		return nil, err
	}

	// The store already orders its results, but the newest-first contract
	// belongs to this operation, so enforce it here as well.
	sort.Slice(records, func(i, j int) bool {
		if !records[i].RecordedAt.Equal(records[j].RecordedAt) {
			return records[i].RecordedAt.After(records[j].RecordedAt)
		}
		return records[i].ID > records[j].ID
	})

	return records, nil
}
