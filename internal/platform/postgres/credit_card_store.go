package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finbook/finbook-api/internal/domain"
	"github.com/finbook/finbook-api/internal/platform/logger"
	"github.com/finbook/finbook-api/internal/store"
)

// PostgresCreditCardStore implements the store.CreditCardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCreditCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCreditCardStore creates a new PostgreSQL implementation of the
// CreditCardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// a default logger will be used.
func NewPostgresCreditCardStore(db store.DBTX, log *slog.Logger) *PostgresCreditCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresCreditCardStore{
		db:     db,
		logger: log.With(slog.String("component", "credit_card_store")),
	}
}

// Ensure PostgresCreditCardStore implements store.CreditCardStore interface
var _ store.CreditCardStore = (*PostgresCreditCardStore)(nil)

// WithTx implements store.CreditCardStore.WithTx
func (s *PostgresCreditCardStore) WithTx(tx *sql.Tx) store.CreditCardStore {
	return &PostgresCreditCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CreditCardStore.Create
// It saves a new credit card to the database and assigns the generated ID.
// Returns store.ErrUserNotFound if the owner does not exist.
// Returns store.ErrCardNumberExists if the card number is already registered.
func (s *PostgresCreditCardStore) Create(ctx context.Context, card *domain.CreditCard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("credit card validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO credit_cards (issuance_bank, number, owner_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		card.IssuanceBank,
		card.Number,
		card.OwnerID,
		card.CreatedAt,
	).Scan(&card.ID)

	if err != nil {
		switch {
		case IsUniqueViolation(err):
			log.Warn("duplicate card number during create",
				slog.Int64("owner_id", card.OwnerID))
			return fmt.Errorf("%w: %v", store.ErrCardNumberExists, err)
		case IsForeignKeyViolation(err):
			log.Warn("owner does not exist during card create",
				slog.Int64("owner_id", card.OwnerID))
			return fmt.Errorf("%w: owner %d: %v", store.ErrUserNotFound, card.OwnerID, err)
		}

		log.Error("failed to create credit card",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", card.OwnerID))
		return MapError(err)
	}

	log.Info("credit card created",
		slog.Int64("card_id", card.ID),
		slog.Int64("owner_id", card.OwnerID))
	return nil
}

// GetByNumber implements store.CreditCardStore.GetByNumber
// Returns store.ErrCardNotFound if no card has the given number.
func (s *PostgresCreditCardStore) GetByNumber(ctx context.Context, number string) (*domain.CreditCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, issuance_bank, number, owner_id, created_at
		FROM credit_cards
		WHERE number = $1
	`

	var card domain.CreditCard
	err := s.db.QueryRowContext(ctx, query, number).Scan(
		&card.ID,
		&card.IssuanceBank,
		&card.Number,
		&card.OwnerID,
		&card.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("credit card not found by number")
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get credit card by number",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &card, nil
}

// FindByOwner implements store.CreditCardStore.FindByOwner
// Returns an empty slice if the user owns no cards.
func (s *PostgresCreditCardStore) FindByOwner(ctx context.Context, ownerID int64) ([]*domain.CreditCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, issuance_bank, number, owner_id, created_at
		FROM credit_cards
		WHERE owner_id = $1
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to query credit cards by owner",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", ownerID))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var cards []*domain.CreditCard
	for rows.Next() {
		var card domain.CreditCard
		err := rows.Scan(
			&card.ID,
			&card.IssuanceBank,
			&card.Number,
			&card.OwnerID,
			&card.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan credit card row",
				slog.String("error", err.Error()))
			return nil, err
		}
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if cards == nil {
		cards = []*domain.CreditCard{}
	}

	log.Debug("found credit cards by owner",
		slog.Int64("owner_id", ownerID),
		slog.Int("count", len(cards)))
	return cards, nil
}

// DeleteByOwner implements store.CreditCardStore.DeleteByOwner
// Returns the number of cards removed.
func (s *PostgresCreditCardStore) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM credit_cards
		WHERE owner_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to delete credit cards by owner",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", ownerID))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", ownerID))
		return 0, err
	}

	log.Info("credit cards deleted by owner",
		slog.Int64("owner_id", ownerID),
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}
