package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/finbook/finbook-api/internal/domain"
	"github.com/finbook/finbook-api/internal/platform/logger"
	"github.com/finbook/finbook-api/internal/store"
)

// PostgresBalanceHistoryStore implements the store.BalanceHistoryStore
// interface using a PostgreSQL database as the storage backend.
type PostgresBalanceHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBalanceHistoryStore creates a new PostgreSQL implementation of
// the BalanceHistoryStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller. If logger
// is nil, a default logger will be used.
func NewPostgresBalanceHistoryStore(db store.DBTX, log *slog.Logger) *PostgresBalanceHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresBalanceHistoryStore{
		db:     db,
		logger: log.With(slog.String("component", "balance_history_store")),
	}
}

// Ensure PostgresBalanceHistoryStore implements store.BalanceHistoryStore interface
var _ store.BalanceHistoryStore = (*PostgresBalanceHistoryStore)(nil)

// WithTx implements store.BalanceHistoryStore.WithTx
func (s *PostgresBalanceHistoryStore) WithTx(tx *sql.Tx) store.BalanceHistoryStore {
	return &PostgresBalanceHistoryStore{
		db:     tx,
		logger: s.logger,
	}
}

// CreateMultiple implements store.BalanceHistoryStore.CreateMultiple
// It saves a batch of balance records and assigns their IDs.
// Returns store.ErrInvalidEntity if a record references a missing card.
func (s *PostgresBalanceHistoryStore) CreateMultiple(ctx context.Context, records []*domain.BalanceHistory) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		if err := record.Validate(); err != nil {
			log.Warn("balance record validation failed during create",
				slog.String("error", err.Error()),
				slog.Int64("card_id", record.CreditCardID))
			return err
		}
	}

	query := `
		INSERT INTO balance_history (recorded_at, balance, credit_card_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	for _, record := range records {
		err := s.db.QueryRowContext(
			ctx,
			query,
			record.RecordedAt,
			record.Balance,
			record.CreditCardID,
		).Scan(&record.ID)

		if err != nil {
			if IsForeignKeyViolation(err) {
				log.Warn("card does not exist during balance record create",
					slog.Int64("card_id", record.CreditCardID))
				return fmt.Errorf("%w: card %d: %v",
					store.ErrCardNotFound, record.CreditCardID, err)
			}
			log.Error("failed to create balance record",
				slog.String("error", err.Error()),
				slog.Int64("card_id", record.CreditCardID))
			return MapError(err)
		}
	}

	log.Info("balance records created",
		slog.Int("count", len(records)))
	return nil
}

// FindByCard implements store.BalanceHistoryStore.FindByCard
// Records are returned newest-first; ties on the timestamp are broken by
// ID descending so same-day entries keep a stable order.
func (s *PostgresBalanceHistoryStore) FindByCard(ctx context.Context, cardID int64) ([]*domain.BalanceHistory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, recorded_at, balance, credit_card_id
		FROM balance_history
		WHERE credit_card_id = $1
		ORDER BY recorded_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, cardID)
	if err != nil {
		log.Error("failed to query balance history by card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", cardID))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var records []*domain.BalanceHistory
	for rows.Next() {
		var record domain.BalanceHistory
		err := rows.Scan(
			&record.ID,
			&record.RecordedAt,
			&record.Balance,
			&record.CreditCardID,
		)
		if err != nil {
			log.Error("failed to scan balance history row",
				slog.String("error", err.Error()))
			return nil, err
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if records == nil {
		records = []*domain.BalanceHistory{}
	}

	log.Debug("found balance history by card",
		slog.Int64("card_id", cardID),
		slog.Int("count", len(records)))
	return records, nil
}

// DeleteByOwner implements store.BalanceHistoryStore.DeleteByOwner
// Returns the number of records removed.
func (s *PostgresBalanceHistoryStore) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM balance_history
		WHERE credit_card_id IN (
			SELECT id FROM credit_cards WHERE owner_id = $1
		)
	`

	result, err := s.db.ExecContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to delete balance history by owner",
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

	log.Info("balance history deleted by owner",
		slog.Int64("owner_id", ownerID),
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}
