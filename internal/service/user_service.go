package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/finbook/finbook-api/internal/domain"
	"github.com/finbook/finbook-api/internal/platform/logger"
	"github.com/finbook/finbook-api/internal/store"
)

// UserService provides user-related operations
type UserService interface {
	// CreateUser registers a new user and returns it with its assigned ID.
	CreateUser(ctx context.Context, name, email string) (*domain.User, error)

	// DeleteUser removes a user together with all owned credit cards and
	// their balance history in a single transaction.
	// Returns store.ErrUserNotFound if the user does not exist; in that
	// case nothing is mutated.
	DeleteUser(ctx context.Context, id int64) error
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	runner       store.TxRunner
	userStore    store.UserStore
	cardStore    store.CreditCardStore
	historyStore store.BalanceHistoryStore
	logger       *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	runner store.TxRunner,
	userStore store.UserStore,
	cardStore store.CreditCardStore,
	historyStore store.BalanceHistoryStore,
	log *slog.Logger,
) (UserService, error) {
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

	return &userServiceImpl{
		runner:       runner,
		userStore:    userStore,
		cardStore:    cardStore,
		historyStore: historyStore,
		logger:       log.With(slog.String("component", "user_service")),
	}, nil
}

// CreateUser implements UserService.CreateUser
func (s *userServiceImpl) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email)
	if err != nil {
		log.Warn("invalid user data",
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		log.Error("failed to create user",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("user registered",
		slog.Int64("user_id", user.ID))
	return user, nil
}

// DeleteUser implements UserService.DeleteUser
// The cascade is explicit and ordered bottom-up (history, cards, user) so
// the plain foreign keys in the schema are never violated mid-transaction.
func (s *userServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.userStore.WithTx(tx)
		cards := s.cardStore.WithTx(tx)
		history := s.historyStore.WithTx(tx)

		if _, err := users.GetByID(ctx, id); err != nil {
			log.Debug("delete requested for missing user",
				slog.Int64("user_id", id))
			return err
		}

		historyDeleted, err := history.DeleteByOwner(ctx, id)
		if err != nil {
			return err
		}

		cardsDeleted, err := cards.DeleteByOwner(ctx, id)
		if err != nil {
			return err
		}

		if err := users.Delete(ctx, id); err != nil {
			return err
		}

		log.Info("user deleted with cascade",
			slog.Int64("user_id", id),
			slog.Int64("cards_deleted", cardsDeleted),
			slog.Int64("balance_records_deleted", historyDeleted))
		return nil
	})
}
