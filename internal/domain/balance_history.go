package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Balance-history-specific validation errors
var (
	// ErrBalanceCardEmpty is returned when a record's credit card ID is missing.
	ErrBalanceCardEmpty = fmt.Errorf("%w: balance record credit card ID cannot be empty", ErrValidation)

	// ErrBalanceDateZero is returned when a record's timestamp is the zero value.
	ErrBalanceDateZero = fmt.Errorf("%w: balance record timestamp cannot be zero", ErrValidation)
)

// BalanceHistory represents the balance observed on a credit card at a
// specific instant. Records are append-only: duplicates and out-of-order
// entries are stored as given, and a record is only removed via the owner
// cascade. The amount uses decimal arithmetic to avoid float rounding in
// monetary values.
type BalanceHistory struct {
	ID           int64           `json:"id"`
	RecordedAt   time.Time       `json:"recorded_at"`
	Balance      decimal.Decimal `json:"balance"`
	CreditCardID int64           `json:"credit_card_id"`
}

// NewBalanceHistory creates a new BalanceHistory record for the given card.
// The ID is assigned by the store on creation.
// Returns an error if validation fails.
func NewBalanceHistory(cardID int64, recordedAt time.Time, balance decimal.Decimal) (*BalanceHistory, error) {
	record := &BalanceHistory{
		RecordedAt:   recordedAt.UTC(),
		Balance:      balance,
		CreditCardID: cardID,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the BalanceHistory has valid data.
// Returns an error if any field fails validation.
func (b *BalanceHistory) Validate() error {
	if b.CreditCardID <= 0 {
		return ErrBalanceCardEmpty
	}

	if b.RecordedAt.IsZero() {
		return ErrBalanceDateZero
	}

	return nil
}
