package domain

import (
	"fmt"
	"time"
)

// Credit-card-specific validation errors
var (
	// ErrCardBankEmpty is returned when a card's issuance bank is empty.
	ErrCardBankEmpty = fmt.Errorf("%w: card issuance bank cannot be empty", ErrValidation)

	// ErrCardNumberEmpty is returned when a card's number is empty.
	ErrCardNumberEmpty = fmt.Errorf("%w: card number cannot be empty", ErrValidation)

	// ErrCardOwnerEmpty is returned when a card's owner ID is missing.
	ErrCardOwnerEmpty = fmt.Errorf("%w: card owner ID cannot be empty", ErrValidation)
)

// CreditCard represents a credit card attached to a user.
// The owner reference is immutable after creation; a card is only
// removed as part of its owner's deletion cascade.
type CreditCard struct {
	ID           int64     `json:"id"`
	IssuanceBank string    `json:"issuance_bank"`
	Number       string    `json:"number"`
	OwnerID      int64     `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCreditCard creates a new CreditCard owned by the given user.
// The ID is assigned by the store on creation.
// Returns an error if validation fails.
func NewCreditCard(ownerID int64, issuanceBank, number string) (*CreditCard, error) {
	card := &CreditCard{
		IssuanceBank: issuanceBank,
		Number:       number,
		OwnerID:      ownerID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the CreditCard has valid data.
// Returns an error if any field fails validation.
func (c *CreditCard) Validate() error {
	if c.IssuanceBank == "" {
		return ErrCardBankEmpty
	}

	if c.Number == "" {
		return ErrCardNumberEmpty
	}

	if c.OwnerID <= 0 {
		return ErrCardOwnerEmpty
	}

	return nil
}
