package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request/response payloads. Field names follow the wire contract of the
// bookkeeping endpoints.

// CreateUserPayload defines the body of PUT /user.
type CreateUserPayload struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required"`
}

// AddCreditCardPayload defines the body of POST /credit-card.
type AddCreditCardPayload struct {
	UserID           int64  `json:"userId"           validate:"required,gt=0"`
	CardIssuanceBank string `json:"cardIssuanceBank" validate:"required"`
	CardNumber       string `json:"cardNumber"       validate:"required"`
}

// UpdateBalancePayload is one element of the POST /credit-card:update-balance
// batch. CurrentBalance accepts JSON numbers and numeric strings.
type UpdateBalancePayload struct {
	CreditCardNumber string          `json:"creditCardNumber" validate:"required"`
	TransactionTime  time.Time       `json:"transactionTime"  validate:"required"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
}

// CreditCardView is the per-card element of the GET /credit-card:all
// response. Internal IDs and the owner reference are not exposed.
type CreditCardView struct {
	IssuanceBank string `json:"issuanceBank"`
	Number       string `json:"number"`
}

// BalanceHistoryView is the per-record element of the
// GET /credit-card:balance-history response. The date is rendered at
// calendar-day granularity and the balance as a decimal string.
type BalanceHistoryView struct {
	Date    string `json:"date"`
	Balance string `json:"balance"`
}
