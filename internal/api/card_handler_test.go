package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook-api/internal/domain"
	"github.com/finbook/finbook-api/internal/service"
	"github.com/finbook/finbook-api/internal/store"
)

// mockCardService is a function-field test double for service.CardService.
type mockCardService struct {
	AddCardFn            func(ctx context.Context, ownerID int64, issuanceBank, number string) (*domain.CreditCard, error)
	ListCardsForUserFn   func(ctx context.Context, ownerID int64) ([]*domain.CreditCard, error)
	ResolveOwnerFn       func(ctx context.Context, number string) (int64, error)
	RecordBalancesFn     func(ctx context.Context, entries []service.BalanceEntry) error
	ListBalanceHistoryFn func(ctx context.Context, number string) ([]*domain.BalanceHistory, error)
}

func (m *mockCardService) AddCard(ctx context.Context, ownerID int64, issuanceBank, number string) (*domain.CreditCard, error) {
	if m.AddCardFn != nil {
		return m.AddCardFn(ctx, ownerID, issuanceBank, number)
	}
	return &domain.CreditCard{ID: 1, OwnerID: ownerID, IssuanceBank: issuanceBank, Number: number}, nil
}

func (m *mockCardService) ListCardsForUser(ctx context.Context, ownerID int64) ([]*domain.CreditCard, error) {
	if m.ListCardsForUserFn != nil {
		return m.ListCardsForUserFn(ctx, ownerID)
	}
	return []*domain.CreditCard{}, nil
}

func (m *mockCardService) ResolveOwner(ctx context.Context, number string) (int64, error) {
	if m.ResolveOwnerFn != nil {
		return m.ResolveOwnerFn(ctx, number)
	}
	return 1, nil
}

func (m *mockCardService) RecordBalances(ctx context.Context, entries []service.BalanceEntry) error {
	if m.RecordBalancesFn != nil {
		return m.RecordBalancesFn(ctx, entries)
	}
	return nil
}

func (m *mockCardService) ListBalanceHistory(ctx context.Context, number string) ([]*domain.BalanceHistory, error) {
	if m.ListBalanceHistoryFn != nil {
		return m.ListBalanceHistoryFn(ctx, number)
	}
	return []*domain.BalanceHistory{}, nil
}

func TestCardHandler_AddCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		service        *mockCardService
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful attach returns the new card ID",
			body: `{"userId":3,"cardIssuanceBank":"DBS","cardNumber":"4111-1111"}`,
			service: &mockCardService{
				AddCardFn: func(_ context.Context, ownerID int64, bank, number string) (*domain.CreditCard, error) {
					return &domain.CreditCard{ID: 17, OwnerID: ownerID, IssuanceBank: bank, Number: number}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "17",
		},
		{
			name:           "malformed JSON is rejected",
			body:           `{"userId":`,
			service:        &mockCardService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing card number is rejected",
			body:           `{"userId":3,"cardIssuanceBank":"DBS"}`,
			service:        &mockCardService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero userId is rejected",
			body:           `{"userId":0,"cardIssuanceBank":"DBS","cardNumber":"4111-1111"}`,
			service:        &mockCardService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown owner maps to 400",
			body: `{"userId":99,"cardIssuanceBank":"DBS","cardNumber":"4111-1111"}`,
			service: &mockCardService{
				AddCardFn: func(_ context.Context, _ int64, _, _ string) (*domain.CreditCard, error) {
					return nil, store.ErrUserNotFound
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "User does not exist",
		},
		{
			name: "duplicate number maps to 409",
			body: `{"userId":3,"cardIssuanceBank":"DBS","cardNumber":"4111-1111"}`,
			service: &mockCardService{
				AddCardFn: func(_ context.Context, _ int64, _, _ string) (*domain.CreditCard, error) {
					return nil, store.ErrCardNumberExists
				},
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "Card number already registered",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := NewCardHandler(tc.service, nil)
			req := httptest.NewRequest(http.MethodPost, "/credit-card", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()

			handler.AddCard(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedBody == "" {
				return
			}
			if rec.Code == http.StatusOK {
				assert.Equal(t, tc.expectedBody, string(bytes.TrimSpace(rec.Body.Bytes())))
			} else {
				assert.Contains(t, rec.Body.String(), tc.expectedBody)
			}
		})
	}
}

func TestCardHandler_ListCards(t *testing.T) {
	t.Parallel()

	svc := &mockCardService{
		ListCardsForUserFn: func(_ context.Context, ownerID int64) ([]*domain.CreditCard, error) {
			return []*domain.CreditCard{
				{ID: 1, OwnerID: ownerID, IssuanceBank: "DBS", Number: "4111-1111"},
				{ID: 2, OwnerID: ownerID, IssuanceBank: "OCBC", Number: "5500-2222"},
			}, nil
		},
	}
	handler := NewCardHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/credit-card:all?userId=3", nil)
	rec := httptest.NewRecorder()

	handler.ListCards(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var views []CreditCardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, CreditCardView{IssuanceBank: "DBS", Number: "4111-1111"}, views[0])
	assert.Equal(t, CreditCardView{IssuanceBank: "OCBC", Number: "5500-2222"}, views[1])

	// Internal IDs must not appear in the listing.
	assert.NotContains(t, rec.Body.String(), `"id"`)
	assert.NotContains(t, rec.Body.String(), `"ownerId"`)
}

func TestCardHandler_ListCards_EmptyResult(t *testing.T) {
	t.Parallel()

	handler := NewCardHandler(&mockCardService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/credit-card:all?userId=3", nil)
	rec := httptest.NewRecorder()

	handler.ListCards(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", string(bytes.TrimSpace(rec.Body.Bytes())))
}

func TestCardHandler_ListCards_InvalidUserID(t *testing.T) {
	t.Parallel()

	handler := NewCardHandler(&mockCardService{}, nil)

	for _, target := range []string{"/credit-card:all", "/credit-card:all?userId=x", "/credit-card:all?userId=-1"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()

		handler.ListCards(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestCardHandler_ResolveOwner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		target         string
		service        *mockCardService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "known number returns the owner ID",
			target: "/credit-card:user-id?creditCardNumber=4111-1111",
			service: &mockCardService{
				ResolveOwnerFn: func(_ context.Context, _ string) (int64, error) {
					return 3, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "3",
		},
		{
			name:           "missing number parameter is rejected",
			target:         "/credit-card:user-id",
			service:        &mockCardService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown number maps to 400",
			target: "/credit-card:user-id?creditCardNumber=0000",
			service: &mockCardService{
				ResolveOwnerFn: func(_ context.Context, _ string) (int64, error) {
					return 0, store.ErrCardNotFound
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Credit card not found",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := NewCardHandler(tc.service, nil)
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			rec := httptest.NewRecorder()

			handler.ResolveOwner(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedBody == "" {
				return
			}
			if rec.Code == http.StatusOK {
				assert.Equal(t, tc.expectedBody, string(bytes.TrimSpace(rec.Body.Bytes())))
			} else {
				assert.Contains(t, rec.Body.String(), tc.expectedBody)
			}
		})
	}
}

func TestCardHandler_UpdateBalances(t *testing.T) {
	t.Parallel()

	t.Run("valid batch is forwarded and confirmed", func(t *testing.T) {
		t.Parallel()

		var captured []service.BalanceEntry
		svc := &mockCardService{
			RecordBalancesFn: func(_ context.Context, entries []service.BalanceEntry) error {
				captured = entries
				return nil
			},
		}
		handler := NewCardHandler(svc, nil)

		body := `[
			{"creditCardNumber":"4111-1111","transactionTime":"2024-03-15T10:30:00Z","currentBalance":1000.50},
			{"creditCardNumber":"5500-2222","transactionTime":"2024-03-15T11:00:00Z","currentBalance":"250.75"}
		]`
		req := httptest.NewRequest(http.MethodPost, "/credit-card:update-balance", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		handler.UpdateBalances(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var msg string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
		assert.Equal(t, "Balance updated successfully.", msg)

		require.Len(t, captured, 2)
		assert.Equal(t, "4111-1111", captured[0].CardNumber)
		assert.True(t, captured[0].Balance.Equal(decimal.RequireFromString("1000.50")))
		assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), captured[0].RecordedAt)
		assert.True(t, captured[1].Balance.Equal(decimal.RequireFromString("250.75")))
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		t.Parallel()

		handler := NewCardHandler(&mockCardService{}, nil)
		req := httptest.NewRequest(http.MethodPost, "/credit-card:update-balance", bytes.NewBufferString(`[{`))
		rec := httptest.NewRecorder()

		handler.UpdateBalances(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("element missing a card number is rejected before the service runs", func(t *testing.T) {
		t.Parallel()

		svc := &mockCardService{
			RecordBalancesFn: func(_ context.Context, _ []service.BalanceEntry) error {
				t.Fatal("service must not be called for an invalid batch")
				return nil
			},
		}
		handler := NewCardHandler(svc, nil)

		body := `[{"transactionTime":"2024-03-15T10:30:00Z","currentBalance":10}]`
		req := httptest.NewRequest(http.MethodPost, "/credit-card:update-balance", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		handler.UpdateBalances(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown card number maps to 400", func(t *testing.T) {
		t.Parallel()

		svc := &mockCardService{
			RecordBalancesFn: func(_ context.Context, _ []service.BalanceEntry) error {
				return &service.InvalidCardNumberError{Number: "0000"}
			},
		}
		handler := NewCardHandler(svc, nil)

		body := `[{"creditCardNumber":"0000","transactionTime":"2024-03-15T10:30:00Z","currentBalance":10}]`
		req := httptest.NewRequest(http.MethodPost, "/credit-card:update-balance", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		handler.UpdateBalances(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid card number")
	})
}

func TestCardHandler_BalanceHistory(t *testing.T) {
	t.Parallel()

	t.Run("records are rendered newest first with day granularity", func(t *testing.T) {
		t.Parallel()

		svc := &mockCardService{
			ListBalanceHistoryFn: func(_ context.Context, _ string) ([]*domain.BalanceHistory, error) {
				return []*domain.BalanceHistory{
					{ID: 3, RecordedAt: time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC), Balance: decimal.RequireFromString("300.00")},
					{ID: 2, RecordedAt: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), Balance: decimal.RequireFromString("150.25")},
					{ID: 1, RecordedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Balance: decimal.RequireFromString("0")},
				}, nil
			},
		}
		handler := NewCardHandler(svc, nil)

		req := httptest.NewRequest(http.MethodGet, "/credit-card:balance-history?number=4111-1111", nil)
		rec := httptest.NewRecorder()

		handler.BalanceHistory(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var views []BalanceHistoryView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		require.Len(t, views, 3)
		assert.Equal(t, BalanceHistoryView{Date: "2024-03-15", Balance: "300"}, views[0])
		assert.Equal(t, BalanceHistoryView{Date: "2024-02-01", Balance: "150.25"}, views[1])
		assert.Equal(t, BalanceHistoryView{Date: "2024-01-01", Balance: "0"}, views[2])
	})

	t.Run("missing number parameter is rejected", func(t *testing.T) {
		t.Parallel()

		handler := NewCardHandler(&mockCardService{}, nil)
		req := httptest.NewRequest(http.MethodGet, "/credit-card:balance-history", nil)
		rec := httptest.NewRecorder()

		handler.BalanceHistory(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown card maps to 400", func(t *testing.T) {
		t.Parallel()

		svc := &mockCardService{
			ListBalanceHistoryFn: func(_ context.Context, _ string) ([]*domain.BalanceHistory, error) {
				return nil, store.ErrCardNotFound
			},
		}
		handler := NewCardHandler(svc, nil)

		req := httptest.NewRequest(http.MethodGet, "/credit-card:balance-history?number=0000", nil)
		rec := httptest.NewRecorder()

		handler.BalanceHistory(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Credit card not found")
	})

	t.Run("card with no records returns an empty array", func(t *testing.T) {
		t.Parallel()

		handler := NewCardHandler(&mockCardService{}, nil)
		req := httptest.NewRequest(http.MethodGet, "/credit-card:balance-history?number=4111-1111", nil)
		rec := httptest.NewRecorder()

		handler.BalanceHistory(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", string(bytes.TrimSpace(rec.Body.Bytes())))
	})
}
