package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/finbook/finbook-api/internal/api/shared"
	"github.com/finbook/finbook-api/internal/domain"
	"github.com/finbook/finbook-api/internal/platform/logger"
	"github.com/finbook/finbook-api/internal/service"
)

// dateLayout is the calendar-day format used in balance history responses.
const dateLayout = "2006-01-02"

// CardHandler handles credit-card-related HTTP requests
type CardHandler struct {
	cardService service.CardService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, log *slog.Logger) *CardHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CardHandler{
		cardService: cardService,
		validator:   validator.New(),
		logger:      log.With(slog.String("component", "card_handler")),
	}
}

// AddCard handles POST /credit-card requests.
// Responds with the new card's ID as a bare JSON integer.
func (h *CardHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	var payload AddCreditCardPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(payload); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	card, err := h.cardService.AddCard(
		r.Context(),
		payload.UserID,
		payload.CardIssuanceBank,
		payload.CardNumber,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card.ID)
}

// ListCards handles GET /credit-card:all requests.
// Responds with all cards of the user given by the userId query parameter,
// stripped down to issuance bank and number.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	idParam := r.URL.Query().Get("userId")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		log.Debug("invalid userId query parameter",
			slog.String("value", idParam))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid userId")
		return
	}

	cards, err := h.cardService.ListCardsForUser(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	views := make([]CreditCardView, 0, len(cards))
	for _, card := range cards {
		views = append(views, CreditCardView{
			IssuanceBank: card.IssuanceBank,
			Number:       card.Number,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, views)
}

// ResolveOwner handles GET /credit-card:user-id requests.
// Responds with the ID of the user owning the card given by the
// creditCardNumber query parameter.
func (h *CardHandler) ResolveOwner(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("creditCardNumber")
	if number == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing creditCardNumber")
		return
	}

	ownerID, err := h.cardService.ResolveOwner(r.Context(), number)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ownerID)
}

// UpdateBalances handles POST /credit-card:update-balance requests.
// The body is a JSON array of balance snapshots; the batch is applied
// atomically and the first unknown card number rejects the whole batch.
func (h *CardHandler) UpdateBalances(w http.ResponseWriter, r *http.Request) {
	var payload []UpdateBalancePayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	entries := make([]service.BalanceEntry, 0, len(payload))
	for _, item := range payload {
		if err := h.validator.Struct(item); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
			return
		}
		entries = append(entries, service.BalanceEntry{
			CardNumber: item.CreditCardNumber,
			RecordedAt: item.TransactionTime,
			Balance:    item.CurrentBalance,
		})
	}

	if err := h.cardService.RecordBalances(r.Context(), entries); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "Balance updated successfully.")
}

// BalanceHistory handles GET /credit-card:balance-history requests.
// Responds with every balance record of the card given by the number query
// parameter, newest first, dates truncated to calendar days.
func (h *CardHandler) BalanceHistory(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	if number == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing number")
		return
	}

	records, err := h.cardService.ListBalanceHistory(r.Context(), number)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, historyToViews(records))
}

// historyToViews converts balance records to their response representation.
func historyToViews(records []*domain.BalanceHistory) []BalanceHistoryView {
	views := make([]BalanceHistoryView, 0, len(records))
	for _, record := range records {
		views = append(views, BalanceHistoryView{
			Date:    record.RecordedAt.UTC().Format(dateLayout),
			Balance: record.Balance.String(),
		})
	}
	return views
}
