package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/finbook/finbook-api/internal/api/shared"
	"github.com/finbook/finbook-api/internal/platform/logger"
	"github.com/finbook/finbook-api/internal/service"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, log *slog.Logger) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		logger:      log.With(slog.String("component", "user_handler")),
	}
}

// Create handles PUT /user requests.
// Responds with the new user's ID as a bare JSON integer.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(payload); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	user, err := h.userService.CreateUser(r.Context(), payload.Name, payload.Email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user.ID)
}

// Delete handles DELETE /user requests.
// The target user is identified by the userId query parameter; deletion
// cascades to the user's cards and their balance history.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	idParam := r.URL.Query().Get("userId")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		log.Debug("invalid userId query parameter",
			slog.String("value", idParam))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid userId")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "User deleted successfully.")
}
