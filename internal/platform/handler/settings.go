package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"fastfix/internal/platform/service"
	httputil "fastfix/pkg/http"
	"fastfix/pkg/logger"
	"fastfix/pkg/model"
	"fastfix/pkg/money"

	"github.com/julienschmidt/httprouter"
)

// SettingsResponse renders amounts as decimal EGP strings.
type SettingsResponse struct {
	CommissionRate         string    `json:"commission_rate"`
	MinimumBalanceToAccept string    `json:"minimum_balance_to_accept"`
	TravelFee              string    `json:"travel_fee"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type SettingsHandler struct {
	service service.SettingsService
	log     *logger.Logger
}

func NewSettingsHandler(service service.SettingsService, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		log:     log,
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, toSettingsResponse(settings)); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var update model.PlatformSettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	settings, err := h.service.Update(r.Context(), &update)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, toSettingsResponse(settings)); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func toSettingsResponse(settings *model.PlatformSettings) SettingsResponse {
	return SettingsResponse{
		CommissionRate:         settings.CommissionRate,
		MinimumBalanceToAccept: money.Format(settings.MinimumBalanceToAccept),
		TravelFee:              money.Format(settings.TravelFee),
		UpdatedAt:              settings.UpdatedAt,
	}
}

func (h *SettingsHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/platform/settings", h.Get)
	router.PUT("/api/v1/platform/settings", h.Update)
}
