package handler

import (
	"encoding/json"
	"net/http"

	"fastfix/internal/wallet/service"
	httputil "fastfix/pkg/http"
	"fastfix/pkg/logger"
	"fastfix/pkg/model"
	"fastfix/pkg/money"

	"github.com/julienschmidt/httprouter"
)

type TopUpRequest struct {
	Amount string `json:"amount"`
}

// BalanceResponse carries the balance as a decimal EGP string.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

type WalletHandler struct {
	service service.WalletService
	log     *logger.Logger
}

func NewWalletHandler(service service.WalletService, log *logger.Logger) *WalletHandler {
	return &WalletHandler{
		service: service,
		log:     log,
	}
}

func (h *WalletHandler) TopUp(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req TopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "TopUp", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	account, err := h.service.LoadWallet(r.Context(), ps.ByName("id"), req.Amount)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "TopUp", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, toBalanceResponse(account)); err != nil {
		h.log.Error("failed to write success response", "handler", "TopUp", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	account, err := h.service.Balance(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Balance", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, toBalanceResponse(account)); err != nil {
		h.log.Error("failed to write success response", "handler", "Balance", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WalletHandler) Entries(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Entries", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	order, err := httputil.ExtractOrder(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Entries", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	entries, total, err := h.service.Statement(r.Context(), ps.ByName("id"), limit, offset, order)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Entries", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, entries, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Entries", "operation", "WritePaginated", "error", err)
	}
}

func toBalanceResponse(account *model.Account) BalanceResponse {
	return BalanceResponse{
		AccountID: account.ID,
		Balance:   money.Format(account.Balance),
	}
}

func (h *WalletHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/wallet/id/:id/topup", h.TopUp)
	router.GET("/api/v1/wallet/id/:id", h.Balance)
	router.GET("/api/v1/wallet/id/:id/entries", h.Entries)
}
