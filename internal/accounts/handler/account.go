package handler

import (
	"encoding/json"
	"net/http"

	"fastfix/internal/accounts/service"
	httputil "fastfix/pkg/http"
	"fastfix/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type CreateCustomerRequest struct {
	Name string `json:"name"`
}

type CreateTechnicianRequest struct {
	Name      string   `json:"name"`
	Expertise string   `json:"expertise"`
	Documents []string `json:"documents"`
}

type AccountHandler struct {
	service service.AccountService
	log     *logger.Logger
}

func NewAccountHandler(service service.AccountService, log *logger.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     log,
	}
}

func (h *AccountHandler) CreateCustomer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateCustomer", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	account, err := h.service.CreateCustomer(r.Context(), req.Name)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateCustomer", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, account); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateCustomer", "operation", "WriteCreated", "error", err)
	}
}

func (h *AccountHandler) CreateTechnician(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateTechnicianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateTechnician", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	account, err := h.service.CreateTechnician(r.Context(), req.Name, req.Expertise, req.Documents)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateTechnician", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, account); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateTechnician", "operation", "WriteCreated", "error", err)
	}
}

func (h *AccountHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	account, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, account); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AccountHandler) ListTechnicians(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListTechnicians", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	approval := r.URL.Query().Get("approval")

	accounts, total, err := h.service.ListTechnicians(r.Context(), approval, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListTechnicians", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, accounts, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListTechnicians", "operation", "WritePaginated", "error", err)
	}
}

func (h *AccountHandler) Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	account, err := h.service.Approve(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Approve", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, account); err != nil {
		h.log.Error("failed to write success response", "handler", "Approve", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AccountHandler) Reject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	account, err := h.service.Reject(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Reject", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, account); err != nil {
		h.log.Error("failed to write success response", "handler", "Reject", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AccountHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/accounts/customers", h.CreateCustomer)
	router.POST("/api/v1/accounts/technicians", h.CreateTechnician)
	router.GET("/api/v1/accounts/id/:id", h.GetByID)
	router.GET("/api/v1/accounts/technicians", h.ListTechnicians)
	router.POST("/api/v1/accounts/technicians/id/:id/approve", h.Approve)
	router.POST("/api/v1/accounts/technicians/id/:id/reject", h.Reject)
}
