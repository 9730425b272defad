package customers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
	"github.com/Aldonvacriates/E-Commerce-API/internal/validation"
)

type Handler struct {
	service  *Service
	validate *validatorv10.Validate
	logger   *slog.Logger
}

func NewHandler(service *Service, validate *validatorv10.Validate, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validate,
		logger:   logger,
	}
}

type createCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Email   string `json:"email" validate:"required,contains=@"`
}

type updateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Address *string `json:"address"`
	Email   *string `json:"email" validate:"omitempty,contains=@"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeDomainError(w, validation.Fields(err))
		return
	}

	customer, err := h.service.Create(r.Context(), CreateParams{
		Name:    req.Name,
		Address: req.Address,
		Email:   req.Email,
	})
	if err != nil {
		h.handleError(w, err, "failed to create customer")
		return
	}

	h.logger.Info("customer created", "customer_id", customer.ID)
	h.writeJSON(w, http.StatusCreated, customer)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	customer, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "failed to get customer")
		return
	}

	h.writeJSON(w, http.StatusOK, customer)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err, "failed to list customers")
		return
	}

	h.writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeDomainError(w, validation.Fields(err))
		return
	}

	customer, err := h.service.Update(r.Context(), id, UpdateParams{
		Name:    req.Name,
		Address: req.Address,
		Email:   req.Email,
	})
	if err != nil {
		h.handleError(w, err, "failed to update customer")
		return
	}

	h.logger.Info("customer updated", "customer_id", customer.ID)
	h.writeJSON(w, http.StatusOK, customer)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err, "failed to delete customer")
		return
	}

	h.logger.Info("customer deleted", "customer_id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "customer " + id + " deleted"})
}

func (h *Handler) handleError(w http.ResponseWriter, err error, logMsg string) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		h.writeDomainError(w, derr)
		return
	}
	h.logger.Error(logMsg, "error", err)
	h.writeError(w, http.StatusInternalServerError, "internal server error")
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	h.writeError(w, statusForKind(domain.KindOf(err)), err.Error())
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrInvalidField, domain.ErrInvalidReference:
		return http.StatusBadRequest
	case domain.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
