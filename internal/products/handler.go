package products

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

type createProductRequest struct {
	Name  string   `json:"name" validate:"required"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}

type updateProductRequest struct {
	Name  *string  `json:"name" validate:"omitempty,min=1"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeDomainError(w, validation.Fields(err))
		return
	}

	product, err := h.service.Create(r.Context(), CreateParams{
		Name:  req.Name,
		Price: *req.Price,
	})
	if err != nil {
		h.handleError(w, err, "failed to create product")
		return
	}

	h.logger.Info("product created", "product_id", product.ID)
	h.writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "failed to get product")
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err, "failed to list products")
		return
	}

	h.writeJSON(w, http.StatusOK, products)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeDomainError(w, validation.Fields(err))
		return
	}

	product, err := h.service.Update(r.Context(), id, UpdateParams{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		h.handleError(w, err, "failed to update product")
		return
	}

	h.logger.Info("product updated", "product_id", product.ID)
	h.writeJSON(w, http.StatusOK, product)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err, "failed to delete product")
		return
	}

	h.logger.Info("product deleted", "product_id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "product " + id + " deleted"})
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
