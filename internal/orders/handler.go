package orders

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
	"github.com/Aldonvacriates/E-Commerce-API/internal/messaging"
	"github.com/Aldonvacriates/E-Commerce-API/internal/validation"
)

type Handler struct {
	service  *Service
	producer *messaging.Producer
	validate *validatorv10.Validate
	logger   *slog.Logger
}

func NewHandler(service *Service, producer *messaging.Producer, validate *validatorv10.Validate, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		producer: producer,
		validate: validate,
		logger:   logger,
	}
}

type createOrderRequest struct {
	CustomerID string   `json:"customer_id" validate:"required"`
	OrderDate  string   `json:"order_date" validate:"required,iso8601"`
	ProductIDs []string `json:"product_ids" validate:"omitempty,dive,required"`
}

// addProductResponse reports whether the product was newly added or was
// already in the order; both outcomes are success.
type addProductResponse struct {
	Result string        `json:"result"`
	Order  *domain.Order `json:"order"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeDomainError(w, validation.Fields(err))
		return
	}

	order, err := h.service.Create(r.Context(), CreateParams{
		CustomerID: req.CustomerID,
		OrderDate:  req.OrderDate,
		ProductIDs: req.ProductIDs,
	})
	if err != nil {
		h.handleError(w, err, "failed to create order")
		return
	}

	h.publish(r, domain.OrderEvent{
		Type:       domain.OrderEventCreated,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ProductIDs: productIDs(order),
	})

	h.logger.Info("order created", "order_id", order.ID, "customer_id", order.CustomerID, "products", len(order.Products))
	h.writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "failed to get order")
		return
	}

	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err, "failed to list orders")
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) HandleListForCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")

	orders, err := h.service.ListForCustomer(r.Context(), customerID)
	if err != nil {
		h.handleError(w, err, "failed to list orders for customer")
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	order, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "failed to delete order")
		return
	}

	h.publish(r, domain.OrderEvent{
		Type:       domain.OrderEventDeleted,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
	})

	h.logger.Info("order deleted", "order_id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "order " + id + " deleted"})
}

func (h *Handler) HandleAddProduct(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	productID := r.PathValue("productId")

	order, added, err := h.service.AddItem(r.Context(), orderID, productID)
	if err != nil {
		h.handleError(w, err, "failed to add product to order")
		return
	}

	result := "already_present"
	if added {
		result = "added"
		h.publish(r, domain.OrderEvent{
			Type:       domain.OrderEventItemAdded,
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			ProductID:  productID,
		})
	}

	h.logger.Info("product added to order", "order_id", orderID, "product_id", productID, "result", result)
	h.writeJSON(w, http.StatusOK, addProductResponse{Result: result, Order: order})
}

func (h *Handler) HandleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	productID := r.PathValue("productId")

	order, err := h.service.RemoveItem(r.Context(), orderID, productID)
	if err != nil {
		h.handleError(w, err, "failed to remove product from order")
		return
	}

	h.publish(r, domain.OrderEvent{
		Type:       domain.OrderEventItemRemoved,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ProductID:  productID,
	})

	h.logger.Info("product removed from order", "order_id", orderID, "product_id", productID)
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")

	products, err := h.service.ListItems(r.Context(), orderID)
	if err != nil {
		h.handleError(w, err, "failed to list products for order")
		return
	}

	h.writeJSON(w, http.StatusOK, products)
}

// publish sends an order event when a producer is configured. Publish
// failures are logged and never fail the request.
func (h *Handler) publish(r *http.Request, event domain.OrderEvent) {
	if h.producer == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	if err := h.producer.Publish(r.Context(), event); err != nil {
		h.logger.Error("failed to publish order event", "error", err, "order_id", event.OrderID, "type", event.Type)
	}
}

func productIDs(order *domain.Order) []string {
	ids := make([]string, 0, len(order.Products))
	for _, product := range order.Products {
		ids = append(ids, product.ID)
	}
	return ids
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
