package orders

import (
	"context"
	"errors"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
	"github.com/Aldonvacriates/E-Commerce-API/internal/validation"
)

// Store is the order persistence surface. *Repository satisfies it.
type Store interface {
	Create(ctx context.Context, order *domain.Order, productIDs []string) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListProducts(ctx context.Context, orderID string) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
	HasProduct(ctx context.Context, orderID, productID string) (bool, error)
	AddProduct(ctx context.Context, orderID, productID string) error
	RemoveProduct(ctx context.Context, orderID, productID string) (bool, error)
}

// CustomerDirectory resolves customer references.
type CustomerDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// ProductCatalog resolves product references.
type ProductCatalog interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
}

// Service manages the order-product association: it enforces referential
// integrity across customers, products and orders, and keeps the association
// set free of duplicates on every mutation path.
type Service struct {
	store     Store
	customers CustomerDirectory
	products  ProductCatalog
}

func NewService(store Store, customers CustomerDirectory, products ProductCatalog) *Service {
	return &Service{
		store:     store,
		customers: customers,
		products:  products,
	}
}

type CreateParams struct {
	CustomerID string
	OrderDate  string
	ProductIDs []string
}

// Create validates the customer reference, the timestamp and every product
// reference, then persists the order with one association per distinct
// product id. Repeats in ProductIDs collapse silently; an unresolvable id
// fails the whole operation and nothing is persisted.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domain.Order, error) {
	customer, err := s.customers.GetByID(ctx, params.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFound("customer", params.CustomerID)
	}

	orderDate, err := validation.ParseTimestamp(params.OrderDate)
	if err != nil {
		return nil, err
	}

	distinct := dedupe(params.ProductIDs)
	if len(distinct) > 0 {
		existing, err := s.products.ExistingIDs(ctx, distinct)
		if err != nil {
			return nil, err
		}
		if len(existing) < len(distinct) {
			return nil, domain.InvalidReference("one or more product ids do not exist")
		}
	}

	order := &domain.Order{
		CustomerID: customer.ID,
		OrderDate:  orderDate,
	}
	if err := s.store.Create(ctx, order, distinct); err != nil {
		return nil, err
	}

	return s.store.GetByID(ctx, order.ID)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("order", id)
	}
	return order, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.store.List(ctx)
}

func (s *Service) ListForCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFound("customer", customerID)
	}
	return s.store.ListByCustomer(ctx, customerID)
}

func (s *Service) Delete(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("order", id)
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, domain.NotFound("order", id)
	}
	return order, nil
}

// AddItem associates a product with an order. An already-present association
// is a no-op success, not an error: the second return value reports whether
// the product was newly added. A duplicate insert raced past the existence
// check gets the same already-present outcome.
func (s *Service) AddItem(ctx context.Context, orderID, productID string) (*domain.Order, bool, error) {
	order, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, false, err
	}
	if order == nil {
		return nil, false, domain.NotFound("order", orderID)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, false, err
	}
	if product == nil {
		return nil, false, domain.NotFound("product", productID)
	}

	has, err := s.store.HasProduct(ctx, orderID, productID)
	if err != nil {
		return nil, false, err
	}
	if has {
		return order, false, nil
	}

	if err := s.store.AddProduct(ctx, orderID, productID); err != nil {
		if !errors.Is(err, ErrDuplicateProduct) {
			return nil, false, err
		}
		order, err := s.store.GetByID(ctx, orderID)
		return order, false, err
	}

	order, err = s.store.GetByID(ctx, orderID)
	return order, true, err
}

// RemoveItem removes exactly one association. It distinguishes a missing
// order, a missing product and a missing association.
func (s *Service) RemoveItem(ctx context.Context, orderID, productID string) (*domain.Order, error) {
	order, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("order", orderID)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", productID)
	}

	removed, err := s.store.RemoveProduct(ctx, orderID, productID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, domain.AssociationNotFound(orderID, productID)
	}

	return s.store.GetByID(ctx, orderID)
}

func (s *Service) ListItems(ctx context.Context, orderID string) ([]domain.Product, error) {
	order, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("order", orderID)
	}
	return order.Products, nil
}

// dedupe keeps first occurrences, preserving input order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	distinct := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	return distinct
}
