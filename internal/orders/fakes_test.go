package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
)

// In-memory fakes for the service's collaborators. They mirror the real
// repositories' contracts: nil result for absent rows, product lists in
// ascending id order.

type memDirectory struct {
	customers map[string]domain.Customer
}

func (d *memDirectory) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	if customer, ok := d.customers[id]; ok {
		return &customer, nil
	}
	return nil, nil
}

type memCatalog struct {
	products map[string]domain.Product
}

func (c *memCatalog) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if product, ok := c.products[id]; ok {
		return &product, nil
	}
	return nil, nil
}

func (c *memCatalog) ExistingIDs(_ context.Context, ids []string) ([]string, error) {
	var existing []string
	for _, id := range ids {
		if _, ok := c.products[id]; ok {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

type orderRow struct {
	customerID string
	orderDate  time.Time
	productIDs map[string]struct{}
}

type memStore struct {
	catalog     *memCatalog
	rows        map[string]*orderRow
	createCalls int
	addErr      error
}

func newMemStore(catalog *memCatalog) *memStore {
	return &memStore{
		catalog: catalog,
		rows:    make(map[string]*orderRow),
	}
}

func (s *memStore) Create(_ context.Context, order *domain.Order, productIDs []string) error {
	s.createCalls++
	order.ID = fmt.Sprintf("order-%d", len(s.rows)+1)

	row := &orderRow{
		customerID: order.CustomerID,
		orderDate:  order.OrderDate,
		productIDs: make(map[string]struct{}),
	}
	for _, id := range productIDs {
		row.productIDs[id] = struct{}{}
	}
	s.rows[order.ID] = row
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*domain.Order, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return s.buildOrder(id, row), nil
}

func (s *memStore) ListProducts(ctx context.Context, orderID string) ([]domain.Product, error) {
	order, err := s.GetByID(ctx, orderID)
	if err != nil || order == nil {
		return nil, err
	}
	return order.Products, nil
}

func (s *memStore) List(_ context.Context) ([]domain.Order, error) {
	return s.listWhere(func(*orderRow) bool { return true }), nil
}

func (s *memStore) ListByCustomer(_ context.Context, customerID string) ([]domain.Order, error) {
	return s.listWhere(func(row *orderRow) bool { return row.customerID == customerID }), nil
}

func (s *memStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.rows[id]; !ok {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}

func (s *memStore) HasProduct(_ context.Context, orderID, productID string) (bool, error) {
	row, ok := s.rows[orderID]
	if !ok {
		return false, nil
	}
	_, has := row.productIDs[productID]
	return has, nil
}

func (s *memStore) AddProduct(_ context.Context, orderID, productID string) error {
	if s.addErr != nil {
		return s.addErr
	}
	row, ok := s.rows[orderID]
	if !ok {
		return fmt.Errorf("order %s not in store", orderID)
	}
	if _, has := row.productIDs[productID]; has {
		return ErrDuplicateProduct
	}
	row.productIDs[productID] = struct{}{}
	return nil
}

func (s *memStore) RemoveProduct(_ context.Context, orderID, productID string) (bool, error) {
	row, ok := s.rows[orderID]
	if !ok {
		return false, nil
	}
	if _, has := row.productIDs[productID]; !has {
		return false, nil
	}
	delete(row.productIDs, productID)
	return true, nil
}

func (s *memStore) buildOrder(id string, row *orderRow) *domain.Order {
	products := []domain.Product{}
	for productID := range row.productIDs {
		if product, ok := s.catalog.products[productID]; ok {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	return &domain.Order{
		ID:         id,
		CustomerID: row.customerID,
		OrderDate:  row.orderDate,
		Products:   products,
	}
}

func (s *memStore) listWhere(match func(*orderRow) bool) []domain.Order {
	var ids []string
	for id, row := range s.rows {
		if match(row) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	orders := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		orders = append(orders, *s.buildOrder(id, s.rows[id]))
	}
	return orders
}

func newTestService() (*Service, *memStore, *memCatalog, *memDirectory) {
	catalog := &memCatalog{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "keyboard", Price: 10},
		"p2": {ID: "p2", Name: "mouse", Price: 20},
	}}
	directory := &memDirectory{customers: map[string]domain.Customer{
		"c1": {ID: "c1", Name: "A", Email: "a@x.com"},
	}}
	store := newMemStore(catalog)
	return NewService(store, directory, catalog), store, catalog, directory
}
