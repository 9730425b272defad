package orders

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
)

// ErrDuplicateProduct reports that the (order, product) pair already exists.
// The composite primary key on order_products raises it when a concurrent add
// slips between the existence check and the insert.
var ErrDuplicateProduct = errors.New("product already in order")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the order row and one association row per product id in a
// single transaction. On any failure nothing is persisted.
func (r *Repository) Create(ctx context.Context, order *domain.Order, productIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	order.ID = uuid.New().String()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, order_date)
		VALUES ($1, $2, $3)
	`, order.ID, order.CustomerID, order.OrderDate)
	if err != nil {
		return err
	}

	for _, productID := range productIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_products (order_id, product_id)
			VALUES ($1, $2)
		`, order.ID, productID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, order_date
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.CustomerID, &order.OrderDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	products, err := r.ListProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Products = products

	return order, nil
}

// ListProducts returns the order's associated products, ascending by product
// id for deterministic responses.
func (r *Repository) ListProducts(ctx context.Context, orderID string) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.price
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = $1
		ORDER BY p.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Price); err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Order, error) {
	return r.listWhere(ctx, `
		SELECT id, customer_id, order_date
		FROM orders
		ORDER BY id
	`)
}

func (r *Repository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return r.listWhere(ctx, `
		SELECT id, customer_id, order_date
		FROM orders
		WHERE customer_id = $1
		ORDER BY id
	`, customerID)
}

// listWhere loads orders plus all their products in two queries instead of
// one per order.
func (r *Repository) listWhere(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.Order)
	var orderIDs []string

	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.OrderDate); err != nil {
			return nil, err
		}
		order.Products = []domain.Product{}
		orderMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []domain.Order{}, nil
	}

	productRows, err := r.db.QueryContext(ctx, `
		SELECT op.order_id, p.id, p.name, p.price
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = ANY($1)
		ORDER BY p.id
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = productRows.Close() }()

	for productRows.Next() {
		var orderID string
		var product domain.Product
		if err := productRows.Scan(&orderID, &product.ID, &product.Name, &product.Price); err != nil {
			return nil, err
		}
		order := orderMap[orderID]
		order.Products = append(order.Products, product)
	}

	if err := productRows.Err(); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *orderMap[id])
	}

	return orders, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM orders WHERE id = $1
	`, id)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *Repository) HasProduct(ctx context.Context, orderID, productID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM order_products
			WHERE order_id = $1 AND product_id = $2
		)
	`, orderID, productID).Scan(&exists)
	return exists, err
}

func (r *Repository) AddProduct(ctx context.Context, orderID, productID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_products (order_id, product_id)
		VALUES ($1, $2)
	`, orderID, productID)
	if isUniqueViolation(err) {
		return ErrDuplicateProduct
	}
	return err
}

func (r *Repository) RemoveProduct(ctx context.Context, orderID, productID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM order_products
		WHERE order_id = $1 AND product_id = $2
	`, orderID, productID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
