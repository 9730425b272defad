package customers

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, customer *domain.Customer) error {
	customer.ID = uuid.New().String()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, address, email)
		VALUES ($1, $2, $3, $4)
	`, customer.ID, customer.Name, nullableString(customer.Address), customer.Email)
	if isUniqueViolation(err) {
		return domain.Conflict("email already exists")
	}
	return err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	customer := &domain.Customer{}
	var address sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, address, email
		FROM customers
		WHERE id = $1
	`, id).Scan(&customer.ID, &customer.Name, &address, &customer.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	customer.Address = address.String
	return customer, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	customer := &domain.Customer{}
	var address sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, address, email
		FROM customers
		WHERE email = $1
	`, email).Scan(&customer.ID, &customer.Name, &address, &customer.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	customer.Address = address.String
	return customer, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, address, email
		FROM customers
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	customers := []domain.Customer{}
	for rows.Next() {
		var customer domain.Customer
		var address sql.NullString
		if err := rows.Scan(&customer.ID, &customer.Name, &address, &customer.Email); err != nil {
			return nil, err
		}
		customer.Address = address.String
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *Repository) Update(ctx context.Context, customer *domain.Customer) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name = $2, address = $3, email = $4
		WHERE id = $1
	`, customer.ID, customer.Name, nullableString(customer.Address), customer.Email)
	if isUniqueViolation(err) {
		return false, domain.Conflict("email already exists")
	}
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// Delete removes the customer; owned orders and their associations go with it
// via the schema's ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM customers WHERE id = $1
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

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
