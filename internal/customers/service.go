package customers

import (
	"context"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
	"github.com/Aldonvacriates/E-Commerce-API/internal/validation"
)

// Store is the persistence surface the service needs. *Repository satisfies
// it; tests use an in-memory fake.
type Store interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type CreateParams struct {
	Name    string
	Address string
	Email   string
}

// UpdateParams enumerates the updatable fields; nil means "leave unchanged".
type UpdateParams struct {
	Name    *string
	Address *string
	Email   *string
}

// Create inserts a new customer after checking the email shape and
// uniqueness. The pre-check gives a clean Conflict for the common case; the
// unique index on customers.email backs it against concurrent creates.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domain.Customer, error) {
	if params.Name == "" {
		return nil, domain.InvalidField("name", "name is required")
	}
	if err := validation.Email(params.Email); err != nil {
		return nil, err
	}

	existing, err := s.store.FindByEmail(ctx, params.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("email already exists")
	}

	customer := &domain.Customer{
		Name:    params.Name,
		Address: params.Address,
		Email:   params.Email,
	}
	if err := s.store.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFound("customer", id)
	}
	return customer, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.store.List(ctx)
}

// Update applies a partial update. Email uniqueness is checked against the
// post-update value, excluding the customer's own row so re-submitting the
// current email is not a conflict.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*domain.Customer, error) {
	customer, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFound("customer", id)
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, domain.InvalidField("name", "name must not be empty")
		}
		customer.Name = *params.Name
	}
	if params.Address != nil {
		customer.Address = *params.Address
	}
	if params.Email != nil {
		if err := validation.Email(*params.Email); err != nil {
			return nil, err
		}
		customer.Email = *params.Email

		existing, err := s.store.FindByEmail(ctx, customer.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != customer.ID {
			return nil, domain.Conflict("email already exists")
		}
	}

	updated, err := s.store.Update(ctx, customer)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.NotFound("customer", id)
	}

	return customer, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFound("customer", id)
	}
	return nil
}
