package products

import (
	"context"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
	"github.com/Aldonvacriates/E-Commerce-API/internal/validation"
)

type Store interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type CreateParams struct {
	Name  string
	Price float64
}

type UpdateParams struct {
	Name  *string
	Price *float64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*domain.Product, error) {
	if params.Name == "" {
		return nil, domain.InvalidField("name", "name is required")
	}
	if err := validation.Price(params.Price); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:  params.Name,
		Price: params.Price,
	}
	if err := s.store.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", id)
	}
	return product, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.store.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*domain.Product, error) {
	product, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", id)
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, domain.InvalidField("name", "name must not be empty")
		}
		product.Name = *params.Name
	}
	if params.Price != nil {
		if err := validation.Price(*params.Price); err != nil {
			return nil, err
		}
		product.Price = *params.Price
	}

	updated, err := s.store.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.NotFound("product", id)
	}

	return product, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFound("product", id)
	}
	return nil
}
