package customers

import (
	"context"
	"fmt"
	"testing"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
)

type memStore struct {
	customers map[string]domain.Customer
	nextID    int
}

func newMemStore() *memStore {
	return &memStore{customers: make(map[string]domain.Customer)}
}

func (s *memStore) Create(_ context.Context, customer *domain.Customer) error {
	s.nextID++
	customer.ID = fmt.Sprintf("customer-%d", s.nextID)
	s.customers[customer.ID] = *customer
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	if customer, ok := s.customers[id]; ok {
		return &customer, nil
	}
	return nil, nil
}

func (s *memStore) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	for _, customer := range s.customers {
		if customer.Email == email {
			match := customer
			return &match, nil
		}
	}
	return nil, nil
}

func (s *memStore) List(_ context.Context) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		customers = append(customers, customer)
	}
	return customers, nil
}

func (s *memStore) Update(_ context.Context, customer *domain.Customer) (bool, error) {
	if _, ok := s.customers[customer.ID]; !ok {
		return false, nil
	}
	s.customers[customer.ID] = *customer
	return true, nil
}

func (s *memStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.customers[id]; !ok {
		return false, nil
	}
	delete(s.customers, id)
	return true, nil
}

func strPtr(s string) *string { return &s }

func TestCreateCustomer(t *testing.T) {
	service := NewService(newMemStore())

	customer, err := service.Create(context.Background(), CreateParams{
		Name:    "Alice",
		Address: "12 Main St",
		Email:   "alice@example.com",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if customer.ID == "" {
		t.Fatal("expected id to be assigned")
	}
}

func TestCreateCustomerRejectsBadEmail(t *testing.T) {
	service := NewService(newMemStore())

	_, err := service.Create(context.Background(), CreateParams{Name: "Alice", Email: "not-an-email"})
	if domain.KindOf(err) != domain.ErrInvalidField {
		t.Fatalf("expected invalid_field, got %v", err)
	}
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	service := NewService(newMemStore())
	ctx := context.Background()

	if _, err := service.Create(ctx, CreateParams{Name: "Alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := service.Create(ctx, CreateParams{Name: "Other Alice", Email: "alice@example.com"})
	if domain.KindOf(err) != domain.ErrConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateCustomerPartial(t *testing.T) {
	service := NewService(newMemStore())
	ctx := context.Background()

	customer, err := service.Create(ctx, CreateParams{Name: "Alice", Address: "12 Main St", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := service.Update(ctx, customer.ID, UpdateParams{Address: strPtr("34 Oak Ave")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Address != "34 Oak Ave" {
		t.Fatalf("expected address updated, got %q", updated.Address)
	}
	if updated.Name != "Alice" || updated.Email != "alice@example.com" {
		t.Fatalf("expected untouched fields preserved, got %+v", updated)
	}
}

func TestUpdateCustomerEmailConflict(t *testing.T) {
	service := NewService(newMemStore())
	ctx := context.Background()

	if _, err := service.Create(ctx, CreateParams{Name: "Alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	bob, err := service.Create(ctx, CreateParams{Name: "Bob", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = service.Update(ctx, bob.ID, UpdateParams{Email: strPtr("alice@example.com")})
	if domain.KindOf(err) != domain.ErrConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateCustomerOwnEmailIsNotAConflict(t *testing.T) {
	service := NewService(newMemStore())
	ctx := context.Background()

	customer, err := service.Create(ctx, CreateParams{Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := service.Update(ctx, customer.ID, UpdateParams{
		Name:  strPtr("Alice B"),
		Email: strPtr("alice@example.com"),
	})
	if err != nil {
		t.Fatalf("expected re-submitting own email to succeed, got %v", err)
	}
	if updated.Name != "Alice B" {
		t.Fatalf("expected name updated, got %q", updated.Name)
	}
}

func TestUpdateCustomerNotFound(t *testing.T) {
	service := NewService(newMemStore())

	_, err := service.Update(context.Background(), "ghost", UpdateParams{Name: strPtr("X")})
	if domain.KindOf(err) != domain.ErrNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestDeleteCustomerTwice(t *testing.T) {
	service := NewService(newMemStore())
	ctx := context.Background()

	customer, err := service.Create(ctx, CreateParams{Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.Delete(ctx, customer.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := service.Delete(ctx, customer.ID); domain.KindOf(err) != domain.ErrNotFound {
		t.Fatalf("expected not_found on second delete, got %v", err)
	}
}
