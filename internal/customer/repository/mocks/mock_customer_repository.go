package mocks

import (
	"context"

	"github.com/rdlaksana/store-inventory-service/internal/customer/domain"
	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	if customer != nil && args.Error(0) == nil {
		customer.ID = 1 // ID diset oleh mock
	}
	return args.Error(0)
}

func (m *MockCustomerRepository) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerRepository) GetCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	args := m.Called(ctx, username)
	if c := args.Get(0); c != nil {
		return c.(*domain.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}
