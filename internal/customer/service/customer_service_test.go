package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rdlaksana/store-inventory-service/internal/customer/domain"
	"github.com/rdlaksana/store-inventory-service/internal/customer/repository"
	"github.com/rdlaksana/store-inventory-service/internal/customer/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestCustomerService_Register(t *testing.T) {
	mockRepo := new(mocks.MockCustomerRepository)
	service := NewCustomerService(mockRepo)
	ctx := context.TODO()

	t.Run("Successful registration", func(t *testing.T) {
		req := domain.RegisterRequest{Name: "Budi", Email: "Budi@Example.com", Username: "budi", Password: "rahasia-banget"}
		mockRepo.On("CreateCustomer", ctx, mock.MatchedBy(func(c *domain.Customer) bool {
			// Email dinormalisasi, role selalu customer, password sudah di-hash
			return c.Email == "budi@example.com" &&
				c.Role == domain.RoleCustomer &&
				bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte("rahasia-banget")) == nil
		})).Return(nil).Once()

		customer, err := service.Register(ctx, req)
		assert.NoError(t, err)
		assert.NotNil(t, customer)
		assert.Equal(t, int64(1), customer.ID) // ID diset oleh mock
		assert.Empty(t, customer.PasswordHash)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		req := domain.RegisterRequest{Name: "Budi", Email: "budi@example.com", Username: "budi", Password: "rahasia-banget"}
		mockRepo.On("CreateCustomer", ctx, mock.Anything).Return(repository.ErrCustomerConflict).Once()

		customer, err := service.Register(ctx, req)
		assert.ErrorIs(t, err, ErrCustomerAlreadyExists)
		assert.Nil(t, customer)
		mockRepo.AssertExpectations(t)
	})
}

func TestCustomerService_Login(t *testing.T) {
	mockRepo := new(mocks.MockCustomerRepository)
	service := NewCustomerService(mockRepo)
	ctx := context.TODO()

	hash, _ := bcrypt.GenerateFromPassword([]byte("kata-sandi"), bcrypt.DefaultCost)
	manager := &domain.Customer{
		ID: 7, Name: "Sari", Email: "sari@example.com", Username: "sari",
		Role: domain.RoleManager, PasswordHash: string(hash),
	}

	t.Run("Successful login issues token with role claim", func(t *testing.T) {
		mockRepo.On("GetCustomerByUsername", ctx, "sari").Return(manager, nil).Once()

		resp, err := service.Login(ctx, domain.LoginRequest{Username: "sari", Password: "kata-sandi"})
		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp.Customer.PasswordHash)

		token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
			return JWTSecret(), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, domain.RoleManager, claims["role"])
		assert.Equal(t, "sari", claims["username"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo.On("GetCustomerByUsername", ctx, "sari").Return(manager, nil).Once()

		resp, err := service.Login(ctx, domain.LoginRequest{Username: "sari", Password: "salah"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, resp)
	})

	t.Run("Unknown username", func(t *testing.T) {
		mockRepo.On("GetCustomerByUsername", ctx, "tidak-ada").Return(nil, repository.ErrCustomerNotFound).Once()

		resp, err := service.Login(ctx, domain.LoginRequest{Username: "tidak-ada", Password: "apapun"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, resp)
	})
}

func TestCustomerService_GetCustomer(t *testing.T) {
	mockRepo := new(mocks.MockCustomerRepository)
	service := NewCustomerService(mockRepo)
	ctx := context.TODO()

	t.Run("Found", func(t *testing.T) {
		stored := &domain.Customer{ID: 3, Username: "budi", Role: domain.RoleCustomer, PasswordHash: "hash"}
		mockRepo.On("GetCustomerByID", ctx, int64(3)).Return(stored, nil).Once()

		customer, err := service.GetCustomer(ctx, 3)
		assert.NoError(t, err)
		assert.Empty(t, customer.PasswordHash)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo.On("GetCustomerByID", ctx, int64(404)).Return(nil, repository.ErrCustomerNotFound).Once()

		customer, err := service.GetCustomer(ctx, 404)
		assert.ErrorIs(t, err, repository.ErrCustomerNotFound)
		assert.Nil(t, customer)
	})
}
