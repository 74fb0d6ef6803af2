package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rdlaksana/store-inventory-service/internal/customer/domain"
	"github.com/rdlaksana/store-inventory-service/internal/customer/repository"
	"github.com/rdlaksana/store-inventory-service/internal/platform/logger"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrCustomerAlreadyExists = errors.New("customer with this username already exists")
)

var jwtSecretKey []byte

func init() {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Println("Warning: JWT_SECRET_KEY not set, using default insecure key")
		secret = "store-inventory-insecure-dev-key" // fallback
	}
	jwtSecretKey = []byte(secret)
}

// JWTSecret dipakai middleware untuk memverifikasi token yang kita terbitkan.
func JWTSecret() []byte {
	return jwtSecretKey
}

type CustomerService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.Customer, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Customer, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Register: failed to hash password", err)
		return nil, fmt.Errorf("could not process registration: %w", err)
	}

	customer := &domain.Customer{
		Name:         req.Name,
		Email:        req.Email,
		Username:     req.Username,
		Role:         domain.RoleCustomer, // Registrasi publik selalu role customer
		PasswordHash: string(hashedPassword),
	}

	err = s.repo.CreateCustomer(ctx, customer)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerConflict) {
			return nil, ErrCustomerAlreadyExists
		}
		logger.Error("Register: failed to create customer in repo", err)
		return nil, fmt.Errorf("could not save customer: %w", err)
	}

	customer.PasswordHash = "" // Hapus sebelum dikembalikan
	return customer, nil
}

func (s *customerService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)

	customer, err := s.repo.GetCustomerByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error("Login: failed to get customer by username", err)
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password))
	if err != nil { // Password tidak cocok
		return nil, ErrInvalidCredentials
	}

	// Buat JWT Token, role ikut di-claim supaya bisa dipakai gate manager
	claims := jwt.MapClaims{
		"customer_id": customer.ID,
		"username":    customer.Username,
		"role":        customer.Role,
		"exp":         time.Now().Add(time.Hour * 72).Unix(), // Token berlaku 72 jam
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		logger.Error("Login: failed to sign token", err)
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	customer.PasswordHash = "" // Hapus sebelum dikembalikan
	return &domain.LoginResponse{
		Customer: *customer,
		Token:    tokenString,
	}, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.PasswordHash = ""
	return customer, nil
}
