package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rdlaksana/store-inventory-service/internal/customer/domain"
	"github.com/rdlaksana/store-inventory-service/internal/platform/logger"
)

var ErrCustomerNotFound = errors.New("customer not found")
var ErrCustomerConflict = errors.New("customer with this username already exists")

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error)
}

type postgresCustomerRepository struct {
	db *sql.DB
}

func NewPostgresCustomerRepository(db *sql.DB) CustomerRepository {
	return &postgresCustomerRepository{db: db}
}

func (r *postgresCustomerRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	query := `INSERT INTO customers (name, email, username, role, password_hash, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`

	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		customer.Name, customer.Email, customer.Username, customer.Role, customer.PasswordHash,
		customer.CreatedAt, customer.UpdatedAt,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		// Kode error '23505' adalah unique_violation (username sudah dipakai)
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			logger.Error("CreateCustomer: unique violation", err)
			return ErrCustomerConflict
		}
		logger.Error("CreateCustomer: failed to insert customer", err)
		return err
	}
	return nil
}

func (r *postgresCustomerRepository) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `SELECT id, name, email, username, role, password_hash, created_at, updated_at
              FROM customers WHERE id = $1`
	customer := &domain.Customer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID, &customer.Name, &customer.Email, &customer.Username,
		&customer.Role, &customer.PasswordHash, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		logger.Error("GetCustomerByID: query failed", err)
		return nil, err
	}
	return customer, nil
}

func (r *postgresCustomerRepository) GetCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	query := `SELECT id, name, email, username, role, password_hash, created_at, updated_at
              FROM customers WHERE username = $1`
	customer := &domain.Customer{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&customer.ID, &customer.Name, &customer.Email, &customer.Username,
		&customer.Role, &customer.PasswordHash, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		logger.Error("GetCustomerByUsername: query failed", err)
		return nil, err
	}
	return customer, nil
}
