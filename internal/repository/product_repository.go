package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"product-catalog/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the persistence contract consumed by the
// product service. Save follows the entity lifecycle rules: a product
// without an ID is inserted (storage assigns the ID and stamps
// created_at), an existing product is updated (storage stamps
// updated_at). Timestamp stamping is explicit here rather than hidden
// in database triggers so the contract stays testable without a live
// backend.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByName(ctx context.Context, name string) ([]*domain.Product, error)
	SearchByName(ctx context.Context, term string) ([]*domain.Product, error)
	FindAllByStatus(ctx context.Context, status domain.ProductStatus) ([]*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = "id, name, description, price, stock, status, created_at, updated_at"

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// FindByName retrieves products whose name matches exactly
func (r *productRepository) FindByName(ctx context.Context, name string) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name = $1
		ORDER BY id
	`

	return r.queryProducts(ctx, query, name)
}

// SearchByName retrieves products whose name contains the term,
// case-insensitively
func (r *productRepository) SearchByName(ctx context.Context, term string) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE $1
		ORDER BY id
	`

	return r.queryProducts(ctx, query, "%"+term+"%")
}

// FindAllByStatus retrieves all products with the given status
func (r *productRepository) FindAllByStatus(ctx context.Context, status domain.ProductStatus) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE status = $1
		ORDER BY id
	`

	return r.queryProducts(ctx, query, string(status))
}

// FindAll retrieves all products regardless of status
func (r *productRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY id
	`

	return r.queryProducts(ctx, query)
}

// Save inserts the product when it has no ID yet and updates it
// otherwise. Insert stamps created_at; update stamps updated_at.
func (r *productRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.ID == 0 {
		return r.insert(ctx, product)
	}
	return r.update(ctx, product)
}

func (r *productRepository) insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, description, price, stock, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	product.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		string(product.Status),
		product.CreatedAt,
	).Scan(&product.ID)

	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (r *productRepository) update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5,
		    status = $6, updated_at = $7
		WHERE id = $1
	`

	now := time.Now().UTC().Truncate(time.Microsecond)
	product.UpdatedAt = &now

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		string(product.Status),
		product.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, ErrProductNotFound
	}

	return product, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		product     domain.Product
		description sql.NullString
		updatedAt   sql.NullTime
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&description,
		&product.Price,
		&product.Stock,
		&product.Status,
		&product.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Description = description.String
	if updatedAt.Valid {
		t := updatedAt.Time
		product.UpdatedAt = &t
	}

	return &product, nil
}
