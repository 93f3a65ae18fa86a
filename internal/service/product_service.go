package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"product-catalog/internal/domain"
	"product-catalog/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrProductAlreadyExists = errors.New("product with same name already exists")
	ErrInvalidProductStatus = errors.New("invalid product status value")
)

// ProductRequest is the input payload for create and update. The status
// token is ignored on create (new products always start ACTIVE) and
// required on update.
type ProductRequest struct {
	Name        string           `json:"name" validate:"required,min=2,max=100"`
	Description string           `json:"description" validate:"max=500"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Stock       *int             `json:"stock" validate:"required,min=0"`
	Status      string           `json:"status"`
}

// ProductResponse is the full projection of a persisted product
type ProductResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       decimal.Decimal      `json:"price"`
	Stock       int                  `json:"stock"`
	Status      domain.ProductStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   *time.Time           `json:"updatedAt,omitempty"`
}

// ProductService defines the business operations on products. Both the
// REST and the GraphQL adapters call into this one contract.
//
// Failure conditions surface as typed errors: *ValidationError for
// per-field constraint violations, ErrInvalidProductStatus for an
// unparseable status token on update, ErrProductAlreadyExists for a
// duplicate name on create, and repository.ErrProductNotFound when an
// update or delete target is missing. GetByID reports absence with a
// nil response instead of an error; the adapter decides whether that
// is a failure.
type ProductService interface {
	GetAll(ctx context.Context) ([]ProductResponse, error)
	GetAllActive(ctx context.Context) ([]ProductResponse, error)
	GetByStatus(ctx context.Context, status domain.ProductStatus) ([]ProductResponse, error)
	GetByID(ctx context.Context, id int64) (*ProductResponse, error)
	GetByName(ctx context.Context, name string) ([]ProductResponse, error)
	SearchByTerm(ctx context.Context, term string) ([]ProductResponse, error)
	Create(ctx context.Context, req ProductRequest) (*ProductResponse, error)
	Update(ctx context.Context, id int64, req ProductRequest) (*ProductResponse, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	repo   repository.ProductRepository
	logger *zap.Logger
}

// NewProductService creates a new instance of ProductService
func NewProductService(repo repository.ProductRepository, logger *zap.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger,
	}
}

// GetAll returns every product regardless of status
func (s *productService) GetAll(ctx context.Context) ([]ProductResponse, error) {
	s.logger.Info("Starting getAll")

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	responses := toResponses(products)
	s.logger.Info("Completed getAll", zap.Int("count", len(responses)))
	return responses, nil
}

// GetAllActive returns products with status ACTIVE
func (s *productService) GetAllActive(ctx context.Context) ([]ProductResponse, error) {
	s.logger.Info("Starting getAllActive")

	products, err := s.repo.FindAllByStatus(ctx, domain.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}

	responses := toResponses(products)
	s.logger.Info("Completed getAllActive", zap.Int("count", len(responses)))
	return responses, nil
}

// GetByStatus returns products with exactly the given status. The
// status is expected to be a known enum value; unrecognized tokens are
// rejected at the transport boundary before reaching this operation.
func (s *productService) GetByStatus(ctx context.Context, status domain.ProductStatus) ([]ProductResponse, error) {
	s.logger.Info("Starting getByStatus", zap.String("status", string(status)))

	products, err := s.repo.FindAllByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by status: %w", err)
	}

	responses := toResponses(products)
	s.logger.Info("Completed getByStatus", zap.Int("count", len(responses)))
	return responses, nil
}

// GetByID returns the product with the given ID, or nil when no such
// product exists. Absence is not an error here; the caller decides.
func (s *productService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	s.logger.Info("Starting getById", zap.Int64("id", id))

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			s.logger.Info("Completed getById", zap.Int64("id", id), zap.Bool("found", false))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	resp := toResponse(product)
	s.logger.Info("Completed getById", zap.Int64("id", id), zap.Bool("found", true))
	return &resp, nil
}

// GetByName returns products whose name matches exactly
func (s *productService) GetByName(ctx context.Context, name string) ([]ProductResponse, error) {
	s.logger.Info("Starting getByName", zap.String("name", name))

	products, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by name: %w", err)
	}

	responses := toResponses(products)
	s.logger.Info("Completed getByName", zap.Int("count", len(responses)))
	return responses, nil
}

// SearchByTerm returns products whose name contains the term,
// case-insensitively
func (s *productService) SearchByTerm(ctx context.Context, term string) ([]ProductResponse, error) {
	s.logger.Info("Starting searchByTerm", zap.String("term", term))

	products, err := s.repo.SearchByName(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	responses := toResponses(products)
	s.logger.Info("Completed searchByTerm", zap.Int("count", len(responses)))
	return responses, nil
}

// Create validates the request, rejects duplicate names and persists a
// new product with status forced to ACTIVE.
//
// The duplicate check deliberately inspects products of every status,
// DELETED included: a name once used by a soft-deleted product still
// conflicts. Two concurrent creates with the same name can both pass
// the check before either writes; the storage layer is the place for a
// stronger guarantee if one is ever needed.
func (s *productService) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	s.logger.Info("Starting create", zap.String("name", req.Name))

	if err := validateRequest(req); err != nil {
		s.logger.Debug("Create validation failed", zap.Error(err))
		return nil, err
	}

	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing products: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Warn("Product name already in use", zap.String("name", req.Name))
		return nil, ErrProductAlreadyExists
	}

	product := toEntity(req)
	product.Status = domain.StatusActive

	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	resp := toResponse(saved)
	s.logger.Info("Created product", zap.Int64("id", saved.ID))
	return &resp, nil
}

// Update validates the request and the status token, then overwrites
// every mutable field of the product with the request values. Unlike
// create, the requested status is honored as-is. The status token is
// checked before the existence lookup.
func (s *productService) Update(ctx context.Context, id int64, req ProductRequest) (*ProductResponse, error) {
	s.logger.Info("Starting update", zap.Int64("id", id))

	if err := validateRequest(req); err != nil {
		s.logger.Debug("Update validation failed", zap.Error(err))
		return nil, err
	}

	status, err := domain.ParseProductStatus(req.Status)
	if err != nil {
		s.logger.Error("Invalid product status value", zap.String("status", req.Status))
		return nil, ErrInvalidProductStatus
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			s.logger.Error("Product not found for update", zap.Int64("id", id))
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = *req.Price
	product.Stock = *req.Stock
	product.Status = status

	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	resp := toResponse(saved)
	s.logger.Info("Updated product", zap.Int64("id", id))
	return &resp, nil
}

// Delete marks the product as DELETED. The record is kept in storage.
func (s *productService) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Starting delete", zap.Int64("id", id))

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			s.logger.Error("Product not found for delete", zap.Int64("id", id))
			return repository.ErrProductNotFound
		}
		return fmt.Errorf("failed to find product: %w", err)
	}

	product.Status = domain.StatusDeleted
	if _, err := s.repo.Save(ctx, product); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info("Deleted product", zap.Int64("id", id))
	return nil
}

// toEntity maps a validated request to a new entity. ID, status and
// timestamps are left for the caller and the storage layer to assign.
func toEntity(req ProductRequest) *domain.Product {
	return &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
	}
}

func toResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Status:      product.Status,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toResponses(products []*domain.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, toResponse(product))
	}
	return responses
}
