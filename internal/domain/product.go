package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus represents the lifecycle state of a product
type ProductStatus string

const (
	StatusActive  ProductStatus = "ACTIVE"
	StatusBlocked ProductStatus = "BLOCKED"
	StatusDeleted ProductStatus = "DELETED"
)

// Statuses lists all known product statuses
func Statuses() []ProductStatus {
	return []ProductStatus{StatusActive, StatusBlocked, StatusDeleted}
}

// ParseProductStatus converts a status token into a ProductStatus.
// The comparison is case-insensitive; unknown tokens are rejected.
func ParseProductStatus(token string) (ProductStatus, error) {
	switch ProductStatus(strings.ToUpper(token)) {
	case StatusActive:
		return StatusActive, nil
	case StatusBlocked:
		return StatusBlocked, nil
	case StatusDeleted:
		return StatusDeleted, nil
	}
	return "", fmt.Errorf("unknown product status %q", token)
}

// Valid reports whether s is one of the known statuses
func (s ProductStatus) Valid() bool {
	switch s {
	case StatusActive, StatusBlocked, StatusDeleted:
		return true
	}
	return false
}

// Product represents a product in the catalog. The ID is assigned by
// storage on first save and never changes afterwards. Records are never
// physically removed; delete flips the status to DELETED.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	Status      ProductStatus   `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}
