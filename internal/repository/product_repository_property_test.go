package repository

import (
	"context"
	"testing"

	"product-catalog/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

// Feature: product-catalog, Property 10: Persisting a product preserves attributes
func TestProperty_SavePreservesAttributes(t *testing.T) {
	repo := NewProductRepository(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("saving and retrieving a product preserves all attributes", prop.ForAll(
		func(name string, description string, price float64, stock int) bool {
			ctx := context.Background()

			// The price column is NUMERIC(12, 2)
			rounded := decimal.NewFromFloat(price).Round(2)

			saved, err := repo.Save(ctx, &domain.Product{
				Name:        name,
				Description: description,
				Price:       rounded,
				Stock:       stock,
				Status:      domain.StatusActive,
			})
			if err != nil {
				t.Logf("FAIL: Save returned error: %v", err)
				return false
			}

			found, err := repo.FindByID(ctx, saved.ID)
			if err != nil {
				t.Logf("FAIL: FindByID returned error: %v", err)
				return false
			}

			if found.Name != name {
				t.Logf("FAIL: name %q != %q", found.Name, name)
				return false
			}
			if found.Description != description {
				t.Logf("FAIL: description %q != %q", found.Description, description)
				return false
			}
			if !found.Price.Equal(rounded) {
				t.Logf("FAIL: price %s != %s", found.Price, rounded)
				return false
			}
			if found.Stock != stock {
				t.Logf("FAIL: stock %d != %d", found.Stock, stock)
				return false
			}
			return found.Status == domain.StatusActive
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) >= 1 && len(s) <= 100 }),
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) <= 500 }),
		gen.Float64Range(0, 1_000_000),
		gen.IntRange(0, 1_000_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
