package repository

import "github.com/Pavel26ru/BruCup/internal/domain"

// CatalogRepository is read-only access to the static menu. Lookups never
// fail: a miss is a nil result, not an error.
type CatalogRepository interface {
	AllProducts() []domain.Product
	ProductByID(id int) *domain.Product
	OptionsByCategory(category string) []domain.Option
	OptionByID(id int) *domain.Option
}
