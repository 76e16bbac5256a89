package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/repository"
)

// CatalogRepository serves the static menu. Data is loaded once and never
// mutated, so reads need no locking.
type CatalogRepository struct {
	products []domain.Product
	byID     map[int]domain.Product
	options  map[string][]domain.Option
	optByID  map[int]domain.Option
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository builds a catalog from already-decoded data.
func NewCatalogRepository(products []domain.Product, options map[string][]domain.Option) *CatalogRepository {
	c := &CatalogRepository{
		products: products,
		byID:     make(map[int]domain.Product, len(products)),
		options:  options,
		optByID:  make(map[int]domain.Option),
	}
	for _, p := range products {
		c.byID[p.ID] = p
	}
	for category, items := range options {
		for _, o := range items {
			o.Category = category
			c.optByID[o.ID] = o
		}
	}
	return c
}

// LoadCatalog reads the menu and options JSON files.
// menu.json: [{"id":1,"name":"Латте","volumes":[{"volume":"300мл","price":200}]}]
// options.json: {"milk":[{"id":1,"name":"Овсяное","price":50}],"syrups":[...]}
func LoadCatalog(menuPath, optionsPath string) (*CatalogRepository, error) {
	menuRaw, err := os.ReadFile(menuPath)
	if err != nil {
		return nil, fmt.Errorf("read menu: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(menuRaw, &products); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	optsRaw, err := os.ReadFile(optionsPath)
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	var options map[string][]domain.Option
	if err := json.Unmarshal(optsRaw, &options); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}

	return NewCatalogRepository(products, options), nil
}

func (c *CatalogRepository) AllProducts() []domain.Product {
	return c.products
}

func (c *CatalogRepository) ProductByID(id int) *domain.Product {
	p, ok := c.byID[id]
	if !ok {
		return nil
	}
	return &p
}

func (c *CatalogRepository) OptionsByCategory(category string) []domain.Option {
	items := c.options[category]
	out := make([]domain.Option, len(items))
	for i, o := range items {
		o.Category = category
		out[i] = o
	}
	return out
}

func (c *CatalogRepository) OptionByID(id int) *domain.Option {
	o, ok := c.optByID[id]
	if !ok {
		return nil
	}
	return &o
}
