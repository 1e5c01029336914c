package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/quickmart/storefront-backend/internal/simulate"
	pkgerrors "github.com/quickmart/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

//go:embed products.json
var productFixture []byte

// Product is one read-only catalog entry. Stock is the only mutable field,
// decremented through the checkout hook.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Rating      float64         `json:"rating"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
}

// CategoryNode summarizes one category for navigation.
type CategoryNode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PriceRange is the min/max price across the catalog.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// FilterParams narrows a product listing.
type FilterParams struct {
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	Categories  []string
	MinRating   float64
	InStockOnly bool
}

// Service exposes the read-only product catalog.
type Service interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByCategory(ctx context.Context, category string) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
	CategoryTree(ctx context.Context) ([]CategoryNode, error)
	GetPriceRange(ctx context.Context) (*PriceRange, error)
	Filter(ctx context.Context, params FilterParams) ([]Product, error)
	Featured(ctx context.Context) ([]Product, error)
	DecrementStock(ctx context.Context, id string, qty int) (*Product, error)
}

type service struct {
	mu       sync.RWMutex
	products []Product
	latency  time.Duration
}

// Options configure the catalog service.
type Options struct {
	SimLatency time.Duration
}

// NewService loads the bundled product fixture.
func NewService(opts Options) (Service, error) {
	var products []Product
	if err := json.Unmarshal(productFixture, &products); err != nil {
		return nil, fmt.Errorf("decoding product fixture: %w", err)
	}
	return &service{products: products, latency: opts.SimLatency}, nil
}

func (s *service) GetAll(ctx context.Context) ([]Product, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.products), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, product := range s.products {
		if product.ID == id {
			copied := product
			return &copied, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *service) GetByCategory(ctx context.Context, category string) ([]Product, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Accept both the display name and the slug the category tree exposes.
	slug := slugify(category)
	var out []Product
	for _, product := range s.products {
		if strings.EqualFold(product.Category, category) || slugify(product.Category) == slug {
			out = append(out, product)
		}
	}
	return out, nil
}

func (s *service) Search(ctx context.Context, query string) ([]Product, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	term := strings.ToLower(strings.TrimSpace(query))
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, product := range s.products {
		if strings.Contains(strings.ToLower(product.Name), term) ||
			strings.Contains(strings.ToLower(product.Description), term) ||
			strings.Contains(strings.ToLower(product.Category), term) {
			out = append(out, product)
		}
	}
	return out, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]struct{}{}
	var out []string
	for _, product := range s.products {
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		out = append(out, product.Category)
	}
	return out, nil
}

func (s *service) CategoryTree(ctx context.Context) ([]CategoryNode, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	nodes := make([]CategoryNode, 0, len(categories))
	for _, category := range categories {
		count := 0
		for _, product := range s.products {
			if product.Category == category {
				count++
			}
		}
		nodes = append(nodes, CategoryNode{
			ID:    slugify(category),
			Name:  category,
			Count: count,
		})
	}
	return nodes, nil
}

func (s *service) GetPriceRange(ctx context.Context) (*PriceRange, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.products) == 0 {
		return &PriceRange{}, nil
	}
	min := s.products[0].Price
	max := s.products[0].Price
	for _, product := range s.products[1:] {
		if product.Price.LessThan(min) {
			min = product.Price
		}
		if product.Price.GreaterThan(max) {
			max = product.Price
		}
	}
	return &PriceRange{Min: min.Floor(), Max: max.Ceil()}, nil
}

func (s *service) Filter(ctx context.Context, params FilterParams) ([]Product, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, product := range s.products {
		if params.PriceMin != nil && product.Price.LessThan(*params.PriceMin) {
			continue
		}
		if params.PriceMax != nil && product.Price.GreaterThan(*params.PriceMax) {
			continue
		}
		if len(params.Categories) > 0 && !containsFold(params.Categories, product.Category) {
			continue
		}
		if params.MinRating > 0 && product.Rating < params.MinRating {
			continue
		}
		if params.InStockOnly && product.Stock <= 0 {
			continue
		}
		out = append(out, product)
	}
	return out, nil
}

func (s *service) Featured(ctx context.Context) ([]Product, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, product := range s.products {
		if product.Featured {
			out = append(out, product)
		}
	}
	return out, nil
}

func (s *service) DecrementStock(ctx context.Context, id string, qty int) (*Product, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		s.products[i].Stock -= qty
		copied := s.products[i]
		return &copied, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func cloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}
	return false
}

func slugify(value string) string {
	slug := strings.ToLower(strings.TrimSpace(value))
	fields := strings.FieldsFunc(slug, func(r rune) bool {
		return r == ' ' || r == '&'
	})
	return strings.Join(fields, "-")
}

// SortByPrice orders products ascending or descending by price in place.
func SortByPrice(products []Product, ascending bool) {
	sort.SliceStable(products, func(i, j int) bool {
		if ascending {
			return products[i].Price.LessThan(products[j].Price)
		}
		return products[i].Price.GreaterThan(products[j].Price)
	})
}
