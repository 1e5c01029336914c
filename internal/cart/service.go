package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickmart/storefront-backend/internal/simulate"
	"github.com/quickmart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/quickmart/storefront-backend/pkg/errors"
	"github.com/quickmart/storefront-backend/pkg/logger"
	"github.com/quickmart/storefront-backend/pkg/metrics"
)

// Storage mirrors the in-memory cart to durable storage. Failures are
// logged and never surfaced to callers.
type Storage interface {
	Load(ctx context.Context, clientID string) ([]models.CartItem, error)
	Replace(ctx context.Context, clientID string, items []models.CartItem) error
}

// ChangeListener is invoked after every committed cart mutation with the
// new contents. Listeners run synchronously once the service has released
// its lock, so they may call back into the Service. They must not mutate
// items.
type ChangeListener func(ctx context.Context, clientID string, items []models.CartItem)

// Service owns a client's active cart.
type Service interface {
	Get(ctx context.Context, clientID string) ([]models.CartItem, error)
	AddItem(ctx context.Context, clientID, productID string, quantity int, price decimal.Decimal) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, clientID, productID string, quantity int) ([]models.CartItem, error)
	RemoveItem(ctx context.Context, clientID, productID string) ([]models.CartItem, error)
	Clear(ctx context.Context, clientID string) ([]models.CartItem, error)
	ItemCount(ctx context.Context, clientID string) (int, error)
	Subtotal(ctx context.Context, clientID string) (decimal.Decimal, error)
	OnChange(listener ChangeListener)
}

type service struct {
	mu        sync.Mutex
	carts     map[string][]models.CartItem
	loaded    map[string]bool
	storage   Storage
	logg      *logger.Logger
	store     *metrics.StoreMetrics
	listeners []ChangeListener
	latency   time.Duration
	now       func() time.Time
}

// Options configure the cart service. Storage and Metrics may be nil.
type Options struct {
	Storage    Storage
	Metrics    *metrics.StoreMetrics
	SimLatency time.Duration
	Now        func() time.Time
}

func NewService(logg *logger.Logger, opts Options) (Service, error) {
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service requires a logger")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		carts:   map[string][]models.CartItem{},
		loaded:  map[string]bool{},
		storage: opts.Storage,
		logg:    logg,
		store:   opts.Metrics,
		latency: opts.SimLatency,
		now:     now,
	}, nil
}

func (s *service) OnChange(listener ChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *service) Get(ctx context.Context, clientID string) ([]models.CartItem, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx, clientID)
	return cloneItems(s.carts[clientID]), nil
}

func (s *service) AddItem(ctx context.Context, clientID, productID string, quantity int, price decimal.Decimal) ([]models.CartItem, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId is required")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	s.mu.Lock()
	s.ensureLoaded(ctx, clientID)

	items := s.carts[clientID]
	merged := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{
			ID:        uuid.New(),
			ClientID:  clientID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: price,
			Position:  len(items),
			AddedAt:   s.now().UTC(),
		})
	}
	s.carts[clientID] = items
	notify := s.commit(ctx, clientID, "add")
	out := cloneItems(items)
	s.mu.Unlock()
	notify()
	return out, nil
}

func (s *service) UpdateQuantity(ctx context.Context, clientID, productID string, quantity int) ([]models.CartItem, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return s.remove(ctx, clientID, productID)
	}

	s.mu.Lock()
	s.ensureLoaded(ctx, clientID)

	notify := func() {}
	items := s.carts[clientID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			notify = s.commit(ctx, clientID, "update")
			break
		}
	}
	// Unknown products are a no-op, not an error.
	out := cloneItems(items)
	s.mu.Unlock()
	notify()
	return out, nil
}

func (s *service) RemoveItem(ctx context.Context, clientID, productID string) ([]models.CartItem, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.remove(ctx, clientID, productID)
}

func (s *service) remove(ctx context.Context, clientID, productID string) ([]models.CartItem, error) {
	s.mu.Lock()
	s.ensureLoaded(ctx, clientID)

	items := s.carts[clientID]
	kept := items[:0:0]
	for _, item := range items {
		if item.ProductID != productID {
			item.Position = len(kept)
			kept = append(kept, item)
		}
	}
	s.carts[clientID] = kept
	notify := s.commit(ctx, clientID, "remove")
	out := cloneItems(kept)
	s.mu.Unlock()
	notify()
	return out, nil
}

func (s *service) Clear(ctx context.Context, clientID string) ([]models.CartItem, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.loaded[clientID] = true
	s.carts[clientID] = nil
	notify := s.commit(ctx, clientID, "clear")
	s.mu.Unlock()
	notify()
	return []models.CartItem{}, nil
}

func (s *service) ItemCount(ctx context.Context, clientID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx, clientID)
	count := 0
	for _, item := range s.carts[clientID] {
		count += item.Quantity
	}
	return count, nil
}

func (s *service) Subtotal(ctx context.Context, clientID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx, clientID)
	subtotal := decimal.Zero
	for _, item := range s.carts[clientID] {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal, nil
}

// ensureLoaded hydrates the in-memory cart from storage on first access.
// A failed load starts the client with an empty cart. Callers hold s.mu.
func (s *service) ensureLoaded(ctx context.Context, clientID string) {
	if s.loaded[clientID] {
		return
	}
	s.loaded[clientID] = true
	if s.storage == nil {
		return
	}
	items, err := s.storage.Load(ctx, clientID)
	if err != nil {
		s.logg.Error(s.logg.WithClientID(ctx, clientID), "loading cart from storage", err)
		return
	}
	s.carts[clientID] = items
}

// commit mirrors the cart to storage and returns the listener dispatch
// for the caller to run after releasing s.mu, so listeners can call back
// into the service. Storage failures are logged and swallowed so the
// in-memory cart stays authoritative. Callers hold s.mu.
func (s *service) commit(ctx context.Context, clientID, op string) func() {
	s.store.IncCartOp(op)
	items := s.carts[clientID]
	if s.storage != nil {
		if err := s.storage.Replace(ctx, clientID, items); err != nil {
			s.logg.Error(s.logg.WithClientID(ctx, clientID), "persisting cart", err)
		}
	}
	if len(s.listeners) == 0 {
		return func() {}
	}
	listeners := append([]ChangeListener(nil), s.listeners...)
	snapshot := cloneItems(items)
	return func() {
		for _, listener := range listeners {
			listener(ctx, clientID, snapshot)
		}
	}
}

func cloneItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}
