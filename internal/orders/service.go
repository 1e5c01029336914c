package orders

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quickmart/storefront-backend/internal/simulate"
	"github.com/quickmart/storefront-backend/pkg/db/models"
	"github.com/quickmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/quickmart/storefront-backend/pkg/errors"
	"github.com/quickmart/storefront-backend/pkg/logger"
	"github.com/quickmart/storefront-backend/pkg/metrics"
	"github.com/quickmart/storefront-backend/pkg/types"
)

// Storage mirrors the in-memory order history to durable storage.
// Failures are logged and never surfaced to callers.
type Storage interface {
	LoadAll(ctx context.Context) ([]models.Order, error)
	Save(ctx context.Context, order *models.Order) error
}

// Notifier delivers order lifecycle notifications. Delivery failures never
// block or fail the triggering operation.
type Notifier interface {
	SendOrderCreated(ctx context.Context, order *models.Order, recipient string) error
	SendStatusChanged(ctx context.Context, order *models.Order, recipient string) error
}

// CreateParams is everything needed to place an order: the cart snapshot,
// pricing breakdown, and checkout form state.
type CreateParams struct {
	ClientID        string
	Items           models.OrderItems
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Shipping        decimal.Decimal
	Total           decimal.Decimal
	ShippingAddress types.Address
	PaymentMethod   string
	Email           string
}

// Service owns the order history.
type Service interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, params CreateParams) (*models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
	GetRecent(ctx context.Context, limit int) ([]models.Order, error)
	GetByStatus(ctx context.Context, status string) ([]models.Order, error)
}

type service struct {
	mu       sync.Mutex
	orders   []models.Order
	storage  Storage
	notifier Notifier
	logg     *logger.Logger
	store    *metrics.StoreMetrics

	recentLimit      int
	deliveryOffset   time.Duration
	defaultRecipient string
	latency          time.Duration
	now              func() time.Time
	newID            func(now time.Time) string
}

// Options configure the order service. Storage, Notifier and Metrics may
// be nil.
type Options struct {
	Storage          Storage
	Notifier         Notifier
	Metrics          *metrics.StoreMetrics
	RecentLimit      int
	DeliveryOffset   time.Duration
	DefaultRecipient string
	SimLatency       time.Duration
	Now              func() time.Time
}

func NewService(ctx context.Context, logg *logger.Logger, opts Options) (Service, error) {
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order service requires a logger")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 5
	}
	if opts.DeliveryOffset <= 0 {
		opts.DeliveryOffset = 7 * 24 * time.Hour
	}
	if opts.DefaultRecipient == "" {
		opts.DefaultRecipient = "customer@example.com"
	}

	svc := &service{
		storage:          opts.Storage,
		notifier:         opts.Notifier,
		logg:             logg,
		store:            opts.Metrics,
		recentLimit:      opts.RecentLimit,
		deliveryOffset:   opts.DeliveryOffset,
		defaultRecipient: opts.DefaultRecipient,
		latency:          opts.SimLatency,
		now:              now,
		newID: func(now time.Time) string {
			return fmt.Sprintf("ORD-%d", now.UnixMilli())
		},
	}

	if opts.Storage != nil {
		loaded, err := opts.Storage.LoadAll(ctx)
		if err != nil {
			logg.Error(ctx, "loading order history from storage", err)
		} else {
			svc.orders = cloneOrders(loaded)
		}
	}
	return svc, nil
}

// refreshLocked folds the durable history into the in-memory one before a
// read or write. The api and cron-worker processes share one database, so
// an order may have been created or advanced by the other process since
// this one last looked. The timeline is append-only, which makes its
// length a version stamp: the longer copy wins. Load failures keep
// serving the cached history. Callers must hold s.mu.
func (s *service) refreshLocked(ctx context.Context) {
	if s.storage == nil {
		return
	}
	stored, err := s.storage.LoadAll(ctx)
	if err != nil {
		s.logg.Error(ctx, "refreshing order history from storage", err)
		return
	}
	byID := make(map[string]int, len(s.orders))
	for i := range s.orders {
		byID[s.orders[i].ID] = i
	}
	for i := range stored {
		if j, ok := byID[stored[i].ID]; ok {
			if len(stored[i].Timeline) > len(s.orders[j].Timeline) {
				s.orders[j] = *cloneOrder(&stored[i])
			}
			continue
		}
		s.orders = append(s.orders, *cloneOrder(&stored[i]))
	}
	sortByCreatedDesc(s.orders)
}

func (s *service) GetAll(ctx context.Context) ([]models.Order, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked(ctx)
	out := cloneOrders(s.orders)
	sortByCreatedDesc(out)
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked(ctx)
	for i := range s.orders {
		if s.orders[i].ID == id {
			return cloneOrder(&s.orders[i]), nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Order, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	if len(params.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}

	createdAt := s.now().UTC()
	order := models.Order{
		ID:                s.newID(createdAt),
		ClientID:          params.ClientID,
		Items:             params.Items,
		Subtotal:          params.Subtotal,
		Tax:               params.Tax,
		Shipping:          params.Shipping,
		Total:             params.Total,
		ShippingAddress:   params.ShippingAddress,
		PaymentMethod:     params.PaymentMethod,
		Email:             params.Email,
		Status:            enums.OrderStatusPending,
		EstimatedDelivery: createdAt.Add(s.deliveryOffset),
		Timeline: types.Timeline{{
			Status:      enums.OrderStatusPending,
			Timestamp:   createdAt,
			Description: enums.OrderStatusPending.Description(),
		}},
		CreatedAt: createdAt,
	}

	s.mu.Lock()
	s.orders = append([]models.Order{order}, s.orders...)
	s.mu.Unlock()

	s.store.IncOrderCreated()
	s.persist(ctx, &order)
	s.notify(ctx, &order, true)
	return cloneOrder(&order), nil
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
	}

	s.mu.Lock()
	s.refreshLocked(ctx)
	var updated *models.Order
	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		s.orders[i].Status = parsed
		s.orders[i].Timeline = append(s.orders[i].Timeline, types.TimelineEntry{
			Status:      parsed,
			Timestamp:   s.now().UTC(),
			Description: parsed.Description(),
		})
		updated = cloneOrder(&s.orders[i])
		break
	}
	s.mu.Unlock()

	if updated == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	s.store.IncStatusUpdate(parsed.String())
	s.persist(ctx, updated)
	s.notify(ctx, updated, false)
	return updated, nil
}

func (s *service) GetRecent(ctx context.Context, limit int) ([]models.Order, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.recentLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked(ctx)
	out := cloneOrders(s.orders)
	sortByCreatedDesc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *service) GetByStatus(ctx context.Context, status string) ([]models.Order, error) {
	if err := simulate.Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked(ctx)
	var out []models.Order
	for i := range s.orders {
		if s.orders[i].Status == parsed {
			out = append(out, *cloneOrder(&s.orders[i]))
		}
	}
	return out, nil
}

// persist mirrors an order to storage. Failures are logged and swallowed
// so the in-memory history stays authoritative.
func (s *service) persist(ctx context.Context, order *models.Order) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Save(ctx, order); err != nil {
		s.logg.Error(s.logg.WithOrderID(ctx, order.ID), "persisting order", err)
	}
}

func (s *service) notify(ctx context.Context, order *models.Order, created bool) {
	if s.notifier == nil {
		return
	}
	recipient := order.Email
	if recipient == "" {
		recipient = s.defaultRecipient
	}
	var err error
	if created {
		err = s.notifier.SendOrderCreated(ctx, order, recipient)
	} else {
		err = s.notifier.SendStatusChanged(ctx, order, recipient)
	}
	if err != nil {
		s.store.IncNotifyFailed()
		s.logg.Error(s.logg.WithOrderID(ctx, order.ID), "sending order notification", err)
	}
}

func sortByCreatedDesc(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// cloneOrder deep-copies the mutable collections so callers can never
// alias the service's internal state.
func cloneOrder(order *models.Order) *models.Order {
	copied := *order
	copied.Items = append(models.OrderItems(nil), order.Items...)
	copied.Timeline = append(types.Timeline(nil), order.Timeline...)
	return &copied
}

func cloneOrders(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	for i := range orders {
		out[i] = *cloneOrder(&orders[i])
	}
	return out
}
