package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/quickmart/storefront-backend/pkg/db/models"
	"github.com/quickmart/storefront-backend/pkg/logger"
)

const defaultProgressAfter = 24 * time.Hour

// orderAdvancer is the slice of the order service the progression job needs.
type orderAdvancer interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
}

// OrderProgressJobParams configure the order progression job.
type OrderProgressJobParams struct {
	Logger        *logger.Logger
	Orders        orderAdvancer
	ProgressAfter time.Duration
}

// NewOrderProgressJob builds the cron job that walks stale active orders
// one step forward through the fulfillment lifecycle. It simulates a
// warehouse: orders untouched for the configured window move pending →
// processing → shipped → delivered, one transition per cycle.
func NewOrderProgressJob(params OrderProgressJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order service required")
	}
	progressAfter := params.ProgressAfter
	if progressAfter <= 0 {
		progressAfter = defaultProgressAfter
	}
	return &orderProgressJob{
		logg:          params.Logger,
		orders:        params.Orders,
		progressAfter: progressAfter,
		now:           time.Now,
	}, nil
}

type orderProgressJob struct {
	logg          *logger.Logger
	orders        orderAdvancer
	progressAfter time.Duration
	now           func() time.Time
}

func (j *orderProgressJob) Name() string { return "order-progress" }

func (j *orderProgressJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.progressAfter)
	all, err := j.orders.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("listing orders: %w", err)
	}

	advanced := 0
	var errs []error
	for _, order := range all {
		if order.Status.IsTerminal() {
			continue
		}
		if lastActivity(order).After(cutoff) {
			continue
		}
		next := order.Status.Next()
		if next == order.Status {
			continue
		}
		if _, err := j.orders.UpdateStatus(ctx, order.ID, next.String()); err != nil {
			errs = append(errs, fmt.Errorf("advancing order %s: %w", order.ID, err))
			continue
		}
		advanced++
	}

	j.logg.Info(j.logg.WithFields(ctx, map[string]any{
		"advanced": advanced,
		"failed":   len(errs),
	}), "order progression loop complete")
	return multierr.Combine(errs...)
}

// lastActivity is when the order last changed state: the newest timeline
// entry, or creation time for orders with no timeline.
func lastActivity(order models.Order) time.Time {
	if len(order.Timeline) == 0 {
		return order.CreatedAt
	}
	return order.Timeline[len(order.Timeline)-1].Timestamp
}
