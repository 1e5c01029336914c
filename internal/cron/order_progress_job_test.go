package cron

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/quickmart/storefront-backend/pkg/db/models"
	"github.com/quickmart/storefront-backend/pkg/enums"
	"github.com/quickmart/storefront-backend/pkg/types"
)

type fakeOrderAdvancer struct {
	orders    []models.Order
	updates   map[string]string
	updateErr error
}

func (f *fakeOrderAdvancer) GetAll(context.Context) ([]models.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderAdvancer) UpdateStatus(_ context.Context, id, status string) (*models.Order, error) {
	if f.updates == nil {
		f.updates = map[string]string{}
	}
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates[id] = status
	return &models.Order{ID: id, Status: enums.OrderStatus(status)}, nil
}

func staleOrder(id string, status enums.OrderStatus, lastChange time.Time) models.Order {
	return models.Order{
		ID:        id,
		Status:    status,
		CreatedAt: lastChange,
		Timeline: types.Timeline{{
			Status:    status,
			Timestamp: lastChange,
		}},
	}
}

func newProgressJob(t *testing.T, advancer *fakeOrderAdvancer, now time.Time) *orderProgressJob {
	t.Helper()
	job, err := NewOrderProgressJob(OrderProgressJobParams{
		Logger:        cronTestLogger(),
		Orders:        advancer,
		ProgressAfter: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewOrderProgressJob: %v", err)
	}
	progress := job.(*orderProgressJob)
	progress.now = func() time.Time { return now }
	return progress
}

func TestOrderProgressAdvancesStaleOrdersOneStep(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	advancer := &fakeOrderAdvancer{orders: []models.Order{
		staleOrder("ORD-1", enums.OrderStatusPending, now.Add(-48*time.Hour)),
		staleOrder("ORD-2", enums.OrderStatusShipped, now.Add(-30*time.Hour)),
	}}
	job := newProgressJob(t, advancer, now)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if advancer.updates["ORD-1"] != "processing" {
		t.Errorf("ORD-1 advanced to %q, want processing", advancer.updates["ORD-1"])
	}
	if advancer.updates["ORD-2"] != "delivered" {
		t.Errorf("ORD-2 advanced to %q, want delivered", advancer.updates["ORD-2"])
	}
}

func TestOrderProgressSkipsFreshAndDeliveredOrders(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	advancer := &fakeOrderAdvancer{orders: []models.Order{
		staleOrder("ORD-fresh", enums.OrderStatusPending, now.Add(-time.Hour)),
		staleOrder("ORD-done", enums.OrderStatusDelivered, now.Add(-72*time.Hour)),
	}}
	job := newProgressJob(t, advancer, now)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(advancer.updates) != 0 {
		t.Errorf("unexpected updates: %v", advancer.updates)
	}
}

func TestOrderProgressCollectsPerOrderErrors(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	advancer := &fakeOrderAdvancer{
		orders: []models.Order{
			staleOrder("ORD-1", enums.OrderStatusPending, now.Add(-48*time.Hour)),
			staleOrder("ORD-2", enums.OrderStatusProcessing, now.Add(-48*time.Hour)),
		},
		updateErr: errors.New("update rejected"),
	}
	job := newProgressJob(t, advancer, now)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected combined error")
	}
	for _, id := range []string{"ORD-1", "ORD-2"} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("combined error missing %s: %v", id, err)
		}
	}
}

func TestOrderProgressUsesCreatedAtWhenTimelineEmpty(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	advancer := &fakeOrderAdvancer{orders: []models.Order{{
		ID:        "ORD-bare",
		Status:    enums.OrderStatusPending,
		CreatedAt: now.Add(-48 * time.Hour),
	}}}
	job := newProgressJob(t, advancer, now)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if advancer.updates["ORD-bare"] != "processing" {
		t.Errorf("updates %v", advancer.updates)
	}
}
