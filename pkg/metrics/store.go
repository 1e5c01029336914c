package metrics

import "github.com/prometheus/client_golang/prometheus"

// StoreMetrics counts storefront domain operations.
type StoreMetrics struct {
	cartOps       *prometheus.CounterVec
	ordersCreated prometheus.Counter
	statusUpdates *prometheus.CounterVec
	notifyFailed  prometheus.Counter
}

// NewStoreMetrics registers the storefront counters on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders placed through checkout.",
	})
	statusUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_updates_total",
		Help: "Order status transitions by target status.",
	}, []string{"status"})
	notifyFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "Best-effort notifications that could not be delivered.",
	})
	reg.MustRegister(cartOps, ordersCreated, statusUpdates, notifyFailed)
	return &StoreMetrics{
		cartOps:       cartOps,
		ordersCreated: ordersCreated,
		statusUpdates: statusUpdates,
		notifyFailed:  notifyFailed,
	}
}

// IncCartOp counts one cart mutation.
func (s *StoreMetrics) IncCartOp(op string) {
	if s == nil || s.cartOps == nil {
		return
	}
	s.cartOps.WithLabelValues(op).Inc()
}

// IncOrderCreated counts one placed order.
func (s *StoreMetrics) IncOrderCreated() {
	if s == nil || s.ordersCreated == nil {
		return
	}
	s.ordersCreated.Inc()
}

// IncStatusUpdate counts one status transition.
func (s *StoreMetrics) IncStatusUpdate(status string) {
	if s == nil || s.statusUpdates == nil {
		return
	}
	s.statusUpdates.WithLabelValues(status).Inc()
}

// IncNotifyFailed counts one swallowed notification failure.
func (s *StoreMetrics) IncNotifyFailed() {
	if s == nil || s.notifyFailed == nil {
		return
	}
	s.notifyFailed.Inc()
}
