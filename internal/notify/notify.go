package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/quickmart/storefront-backend/internal/simulate"
	"github.com/quickmart/storefront-backend/pkg/db/models"
	"github.com/quickmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/quickmart/storefront-backend/pkg/errors"
	"github.com/quickmart/storefront-backend/pkg/logger"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Notifier delivers order lifecycle notifications.
type Notifier interface {
	SendOrderCreated(ctx context.Context, order *models.Order, recipient string) error
	SendStatusChanged(ctx context.Context, order *models.Order, recipient string) error
}

type template struct {
	subject string
	heading string
	lines   []string
}

// statusTemplates renders one message per lifecycle state. Deliberately
// no template exists for unknown states; callers get an error.
var statusTemplates = map[enums.OrderStatus]template{
	enums.OrderStatusPending: {
		subject: "Order Confirmation - %s",
		heading: "Thank you for your order!",
		lines: []string{
			"Your order %s has been received and is being processed.",
			"We'll keep you updated on your order status.",
		},
	},
	enums.OrderStatusProcessing: {
		subject: "Order Processing - %s",
		heading: "Your order is being prepared!",
		lines: []string{
			"Great news! Your order %s is now being processed and prepared for shipment.",
			"You'll receive another update when your order ships.",
		},
	},
	enums.OrderStatusShipped: {
		subject: "Order Shipped - %s",
		heading: "Your order is on the way!",
		lines: []string{
			"Exciting news! Your order %s has been shipped and is on its way to you.",
			"Track your package and stay updated on delivery progress.",
		},
	},
	enums.OrderStatusDelivered: {
		subject: "Order Delivered - %s",
		heading: "Your order has been delivered!",
		lines: []string{
			"Wonderful! Your order %s has been successfully delivered.",
			"We hope you enjoy your purchase! Thank you for shopping with us.",
		},
	},
}

// LogMailer renders notifications and writes them to the structured log
// instead of an SMTP transport. The delivery surface is identical, so a
// real mailer can swap in without touching callers.
type LogMailer struct {
	logg    *logger.Logger
	from    string
	latency time.Duration
}

// Options configure the log mailer.
type Options struct {
	FromAddress string
	SimLatency  time.Duration
}

func NewLogMailer(logg *logger.Logger, opts Options) (*LogMailer, error) {
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "log mailer requires a logger")
	}
	from := opts.FromAddress
	if from == "" {
		from = `"QuickMart" <noreply@quickmart.com>`
	}
	return &LogMailer{logg: logg, from: from, latency: opts.SimLatency}, nil
}

func (m *LogMailer) SendOrderCreated(ctx context.Context, order *models.Order, recipient string) error {
	confirmation := *order
	confirmation.Status = enums.OrderStatusPending
	return m.SendStatusChanged(ctx, &confirmation, recipient)
}

func (m *LogMailer) SendStatusChanged(ctx context.Context, order *models.Order, recipient string) error {
	if err := simulate.Wait(ctx, m.latency); err != nil {
		return err
	}
	message, err := Render(order, m.from, recipient)
	if err != nil {
		return err
	}
	m.logg.Info(m.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID,
		"status":   order.Status.String(),
		"to":       message.To,
		"subject":  message.Subject,
	}), "email notification sent")
	return nil
}

// Render builds the notification for the order's current status.
func Render(order *models.Order, from, recipient string) (*Message, error) {
	tmpl, ok := statusTemplates[order.Status]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInternal,
			fmt.Sprintf("no email template for status %q", order.Status))
	}

	body := tmpl.heading + "\n"
	body += fmt.Sprintf(tmpl.lines[0], order.ID) + "\n"
	body += fmt.Sprintf("Order Total: $%s\n", order.Total.StringFixed(2))
	if !order.Status.IsTerminal() {
		body += fmt.Sprintf("Estimated Delivery: %s\n", order.EstimatedDelivery.Format("Jan 2, 2006"))
	}
	body += tmpl.lines[1]

	return &Message{
		From:    from,
		To:      recipient,
		Subject: fmt.Sprintf(tmpl.subject, order.ID),
		Body:    body,
	}, nil
}
