package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"munchies/internal/realtime"
)

// ErrDeliveryFailed is the unwrap target for push transport failures. It only
// ever shows up in logs and metrics; Dispatch never returns it.
var ErrDeliveryFailed = errors.New("notification delivery failed")

var (
	notificationsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "munchies_notifications_delivered_total",
		Help: "Push notifications handed to the transport successfully, by role.",
	}, []string{"role"})

	notificationsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "munchies_notifications_suppressed_total",
		Help: "Notifications skipped because push permission was not granted, by role.",
	}, []string{"role"})

	notificationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "munchies_notifications_failed_total",
		Help: "Push transport failures, by role.",
	}, []string{"role"})
)

// PushChannel is the push-transport boundary (APNs/FCM gateway, web push,
// or a fake in tests). Granted reports whether the recipient allowed push
// delivery; Send hands one rendered payload to the transport.
type PushChannel interface {
	Granted(ctx context.Context) bool
	Send(ctx context.Context, payload Payload, token string) error
}

// Dispatcher renders order events into role-specific notifications and pushes
// them. The rendered payload always lands in the history, so the in-app
// notification screen stays complete even when push is denied or the
// transport is down.
type Dispatcher struct {
	channel PushChannel
	history *History
	logger  *slog.Logger
}

// NewDispatcher creates a Dispatcher delivering through channel and recording
// into history.
func NewDispatcher(channel PushChannel, history *History, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		channel: channel,
		history: history,
		logger:  logger,
	}
}

// History returns the dispatcher's notification log.
func (d *Dispatcher) History() *History {
	return d.history
}

// Dispatch renders event for role and delivers it to token. Rendering
// failures are returned; delivery failures are logged and counted but
// swallowed. The caller's mutation already committed and a broken push
// gateway must not bubble up into it.
func (d *Dispatcher) Dispatch(ctx context.Context, event realtime.OrderEvent, role Role, token string) error {
	payload, err := Render(role, event)
	if err != nil {
		return err
	}

	d.history.Append(payload)

	if !d.channel.Granted(ctx) {
		notificationsSuppressed.WithLabelValues(string(role)).Inc()
		return nil
	}

	if err := d.channel.Send(ctx, payload, token); err != nil {
		notificationsFailed.WithLabelValues(string(role)).Inc()
		d.logger.WarnContext(ctx, "notification delivery failed",
			"role", string(role),
			"order_id", event.OrderID.String(),
			"error", fmt.Errorf("%w: %w", ErrDeliveryFailed, err).Error(),
		)
		return nil
	}

	notificationsDelivered.WithLabelValues(string(role)).Inc()
	return nil
}
