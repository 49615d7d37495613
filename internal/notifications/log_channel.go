package notifications

import (
	"context"
	"log/slog"
)

// LogChannel is a PushChannel that writes payloads to the log instead of a
// push gateway. It stands in until a real APNs/FCM adapter is wired.
type LogChannel struct {
	logger *slog.Logger
}

// NewLogChannel creates a log-backed push channel.
func NewLogChannel(logger *slog.Logger) *LogChannel {
	return &LogChannel{logger: logger}
}

// Granted always reports true; the log needs no permission.
func (c *LogChannel) Granted(_ context.Context) bool {
	return true
}

// Send writes the payload to the log.
func (c *LogChannel) Send(ctx context.Context, payload Payload, token string) error {
	c.logger.InfoContext(ctx, "push notification",
		"type", payload.Type,
		"title", payload.Title,
		"token", token,
	)
	return nil
}
