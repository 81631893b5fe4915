// Package mail carries the outbound email adapter. Template rendering and
// SMTP delivery belong to the mail gateway; this adapter only hands the
// send over and is replaced by the real gateway client in deployments.
package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes sends to the log instead of delivering them. Used in
// development and as the default wiring until the gateway client lands.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendResponseLink(_ context.Context, to string, bookingID string, token string) error {
	slog.Info("response link email queued for delivery",
		"to", to,
		"booking_id", bookingID,
		"token_prefix", tokenPrefix(token),
	)
	return nil
}

// tokenPrefix keeps full tokens out of the logs.
func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}
