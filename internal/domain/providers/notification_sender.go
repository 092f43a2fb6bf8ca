package providers

import "context"

// NotificationSender delivers rendered notifications. Delivery is
// best-effort; the booking record, not the notification, is the source of
// truth.
type NotificationSender interface {
	// Send delivers a message and returns a delivery identifier.
	Send(ctx context.Context, to, subject, body string) (string, error)
}
