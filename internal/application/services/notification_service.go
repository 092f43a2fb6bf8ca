package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/providers"
)

// NotificationService renders and dispatches booking notifications.
// Delivery is advisory: the appointment record is the source of truth, so
// send failures are reported to the caller only for logging, never for
// rollback.
type NotificationService struct {
	sender providers.NotificationSender
	to     string
}

// NewNotificationService creates a new notification service
func NewNotificationService(sender providers.NotificationSender, to string) *NotificationService {
	return &NotificationService{
		sender: sender,
		to:     to,
	}
}

// BookingNotification contains all data needed to render a booking email
type BookingNotification struct {
	EngineerName string
	HourlyRate   float64
	ClientName   string
	ClientEmail  string
	ClientPhone  string
	CompanyName  string
	Date         string
	StartTime    string
	Description  string
	IsASAP       bool
}

// SendBookingNotification sends a booking request email and returns the
// delivery identifier.
func (n *NotificationService) SendBookingNotification(ctx context.Context, data BookingNotification) (string, error) {
	subject := fmt.Sprintf("New Booking Request - %s", data.EngineerName)
	if data.IsASAP {
		subject = fmt.Sprintf("URGENT Booking Request - %s", data.EngineerName)
	}

	return n.sender.Send(ctx, n.to, subject, renderBookingBody(data))
}

func renderBookingBody(data BookingNotification) string {
	timing := fmt.Sprintf("%s at %s", data.Date, data.StartTime)
	if data.IsASAP {
		timing = "ASAP (immediate assistance needed)"
	}

	var b strings.Builder
	b.WriteString("New engineer booking request\n\n")
	fmt.Fprintf(&b, "Engineer: %s\n", data.EngineerName)
	fmt.Fprintf(&b, "Rate: $%.1f/min ($%.0f/hour)\n\n", data.HourlyRate/60, data.HourlyRate)
	fmt.Fprintf(&b, "Client: %s\n", data.ClientName)
	fmt.Fprintf(&b, "Email: %s\n", data.ClientEmail)
	if data.ClientPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", data.ClientPhone)
	}
	if data.CompanyName != "" {
		fmt.Fprintf(&b, "Company: %s\n", data.CompanyName)
	}
	fmt.Fprintf(&b, "\nWhen: %s\n", timing)
	if data.Description != "" {
		fmt.Fprintf(&b, "\nProject description:\n%s\n", data.Description)
	}
	return b.String()
}
