package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tiltlabs/engineer-on-demand/internal/application/services"
)

func TestNotificationService_SendBookingNotification(t *testing.T) {
	t.Run("scheduled request renders date, window, and rates", func(t *testing.T) {
		sender := new(MockSender)
		service := services.NewNotificationService(sender, "ops@example.com")

		sender.On("Send", mock.Anything, "ops@example.com",
			"New Booking Request - Ada Kowalski", mock.Anything).Return("msg-1", nil)

		id, err := service.SendBookingNotification(context.Background(), services.BookingNotification{
			EngineerName: "Ada Kowalski",
			HourlyRate:   90,
			ClientName:   "Sam Lee",
			ClientEmail:  "sam@example.com",
			Date:         "2026-09-07",
			StartTime:    "10:00",
			Description:  "Debug a flaky deployment pipeline",
		})

		require.NoError(t, err)
		assert.Equal(t, "msg-1", id)

		body := sender.Calls[0].Arguments.String(3)
		assert.Contains(t, body, "2026-09-07 at 10:00")
		assert.Contains(t, body, "$1.5/min ($90/hour)")
		assert.Contains(t, body, "Debug a flaky deployment pipeline")
	})

	t.Run("ASAP request is marked urgent", func(t *testing.T) {
		sender := new(MockSender)
		service := services.NewNotificationService(sender, "ops@example.com")

		sender.On("Send", mock.Anything, "ops@example.com",
			"URGENT Booking Request - Ada Kowalski", mock.Anything).Return("msg-2", nil)

		_, err := service.SendBookingNotification(context.Background(), services.BookingNotification{
			EngineerName: "Ada Kowalski",
			HourlyRate:   90,
			ClientName:   "Sam Lee",
			IsASAP:       true,
		})

		require.NoError(t, err)
		body := sender.Calls[0].Arguments.String(3)
		assert.Contains(t, body, "ASAP (immediate assistance needed)")
	})
}
