package notify

import (
	"context"
	"fmt"
	"time"
)

// StatusNotification describes a booking status change to be delivered
// to the customer. Delivery is best effort: the status change is the
// source of truth and is never rolled back on delivery failure.
type StatusNotification struct {
	BookingID     string
	CustomerEmail string
	CustomerName  string
	ServiceName   string
	BusinessName  string
	Date          time.Time
	StartTime     time.Time
	EndTime       time.Time
	NewStatus     string
}

// Subject returns the message subject line.
func (n StatusNotification) Subject() string {
	return fmt.Sprintf("Your booking at %s is %s", n.BusinessName, n.NewStatus)
}

// Body returns a human-readable summary of the booking.
func (n StatusNotification) Body() string {
	return fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s at %s on %s (%s - %s) is now %s.\n\nBooking reference: %s\n",
		n.CustomerName,
		n.ServiceName,
		n.BusinessName,
		n.Date.Format("Monday, 2 January 2006"),
		n.StartTime.Format("15:04"),
		n.EndTime.Format("15:04"),
		n.NewStatus,
		n.BookingID,
	)
}

// Notifier delivers booking status change messages.
type Notifier interface {
	BookingStatusChanged(ctx context.Context, n StatusNotification) error
}
