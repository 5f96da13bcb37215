package notify

import (
	"context"
	"log"
)

// LogNotifier writes notifications to the application log. Used in
// development and as the default driver.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (l *LogNotifier) BookingStatusChanged(ctx context.Context, n StatusNotification) error {
	log.Printf("notify %s: booking %s is now %s (%s at %s)",
		n.CustomerEmail, n.BookingID, n.NewStatus, n.ServiceName, n.BusinessName)
	return nil
}
