package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// statusChangedEvent is the JSON payload published for consumption by an
// out-of-process notification worker.
type statusChangedEvent struct {
	BookingID     string    `json:"booking_id"`
	CustomerEmail string    `json:"customer_email"`
	CustomerName  string    `json:"customer_name"`
	ServiceName   string    `json:"service_name"`
	BusinessName  string    `json:"business_name"`
	Date          time.Time `json:"date"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	NewStatus     string    `json:"new_status"`
}

// AMQPNotifier publishes status change events to a RabbitMQ topic exchange.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewAMQPNotifier connects to RabbitMQ and declares the exchange.
func NewAMQPNotifier(url, exchange string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPNotifier{conn: conn, ch: ch, exchange: exchange}, nil
}

func (a *AMQPNotifier) BookingStatusChanged(ctx context.Context, n StatusNotification) error {
	body, err := json.Marshal(statusChangedEvent{
		BookingID:     n.BookingID,
		CustomerEmail: n.CustomerEmail,
		CustomerName:  n.CustomerName,
		ServiceName:   n.ServiceName,
		BusinessName:  n.BusinessName,
		Date:          n.Date,
		StartTime:     n.StartTime,
		EndTime:       n.EndTime,
		NewStatus:     n.NewStatus,
	})
	if err != nil {
		return err
	}

	key := "booking.status." + n.NewStatus
	return a.ch.PublishWithContext(ctx, a.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Close releases the channel and connection.
func (a *AMQPNotifier) Close() error {
	if a.ch != nil {
		_ = a.ch.Close()
	}
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}
