package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
)

// ConfirmationMailer is the slice of the mailer the consumer needs.
type ConfirmationMailer interface {
	Enabled() bool
	SendBookingConfirmed(to string, b model.Booking) error
}

// StartBookingConsumer connects to RabbitMQ, declares the booking.confirmed
// queue and consumes it, emailing the customer for each event. It runs a
// reconnect loop with backoff and never returns under normal operation;
// failed messages are rejected without requeue to avoid tight loops.
func StartBookingConsumer(url string, mailer ConfirmationMailer) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, mailer); err != nil {
			log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, mailer ConfirmationMailer) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(bookingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(bookingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, mailer); err != nil {
			log.Printf("booking-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, mailer ConfirmationMailer) error {
	var ev BookingConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	log.Printf("booking confirmed | booking_id=%d | customer_id=%d | service=%q | date=%s %s | total=%d cents",
		ev.BookingID, ev.CustomerID, ev.ServiceType, ev.Date, ev.Time, ev.TotalPriceCents)

	if mailer == nil || !mailer.Enabled() || ev.Email == "" {
		return nil
	}
	b := model.Booking{
		ID:              ev.BookingID,
		CustomerID:      ev.CustomerID,
		ServiceType:     ev.ServiceType,
		Date:            ev.Date,
		Time:            ev.Time,
		Hours:           ev.Hours,
		TotalPriceCents: ev.TotalPriceCents,
	}
	if err := mailer.SendBookingConfirmed(ev.Email, b); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}
