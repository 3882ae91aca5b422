// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair for booking events.
package queue

// BookingConfirmedEvent is published when an admin confirms a booking or a
// payment succeeds. It carries enough for downstream consumers to notify
// the customer without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID       uint64 `json:"booking_id"`
	CustomerID      uint64 `json:"customer_id"`
	Email           string `json:"email"`
	ServiceType     string `json:"service_type"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Hours           int    `json:"hours"`
	TotalPriceCents int64  `json:"total_price_cents"`
	ConfirmedAt     string `json:"confirmed_at"`
}
