package model

import "time"

// Booking statuses as stored in the bookings table. The admin API accepts
// any member of this set; transitions are not restricted to forward-only.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in progress"
	StatusCompleted  = "completed"
)

var allowedStatuses = map[string]bool{
	StatusPending:    true,
	StatusConfirmed:  true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// ValidStatus reports whether s belongs to the allowed status set.
func ValidStatus(s string) bool { return allowedStatuses[s] }

// Booking mirrors the 'bookings' table. Date and Time are kept as the
// strings the client submits (YYYY-MM-DD and HH:MM); the database stores
// them in dedicated DATE/TIME columns.
type Booking struct {
	ID              uint64    `json:"id"`
	CustomerID      uint64    `json:"customer_id"`
	ServiceType     string    `json:"service_type"`
	Email           string    `json:"email"`
	Hours           int       `json:"hours"`
	Notes           string    `json:"notes"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	HasPets         bool      `json:"has_pets"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	ReviewRating    *int      `json:"review_rating,omitempty"`
	ReviewComment   *string   `json:"review_comment,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Review is the public projection of a reviewed booking shown on the
// reviews page. No customer identifiers beyond the first name are exposed.
type Review struct {
	BookingID   uint64    `json:"booking_id"`
	ServiceType string    `json:"service_type"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	FirstName   string    `json:"first_name"`
	CreatedAt   time.Time `json:"created_at"`
}
