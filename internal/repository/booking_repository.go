package repository

import (
	"context"
	"database/sql"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
)

// BookingRepo provides CRUD operations for bookings. Every statement is a
// single autocommit round-trip with positional parameters; concurrent
// updates to the same booking resolve as last-write-wins.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, customer_id, service_type, email, hours, notes,
       DATE_FORMAT(date,'%Y-%m-%d'), TIME_FORMAT(time,'%H:%i'),
       has_pets, status, total_price_cents, review_rating, review_comment,
       created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (model.Booking, error) {
	var b model.Booking
	var rating sql.NullInt64
	var comment sql.NullString
	err := row.Scan(&b.ID, &b.CustomerID, &b.ServiceType, &b.Email, &b.Hours,
		&b.Notes, &b.Date, &b.Time, &b.HasPets, &b.Status, &b.TotalPriceCents,
		&rating, &comment, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return b, ErrNotFound
	}
	if err != nil {
		return b, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		b.ReviewRating = &v
	}
	if comment.Valid {
		v := comment.String
		b.ReviewComment = &v
	}
	return b, nil
}

// Create inserts a booking with status 'pending' and returns its ID.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (customer_id, service_type, email, hours, notes, date, time, has_pets, status, total_price_cents)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		b.CustomerID, b.ServiceType, b.Email, b.Hours, b.Notes, b.Date, b.Time,
		b.HasPets, model.StatusPending, b.TotalPriceCents)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	b.ID = uint64(id)
	b.Status = model.StatusPending
	return b.ID, nil
}

// GetForCustomer returns a booking only when it belongs to the customer.
// A row owned by someone else yields ErrForbidden, a missing row ErrNotFound.
func (r *BookingRepo) GetForCustomer(ctx context.Context, id, customerID uint64) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE id=? LIMIT 1", id))
	if err != nil {
		return b, err
	}
	if b.CustomerID != customerID {
		return model.Booking{}, ErrForbidden
	}
	return b, nil
}

// GetByID returns a booking regardless of ownership. Admin use only.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE id=? LIMIT 1", id))
}

// LatestByCustomer returns the customer's newest booking.
func (r *BookingRepo) LatestByCustomer(ctx context.Context, customerID uint64) (model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE customer_id=? ORDER BY created_at DESC, id DESC LIMIT 1",
		customerID))
}

func (r *BookingRepo) collect(rows *sql.Rows) ([]model.Booking, error) {
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByCustomer returns all bookings for a customer, newest first.
func (r *BookingRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE customer_id=? ORDER BY created_at DESC, id DESC",
		customerID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// ListAll returns every booking, newest first. Admin dashboard use.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingCols+" FROM bookings ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// ListByDate returns confirmed bookings scheduled on the given day
// (YYYY-MM-DD). Used by the reminder job.
func (r *BookingRepo) ListByDate(ctx context.Context, date string) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE date=? AND status=? ORDER BY time",
		date, model.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// ownerOf reports the customer_id of a booking, or ErrNotFound.
func (r *BookingRepo) ownerOf(ctx context.Context, id uint64) (uint64, error) {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT customer_id FROM bookings WHERE id=? LIMIT 1", id).Scan(&owner)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return owner, err
}

// mutationError classifies a zero-row mutation: the row is either gone
// (ErrNotFound) or owned by another customer (ErrForbidden).
func (r *BookingRepo) mutationError(ctx context.Context, id, customerID uint64) error {
	owner, err := r.ownerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != customerID {
		return ErrForbidden
	}
	return nil
}

// Reschedule updates date/time/hours/notes for a booking owned by the
// customer.
func (r *BookingRepo) Reschedule(ctx context.Context, id, customerID uint64, date, tm string, hours int, notes string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET date=?, time=?, hours=?, notes=? WHERE id=? AND customer_id=?",
		date, tm, hours, notes, id, customerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.mutationError(ctx, id, customerID)
	}
	return nil
}

// Delete cancels a booking by removing the row. The customer filter in the
// statement guarantees a foreign row is never deleted; the follow-up probe
// only decides which error to report.
func (r *BookingRepo) Delete(ctx context.Context, id, customerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM bookings WHERE id=? AND customer_id=?", id, customerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		owner, err := r.ownerOf(ctx, id)
		if err != nil {
			return err
		}
		if owner != customerID {
			return ErrForbidden
		}
		return ErrNotFound
	}
	return nil
}

// UpdateStatus sets a booking's status and returns the updated row.
// Status membership in the allowed set is validated by the handler.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) (model.Booking, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=?", status, id); err != nil {
		return model.Booking{}, err
	}
	// RowsAffected is 0 when the status is unchanged, so the read-back is
	// also the existence check.
	return r.GetByID(ctx, id)
}

// AttachReview stores a rating and comment on a completed booking owned by
// the customer. A booking that is not completed yields ErrConflict.
func (r *BookingRepo) AttachReview(ctx context.Context, id, customerID uint64, rating int, comment string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET review_rating=?, review_comment=? WHERE id=? AND customer_id=? AND status=?",
		rating, comment, id, customerID, model.StatusCompleted)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		b, err := scanBooking(r.db.QueryRowContext(ctx,
			"SELECT "+bookingCols+" FROM bookings WHERE id=? LIMIT 1", id))
		if err != nil {
			return err
		}
		if b.CustomerID != customerID {
			return ErrForbidden
		}
		if b.Status != model.StatusCompleted {
			return ErrConflict
		}
		// Same rating and comment resubmitted; treat as success.
	}
	return nil
}

// ListRecentReviews returns the newest reviewed bookings joined with the
// reviewer's first name for the public reviews page.
func (r *BookingRepo) ListRecentReviews(ctx context.Context, limit int) ([]model.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const q = `SELECT b.id, b.service_type, b.review_rating, b.review_comment, c.first_name, b.updated_at
	           FROM bookings b
	           JOIN customers c ON c.id = b.customer_id
	           WHERE b.review_rating IS NOT NULL
	           ORDER BY b.updated_at DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		var comment sql.NullString
		if err := rows.Scan(&rv.BookingID, &rv.ServiceType, &rv.Rating, &comment, &rv.FirstName, &rv.CreatedAt); err != nil {
			return nil, err
		}
		rv.Comment = comment.String
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
