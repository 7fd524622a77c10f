package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Suyash1602/airBNB-clone/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingCols = `id, place_id, user_id, check_in, check_out,
guests, name, phone, price, created_at`

func (r *bookingRepository) Create(ctx context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error) {
	const q = `INSERT INTO bookings (
		place_id, user_id, check_in, check_out, guests, name, phone, price
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.pool.QueryRow(ctx, q,
		req.PlaceID, userID, req.CheckIn, req.CheckOut,
		req.Guests, req.Name, req.Phone, req.Price,
	).Scan(
		&b.ID, &b.PlaceID, &b.UserID, &b.CheckIn, &b.CheckOut,
		&b.Guests, &b.Name, &b.Phone, &b.Price, &b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return &b, nil
}

// ListByUser returns the caller's bookings with the booked place embedded,
// newest first.
func (r *bookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	const q = `SELECT
		b.id, b.place_id, b.user_id, b.check_in, b.check_out,
		b.guests, b.name, b.phone, b.price, b.created_at,
		` + prefixedPlaceCols + `
	FROM bookings b
	JOIN places p ON p.id = b.place_id
	WHERE b.user_id = $1
	ORDER BY b.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var p domain.Place
		err := rows.Scan(
			&b.ID, &b.PlaceID, &b.UserID, &b.CheckIn, &b.CheckOut,
			&b.Guests, &b.Name, &b.Phone, &b.Price, &b.CreatedAt,
			&p.ID, &p.OwnerID, &p.Title, &p.Address, &p.Photos, &p.Description,
			&p.Perks, &p.ExtraInfo, &p.CheckIn, &p.CheckOut, &p.MaxGuests, &p.Price,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		b.Place = &p
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return bookings, nil
}

const prefixedPlaceCols = `p.id, p.owner_id, p.title, p.address, p.photos, p.description,
p.perks, p.extra_info, p.check_in, p.check_out, p.max_guests, p.price,
p.created_at, p.updated_at`
