package domain

import (
	"fmt"
	"strings"
	"time"
)

type Booking struct {
	ID        int64     `json:"id"`
	PlaceID   int64     `json:"place_id"`
	UserID    int64     `json:"user_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Guests    int       `json:"guests"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Price     int       `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	Place     *Place    `json:"place,omitempty"`
}

// IsRequestedBy reports whether the given identity created this booking.
func (b *Booking) IsRequestedBy(userID int64) bool {
	return b.UserID == userID
}

// BookingRequest carries the client-supplied booking fields. The requester
// identity is never among them; it is stamped from the verified session.
type BookingRequest struct {
	PlaceID  int64     `json:"place"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Guests   int       `json:"guests"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Price    int       `json:"price"`
}

func (r *BookingRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r *BookingRequest) Validate() error {
	if r.PlaceID <= 0 {
		return fmt.Errorf("place is required")
	}
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return fmt.Errorf("check_in and check_out are required")
	}
	if !r.CheckOut.After(r.CheckIn) {
		return fmt.Errorf("check_out must be after check_in")
	}
	if r.Guests < 1 {
		return fmt.Errorf("guests must be at least 1")
	}
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if r.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}
