package domain

import (
	"fmt"
	"strings"
	"time"
)

type Place struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Photos      []string  `json:"photos"`
	Description string    `json:"description"`
	Perks       []string  `json:"perks"`
	ExtraInfo   string    `json:"extra_info"`
	CheckIn     int       `json:"check_in"`
	CheckOut    int       `json:"check_out"`
	MaxGuests   int       `json:"max_guests"`
	Price       int       `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether the given identity owns this place.
func (p *Place) IsOwnedBy(userID int64) bool {
	return p.OwnerID == userID
}

// PlaceRequest carries the writable fields of a place. Owner is never part
// of it: the service stamps the owner from the verified session on create
// and the column is immutable afterwards.
type PlaceRequest struct {
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Photos      []string `json:"photos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extra_info"`
	CheckIn     int      `json:"check_in"`
	CheckOut    int      `json:"check_out"`
	MaxGuests   int      `json:"max_guests"`
	Price       int      `json:"price"`
}

type PlaceUpdateRequest struct {
	ID int64 `json:"id"`
	PlaceRequest
}

func (r *PlaceRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Address = strings.TrimSpace(r.Address)
	r.Description = strings.TrimSpace(r.Description)
	r.ExtraInfo = strings.TrimSpace(r.ExtraInfo)
	if r.Photos == nil {
		r.Photos = []string{}
	}
	if r.Perks == nil {
		r.Perks = []string{}
	}
}

func (r *PlaceRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Address == "" {
		return fmt.Errorf("address is required")
	}
	if r.CheckIn < 0 || r.CheckIn > 23 {
		return fmt.Errorf("check_in must be an hour between 0 and 23")
	}
	if r.CheckOut < 0 || r.CheckOut > 23 {
		return fmt.Errorf("check_out must be an hour between 0 and 23")
	}
	if r.MaxGuests < 1 {
		return fmt.Errorf("max_guests must be at least 1")
	}
	if r.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

func (r *PlaceUpdateRequest) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("id is required")
	}
	return r.PlaceRequest.Validate()
}
