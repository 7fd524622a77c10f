package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Suyash1602/airBNB-clone/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlaceRepository interface {
	Create(ctx context.Context, ownerID int64, req *domain.PlaceRequest) (*domain.Place, error)
	GetByID(ctx context.Context, id int64) (*domain.Place, error)
	List(ctx context.Context) ([]domain.Place, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error)
	Update(ctx context.Context, id int64, req *domain.PlaceRequest) (*domain.Place, error)
}

type placeRepository struct {
	pool *pgxpool.Pool
}

func NewPlaceRepository(pool *pgxpool.Pool) PlaceRepository {
	return &placeRepository{pool: pool}
}

const placeCols = `id, owner_id, title, address, photos, description,
perks, extra_info, check_in, check_out, max_guests, price,
created_at, updated_at`

func scanPlace(row pgx.Row) (*domain.Place, error) {
	var p domain.Place
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Address, &p.Photos, &p.Description,
		&p.Perks, &p.ExtraInfo, &p.CheckIn, &p.CheckOut, &p.MaxGuests, &p.Price,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *placeRepository) Create(ctx context.Context, ownerID int64, req *domain.PlaceRequest) (*domain.Place, error) {
	const q = `INSERT INTO places (
		owner_id, title, address, photos, description,
		perks, extra_info, check_in, check_out, max_guests, price
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	RETURNING ` + placeCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanPlace(r.pool.QueryRow(ctx, q, ownerID,
		req.Title, req.Address, req.Photos, req.Description,
		req.Perks, req.ExtraInfo, req.CheckIn, req.CheckOut, req.MaxGuests, req.Price,
	))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return p, nil
}

func (r *placeRepository) GetByID(ctx context.Context, id int64) (*domain.Place, error) {
	const q = `SELECT ` + placeCols + ` FROM places WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanPlace(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return p, nil
}

func (r *placeRepository) List(ctx context.Context) ([]domain.Place, error) {
	const q = `SELECT ` + placeCols + ` FROM places ORDER BY created_at DESC`
	return r.queryPlaces(ctx, q)
}

func (r *placeRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error) {
	const q = `SELECT ` + placeCols + ` FROM places WHERE owner_id=$1 ORDER BY created_at DESC`
	return r.queryPlaces(ctx, q, ownerID)
}

func (r *placeRepository) queryPlaces(ctx context.Context, q string, args ...any) ([]domain.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		places = append(places, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return places, nil
}

// Update rewrites the writable columns under the store's single-row atomic
// update. owner_id is deliberately absent from the statement: the column is
// immutable after creation. The ownership check happens in the service
// before this is called; concurrent updates are last-writer-wins.
func (r *placeRepository) Update(ctx context.Context, id int64, req *domain.PlaceRequest) (*domain.Place, error) {
	const q = `UPDATE places SET
		title=$2, address=$3, photos=$4, description=$5,
		perks=$6, extra_info=$7, check_in=$8, check_out=$9,
		max_guests=$10, price=$11, updated_at=now()
	WHERE id=$1
	RETURNING ` + placeCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanPlace(r.pool.QueryRow(ctx, q, id,
		req.Title, req.Address, req.Photos, req.Description,
		req.Perks, req.ExtraInfo, req.CheckIn, req.CheckOut, req.MaxGuests, req.Price,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return p, nil
}
