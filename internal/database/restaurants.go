package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createRestaurant = `
INSERT INTO restaurants (owner_id, name, address, profile_path)
VALUES ($1, $2, $3, $4)
RETURNING id, owner_id, name, address, profile_path, created_at, updated_at
`

type CreateRestaurantParams struct {
	OwnerID     uuid.UUID
	Name        string
	Address     string
	ProfilePath pgtype.Text
}

func (q *Queries) CreateRestaurant(ctx context.Context, arg CreateRestaurantParams) (Restaurant, error) {
	row := q.db.QueryRow(ctx, createRestaurant, arg.OwnerID, arg.Name, arg.Address, arg.ProfilePath)
	var r Restaurant
	err := row.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Address, &r.ProfilePath, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

const getRestaurantByOwner = `
SELECT id, owner_id, name, address, profile_path, created_at, updated_at
FROM restaurants
WHERE owner_id = $1
`

func (q *Queries) GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (Restaurant, error) {
	row := q.db.QueryRow(ctx, getRestaurantByOwner, ownerID)
	var r Restaurant
	err := row.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Address, &r.ProfilePath, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

const getRestaurant = `
SELECT id, owner_id, name, address, profile_path, created_at, updated_at
FROM restaurants
WHERE id = $1
`

func (q *Queries) GetRestaurant(ctx context.Context, id uuid.UUID) (Restaurant, error) {
	row := q.db.QueryRow(ctx, getRestaurant, id)
	var r Restaurant
	err := row.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Address, &r.ProfilePath, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

const updateRestaurant = `
UPDATE restaurants
SET name = $2, address = $3, profile_path = $4, updated_at = now()
WHERE id = $1
RETURNING id, owner_id, name, address, profile_path, created_at, updated_at
`

type UpdateRestaurantParams struct {
	ID          uuid.UUID
	Name        string
	Address     string
	ProfilePath pgtype.Text
}

func (q *Queries) UpdateRestaurant(ctx context.Context, arg UpdateRestaurantParams) (Restaurant, error) {
	row := q.db.QueryRow(ctx, updateRestaurant, arg.ID, arg.Name, arg.Address, arg.ProfilePath)
	var r Restaurant
	err := row.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Address, &r.ProfilePath, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

const deleteRestaurant = `
DELETE FROM restaurants
WHERE id = $1
RETURNING id
`

func (q *Queries) DeleteRestaurant(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, deleteRestaurant, id)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}
