package database

import (
	"context"

	"github.com/google/uuid"
)

const listCategoriesByRestaurant = `
SELECT id, restaurant_id, name, created_at
FROM categories
WHERE restaurant_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListCategoriesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategoriesByRestaurant, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const getCategory = `
SELECT id, restaurant_id, name, created_at
FROM categories
WHERE id = $1 AND restaurant_id = $2
`

type GetCategoryParams struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
}

func (q *Queries) GetCategory(ctx context.Context, arg GetCategoryParams) (Category, error) {
	row := q.db.QueryRow(ctx, getCategory, arg.ID, arg.RestaurantID)
	var c Category
	err := row.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.CreatedAt)
	return c, err
}

const getCategoryByName = `
SELECT id, restaurant_id, name, created_at
FROM categories
WHERE restaurant_id = $1 AND name = $2
`

type GetCategoryByNameParams struct {
	RestaurantID uuid.UUID
	Name         string
}

func (q *Queries) GetCategoryByName(ctx context.Context, arg GetCategoryByNameParams) (Category, error) {
	row := q.db.QueryRow(ctx, getCategoryByName, arg.RestaurantID, arg.Name)
	var c Category
	err := row.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.CreatedAt)
	return c, err
}

const createCategory = `
INSERT INTO categories (restaurant_id, name)
VALUES ($1, $2)
RETURNING id, restaurant_id, name, created_at
`

type CreateCategoryParams struct {
	RestaurantID uuid.UUID
	Name         string
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	row := q.db.QueryRow(ctx, createCategory, arg.RestaurantID, arg.Name)
	var c Category
	err := row.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.CreatedAt)
	return c, err
}

const updateCategory = `
UPDATE categories
SET name = $3
WHERE id = $1 AND restaurant_id = $2
RETURNING id, restaurant_id, name, created_at
`

type UpdateCategoryParams struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
}

func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error) {
	row := q.db.QueryRow(ctx, updateCategory, arg.ID, arg.RestaurantID, arg.Name)
	var c Category
	err := row.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.CreatedAt)
	return c, err
}

const deleteCategory = `
DELETE FROM categories
WHERE id = $1 AND restaurant_id = $2
RETURNING id
`

type DeleteCategoryParams struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
}

func (q *Queries) DeleteCategory(ctx context.Context, arg DeleteCategoryParams) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, deleteCategory, arg.ID, arg.RestaurantID)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}
