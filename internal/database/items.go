package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const listItemsByCategory = `
SELECT id, category_id, name, description, price, image_path, created_at, updated_at
FROM items
WHERE category_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]Item, error) {
	rows, err := q.db.Query(ctx, listItemsByCategory, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		var i Item
		if err := rows.Scan(&i.ID, &i.CategoryID, &i.Name, &i.Description, &i.Price, &i.ImagePath, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listItemsByRestaurant = `
SELECT i.id, i.category_id, i.name, i.description, i.price, i.image_path, i.created_at, i.updated_at, c.name AS category_name
FROM items i
JOIN categories c ON c.id = i.category_id
WHERE c.restaurant_id = $1
ORDER BY i.created_at DESC
`

type ListItemsByRestaurantRow struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	Name         string
	Description  pgtype.Text
	Price        pgtype.Numeric
	ImagePath    pgtype.Text
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CategoryName string
}

func (q *Queries) ListItemsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]ListItemsByRestaurantRow, error) {
	rows, err := q.db.Query(ctx, listItemsByRestaurant, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListItemsByRestaurantRow
	for rows.Next() {
		var i ListItemsByRestaurantRow
		if err := rows.Scan(&i.ID, &i.CategoryID, &i.Name, &i.Description, &i.Price, &i.ImagePath, &i.CreatedAt, &i.UpdatedAt, &i.CategoryName); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getItemOwned = `
SELECT i.id, i.category_id, i.name, i.description, i.price, i.image_path, i.created_at, i.updated_at
FROM items i
JOIN categories c ON c.id = i.category_id
WHERE i.id = $1 AND c.restaurant_id = $2
`

type GetItemOwnedParams struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
}

// GetItemOwned resolves an item only when its category belongs to the given
// restaurant (ownership walk item -> category -> restaurant).
func (q *Queries) GetItemOwned(ctx context.Context, arg GetItemOwnedParams) (Item, error) {
	row := q.db.QueryRow(ctx, getItemOwned, arg.ID, arg.RestaurantID)
	var i Item
	err := row.Scan(&i.ID, &i.CategoryID, &i.Name, &i.Description, &i.Price, &i.ImagePath, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getItemForOrder = `
SELECT i.id, i.name, i.price
FROM items i
JOIN categories c ON c.id = i.category_id
WHERE i.id = $1 AND c.restaurant_id = $2
`

type GetItemForOrderParams struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
}

type GetItemForOrderRow struct {
	ID    uuid.UUID
	Name  string
	Price pgtype.Numeric
}

func (q *Queries) GetItemForOrder(ctx context.Context, arg GetItemForOrderParams) (GetItemForOrderRow, error) {
	row := q.db.QueryRow(ctx, getItemForOrder, arg.ID, arg.RestaurantID)
	var i GetItemForOrderRow
	err := row.Scan(&i.ID, &i.Name, &i.Price)
	return i, err
}

const createItem = `
INSERT INTO items (category_id, name, description, price, image_path)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, category_id, name, description, price, image_path, created_at, updated_at
`

type CreateItemParams struct {
	CategoryID  uuid.UUID
	Name        string
	Description pgtype.Text
	Price       pgtype.Numeric
	ImagePath   pgtype.Text
}

func (q *Queries) CreateItem(ctx context.Context, arg CreateItemParams) (Item, error) {
	row := q.db.QueryRow(ctx, createItem, arg.CategoryID, arg.Name, arg.Description, arg.Price, arg.ImagePath)
	var i Item
	err := row.Scan(&i.ID, &i.CategoryID, &i.Name, &i.Description, &i.Price, &i.ImagePath, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const updateItem = `
UPDATE items
SET name = $2, description = $3, price = $4, image_path = $5, updated_at = now()
WHERE id = $1
RETURNING id, category_id, name, description, price, image_path, created_at, updated_at
`

type UpdateItemParams struct {
	ID          uuid.UUID
	Name        string
	Description pgtype.Text
	Price       pgtype.Numeric
	ImagePath   pgtype.Text
}

func (q *Queries) UpdateItem(ctx context.Context, arg UpdateItemParams) (Item, error) {
	row := q.db.QueryRow(ctx, updateItem, arg.ID, arg.Name, arg.Description, arg.Price, arg.ImagePath)
	var i Item
	err := row.Scan(&i.ID, &i.CategoryID, &i.Name, &i.Description, &i.Price, &i.ImagePath, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteItem = `
DELETE FROM items
WHERE id = $1
RETURNING id
`

func (q *Queries) DeleteItem(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, deleteItem, id)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}
