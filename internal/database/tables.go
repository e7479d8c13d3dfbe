package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const listTablesByRestaurant = `
SELECT id, restaurant_id, number, qr_path, created_at
FROM tables
WHERE restaurant_id = $1
ORDER BY number
`

func (q *Queries) ListTablesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]DiningTable, error) {
	rows, err := q.db.Query(ctx, listTablesByRestaurant, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tables []DiningTable
	for rows.Next() {
		var t DiningTable
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.Number, &t.QrPath, &t.CreatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

const getTableByNumber = `
SELECT id, restaurant_id, number, qr_path, created_at
FROM tables
WHERE restaurant_id = $1 AND number = $2
`

type GetTableByNumberParams struct {
	RestaurantID uuid.UUID
	Number       int32
}

func (q *Queries) GetTableByNumber(ctx context.Context, arg GetTableByNumberParams) (DiningTable, error) {
	row := q.db.QueryRow(ctx, getTableByNumber, arg.RestaurantID, arg.Number)
	var t DiningTable
	err := row.Scan(&t.ID, &t.RestaurantID, &t.Number, &t.QrPath, &t.CreatedAt)
	return t, err
}

const createTable = `
INSERT INTO tables (restaurant_id, number, qr_path)
VALUES ($1, $2, $3)
RETURNING id, restaurant_id, number, qr_path, created_at
`

type CreateTableParams struct {
	RestaurantID uuid.UUID
	Number       int32
	QrPath       pgtype.Text
}

func (q *Queries) CreateTable(ctx context.Context, arg CreateTableParams) (DiningTable, error) {
	row := q.db.QueryRow(ctx, createTable, arg.RestaurantID, arg.Number, arg.QrPath)
	var t DiningTable
	err := row.Scan(&t.ID, &t.RestaurantID, &t.Number, &t.QrPath, &t.CreatedAt)
	return t, err
}

const deleteTable = `
DELETE FROM tables
WHERE id = $1 AND restaurant_id = $2
RETURNING id
`

type DeleteTableParams struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
}

func (q *Queries) DeleteTable(ctx context.Context, arg DeleteTableParams) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, deleteTable, arg.ID, arg.RestaurantID)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}
