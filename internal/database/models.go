package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	FullName       string
	CreatedAt      time.Time
}

type Restaurant struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Address     string
	ProfilePath pgtype.Text
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Category struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	CreatedAt    time.Time
}

type Item struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description pgtype.Text
	Price       pgtype.Numeric
	ImagePath   pgtype.Text
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type DiningTable struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Number       int32
	QrPath       pgtype.Text
	CreatedAt    time.Time
}

type Order struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	TableNumber  int32
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ItemID      uuid.UUID
	Quantity    int32
	SpecialNote pgtype.Text
}

type OrderHistory struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	TableNumber  int32
	OrderedAt    time.Time
	CompletedAt  time.Time
}

type OrderItemHistory struct {
	ID             uuid.UUID
	OrderHistoryID uuid.UUID
	ItemID         uuid.UUID
	Quantity       int32
	SpecialNote    pgtype.Text
}

type OrderStatistic struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	ItemID       uuid.UUID
	StatDate     time.Time
	QuantitySold int64
	OrderCount   int64
}
