package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/menulink/api/internal/database"
	"github.com/menulink/api/internal/middleware"
	"github.com/shopspring/decimal"
)

// maxUploadBytes caps multipart image uploads.
const maxUploadBytes = 5 << 20

var errNoClaims = errors.New("no claims in context")

// restaurantResolver is the slice of the store every protected handler needs
// to map the authenticated user onto their restaurant.
type restaurantResolver interface {
	GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (database.Restaurant, error)
}

// ImageStore is the disk-backed storage slice used by handlers that accept
// image uploads.
type ImageStore interface {
	Save(kind, ext string, r io.Reader) (string, error)
	Delete(relPath string) error
}

// callerRestaurant resolves the caller's restaurant from the JWT claims.
// Returns pgx.ErrNoRows when the account has not created one yet.
func callerRestaurant(r *http.Request, store restaurantResolver) (database.Restaurant, error) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		return database.Restaurant{}, errNoClaims
	}
	return store.GetRestaurantByOwner(r.Context(), claims.UserID)
}

// uuidParam parses a UUID chi URL parameter.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// numericToString renders a numeric column the way prices appear on the wire.
func numericToString(n pgtype.Numeric) string {
	if !n.Valid || n.Int == nil {
		return "0"
	}
	return decimal.NewFromBigInt(n.Int, n.Exp).String()
}

// parsePrice validates a price field into a numeric column value. Rejects
// negatives and anything that is not a decimal number.
func parsePrice(s string) (pgtype.Numeric, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return pgtype.Numeric{}, errors.New("price must be a decimal number")
	}
	if d.IsNegative() {
		return pgtype.Numeric{}, errors.New("price must not be negative")
	}
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}, nil
}

// textOf wraps an optional string as a nullable text column value.
func textOf(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// imageURL turns a stored relative path ("items/<uuid>.png") into the public
// serving URL, or "" when there is no image.
func imageURL(p pgtype.Text) string {
	if !p.Valid || p.String == "" {
		return ""
	}
	return "/images/" + p.String
}
