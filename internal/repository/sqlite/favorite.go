package sqlite

import (
	"context"

	"github.com/mightytheif/sakany/pkg/models"
)

func (r *SQLiteRepo) AddFavorite(ctx context.Context, userID, propertyID int64) error {
	// adding twice is a no-op
	_, err := r.conn.Exec(ctx, `INSERT INTO favorites (user_id, property_id, created) VALUES (?, ?, ?) ON CONFLICT(user_id, property_id) DO NOTHING`,
		userID, propertyID, now())
	return err
}

func (r *SQLiteRepo) RemoveFavorite(ctx context.Context, userID, propertyID int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM favorites WHERE user_id = ? AND property_id = ?`, userID, propertyID)
	return err
}

func (r *SQLiteRepo) ListFavoriteProperties(ctx context.Context, userID int64) ([]models.Property, error) {
	q := `SELECT p.id, p.owner_id, p.title, p.description, p.property_type, p.price, p.bedrooms, p.bathrooms, p.area_sqm, p.location, p.amenities, p.verified, p.published, p.status, p.created, p.updated
		FROM properties p
		JOIN favorites f ON f.property_id = p.id
		WHERE f.user_id = ?
		ORDER BY f.created DESC`
	return r.queryProperties(ctx, q, userID)
}
