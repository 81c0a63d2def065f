package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mightytheif/sakany/pkg/models"
)

const propertyColumns = `id, owner_id, title, description, property_type, price, bedrooms, bathrooms, area_sqm, location, amenities, verified, published, status, created, updated`

func (r *SQLiteRepo) CreateProperty(ctx context.Context, p *models.Property) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("property is nil")
	}
	if p.Status == "" {
		p.Status = models.StatusPending
	}

	amenities, err := json.Marshal(p.Amenities)
	if err != nil {
		return 0, fmt.Errorf("marshal amenities: %w", err)
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO properties (owner_id, title, description, property_type, price, bedrooms, bathrooms, area_sqm, location, amenities, verified, published, status, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.OwnerID, p.Title, p.Description, p.PropertyType, p.Price, p.Bedrooms, p.Bathrooms, p.AreaSqm, p.Location, string(amenities),
		boolToInt(p.Verified), boolToInt(p.Published), p.Status, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetPropertyByID(ctx context.Context, id int64) (*models.Property, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)
	p, err := scanProperty(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return p, nil
}

func (r *SQLiteRepo) UpdateProperty(ctx context.Context, p *models.Property) error {
	if p == nil {
		return fmt.Errorf("property is nil")
	}

	amenities, err := json.Marshal(p.Amenities)
	if err != nil {
		return fmt.Errorf("marshal amenities: %w", err)
	}

	_, err = r.conn.Exec(ctx, `UPDATE properties SET title = ?, description = ?, property_type = ?, price = ?, bedrooms = ?, bathrooms = ?, area_sqm = ?, location = ?, amenities = ?, published = ?, updated = ? WHERE id = ?`,
		p.Title, p.Description, p.PropertyType, p.Price, p.Bedrooms, p.Bathrooms, p.AreaSqm, p.Location, string(amenities), boolToInt(p.Published), now(), p.ID)
	return err
}

func (r *SQLiteRepo) DeleteProperty(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM properties WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepo) ListProperties(ctx context.Context, f models.PropertyFilter, limit, offset int) ([]models.Property, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var where []string
	var args []any
	if f.Type != "" {
		where = append(where, `LOWER(property_type) = LOWER(?)`)
		args = append(args, f.Type)
	}
	if f.PriceMin > 0 {
		where = append(where, `price >= ?`)
		args = append(args, f.PriceMin)
	}
	if f.PriceMax > 0 {
		where = append(where, `price <= ?`)
		args = append(args, f.PriceMax)
	}
	if f.Bedrooms > 0 {
		where = append(where, `bedrooms = ?`)
		args = append(args, f.Bedrooms)
	}
	if f.Location != "" {
		where = append(where, `location LIKE ?`)
		args = append(args, "%"+f.Location+"%")
	}

	q := `SELECT ` + propertyColumns + ` FROM properties`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, ` AND `)
	}
	q += ` ORDER BY created DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	return r.queryProperties(ctx, q, args...)
}

func (r *SQLiteRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.Property, error) {
	return r.queryProperties(ctx, `SELECT `+propertyColumns+` FROM properties WHERE owner_id = ? ORDER BY created DESC`, ownerID)
}

func (r *SQLiteRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Property, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	return r.queryProperties(ctx, `SELECT `+propertyColumns+` FROM properties WHERE status = ? ORDER BY created ASC LIMIT ? OFFSET ?`, status, limit, offset)
}

func (r *SQLiteRepo) SetModeration(ctx context.Context, id int64, verified bool, status string) error {
	_, err := r.conn.Exec(ctx, `UPDATE properties SET verified = ?, status = ?, updated = ? WHERE id = ?`, boolToInt(verified), status, now(), id)
	return err
}

func (r *SQLiteRepo) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.conn.Exec(ctx, `UPDATE properties SET status = ?, updated = ? WHERE id = ?`, status, now(), id)
	return err
}

func (r *SQLiteRepo) SetPublished(ctx context.Context, id int64, published bool) error {
	_, err := r.conn.Exec(ctx, `UPDATE properties SET published = ?, updated = ? WHERE id = ?`, boolToInt(published), now(), id)
	return err
}

func (r *SQLiteRepo) queryProperties(ctx context.Context, q string, args ...any) ([]models.Property, error) {
	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Property
	for rows.Next() {
		p, err := scanProperty(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, *p)
	}

	return out, rows.Err()
}

func scanProperty(scan func(...any) error) (*models.Property, error) {
	var p models.Property
	var description, location, amenities sql.NullString
	var verified, published int
	if err := scan(&p.ID, &p.OwnerID, &p.Title, &description, &p.PropertyType, &p.Price, &p.Bedrooms, &p.Bathrooms, &p.AreaSqm, &location, &amenities, &verified, &published, &p.Status, &p.Created, &p.Updated); err != nil {
		return nil, err
	}

	p.Description = description.String
	p.Location = location.String
	p.Verified = verified != 0
	p.Published = published != 0
	if amenities.Valid && amenities.String != "" {
		if err := json.Unmarshal([]byte(amenities.String), &p.Amenities); err != nil {
			return nil, fmt.Errorf("unmarshal amenities: %w", err)
		}
	}

	return &p, nil
}
