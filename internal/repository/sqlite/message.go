package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mightytheif/sakany/pkg/models"
)

func (r *SQLiteRepo) CreateMessage(ctx context.Context, m *models.Message) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("message is nil")
	}
	if m.Created == 0 {
		m.Created = now()
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO messages (sender_id, recipient_id, property_id, body, system, created) VALUES (?, ?, ?, ?, ?, ?)`,
		m.SenderID, m.RecipientID, m.PropertyID, m.Body, boolToInt(m.System), m.Created)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) ListBetween(ctx context.Context, userA, userB int64, limit, offset int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := `SELECT id, sender_id, recipient_id, property_id, body, system, created FROM messages
		WHERE (sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)
		ORDER BY created ASC LIMIT ? OFFSET ?`
	return r.queryMessages(ctx, q, userA, userB, userB, userA, limit, offset)
}

func (r *SQLiteRepo) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := `SELECT id, sender_id, recipient_id, property_id, body, system, created FROM messages
		WHERE sender_id = ? OR recipient_id = ?
		ORDER BY created DESC LIMIT ? OFFSET ?`
	return r.queryMessages(ctx, q, userID, userID, limit, offset)
}

func (r *SQLiteRepo) queryMessages(ctx context.Context, q string, args ...any) ([]models.Message, error) {
	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var m models.Message
		var propertyID sql.NullInt64
		var system int
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &propertyID, &m.Body, &system, &m.Created); err != nil {
			return nil, err
		}

		if propertyID.Valid {
			m.PropertyID = &propertyID.Int64
		}
		m.System = system != 0
		out = append(out, m)
	}

	return out, rows.Err()
}
