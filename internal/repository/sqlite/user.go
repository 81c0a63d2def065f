package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mightytheif/sakany/pkg/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO users (name, email, role, is_admin, password_hash, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.Role, boolToInt(u.IsAdmin), u.PasswordHash, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanUser(r.conn.QueryRow(ctx, `SELECT id, name, email, role, is_admin, password_hash, created, updated FROM users WHERE id = ?`, id))
}

func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.conn.QueryRow(ctx, `SELECT id, name, email, role, is_admin, password_hash, created, updated FROM users WHERE email = ?`, email))
}

func (r *SQLiteRepo) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var isAdmin int
	var pw sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &isAdmin, &pw, &u.Created, &u.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	u.IsAdmin = isAdmin != 0
	if pw.Valid {
		u.PasswordHash = pw.String
	}

	return &u, nil
}

func (r *SQLiteRepo) UpdateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE users SET name = ?, email = ?, role = ?, is_admin = ?, password_hash = ?, updated = ? WHERE id = ?`,
		u.Name, u.Email, u.Role, boolToInt(u.IsAdmin), u.PasswordHash, now(), u.ID)
	return err
}

func (r *SQLiteRepo) DeleteUser(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
