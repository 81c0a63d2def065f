package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mightytheif/sakany/pkg/models"
)

func (r *SQLiteRepo) CreateReport(ctx context.Context, rep *models.Report) (int64, error) {
	if rep == nil {
		return 0, fmt.Errorf("report is nil")
	}
	if rep.Status == "" {
		rep.Status = models.ReportOpen
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO reports (property_id, reporter_id, reason, details, status, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rep.PropertyID, rep.ReporterID, rep.Reason, rep.Details, rep.Status, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetReportByID(ctx context.Context, id int64) (*models.Report, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, property_id, reporter_id, reason, details, status, created, updated FROM reports WHERE id = ?`, id)
	var rep models.Report
	var details sql.NullString
	if err := row.Scan(&rep.ID, &rep.PropertyID, &rep.ReporterID, &rep.Reason, &details, &rep.Status, &rep.Created, &rep.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	rep.Details = details.String
	return &rep, nil
}

func (r *SQLiteRepo) ListReportsByStatus(ctx context.Context, status string, limit, offset int) ([]models.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT id, property_id, reporter_id, reason, details, status, created, updated FROM reports WHERE status = ? ORDER BY created ASC LIMIT ? OFFSET ?`, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Report
	for rows.Next() {
		var rep models.Report
		var details sql.NullString
		if err := rows.Scan(&rep.ID, &rep.PropertyID, &rep.ReporterID, &rep.Reason, &details, &rep.Status, &rep.Created, &rep.Updated); err != nil {
			return nil, err
		}

		rep.Details = details.String
		out = append(out, rep)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateReportStatus(ctx context.Context, id int64, status string) error {
	_, err := r.conn.Exec(ctx, `UPDATE reports SET status = ?, updated = ? WHERE id = ?`, status, now(), id)
	return err
}

func (r *SQLiteRepo) CountOpenByProperty(ctx context.Context, propertyID int64) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM reports WHERE property_id = ? AND status = ?`, propertyID, models.ReportOpen)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}
