package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
	"github.com/VitorSouza2004/SouzaTec/internal/repository"
)

type RequestRepo struct{ db *pgxpool.Pool }

func NewRequestRepo(db *pgxpool.Pool) *RequestRepo { return &RequestRepo{db: db} }

const requestCols = `
	id, name, phone, email, service, message, status,
	date, ts, source, ip,
	COALESCE(assigned_to, ''), assigned_to_name, assigned_at,
	completed_by, completed_by_name, completed_at`

func scanRequest(row pgx.Row) (*models.ServiceRequest, error) {
	var r models.ServiceRequest
	err := row.Scan(
		&r.ID, &r.Name, &r.Phone, &r.Email, &r.Service, &r.Message, &r.Status,
		&r.Date, &r.Timestamp, &r.Source, &r.IP,
		&r.AssignedTo, &r.AssignedToName, &r.AssignedAt,
		&r.CompletedBy, &r.CompletedByName, &r.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// -----------------------------------------------------------------------------
// Create (idempotent on local_ref when provided)
// -----------------------------------------------------------------------------

// Create inserts the request and returns its id. When localRef is set, a
// repeat delivery of the same queued submission hits the partial unique
// index and resolves to the already stored row instead of a duplicate.
func (r *RequestRepo) Create(ctx context.Context, req *models.ServiceRequest, localRef string) (string, error) {
	if req.Status == "" {
		req.Status = models.StatusPending
	}
	if req.Source == "" {
		req.Source = models.SourceWebsiteForm
	}

	if localRef == "" {
		var id string
		err := r.db.QueryRow(ctx, `
			INSERT INTO clients (name, phone, email, service, message, status, date, ts, source, ip)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			RETURNING id
		`, req.Name, req.Phone, req.Email, req.Service, req.Message, req.Status,
			req.Date, req.Timestamp, req.Source, req.IP).Scan(&id)
		if err != nil {
			return "", err
		}
		req.ID = id
		return id, nil
	}

	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO clients (name, phone, email, service, message, status, date, ts, source, ip, local_ref)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (local_ref) WHERE local_ref IS NOT NULL DO NOTHING
		RETURNING id
	`, req.Name, req.Phone, req.Email, req.Service, req.Message, req.Status,
		req.Date, req.Timestamp, req.Source, req.IP, localRef).Scan(&id)
	if err == pgx.ErrNoRows {
		// already delivered on a previous drain
		err = r.db.QueryRow(ctx, `SELECT id FROM clients WHERE local_ref = $1`, localRef).Scan(&id)
	}
	if err != nil {
		return "", err
	}
	req.ID = id
	return id, nil
}

// -----------------------------------------------------------------------------
// Listing with filters + pagination (newest first by epoch ms)
// -----------------------------------------------------------------------------
func (r *RequestRepo) List(ctx context.Context, f repository.RequestFilter) ([]models.ServiceRequest, int, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	whereSQL, args := buildRequestWhere(f)

	countSQL := `SELECT COUNT(*) FROM clients ` + whereSQL
	var total int
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	sql := fmt.Sprintf(`
		SELECT %s
		FROM clients
		%s
		ORDER BY ts DESC
		LIMIT $%d OFFSET $%d
	`, requestCols, whereSQL, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.ServiceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *req)
	}
	return out, total, rows.Err()
}

func (r *RequestRepo) Get(ctx context.Context, id string) (*models.ServiceRequest, error) {
	req, err := scanRequest(r.db.QueryRow(ctx,
		`SELECT `+requestCols+` FROM clients WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// -----------------------------------------------------------------------------
// Assignment / completion: conditional updates, rows-affected as the verdict
// -----------------------------------------------------------------------------

// Assign claims an unassigned request for a technician. The WHERE guard
// makes the first assignment win; a lost race reports false, not an error.
func (r *RequestRepo) Assign(ctx context.Context, id, userID, userName, at string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE clients
		SET assigned_to = $1, assigned_to_name = $2, assigned_at = $3
		WHERE id = $4 AND assigned_to IS NULL
	`, userID, userName, at, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// Complete transitions a pending request to completed exactly once.
func (r *RequestRepo) Complete(ctx context.Context, id, userID, userName, at string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE clients
		SET status = $1, completed_by = $2, completed_by_name = $3, completed_at = $4
		WHERE id = $5 AND status = $6
	`, models.StatusCompleted, userID, userName, at, id, models.StatusPending)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *RequestRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}

// -----------------------------------------------------------------------------
// Dashboard counters
// -----------------------------------------------------------------------------
func (r *RequestRepo) Stats(ctx context.Context) (models.RequestStats, error) {
	var s models.RequestStats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = $1),
		       COUNT(*) FILTER (WHERE status = $2)
		FROM clients
	`, models.StatusPending, models.StatusCompleted).Scan(&s.Total, &s.Pending, &s.Completed)
	if err != nil {
		return s, err
	}

	s.ByService = map[string]int{}
	rows, err := r.db.Query(ctx, `SELECT service, COUNT(*) FROM clients GROUP BY service`)
	if err != nil {
		return s, err
	}
	defer rows.Close()
	for rows.Next() {
		var svc string
		var n int
		if err := rows.Scan(&svc, &n); err != nil {
			return s, err
		}
		s.ByService[svc] = n
	}
	return s, rows.Err()
}

// MonthlyReport counts the month inside the database. Listing pages are
// capped, so summing over a page would undercount busy months.
func (r *RequestRepo) MonthlyReport(ctx context.Context, month string) (models.MonthlyReport, error) {
	rep := models.MonthlyReport{
		Month:        month,
		ByService:    map[string]int{},
		ByTechnician: map[string]int{},
	}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = $1),
		       COUNT(*) FILTER (WHERE status = $2)
		FROM clients
		WHERE date LIKE $3
	`, models.StatusPending, models.StatusCompleted, month+"%").
		Scan(&rep.Total, &rep.Pending, &rep.Completed)
	if err != nil {
		return rep, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT service, COUNT(*) FROM clients WHERE date LIKE $1 GROUP BY service
	`, month+"%")
	if err != nil {
		return rep, err
	}
	defer rows.Close()
	for rows.Next() {
		var svc string
		var n int
		if err := rows.Scan(&svc, &n); err != nil {
			return rep, err
		}
		rep.ByService[svc] = n
	}
	if err := rows.Err(); err != nil {
		return rep, err
	}

	techRows, err := r.db.Query(ctx, `
		SELECT assigned_to_name, COUNT(*)
		FROM clients
		WHERE date LIKE $1 AND assigned_to IS NOT NULL
		GROUP BY assigned_to_name
	`, month+"%")
	if err != nil {
		return rep, err
	}
	defer techRows.Close()
	for techRows.Next() {
		var name string
		var n int
		if err := techRows.Scan(&name, &n); err != nil {
			return rep, err
		}
		rep.ByTechnician[name] = n
	}
	return rep, techRows.Err()
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func buildRequestWhere(f repository.RequestFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Status); s != "" {
		args = append(args, s)
		clauses = append(clauses, "status = $"+itoa(len(args)))
	}
	if s := strings.TrimSpace(f.Service); s != "" {
		args = append(args, s)
		clauses = append(clauses, "service = $"+itoa(len(args)))
	}
	if a := strings.TrimSpace(f.AssignedTo); a != "" {
		args = append(args, a)
		clauses = append(clauses, "assigned_to = $"+itoa(len(args)))
	}
	if m := strings.TrimSpace(f.Month); m != "" {
		// ISO dates sort lexicographically, prefix match selects the month
		args = append(args, m+"%")
		clauses = append(clauses, "date LIKE $"+itoa(len(args)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// small helper to avoid fmt on the hot path.
func itoa(i int) string { return strconv.Itoa(i) }
