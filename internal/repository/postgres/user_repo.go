package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
	"github.com/VitorSouza2004/SouzaTec/internal/repository"
)

type UserRepo struct{ db *pgxpool.Pool }

func NewUserRepo(db *pgxpool.Pool) repository.UserRepository { return &UserRepo{db: db} }

const userCols = `
	id, email, name, phone, specialty, role, active,
	created, created_by, last_login, last_login_ip,
	deactivated_at, deactivated_by, activated_at, activated_by`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Phone, &u.Specialty, &u.Role, &u.Active,
		&u.Created, &u.CreatedBy, &u.LastLogin, &u.LastLoginIP,
		&u.DeactivatedAt, &u.DeactivatedBy, &u.ActivatedAt, &u.ActivatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create stores a staff account (bcrypt hash goes to password_h).
func (r *UserRepo) Create(ctx context.Context, u *models.User, passwordHash string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (email, name, phone, specialty, role, active, password_h, created, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING `+userCols,
		u.Email, u.Name, u.Phone, u.Specialty, u.Role, u.Active, passwordHash, u.Created, u.CreatedBy))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var u models.User
	var ph string
	err := r.db.QueryRow(ctx, `
		SELECT id, email, name, phone, specialty, role, active, password_h,
		       created, created_by, last_login, last_login_ip,
		       deactivated_at, deactivated_by, activated_at, activated_by
		FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.Specialty, &u.Role, &u.Active, &ph,
			&u.Created, &u.CreatedBy, &u.LastLogin, &u.LastLoginIP,
			&u.DeactivatedAt, &u.DeactivatedBy, &u.ActivatedAt, &u.ActivatedBy)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &u, ph, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// List returns a filtered, paginated staff listing and total count.
// Filters: q (matches email or name, ILIKE), role (exact), active (*bool).
func (r *UserRepo) List(ctx context.Context, q, role string, active *bool, limit, offset int) ([]models.User, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(q); s != "" {
		p := "%" + s + "%"
		args = append(args, p, p)
		clauses = append(clauses, "(email ILIKE $"+itoa(len(args)-1)+" OR name ILIKE $"+itoa(len(args))+")")
	}
	if s := strings.TrimSpace(role); s != "" {
		args = append(args, s)
		clauses = append(clauses, "role = $"+itoa(len(args)))
	}
	if active != nil {
		args = append(args, *active)
		clauses = append(clauses, "active = $"+itoa(len(args)))
	}

	countSQL := `SELECT COUNT(*) FROM users WHERE ` + strings.Join(clauses, " AND ")
	var total int
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	listSQL := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created DESC
		LIMIT $%d OFFSET $%d
	`, userCols, strings.Join(clauses, " AND "), len(args)-1, len(args))
	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *u)
	}
	return out, total, rows.Err()
}

// Deactivate keeps the account (and its credentials) but revokes
// application access; the login path checks active.
func (r *UserRepo) Deactivate(ctx context.Context, id, byUID, at string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users
		SET active = FALSE, deactivated_at = $1, deactivated_by = $2
		WHERE id = $3
		RETURNING `+userCols, at, byUID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Activate restores access to a deactivated account and stamps who
// flipped it back. The deactivation audit fields stay as they were.
func (r *UserRepo) Activate(ctx context.Context, id, byUID, at string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users
		SET active = TRUE, activated_at = $1, activated_by = $2
		WHERE id = $3
		RETURNING `+userCols, at, byUID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, id, at, ip string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET last_login = $1, last_login_ip = $2 WHERE id = $3
	`, at, ip, id)
	return err
}
