package repository

import (
	"context"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
)

type RequestRepository interface {
	// Create stores a new service request and returns its id. A non-empty
	// localRef acts as an idempotency key: re-creating with the same ref
	// returns the id of the already stored document instead of duplicating.
	Create(ctx context.Context, req *models.ServiceRequest, localRef string) (string, error)
	List(ctx context.Context, f RequestFilter) ([]models.ServiceRequest, int, error)
	Get(ctx context.Context, id string) (*models.ServiceRequest, error)
	// Assign sets the technician on an unassigned request. Returns false
	// without error when the request is already assigned (first wins).
	Assign(ctx context.Context, id, userID, userName, at string) (bool, error)
	// Complete moves a pending request to completed. Returns false without
	// error when the request was already completed.
	Complete(ctx context.Context, id, userID, userName, at string) (bool, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (models.RequestStats, error)
	// MonthlyReport aggregates the given YYYY-MM month in the database so
	// the counts cover every row, not one listing page.
	MonthlyReport(ctx context.Context, month string) (models.MonthlyReport, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, q, role string, active *bool, limit, offset int) ([]models.User, int, error)
	Deactivate(ctx context.Context, id, byUID, at string) (*models.User, error)
	Activate(ctx context.Context, id, byUID, at string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id, at, ip string) error
}
