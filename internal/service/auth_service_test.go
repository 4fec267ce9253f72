package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
	"github.com/VitorSouza2004/SouzaTec/internal/utils"
)

type fakeUsers struct {
	byEmail   map[string]*models.User
	hashes    map[string]string
	created   []*models.User
	lastLogin map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byEmail:   map[string]*models.User{},
		hashes:    map[string]string{},
		lastLogin: map[string]string{},
	}
}

func (f *fakeUsers) add(u *models.User, password string) {
	h, _ := utils.HashPassword(password)
	f.byEmail[u.Email] = u
	f.hashes[u.Email] = h
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User, passwordHash string) (*models.User, error) {
	cp := *u
	cp.ID = "u-" + cp.Email
	f.created = append(f.created, &cp)
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, "", nil
	}
	return u, f.hashes[email], nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) { return nil, nil }

func (f *fakeUsers) List(ctx context.Context, q, role string, active *bool, limit, offset int) ([]models.User, int, error) {
	return nil, 0, nil
}

func (f *fakeUsers) Deactivate(ctx context.Context, id, byUID, at string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUsers) Activate(ctx context.Context, id, byUID, at string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUsers) UpdateLastLogin(ctx context.Context, id, at, ip string) error {
	f.lastLogin[id] = at
	return nil
}

func TestLogin(t *testing.T) {
	users := newFakeUsers()
	users.add(&models.User{ID: "u1", Email: "admin@souzatec.com", Name: "Admin", Role: models.RoleAdmin, Active: true}, "senha123")

	svc := NewAuthService(users, "test-secret")

	tok, u, err := svc.Login(context.Background(), "admin@souzatec.com", "senha123", "203.0.113.9")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, "u1", u.ID)
	assert.NotEmpty(t, users.lastLogin["u1"])
	assert.Equal(t, "203.0.113.9", u.LastLoginIP)

	claims, err := utils.ParseJWT("test-secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "Admin", claims.Name)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUsers()
	users.add(&models.User{ID: "u1", Email: "admin@souzatec.com", Active: true}, "senha123")

	svc := NewAuthService(users, "test-secret")
	_, _, err := svc.Login(context.Background(), "admin@souzatec.com", "errada", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "ninguem@souzatec.com", "senha123", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDeniedForDeactivatedUser(t *testing.T) {
	users := newFakeUsers()
	users.add(&models.User{ID: "u2", Email: "tec@souzatec.com", Role: models.RoleTecnico, Active: false}, "senha123")

	svc := NewAuthService(users, "test-secret")
	// credentials are valid, access is not
	_, _, err := svc.Login(context.Background(), "tec@souzatec.com", "senha123", "")
	assert.ErrorIs(t, err, ErrUserDisabled)
	assert.Empty(t, users.lastLogin)
}

func TestProvisionTechnician(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(users, "test-secret")

	u, temp, err := svc.ProvisionTechnician(context.Background(),
		"Carlos", "carlos@souzatec.com", "(11) 98888-7777", "Redes e Wi-Fi", "admin-1")
	require.NoError(t, err)
	assert.Len(t, temp, 10)
	assert.Equal(t, models.RoleTecnico, u.Role)
	assert.True(t, u.Active)
	assert.Equal(t, "admin-1", u.CreatedBy)
	assert.Equal(t, "Redes e Wi-Fi", u.Specialty)
	require.Len(t, users.created, 1)
}

func TestProvisionTechnicianValidation(t *testing.T) {
	svc := NewAuthService(newFakeUsers(), "test-secret")

	_, _, err := svc.ProvisionTechnician(context.Background(), "", "carlos@souzatec.com", "11988887777", "Outros", "admin-1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.ProvisionTechnician(context.Background(), "Carlos", "carlos@", "11988887777", "Outros", "admin-1")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
