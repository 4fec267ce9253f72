package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
	"github.com/VitorSouza2004/SouzaTec/internal/repository"
	"github.com/VitorSouza2004/SouzaTec/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserDisabled: the account still authenticates with valid
	// credentials but application access has been revoked.
	ErrUserDisabled = errors.New("user disabled")
	ErrInvalidInput = errors.New("invalid input")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService struct {
	users         repository.UserRepository
	sessionSecret string
}

func NewAuthService(users repository.UserRepository, sessionSecret string) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret}
}

func (a *AuthService) Login(ctx context.Context, email, password, ip string) (token string, user *models.User, err error) {
	u, hash, err := a.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(hash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !u.Active {
		return "", nil, ErrUserDisabled
	}

	tok, err := utils.SignJWT(a.sessionSecret, u.ID, u.Name, u.Role, 24*time.Hour)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := a.users.UpdateLastLogin(ctx, u.ID, now, ip); err != nil {
		// audit-only field, login proceeds
		return tok, u, nil
	}
	u.LastLogin = now
	u.LastLoginIP = ip
	return tok, u, nil
}

// ProvisionTechnician creates a tecnico account with a generated temporary
// password. The password is returned exactly once for the admin to hand
// over; only the bcrypt hash is stored.
func (a *AuthService) ProvisionTechnician(ctx context.Context, name, email, phone, specialty, createdBy string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	specialty = strings.TrimSpace(specialty)
	if name == "" || email == "" || phone == "" || specialty == "" {
		return nil, "", ErrInvalidInput
	}
	if !emailRe.MatchString(email) {
		return nil, "", ErrInvalidInput
	}

	tempPassword := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	hash, err := utils.HashPassword(tempPassword)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{
		Email:     email,
		Name:      name,
		Phone:     phone,
		Specialty: specialty,
		Role:      models.RoleTecnico,
		Active:    true,
		Created:   time.Now().UTC().Format(time.RFC3339),
		CreatedBy: createdBy,
	}
	created, err := a.users.Create(ctx, u, hash)
	if err != nil {
		return nil, "", err
	}
	return created, tempPassword, nil
}
