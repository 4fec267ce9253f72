package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/VitorSouza2004/SouzaTec/internal/middleware"
	"github.com/VitorSouza2004/SouzaTec/internal/repository"
	"github.com/VitorSouza2004/SouzaTec/internal/service"
	"github.com/VitorSouza2004/SouzaTec/internal/utils"
)

// UserHTTP exposes staff management. Every route is admin-gated at the
// router level.
type UserHTTP struct {
	repo repository.UserRepository
	svc  *service.AuthService
}

func NewUserHTTP(repo repository.UserRepository, svc *service.AuthService) *UserHTTP {
	return &UserHTTP{repo: repo, svc: svc}
}

// GET /api/users?q=&role=&active=&limit=&offset=
func (h *UserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		q := qv.Get("q")
		role := qv.Get("role")
		var active *bool
		if s := qv.Get("active"); s != "" {
			v, _ := strconv.ParseBool(s)
			active = &v
		}
		limit := utils.QueryInt(qv, "limit", 20)
		offset := utils.QueryInt(qv, "offset", 0)

		users, total, err := h.repo.List(r.Context(), q, role, active, limit, offset)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": users, "total": total})
	}
}

// POST /api/users/technicians
// Provisions a tecnico account; the generated temporary password appears in
// this response and nowhere else.
func (h *UserHTTP) CreateTechnician() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name      string `json:"name"`
			Email     string `json:"email"`
			Phone     string `json:"phone"`
			Specialty string `json:"specialty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		u, tempPassword, err := h.svc.ProvisionTechnician(r.Context(), in.Name, in.Email, in.Phone, in.Specialty, uid)
		if err != nil {
			if errors.Is(err, service.ErrInvalidInput) {
				utils.Error(w, http.StatusBadRequest, "preencha todos os campos obrigatórios")
				return
			}
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{"user": u, "tempPassword": tempPassword})
	}
}

// PATCH /api/users/{id}/deactivate
// The account keeps its credentials at the identity layer; the login path
// denies access while active is false.
func (h *UserHTTP) Deactivate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		if id == uid {
			utils.Error(w, http.StatusBadRequest, "cannot deactivate yourself")
			return
		}

		now := time.Now().UTC().Format(time.RFC3339)
		u, err := h.repo.Deactivate(r.Context(), id, uid, now)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// PATCH /api/users/{id}/activate
// Restores a deactivated account; the next login succeeds again.
func (h *UserHTTP) Activate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)

		now := time.Now().UTC().Format(time.RFC3339)
		u, err := h.repo.Activate(r.Context(), id, uid, now)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}
