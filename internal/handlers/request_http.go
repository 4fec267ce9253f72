package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/VitorSouza2004/SouzaTec/internal/intake"
	"github.com/VitorSouza2004/SouzaTec/internal/middleware"
	"github.com/VitorSouza2004/SouzaTec/internal/models"
	"github.com/VitorSouza2004/SouzaTec/internal/repository"
	"github.com/VitorSouza2004/SouzaTec/internal/utils"
)

// RequestHTTP wires the service-request endpoints: the public contact form
// intake plus the staff panel views.
type RequestHTTP struct {
	repo repository.RequestRepository
	in   *intake.Intake
}

func NewRequestHTTP(repo repository.RequestRepository, in *intake.Intake) *RequestHTTP {
	return &RequestHTTP{repo: repo, in: in}
}

// -----------------------------------------------------------------------------
// POST /api/requests (public contact form)
// 201 saved remotely, 202 degraded (queued locally), 400 validation.
// -----------------------------------------------------------------------------
func (h *RequestHTTP) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in intake.RawSubmission
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		out, err := h.in.Submit(r.Context(), in)
		if err != nil {
			var verr *intake.ValidationError
			if errors.As(err, &verr) {
				utils.Error(w, http.StatusBadRequest, verr.Msg)
				return
			}
			utils.Error(w, http.StatusInternalServerError, "não foi possível registrar o pedido")
			return
		}

		code := http.StatusCreated
		if out.Status == intake.OutcomeQueued {
			code = http.StatusAccepted
		}
		utils.JSON(w, code, out)
	}
}

// -----------------------------------------------------------------------------
// GET /api/requests?status=&service=&month=&limit=&offset=
// Technicians only ever see requests assigned to them; the restriction is a
// query filter, not a post-hoc trim.
// -----------------------------------------------------------------------------
func (h *RequestHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.RequestFilter{
			Status:  qv.Get("status"),
			Service: qv.Get("service"),
			Month:   qv.Get("month"),
			Limit:   utils.QueryInt(qv, "limit", 100),
			Offset:  utils.QueryInt(qv, "offset", 0),
		}

		role, _ := utils.GetString(r.Context(), middleware.CtxRole)
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		if role == models.RoleTecnico {
			f.AssignedTo = uid
		}

		items, total, err := h.repo.List(r.Context(), f)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// -----------------------------------------------------------------------------
// GET /api/requests/{id}
// -----------------------------------------------------------------------------
func (h *RequestHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		req, err := h.repo.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if req == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}

		role, _ := utils.GetString(r.Context(), middleware.CtxRole)
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		if role == models.RoleTecnico && req.AssignedTo != uid {
			utils.Error(w, http.StatusForbidden, "forbidden")
			return
		}
		utils.JSON(w, http.StatusOK, req)
	}
}

// -----------------------------------------------------------------------------
// POST /api/requests/{id}/assign claims an unassigned request.
// Already assigned is not an error: first assignment wins, the current
// document comes back unchanged.
// -----------------------------------------------------------------------------
func (h *RequestHTTP) Assign() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		name, _ := utils.GetString(r.Context(), middleware.CtxName)

		now := time.Now().UTC().Format(time.RFC3339)
		claimed, err := h.repo.Assign(r.Context(), id, uid, name, now)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		req, err := h.repo.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if req == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"request": req, "assigned": claimed})
	}
}

// -----------------------------------------------------------------------------
// POST /api/requests/{id}/complete moves a pending request to completed, exactly once.
// Allowed for admins and for the assigned technician.
// -----------------------------------------------------------------------------
func (h *RequestHTTP) Complete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}

		req, err := h.repo.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if req == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}

		role, _ := utils.GetString(r.Context(), middleware.CtxRole)
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		name, _ := utils.GetString(r.Context(), middleware.CtxName)
		if role != models.RoleAdmin && req.AssignedTo != uid {
			utils.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		now := time.Now().UTC().Format(time.RFC3339)
		done, err := h.repo.Complete(r.Context(), id, uid, name, now)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !done {
			utils.Error(w, http.StatusConflict, "request already completed")
			return
		}

		updated, err := h.repo.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, updated)
	}
}

// -----------------------------------------------------------------------------
// DELETE /api/requests/{id} is admin only (route guard).
// -----------------------------------------------------------------------------
func (h *RequestHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		if err := h.repo.Delete(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// -----------------------------------------------------------------------------
// GET /api/requests/stats returns the dashboard counters.
// -----------------------------------------------------------------------------
func (h *RequestHTTP) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := h.repo.Stats(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, s)
	}
}
