package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitorSouza2004/SouzaTec/internal/intake"
)

func submitRouter(repo *memRepo) http.Handler {
	h := NewRequestHTTP(repo, intake.New(repo, nil, nil, nil, "5511939231112", zerolog.Nop()))
	r := chi.NewRouter()
	r.Post("/api/requests", h.Submit())
	return r
}

func TestSubmitEndpointSaved(t *testing.T) {
	repo := newMemRepo()
	srv := submitRouter(repo)

	body := `{"name":"Maria Silva","phone":"11999998888","service":"Outros","message":"notebook não liga"}`
	req := httptest.NewRequest("POST", "/api/requests", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"saved"`)
	assert.Contains(t, rec.Body.String(), "wa.me/5511939231112")
	assert.Len(t, repo.items, 1)
}

func TestSubmitEndpointValidation(t *testing.T) {
	repo := newMemRepo()
	srv := submitRouter(repo)

	body := `{"name":"M","phone":"11999998888","service":"Outros","message":"notebook não liga"}`
	req := httptest.NewRequest("POST", "/api/requests", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nome deve ter pelo menos 2 caracteres")
	assert.Empty(t, repo.items, "rejected payload must not be stored")
}

func TestSubmitEndpointBadJSON(t *testing.T) {
	srv := submitRouter(newMemRepo())
	req := httptest.NewRequest("POST", "/api/requests", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
