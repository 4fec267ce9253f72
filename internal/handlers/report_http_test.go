package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
)

func reportRouter(repo *memRepo) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/reports/monthly", NewReportsHTTP(repo).Monthly())
	return r
}

func TestMonthlyRequiresMonth(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/monthly", nil)
	reportRouter(newMemRepo()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMonthlyCountsEveryRequestInTheMonth(t *testing.T) {
	m := newMemRepo()
	ctx := context.Background()

	// More requests than a single listing page can carry.
	for i := 0; i < 250; i++ {
		r := &models.ServiceRequest{
			Name:    fmt.Sprintf("Cliente %d", i),
			Service: "Redes e Wi-Fi",
			Status:  models.StatusCompleted,
			Date:    fmt.Sprintf("2025-03-%02dT10:00:00Z", i%28+1),
		}
		_, err := m.Create(ctx, r, "")
		require.NoError(t, err)
	}
	// A different month stays out of the report.
	_, err := m.Create(ctx, &models.ServiceRequest{
		Name: "Outro mês", Service: "Outros",
		Status: models.StatusPending, Date: "2025-04-01T10:00:00Z",
	}, "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/monthly?month=2025-03", nil)
	reportRouter(m).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var rep models.MonthlyReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "2025-03", rep.Month)
	assert.Equal(t, 250, rep.Total)
	assert.Equal(t, 250, rep.Completed)
	assert.Zero(t, rep.Pending)
	assert.Equal(t, 250, rep.ByService["Redes e Wi-Fi"])
}
