package handlers

import (
	"net/http"

	"github.com/VitorSouza2004/SouzaTec/internal/repository"
	"github.com/VitorSouza2004/SouzaTec/internal/utils"
)

type ReportsHTTP struct {
	repo repository.RequestRepository
}

func NewReportsHTTP(r repository.RequestRepository) *ReportsHTTP { return &ReportsHTTP{repo: r} }

// GET /api/reports/monthly?month=2025-03
// Returns the month's totals plus per-service and per-technician breakdowns.
// Aggregation runs in the database so the counts are exact regardless of
// how many requests the month holds.
func (h *ReportsHTTP) Monthly() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month := r.URL.Query().Get("month")
		if month == "" {
			utils.Error(w, http.StatusBadRequest, "month is required (YYYY-MM)")
			return
		}

		rep, err := h.repo.MonthlyReport(r.Context(), month)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, rep)
	}
}
