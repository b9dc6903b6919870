package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rakatama/koperasi-admin/internal/platform/report"
	"github.com/rakatama/koperasi-admin/internal/transport/httpapi/middleware"
)

const dateLayout = "2006-01-02"

// ReportHandler serves the financial report endpoints
type ReportHandler struct {
	reports *report.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Generate handles GET /reports/{kind}. Period bounds come from
// start_date/end_date query parameters; when both are absent the range
// defaults to the first of the current month through today.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	kind := report.Kind(chi.URLParam(r, "kind"))

	period, err := parsePeriod(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	businessID := r.URL.Query().Get("business_id")

	data, err := h.reports.Generate(r.Context(), token, kind, businessID, period)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrUnknownKind):
			respondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, report.ErrInvalidPeriod), errors.Is(err, report.ErrMissingBusinessUnit):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondUpstreamError(w, err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": data})
}

func parsePeriod(r *http.Request) (report.Period, error) {
	startRaw := r.URL.Query().Get("start_date")
	endRaw := r.URL.Query().Get("end_date")

	period := report.DefaultPeriod(time.Now())
	if startRaw != "" {
		start, err := time.Parse(dateLayout, startRaw)
		if err != nil {
			return report.Period{}, errors.New("start_date must be formatted YYYY-MM-DD")
		}
		period.Start = start
	}
	if endRaw != "" {
		end, err := time.Parse(dateLayout, endRaw)
		if err != nil {
			return report.Period{}, errors.New("end_date must be formatted YYYY-MM-DD")
		}
		period.End = end
	}
	return period, nil
}
