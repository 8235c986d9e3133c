package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/staffing-api/internal/service"
)

// Analytics отдаёт аналитику по виду: cost, workload, overloaded,
// optimization, departments, projects.
func (h *CompanyHandler) Analytics(w http.ResponseWriter, r *http.Request, kind string) {
	ctx := r.Context()

	switch kind {
	case "cost":
		h.respondJSON(w, http.StatusOK, h.svc.Cost(ctx))
	case "workload":
		h.respondJSON(w, http.StatusOK, h.svc.Workload(ctx))
	case "overloaded":
		var threshold *int
		if raw := r.URL.Query().Get("threshold"); raw != "" {
			t, err := strconv.Atoi(raw)
			if err != nil || t < 0 {
				h.respondError(w, http.StatusBadRequest, "invalid threshold", raw)
				return
			}
			threshold = &t
		}
		h.respondJSON(w, http.StatusOK, h.svc.Overloaded(ctx, threshold))
	case "optimization":
		h.respondJSON(w, http.StatusOK, h.svc.Optimization(ctx))
	case "departments":
		h.respondJSON(w, http.StatusOK, h.svc.DepartmentStats(ctx))
	case "projects":
		h.respondJSON(w, http.StatusOK, h.svc.ProjectBudgets(ctx))
	default:
		notFound(w)
	}
}

// Report выгружает CSV или текстовый отчёт целиком
func (h *CompanyHandler) Report(w http.ResponseWriter, r *http.Request, kind string) {
	var buf bytes.Buffer
	reportKind := service.ReportKind(kind)
	if err := h.svc.WriteReport(r.Context(), reportKind, &buf); err != nil {
		h.handleServiceError(w, err)
		return
	}

	switch reportKind {
	case service.ReportEmployeesCSV, service.ReportProjectsCSV:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+kind+`"`)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write report", slog.String("report", kind), slog.Any("error", err))
	}
}

// SaveSnapshot сохраняет текущее состояние компании в хранилище
func (h *CompanyHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Save(r.Context()); err != nil {
		h.logger.Error("failed to save snapshot", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "failed to save snapshot", "")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
