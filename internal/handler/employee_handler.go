package handler

import (
	"net/http"

	"github.com/staffing-api/internal/dto"
)

// ListEmployees поддерживает ?sort=salary|name|department|type
func (h *CompanyHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListEmployees(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, list)
}

func (h *CompanyHandler) GetEmployee(w http.ResponseWriter, r *http.Request, id int64) {
	emp, err := h.svc.GetEmployee(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, emp)
}

func (h *CompanyHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.svc.DeleteEmployee(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CompanyHandler) AddSkill(w http.ResponseWriter, r *http.Request, id int64) {
	var req dto.AddSkillRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.svc.AddSkill(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, emp)
}

func (h *CompanyHandler) RemoveSkill(w http.ResponseWriter, r *http.Request, id int64, skill string) {
	removed, err := h.svc.RemoveSkill(r.Context(), id, skill)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.RemovedResponse{Removed: removed})
}

func (h *CompanyHandler) AddSales(w http.ResponseWriter, r *http.Request, id int64) {
	var req dto.AddSalesRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.svc.AddSales(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, emp)
}

func (h *CompanyHandler) SetBonus(w http.ResponseWriter, r *http.Request, id int64) {
	var req dto.SetBonusRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.svc.SetBonus(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, emp)
}
