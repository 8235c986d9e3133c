package handler

import (
	"net/http"

	"github.com/staffing-api/internal/dto"
)

func (h *CompanyHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}

	project, err := h.svc.CreateProject(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, project)
}

// ListProjects поддерживает фильтр ?status=
func (h *CompanyHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListProjects(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, list)
}

func (h *CompanyHandler) GetProject(w http.ResponseWriter, r *http.Request, id string) {
	project, err := h.svc.GetProject(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, project)
}

func (h *CompanyHandler) DeleteProject(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.DeleteProject(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CompanyHandler) ChangeProjectStatus(w http.ResponseWriter, r *http.Request, id string) {
	var req dto.ChangeStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	project, err := h.svc.ChangeProjectStatus(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, project)
}

func (h *CompanyHandler) AssignMembers(w http.ResponseWriter, r *http.Request, projectID string) {
	var req dto.AssignRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.svc.AssignMembers(r.Context(), projectID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *CompanyHandler) UnassignMember(w http.ResponseWriter, r *http.Request, projectID string, employeeID int64) {
	removed, err := h.svc.UnassignMember(r.Context(), projectID, employeeID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.RemovedResponse{Removed: removed})
}
