package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/staffing-api/internal/domain"
	"github.com/staffing-api/internal/dto"
	"github.com/staffing-api/internal/service"
)

// CompanyHandler обслуживает HTTP API компании
type CompanyHandler struct {
	svc       service.CompanyService
	validator *validator.Validate
	logger    *slog.Logger
}

func NewCompanyHandler(svc service.CompanyService, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{
		svc:       svc,
		validator: validator.New(),
		logger:    logger,
	}
}

func (h *CompanyHandler) Company(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.svc.Company(r.Context()))
}

func (h *CompanyHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepartmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	dept, err := h.svc.CreateDepartment(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, dept)
}

func (h *CompanyHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.svc.ListDepartments(r.Context()))
}

func (h *CompanyHandler) GetDepartment(w http.ResponseWriter, r *http.Request, name string) {
	dept, err := h.svc.GetDepartment(r.Context(), name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dept)
}

func (h *CompanyHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.svc.DeleteDepartment(r.Context(), name); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CompanyHandler) HireEmployee(w http.ResponseWriter, r *http.Request, department string) {
	var req dto.CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.svc.HireEmployee(r.Context(), department, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, emp)
}

// decode читает и валидирует тело запроса; при ошибке ответ уже отправлен.
func (h *CompanyHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return false
	}
	return true
}

func (h *CompanyHandler) handleServiceError(w http.ResponseWriter, err error) {
	if ce, ok := domain.IsCapacityError(err); ok {
		h.respondError(w, http.StatusConflict, "employee is at project capacity", ce.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrDepartmentNotFound):
		h.respondError(w, http.StatusNotFound, "department not found", err.Error())
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", err.Error())
	case errors.Is(err, domain.ErrProjectNotFound):
		h.respondError(w, http.StatusNotFound, "project not found", err.Error())
	case errors.Is(err, service.ErrUnknownReport):
		h.respondError(w, http.StatusNotFound, "report not found", err.Error())
	case errors.Is(err, domain.ErrDuplicateDepartmentName):
		h.respondError(w, http.StatusConflict, "department with this name already exists", "")
	case errors.Is(err, domain.ErrDuplicateProjectID):
		h.respondError(w, http.StatusConflict, "project with this id already exists", "")
	case errors.Is(err, domain.ErrDuplicateID):
		h.respondError(w, http.StatusConflict, "employee with this id already exists", err.Error())
	case errors.Is(err, domain.ErrTerminalStatus):
		h.respondError(w, http.StatusConflict, "project is closed", err.Error())
	case errors.Is(err, domain.ErrAlreadyMember):
		h.respondError(w, http.StatusConflict, "employee is already on the team", err.Error())
	case errors.Is(err, domain.ErrDepartmentNotEmpty):
		h.respondError(w, http.StatusConflict, "department still has employees", err.Error())
	case errors.Is(err, domain.ErrProjectHasTeam):
		h.respondError(w, http.StatusConflict, "project still has team members", err.Error())
	case errors.Is(err, domain.ErrEmployeeAssigned):
		h.respondError(w, http.StatusConflict, "employee is assigned to projects", err.Error())
	case errors.Is(err, domain.ErrUnknownEmployeeKind):
		h.respondError(w, http.StatusBadRequest, "unknown employee type", err.Error())
	case errors.Is(err, domain.ErrValidation):
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *CompanyHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *CompanyHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
