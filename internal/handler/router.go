package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/staffing-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	handler *CompanyHandler
}

// NewRouter создаёт новый роутер
func NewRouter(handler *CompanyHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:     http.NewServeMux(),
		logger:  logger,
		handler: handler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc("/departments/", r.departmentsRouter)
	r.mux.HandleFunc("/employees/", r.employeesRouter)
	r.mux.HandleFunc("/projects/", r.projectsRouter)
	r.mux.HandleFunc("/analytics/", r.analyticsRouter)
	r.mux.HandleFunc("/reports/", r.reportsRouter)
	r.mux.HandleFunc("/company", r.only(http.MethodGet, r.handler.Company))
	r.mux.HandleFunc("/snapshot", r.only(http.MethodPost, r.handler.SaveSnapshot))

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

func (r *Router) only(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			methodNotAllowed(w)
			return
		}
		next(w, req)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
}

func notFound(w http.ResponseWriter) {
	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

// splitPath возвращает сегменты пути после префикса
func splitPath(path, prefix string) []string {
	path = strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// departmentsRouter обрабатывает все запросы к /departments/
func (r *Router) departmentsRouter(w http.ResponseWriter, req *http.Request) {
	parts := splitPath(req.URL.Path, "/departments")

	switch {
	case len(parts) == 0:
		// /departments/
		switch req.Method {
		case http.MethodPost:
			r.handler.CreateDepartment(w, req)
		case http.MethodGet:
			r.handler.ListDepartments(w, req)
		default:
			methodNotAllowed(w)
		}

	case len(parts) == 1:
		// /departments/{name}
		switch req.Method {
		case http.MethodGet:
			r.handler.GetDepartment(w, req, parts[0])
		case http.MethodDelete:
			r.handler.DeleteDepartment(w, req, parts[0])
		default:
			methodNotAllowed(w)
		}

	case len(parts) == 2 && parts[1] == "employees":
		// /departments/{name}/employees/
		if req.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		r.handler.HireEmployee(w, req, parts[0])

	default:
		notFound(w)
	}
}

// employeesRouter обрабатывает все запросы к /employees/
func (r *Router) employeesRouter(w http.ResponseWriter, req *http.Request) {
	parts := splitPath(req.URL.Path, "/employees")

	if len(parts) == 0 {
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		r.handler.ListEmployees(w, req)
		return
	}

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		r.handler.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	switch {
	case len(parts) == 1:
		// /employees/{id}
		switch req.Method {
		case http.MethodGet:
			r.handler.GetEmployee(w, req, id)
		case http.MethodDelete:
			r.handler.DeleteEmployee(w, req, id)
		default:
			methodNotAllowed(w)
		}

	case len(parts) == 2 && parts[1] == "skills":
		r.only(http.MethodPost, func(w http.ResponseWriter, req *http.Request) {
			r.handler.AddSkill(w, req, id)
		})(w, req)

	case len(parts) == 3 && parts[1] == "skills":
		r.only(http.MethodDelete, func(w http.ResponseWriter, req *http.Request) {
			r.handler.RemoveSkill(w, req, id, parts[2])
		})(w, req)

	case len(parts) == 2 && parts[1] == "sales":
		r.only(http.MethodPost, func(w http.ResponseWriter, req *http.Request) {
			r.handler.AddSales(w, req, id)
		})(w, req)

	case len(parts) == 2 && parts[1] == "bonus":
		r.only(http.MethodPut, func(w http.ResponseWriter, req *http.Request) {
			r.handler.SetBonus(w, req, id)
		})(w, req)

	default:
		notFound(w)
	}
}

// projectsRouter обрабатывает все запросы к /projects/
func (r *Router) projectsRouter(w http.ResponseWriter, req *http.Request) {
	parts := splitPath(req.URL.Path, "/projects")

	switch {
	case len(parts) == 0:
		// /projects/
		switch req.Method {
		case http.MethodPost:
			r.handler.CreateProject(w, req)
		case http.MethodGet:
			r.handler.ListProjects(w, req)
		default:
			methodNotAllowed(w)
		}

	case len(parts) == 1:
		// /projects/{id}
		switch req.Method {
		case http.MethodGet:
			r.handler.GetProject(w, req, parts[0])
		case http.MethodDelete:
			r.handler.DeleteProject(w, req, parts[0])
		default:
			methodNotAllowed(w)
		}

	case len(parts) == 2 && parts[1] == "status":
		r.only(http.MethodPatch, func(w http.ResponseWriter, req *http.Request) {
			r.handler.ChangeProjectStatus(w, req, parts[0])
		})(w, req)

	case len(parts) == 2 && parts[1] == "members":
		r.only(http.MethodPost, func(w http.ResponseWriter, req *http.Request) {
			r.handler.AssignMembers(w, req, parts[0])
		})(w, req)

	case len(parts) == 3 && parts[1] == "members":
		// /projects/{id}/members/{employee_id}
		employeeID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			r.handler.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
			return
		}
		r.only(http.MethodDelete, func(w http.ResponseWriter, req *http.Request) {
			r.handler.UnassignMember(w, req, parts[0], employeeID)
		})(w, req)

	default:
		notFound(w)
	}
}

// analyticsRouter обрабатывает GET /analytics/{kind}
func (r *Router) analyticsRouter(w http.ResponseWriter, req *http.Request) {
	parts := splitPath(req.URL.Path, "/analytics")
	if len(parts) != 1 {
		notFound(w)
		return
	}
	if req.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	r.handler.Analytics(w, req, parts[0])
}

// reportsRouter обрабатывает GET /reports/{kind}
func (r *Router) reportsRouter(w http.ResponseWriter, req *http.Request) {
	parts := splitPath(req.URL.Path, "/reports")
	if len(parts) != 1 {
		notFound(w)
		return
	}
	if req.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	r.handler.Report(w, req, parts[0])
}
