package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/staffing-api/internal/domain"
	"github.com/staffing-api/internal/dto"
	"github.com/staffing-api/internal/report"
	"github.com/staffing-api/internal/snapshot"
)

// ReportKind - вид выгружаемого отчёта
type ReportKind string

const (
	ReportEmployeesCSV ReportKind = "employees.csv"
	ReportProjectsCSV  ReportKind = "projects.csv"
	ReportPlanning     ReportKind = "planning"
	ReportFinancial    ReportKind = "financial"
)

// ErrUnknownReport - запрошен несуществующий отчёт
var ErrUnknownReport = errors.New("unknown report")

// CompanyService определяет интерфейс бизнес-логики компании.
// Все методы безопасны для конкурентного вызова.
type CompanyService interface {
	Company(ctx context.Context) dto.CompanyResponse

	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	ListDepartments(ctx context.Context) []dto.DepartmentResponse
	GetDepartment(ctx context.Context, name string) (*dto.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, name string) error

	HireEmployee(ctx context.Context, department string, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	ListEmployees(ctx context.Context, sortBy string) ([]dto.EmployeeResponse, error)
	GetEmployee(ctx context.Context, id int64) (*dto.EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id int64) error
	AddSkill(ctx context.Context, id int64, req *dto.AddSkillRequest) (*dto.EmployeeResponse, error)
	RemoveSkill(ctx context.Context, id int64, skill string) (bool, error)
	AddSales(ctx context.Context, id int64, req *dto.AddSalesRequest) (*dto.EmployeeResponse, error)
	SetBonus(ctx context.Context, id int64, req *dto.SetBonusRequest) (*dto.EmployeeResponse, error)

	CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	ListProjects(ctx context.Context, status string) ([]dto.ProjectResponse, error)
	GetProject(ctx context.Context, id string) (*dto.ProjectResponse, error)
	ChangeProjectStatus(ctx context.Context, id string, req *dto.ChangeStatusRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, id string) error
	AssignMembers(ctx context.Context, projectID string, req *dto.AssignRequest) (*dto.AssignResponse, error)
	UnassignMember(ctx context.Context, projectID string, employeeID int64) (bool, error)

	Cost(ctx context.Context) dto.CostResponse
	Workload(ctx context.Context) dto.WorkloadResponse
	Overloaded(ctx context.Context, threshold *int) []dto.OverloadResponse
	Optimization(ctx context.Context) dto.OptimizationResponse
	DepartmentStats(ctx context.Context) dto.DepartmentStatsResponse
	ProjectBudgets(ctx context.Context) dto.BudgetAnalysisResponse

	WriteReport(ctx context.Context, kind ReportKind, w io.Writer) error
	Save(ctx context.Context) error
}

type companyService struct {
	mu      sync.RWMutex
	company *domain.Company
	store   snapshot.Store
	logger  *slog.Logger
	now     func() time.Time
}

// NewCompanyService создаёт новый экземпляр сервиса
func NewCompanyService(company *domain.Company, store snapshot.Store, logger *slog.Logger) CompanyService {
	return &companyService{
		company: company,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *companyService) Company(_ context.Context) dto.CompanyResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return dto.CompanyResponse{
		Name:             s.company.Name(),
		Departments:      len(s.company.Departments()),
		Employees:        len(s.company.AllEmployees()),
		Projects:         len(s.company.Projects()),
		TotalMonthlyCost: s.company.TotalMonthlyCost().Round(2).InexactFloat64(),
	}
}

func (s *companyService) WriteReport(ctx context.Context, kind ReportKind, w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch kind {
	case ReportEmployeesCSV:
		return report.EmployeesCSV(w, s.company)
	case ReportProjectsCSV:
		return report.ProjectsCSV(w, s.company)
	case ReportPlanning:
		return report.Planning(w, s.company)
	case ReportFinancial:
		return report.Financial(w, s.company, s.now())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownReport, kind)
	}
}

// Save сохраняет текущее состояние компании в хранилище.
func (s *companyService) Save(ctx context.Context) error {
	s.mu.RLock()
	doc := snapshot.Capture(s.company, s.now())
	s.mu.RUnlock()

	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.logger.InfoContext(ctx, "snapshot saved",
		slog.String("company", doc.CompanyName),
		slog.Int("employees", doc.Metadata.TotalEmployees),
		slog.Int("projects", doc.Metadata.TotalProjects),
	)
	return nil
}
