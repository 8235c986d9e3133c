package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/staffing-api/internal/domain"
)

// CompanyResponse - сводка по компании
type CompanyResponse struct {
	Name             string  `json:"name"`
	Departments      int     `json:"departments"`
	Employees        int     `json:"employees"`
	Projects         int     `json:"projects"`
	TotalMonthlyCost float64 `json:"total_monthly_cost"`
}

// EmployeeResponse - сотрудник и названия его проектов
type EmployeeResponse struct {
	domain.EmployeeRecord
	Projects []string `json:"projects"`
}

// MarshalJSON дописывает projects к полям записи: встроенная запись
// сама реализует json.Marshaler и иначе скрыла бы это поле.
func (r EmployeeResponse) MarshalJSON() ([]byte, error) {
	rec, err := json.Marshal(r.EmployeeRecord)
	if err != nil {
		return nil, err
	}
	projects := r.Projects
	if projects == nil {
		projects = []string{}
	}
	tail, err := json.Marshal(projects)
	if err != nil {
		return nil, err
	}
	out := append(rec[:len(rec)-1:len(rec)-1], `,"projects":`...)
	out = append(out, tail...)
	return append(out, '}'), nil
}

// DepartmentResponse - отдел с сотрудниками
type DepartmentResponse struct {
	Name        string                  `json:"name"`
	TotalSalary float64                 `json:"total_salary"`
	CountByKind map[domain.Kind]int     `json:"count_by_type"`
	Employees   []domain.EmployeeRecord `json:"employees"`
}

// TeamMember - участник команды проекта
type TeamMember struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Salary float64 `json:"salary"`
}

// ProjectResponse - проект с командой
type ProjectResponse struct {
	ProjectID       string       `json:"project_id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Deadline        string       `json:"deadline"`
	Status          string       `json:"status"`
	Team            []TeamMember `json:"team"`
	TeamSize        int          `json:"team_size"`
	TotalSalaryCost float64      `json:"total_salary_cost"`
}

// AssignFailure - неудачное назначение
type AssignFailure struct {
	EmployeeID int64  `json:"employee_id"`
	Error      string `json:"error"`
}

// AssignResponse - итог назначения на проект
type AssignResponse struct {
	Successful    []int64         `json:"successful"`
	Failed        []AssignFailure `json:"failed"`
	TotalAssigned int             `json:"total_assigned"`
}

// RemovedResponse - результат операции, которая может ничего не изменить
type RemovedResponse struct {
	Removed bool `json:"removed"`
}

// DepartmentCost - затраты одного отдела
type DepartmentCost struct {
	Name        string  `json:"name"`
	Employees   int     `json:"employees"`
	TotalSalary float64 `json:"total_salary"`
}

// CostResponse - месячные затраты компании
type CostResponse struct {
	TotalMonthlyCost float64          `json:"total_monthly_cost"`
	Departments      []DepartmentCost `json:"departments"`
}

// OverloadResponse - перегруженный сотрудник
type OverloadResponse struct {
	EmployeeID   int64    `json:"employee_id"`
	Name         string   `json:"name"`
	Department   string   `json:"department"`
	ProjectCount int      `json:"project_count"`
	Projects     []string `json:"projects"`
}

// DepartmentLoadResponse - загрузка отдела
type DepartmentLoadResponse struct {
	Department             string  `json:"department"`
	TotalEmployees         int     `json:"total_employees"`
	EmployeesInProjects    int     `json:"employees_in_projects"`
	AvgProjectsPerEmployee float64 `json:"avg_projects_per_employee"`
	OverloadedCount        int     `json:"overloaded_count"`
}

// WorkloadResponse - отчёт о загрузке
type WorkloadResponse struct {
	Overloaded   []OverloadResponse       `json:"overloaded_employees"`
	Distribution map[int]int              `json:"employee_project_distribution"`
	Departments  []DepartmentLoadResponse `json:"department_workload"`
}

// SuggestionResponse - рекомендация по разгрузке сотрудника
type SuggestionResponse struct {
	EmployeeID      int64    `json:"employee_id"`
	Employee        string   `json:"employee"`
	CurrentProjects int      `json:"current_projects"`
	Recommendation  string   `json:"recommendation"`
	ProjectsToShed  []string `json:"projects_to_reassign"`
}

// TransferTargetResponse - отдел, способный принять нагрузку
type TransferTargetResponse struct {
	Department        string  `json:"department"`
	AvgProjects       float64 `json:"avg_projects"`
	AvailableCapacity int     `json:"available_capacity"`
}

// OptimizationResponse - рекомендации по перераспределению
type OptimizationResponse struct {
	Balanced    bool                     `json:"workload_balanced"`
	Summary     string                   `json:"summary"`
	Suggestions []SuggestionResponse     `json:"suggestions"`
	Targets     []TransferTargetResponse `json:"transfer_targets"`
	Transfers   []string                 `json:"transfers_recommended"`
}

// SalaryDistributionResponse - минимум, максимум и медиана зарплат
type SalaryDistributionResponse struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// DepartmentStatResponse - статистика отдела
type DepartmentStatResponse struct {
	Name                string                      `json:"name"`
	TotalEmployees      int                         `json:"total_employees"`
	TotalSalary         float64                     `json:"total_salary"`
	AverageSalary       float64                     `json:"average_salary"`
	CountByKind         map[domain.Kind]int         `json:"employee_types"`
	Distribution        *SalaryDistributionResponse `json:"salary_distribution"`
	ProjectsInvolvement int                         `json:"projects_involvement"`
}

// DepartmentStatsResponse - статистика всех отделов
type DepartmentStatsResponse struct {
	Departments             []DepartmentStatResponse `json:"departments"`
	TotalDepartments        int                      `json:"total_departments"`
	TotalEmployees          int                      `json:"total_employees"`
	TotalMonthlyCost        float64                  `json:"total_monthly_cost"`
	MostExpensiveDepartment string                   `json:"most_expensive_department"`
}

// ProjectBudgetResponse - бюджет проекта
type ProjectBudgetResponse struct {
	ProjectID         string              `json:"project_id"`
	Name              string              `json:"name"`
	Status            string              `json:"status"`
	TeamSize          int                 `json:"team_size"`
	TotalSalaryCost   float64             `json:"total_salary_cost"`
	Deadline          string              `json:"deadline"`
	DaysUntilDeadline int                 `json:"days_until_deadline"`
	TeamComposition   map[domain.Kind]int `json:"team_composition"`
	CostPerMember     float64             `json:"cost_per_member"`
	EfficiencyScore   float64             `json:"efficiency_score"`
}

// ProjectComparisonResponse - сравнение активных проектов
type ProjectComparisonResponse struct {
	AvgTeamSize   float64 `json:"avg_team_size"`
	AvgCost       float64 `json:"avg_cost"`
	MostEfficient string  `json:"most_efficient"`
	MostExpensive string  `json:"most_expensive"`
}

// BudgetAnalysisResponse - бюджетный анализ проектов
type BudgetAnalysisResponse struct {
	Projects []ProjectBudgetResponse   `json:"projects"`
	Active   *ProjectComparisonResponse `json:"active_projects_comparison,omitempty"`
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func NewEmployeeResponse(e domain.Employee, projects []string) EmployeeResponse {
	return EmployeeResponse{EmployeeRecord: e.Record(), Projects: projects}
}

func NewDepartmentResponse(d *domain.Department) DepartmentResponse {
	resp := DepartmentResponse{
		Name:        d.Name(),
		TotalSalary: money(d.TotalSalary()),
		CountByKind: d.EmployeeCountByKind(),
		Employees:   make([]domain.EmployeeRecord, 0, d.Len()),
	}
	for e := range d.All() {
		resp.Employees = append(resp.Employees, e.Record())
	}
	return resp
}

func NewProjectResponse(p *domain.Project) ProjectResponse {
	resp := ProjectResponse{
		ProjectID:       p.ID(),
		Name:            p.Name(),
		Description:     p.Description(),
		Deadline:        p.Deadline(),
		Status:          string(p.Status()),
		Team:            make([]TeamMember, 0, p.TeamSize()),
		TeamSize:        p.TeamSize(),
		TotalSalaryCost: money(p.TotalSalary()),
	}
	for _, e := range p.Team() {
		resp.Team = append(resp.Team, TeamMember{
			ID:     e.ID(),
			Name:   e.Name(),
			Type:   string(e.Kind()),
			Salary: money(e.CalculateSalary()),
		})
	}
	return resp
}

func NewAssignResponse(r domain.BulkAssignResult) AssignResponse {
	resp := AssignResponse{
		Successful:    r.Successful,
		Failed:        make([]AssignFailure, 0, len(r.Failed)),
		TotalAssigned: r.TotalAssigned,
	}
	for _, f := range r.Failed {
		resp.Failed = append(resp.Failed, AssignFailure{EmployeeID: f.EmployeeID, Error: f.Err.Error()})
	}
	return resp
}

func NewCostResponse(c *domain.Company) CostResponse {
	resp := CostResponse{TotalMonthlyCost: money(c.TotalMonthlyCost()), Departments: []DepartmentCost{}}
	for _, d := range c.Departments() {
		resp.Departments = append(resp.Departments, DepartmentCost{
			Name:        d.Name(),
			Employees:   d.Len(),
			TotalSalary: money(d.TotalSalary()),
		})
	}
	return resp
}

func NewOverloadResponses(list []domain.Overload) []OverloadResponse {
	out := make([]OverloadResponse, 0, len(list))
	for _, o := range list {
		out = append(out, OverloadResponse{
			EmployeeID:   o.Employee.ID(),
			Name:         o.Employee.Name(),
			Department:   o.Employee.Department(),
			ProjectCount: o.ProjectCount,
			Projects:     o.Projects,
		})
	}
	return out
}

func NewWorkloadResponse(r domain.WorkloadReport) WorkloadResponse {
	resp := WorkloadResponse{
		Overloaded:   NewOverloadResponses(r.Overloaded),
		Distribution: r.Distribution,
		Departments:  make([]DepartmentLoadResponse, 0, len(r.Departments)),
	}
	for _, d := range r.Departments {
		resp.Departments = append(resp.Departments, DepartmentLoadResponse(d))
	}
	return resp
}

func NewOptimizationResponse(o domain.Optimization) OptimizationResponse {
	resp := OptimizationResponse{
		Balanced:    o.Balanced,
		Summary:     o.Summary,
		Suggestions: make([]SuggestionResponse, 0, len(o.Suggestions)),
		Targets:     make([]TransferTargetResponse, 0, len(o.Targets)),
		Transfers:   o.Transfers,
	}
	for _, s := range o.Suggestions {
		resp.Suggestions = append(resp.Suggestions, SuggestionResponse(s))
	}
	for _, t := range o.Targets {
		resp.Targets = append(resp.Targets, TransferTargetResponse(t))
	}
	return resp
}

func NewDepartmentStatsResponse(s domain.DepartmentStats) DepartmentStatsResponse {
	resp := DepartmentStatsResponse{
		Departments:             make([]DepartmentStatResponse, 0, len(s.Departments)),
		TotalDepartments:        s.Summary.TotalDepartments,
		TotalEmployees:          s.Summary.TotalEmployees,
		TotalMonthlyCost:        money(s.Summary.TotalMonthlyCost),
		MostExpensiveDepartment: s.Summary.MostExpensiveDepartment,
	}
	for _, d := range s.Departments {
		stat := DepartmentStatResponse{
			Name:                d.Name,
			TotalEmployees:      d.TotalEmployees,
			TotalSalary:         money(d.TotalSalary),
			AverageSalary:       money(d.AverageSalary),
			CountByKind:         d.CountByKind,
			ProjectsInvolvement: d.ProjectsInvolvement,
		}
		if d.Distribution != nil {
			stat.Distribution = &SalaryDistributionResponse{
				Min:    money(d.Distribution.Min),
				Max:    money(d.Distribution.Max),
				Median: money(d.Distribution.Median),
			}
		}
		resp.Departments = append(resp.Departments, stat)
	}
	return resp
}

func NewBudgetAnalysisResponse(a domain.BudgetAnalysis) BudgetAnalysisResponse {
	resp := BudgetAnalysisResponse{Projects: make([]ProjectBudgetResponse, 0, len(a.Projects))}
	for _, p := range a.Projects {
		resp.Projects = append(resp.Projects, ProjectBudgetResponse{
			ProjectID:         p.ProjectID,
			Name:              p.Name,
			Status:            string(p.Status),
			TeamSize:          p.TeamSize,
			TotalSalaryCost:   money(p.TotalSalaryCost),
			Deadline:          p.Deadline,
			DaysUntilDeadline: p.DaysUntilDeadline,
			TeamComposition:   p.TeamComposition,
			CostPerMember:     money(p.CostPerMember),
			EfficiencyScore:   p.EfficiencyScore,
		})
	}
	if a.Active != nil {
		resp.Active = &ProjectComparisonResponse{
			AvgTeamSize:   a.Active.AvgTeamSize,
			AvgCost:       money(a.Active.AvgCost),
			MostEfficient: a.Active.MostEfficient,
			MostExpensive: a.Active.MostExpensive,
		}
	}
	return resp
}
