package domain

import (
	"errors"
	"fmt"
	"slices"
)

// Assign назначает сотрудника на проект с ограничением по умолчанию.
func (c *Company) Assign(employeeID int64, projectID string) error {
	return c.AssignWithLimit(employeeID, projectID, c.maxConcurrent)
}

// AssignWithLimit назначает сотрудника на проект, если он участвует
// менее чем в maxProjects проектах. Статус проектов при подсчёте не учитывается.
func (c *Company) AssignWithLimit(employeeID int64, projectID string, maxProjects int) error {
	employee, err := c.FindEmployee(employeeID)
	if err != nil {
		return err
	}
	project, err := c.Project(projectID)
	if err != nil {
		return err
	}
	if current := c.EmployeeProjects(employeeID); len(current) >= maxProjects {
		return &CapacityError{
			EmployeeID:   employeeID,
			EmployeeName: employee.Name(),
			Limit:        maxProjects,
			Projects:     current,
		}
	}
	if project.IsMember(employeeID) {
		return fmt.Errorf("%w: employee %s on project %q", ErrAlreadyMember, employee.Name(), project.Name())
	}
	return project.AddTeamMember(employee)
}

// Unassign убирает сотрудника из команды проекта; false, если его там не было.
func (c *Company) Unassign(employeeID int64, projectID string) (bool, error) {
	project, err := c.Project(projectID)
	if err != nil {
		return false, err
	}
	return project.RemoveTeamMember(employeeID), nil
}

// AssignmentFailure - неудачное назначение в пакете.
type AssignmentFailure struct {
	EmployeeID int64
	Err        error
}

// BulkAssignResult - итог пакетного назначения.
type BulkAssignResult struct {
	Successful    []int64
	Failed        []AssignmentFailure
	TotalAssigned int
}

// BulkAssign назначает каждого сотрудника независимо; ошибки одних
// не отменяют уже выполненные назначения других.
func (c *Company) BulkAssign(employeeIDs []int64, projectID string) BulkAssignResult {
	result := BulkAssignResult{Successful: []int64{}, Failed: []AssignmentFailure{}}
	for _, id := range employeeIDs {
		if err := c.Assign(id, projectID); err != nil {
			result.Failed = append(result.Failed, AssignmentFailure{EmployeeID: id, Err: err})
			continue
		}
		result.Successful = append(result.Successful, id)
		result.TotalAssigned++
	}
	return result
}

// EmployeeProjectCount - в скольких проектах участвует сотрудник.
func (c *Company) EmployeeProjectCount(employeeID int64) int {
	count := 0
	for _, p := range c.projects {
		if p.IsMember(employeeID) {
			count++
		}
	}
	return count
}

// EmployeeProjects возвращает названия проектов сотрудника в порядке проектов компании.
func (c *Company) EmployeeProjects(employeeID int64) []string {
	names := []string{}
	for _, p := range c.projects {
		if p.IsMember(employeeID) {
			names = append(names, p.Name())
		}
	}
	return names
}

// IsAvailable сообщает, можно ли назначить сотрудника ещё на один проект.
func (c *Company) IsAvailable(employeeID int64, maxProjects int) bool {
	return c.EmployeeProjectCount(employeeID) < maxProjects
}

// Overload - перегруженный сотрудник и его проекты.
type Overload struct {
	Employee     Employee
	ProjectCount int
	Projects     []string
}

// OverloadedEmployees находит сотрудников, у которых проектов больше threshold.
// Результат отсортирован по убыванию числа проектов, при равенстве
// сохраняется порядок отделов.
func (c *Company) OverloadedEmployees(threshold int) []Overload {
	counts := c.projectCounts()
	out := []Overload{}
	for _, e := range c.AllEmployees() {
		if n := counts[e.ID()]; n > threshold {
			out = append(out, Overload{
				Employee:     e,
				ProjectCount: n,
				Projects:     c.EmployeeProjects(e.ID()),
			})
		}
	}
	slices.SortStableFunc(out, func(a, b Overload) int { return b.ProjectCount - a.ProjectCount })
	return out
}

func (c *Company) projectCounts() map[int64]int {
	counts := make(map[int64]int)
	for _, p := range c.projects {
		for _, e := range p.team {
			counts[e.ID()]++
		}
	}
	return counts
}

// DepartmentLoad - загрузка одного отдела.
type DepartmentLoad struct {
	Department             string
	TotalEmployees         int
	EmployeesInProjects    int
	AvgProjectsPerEmployee float64
	OverloadedCount        int
}

// DepartmentWorkload считает загрузку по отделам в порядке их добавления.
func (c *Company) DepartmentWorkload() []DepartmentLoad {
	counts := c.projectCounts()
	out := make([]DepartmentLoad, 0, len(c.departments))
	for _, d := range c.departments {
		load := DepartmentLoad{Department: d.Name(), TotalEmployees: d.Len()}
		total := 0
		for e := range d.All() {
			n := counts[e.ID()]
			if n > 0 {
				load.EmployeesInProjects++
			}
			if n > c.overloadThreshold {
				load.OverloadedCount++
			}
			total += n
		}
		if load.TotalEmployees > 0 {
			load.AvgProjectsPerEmployee = float64(total) / float64(load.TotalEmployees)
		}
		out = append(out, load)
	}
	return out
}

// WorkloadReport - сводка по загрузке сотрудников.
type WorkloadReport struct {
	Overloaded []Overload
	// Distribution: число проектов -> число сотрудников с таким числом проектов
	Distribution map[int]int
	Departments  []DepartmentLoad
}

func (c *Company) WorkloadReport() WorkloadReport {
	counts := c.projectCounts()
	distribution := make(map[int]int)
	for _, e := range c.AllEmployees() {
		distribution[counts[e.ID()]]++
	}
	return WorkloadReport{
		Overloaded:   c.OverloadedEmployees(c.overloadThreshold),
		Distribution: distribution,
		Departments:  c.DepartmentWorkload(),
	}
}

// Suggestion - рекомендация по разгрузке одного сотрудника.
type Suggestion struct {
	EmployeeID      int64
	Employee        string
	CurrentProjects int
	Recommendation  string
	// ProjectsToShed - проекты после первых двух в порядке обнаружения
	ProjectsToShed []string
}

// TransferTarget - отдел с низкой загрузкой.
type TransferTarget struct {
	Department        string
	AvgProjects       float64
	AvailableCapacity int
}

// Optimization - результат OptimizeWorkload. Только рекомендации,
// состояние компании не меняется.
type Optimization struct {
	Balanced    bool
	Summary     string
	Suggestions []Suggestion
	Targets     []TransferTarget
	Transfers   []string
}

// keptProjects - сколько проектов оставляет сотруднику эвристика разгрузки
const keptProjects = 2

// OptimizeWorkload строит рекомендации по перераспределению нагрузки.
// Это эвристика, а не поиск оптимума.
func (c *Company) OptimizeWorkload() Optimization {
	report := c.WorkloadReport()
	opt := Optimization{Suggestions: []Suggestion{}, Targets: []TransferTarget{}, Transfers: []string{}}

	if len(report.Overloaded) == 0 {
		opt.Balanced = true
		opt.Summary = "workload is evenly distributed"
		return opt
	}

	for _, o := range report.Overloaded {
		// При пороге ниже keptProjects перегруженному может быть нечего отдавать
		shed := max(o.ProjectCount-keptProjects, 0)
		if shed == 0 {
			continue
		}
		toShed := slices.Clone(o.Projects[keptProjects:])
		opt.Suggestions = append(opt.Suggestions, Suggestion{
			EmployeeID:      o.Employee.ID(),
			Employee:        o.Employee.Name(),
			CurrentProjects: o.ProjectCount,
			Recommendation:  fmt.Sprintf("remove from %d projects", shed),
			ProjectsToShed:  toShed,
		})
	}

	for _, d := range report.Departments {
		if d.AvgProjectsPerEmployee < 1.0 {
			target := TransferTarget{
				Department:        d.Department,
				AvgProjects:       d.AvgProjectsPerEmployee,
				AvailableCapacity: d.TotalEmployees - d.EmployeesInProjects,
			}
			opt.Targets = append(opt.Targets, target)
			opt.Transfers = append(opt.Transfers, fmt.Sprintf(
				"consider moving tasks from overloaded departments to %s (%d employees available)",
				target.Department, target.AvailableCapacity))
		}
	}
	opt.Summary = fmt.Sprintf("%d overloaded employees, %d transfer targets", len(opt.Suggestions), len(opt.Targets))
	return opt
}

// IsCapacityError достаёт подробности отказа по загрузке.
func IsCapacityError(err error) (*CapacityError, bool) {
	var ce *CapacityError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
