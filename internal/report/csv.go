// Package report строит выгрузки и текстовые отчёты по состоянию компании.
// Функции только читают компанию; блокировку обеспечивает вызывающий.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/staffing-api/internal/domain"
)

var employeeHeader = []string{
	"id", "name", "department", "type", "base_salary", "details", "salary", "projects",
}

var projectHeader = []string{
	"project_id", "name", "description", "deadline", "status",
	"team_size", "salary_budget", "team", "days_until_deadline",
}

// EmployeesCSV выгружает сотрудников с их проектами.
func EmployeesCSV(w io.Writer, c *domain.Company) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(employeeHeader); err != nil {
		return err
	}
	for _, e := range c.AllEmployees() {
		projects := "none"
		if names := c.EmployeeProjects(e.ID()); len(names) > 0 {
			projects = strings.Join(names, ", ")
		}
		row := []string{
			strconv.FormatInt(e.ID(), 10),
			e.Name(),
			e.Department(),
			string(e.Kind()),
			e.BaseSalary().StringFixed(2),
			details(e),
			e.CalculateSalary().StringFixed(2),
			projects,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func details(e domain.Employee) string {
	switch v := e.(type) {
	case *domain.Manager:
		return "bonus: " + v.Bonus().String()
	case *domain.Developer:
		return fmt.Sprintf("level: %s, stack: %s", v.Seniority(), strings.Join(v.Skills(), ", "))
	case *domain.Salesperson:
		return fmt.Sprintf("commission: %s, sales: %s", v.CommissionRate(), v.SalesVolume())
	default:
		return ""
	}
}

// ProjectsCSV выгружает проекты с бюджетом и составом команды.
func ProjectsCSV(w io.Writer, c *domain.Company) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(projectHeader); err != nil {
		return err
	}
	budgets := c.ProjectBudgetAnalysis().Projects
	for i, p := range c.Projects() {
		team := make([]string, 0, p.TeamSize())
		for _, e := range p.Team() {
			team = append(team, e.Name())
		}
		row := []string{
			p.ID(),
			p.Name(),
			p.Description(),
			p.Deadline(),
			string(p.Status()),
			strconv.Itoa(p.TeamSize()),
			p.TotalSalary().StringFixed(2),
			strings.Join(team, ", "),
			strconv.Itoa(budgets[i].DaysUntilDeadline),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
