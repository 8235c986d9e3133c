package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/staffing-api/internal/domain"
)

// FormatVersion - версия формата документа
const FormatVersion = "1.0"

var (
	ErrMalformedDocument = errors.New("malformed snapshot document")
	ErrNoSnapshot        = errors.New("snapshot not found")
)

// Document - снапшот компании. Команды проектов хранятся списками id,
// поэтому сотрудники в документе не дублируются.
type Document struct {
	CompanyName string             `json:"company_name"`
	Departments []DepartmentRecord `json:"departments"`
	Projects    []ProjectRecord    `json:"projects"`
	Metadata    Metadata           `json:"metadata"`
}

// DepartmentRecord - отдел с сотрудниками
type DepartmentRecord struct {
	Name      string                  `json:"name" validate:"required"`
	Employees []domain.EmployeeRecord `json:"employees"`
}

// ProjectRecord - проект со ссылками на сотрудников по id
type ProjectRecord struct {
	ProjectID       string  `json:"project_id" validate:"required"`
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description"`
	Deadline        string  `json:"deadline" validate:"required"`
	Status          string  `json:"status" validate:"required"`
	TeamMemberIDs   []int64 `json:"team_member_ids"`
	TeamSize        int     `json:"team_size"`
	TotalSalaryCost float64 `json:"total_salary_cost"`
}

// Metadata - сводные данные на момент выгрузки
type Metadata struct {
	TotalEmployees   int     `json:"total_employees"`
	TotalProjects    int     `json:"total_projects"`
	TotalMonthlyCost float64 `json:"total_monthly_cost"`
	ExportDate       string  `json:"export_date"`
	Version          string  `json:"version"`
}

var validate = validator.New()

var requiredKeys = []string{"company_name", "departments", "projects"}

// Parse разбирает JSON и проверяет наличие обязательных ключей верхнего уровня.
func Parse(data []byte) (Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return Document{}, fmt.Errorf("%w: missing key %q", ErrMalformedDocument, key)
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return doc, nil
}

// Marshal сериализует документ с отступами.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Capture строит документ по текущему состоянию компании.
func Capture(c *domain.Company, exportedAt time.Time) Document {
	doc := Document{
		CompanyName: c.Name(),
		Departments: make([]DepartmentRecord, 0, len(c.Departments())),
		Projects:    make([]ProjectRecord, 0, len(c.Projects())),
	}

	total := 0
	for _, d := range c.Departments() {
		rec := DepartmentRecord{Name: d.Name(), Employees: make([]domain.EmployeeRecord, 0, d.Len())}
		for e := range d.All() {
			rec.Employees = append(rec.Employees, e.Record())
		}
		total += d.Len()
		doc.Departments = append(doc.Departments, rec)
	}

	for _, p := range c.Projects() {
		doc.Projects = append(doc.Projects, ProjectRecord{
			ProjectID:       p.ID(),
			Name:            p.Name(),
			Description:     p.Description(),
			Deadline:        p.Deadline(),
			Status:          string(p.Status()),
			TeamMemberIDs:   p.TeamIDs(),
			TeamSize:        p.TeamSize(),
			TotalSalaryCost: p.TotalSalary().InexactFloat64(),
		})
	}

	doc.Metadata = Metadata{
		TotalEmployees:   total,
		TotalProjects:    len(doc.Projects),
		TotalMonthlyCost: c.TotalMonthlyCost().InexactFloat64(),
		ExportDate:       exportedAt.Format(time.RFC3339),
		Version:          FormatVersion,
	}
	return doc
}

// Restore восстанавливает компанию из документа. Сначала создаются все
// сотрудники, затем команды проектов собираются по id. Некорректные
// записи пропускаются, причины возвращаются списком предупреждений.
func Restore(doc Document, opts ...domain.Option) (*domain.Company, []string, error) {
	c, err := domain.NewCompany(doc.CompanyName, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	index := make(map[int64]domain.Employee)
	for _, dr := range doc.Departments {
		if err := validate.Struct(dr); err != nil {
			warn("skipped department without a name")
			continue
		}
		if _, err := c.AddDepartment(dr.Name); err != nil {
			warn("skipped department %q: %v", dr.Name, err)
			continue
		}
		for _, er := range dr.Employees {
			e, err := domain.EmployeeFromRecord(er)
			if err != nil {
				warn("skipped employee %q: %v", er.Name, err)
				continue
			}
			if err := c.HireEmployee(dr.Name, e); err != nil {
				warn("skipped employee %q: %v", er.Name, err)
				continue
			}
			index[e.ID()] = e
		}
	}

	for _, pr := range doc.Projects {
		if err := validate.Struct(pr); err != nil {
			warn("skipped project %q with missing fields", pr.ProjectID)
			continue
		}
		p, err := domain.NewProject(pr.ProjectID, pr.Name, pr.Description, pr.Deadline, domain.Status(pr.Status))
		if err != nil {
			warn("skipped project %q: %v", pr.Name, err)
			continue
		}
		for _, id := range pr.TeamMemberIDs {
			e, ok := index[id]
			if !ok {
				warn("employee %d not found for project %q", id, pr.Name)
				continue
			}
			if err := p.AddTeamMember(e); err != nil {
				warn("project %q: %v", pr.Name, err)
			}
		}
		if err := c.AddProject(p); err != nil {
			warn("skipped project %q: %v", pr.Name, err)
		}
	}

	return c, warnings, nil
}
