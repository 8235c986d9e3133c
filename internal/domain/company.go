package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultMaxConcurrentProjects - сколько проектов сотрудник может вести одновременно
	DefaultMaxConcurrentProjects = 3
	// DefaultOverloadThreshold - больше этого числа проектов считается перегрузкой
	DefaultOverloadThreshold = 2
)

// Company объединяет отделы и проекты и владеет реестром id сотрудников.
type Company struct {
	name              string
	registry          *Registry
	departments       []*Department
	projects          []*Project
	maxConcurrent     int
	overloadThreshold int
	now               func() time.Time
}

// Option настраивает Company.
type Option func(*Company)

func WithMaxConcurrentProjects(n int) Option {
	return func(c *Company) {
		if n > 0 {
			c.maxConcurrent = n
		}
	}
}

func WithOverloadThreshold(n int) Option {
	return func(c *Company) {
		if n >= 0 {
			c.overloadThreshold = n
		}
	}
}

func WithSalaryCeiling(ceiling decimal.Decimal) Option {
	return func(c *Company) {
		c.registry.SetSalaryCeiling(ceiling)
	}
}

// WithClock подменяет часы, по которым считаются дни до дедлайна.
func WithClock(now func() time.Time) Option {
	return func(c *Company) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCompany создаёт пустую компанию.
func NewCompany(name string, opts ...Option) (*Company, error) {
	if err := ValidateName("company name", name); err != nil {
		return nil, err
	}
	c := &Company{
		name:              name,
		registry:          NewRegistry(),
		departments:       []*Department{},
		projects:          []*Project{},
		maxConcurrent:     DefaultMaxConcurrentProjects,
		overloadThreshold: DefaultOverloadThreshold,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Company) Name() string { return c.name }

// Registry возвращает реестр id, через который создаются сотрудники компании.
func (c *Company) Registry() *Registry { return c.registry }

func (c *Company) MaxConcurrentProjects() int { return c.maxConcurrent }

func (c *Company) OverloadThreshold() int { return c.overloadThreshold }

// AddDepartment создаёт отдел с уникальным именем.
func (c *Company) AddDepartment(name string) (*Department, error) {
	d, err := NewDepartment(name)
	if err != nil {
		return nil, err
	}
	if err := c.AttachDepartment(d); err != nil {
		return nil, err
	}
	return d, nil
}

// AttachDepartment добавляет готовый отдел. Id его сотрудников
// заносятся в реестр компании.
func (c *Company) AttachDepartment(d *Department) error {
	if d == nil {
		return fmt.Errorf("%w: department is nil", ErrValidation)
	}
	if _, err := c.Department(d.Name()); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicateDepartmentName, d.Name())
	}
	for e := range d.All() {
		if _, err := c.FindEmployee(e.ID()); err == nil {
			return fmt.Errorf("%w: employee with id %d already works in the company", ErrDuplicateID, e.ID())
		}
	}
	for e := range d.All() {
		c.registry.Track(e.ID())
	}
	c.departments = append(c.departments, d)
	return nil
}

// Department ищет отдел по имени.
func (c *Company) Department(name string) (*Department, error) {
	for _, d := range c.departments {
		if d.Name() == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in company %s", ErrDepartmentNotFound, name, c.name)
}

// Departments возвращает копию списка отделов.
func (c *Company) Departments() []*Department {
	return slices.Clone(c.departments)
}

// RemoveDepartment удаляет пустой отдел.
func (c *Company) RemoveDepartment(name string) error {
	i := slices.IndexFunc(c.departments, func(d *Department) bool { return d.Name() == name })
	if i < 0 {
		return fmt.Errorf("%w: %q in company %s", ErrDepartmentNotFound, name, c.name)
	}
	if c.departments[i].HasEmployees() {
		return fmt.Errorf("%w: %q has %d employees", ErrDepartmentNotEmpty, name, c.departments[i].Len())
	}
	c.departments = slices.Delete(c.departments, i, i+1)
	return nil
}

// HireEmployee помещает сотрудника в отдел. Сотрудник с таким id не должен
// работать ни в одном отделе компании.
func (c *Company) HireEmployee(departmentName string, e Employee) error {
	d, err := c.Department(departmentName)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: employee is nil", ErrValidation)
	}
	if _, err := c.FindEmployee(e.ID()); err == nil {
		return fmt.Errorf("%w: employee with id %d already works in the company", ErrDuplicateID, e.ID())
	}
	if err := d.AddEmployee(e); err != nil {
		return err
	}
	c.registry.Track(e.ID())
	return nil
}

// RemoveEmployee увольняет сотрудника, который не участвует ни в одном проекте.
// Id остаётся занятым в реестре.
func (c *Company) RemoveEmployee(id int64) error {
	if names := c.EmployeeProjects(id); len(names) > 0 {
		return fmt.Errorf("%w: employee %d is on projects %v", ErrEmployeeAssigned, id, names)
	}
	for _, d := range c.departments {
		if d.RemoveEmployee(id) {
			return nil
		}
	}
	return fmt.Errorf("%w: id %d in company %s", ErrEmployeeNotFound, id, c.name)
}

// AllEmployees возвращает сотрудников всех отделов в порядке отделов.
func (c *Company) AllEmployees() []Employee {
	var all []Employee
	for _, d := range c.departments {
		all = append(all, d.employees...)
	}
	return all
}

// FindEmployee ищет сотрудника во всех отделах.
func (c *Company) FindEmployee(id int64) (Employee, error) {
	for _, d := range c.departments {
		if e, err := d.FindByID(id); err == nil {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d in company %s", ErrEmployeeNotFound, id, c.name)
}

// EmployeeDepartment возвращает отдел, которому принадлежит сотрудник.
func (c *Company) EmployeeDepartment(id int64) (*Department, error) {
	for _, d := range c.departments {
		if d.Contains(id) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d in company %s", ErrEmployeeNotFound, id, c.name)
}

// TotalMonthlyCost - сумма зарплат всех отделов.
func (c *Company) TotalMonthlyCost() decimal.Decimal {
	total := decimal.Zero
	for _, d := range c.departments {
		total = total.Add(d.TotalSalary())
	}
	return total
}

// AddProject добавляет проект с уникальным id.
func (c *Company) AddProject(p *Project) error {
	if p == nil {
		return fmt.Errorf("%w: project is nil", ErrValidation)
	}
	existing := make(map[string]struct{}, len(c.projects))
	for _, proj := range c.projects {
		existing[proj.ID()] = struct{}{}
	}
	if err := ValidateProjectID(p.ID(), existing); err != nil {
		return err
	}
	c.projects = append(c.projects, p)
	return nil
}

// CreateProject создаёт проект и сразу добавляет его в компанию.
func (c *Company) CreateProject(id, name, description, deadline string, status Status) (*Project, error) {
	p, err := NewProject(id, name, description, deadline, status)
	if err != nil {
		return nil, err
	}
	if err := c.AddProject(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Project ищет проект по id.
func (c *Company) Project(id string) (*Project, error) {
	for _, p := range c.projects {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in company %s", ErrProjectNotFound, id, c.name)
}

// Projects возвращает копию списка проектов.
func (c *Company) Projects() []*Project {
	return slices.Clone(c.projects)
}

// RemoveProject удаляет проект без участников.
func (c *Company) RemoveProject(id string) error {
	i := slices.IndexFunc(c.projects, func(p *Project) bool { return p.ID() == id })
	if i < 0 {
		return fmt.Errorf("%w: %q in company %s", ErrProjectNotFound, id, c.name)
	}
	if c.projects[i].HasTeamMembers() {
		return fmt.Errorf("%w: %q has %d members", ErrProjectHasTeam, c.projects[i].Name(), c.projects[i].TeamSize())
	}
	c.projects = slices.Delete(c.projects, i, i+1)
	return nil
}

// ProjectsByStatus отбирает проекты с указанным статусом.
func (c *Company) ProjectsByStatus(status Status) ([]*Project, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	out := []*Project{}
	for _, p := range c.projects {
		if p.Status() == status {
			out = append(out, p)
		}
	}
	return out, nil
}
