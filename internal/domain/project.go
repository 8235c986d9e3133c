package domain

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Status - статус проекта
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses перечисляет допустимые статусы.
func Statuses() []Status {
	return []Status{StatusPlanning, StatusActive, StatusCompleted, StatusCancelled}
}

func statusNames() []string {
	names := make([]string, 0, 4)
	for _, s := range Statuses() {
		names = append(names, string(s))
	}
	return names
}

// ParseStatus проверяет, что значение - один из четырёх статусов.
func ParseStatus(value string) (Status, error) {
	if err := ValidateStatus(value, statusNames()); err != nil {
		return "", err
	}
	return Status(value), nil
}

// Terminal сообщает, что из статуса больше нет переходов.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Project - единица работы с командой. Команда хранит ссылки на
// сотрудников, которыми владеют отделы.
type Project struct {
	id          string
	name        string
	description string
	deadline    string
	status      Status
	team        []Employee
}

// NewProject создаёт проект с пустой командой.
func NewProject(id, name, description, deadline string, status Status) (*Project, error) {
	if err := ValidateProjectID(id, nil); err != nil {
		return nil, err
	}
	if err := ValidateDate(deadline); err != nil {
		return nil, err
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	return &Project{
		id:          id,
		name:        name,
		description: description,
		deadline:    deadline,
		status:      status,
		team:        []Employee{},
	}, nil
}

func (p *Project) ID() string          { return p.id }
func (p *Project) Name() string        { return p.name }
func (p *Project) Description() string { return p.description }
func (p *Project) Deadline() string    { return p.deadline }
func (p *Project) Status() Status      { return p.status }

// ChangeStatus переводит проект в новый статус. Переходы между
// нетерминальными статусами не ограничены, включая переход в тот же статус.
func (p *Project) ChangeStatus(next Status) error {
	if _, err := ParseStatus(string(next)); err != nil {
		return err
	}
	if p.status.Terminal() {
		return fmt.Errorf("%w: cannot change project %s from %q to %q", ErrTerminalStatus, p.id, p.status, next)
	}
	p.status = next
	return nil
}

// AddTeamMember добавляет сотрудника в команду.
func (p *Project) AddTeamMember(e Employee) error {
	if e == nil {
		return fmt.Errorf("%w: employee is nil", ErrValidation)
	}
	if p.IsMember(e.ID()) {
		return fmt.Errorf("%w: employee %s on project %q", ErrAlreadyMember, e.Name(), p.name)
	}
	p.team = append(p.team, e)
	return nil
}

// RemoveTeamMember убирает сотрудника из команды; false, если его там не было.
func (p *Project) RemoveTeamMember(id int64) bool {
	i := slices.IndexFunc(p.team, func(e Employee) bool { return e.ID() == id })
	if i < 0 {
		return false
	}
	p.team = slices.Delete(p.team, i, i+1)
	return true
}

func (p *Project) IsMember(id int64) bool {
	return slices.ContainsFunc(p.team, func(e Employee) bool { return e.ID() == id })
}

// Team возвращает копию команды.
func (p *Project) Team() []Employee {
	return slices.Clone(p.team)
}

// TeamIDs возвращает id участников в порядке добавления.
func (p *Project) TeamIDs() []int64 {
	ids := make([]int64, 0, len(p.team))
	for _, e := range p.team {
		ids = append(ids, e.ID())
	}
	return ids
}

func (p *Project) TeamSize() int { return len(p.team) }

func (p *Project) HasTeamMembers() bool { return len(p.team) > 0 }

// TotalSalary - суммарная зарплата команды.
func (p *Project) TotalSalary() decimal.Decimal {
	return TotalSalary(p.team...)
}

func (p *Project) String() string {
	return fmt.Sprintf("project %s %q, status %s, deadline %s, team size %d",
		p.id, p.name, p.status, p.deadline, len(p.team))
}
