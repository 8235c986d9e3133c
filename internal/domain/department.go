package domain

import (
	"fmt"
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// Department представляет отдел. Отдел владеет своими сотрудниками
// и хранит их в порядке добавления.
type Department struct {
	name      string
	employees []Employee
}

// NewDepartment создаёт пустой отдел.
func NewDepartment(name string) (*Department, error) {
	if err := ValidateName("department name", name); err != nil {
		return nil, err
	}
	return &Department{name: name, employees: []Employee{}}, nil
}

func (d *Department) Name() string { return d.name }

// AddEmployee добавляет сотрудника в конец списка.
func (d *Department) AddEmployee(e Employee) error {
	if e == nil {
		return fmt.Errorf("%w: employee is nil", ErrValidation)
	}
	if d.Contains(e.ID()) {
		return fmt.Errorf("%w: employee with id %d already exists in department %s", ErrDuplicateID, e.ID(), d.name)
	}
	d.employees = append(d.employees, e)
	return nil
}

// RemoveEmployee удаляет сотрудника по id; false, если его не было.
func (d *Department) RemoveEmployee(id int64) bool {
	i := d.indexOf(id)
	if i < 0 {
		return false
	}
	d.employees = slices.Delete(d.employees, i, i+1)
	return true
}

// FindByID ищет сотрудника в отделе.
func (d *Department) FindByID(id int64) (Employee, error) {
	i := d.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: id %d in department %s", ErrEmployeeNotFound, id, d.name)
	}
	return d.employees[i], nil
}

func (d *Department) Contains(id int64) bool {
	return d.indexOf(id) >= 0
}

func (d *Department) indexOf(id int64) int {
	return slices.IndexFunc(d.employees, func(e Employee) bool { return e.ID() == id })
}

// Employees возвращает копию списка сотрудников.
func (d *Department) Employees() []Employee {
	return slices.Clone(d.employees)
}

// All перебирает сотрудников в порядке добавления.
func (d *Department) All() iter.Seq[Employee] {
	return slices.Values(d.employees)
}

func (d *Department) Len() int { return len(d.employees) }

func (d *Department) HasEmployees() bool { return len(d.employees) > 0 }

// TotalSalary - сумма итоговых зарплат отдела.
func (d *Department) TotalSalary() decimal.Decimal {
	return TotalSalary(d.employees...)
}

// EmployeeCountByKind возвращает число сотрудников каждого варианта;
// все варианты присутствуют в ответе, в том числе с нулём.
func (d *Department) EmployeeCountByKind() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds()))
	for _, k := range Kinds() {
		counts[k] = 0
	}
	for _, e := range d.employees {
		counts[e.Kind()]++
	}
	return counts
}
