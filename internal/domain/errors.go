package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Определение бизнес-ошибок
var (
	ErrValidation          = errors.New("validation error")
	ErrDuplicateID         = errors.New("duplicate id")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrInvalidStatus       = fmt.Errorf("%w: invalid project status", ErrValidation)
	ErrInvalidDate         = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidSalary       = fmt.Errorf("%w: invalid salary", ErrValidation)
	ErrUnknownEmployeeKind = errors.New("unknown employee type")
)

// Ошибки, которые являются частными случаями ErrValidation
var (
	ErrTerminalStatus     = fmt.Errorf("%w: project status is terminal", ErrValidation)
	ErrCapacityExceeded   = fmt.Errorf("%w: employee is at project capacity", ErrValidation)
	ErrAlreadyMember      = fmt.Errorf("%w: employee is already on the project team", ErrValidation)
	ErrDepartmentNotEmpty = fmt.Errorf("%w: department still has employees", ErrValidation)
	ErrProjectHasTeam     = fmt.Errorf("%w: project still has team members", ErrValidation)
	ErrEmployeeAssigned   = fmt.Errorf("%w: employee is assigned to projects", ErrValidation)
	ErrNegativeSales      = fmt.Errorf("%w: sales delta must not be negative", ErrValidation)
)

// Дубликаты конкретных сущностей
var (
	ErrDuplicateDepartmentName = fmt.Errorf("%w: department with this name already exists", ErrDuplicateID)
	ErrDuplicateProjectID      = fmt.Errorf("%w: project with this id already exists", ErrDuplicateID)
)

// CapacityError возвращается Assign, когда сотрудник уже занят в максимальном числе проектов.
type CapacityError struct {
	EmployeeID   int64
	EmployeeName string
	Limit        int
	Projects     []string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("employee %s (id %d) is overloaded, limit %d, current projects: %s",
		e.EmployeeName, e.EmployeeID, e.Limit, strings.Join(e.Projects, ", "))
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}
