package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DateLayout - формат дат дедлайнов проектов
const DateLayout = "2006-01-02"

// DefaultSalaryCeiling - максимально допустимая базовая зарплата
var DefaultSalaryCeiling = decimal.NewFromInt(1_000_000)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateID проверяет, что id положительный и ещё не занят.
// Вставка id в existing остаётся на вызывающей стороне.
func ValidateID(id int64, existing map[int64]struct{}) error {
	if err := validate.Var(id, "gt=0"); err != nil {
		return fmt.Errorf("%w: id must be a positive integer, got %d", ErrValidation, id)
	}
	if _, ok := existing[id]; ok {
		return fmt.Errorf("%w: employee with id %d already exists", ErrDuplicateID, id)
	}
	return nil
}

// ValidateProjectID проверяет, что id проекта непустой и уникальный.
func ValidateProjectID(id string, existing map[string]struct{}) error {
	if err := validate.Var(strings.TrimSpace(id), "required"); err != nil {
		return fmt.Errorf("%w: project id must be a non-empty string", ErrValidation)
	}
	if _, ok := existing[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateProjectID, id)
	}
	return nil
}

// ValidateSalary проверяет, что зарплата неотрицательна и не превышает потолок.
func ValidateSalary(value, ceiling decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidSalary, value)
	}
	if value.GreaterThan(ceiling) {
		return fmt.Errorf("%w: %s exceeds the maximum of %s", ErrInvalidSalary, value, ceiling)
	}
	return nil
}

// ValidateDate проверяет формат YYYY-MM-DD.
func ValidateDate(text string) error {
	if err := validate.Var(text, "required,datetime="+DateLayout); err != nil {
		return fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDate, text)
	}
	return nil
}

// ValidateStatus проверяет принадлежность значения списку допустимых.
func ValidateStatus(value string, allowed []string) error {
	if len(allowed) == 0 {
		return fmt.Errorf("%w: %q, nothing is allowed", ErrInvalidStatus, value)
	}
	if err := validate.Var(value, "required,oneof="+strings.Join(allowed, " ")); err != nil {
		return fmt.Errorf("%w: %q, allowed: %s", ErrInvalidStatus, value, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateName проверяет, что строковое поле непустое.
func ValidateName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s must be a non-empty string", ErrValidation, field)
	}
	return nil
}

// Registry хранит множество занятых id сотрудников одной компании
// и потолок зарплаты, который применяется при создании сотрудников.
type Registry struct {
	ids           map[int64]struct{}
	salaryCeiling decimal.Decimal
}

// NewRegistry создаёт пустой реестр с потолком зарплаты по умолчанию.
func NewRegistry() *Registry {
	return &Registry{
		ids:           make(map[int64]struct{}),
		salaryCeiling: DefaultSalaryCeiling,
	}
}

// SetSalaryCeiling задаёт потолок зарплаты.
func (r *Registry) SetSalaryCeiling(ceiling decimal.Decimal) {
	r.salaryCeiling = ceiling
}

// SalaryCeiling возвращает текущий потолок зарплаты.
func (r *Registry) SalaryCeiling() decimal.Decimal {
	return r.salaryCeiling
}

// Reserve проверяет id и занимает его.
func (r *Registry) Reserve(id int64) error {
	if err := ValidateID(id, r.ids); err != nil {
		return err
	}
	r.ids[id] = struct{}{}
	return nil
}

// Track занимает id без проверки; false, если id уже был занят.
func (r *Registry) Track(id int64) bool {
	if _, ok := r.ids[id]; ok {
		return false
	}
	r.ids[id] = struct{}{}
	return true
}

// Contains сообщает, занят ли id.
func (r *Registry) Contains(id int64) bool {
	_, ok := r.ids[id]
	return ok
}

// Len возвращает число занятых id.
func (r *Registry) Len() int {
	return len(r.ids)
}
