package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// EmployeeRecord - плоское представление сотрудника для снапшота.
// Type определяет, какие из вариантных полей обязательны.
type EmployeeRecord struct {
	ID               int64     `json:"id" validate:"gt=0"`
	Name             string    `json:"name" validate:"required"`
	Department       string    `json:"department"`
	BaseSalary       float64   `json:"base_salary" validate:"gte=0"`
	CalculatedSalary float64   `json:"calculated_salary"`
	Type             Kind      `json:"type" validate:"required"`
	Bonus            *float64  `json:"bonus,omitempty"`
	TechStack        []string  `json:"tech_stack,omitempty"`
	SeniorityLevel   Seniority `json:"seniority_level,omitempty" validate:"omitempty,oneof=junior middle senior"`
	CommissionRate   *float64  `json:"commission_rate,omitempty"`
	SalesVolume      *float64  `json:"sales_volume,omitempty"`
}

// MarshalJSON всегда пишет tech_stack у разработчика, даже пустой.
func (r EmployeeRecord) MarshalJSON() ([]byte, error) {
	type plain EmployeeRecord
	if r.Type != KindDeveloper {
		return json.Marshal(plain(r))
	}
	techStack := r.TechStack
	if techStack == nil {
		techStack = []string{}
	}
	return json.Marshal(struct {
		plain
		TechStack []string `json:"tech_stack"`
	}{plain(r), techStack})
}

// Validate проверяет наличие полей, которых требует вариант записи.
func (r *EmployeeRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: employee record %d: %v", ErrValidation, r.ID, err)
	}
	switch r.Type {
	case KindManager:
		if r.Bonus == nil {
			return missingField(r, "bonus")
		}
	case KindDeveloper:
		if r.SeniorityLevel == "" {
			return missingField(r, "seniority_level")
		}
	case KindSalesperson:
		if r.CommissionRate == nil {
			return missingField(r, "commission_rate")
		}
		if r.SalesVolume == nil {
			return missingField(r, "sales_volume")
		}
	}
	return nil
}

func missingField(r *EmployeeRecord, field string) error {
	return fmt.Errorf("%w: %s record %d has no %s", ErrValidation, r.Type, r.ID, field)
}

// EmployeeFromRecord восстанавливает сотрудника из записи снапшота.
// Данные уже прошли проверки при создании, поэтому реестр и потолок
// зарплаты здесь не участвуют; проверяется только форма записи.
func EmployeeFromRecord(rec EmployeeRecord) (Employee, error) {
	kind, err := ParseKind(string(rec.Type))
	if err != nil {
		return nil, err
	}
	rec.Type = kind
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	p := person{
		id:         rec.ID,
		name:       rec.Name,
		department: rec.Department,
		baseSalary: decimal.NewFromFloat(rec.BaseSalary),
	}

	switch kind {
	case KindManager:
		return &Manager{person: p, bonus: decimal.NewFromFloat(*rec.Bonus)}, nil
	case KindDeveloper:
		d := &Developer{person: p, seniority: rec.SeniorityLevel}
		for _, s := range rec.TechStack {
			d.AddSkill(s)
		}
		return d, nil
	case KindSalesperson:
		return &Salesperson{
			person:         p,
			commissionRate: decimal.NewFromFloat(*rec.CommissionRate),
			salesVolume:    decimal.NewFromFloat(*rec.SalesVolume),
		}, nil
	default:
		return &Staff{person: p}, nil
	}
}
