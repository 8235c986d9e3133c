package repository

import (
	"github.com/shopspring/decimal"
	"github.com/staffing-api/internal/domain"
	"gorm.io/gorm"
)

// employeeRow - строка таблицы employees. Вариантные поля nullable.
type employeeRow struct {
	ID               int64 `gorm:"primaryKey;autoIncrement:false"`
	DepartmentName   string
	Position         int
	Kind             string
	Name             string
	Department       string
	BaseSalary       decimal.Decimal
	CalculatedSalary decimal.Decimal
	Bonus            decimal.NullDecimal
	TechStack        []string `gorm:"serializer:json"`
	SeniorityLevel   string
	CommissionRate   decimal.NullDecimal
	SalesVolume      decimal.NullDecimal
}

func (employeeRow) TableName() string { return "employees" }

// employeeRepository работает с сотрудниками внутри транзакции снапшота
type employeeRepository struct {
	db *gorm.DB
}

func newEmployeeRepository(db *gorm.DB) *employeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&employeeRow{}).Error
}

// CreateForDepartment сохраняет сотрудников отдела с сохранением порядка.
func (r *employeeRepository) CreateForDepartment(department string, records []domain.EmployeeRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]employeeRow, len(records))
	for i, rec := range records {
		rows[i] = toEmployeeRow(department, i, rec)
	}
	return r.db.Create(&rows).Error
}

// GroupByDepartment возвращает записи сотрудников, сгруппированные по отделам.
func (r *employeeRepository) GroupByDepartment() (map[string][]domain.EmployeeRecord, error) {
	var rows []employeeRow
	if err := r.db.Order("department_name ASC, position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string][]domain.EmployeeRecord)
	for _, row := range rows {
		out[row.DepartmentName] = append(out[row.DepartmentName], row.record())
	}
	return out, nil
}

func toEmployeeRow(department string, position int, rec domain.EmployeeRecord) employeeRow {
	return employeeRow{
		ID:               rec.ID,
		DepartmentName:   department,
		Position:         position,
		Kind:             string(rec.Type),
		Name:             rec.Name,
		Department:       rec.Department,
		BaseSalary:       decimal.NewFromFloat(rec.BaseSalary),
		CalculatedSalary: decimal.NewFromFloat(rec.CalculatedSalary),
		Bonus:            nullDecimal(rec.Bonus),
		TechStack:        rec.TechStack,
		SeniorityLevel:   string(rec.SeniorityLevel),
		CommissionRate:   nullDecimal(rec.CommissionRate),
		SalesVolume:      nullDecimal(rec.SalesVolume),
	}
}

func (row employeeRow) record() domain.EmployeeRecord {
	return domain.EmployeeRecord{
		ID:               row.ID,
		Name:             row.Name,
		Department:       row.Department,
		BaseSalary:       row.BaseSalary.InexactFloat64(),
		CalculatedSalary: row.CalculatedSalary.InexactFloat64(),
		Type:             domain.Kind(row.Kind),
		Bonus:            floatPtr(row.Bonus),
		TechStack:        row.TechStack,
		SeniorityLevel:   domain.Seniority(row.SeniorityLevel),
		CommissionRate:   floatPtr(row.CommissionRate),
		SalesVolume:      floatPtr(row.SalesVolume),
	}
}

func nullDecimal(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(*v), Valid: true}
}

func floatPtr(v decimal.NullDecimal) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Decimal.InexactFloat64()
	return &f
}
