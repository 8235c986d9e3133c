package repository

import (
	"github.com/staffing-api/internal/snapshot"
	"gorm.io/gorm"
)

// departmentRow - строка таблицы departments
type departmentRow struct {
	Name     string `gorm:"primaryKey"`
	Position int
}

func (departmentRow) TableName() string { return "departments" }

// departmentRepository работает с отделами внутри транзакции снапшота
type departmentRepository struct {
	db *gorm.DB
}

func newDepartmentRepository(db *gorm.DB) *departmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&departmentRow{}).Error
}

func (r *departmentRepository) CreateAll(records []snapshot.DepartmentRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]departmentRow, len(records))
	for i, rec := range records {
		rows[i] = departmentRow{Name: rec.Name, Position: i}
	}
	return r.db.Create(&rows).Error
}

// List возвращает отделы в исходном порядке.
func (r *departmentRepository) List() ([]departmentRow, error) {
	var rows []departmentRow
	err := r.db.Order("position ASC").Find(&rows).Error
	return rows, err
}
