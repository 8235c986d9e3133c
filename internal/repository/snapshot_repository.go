package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/staffing-api/internal/domain"
	"github.com/staffing-api/internal/snapshot"
	"gorm.io/gorm"
)

// companyRow - единственная строка таблицы companies
type companyRow struct {
	ID         int `gorm:"primaryKey;autoIncrement:false"`
	Name       string
	ExportDate string
	Version    string
}

func (companyRow) TableName() string { return "companies" }

const companyRowID = 1

// SnapshotRepository хранит снапшот компании в БД (postgres или sqlite).
// Каждое сохранение полностью заменяет предыдущее.
type SnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository создаёт новый экземпляр репозитория
func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

var _ snapshot.Store = (*SnapshotRepository)(nil)

func (r *SnapshotRepository) Save(ctx context.Context, doc snapshot.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		depts := newDepartmentRepository(tx)
		emps := newEmployeeRepository(tx)
		projects := newProjectRepository(tx)

		if err := projects.DeleteAll(); err != nil {
			return fmt.Errorf("failed to clear projects: %w", err)
		}
		if err := emps.DeleteAll(); err != nil {
			return fmt.Errorf("failed to clear employees: %w", err)
		}
		if err := depts.DeleteAll(); err != nil {
			return fmt.Errorf("failed to clear departments: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&companyRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear company: %w", err)
		}

		company := companyRow{
			ID:         companyRowID,
			Name:       doc.CompanyName,
			ExportDate: doc.Metadata.ExportDate,
			Version:    doc.Metadata.Version,
		}
		if err := tx.Create(&company).Error; err != nil {
			return fmt.Errorf("failed to save company: %w", err)
		}
		if err := depts.CreateAll(doc.Departments); err != nil {
			return fmt.Errorf("failed to save departments: %w", err)
		}
		for _, d := range doc.Departments {
			if err := emps.CreateForDepartment(d.Name, d.Employees); err != nil {
				return fmt.Errorf("failed to save employees of %q: %w", d.Name, err)
			}
		}
		if err := projects.CreateAll(doc.Projects); err != nil {
			return fmt.Errorf("failed to save projects: %w", err)
		}
		return nil
	})
}

func (r *SnapshotRepository) Load(ctx context.Context) (snapshot.Document, error) {
	db := r.db.WithContext(ctx)

	var company companyRow
	if err := db.First(&company, companyRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return snapshot.Document{}, snapshot.ErrNoSnapshot
		}
		return snapshot.Document{}, err
	}

	deptRows, err := newDepartmentRepository(db).List()
	if err != nil {
		return snapshot.Document{}, fmt.Errorf("failed to load departments: %w", err)
	}
	byDept, err := newEmployeeRepository(db).GroupByDepartment()
	if err != nil {
		return snapshot.Document{}, fmt.Errorf("failed to load employees: %w", err)
	}
	projects, err := newProjectRepository(db).List()
	if err != nil {
		return snapshot.Document{}, fmt.Errorf("failed to load projects: %w", err)
	}

	doc := snapshot.Document{
		CompanyName: company.Name,
		Departments: make([]snapshot.DepartmentRecord, 0, len(deptRows)),
		Projects:    projects,
	}

	salaries := make(map[int64]decimal.Decimal)
	total := decimal.Zero
	count := 0
	for _, row := range deptRows {
		employees := byDept[row.Name]
		if employees == nil {
			employees = []domain.EmployeeRecord{}
		}
		for _, e := range employees {
			salary := decimal.NewFromFloat(e.CalculatedSalary)
			salaries[e.ID] = salary
			total = total.Add(salary)
		}
		count += len(employees)
		doc.Departments = append(doc.Departments, snapshot.DepartmentRecord{Name: row.Name, Employees: employees})
	}
	for i := range doc.Projects {
		cost := decimal.Zero
		for _, id := range doc.Projects[i].TeamMemberIDs {
			cost = cost.Add(salaries[id])
		}
		doc.Projects[i].TotalSalaryCost = cost.InexactFloat64()
	}

	doc.Metadata = snapshot.Metadata{
		TotalEmployees:   count,
		TotalProjects:    len(projects),
		TotalMonthlyCost: total.InexactFloat64(),
		ExportDate:       company.ExportDate,
		Version:          company.Version,
	}
	return doc, nil
}
