package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/staffing-api/internal/domain"
	"github.com/staffing-api/internal/repository"
	"github.com/staffing-api/internal/snapshot"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "staffing.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := repository.RunMigrations(context.Background(), sqlDB, "sqlite3"); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func sampleCompany(t *testing.T) *domain.Company {
	t.Helper()
	c, _ := domain.NewCompany("Acme")
	c.AddDepartment("DEV")
	c.AddDepartment("SALES")
	c.AddDepartment("EMPTY")

	reg := c.Registry()
	dev, _ := domain.NewDeveloper(reg, 10, "Dev", "DEV", decimal.NewFromInt(4000), []string{"Go", "C, C++"}, domain.SeniorityMiddle)
	mgr, _ := domain.NewManager(reg, 11, "Mgr", "DEV", decimal.NewFromInt(5000), decimal.NewFromInt(700))
	seller, _ := domain.NewSalesperson(reg, 12, "Seller", "SALES", decimal.NewFromInt(2000), decimal.RequireFromString("0.15"), decimal.NewFromInt(10000))
	for _, pair := range []struct {
		dept string
		e    domain.Employee
	}{{"DEV", dev}, {"DEV", mgr}, {"SALES", seller}} {
		if err := c.HireEmployee(pair.dept, pair.e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	c.CreateProject("B", "Beta", "second", "2031-01-01", domain.StatusActive)
	c.CreateProject("A", "Alpha", "", "2030-01-01", domain.StatusPlanning)
	c.BulkAssign([]int64{12, 10}, "B")
	return c
}

func TestSnapshotRepository_LoadEmpty(t *testing.T) {
	repo := repository.NewSnapshotRepository(setupDB(t))

	_, err := repo.Load(context.Background())
	if !errors.Is(err, snapshot.ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestSnapshotRepository_SaveLoad(t *testing.T) {
	repo := repository.NewSnapshotRepository(setupDB(t))
	ctx := context.Background()

	orig := sampleCompany(t)
	if err := repo.Save(ctx, snapshot.Capture(orig, time.Now())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.CompanyName != "Acme" || doc.Metadata.Version != snapshot.FormatVersion {
		t.Errorf("unexpected header: %s %s", doc.CompanyName, doc.Metadata.Version)
	}
	names := []string{}
	for _, d := range doc.Departments {
		names = append(names, d.Name)
	}
	if !slices.Equal(names, []string{"DEV", "SALES", "EMPTY"}) {
		t.Errorf("expected department order preserved, got %v", names)
	}
	if doc.Projects[0].ProjectID != "B" || !slices.Equal(doc.Projects[0].TeamMemberIDs, []int64{12, 10}) {
		t.Errorf("unexpected first project: %+v", doc.Projects[0])
	}
	if len(doc.Projects[1].TeamMemberIDs) != 0 {
		t.Errorf("expected empty team, got %v", doc.Projects[1].TeamMemberIDs)
	}

	restored, warnings, err := snapshot.Restore(doc)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("unexpected restore result: %v %v", err, warnings)
	}
	if !restored.TotalMonthlyCost().Equal(orig.TotalMonthlyCost()) {
		t.Errorf("expected %s, got %s", orig.TotalMonthlyCost(), restored.TotalMonthlyCost())
	}
	dev, _ := restored.FindEmployee(10)
	if skills := dev.(*domain.Developer).Skills(); !slices.Equal(skills, []string{"Go", "C, C++"}) {
		t.Errorf("unexpected skills: %v", skills)
	}
	seller, _ := restored.FindEmployee(12)
	if !seller.(*domain.Salesperson).CommissionRate().Equal(decimal.RequireFromString("0.15")) {
		t.Errorf("unexpected commission rate: %s", seller.(*domain.Salesperson).CommissionRate())
	}
}

func TestSnapshotRepository_KeepsFractionalDigits(t *testing.T) {
	repo := repository.NewSnapshotRepository(setupDB(t))
	ctx := context.Background()

	c, _ := domain.NewCompany("Acme")
	c.AddDepartment("SALES")
	seller, err := domain.NewSalesperson(c.Registry(), 1, "Seller", "SALES",
		decimal.RequireFromString("1234.5678"),
		decimal.RequireFromString("0.123456"),
		decimal.RequireFromString("10000.125"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.HireEmployee("SALES", seller); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Save(ctx, snapshot.Capture(c, time.Now())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restored, _, err := snapshot.Restore(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, err := restored.FindEmployee(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := e.(*domain.Salesperson)
	if !got.BaseSalary().Equal(decimal.RequireFromString("1234.5678")) {
		t.Errorf("unexpected base salary: %s", got.BaseSalary())
	}
	if !got.CommissionRate().Equal(decimal.RequireFromString("0.123456")) {
		t.Errorf("unexpected commission rate: %s", got.CommissionRate())
	}
	if !got.SalesVolume().Equal(decimal.RequireFromString("10000.125")) {
		t.Errorf("unexpected sales volume: %s", got.SalesVolume())
	}
}

func TestSnapshotRepository_SaveReplacesPrevious(t *testing.T) {
	repo := repository.NewSnapshotRepository(setupDB(t))
	ctx := context.Background()

	if err := repo.Save(ctx, snapshot.Capture(sampleCompany(t), time.Now())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	small, _ := domain.NewCompany("Small")
	if err := repo.Save(ctx, snapshot.Capture(small, time.Now())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.CompanyName != "Small" || len(doc.Departments) != 0 || len(doc.Projects) != 0 {
		t.Errorf("expected previous snapshot to be replaced, got %+v", doc)
	}
}

func TestSnapshotRepository_OpenCompany(t *testing.T) {
	repo := repository.NewSnapshotRepository(setupDB(t))
	ctx := context.Background()
	if err := repo.Save(ctx, snapshot.Capture(sampleCompany(t), time.Now())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := snapshot.Open(ctx, repo, quietLogger(), "")
	p, err := c.Project("B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TeamSize() != 2 || c.EmployeeProjectCount(12) != 1 {
		t.Errorf("unexpected team after open: %v", p.TeamIDs())
	}
}
