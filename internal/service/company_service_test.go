package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/staffing-api/internal/domain"
	"github.com/staffing-api/internal/dto"
	"github.com/staffing-api/internal/service"
	"github.com/staffing-api/internal/snapshot"
)

type memoryStore struct {
	mu    sync.Mutex
	doc   *snapshot.Document
	saves int
	err   error
}

func (m *memoryStore) Save(_ context.Context, doc snapshot.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.doc = &doc
	m.saves++
	return nil
}

func (m *memoryStore) Load(_ context.Context) (snapshot.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return snapshot.Document{}, snapshot.ErrNoSnapshot
	}
	return *m.doc, nil
}

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (service.CompanyService, *memoryStore) {
	t.Helper()
	c, err := domain.NewCompany("Acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store := &memoryStore{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return service.NewCompanyService(c, store, logger), store
}

func seed(t *testing.T, svc service.CompanyService) {
	t.Helper()
	ctx := context.Background()
	for _, name := range []string{"DEV", "SALES"} {
		if _, err := svc.CreateDepartment(ctx, &dto.CreateDepartmentRequest{Name: name}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	hires := []struct {
		dept string
		req  dto.CreateEmployeeRequest
	}{
		{"DEV", dto.CreateEmployeeRequest{ID: 1, Name: "Dev", Type: "Developer", BaseSalary: 3000, TechStack: []string{"Go"}, SeniorityLevel: "senior"}},
		{"DEV", dto.CreateEmployeeRequest{ID: 2, Name: "Mgr", Type: "manager", BaseSalary: 5000, Bonus: ptr(1000.0)}},
		{"SALES", dto.CreateEmployeeRequest{ID: 3, Name: "Seller", Type: "Salesperson", BaseSalary: 2000, CommissionRate: ptr(0.1), SalesVolume: ptr(10000.0)}},
	}
	for _, h := range hires {
		if _, err := svc.HireEmployee(ctx, h.dept, &h.req); err != nil {
			t.Fatalf("hire %d: unexpected error: %v", h.req.ID, err)
		}
	}
	for _, id := range []string{"P1", "P2", "P3"} {
		if _, err := svc.CreateProject(ctx, &dto.CreateProjectRequest{ID: id, Name: "Project " + id, Deadline: "2030-01-01"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestHireEmployee(t *testing.T) {
	svc, _ := setup(t)
	seed(t, svc)
	ctx := context.Background()

	emp, err := svc.GetEmployee(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp.CalculatedSalary != 6000 || emp.Type != domain.KindDeveloper {
		t.Errorf("unexpected employee: %+v", emp)
	}
	if c := svc.Company(ctx); c.Employees != 3 || c.TotalMonthlyCost != 15000 {
		t.Errorf("unexpected company: %+v", c)
	}

	tests := []struct {
		name    string
		dept    string
		req     dto.CreateEmployeeRequest
		wantErr error
	}{
		{"duplicate id", "DEV", dto.CreateEmployeeRequest{ID: 1, Name: "X", Type: "Employee"}, domain.ErrDuplicateID},
		{"unknown department", "HR", dto.CreateEmployeeRequest{ID: 9, Name: "X", Type: "Employee"}, domain.ErrDepartmentNotFound},
		{"unknown type", "DEV", dto.CreateEmployeeRequest{ID: 9, Name: "X", Type: "Intern"}, domain.ErrUnknownEmployeeKind},
		{"manager without bonus", "DEV", dto.CreateEmployeeRequest{ID: 9, Name: "X", Type: "Manager"}, domain.ErrValidation},
		{"salary above ceiling", "DEV", dto.CreateEmployeeRequest{ID: 9, Name: "X", Type: "Employee", BaseSalary: 2_000_000}, domain.ErrInvalidSalary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.HireEmployee(ctx, tt.dept, &tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	// Неудачные попытки не занимают id 9
	if _, err := svc.HireEmployee(ctx, "DEV", &dto.CreateEmployeeRequest{ID: 9, Name: "Ok", Type: "Employee", BaseSalary: 100}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestListEmployees_Sorted(t *testing.T) {
	svc, _ := setup(t)
	seed(t, svc)

	list, err := svc.ListEmployees(context.Background(), "salary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list[0].ID != 3 || list[1].ID != 1 || list[2].ID != 2 {
		t.Errorf("expected ascending salary order, got %d %d %d", list[0].ID, list[1].ID, list[2].ID)
	}
	if _, err := svc.ListEmployees(context.Background(), "age"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestVariantOperations(t *testing.T) {
	svc, _ := setup(t)
	seed(t, svc)
	ctx := context.Background()

	dev, err := svc.AddSkill(ctx, 1, &dto.AddSkillRequest{Skill: "Rust"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dev.TechStack) != 2 {
		t.Errorf("expected 2 skills, got %v", dev.TechStack)
	}
	if _, err := svc.AddSkill(ctx, 2, &dto.AddSkillRequest{Skill: "Go"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for non-developer, got %v", err)
	}
	if removed, _ := svc.RemoveSkill(ctx, 1, "COBOL"); removed {
		t.Error("removing an absent skill should report false")
	}

	seller, err := svc.AddSales(ctx, 3, &dto.AddSalesRequest{Amount: 5000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seller.CalculatedSalary != 3500 {
		t.Errorf("expected 3500, got %v", seller.CalculatedSalary)
	}

	mgr, err := svc.SetBonus(ctx, 2, &dto.SetBonusRequest{Bonus: 2500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mgr.CalculatedSalary != 7500 {
		t.Errorf("expected 7500, got %v", mgr.CalculatedSalary)
	}
}

func TestAssignMembers(t *testing.T) {
	svc, _ := setup(t)
	seed(t, svc)
	ctx := context.Background()

	for _, p := range []string{"P1", "P2", "P3"} {
		if _, err := svc.AssignMembers(ctx, p, &dto.AssignRequest{EmployeeID: ptr(int64(1))}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := svc.CreateProject(ctx, &dto.CreateProjectRequest{ID: "P4", Name: "Four", Deadline: "2030-01-01"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.AssignMembers(ctx, "P4", &dto.AssignRequest{EmployeeID: ptr(int64(1))})
	ce, ok := domain.IsCapacityError(err)
	if !ok {
		t.Fatalf("expected capacity error, got %v", err)
	}
	if len(ce.Projects) != 3 {
		t.Errorf("expected 3 current projects, got %v", ce.Projects)
	}

	if _, err := svc.AssignMembers(ctx, "P4", &dto.AssignRequest{EmployeeID: ptr(int64(1)), MaxProjects: ptr(4)}); err != nil {
		t.Errorf("expected custom limit to allow assignment, got %v", err)
	}

	res, err := svc.AssignMembers(ctx, "P1", &dto.AssignRequest{EmployeeIDs: []int64{1, 2, 3, 404}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalAssigned != 2 || len(res.Failed) != 2 {
		t.Errorf("unexpected bulk result: %+v", res)
	}

	res, err = svc.AssignMembers(ctx, "NOPE", &dto.AssignRequest{EmployeeIDs: []int64{2, 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalAssigned != 0 || len(res.Failed) != 2 || len(res.Successful) != 0 {
		t.Fatalf("expected every id to fail, got %+v", res)
	}
	for _, f := range res.Failed {
		if !strings.Contains(f.Error, "project not found") {
			t.Errorf("expected project not found for %d, got %q", f.EmployeeID, f.Error)
		}
	}
	if _, err := svc.AssignMembers(ctx, "NOPE", &dto.AssignRequest{EmployeeID: ptr(int64(2))}); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound for single assignment, got %v", err)
	}

	removed, err := svc.UnassignMember(ctx, "P2", 3)
	if err != nil || removed {
		t.Errorf("expected reported no-op, got %v %v", removed, err)
	}
	if err := svc.DeleteEmployee(ctx, 2); !errors.Is(err, domain.ErrEmployeeAssigned) {
		t.Errorf("expected ErrEmployeeAssigned, got %v", err)
	}
	if removed, _ := svc.UnassignMember(ctx, "P1", 2); !removed {
		t.Error("expected employee 2 to be removed from P1")
	}
	if err := svc.DeleteEmployee(ctx, 2); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestProjects(t *testing.T) {
	svc, _ := setup(t)
	seed(t, svc)
	ctx := context.Background()

	if _, err := svc.ChangeProjectStatus(ctx, "P1", &dto.ChangeStatusRequest{Status: "completed"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ChangeProjectStatus(ctx, "P1", &dto.ChangeStatusRequest{Status: "active"}); !errors.Is(err, domain.ErrTerminalStatus) {
		t.Errorf("expected ErrTerminalStatus, got %v", err)
	}

	planning, err := svc.ListProjects(ctx, "planning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(planning) != 2 {
		t.Errorf("expected 2 planning projects, got %d", len(planning))
	}
	if _, err := svc.ListProjects(ctx, "paused"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.CreateProject(ctx, &dto.CreateProjectRequest{ID: "P1", Name: "Dup", Deadline: "2030-01-01"}); !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if err := svc.DeleteProject(ctx, "P3"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := svc.GetProject(ctx, "P3"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestAnalytics(t *testing.T) {
	svc, _ := setup(t)
	seed(t, svc)
	ctx := context.Background()

	for _, p := range []string{"P1", "P2", "P3"} {
		svc.AssignMembers(ctx, p, &dto.AssignRequest{EmployeeID: ptr(int64(1))})
	}

	if got := svc.Overloaded(ctx, nil); len(got) != 1 || got[0].EmployeeID != 1 {
		t.Errorf("unexpected overloaded list: %+v", got)
	}
	if got := svc.Overloaded(ctx, ptr(3)); len(got) != 0 {
		t.Errorf("expected nobody above 3 projects, got %+v", got)
	}
	opt := svc.Optimization(ctx)
	if opt.Balanced || len(opt.Suggestions) != 1 || opt.Suggestions[0].ProjectsToShed[0] != "Project P3" {
		t.Errorf("unexpected optimization: %+v", opt)
	}
	if cost := svc.Cost(ctx); cost.TotalMonthlyCost != 15000 || len(cost.Departments) != 2 {
		t.Errorf("unexpected cost: %+v", cost)
	}
	if stats := svc.DepartmentStats(ctx); stats.MostExpensiveDepartment != "DEV" {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if w := svc.Workload(ctx); w.Distribution[3] != 1 || w.Distribution[0] != 2 {
		t.Errorf("unexpected distribution: %v", w.Distribution)
	}
	if b := svc.ProjectBudgets(ctx); len(b.Projects) != 3 || b.Active != nil {
		t.Errorf("unexpected budget analysis: %+v", b)
	}
}

func TestDepartments(t *testing.T) {
	svc, _ := setup(t)
	seed(t, svc)
	ctx := context.Background()

	if _, err := svc.CreateDepartment(ctx, &dto.CreateDepartmentRequest{Name: "DEV"}); !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("expected duplicate error, got %v", err)
	}
	if err := svc.DeleteDepartment(ctx, "DEV"); !errors.Is(err, domain.ErrDepartmentNotEmpty) {
		t.Errorf("expected ErrDepartmentNotEmpty, got %v", err)
	}
	svc.CreateDepartment(ctx, &dto.CreateDepartmentRequest{Name: "EMPTY"})
	if err := svc.DeleteDepartment(ctx, "EMPTY"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	dept, err := svc.GetDepartment(ctx, "DEV")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dept.Employees) != 2 || dept.TotalSalary != 12000 {
		t.Errorf("unexpected department: %+v", dept)
	}
	if got := svc.ListDepartments(ctx); len(got) != 2 {
		t.Errorf("expected 2 departments, got %d", len(got))
	}
}

func TestSaveAndReports(t *testing.T) {
	svc, store := setup(t)
	seed(t, svc)
	ctx := context.Background()

	if err := svc.Save(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saves != 1 || store.doc.Metadata.TotalEmployees != 3 {
		t.Errorf("unexpected stored document: %+v", store.doc)
	}

	store.err = errors.New("disk full")
	if err := svc.Save(ctx); err == nil {
		t.Error("expected store error to propagate")
	}

	var buf bytes.Buffer
	if err := svc.WriteReport(ctx, service.ReportPlanning, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "RESOURCE PLANNING REPORT") {
		t.Errorf("unexpected report: %s", buf.String())
	}
	if err := svc.WriteReport(ctx, "pdf", &buf); !errors.Is(err, service.ErrUnknownReport) {
		t.Errorf("expected ErrUnknownReport, got %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	svc, _ := setup(t)
	seed(t, svc)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.AddSales(ctx, 3, &dto.AddSalesRequest{Amount: float64(i)})
		}()
		go func() {
			defer wg.Done()
			svc.Workload(ctx)
			svc.ListEmployees(ctx, "name")
		}()
	}
	wg.Wait()

	seller, _ := svc.GetEmployee(ctx, 3)
	if *seller.SalesVolume != 10190 {
		t.Errorf("expected 10190 sales, got %v", *seller.SalesVolume)
	}
}
