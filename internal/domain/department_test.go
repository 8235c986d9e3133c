package domain_test

import (
	"errors"
	"testing"

	"github.com/staffing-api/internal/domain"
)

func TestDepartment(t *testing.T) {
	reg := domain.NewRegistry()
	d, err := domain.NewDepartment("DEV")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := domain.NewStaff(reg, 1, "Ann", "DEV", dec(1000))
	b, _ := domain.NewDeveloper(reg, 2, "Bob", "DEV", dec(1000), nil, domain.SeniorityMiddle)
	c, _ := domain.NewSalesperson(reg, 3, "Cid", "DEV", dec(1000), dec(0.5), dec(100))

	for _, e := range []domain.Employee{a, b, c} {
		if err := d.AddEmployee(e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := d.AddEmployee(a); !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}

	var order []int64
	for e := range d.All() {
		order = append(order, e.ID())
	}
	if len(order) != 3 || order[0] != 1 || order[2] != 3 {
		t.Errorf("expected insertion order, got %v", order)
	}

	if got := d.TotalSalary(); !got.Equal(dec(3550)) {
		t.Errorf("expected 3550, got %s", got)
	}
	counts := d.EmployeeCountByKind()
	if counts[domain.KindDeveloper] != 1 || counts[domain.KindManager] != 0 || len(counts) != 4 {
		t.Errorf("unexpected counts: %v", counts)
	}

	if _, err := d.FindByID(99); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
	if d.RemoveEmployee(99) {
		t.Error("removing an absent employee should report false")
	}
	if !d.RemoveEmployee(2) || d.Contains(2) || d.Len() != 2 {
		t.Error("expected employee 2 to be removed")
	}
	if !d.HasEmployees() {
		t.Error("department should still have employees")
	}
}

func TestNewDepartment_EmptyName(t *testing.T) {
	if _, err := domain.NewDepartment(""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestValidators(t *testing.T) {
	existing := map[int64]struct{}{5: {}}
	if err := domain.ValidateID(-1, existing); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if err := domain.ValidateID(5, existing); !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if err := domain.ValidateID(6, existing); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, ok := existing[6]; ok {
		t.Error("ValidateID must not insert into the set")
	}
	if err := domain.ValidateSalary(dec(0), domain.DefaultSalaryCeiling); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := domain.ValidateDate("2024-13-01"); !errors.Is(err, domain.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	if err := domain.ValidateStatus("b", []string{"a", "c"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if err := domain.ValidateStatus("a", []string{"a", "c"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
