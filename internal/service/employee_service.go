package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/staffing-api/internal/domain"
	"github.com/staffing-api/internal/dto"
)

var employeeOrders = map[string]func(a, b domain.Employee) int{
	"salary":     domain.CompareBySalary,
	"name":       domain.CompareByName,
	"department": domain.CompareByDepartmentThenName,
	"type":       domain.CompareByKindThenSalary,
}

func (s *companyService) HireEmployee(ctx context.Context, department string, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	kind, err := domain.ParseKind(req.Type)
	if err != nil {
		return nil, err
	}

	fields := domain.EmployeeFields{
		ID:         req.ID,
		Name:       strings.TrimSpace(req.Name),
		Department: department,
		BaseSalary: decimal.NewFromFloat(req.BaseSalary),
		TechStack:  req.TechStack,
		Seniority:  domain.Seniority(req.SeniorityLevel),
	}
	switch kind {
	case domain.KindManager:
		if req.Bonus == nil {
			return nil, fmt.Errorf("%w: bonus is required for %s", domain.ErrValidation, kind)
		}
		fields.Bonus = decimal.NewFromFloat(*req.Bonus)
	case domain.KindSalesperson:
		if req.CommissionRate == nil {
			return nil, fmt.Errorf("%w: commission_rate is required for %s", domain.ErrValidation, kind)
		}
		fields.CommissionRate = decimal.NewFromFloat(*req.CommissionRate)
		if req.SalesVolume != nil {
			fields.SalesVolume = decimal.NewFromFloat(*req.SalesVolume)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Отдел проверяется до создания сотрудника, иначе id займётся зря
	if _, err := s.company.Department(department); err != nil {
		return nil, err
	}
	emp, err := domain.NewEmployee(s.company.Registry(), kind, fields)
	if err != nil {
		return nil, err
	}
	if err := s.company.HireEmployee(department, emp); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "employee hired",
		slog.Int64("employee_id", emp.ID()),
		slog.String("type", string(kind)),
		slog.String("department", department),
	)
	resp := dto.NewEmployeeResponse(emp, []string{})
	return &resp, nil
}

// ListEmployees возвращает всех сотрудников; sortBy - salary, name,
// department, type или пусто для порядка отделов.
func (s *companyService) ListEmployees(_ context.Context, sortBy string) ([]dto.EmployeeResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := s.company.AllEmployees()
	if sortBy != "" {
		compare, ok := employeeOrders[sortBy]
		if !ok {
			return nil, fmt.Errorf("%w: unknown sort order %q", domain.ErrValidation, sortBy)
		}
		employees = domain.SortEmployees(employees, compare)
	}

	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, dto.NewEmployeeResponse(e, s.company.EmployeeProjects(e.ID())))
	}
	return out, nil
}

func (s *companyService) GetEmployee(_ context.Context, id int64) (*dto.EmployeeResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, err := s.company.FindEmployee(id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewEmployeeResponse(emp, s.company.EmployeeProjects(id))
	return &resp, nil
}

// DeleteEmployee увольняет сотрудника без проектов.
func (s *companyService) DeleteEmployee(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.company.RemoveEmployee(id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "employee removed", slog.Int64("employee_id", id))
	return nil
}

func (s *companyService) AddSkill(ctx context.Context, id int64, req *dto.AddSkillRequest) (*dto.EmployeeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dev, err := findAs[*domain.Developer](s.company, id, domain.KindDeveloper)
	if err != nil {
		return nil, err
	}
	if !dev.AddSkill(req.Skill) {
		s.logger.InfoContext(ctx, "skill already present",
			slog.Int64("employee_id", id),
			slog.String("skill", req.Skill),
		)
	}
	resp := dto.NewEmployeeResponse(dev, s.company.EmployeeProjects(id))
	return &resp, nil
}

func (s *companyService) RemoveSkill(ctx context.Context, id int64, skill string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dev, err := findAs[*domain.Developer](s.company, id, domain.KindDeveloper)
	if err != nil {
		return false, err
	}
	removed := dev.RemoveSkill(skill)
	if !removed {
		s.logger.InfoContext(ctx, "skill not found",
			slog.Int64("employee_id", id),
			slog.String("skill", skill),
		)
	}
	return removed, nil
}

func (s *companyService) AddSales(_ context.Context, id int64, req *dto.AddSalesRequest) (*dto.EmployeeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, err := findAs[*domain.Salesperson](s.company, id, domain.KindSalesperson)
	if err != nil {
		return nil, err
	}
	if err := sp.AddSales(decimal.NewFromFloat(req.Amount)); err != nil {
		return nil, err
	}
	resp := dto.NewEmployeeResponse(sp, s.company.EmployeeProjects(id))
	return &resp, nil
}

func (s *companyService) SetBonus(_ context.Context, id int64, req *dto.SetBonusRequest) (*dto.EmployeeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := findAs[*domain.Manager](s.company, id, domain.KindManager)
	if err != nil {
		return nil, err
	}
	if err := m.SetBonus(decimal.NewFromFloat(req.Bonus)); err != nil {
		return nil, err
	}
	resp := dto.NewEmployeeResponse(m, s.company.EmployeeProjects(id))
	return &resp, nil
}

// findAs ищет сотрудника и проверяет, что он нужного варианта.
func findAs[T domain.Employee](c *domain.Company, id int64, want domain.Kind) (T, error) {
	var zero T
	emp, err := c.FindEmployee(id)
	if err != nil {
		return zero, err
	}
	typed, ok := emp.(T)
	if !ok {
		return zero, fmt.Errorf("%w: employee %d is %s, not %s", domain.ErrValidation, id, emp.Kind(), want)
	}
	return typed, nil
}
