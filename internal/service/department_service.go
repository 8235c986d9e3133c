package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/staffing-api/internal/dto"
)

func (s *companyService) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	name := strings.TrimSpace(req.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	dept, err := s.company.AddDepartment(name)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "department created", slog.String("department", name))
	resp := dto.NewDepartmentResponse(dept)
	return &resp, nil
}

func (s *companyService) ListDepartments(_ context.Context) []dto.DepartmentResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	depts := s.company.Departments()
	out := make([]dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		out = append(out, dto.NewDepartmentResponse(d))
	}
	return out
}

func (s *companyService) GetDepartment(_ context.Context, name string) (*dto.DepartmentResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dept, err := s.company.Department(name)
	if err != nil {
		return nil, err
	}
	resp := dto.NewDepartmentResponse(dept)
	return &resp, nil
}

// DeleteDepartment удаляет только пустой отдел.
func (s *companyService) DeleteDepartment(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.company.RemoveDepartment(name); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "department removed", slog.String("department", name))
	return nil
}
