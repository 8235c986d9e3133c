package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/staffing-api/internal/domain"
	"github.com/staffing-api/internal/dto"
)

func (s *companyService) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	status := domain.StatusPlanning
	if req.Status != "" {
		status = domain.Status(req.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.company.CreateProject(strings.TrimSpace(req.ID), strings.TrimSpace(req.Name), req.Description, req.Deadline, status)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "project created",
		slog.String("project_id", p.ID()),
		slog.String("status", string(p.Status())),
	)
	resp := dto.NewProjectResponse(p)
	return &resp, nil
}

// ListProjects возвращает все проекты или только проекты со статусом status.
func (s *companyService) ListProjects(_ context.Context, status string) ([]dto.ProjectResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := s.company.Projects()
	if status != "" {
		var err error
		if projects, err = s.company.ProjectsByStatus(domain.Status(status)); err != nil {
			return nil, err
		}
	}

	out := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.NewProjectResponse(p))
	}
	return out, nil
}

func (s *companyService) GetProject(_ context.Context, id string) (*dto.ProjectResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.company.Project(id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewProjectResponse(p)
	return &resp, nil
}

func (s *companyService) ChangeProjectStatus(ctx context.Context, id string, req *dto.ChangeStatusRequest) (*dto.ProjectResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.company.Project(id)
	if err != nil {
		return nil, err
	}
	from := p.Status()
	if err := p.ChangeStatus(domain.Status(req.Status)); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "project status changed",
		slog.String("project_id", id),
		slog.String("from", string(from)),
		slog.String("to", string(p.Status())),
	)
	resp := dto.NewProjectResponse(p)
	return &resp, nil
}

// DeleteProject удаляет проект без участников.
func (s *companyService) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.company.RemoveProject(id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "project removed", slog.String("project_id", id))
	return nil
}

// AssignMembers назначает одного сотрудника (ошибка возвращается как есть)
// или пачку сотрудников (ошибки собираются в ответе).
func (s *companyService) AssignMembers(ctx context.Context, projectID string, req *dto.AssignRequest) (*dto.AssignResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.EmployeeID != nil {
		limit := s.company.MaxConcurrentProjects()
		if req.MaxProjects != nil {
			limit = *req.MaxProjects
		}
		if err := s.company.AssignWithLimit(*req.EmployeeID, projectID, limit); err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "employee assigned",
			slog.Int64("employee_id", *req.EmployeeID),
			slog.String("project_id", projectID),
		)
		return &dto.AssignResponse{
			Successful:    []int64{*req.EmployeeID},
			Failed:        []dto.AssignFailure{},
			TotalAssigned: 1,
		}, nil
	}

	// Неизвестный проект не прерывает пакет: каждый id получает свою ошибку
	result := s.company.BulkAssign(req.EmployeeIDs, projectID)
	for _, f := range result.Failed {
		s.logger.WarnContext(ctx, "bulk assignment failed",
			slog.Int64("employee_id", f.EmployeeID),
			slog.String("project_id", projectID),
			slog.Any("error", f.Err),
		)
	}
	s.logger.InfoContext(ctx, "bulk assignment finished",
		slog.String("project_id", projectID),
		slog.Int("assigned", result.TotalAssigned),
		slog.Int("failed", len(result.Failed)),
	)
	resp := dto.NewAssignResponse(result)
	return &resp, nil
}

// UnassignMember убирает сотрудника из команды. Отсутствие сотрудника
// в команде не ошибка, а false.
func (s *companyService) UnassignMember(ctx context.Context, projectID string, employeeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.company.Unassign(employeeID, projectID)
	if err != nil {
		return false, err
	}
	if !removed {
		s.logger.InfoContext(ctx, "employee is not a team member",
			slog.Int64("employee_id", employeeID),
			slog.String("project_id", projectID),
		)
	}
	return removed, nil
}
