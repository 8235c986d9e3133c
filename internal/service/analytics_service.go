package service

import (
	"context"

	"github.com/staffing-api/internal/dto"
)

func (s *companyService) Cost(_ context.Context) dto.CostResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.NewCostResponse(s.company)
}

func (s *companyService) Workload(_ context.Context) dto.WorkloadResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.NewWorkloadResponse(s.company.WorkloadReport())
}

// Overloaded использует порог компании, если threshold не задан.
func (s *companyService) Overloaded(_ context.Context, threshold *int) []dto.OverloadResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.company.OverloadThreshold()
	if threshold != nil {
		t = *threshold
	}
	return dto.NewOverloadResponses(s.company.OverloadedEmployees(t))
}

func (s *companyService) Optimization(_ context.Context) dto.OptimizationResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.NewOptimizationResponse(s.company.OptimizeWorkload())
}

func (s *companyService) DepartmentStats(_ context.Context) dto.DepartmentStatsResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.NewDepartmentStatsResponse(s.company.DepartmentStats())
}

func (s *companyService) ProjectBudgets(_ context.Context) dto.BudgetAnalysisResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.NewBudgetAnalysisResponse(s.company.ProjectBudgetAnalysis())
}
