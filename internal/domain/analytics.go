package domain

import (
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// SalaryDistribution - минимум, максимум и медиана зарплат
type SalaryDistribution struct {
	Min    decimal.Decimal
	Max    decimal.Decimal
	Median decimal.Decimal
}

// DepartmentStat - статистика одного отдела
type DepartmentStat struct {
	Name                string
	TotalEmployees      int
	TotalSalary         decimal.Decimal
	AverageSalary       decimal.Decimal
	CountByKind         map[Kind]int
	Distribution        *SalaryDistribution
	ProjectsInvolvement int
}

// CompanySummary - сводка по компании
type CompanySummary struct {
	TotalDepartments        int
	TotalEmployees          int
	TotalMonthlyCost        decimal.Decimal
	MostExpensiveDepartment string
}

// DepartmentStats - статистика по всем отделам и сводка
type DepartmentStats struct {
	Departments []DepartmentStat
	Summary     CompanySummary
}

// DepartmentStats собирает статистику отделов.
func (c *Company) DepartmentStats() DepartmentStats {
	stats := DepartmentStats{Departments: make([]DepartmentStat, 0, len(c.departments))}
	var maxSalary decimal.Decimal

	for _, d := range c.departments {
		stat := DepartmentStat{
			Name:           d.Name(),
			TotalEmployees: d.Len(),
			TotalSalary:    d.TotalSalary(),
			AverageSalary:  decimal.Zero,
			CountByKind:    d.EmployeeCountByKind(),
		}
		if stat.TotalEmployees > 0 {
			stat.AverageSalary = stat.TotalSalary.Div(decimal.NewFromInt(int64(stat.TotalEmployees)))

			salaries := make([]decimal.Decimal, 0, d.Len())
			for e := range d.All() {
				salaries = append(salaries, e.CalculateSalary())
			}
			slices.SortFunc(salaries, func(a, b decimal.Decimal) int { return a.Cmp(b) })
			stat.Distribution = &SalaryDistribution{
				Min:    salaries[0],
				Max:    salaries[len(salaries)-1],
				Median: salaries[len(salaries)/2],
			}
		}
		for _, p := range c.projects {
			if slices.ContainsFunc(p.team, func(e Employee) bool { return d.Contains(e.ID()) }) {
				stat.ProjectsInvolvement++
			}
		}

		if stats.Summary.MostExpensiveDepartment == "" || stat.TotalSalary.GreaterThan(maxSalary) {
			stats.Summary.MostExpensiveDepartment = stat.Name
			maxSalary = stat.TotalSalary
		}
		stats.Summary.TotalEmployees += stat.TotalEmployees
		stats.Departments = append(stats.Departments, stat)
	}

	stats.Summary.TotalDepartments = len(c.departments)
	stats.Summary.TotalMonthlyCost = c.TotalMonthlyCost()
	return stats
}

// ProjectBudget - бюджетный анализ одного проекта
type ProjectBudget struct {
	ProjectID         string
	Name              string
	Status            Status
	TeamSize          int
	TotalSalaryCost   decimal.Decimal
	Deadline          string
	DaysUntilDeadline int
	TeamComposition   map[Kind]int
	CostPerMember     decimal.Decimal
	EfficiencyScore   float64
}

// ProjectComparison - сравнение активных проектов
type ProjectComparison struct {
	AvgTeamSize   float64
	AvgCost       decimal.Decimal
	MostEfficient string
	MostExpensive string
}

// BudgetAnalysis - анализ всех проектов
type BudgetAnalysis struct {
	Projects []ProjectBudget
	// Active заполняется, только если есть активные проекты
	Active *ProjectComparison
}

// unknownDeadlineDays - сколько дней считать до непарсящегося дедлайна
const unknownDeadlineDays = 9999

// ProjectBudgetAnalysis считает стоимость и оценку эффективности проектов.
func (c *Company) ProjectBudgetAnalysis() BudgetAnalysis {
	analysis := BudgetAnalysis{Projects: make([]ProjectBudget, 0, len(c.projects))}
	now := c.now()

	for _, p := range c.projects {
		b := ProjectBudget{
			ProjectID:         p.ID(),
			Name:              p.Name(),
			Status:            p.Status(),
			TeamSize:          p.TeamSize(),
			TotalSalaryCost:   p.TotalSalary(),
			Deadline:          p.Deadline(),
			DaysUntilDeadline: daysUntil(now, p.Deadline()),
			TeamComposition:   make(map[Kind]int),
			CostPerMember:     decimal.Zero,
		}
		for _, e := range p.team {
			b.TeamComposition[e.Kind()]++
		}
		if b.TeamSize > 0 {
			b.CostPerMember = b.TotalSalaryCost.Div(decimal.NewFromInt(int64(b.TeamSize)))
			b.EfficiencyScore = efficiencyScore(b.TeamSize, b.CostPerMember, b.DaysUntilDeadline)
		}
		analysis.Projects = append(analysis.Projects, b)
	}

	var active []ProjectBudget
	for _, b := range analysis.Projects {
		if b.Status == StatusActive {
			active = append(active, b)
		}
	}
	if len(active) == 0 {
		return analysis
	}

	cmp := &ProjectComparison{AvgCost: decimal.Zero}
	teamTotal := 0
	bestScore, bestCost := -1.0, decimal.NewFromInt(-1)
	for _, b := range active {
		teamTotal += b.TeamSize
		cmp.AvgCost = cmp.AvgCost.Add(b.TotalSalaryCost)
		if b.EfficiencyScore > bestScore {
			bestScore = b.EfficiencyScore
			cmp.MostEfficient = b.Name
		}
		if b.TotalSalaryCost.GreaterThan(bestCost) {
			bestCost = b.TotalSalaryCost
			cmp.MostExpensive = b.Name
		}
	}
	cmp.AvgTeamSize = float64(teamTotal) / float64(len(active))
	cmp.AvgCost = cmp.AvgCost.Div(decimal.NewFromInt(int64(len(active))))
	analysis.Active = cmp
	return analysis
}

// efficiencyScore: чем меньше команда и стоимость участника и чем ближе
// дедлайн, тем выше оценка. Оценка не бывает отрицательной.
func efficiencyScore(teamSize int, costPerMember decimal.Decimal, days int) float64 {
	sizePenalty := math.Min(float64(teamSize*2), 30)
	costPenalty := math.Min(costPerMember.InexactFloat64()/1000, 40)
	deadlineBonus := math.Max(30-float64(days)/10, 0)
	return math.Max(100-sizePenalty-costPenalty+deadlineBonus, 0)
}

func daysUntil(now time.Time, date string) int {
	target, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return unknownDeadlineDays
	}
	return int(math.Floor(target.Sub(now).Hours() / 24))
}
