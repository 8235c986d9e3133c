package report

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffing-api/internal/domain"
)

const (
	rule      = "=================================================="
	thinRule  = "----------------------------------------"
	topActive = 5
	topLoaded = 3
)

// Planning пишет отчёт по планированию ресурсов.
func Planning(w io.Writer, c *domain.Company) error {
	workload := c.WorkloadReport()
	opt := c.OptimizeWorkload()

	total, busy := 0, 0
	for _, d := range workload.Departments {
		total += d.TotalEmployees
		busy += d.EmployeesInProjects
	}

	var b strings.Builder
	b.WriteString("RESOURCE PLANNING REPORT\n")
	b.WriteString(rule + "\n")

	b.WriteString("\nWORKLOAD:\n")
	fmt.Fprintf(&b, "Total employees: %d\n", total)
	fmt.Fprintf(&b, "On projects: %d (%.1f%%)\n", busy, percent(busy, total))
	fmt.Fprintf(&b, "Overloaded: %d\n", len(workload.Overloaded))

	b.WriteString("\nDISTRIBUTION:\n")
	for _, n := range slices.Sorted(maps.Keys(workload.Distribution)) {
		fmt.Fprintf(&b, "  %d projects: %d employees\n", n, workload.Distribution[n])
	}

	b.WriteString("\nRECOMMENDATIONS:\n")
	if opt.Balanced {
		fmt.Fprintf(&b, "  %s\n", opt.Summary)
	}
	for _, s := range opt.Suggestions {
		fmt.Fprintf(&b, "  * %s: %s\n", s.Employee, s.Recommendation)
	}
	for _, t := range opt.Transfers {
		fmt.Fprintf(&b, "  -> %s\n", t)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Financial пишет финансовый отчёт компании на момент generatedAt.
func Financial(w io.Writer, c *domain.Company, generatedAt time.Time) error {
	stats := c.DepartmentStats()
	budget := c.ProjectBudgetAnalysis()

	var b strings.Builder
	fmt.Fprintf(&b, "FINANCIAL REPORT: %s\n", c.Name())
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.Format(time.DateTime))

	b.WriteString("SUMMARY:\n" + thinRule + "\n")
	fmt.Fprintf(&b, "Employees: %d\n", stats.Summary.TotalEmployees)
	fmt.Fprintf(&b, "Departments: %d\n", stats.Summary.TotalDepartments)
	fmt.Fprintf(&b, "Projects: %d\n", len(budget.Projects))
	fmt.Fprintf(&b, "Monthly cost: %s\n", stats.Summary.TotalMonthlyCost.StringFixed(2))
	avg := "0.00"
	if stats.Summary.TotalEmployees > 0 {
		avg = stats.Summary.TotalMonthlyCost.DivRound(decimal.NewFromInt(int64(stats.Summary.TotalEmployees)), 2).StringFixed(2)
	}
	fmt.Fprintf(&b, "Average salary: %s\n\n", avg)

	b.WriteString("DEPARTMENTS:\n" + thinRule + "\n")
	for _, d := range stats.Departments {
		fmt.Fprintf(&b, "\n%s:\n", d.Name)
		fmt.Fprintf(&b, "  Employees: %d\n", d.TotalEmployees)
		fmt.Fprintf(&b, "  Cost: %s\n", d.TotalSalary.StringFixed(2))
		fmt.Fprintf(&b, "  Average salary: %s\n", d.AverageSalary.StringFixed(2))
		fmt.Fprintf(&b, "  Projects involved: %d\n", d.ProjectsInvolvement)
		if d.Distribution != nil {
			fmt.Fprintf(&b, "  Salaries: %s to %s\n", d.Distribution.Min.StringFixed(0), d.Distribution.Max.StringFixed(0))
		}
	}

	counts := make(map[domain.Status]int)
	costs := make(map[domain.Status]string)
	var active []domain.ProjectBudget
	for _, status := range domain.Statuses() {
		total := decimal.Zero
		for _, p := range budget.Projects {
			if p.Status == status {
				counts[status]++
				total = total.Add(p.TotalSalaryCost)
			}
		}
		costs[status] = total.StringFixed(2)
	}
	for _, p := range budget.Projects {
		if p.Status == domain.StatusActive {
			active = append(active, p)
		}
	}

	b.WriteString("\nPROJECTS:\n" + thinRule + "\n")
	fmt.Fprintf(&b, "Active: %d\n", counts[domain.StatusActive])
	fmt.Fprintf(&b, "Planning: %d\n", counts[domain.StatusPlanning])
	fmt.Fprintf(&b, "Completed: %d\n", counts[domain.StatusCompleted])
	fmt.Fprintf(&b, "Active projects cost: %s\n", costs[domain.StatusActive])
	fmt.Fprintf(&b, "Planned cost: %s\n", costs[domain.StatusPlanning])

	b.WriteString("\nEFFICIENCY:\n" + thinRule + "\n")
	slices.SortStableFunc(active, func(x, y domain.ProjectBudget) int {
		return cmp.Compare(y.EfficiencyScore, x.EfficiencyScore)
	})
	for _, p := range active[:min(topActive, len(active))] {
		fmt.Fprintf(&b, "  %s: %.1f/100\n", p.Name, p.EfficiencyScore)
	}

	b.WriteString("\nRECOMMENDATIONS:\n" + thinRule + "\n")
	overloaded := c.OverloadedEmployees(c.OverloadThreshold())
	if len(overloaded) == 0 {
		b.WriteString("workload is evenly distributed\n")
	} else {
		b.WriteString("overloaded employees:\n")
		for _, o := range overloaded[:min(topLoaded, len(overloaded))] {
			fmt.Fprintf(&b, "  * %s: %d projects\n", o.Employee.Name(), o.ProjectCount)
		}
		b.WriteString("consider redistributing the workload\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
