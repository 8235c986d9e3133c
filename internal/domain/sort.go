package domain

import (
	"cmp"
	"slices"
	"strings"
)

// CompareBySalary упорядочивает сотрудников по итоговой зарплате.
func CompareBySalary(a, b Employee) int {
	return a.CalculateSalary().Cmp(b.CalculateSalary())
}

func CompareByName(a, b Employee) int {
	return cmp.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name()))
}

func CompareByDepartmentThenName(a, b Employee) int {
	if c := cmp.Compare(a.Department(), b.Department()); c != 0 {
		return c
	}
	return CompareByName(a, b)
}

// CompareByKindThenSalary: сначала вариант по алфавиту, внутри варианта
// по убыванию зарплаты.
func CompareByKindThenSalary(a, b Employee) int {
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	return CompareBySalary(b, a)
}

// SortEmployees возвращает отсортированную копию; сортировка стабильная.
func SortEmployees(employees []Employee, compare func(a, b Employee) int) []Employee {
	out := slices.Clone(employees)
	slices.SortStableFunc(out, compare)
	return out
}
