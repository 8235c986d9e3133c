package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind - вариант сотрудника, он же дискриминатор "type" в снапшоте
type Kind string

const (
	KindEmployee    Kind = "Employee"
	KindManager     Kind = "Manager"
	KindDeveloper   Kind = "Developer"
	KindSalesperson Kind = "Salesperson"
)

// Kinds перечисляет все варианты в стабильном порядке.
func Kinds() []Kind {
	return []Kind{KindManager, KindDeveloper, KindSalesperson, KindEmployee}
}

// ParseKind принимает тег варианта без учёта регистра.
// Старые снапшоты писали продавца как "Saleperson".
func ParseKind(tag string) (Kind, error) {
	if strings.EqualFold(tag, "Saleperson") {
		return KindSalesperson, nil
	}
	for _, k := range Kinds() {
		if strings.EqualFold(tag, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEmployeeKind, tag)
}

// Seniority - уровень разработчика
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMiddle Seniority = "middle"
	SenioritySenior Seniority = "senior"
)

var seniorityMultipliers = map[Seniority]decimal.Decimal{
	SeniorityJunior: decimal.NewFromInt(1),
	SeniorityMiddle: decimal.NewFromFloat(1.5),
	SenioritySenior: decimal.NewFromInt(2),
}

// Multiplier возвращает множитель зарплаты для уровня.
func (s Seniority) Multiplier() (decimal.Decimal, bool) {
	m, ok := seniorityMultipliers[s]
	return m, ok
}

// Employee - общий контракт всех вариантов сотрудников.
// Идентичность определяется только ID.
type Employee interface {
	ID() int64
	Name() string
	Department() string
	BaseSalary() decimal.Decimal
	Kind() Kind
	CalculateSalary() decimal.Decimal
	Record() EmployeeRecord
}

// SameEmployee сравнивает сотрудников по id.
func SameEmployee(a, b Employee) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}

// TotalSalary суммирует CalculateSalary по всем сотрудникам.
func TotalSalary(employees ...Employee) decimal.Decimal {
	total := decimal.Zero
	for _, e := range employees {
		total = total.Add(e.CalculateSalary())
	}
	return total
}

type person struct {
	id         int64
	name       string
	department string
	baseSalary decimal.Decimal
}

func (p *person) ID() int64                   { return p.id }
func (p *person) Name() string                { return p.name }
func (p *person) Department() string          { return p.department }
func (p *person) BaseSalary() decimal.Decimal { return p.baseSalary }

func (p *person) String() string {
	return fmt.Sprintf("employee id: %d, name: %s, department: %s, base salary: %s",
		p.id, p.name, p.department, p.baseSalary)
}

func (p *person) record(kind Kind, salary decimal.Decimal) EmployeeRecord {
	return EmployeeRecord{
		ID:               p.id,
		Name:             p.name,
		Department:       p.department,
		BaseSalary:       p.baseSalary.InexactFloat64(),
		CalculatedSalary: salary.InexactFloat64(),
		Type:             kind,
	}
}

// newPerson проверяет общие поля и только после этого занимает id в реестре.
func newPerson(reg *Registry, id int64, name, department string, baseSalary decimal.Decimal) (person, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	if err := ValidateName("name", name); err != nil {
		return person{}, err
	}
	if err := ValidateSalary(baseSalary, reg.SalaryCeiling()); err != nil {
		return person{}, err
	}
	if err := ValidateID(id, reg.ids); err != nil {
		return person{}, err
	}
	return person{id: id, name: name, department: department, baseSalary: baseSalary}, nil
}

// Staff - базовый вариант, зарплата равна базовой.
type Staff struct {
	person
}

// NewStaff создаёт сотрудника базового варианта.
func NewStaff(reg *Registry, id int64, name, department string, baseSalary decimal.Decimal) (*Staff, error) {
	p, err := newPerson(reg, id, name, department, baseSalary)
	if err != nil {
		return nil, err
	}
	reserve(reg, id)
	return &Staff{person: p}, nil
}

func (s *Staff) Kind() Kind                       { return KindEmployee }
func (s *Staff) CalculateSalary() decimal.Decimal { return s.baseSalary }

func (s *Staff) Record() EmployeeRecord {
	return s.record(KindEmployee, s.CalculateSalary())
}

// Manager - руководитель, зарплата = база + бонус.
type Manager struct {
	person
	bonus decimal.Decimal
}

// NewManager создаёт руководителя.
func NewManager(reg *Registry, id int64, name, department string, baseSalary, bonus decimal.Decimal) (*Manager, error) {
	if err := validateBonus(bonus); err != nil {
		return nil, err
	}
	p, err := newPerson(reg, id, name, department, baseSalary)
	if err != nil {
		return nil, err
	}
	reserve(reg, id)
	return &Manager{person: p, bonus: bonus}, nil
}

func validateBonus(bonus decimal.Decimal) error {
	if bonus.IsNegative() {
		return fmt.Errorf("%w: bonus must not be negative, got %s", ErrValidation, bonus)
	}
	return nil
}

func (m *Manager) Kind() Kind             { return KindManager }
func (m *Manager) Bonus() decimal.Decimal { return m.bonus }

// SetBonus меняет бонус руководителя.
func (m *Manager) SetBonus(bonus decimal.Decimal) error {
	if err := validateBonus(bonus); err != nil {
		return err
	}
	m.bonus = bonus
	return nil
}

func (m *Manager) CalculateSalary() decimal.Decimal {
	return m.baseSalary.Add(m.bonus)
}

func (m *Manager) Record() EmployeeRecord {
	rec := m.record(KindManager, m.CalculateSalary())
	bonus := m.bonus.InexactFloat64()
	rec.Bonus = &bonus
	return rec
}

// Developer - разработчик, зарплата зависит от уровня.
type Developer struct {
	person
	skills    []string
	seniority Seniority
}

// NewDeveloper создаёт разработчика. Повторы в techStack схлопываются.
func NewDeveloper(reg *Registry, id int64, name, department string, baseSalary decimal.Decimal, techStack []string, seniority Seniority) (*Developer, error) {
	if _, ok := seniority.Multiplier(); !ok {
		return nil, fmt.Errorf("%w: unknown seniority level %q", ErrValidation, seniority)
	}
	p, err := newPerson(reg, id, name, department, baseSalary)
	if err != nil {
		return nil, err
	}
	reserve(reg, id)
	d := &Developer{person: p, seniority: seniority}
	for _, s := range techStack {
		d.AddSkill(s)
	}
	return d, nil
}

func (d *Developer) Kind() Kind           { return KindDeveloper }
func (d *Developer) Seniority() Seniority { return d.seniority }

// Skills возвращает копию набора навыков в порядке добавления.
func (d *Developer) Skills() []string {
	return slices.Clone(d.skills)
}

// AddSkill добавляет навык; false, если он уже есть или пустой.
func (d *Developer) AddSkill(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || slices.Contains(d.skills, skill) {
		return false
	}
	d.skills = append(d.skills, skill)
	return true
}

// RemoveSkill убирает навык; false, если его не было.
func (d *Developer) RemoveSkill(skill string) bool {
	i := slices.Index(d.skills, skill)
	if i < 0 {
		return false
	}
	d.skills = slices.Delete(d.skills, i, i+1)
	return true
}

func (d *Developer) HasSkill(skill string) bool {
	return slices.Contains(d.skills, skill)
}

func (d *Developer) CalculateSalary() decimal.Decimal {
	m, ok := d.seniority.Multiplier()
	if !ok {
		return d.baseSalary
	}
	return d.baseSalary.Mul(m)
}

func (d *Developer) Record() EmployeeRecord {
	rec := d.record(KindDeveloper, d.CalculateSalary())
	rec.TechStack = d.Skills()
	if rec.TechStack == nil {
		rec.TechStack = []string{}
	}
	rec.SeniorityLevel = d.seniority
	return rec
}

// Salesperson - продавец, зарплата = база + комиссия от объёма продаж.
type Salesperson struct {
	person
	commissionRate decimal.Decimal
	salesVolume    decimal.Decimal
}

// NewSalesperson создаёт продавца.
func NewSalesperson(reg *Registry, id int64, name, department string, baseSalary, commissionRate, salesVolume decimal.Decimal) (*Salesperson, error) {
	if commissionRate.IsNegative() || commissionRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: commission rate must be within [0, 1], got %s", ErrValidation, commissionRate)
	}
	if salesVolume.IsNegative() {
		return nil, fmt.Errorf("%w: sales volume must not be negative, got %s", ErrValidation, salesVolume)
	}
	p, err := newPerson(reg, id, name, department, baseSalary)
	if err != nil {
		return nil, err
	}
	reserve(reg, id)
	return &Salesperson{person: p, commissionRate: commissionRate, salesVolume: salesVolume}, nil
}

func (s *Salesperson) Kind() Kind                      { return KindSalesperson }
func (s *Salesperson) CommissionRate() decimal.Decimal { return s.commissionRate }
func (s *Salesperson) SalesVolume() decimal.Decimal    { return s.salesVolume }

// AddSales увеличивает объём продаж на delta.
func (s *Salesperson) AddSales(delta decimal.Decimal) error {
	if delta.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrNegativeSales, delta)
	}
	s.salesVolume = s.salesVolume.Add(delta)
	return nil
}

func (s *Salesperson) CalculateSalary() decimal.Decimal {
	return s.baseSalary.Add(s.commissionRate.Mul(s.salesVolume))
}

func (s *Salesperson) Record() EmployeeRecord {
	rec := s.record(KindSalesperson, s.CalculateSalary())
	rate := s.commissionRate.InexactFloat64()
	volume := s.salesVolume.InexactFloat64()
	rec.CommissionRate = &rate
	rec.SalesVolume = &volume
	return rec
}

func reserve(reg *Registry, id int64) {
	if reg != nil {
		reg.Track(id)
	}
}

// EmployeeFields - набор полей для фабрики NewEmployee.
// Поля, не относящиеся к варианту, игнорируются.
type EmployeeFields struct {
	ID             int64
	Name           string
	Department     string
	BaseSalary     decimal.Decimal
	Bonus          decimal.Decimal
	TechStack      []string
	Seniority      Seniority
	CommissionRate decimal.Decimal
	SalesVolume    decimal.Decimal
}

// NewEmployee создаёт сотрудника по тегу варианта.
func NewEmployee(reg *Registry, kind Kind, f EmployeeFields) (Employee, error) {
	switch kind {
	case KindEmployee:
		return NewStaff(reg, f.ID, f.Name, f.Department, f.BaseSalary)
	case KindManager:
		return NewManager(reg, f.ID, f.Name, f.Department, f.BaseSalary, f.Bonus)
	case KindDeveloper:
		seniority := f.Seniority
		if seniority == "" {
			seniority = SeniorityJunior
		}
		return NewDeveloper(reg, f.ID, f.Name, f.Department, f.BaseSalary, f.TechStack, seniority)
	case KindSalesperson:
		return NewSalesperson(reg, f.ID, f.Name, f.Department, f.BaseSalary, f.CommissionRate, f.SalesVolume)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEmployeeKind, kind)
	}
}
