package dto

// CreateDepartmentRequest - запрос на создание отдела
type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CreateEmployeeRequest - запрос на найм сотрудника. Вариантные поля
// обязательны в зависимости от type.
type CreateEmployeeRequest struct {
	ID             int64    `json:"id" validate:"required,gt=0"`
	Name           string   `json:"name" validate:"required,min=1,max=200"`
	Type           string   `json:"type" validate:"required"`
	BaseSalary     float64  `json:"base_salary" validate:"gte=0"`
	Bonus          *float64 `json:"bonus" validate:"omitempty,gte=0"`
	TechStack      []string `json:"tech_stack" validate:"omitempty,dive,required"`
	SeniorityLevel string   `json:"seniority_level" validate:"omitempty,oneof=junior middle senior"`
	CommissionRate *float64 `json:"commission_rate" validate:"omitempty,gte=0,lte=1"`
	SalesVolume    *float64 `json:"sales_volume" validate:"omitempty,gte=0"`
}

// AddSkillRequest - запрос на добавление навыка разработчику
type AddSkillRequest struct {
	Skill string `json:"skill" validate:"required,min=1,max=100"`
}

// AddSalesRequest - запрос на увеличение объёма продаж
type AddSalesRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

// SetBonusRequest - запрос на изменение бонуса менеджера
type SetBonusRequest struct {
	Bonus float64 `json:"bonus" validate:"gte=0"`
}

// CreateProjectRequest - запрос на создание проекта
type CreateProjectRequest struct {
	ID          string `json:"project_id" validate:"required,min=1,max=100"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Deadline    string `json:"deadline" validate:"required,datetime=2006-01-02"`
	Status      string `json:"status" validate:"omitempty,oneof=planning active completed cancelled"`
}

// ChangeStatusRequest - запрос на смену статуса проекта
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignRequest - назначение одного сотрудника (employee_id) или
// пакетное назначение (employee_ids).
type AssignRequest struct {
	EmployeeID  *int64  `json:"employee_id" validate:"required_without=EmployeeIDs,excluded_with=EmployeeIDs,omitempty,gt=0"`
	EmployeeIDs []int64 `json:"employee_ids" validate:"required_without=EmployeeID,omitempty,min=1,dive,gt=0"`
	MaxProjects *int    `json:"max_projects" validate:"omitempty,gt=0"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
