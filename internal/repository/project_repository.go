package repository

import (
	"github.com/staffing-api/internal/snapshot"
	"gorm.io/gorm"
)

// projectRow - строка таблицы projects
type projectRow struct {
	ID          string `gorm:"primaryKey"`
	Position    int
	Name        string
	Description string
	Deadline    string
	Status      string
}

func (projectRow) TableName() string { return "projects" }

// projectMemberRow - участие сотрудника в проекте
type projectMemberRow struct {
	ProjectID  string `gorm:"primaryKey"`
	EmployeeID int64  `gorm:"primaryKey;autoIncrement:false"`
	Position   int
}

func (projectMemberRow) TableName() string { return "project_members" }

type projectRepository struct {
	db *gorm.DB
}

func newProjectRepository(db *gorm.DB) *projectRepository {
	return &projectRepository{db: db}
}

// DeleteAll удаляет проекты вместе с составом команд.
func (r *projectRepository) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&projectMemberRow{}).Error; err != nil {
		return err
	}
	return r.db.Where("1 = 1").Delete(&projectRow{}).Error
}

func (r *projectRepository) CreateAll(records []snapshot.ProjectRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]projectRow, len(records))
	var members []projectMemberRow
	for i, rec := range records {
		rows[i] = projectRow{
			ID:          rec.ProjectID,
			Position:    i,
			Name:        rec.Name,
			Description: rec.Description,
			Deadline:    rec.Deadline,
			Status:      rec.Status,
		}
		for j, id := range rec.TeamMemberIDs {
			members = append(members, projectMemberRow{ProjectID: rec.ProjectID, EmployeeID: id, Position: j})
		}
	}
	if err := r.db.Create(&rows).Error; err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}
	return r.db.Create(&members).Error
}

// List возвращает проекты в исходном порядке с id участников.
func (r *projectRepository) List() ([]snapshot.ProjectRecord, error) {
	var rows []projectRow
	if err := r.db.Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	var members []projectMemberRow
	if err := r.db.Order("project_id ASC, position ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	teams := make(map[string][]int64)
	for _, m := range members {
		teams[m.ProjectID] = append(teams[m.ProjectID], m.EmployeeID)
	}

	out := make([]snapshot.ProjectRecord, 0, len(rows))
	for _, row := range rows {
		team := teams[row.ID]
		if team == nil {
			team = []int64{}
		}
		out = append(out, snapshot.ProjectRecord{
			ProjectID:     row.ID,
			Name:          row.Name,
			Description:   row.Description,
			Deadline:      row.Deadline,
			Status:        row.Status,
			TeamMemberIDs: team,
			TeamSize:      len(team),
		})
	}
	return out, nil
}
