package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/pulse-hq/pulse/internal/models"
	"gorm.io/gorm"
)

var ErrNoEmployees = errors.New("no employees found, seed employees first")

// SeedService populates projects and tasks with dummy data for development.
type SeedService struct {
	db *gorm.DB
}

func NewSeedService(db *gorm.DB) *SeedService {
	return &SeedService{db: db}
}

type SeedOptions struct {
	Projects           int
	TasksPerProject    int
	DefaultProject     bool
	DefaultProjectName string
}

// SeedProjects creates the requested projects, each with tasks assigned to
// random employees. With DefaultProject set, one named project is created or
// reused instead.
func (s *SeedService) SeedProjects(opts SeedOptions) error {
	var employees []models.Employee
	if err := s.db.Find(&employees).Error; err != nil {
		return err
	}
	if len(employees) == 0 {
		return ErrNoEmployees
	}

	if opts.DefaultProject {
		project, err := s.getOrCreateDefaultProject(opts.DefaultProjectName, employees)
		if err != nil {
			return err
		}
		return s.createTasks(project, opts.TasksPerProject, employees)
	}

	for i := 0; i < opts.Projects; i++ {
		project, err := s.createProject(i+1, employees)
		if err != nil {
			return err
		}
		if err := s.createTasks(project, opts.TasksPerProject, employees); err != nil {
			return err
		}
	}
	return nil
}

func (s *SeedService) getOrCreateDefaultProject(name string, employees []models.Employee) (*models.Project, error) {
	var project models.Project
	err := s.db.Where("name = ?", name).First(&project).Error
	if err == nil {
		return &project, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	project = s.projectDefaults(name, employees)
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&project).Association("Members").Replace(employees); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *SeedService) createProject(index int, employees []models.Employee) (*models.Project, error) {
	project := s.projectDefaults(fmt.Sprintf("Project %d", index), employees)
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	members := sampleEmployees(employees, 3)
	if err := s.db.Model(&project).Association("Members").Replace(members); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *SeedService) projectDefaults(name string, employees []models.Employee) models.Project {
	start := midnight(time.Now())
	end := start.AddDate(0, 0, 30)
	creator := employees[rand.Intn(len(employees))]

	return models.Project{
		Name:         name,
		Description:  "Auto-generated project",
		PlannedStart: &start,
		PlannedEnd:   &end,
		ActualStart:  &start,
		CreatedByID:  &creator.ID,
	}
}

func (s *SeedService) createTasks(project *models.Project, count int, employees []models.Employee) error {
	statuses := []string{
		models.TaskStatusPending,
		models.TaskStatusInProgress,
		models.TaskStatusCompleted,
	}

	for i := 0; i < count; i++ {
		creator := employees[rand.Intn(len(employees))]
		assignees := sampleEmployees(employees, 2)

		var plannedEnd *time.Time
		if project.PlannedStart != nil {
			end := project.PlannedStart.AddDate(0, 0, 7)
			plannedEnd = &end
		}

		task := models.Task{
			ProjectID:    project.ID,
			Title:        fmt.Sprintf("Task %d - %s", i+1, project.Name),
			Description:  "Auto-generated task",
			PlannedStart: project.PlannedStart,
			PlannedEnd:   plannedEnd,
			Status:       statuses[rand.Intn(len(statuses))],
			CreatedByID:  &creator.ID,
			AssignedByID: &creator.ID,
		}
		if err := s.db.Create(&task).Error; err != nil {
			return err
		}
		if err := s.db.Model(&task).Association("AssignedTo").Replace(assignees); err != nil {
			return err
		}
	}
	return nil
}

func sampleEmployees(employees []models.Employee, k int) []models.Employee {
	if k > len(employees) {
		k = len(employees)
	}
	perm := rand.Perm(len(employees))
	sample := make([]models.Employee, 0, k)
	for _, idx := range perm[:k] {
		sample = append(sample, employees[idx])
	}
	return sample
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
