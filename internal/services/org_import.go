package services

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/pulse-hq/pulse/internal/models"
	"github.com/pulse-hq/pulse/internal/utils"
	"github.com/pulse-hq/pulse/pkg/logger"
	"gorm.io/gorm"
)

// Employees created by the importer get this password until their first reset.
const importInitialPassword = "InitialPassword123!"

// OrgNode is one entry of the hierarchical org-chart JSON: a person and their
// direct reports. The synthetic top node has ID "root" and is skipped.
type OrgNode struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Children []OrgNode `json:"children"`
}

type OrgImportService struct {
	db *gorm.DB
}

func NewOrgImportService(db *gorm.DB) *OrgImportService {
	return &OrgImportService{db: db}
}

// ImportFile loads the org chart JSON and imports it in a single transaction.
// Returns the number of employees processed.
func (s *OrgImportService) ImportFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var root OrgNode
	if err := json.Unmarshal(data, &root); err != nil {
		return 0, err
	}
	return s.Import(&root)
}

// Import walks the hierarchy depth-first, creating or updating one employee
// per node with a supervisor link to its parent. The whole walk runs in one
// transaction: a partial hierarchy is never persisted.
func (s *OrgImportService) Import(root *OrgNode) (int, error) {
	processed := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if root.ID == "root" {
			for i := range root.Children {
				if err := s.processNode(tx, &root.Children[i], nil, &processed); err != nil {
					return err
				}
			}
			return nil
		}
		return s.processNode(tx, root, nil, &processed)
	})
	return processed, err
}

func (s *OrgImportService) processNode(tx *gorm.DB, node *OrgNode, supervisor *models.Employee, processed *int) error {
	firstName, lastName := splitName(node.Name)
	username := usernameFor(node)
	if username == "" {
		return errors.New("node has neither email nor id: " + node.Name)
	}

	employee, err := s.upsertEmployee(tx, node, username, firstName, lastName, supervisor)
	if err != nil {
		return err
	}
	*processed++
	logger.Debug().Str("employee", node.Name).Msg("processed org node")

	for i := range node.Children {
		if err := s.processNode(tx, &node.Children[i], employee, processed); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrgImportService) upsertEmployee(tx *gorm.DB, node *OrgNode, username, firstName, lastName string, supervisor *models.Employee) (*models.Employee, error) {
	var supervisorID *uint
	if supervisor != nil {
		supervisorID = &supervisor.ID
	}

	// Re-runs match on email so the importer never duplicates people.
	if node.Email != "" {
		var existing models.Employee
		err := tx.Joins("JOIN users ON users.id = employees.user_id").
			Where("users.email = ?", node.Email).
			First(&existing).Error
		if err == nil {
			existing.SupervisorID = supervisorID
			if err := tx.Save(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	hash, err := utils.HashPassword(importInitialPassword)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:  username,
		Password:  hash,
		Email:     node.Email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      "user",
		AuthType:  "local",
		IsActive:  true,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}

	employee := models.Employee{
		UserID:       user.ID,
		SupervisorID: supervisorID,
	}
	if err := tx.Create(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// splitName normalizes whitespace and splits "First Middle Last" into first
// name and the rest.
func splitName(raw string) (string, string) {
	parts := strings.Fields(strings.ReplaceAll(raw, "\n", " "))
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// usernameFor derives a username from the email local part, falling back to a
// prefix of the node id.
func usernameFor(node *OrgNode) string {
	if node.Email != "" {
		return strings.SplitN(node.Email, "@", 2)[0]
	}
	if node.ID == "" {
		return ""
	}
	id := node.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "emp_" + id
}
