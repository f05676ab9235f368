package services

import (
	"testing"

	"github.com/pulse-hq/pulse/internal/models"
)

func TestTaskStatuses(t *testing.T) {
	statuses := []string{
		models.TaskStatusPending,
		models.TaskStatusInProgress,
		models.TaskStatusCompleted,
		models.TaskStatusAborted,
	}
	expected := []string{"pending", "in_progress", "completed", "aborted"}

	for i, status := range statuses {
		if status != expected[i] {
			t.Errorf("status = %q, expected %q", status, expected[i])
		}
	}
}

func TestTaskListRequest_Filters(t *testing.T) {
	projectID := uint(3)
	assignee := uint(7)
	req := TaskListRequest{
		ProjectID:    &projectID,
		Status:       models.TaskStatusInProgress,
		AssignedToID: &assignee,
	}

	if *req.ProjectID != 3 {
		t.Errorf("ProjectID = %d, expected 3", *req.ProjectID)
	}
	if req.Status != "in_progress" {
		t.Errorf("Status = %q, expected %q", req.Status, "in_progress")
	}
	if *req.AssignedToID != 7 {
		t.Errorf("AssignedToID = %d, expected 7", *req.AssignedToID)
	}
	if req.CreatedByID != nil || req.AssignedByID != nil {
		t.Error("unset filters should stay nil")
	}
}

func TestTaskRequest_Structure(t *testing.T) {
	start := "2025-01-06"
	req := TaskRequest{
		ProjectID:     1,
		Title:         "Wire up session ledger",
		Status:        models.TaskStatusPending,
		PlannedStart:  &start,
		AssignedToIDs: []uint{2, 3},
	}

	if req.ProjectID != 1 {
		t.Errorf("ProjectID = %d, expected 1", req.ProjectID)
	}
	if req.Title != "Wire up session ledger" {
		t.Errorf("Title = %q, expected %q", req.Title, "Wire up session ledger")
	}
	if len(req.AssignedToIDs) != 2 {
		t.Errorf("expected 2 assignees, got %d", len(req.AssignedToIDs))
	}
	if req.PlannedStart == nil || *req.PlannedStart != "2025-01-06" {
		t.Errorf("PlannedStart = %v, expected %q", req.PlannedStart, "2025-01-06")
	}
}
