package services

import (
	"encoding/json"
	"testing"

	"github.com/pulse-hq/pulse/internal/models"
)

func TestTrackedModelNames(t *testing.T) {
	names := []string{ModelDesignation, ModelLevel, ModelEmployee, ModelProject, ModelTask}
	expected := []string{"designation", "level", "employee", "project", "task"}

	for i, name := range names {
		if name != expected[i] {
			t.Errorf("model name = %q, expected %q", name, expected[i])
		}
	}

	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			t.Errorf("model name %q is not unique", name)
		}
		seen[name] = true
	}
}

func TestChangeActions(t *testing.T) {
	if models.ChangeActionCreate != "create" {
		t.Errorf("ChangeActionCreate = %q, expected %q", models.ChangeActionCreate, "create")
	}
	if models.ChangeActionUpdate != "update" {
		t.Errorf("ChangeActionUpdate = %q, expected %q", models.ChangeActionUpdate, "update")
	}
	if models.ChangeActionDelete != "delete" {
		t.Errorf("ChangeActionDelete = %q, expected %q", models.ChangeActionDelete, "delete")
	}
}

func TestChangeRecord_SnapshotRoundTrip(t *testing.T) {
	snapshot := map[string]interface{}{"id": float64(1), "title": "Senior Engineer"}
	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	record := models.ChangeRecord{
		Model:    ModelDesignation,
		RecordID: 1,
		Action:   models.ChangeActionUpdate,
		Snapshot: string(data),
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(record.Snapshot), &decoded); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if decoded["title"] != "Senior Engineer" {
		t.Errorf("snapshot title = %v, expected %q", decoded["title"], "Senior Engineer")
	}
}
