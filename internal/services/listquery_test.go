package services

import (
	"testing"
)

func TestListQuery_NormalizeDefaults(t *testing.T) {
	q := &ListQuery{}
	q.normalize()

	if q.Page != 1 {
		t.Errorf("Page = %d, expected 1", q.Page)
	}
	if q.PageSize != 10 {
		t.Errorf("PageSize = %d, expected 10", q.PageSize)
	}
}

func TestListQuery_NormalizeKeepsExplicit(t *testing.T) {
	q := &ListQuery{Page: 3, PageSize: 25}
	q.normalize()

	if q.Page != 3 {
		t.Errorf("Page = %d, expected 3", q.Page)
	}
	if q.PageSize != 25 {
		t.Errorf("PageSize = %d, expected 25", q.PageSize)
	}
}

func TestListQuery_Offset(t *testing.T) {
	tests := []struct {
		page     int
		pageSize int
		expected int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
	}

	for _, tt := range tests {
		q := &ListQuery{Page: tt.page, PageSize: tt.pageSize}
		if got := q.offset(); got != tt.expected {
			t.Errorf("offset(page=%d, size=%d) = %d, expected %d", tt.page, tt.pageSize, got, tt.expected)
		}
	}
}

func TestListResponse_Structure(t *testing.T) {
	resp := &ListResponse{
		Total:    42,
		Page:     2,
		PageSize: 10,
		Items:    nil,
	}

	if resp.Total != 42 {
		t.Errorf("Total = %d, expected 42", resp.Total)
	}
	if resp.Page != 2 {
		t.Errorf("Page = %d, expected 2", resp.Page)
	}
	if resp.PageSize != 10 {
		t.Errorf("PageSize = %d, expected 10", resp.PageSize)
	}
	if resp.Items != nil {
		t.Error("Items should be nil")
	}
}
