package services

import (
	"testing"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		raw   string
		first string
		last  string
	}{
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"Ada", "Ada", ""},
		{"  Ada   King Lovelace  ", "Ada", "King Lovelace"},
		{"Ada\nLovelace", "Ada", "Lovelace"},
		{"", "", ""},
	}

	for _, tt := range tests {
		first, last := splitName(tt.raw)
		if first != tt.first || last != tt.last {
			t.Errorf("splitName(%q) = (%q, %q), expected (%q, %q)", tt.raw, first, last, tt.first, tt.last)
		}
	}
}

func TestUsernameFor(t *testing.T) {
	tests := []struct {
		name     string
		node     OrgNode
		expected string
	}{
		{"email local part", OrgNode{ID: "abc", Email: "ada@example.com"}, "ada"},
		{"short id fallback", OrgNode{ID: "abc"}, "emp_abc"},
		{"long id truncated", OrgNode{ID: "0123456789abcdef"}, "emp_01234567"},
		{"empty node", OrgNode{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := usernameFor(&tt.node); got != tt.expected {
				t.Errorf("usernameFor() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestOrgNode_Structure(t *testing.T) {
	node := OrgNode{
		ID:    "n1",
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Children: []OrgNode{
			{ID: "n2", Name: "Charles Babbage"},
		},
	}

	if node.ID != "n1" {
		t.Errorf("ID = %q, expected %q", node.ID, "n1")
	}
	if len(node.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(node.Children))
	}
	if node.Children[0].Name != "Charles Babbage" {
		t.Errorf("child Name = %q, expected %q", node.Children[0].Name, "Charles Babbage")
	}
}
