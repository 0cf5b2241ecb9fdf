package services

import (
	"testing"

	"gorm.io/datatypes"
)

func TestIsKeyEmployee_MatchesRoleTypeAndTitleVocabulary(t *testing.T) {
	cases := []struct {
		name     string
		employee rawEmployee
		want     bool
	}{
		{"founder role type", rawEmployee{Person: "urn:harmonic:person:1", RoleType: "FOUNDER"}, true},
		{"co-founder title", rawEmployee{Person: "urn:harmonic:person:2", Title: "Co-Founder & CEO"}, true},
		{"cto title case insensitive", rawEmployee{Person: "urn:harmonic:person:3", Title: "CTO"}, true},
		{"chief executive officer", rawEmployee{Person: "urn:harmonic:person:4", Title: "Chief Executive Officer"}, true},
		{"plain engineer", rawEmployee{Person: "urn:harmonic:person:5", Title: "Software Engineer", RoleType: "EMPLOYEE"}, false},
		{"empty title non-founder", rawEmployee{Person: "urn:harmonic:person:6", RoleType: "EMPLOYEE"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isKeyEmployee(tc.employee); got != tc.want {
				t.Fatalf("isKeyEmployee(%+v) = %v, want %v", tc.employee, got, tc.want)
			}
		})
	}
}

func TestParseEntityURNID(t *testing.T) {
	cases := []struct {
		urn    string
		wantID int64
		wantOK bool
	}{
		{"urn:harmonic:person:123", 123, true},
		{"person:9", 9, true},
		{"urn:harmonic:person:", 0, false},
		{"urn:harmonic:person:abc", 0, false},
		{"noseparator", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		id, ok := parseEntityURNID(tc.urn)
		if id != tc.wantID || ok != tc.wantOK {
			t.Fatalf("parseEntityURNID(%q) = (%d, %v), want (%d, %v)", tc.urn, id, ok, tc.wantID, tc.wantOK)
		}
	}
}

func TestDecodeEmployees_InvalidJSONReturnsNil(t *testing.T) {
	if got := decodeEmployees(datatypes.JSON(`{"not": "an array"}`)); got != nil {
		t.Fatalf("expected nil for non-array payload, got %v", got)
	}
	if got := decodeEmployees(nil); got != nil {
		t.Fatalf("expected nil for empty payload, got %v", got)
	}
}

func TestExtractKeyEmployees_DedupesByResolvedName(t *testing.T) {
	employees := []rawEmployee{
		{Person: "urn:harmonic:person:1", Title: "Founder", RoleType: "FOUNDER"},
		{Person: "urn:harmonic:person:2", Title: "CEO"},
		{Person: "urn:harmonic:person:3", Title: "Engineer", RoleType: "EMPLOYEE"},
	}
	enriched := []*HarmonicPerson{
		{EntityUrn: "urn:harmonic:person:1", FullName: "Jane Doe"},
		{EntityUrn: "urn:harmonic:person:2", FullName: "Jane Doe"},
		{EntityUrn: "urn:harmonic:person:3", FullName: "Sam Smith"},
	}

	got := extractKeyEmployees(employees, enriched)
	if len(got) != 1 {
		t.Fatalf("expected 1 key employee after dedup, got %d", len(got))
	}
	if got[0].Person != "Jane Doe" || got[0].Title != "Founder" {
		t.Fatalf("unexpected key employee: %+v", got[0])
	}
}

func TestExtractKeyEmployees_DropsPlaceholderAndUnresolvedNames(t *testing.T) {
	employees := []rawEmployee{
		{Person: "urn:harmonic:person:1", RoleType: "FOUNDER"},
		{Person: "urn:harmonic:person:2", RoleType: "FOUNDER"},
		{Person: "urn:harmonic:person:3", RoleType: "FOUNDER"},
	}
	enriched := []*HarmonicPerson{
		{EntityUrn: "urn:harmonic:person:1", FullName: "-"},
		{EntityUrn: "urn:harmonic:person:2", FullName: ""},
	}

	got := extractKeyEmployees(employees, enriched)
	if len(got) != 0 {
		t.Fatalf("expected no key employees, got %+v", got)
	}
}

func TestExtractKeyEmployees_DefaultsMissingTitle(t *testing.T) {
	employees := []rawEmployee{
		{Person: "urn:harmonic:person:7", RoleType: "FOUNDER"},
	}
	enriched := []*HarmonicPerson{
		{EntityUrn: "urn:harmonic:person:7", FullName: "Alex Founder"},
	}

	got := extractKeyEmployees(employees, enriched)
	if len(got) != 1 {
		t.Fatalf("expected 1 key employee, got %d", len(got))
	}
	if got[0].Title != "-" {
		t.Fatalf("expected placeholder title, got %q", got[0].Title)
	}
}
