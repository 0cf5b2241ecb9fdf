package repos

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/dealflow-backend/internal/types"
)

func seedPerson(t *testing.T, db *gorm.DB, person *types.Person) *types.Person {
	t.Helper()
	if err := db.Create(person).Error; err != nil {
		t.Fatalf("seed person: %v", err)
	}
	return person
}

func TestPersonListCanonical_CollapsesDuplicatesToHighestVisibleRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPersonRepo(db, newTestLogger(t))
	ctx := context.Background()

	seedPerson(t, db, &types.Person{
		SourcePersonID: int64Ptr(500),
		FirstName:      "Jane",
		LastName:       "Doe",
		IsHidden:       boolPtr(true),
		CreatedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	visible := seedPerson(t, db, &types.Person{
		SourcePersonID:   int64Ptr(500),
		FirstName:        "Jane",
		LastName:         "Doe",
		LinkedinHeadline: "Founder at Acme",
		CreatedAt:        time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	})
	seedPerson(t, db, &types.Person{
		FirstName: "No",
		LastName:  "Source",
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	rows, err := repo.ListCanonical(ctx, nil, PersonListFilter{Limit: 10})
	if err != nil {
		t.Fatalf("ListCanonical: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 canonical row, got %d", len(rows))
	}
	if rows[0].ID != visible.ID {
		t.Fatalf("expected canonical id %d, got %d", visible.ID, rows[0].ID)
	}
	if rows[0].LinkedinHeadline != "Founder at Acme" {
		t.Fatalf("expected columns from the canonical row, got headline %q", rows[0].LinkedinHeadline)
	}
}

func TestPersonListCanonical_NameFilterMatchesFirstOrLastName(t *testing.T) {
	db := newTestDB(t)
	repo := NewPersonRepo(db, newTestLogger(t))
	ctx := context.Background()

	seedPerson(t, db, &types.Person{
		SourcePersonID: int64Ptr(1),
		FirstName:      "Jane",
		LastName:       "Doe",
		CreatedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	seedPerson(t, db, &types.Person{
		SourcePersonID: int64Ptr(2),
		FirstName:      "Sam",
		LastName:       "Smith",
		CreatedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	cases := []struct {
		filter string
		want   int
	}{
		{"jane", 1},
		{"SMITH", 1},
		{"doe", 1},
		{"nobody", 0},
		{"", 2},
	}
	for _, tc := range cases {
		rows, err := repo.ListCanonical(ctx, nil, PersonListFilter{Name: tc.filter, Limit: 10})
		if err != nil {
			t.Fatalf("ListCanonical(%q): %v", tc.filter, err)
		}
		if len(rows) != tc.want {
			t.Fatalf("filter %q: expected %d rows, got %d", tc.filter, tc.want, len(rows))
		}
	}
}

func TestPersonRepo_HideBySourceIDsHidesEveryDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewPersonRepo(db, newTestLogger(t))
	ctx := context.Background()

	seedPerson(t, db, &types.Person{
		SourcePersonID: int64Ptr(500),
		FirstName:      "Jane",
		CreatedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	seedPerson(t, db, &types.Person{
		SourcePersonID: int64Ptr(500),
		FirstName:      "Jane",
		CreatedAt:      time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	})

	affected, err := repo.HideBySourceIDs(ctx, nil, []int64{500})
	if err != nil {
		t.Fatalf("HideBySourceIDs: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 rows hidden, got %d", affected)
	}

	rows, err := repo.ListCanonical(ctx, nil, PersonListFilter{Limit: 10})
	if err != nil {
		t.Fatalf("ListCanonical: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected hidden people excluded from listing, got %+v", rows)
	}
}

func TestPersonRepo_UpdateRelevenceBySourceIDPropagates(t *testing.T) {
	db := newTestDB(t)
	repo := NewPersonRepo(db, newTestLogger(t))
	ctx := context.Background()

	seedPerson(t, db, &types.Person{
		SourcePersonID: int64Ptr(500),
		FirstName:      "Jane",
		CreatedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	seedPerson(t, db, &types.Person{
		SourcePersonID: int64Ptr(500),
		FirstName:      "Jane",
		CreatedAt:      time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	})

	affected, err := repo.UpdateRelevenceBySourceID(ctx, nil, 500, "qualified")
	if err != nil {
		t.Fatalf("UpdateRelevenceBySourceID: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 rows updated, got %d", affected)
	}

	var stages []string
	if err := db.Model(&types.Person{}).Where("source_person_id = ?", 500).Pluck("relevence_stage", &stages).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	for _, stage := range stages {
		if stage != "qualified" {
			t.Fatalf("expected propagated stage, got %q", stage)
		}
	}
}
