package views

import (
	"context"
	"testing"

	"github.com/preston-bernstein/transfer-console/internal/domain/nationalities"
)

func TestLoadLookupsJoinsBothLists(t *testing.T) {
	api := &fakeAPI{
		clubs:         sampleClubs(),
		nationalities: []nationalities.Nationality{{ID: 1, Name: "Spain"}},
	}
	got, err := LoadLookups(context.Background(), api)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Clubs) != 3 || len(got.Nationalities) != 1 {
		t.Fatalf("unexpected lookups %+v", got)
	}
	if got.ClubName(2) != "Ajax" || got.ClubName(99) != "" {
		t.Fatal("club name lookup mismatch")
	}
}

func TestLoadLookupsFailsWhenEitherFails(t *testing.T) {
	api := &fakeAPI{clubsErr: context.DeadlineExceeded}
	if _, err := LoadLookups(context.Background(), api); err == nil {
		t.Fatal("expected error")
	}
}
