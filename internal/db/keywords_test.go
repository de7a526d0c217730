package db

import (
	"context"
	"errors"
	"testing"

	"ranktrack/internal/models"
)

func TestFindKeywordIDs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	shopping := &models.Keyword{Text: "running shoes", Type: models.TypeShopping}
	if err := db.CreateKeyword(ctx, shopping); err != nil {
		t.Fatalf("CreateKeyword() error = %v", err)
	}

	// Same text under another type is a distinct keyword
	place := &models.Keyword{Text: "running shoes", Type: models.TypePlace}
	if err := db.CreateKeyword(ctx, place); err != nil {
		t.Fatalf("CreateKeyword() place error = %v", err)
	}
	if place.ID == shopping.ID {
		t.Error("keywords of different types must get distinct ids")
	}

	ids, err := db.FindKeywordIDs(ctx, []string{"running shoes", "no such keyword"}, models.TypeShopping)
	if err != nil {
		t.Fatalf("FindKeywordIDs() error = %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("FindKeywordIDs() returned %d ids, want 1", len(ids))
	}
	if ids["running shoes"] != shopping.ID {
		t.Errorf("FindKeywordIDs() = %v, want id of the shopping keyword", ids)
	}

	ids, err = db.FindKeywordIDs(ctx, nil, models.TypeShopping)
	if err != nil {
		t.Fatalf("FindKeywordIDs(nil) error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("FindKeywordIDs(nil) = %v, want empty", ids)
	}
}

func TestCreateKeywordDuplicate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	keyword := &models.Keyword{Text: "duplicate me", Type: models.TypeCoupang}
	if err := db.CreateKeyword(ctx, keyword); err != nil {
		t.Fatalf("CreateKeyword() error = %v", err)
	}

	again := &models.Keyword{Text: "duplicate me", Type: models.TypeCoupang}
	if err := db.CreateKeyword(ctx, again); !errors.Is(err, ErrDuplicateKeyword) {
		t.Errorf("CreateKeyword() duplicate error = %v, want ErrDuplicateKeyword", err)
	}
}

func TestGetKeywordByID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	keyword := &models.Keyword{Text: "by id", Type: models.TypeShopping}
	if err := db.CreateKeyword(ctx, keyword); err != nil {
		t.Fatalf("CreateKeyword() error = %v", err)
	}

	got, err := db.GetKeywordByID(ctx, keyword.ID)
	if err != nil {
		t.Fatalf("GetKeywordByID() error = %v", err)
	}
	if got.Text != "by id" || got.Type != models.TypeShopping {
		t.Errorf("GetKeywordByID() = %+v", got)
	}
}
