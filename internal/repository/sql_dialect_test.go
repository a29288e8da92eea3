package repository

import "testing"

func TestLikeOperatorDefaultsToLike(t *testing.T) {
	db := setupRepoDB(t)
	if got := likeOperator(db); got != "LIKE" {
		t.Fatalf("expected LIKE for sqlite, got %s", got)
	}
	if got := likeOperator(nil); got != "LIKE" {
		t.Fatalf("expected LIKE for nil db, got %s", got)
	}
}

func TestBuildSearchLikeCondition(t *testing.T) {
	db := setupRepoDB(t)

	condition, argCount := buildSearchLikeCondition(db, []string{"name", "brand", ""})
	if argCount != 2 {
		t.Fatalf("expected 2 args, got %d", argCount)
	}
	if condition != "name LIKE ? OR brand LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}

	condition, argCount = buildSearchLikeCondition(db, nil)
	if condition != "" || argCount != 0 {
		t.Fatalf("expected empty condition, got %q/%d", condition, argCount)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%evelyne%", 3)
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	for _, arg := range args {
		if arg != "%evelyne%" {
			t.Fatalf("unexpected arg %v", arg)
		}
	}
}
