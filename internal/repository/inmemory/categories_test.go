package inmemory

import (
	"testing"
	"time"

	transactionsdomain "smartfinance-go/internal/domain/transactions"
)

func TestCategoriesCacheExpires(t *testing.T) {
	current := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	cache := NewCategoriesCache()
	cache.now = func() time.Time { return current }

	cache.SetByUserID("user-1", []transactionsdomain.Category{{ID: "c1", Name: "Food"}}, time.Minute)
	if items, ok := cache.GetByUserID("user-1"); !ok || len(items) != 1 {
		t.Fatalf("expected cached categories, got %v %v", items, ok)
	}
	if _, ok := cache.GetByUserID("user-2"); ok {
		t.Fatalf("expected miss for another user")
	}

	current = current.Add(time.Minute)
	if _, ok := cache.GetByUserID("user-1"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCategoriesCacheReturnsCopies(t *testing.T) {
	cache := NewCategoriesCache()
	owner := "user-1"
	cache.SetByUserID(owner, []transactionsdomain.Category{{ID: "c1", Name: "Food", UserID: &owner}}, time.Minute)

	first, _ := cache.GetByUserID(owner)
	first[0].Name = "Changed"
	*first[0].UserID = "someone-else"

	second, _ := cache.GetByUserID(owner)
	if second[0].Name != "Food" || *second[0].UserID != "user-1" {
		t.Fatalf("cache entry was mutated: %+v", second[0])
	}
}

func TestCategoriesCacheZeroTTLDeletes(t *testing.T) {
	cache := NewCategoriesCache()
	cache.SetByUserID("user-1", []transactionsdomain.Category{{ID: "c1"}}, time.Minute)
	cache.SetByUserID("user-1", []transactionsdomain.Category{{ID: "c2"}}, 0)

	if _, ok := cache.GetByUserID("user-1"); ok {
		t.Fatalf("expected zero ttl to drop the entry")
	}

	cache.SetByUserID("user-1", []transactionsdomain.Category{{ID: "c1"}}, time.Minute)
	cache.DeleteByUserID("user-1")
	if _, ok := cache.GetByUserID("user-1"); ok {
		t.Fatalf("expected entry deleted")
	}
}
