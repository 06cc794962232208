package transactions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// DefaultCategories are shared by every user and cannot be edited through the API.
var DefaultCategories = []Category{
	{Name: "Salary", Type: TypeIncome, Icon: "briefcase", Color: "#10B981"},
	{Name: "Freelance", Type: TypeIncome, Icon: "laptop", Color: "#059669"},
	{Name: "Investment", Type: TypeIncome, Icon: "trending-up", Color: "#34D399"},

	{Name: "Food & Dining", Type: TypeExpense, Icon: "utensils", Color: "#EF4444"},
	{Name: "Transportation", Type: TypeExpense, Icon: "car", Color: "#F59E0B"},
	{Name: "Shopping", Type: TypeExpense, Icon: "shopping-bag", Color: "#8B5CF6"},
	{Name: "Entertainment", Type: TypeExpense, Icon: "film", Color: "#EC4899"},
	{Name: "Healthcare", Type: TypeExpense, Icon: "heart", Color: "#DC2626"},
	{Name: "Utilities", Type: TypeExpense, Icon: "zap", Color: "#F97316"},
	{Name: "Rent", Type: TypeExpense, Icon: "home", Color: "#0EA5E9"},
	{Name: "Education", Type: TypeExpense, Icon: "book", Color: "#6366F1"},
	{Name: "Other", Type: TypeExpense, Icon: "more-horizontal", Color: "#6B7280"},
}

type DefaultCategoryStore interface {
	// EnsureDefaultCategory creates the shared category unless one with the
	// same name and type exists, and reports whether it inserted a row.
	EnsureDefaultCategory(ctx context.Context, category *Category) (bool, error)
}

// SeedDefaultCategories is idempotent and returns the names it created.
func SeedDefaultCategories(ctx context.Context, store DefaultCategoryStore) ([]string, error) {
	var created []string
	for _, template := range DefaultCategories {
		category := template
		category.ID = uuid.NewString()
		category.UserID = nil
		category.IsDefault = true

		inserted, err := store.EnsureDefaultCategory(ctx, &category)
		if err != nil {
			return created, fmt.Errorf("seed %q: %w", category.Name, err)
		}
		if inserted {
			created = append(created, category.Name)
		}
	}
	return created, nil
}
