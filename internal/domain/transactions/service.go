package transactions

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	maxCategoryNameLength = 100
	maxCategoryIconLength = 50
	defaultSummaryDays    = 30
)

type Service struct {
	repo          Repository
	categories    CategoriesCache
	categoriesTTL time.Duration
	now           func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, noopCategoriesCache{}, 0)
}

func NewServiceWithCache(repo Repository, cache CategoriesCache, ttl time.Duration) *Service {
	if cache == nil {
		cache = noopCategoriesCache{}
	}
	return &Service{
		repo:          repo,
		categories:    cache,
		categoriesTTL: ttl,
		now:           time.Now,
	}
}

func (s *Service) ListTransactions(ctx context.Context, userID string, filter ListFilter) ([]TransactionWithCategory, int64, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, 0, invalid("type must be income or expense")
	}
	// A date range applies only when both ends are present.
	if filter.From == nil || filter.To == nil {
		filter.From, filter.To = nil, nil
	}
	if filter.CategoryID != "" && !isUUID(filter.CategoryID) {
		return []TransactionWithCategory{}, 0, nil
	}

	items, total, err := s.repo.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []TransactionWithCategory{}
	}
	return items, total, nil
}

func (s *Service) GetTransaction(ctx context.Context, userID, transactionID string) (*TransactionWithCategory, error) {
	if !isUUID(transactionID) {
		return nil, ErrTransactionNotFound
	}
	return s.repo.GetTransaction(ctx, userID, transactionID)
}

func (s *Service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*TransactionWithCategory, error) {
	if err := validateTransaction(input.Type, input.Amount.IsPositive(), input.Date); err != nil {
		return nil, err
	}

	transaction := Transaction{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Type:        input.Type,
		Amount:      input.Amount.Round(2),
		CategoryID:  normalizeID(input.CategoryID),
		Description: strings.TrimSpace(input.Description),
		Date:        input.Date,
	}

	var created *TransactionWithCategory
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		category, err := s.visibleCategory(ctx, tx, input.UserID, transaction.CategoryID)
		if err != nil {
			return err
		}
		if err := tx.CreateTransaction(ctx, &transaction); err != nil {
			return err
		}
		created = withCategory(transaction, category)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*TransactionWithCategory, error) {
	if !isUUID(input.ID) {
		return nil, ErrTransactionNotFound
	}
	if err := validateTransaction(input.Type, input.Amount.IsPositive(), input.Date); err != nil {
		return nil, err
	}

	var updated *TransactionWithCategory
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetTransaction(ctx, input.UserID, input.ID)
		if err != nil {
			return err
		}

		categoryID := normalizeID(input.CategoryID)
		category, err := s.visibleCategory(ctx, tx, input.UserID, categoryID)
		if err != nil {
			return err
		}

		transaction := current.Transaction
		transaction.Type = input.Type
		transaction.Amount = input.Amount.Round(2)
		transaction.CategoryID = categoryID
		transaction.Description = strings.TrimSpace(input.Description)
		transaction.Date = input.Date
		transaction.UpdatedAt = s.now().UTC()

		if err := tx.UpdateTransaction(ctx, &transaction); err != nil {
			return err
		}
		updated = withCategory(transaction, category)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if !isUUID(transactionID) {
		return ErrTransactionNotFound
	}
	deleted, err := s.repo.DeleteTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}
	return nil
}

// Summary totals income and expenses over [from, to]. Without both bounds it
// covers the last 30 days ending today.
func (s *Service) Summary(ctx context.Context, userID string, from, to *time.Time) (Summary, error) {
	var start, end time.Time
	if from != nil && to != nil {
		start, end = *from, *to
	} else {
		current := s.now().UTC()
		end = time.Date(current.Year(), current.Month(), current.Day(), 0, 0, 0, 0, time.UTC)
		start = end.AddDate(0, 0, -defaultSummaryDays)
	}
	if end.Before(start) {
		return Summary{}, invalid("start_date must be <= end_date")
	}

	var (
		totals    TypeTotals
		breakdown []CategoryAmount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.repo.TypeTotals(gctx, userID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		breakdown, err = s.repo.CategoryTotals(gctx, userID, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	positive := make([]CategoryAmount, 0, len(breakdown))
	for _, item := range breakdown {
		if item.Amount.IsPositive() {
			positive = append(positive, item)
		}
	}

	return Summary{
		StartDate:         start,
		EndDate:           end,
		TotalIncome:       totals.Income,
		TotalExpenses:     totals.Expense,
		Balance:           totals.Income.Sub(totals.Expense),
		CategoryBreakdown: positive,
	}, nil
}

func (s *Service) ListCategories(ctx context.Context, userID string) ([]Category, error) {
	if cached, ok := s.categories.GetByUserID(userID); ok {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}

	if s.categoriesTTL > 0 {
		s.categories.SetByUserID(userID, categories, s.categoriesTTL)
	}
	return categories, nil
}

func (s *Service) GetCategory(ctx context.Context, userID, categoryID string) (*Category, error) {
	if !isUUID(categoryID) {
		return nil, ErrCategoryNotFound
	}
	return s.repo.GetCategory(ctx, userID, categoryID)
}

func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	name, err := validateCategoryName(input.Name)
	if err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, invalid("type must be income or expense")
	}
	icon, err := validateCategoryIcon(input.Icon)
	if err != nil {
		return nil, err
	}
	color := DefaultCategoryColor
	if input.Color != nil {
		if color, err = normalizeCategoryColor(*input.Color); err != nil {
			return nil, err
		}
	}

	userID := input.UserID
	category := Category{
		ID:     uuid.NewString(),
		UserID: &userID,
		Name:   name,
		Type:   input.Type,
		Icon:   icon,
		Color:  color,
	}
	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}

	s.categories.DeleteByUserID(input.UserID)
	return &category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*Category, error) {
	category, err := s.GetCategory(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if !category.OwnedBy(input.UserID) {
		return nil, ErrCategoryReadOnly
	}

	if input.Name != nil {
		if category.Name, err = validateCategoryName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, invalid("type must be income or expense")
		}
		category.Type = *input.Type
	}
	if input.Icon != nil {
		if category.Icon, err = validateCategoryIcon(*input.Icon); err != nil {
			return nil, err
		}
	}
	if input.Color != nil {
		if category.Color, err = normalizeCategoryColor(*input.Color); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.categories.DeleteByUserID(input.UserID)
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	category, err := s.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if !category.OwnedBy(userID) {
		return ErrCategoryReadOnly
	}

	deleted, err := s.repo.DeleteCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}

	s.categories.DeleteByUserID(userID)
	return nil
}

func (s *Service) visibleCategory(ctx context.Context, repo Repository, userID string, categoryID *string) (*Category, error) {
	if categoryID == nil {
		return nil, nil
	}
	if !isUUID(*categoryID) {
		return nil, ErrCategoryNotFound
	}
	return repo.GetCategory(ctx, userID, *categoryID)
}

func withCategory(transaction Transaction, category *Category) *TransactionWithCategory {
	result := &TransactionWithCategory{Transaction: transaction}
	if category != nil {
		name, color := category.Name, category.Color
		result.CategoryName = &name
		result.CategoryColor = &color
	}
	return result
}

func validateTransaction(kind TransactionType, positiveAmount bool, date time.Time) error {
	if !kind.Valid() {
		return invalid("type must be income or expense")
	}
	if !positiveAmount {
		return invalid("amount must be positive")
	}
	if date.IsZero() {
		return invalid("date is required")
	}
	return nil
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name is required")
	}
	if len([]rune(name)) > maxCategoryNameLength {
		return "", invalid("name must be at most %d characters", maxCategoryNameLength)
	}
	return name, nil
}

func validateCategoryIcon(icon string) (string, error) {
	icon = strings.TrimSpace(icon)
	if len([]rune(icon)) > maxCategoryIconLength {
		return "", invalid("icon must be at most %d characters", maxCategoryIconLength)
	}
	return icon, nil
}

var categoryColorRegex = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func normalizeCategoryColor(value string) (string, error) {
	color := strings.ToUpper(strings.TrimSpace(value))
	if !categoryColorRegex.MatchString(color) {
		return "", invalid("color must be a #RRGGBB hex value")
	}
	return color, nil
}

func normalizeID(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func isUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
