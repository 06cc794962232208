package account

import (
	"context"
	"regexp"
	"strings"
)

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpsertProfile records the identity fields reported by the auth provider.
// Financial settings of an existing profile are left untouched.
func (s *Service) UpsertProfile(ctx context.Context, userID, email, username string) error {
	if userID == "" {
		return invalid("user id is required")
	}

	profile := Profile{UserID: userID, Currency: DefaultCurrency}
	if email != "" {
		profile.Email = &email
	}
	if username != "" {
		profile.Username = &username
	}

	return s.repo.UpsertProfile(ctx, &profile)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*Profile, error) {
	profile, err := s.repo.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.MonthlyIncome != nil {
		if input.MonthlyIncome.IsNegative() {
			return nil, invalid("monthly_income must be >= 0")
		}
		profile.MonthlyIncome = input.MonthlyIncome.Round(2)
	}
	if input.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*input.Currency))
		if !currencyRegex.MatchString(currency) {
			return nil, invalid("currency must be a 3-letter code")
		}
		profile.Currency = currency
	}

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
