package insights

import "context"

type Repository interface {
	ListRecords(ctx context.Context, userID string) ([]Record, error)
}
