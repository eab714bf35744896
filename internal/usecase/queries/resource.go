package queries

import (
	"context"

	"condo-reservations/internal/domain/resource"

	"github.com/google/uuid"
)

//go:generate mockgen -source=resource.go -destination=../../../tests/mock/queries/resource.go -package=queriesmock

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	// List returns resources ordered by name; an empty status lists all of them.
	List(ctx context.Context, status string) ([]*ResourceView, error)
}

type ResourceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, status string) ([]*ResourceView, error)
}

type resourceQueriesImpl struct {
	store ResourceReadStore
}

func NewResourceQueries(store ResourceReadStore) ResourceQueries {
	return &resourceQueriesImpl{store: store}
}

func (q *resourceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *resourceQueriesImpl) List(ctx context.Context, status string) ([]*ResourceView, error) {
	if status != "" {
		if _, err := resource.NewStatus(status); err != nil {
			return nil, err
		}
	}
	return q.store.List(ctx, status)
}
