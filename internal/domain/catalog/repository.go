package catalog

import "context"

type Repository interface {
	ListAreas(ctx context.Context) ([]CareArea, error)

	// GetAreaByName resolves an area by exact name match.
	// Returns ErrAreaNotFound if the name has no matching row.
	GetAreaByName(ctx context.Context, name string) (*CareArea, error)

	ListReasons(ctx context.Context) ([]Reason, error)

	GetReasonByID(ctx context.Context, id uint) (*Reason, error)

	// GetReasonByName resolves a reason by exact name match.
	// Returns ErrReasonNotFound if the name has no matching row.
	GetReasonByName(ctx context.Context, name string) (*Reason, error)
}
