package infant

import "context"

type Repository interface {
	Create(ctx context.Context, i *Infant) error

	// GetByID returns ErrInfantNotFound if no row matches.
	GetByID(ctx context.Context, id uint) (*Infant, error)

	Update(ctx context.Context, i *Infant) error

	// Delete removes the infant; its visits and growth checks cascade.
	Delete(ctx context.Context, id uint) error

	// List returns the display listing joined with mother and area names,
	// ordered by paternal then maternal surname.
	List(ctx context.Context) ([]Listing, error)

	// Refs returns the short selector form of all infants, optionally
	// restricted to one mother (motherID zero means all).
	Refs(ctx context.Context, motherID uint) ([]Ref, error)

	CreateGrowthCheck(ctx context.Context, g *GrowthCheck) error

	// GrowthHistory returns an infant's checks, most recent first.
	GrowthHistory(ctx context.Context, infantID uint) ([]GrowthCheck, error)
}
