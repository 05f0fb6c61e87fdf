package mother

import "context"

type Repository interface {
	// Create persists a new mother. Returns ErrMotherAlreadyExists when the
	// natural key (name, paternal surname) is already taken.
	Create(ctx context.Context, m *Mother) error

	// GetByID returns ErrMotherNotFound if no row matches.
	GetByID(ctx context.Context, id uint) (*Mother, error)

	// FindByNaturalKey looks up a mother by exact (name, paternal surname)
	// match. Returns ErrMotherNotFound when absent.
	FindByNaturalKey(ctx context.Context, name, paternalSurname string) (*Mother, error)

	// GetSentinel resolves the bootstrap "Desconocida" row.
	GetSentinel(ctx context.Context) (*Mother, error)

	Update(ctx context.Context, id uint, cmd *UpdateMotherCommand) error

	// List returns all mothers ordered by paternal surname, for selection
	// lists in the visit-booking flow.
	List(ctx context.Context) ([]Mother, error)
}
