package visit

import "context"

type Repository interface {
	Create(ctx context.Context, v *Visit) error

	// GetByID returns ErrVisitNotFound if no row matches.
	GetByID(ctx context.Context, id uint) (*Visit, error)

	Update(ctx context.Context, v *Visit) error

	Delete(ctx context.Context, id uint) error

	// DeleteByAttendee removes all visits attended by one user. Used when
	// the user record itself is deleted.
	DeleteByAttendee(ctx context.Context, userID uint) error

	List(ctx context.Context) ([]Listing, error)

	HistoryByInfant(ctx context.Context, infantID uint) ([]HistoryRow, error)
}
