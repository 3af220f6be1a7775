package worksite

import "context"

type WorksiteRepository interface {
	Create(ctx context.Context, site Worksite) (Worksite, error)

	// GetByCode resolves a public SITE001-style code. Returns
	// ErrWorksiteNotFound when the code does not resolve.
	GetByCode(ctx context.Context, worksiteID string) (Worksite, error)

	GetByID(ctx context.Context, id string) (Worksite, error)

	List(ctx context.Context, filter WorksiteFilter) ([]Worksite, int64, error)

	Update(ctx context.Context, site Worksite) error

	Delete(ctx context.Context, id string) error
}
