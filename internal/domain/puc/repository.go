package puc

import "context"

type Repository interface {
	Create(ctx context.Context, p *PUC) error
	GetByID(ctx context.Context, pucID uint64) (*PUC, error)
	GetView(ctx context.Context, pucID uint64) (*View, error)
	Save(ctx context.Context, p *PUC) error

	// Search matches term as a substring of first name, last name or status.
	// An empty term lists every PUC ordered by last, first name.
	Search(ctx context.Context, term string) ([]View, error)

	ListCategories(ctx context.Context) ([]Category, error)
	ListCrimeTypes(ctx context.Context) ([]CrimeType, error)
}
