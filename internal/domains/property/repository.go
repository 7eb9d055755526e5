package property

import (
	"context"

	"github.com/google/uuid"
)

// FilterOptions lists the distinct values currently present in the
// catalog, used by the frontend to build its filter controls.
type FilterOptions struct {
	Cities        []string `json:"cities"`
	Neighborhoods []string `json:"neighborhoods"`
	PropertyTypes []string `json:"propertyTypes"`
	Amenities     []string `json:"amenities"`
}

type Repository interface {
	Create(ctx context.Context, p *Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id uuid.UUID) error

	Search(ctx context.Context, f Filters) ([]Property, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]Property, int64, error)
	ListFeatured(ctx context.Context, limit int) ([]Property, error)
	ListByCity(ctx context.Context, city string, limit int) ([]Property, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)

	IncrementViews(ctx context.Context, id uuid.UUID) error
	ToggleLike(ctx context.Context, id, userID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
