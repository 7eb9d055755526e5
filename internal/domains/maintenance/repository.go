package maintenance

import (
	"context"

	"github.com/google/uuid"
)

// ListFilters narrows maintenance listings. Exactly one of the ID
// filters is set for tenant/landlord scoping; none for admin/support.
type ListFilters struct {
	TenantID   *uuid.UUID
	LandlordID *uuid.UUID
	PropertyID *uuid.UUID
	Status     string
	Priority   string
}

type Repository interface {
	Create(ctx context.Context, m *Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	List(ctx context.Context, f ListFilters, page, limit int) ([]Request, int64, error)
	ListRecent(ctx context.Context, f ListFilters, limit int) ([]Request, error)
	Update(ctx context.Context, m *Request) error
	Delete(ctx context.Context, id uuid.UUID) error
}
