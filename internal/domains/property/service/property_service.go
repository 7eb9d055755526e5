package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rentora-backend/internal/domains/activity"
	"rentora-backend/internal/domains/property"
	"rentora-backend/internal/domains/user"
	"rentora-backend/pkg/logger"
)

type PropertyService struct {
	repo     property.Repository
	recorder activity.Recorder
}

func NewPropertyService(repo property.Repository, recorder activity.Recorder) *PropertyService {
	return &PropertyService{repo: repo, recorder: recorder}
}

func (s *PropertyService) Create(ctx context.Context, ownerID uuid.UUID, req property.CreatePropertyRequest) (*property.Property, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &property.Property{
		Title:        req.Title,
		Description:  req.Description,
		ListingType:  req.ListingType,
		PropertyType: req.PropertyType,
		Address:      req.Address,
		City:         req.City,
		Neighborhood: req.Neighborhood,
		State:        req.State,
		Country:      req.Country,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		AreaSize:     req.AreaSize,
		AreaUnit:     req.AreaUnit,
		Amenities:    req.Amenities,
		Images:       req.Images,
		Status:       property.StatusAvailable,
		OwnerID:      ownerID,
		Likes:        []uuid.UUID{},
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	switch req.ListingType {
	case property.ListingTypeRent:
		p.Rental = &property.RentalDetails{
			RentPrice:       req.Rental.RentPrice,
			SecurityDeposit: req.Rental.SecurityDeposit,
			MinimumStay:     req.Rental.MinimumStay,
			AvailableFrom:   req.Rental.AvailableFrom,
			IsFurnished:     req.Rental.IsFurnished,
			PetPolicy:       req.Rental.PetPolicy,
			SmokingPolicy:   req.Rental.SmokingPolicy,
		}
	case property.ListingTypeSale:
		p.Sale = &property.SaleDetails{
			SalePrice:       req.Sale.SalePrice,
			Condition:       req.Sale.Condition,
			OwnershipType:   req.Sale.OwnershipType,
			HOAFee:          req.Sale.HOAFee,
			PriceNegotiable: req.Sale.PriceNegotiable,
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, ownerID, activity.ActionPropertyCreated,
		fmt.Sprintf("listed %q in %s", p.Title, p.City), &p.ID, entityProperty())

	return p, nil
}

// GetByID fetches a listing and bumps its view counter. Every fetch
// counts a view; counter failures are logged, never surfaced.
func (s *PropertyService) GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*property.PropertyDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		logger.Error("failed to increment property views", err)
	} else {
		p.Views++
	}

	return s.toDTO(p, viewerID), nil
}

func (s *PropertyService) Update(ctx context.Context, id, callerID uuid.UUID, callerRole string, req property.UpdatePropertyRequest) (*property.Property, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(p, callerID, callerRole); err != nil {
		return nil, err
	}

	applyUpdates(p, req)
	if req.Status != nil {
		if !property.IsValidStatus(*req.Status) {
			return nil, property.ErrInvalidStatus
		}
		p.Status = *req.Status
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, callerID, activity.ActionPropertyUpdated,
		fmt.Sprintf("updated %q", p.Title), &p.ID, entityProperty())

	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, id, callerID uuid.UUID, callerRole string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(p, callerID, callerRole); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, callerID, activity.ActionPropertyDeleted,
		fmt.Sprintf("removed %q", p.Title), &p.ID, entityProperty())
	return nil
}

func (s *PropertyService) Search(ctx context.Context, f property.Filters, viewerID *uuid.UUID) ([]property.PropertyDTO, int64, error) {
	items, total, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return s.toDTOs(items, viewerID), total, nil
}

func (s *PropertyService) ListMine(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]property.Property, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 12
	}
	return s.repo.ListByOwner(ctx, ownerID, page, limit)
}

func (s *PropertyService) ListFeatured(ctx context.Context, limit int, viewerID *uuid.UUID) ([]property.PropertyDTO, error) {
	if limit < 1 || limit > 50 {
		limit = 8
	}
	items, err := s.repo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(items, viewerID), nil
}

func (s *PropertyService) ListByCity(ctx context.Context, city string, limit int, viewerID *uuid.UUID) ([]property.PropertyDTO, error) {
	if limit < 1 || limit > 50 {
		limit = 12
	}
	items, err := s.repo.ListByCity(ctx, city, limit)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(items, viewerID), nil
}

func (s *PropertyService) FilterOptions(ctx context.Context) (*property.FilterOptions, error) {
	return s.repo.FilterOptions(ctx)
}

func (s *PropertyService) ToggleLike(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	return s.repo.ToggleLike(ctx, id, userID)
}

// authorize permits the owner and admins only.
func (s *PropertyService) authorize(p *property.Property, callerID uuid.UUID, callerRole string) error {
	if p.OwnerID != callerID && callerRole != user.RoleAdmin {
		return property.ErrNotOwner
	}
	return nil
}

func (s *PropertyService) toDTO(p *property.Property, viewerID *uuid.UUID) *property.PropertyDTO {
	dto := &property.PropertyDTO{
		Property:  *p,
		LikeCount: len(p.Likes),
	}
	if viewerID != nil {
		dto.IsLiked = p.IsLikedBy(*viewerID)
	}
	return dto
}

func (s *PropertyService) toDTOs(items []property.Property, viewerID *uuid.UUID) []property.PropertyDTO {
	dtos := make([]property.PropertyDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *s.toDTO(&items[i], viewerID))
	}
	return dtos
}

func applyUpdates(p *property.Property, req property.UpdatePropertyRequest) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.PropertyType != nil {
		p.PropertyType = *req.PropertyType
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.Neighborhood != nil {
		p.Neighborhood = *req.Neighborhood
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.Country != nil {
		p.Country = *req.Country
	}
	if req.Latitude != nil {
		p.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		p.Longitude = *req.Longitude
	}
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = *req.Bathrooms
	}
	if req.AreaSize != nil {
		p.AreaSize = *req.AreaSize
	}
	if req.AreaUnit != nil {
		p.AreaUnit = *req.AreaUnit
	}
	if req.Amenities != nil {
		p.Amenities = req.Amenities
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}

	if p.ListingType == property.ListingTypeRent && req.Rental != nil && p.Rental != nil {
		p.Rental.RentPrice = req.Rental.RentPrice
		p.Rental.SecurityDeposit = req.Rental.SecurityDeposit
		p.Rental.MinimumStay = req.Rental.MinimumStay
		if req.Rental.AvailableFrom != nil {
			p.Rental.AvailableFrom = req.Rental.AvailableFrom
		}
		p.Rental.IsFurnished = req.Rental.IsFurnished
		p.Rental.PetPolicy = req.Rental.PetPolicy
		p.Rental.SmokingPolicy = req.Rental.SmokingPolicy
	}
	if p.ListingType == property.ListingTypeSale && req.Sale != nil && p.Sale != nil {
		p.Sale.SalePrice = req.Sale.SalePrice
		p.Sale.Condition = req.Sale.Condition
		p.Sale.OwnershipType = req.Sale.OwnershipType
		p.Sale.HOAFee = req.Sale.HOAFee
		p.Sale.PriceNegotiable = req.Sale.PriceNegotiable
	}
}

func entityProperty() *string {
	e := activity.EntityProperty
	return &e
}
