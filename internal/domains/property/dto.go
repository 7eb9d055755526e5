package property

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type RentalDetailsRequest struct {
	RentPrice       decimal.Decimal `json:"rentPrice"`
	SecurityDeposit decimal.Decimal `json:"securityDeposit"`
	MinimumStay     int             `json:"minimumStay"`
	AvailableFrom   *time.Time      `json:"availableFrom"`
	IsFurnished     bool            `json:"isFurnished"`
	PetPolicy       string          `json:"petPolicy"`
	SmokingPolicy   string          `json:"smokingPolicy"`
}

func (r RentalDetailsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RentPrice, validation.Required, validation.By(positiveDecimal)),
		validation.Field(&r.SecurityDeposit, validation.By(nonNegativeDecimal)),
		validation.Field(&r.MinimumStay, validation.Min(0), validation.Max(60)),
		validation.Field(&r.PetPolicy, validation.In("allowed", "not_allowed", "negotiable")),
		validation.Field(&r.SmokingPolicy, validation.In("allowed", "not_allowed", "outside_only")),
	)
}

type SaleDetailsRequest struct {
	SalePrice       decimal.Decimal `json:"salePrice"`
	Condition       string          `json:"condition"`
	OwnershipType   string          `json:"ownershipType"`
	HOAFee          decimal.Decimal `json:"hoaFee"`
	PriceNegotiable bool            `json:"priceNegotiable"`
}

func (r SaleDetailsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SalePrice, validation.Required, validation.By(positiveDecimal)),
		validation.Field(&r.Condition, validation.In("new", "like_new", "renovated", "needs_work")),
		validation.Field(&r.OwnershipType, validation.In("freehold", "leasehold", "co_op", "condo")),
		validation.Field(&r.HOAFee, validation.By(nonNegativeDecimal)),
	)
}

type CreatePropertyRequest struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	ListingType  string                `json:"listingType"`
	PropertyType string                `json:"propertyType"`
	Address      string                `json:"address"`
	City         string                `json:"city"`
	Neighborhood string                `json:"neighborhood"`
	State        string                `json:"state"`
	Country      string                `json:"country"`
	Latitude     float64               `json:"latitude"`
	Longitude    float64               `json:"longitude"`
	Bedrooms     int                   `json:"bedrooms"`
	Bathrooms    int                   `json:"bathrooms"`
	AreaSize     float64               `json:"areaSize"`
	AreaUnit     string                `json:"areaUnit"`
	Amenities    []string              `json:"amenities"`
	Images       []string              `json:"images"`
	Rental       *RentalDetailsRequest `json:"rental"`
	Sale         *SaleDetailsRequest   `json:"sale"`
}

func (r CreatePropertyRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&r.Description, validation.Required, validation.Length(10, 5000)),
		validation.Field(&r.ListingType, validation.Required, validation.In(ListingTypeRent, ListingTypeSale)),
		validation.Field(&r.PropertyType, validation.Required, validation.In("apartment", "house", "studio", "villa", "townhouse", "land", "commercial")),
		validation.Field(&r.Address, validation.Required),
		validation.Field(&r.City, validation.Required),
		validation.Field(&r.Country, validation.Required),
		validation.Field(&r.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&r.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&r.Bedrooms, validation.Min(0), validation.Max(50)),
		validation.Field(&r.Bathrooms, validation.Min(0), validation.Max(50)),
		validation.Field(&r.AreaSize, validation.Min(0.0)),
		validation.Field(&r.AreaUnit, validation.In("sqm", "sqft")),
	)
	if err != nil {
		return err
	}

	// The variant payload must match the discriminator.
	switch r.ListingType {
	case ListingTypeRent:
		if r.Rental == nil || r.Sale != nil {
			return ErrMissingVariant
		}
		return r.Rental.Validate()
	case ListingTypeSale:
		if r.Sale == nil || r.Rental != nil {
			return ErrMissingVariant
		}
		return r.Sale.Validate()
	}
	return ErrInvalidListingType
}

// UpdatePropertyRequest carries partial updates. The listing type is
// immutable after creation, so no discriminator here.
type UpdatePropertyRequest struct {
	Title        *string               `json:"title"`
	Description  *string               `json:"description"`
	PropertyType *string               `json:"propertyType"`
	Address      *string               `json:"address"`
	City         *string               `json:"city"`
	Neighborhood *string               `json:"neighborhood"`
	State        *string               `json:"state"`
	Country      *string               `json:"country"`
	Latitude     *float64              `json:"latitude"`
	Longitude    *float64              `json:"longitude"`
	Bedrooms     *int                  `json:"bedrooms"`
	Bathrooms    *int                  `json:"bathrooms"`
	AreaSize     *float64              `json:"areaSize"`
	AreaUnit     *string               `json:"areaUnit"`
	Amenities    []string              `json:"amenities"`
	Images       []string              `json:"images"`
	Status       *string               `json:"status"`
	Featured     *bool                 `json:"featured"`
	Rental       *RentalDetailsRequest `json:"rental"`
	Sale         *SaleDetailsRequest   `json:"sale"`
}

func (r UpdatePropertyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(3, 200)),
		validation.Field(&r.Description, validation.Length(10, 5000)),
		validation.Field(&r.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&r.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&r.Bedrooms, validation.Min(0), validation.Max(50)),
		validation.Field(&r.Bathrooms, validation.Min(0), validation.Max(50)),
		validation.Field(&r.AreaSize, validation.Min(0.0)),
	)
}

// PropertyDTO is the API shape of a listing: the likes set is reduced
// to a count plus whether the caller liked it.
type PropertyDTO struct {
	Property
	LikeCount int  `json:"likeCount"`
	IsLiked   bool `json:"isLiked"`
}

func positiveDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || !d.IsPositive() {
		return validation.NewError("validation_positive", "must be greater than zero")
	}
	return nil
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.IsNegative() {
		return validation.NewError("validation_non_negative", "must not be negative")
	}
	return nil
}
