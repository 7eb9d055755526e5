package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ListingTypeRent = "rent"
	ListingTypeSale = "sale"
)

const (
	StatusAvailable   = "available"
	StatusPending     = "pending"
	StatusSold        = "sold"
	StatusRented      = "rented"
	StatusMaintenance = "maintenance"
	StatusUnavailable = "unavailable"
)

var ValidStatuses = []string{
	StatusAvailable, StatusPending, StatusSold,
	StatusRented, StatusMaintenance, StatusUnavailable,
}

// RentalDetails is the rent variant of a listing. MinimumStay is in
// months; booking validation converts it to nights.
type RentalDetails struct {
	RentPrice       decimal.Decimal `json:"rentPrice" db:"rent_price"`
	SecurityDeposit decimal.Decimal `json:"securityDeposit" db:"security_deposit"`
	MinimumStay     int             `json:"minimumStay" db:"minimum_stay"`
	AvailableFrom   *time.Time      `json:"availableFrom,omitempty" db:"available_from"`
	IsFurnished     bool            `json:"isFurnished" db:"is_furnished"`
	PetPolicy       string          `json:"petPolicy" db:"pet_policy"`
	SmokingPolicy   string          `json:"smokingPolicy" db:"smoking_policy"`
}

// SaleDetails is the sale variant of a listing.
type SaleDetails struct {
	SalePrice       decimal.Decimal `json:"salePrice" db:"sale_price"`
	Condition       string          `json:"condition" db:"condition"`
	OwnershipType   string          `json:"ownershipType" db:"ownership_type"`
	HOAFee          decimal.Decimal `json:"hoaFee" db:"hoa_fee"`
	PriceNegotiable bool            `json:"priceNegotiable" db:"price_negotiable"`
	TimeOnMarket    int             `json:"timeOnMarket" db:"time_on_market"`
}

// Property is a listing. Exactly one of Rental/Sale is set, selected by
// ListingType; repositories and transformers switch on the discriminator
// rather than probing optional fields.
type Property struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	Title        string         `json:"title" db:"title"`
	Description  string         `json:"description" db:"description"`
	ListingType  string         `json:"listingType" db:"listing_type"`
	PropertyType string         `json:"propertyType" db:"property_type"`
	Address      string         `json:"address" db:"address"`
	City         string         `json:"city" db:"city"`
	Neighborhood string         `json:"neighborhood" db:"neighborhood"`
	State        string         `json:"state" db:"state"`
	Country      string         `json:"country" db:"country"`
	Latitude     float64        `json:"latitude" db:"latitude"`
	Longitude    float64        `json:"longitude" db:"longitude"`
	Bedrooms     int            `json:"bedrooms" db:"bedrooms"`
	Bathrooms    int            `json:"bathrooms" db:"bathrooms"`
	AreaSize     float64        `json:"areaSize" db:"area_size"`
	AreaUnit     string         `json:"areaUnit" db:"area_unit"`
	Amenities    []string       `json:"amenities" db:"amenities"`
	Images       []string       `json:"images" db:"images"`
	Status       string         `json:"status" db:"status"`
	Featured     bool           `json:"featured" db:"featured"`
	IsVerified   bool           `json:"isVerified" db:"is_verified"`
	OwnerID      uuid.UUID      `json:"ownerId" db:"owner_id"`
	AgentID      *uuid.UUID     `json:"agentId,omitempty" db:"agent_id"`
	Views        int64          `json:"views" db:"views"`
	Likes        []uuid.UUID    `json:"-" db:"likes"`
	Rental       *RentalDetails `json:"rental,omitempty"`
	Sale         *SaleDetails   `json:"sale,omitempty"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`
}

// Price returns the listing price for the active variant.
func (p *Property) Price() decimal.Decimal {
	switch p.ListingType {
	case ListingTypeRent:
		if p.Rental != nil {
			return p.Rental.RentPrice
		}
	case ListingTypeSale:
		if p.Sale != nil {
			return p.Sale.SalePrice
		}
	}
	return decimal.Zero
}

// SecurityDeposit returns the deposit for rent listings, falling back
// to the listing price when no deposit was set.
func (p *Property) SecurityDeposit() decimal.Decimal {
	if p.ListingType == ListingTypeRent && p.Rental != nil && p.Rental.SecurityDeposit.IsPositive() {
		return p.Rental.SecurityDeposit
	}
	return p.Price()
}

// MinimumStayNights converts the month-based minimum stay into nights.
func (p *Property) MinimumStayNights() int {
	if p.ListingType != ListingTypeRent || p.Rental == nil {
		return 0
	}
	return p.Rental.MinimumStay * 30
}

func (p *Property) IsLikedBy(userID uuid.UUID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
