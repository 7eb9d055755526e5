package property

import (
	"strconv"
	"strings"
	"time"
)

// Sort keys accepted by the search endpoint. Anything else falls back
// to newest-first.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"areaSize":  "area_size",
	"bedrooms":  "bedrooms",
	"views":     "views",
}

// Filters is the parsed search input. Nil/zero fields mean "no filter";
// the builder simply omits them.
type Filters struct {
	ListingType  string
	PropertyType string
	Status       string
	City         string
	Neighborhood string
	Search       string

	Bedrooms     *int
	MinBedrooms  *int
	MaxBedrooms  *int
	Bathrooms    *int
	MinBathrooms *int
	MaxBathrooms *int

	Amenities []string
	Featured  *bool
	Verified  *bool

	// Rent-specific bounds.
	MinRent       *float64
	MaxRent       *float64
	MinStay       *int
	Furnished     *bool
	PetPolicy     string
	AvailableFrom *time.Time

	// Sale-specific bounds.
	MinPrice   *float64
	MaxPrice   *float64
	Condition  string
	Negotiable *bool

	// Geographic circle containment.
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64

	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Normalize applies defaults. Search is public, so the status filter
// defaults to available listings only.
func (f *Filters) Normalize() {
	if f.Status == "" {
		f.Status = StatusAvailable
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 12
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}
}

// HasGeo reports whether a complete center+radius triple was supplied.
func (f *Filters) HasGeo() bool {
	return f.Latitude != nil && f.Longitude != nil && f.RadiusKm != nil && *f.RadiusKm > 0
}

// OrderBy resolves the sort key to a column. The price key depends on
// the listing type: rent sorts by rent price, sale by sale price, and a
// mixed search orders by whichever variant is populated.
func (f *Filters) OrderBy() string {
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}

	if f.SortBy == "price" {
		switch f.ListingType {
		case ListingTypeRent:
			return "rent_price " + direction
		case ListingTypeSale:
			return "sale_price " + direction
		default:
			return "COALESCE(rent_price, sale_price) " + direction
		}
	}

	if col, ok := sortColumns[f.SortBy]; ok {
		return col + " " + direction
	}
	return "created_at " + direction
}

// ParseFilters builds Filters from flat query parameters. Unrecognized
// or malformed values are dropped rather than rejected.
func ParseFilters(query func(string) string) Filters {
	f := Filters{
		ListingType:  query("listingType"),
		PropertyType: query("propertyType"),
		Status:       query("status"),
		City:         query("city"),
		Neighborhood: query("neighborhood"),
		Search:       query("search"),
		PetPolicy:    query("petPolicy"),
		Condition:    query("condition"),
		SortBy:       query("sortBy"),
		SortOrder:    query("sortOrder"),
	}

	f.Bedrooms = parseIntParam(query("bedrooms"))
	f.MinBedrooms = parseIntParam(query("minBedrooms"))
	f.MaxBedrooms = parseIntParam(query("maxBedrooms"))
	f.Bathrooms = parseIntParam(query("bathrooms"))
	f.MinBathrooms = parseIntParam(query("minBathrooms"))
	f.MaxBathrooms = parseIntParam(query("maxBathrooms"))
	f.MinStay = parseIntParam(query("minStay"))

	f.MinRent = parseFloatParam(query("minRent"))
	f.MaxRent = parseFloatParam(query("maxRent"))
	f.MinPrice = parseFloatParam(query("minPrice"))
	f.MaxPrice = parseFloatParam(query("maxPrice"))

	f.Featured = parseBoolParam(query("featured"))
	f.Verified = parseBoolParam(query("isVerified"))
	f.Furnished = parseBoolParam(query("furnished"))
	f.Negotiable = parseBoolParam(query("negotiable"))

	f.Latitude = parseFloatParam(query("lat"))
	f.Longitude = parseFloatParam(query("lng"))
	f.RadiusKm = parseFloatParam(query("radius"))

	if raw := query("amenities"); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				f.Amenities = append(f.Amenities, a)
			}
		}
	}

	if raw := query("availableFrom"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			f.AvailableFrom = &t
		}
	}

	if p := parseIntParam(query("page")); p != nil {
		f.Page = *p
	}
	if l := parseIntParam(query("limit")); l != nil {
		f.Limit = *l
	}

	f.Normalize()
	return f
}

func parseIntParam(raw string) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloatParam(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseBoolParam(raw string) *bool {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
