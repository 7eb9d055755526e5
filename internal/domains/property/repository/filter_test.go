package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora-backend/internal/domains/property"
)

func normalized(f property.Filters) property.Filters {
	f.Normalize()
	return f
}

func TestBuildWhereDefaultsToAvailable(t *testing.T) {
	where, args := buildWhere(normalized(property.Filters{}))

	assert.Equal(t, " WHERE status = $1", where)
	require.Len(t, args, 1)
	assert.Equal(t, property.StatusAvailable, args[0])
}

func TestBuildWhereRentPriceRange(t *testing.T) {
	minRent, maxRent := 1000.0, 2000.0
	f := normalized(property.Filters{
		ListingType: property.ListingTypeRent,
		MinRent:     &minRent,
		MaxRent:     &maxRent,
	})

	where, args := buildWhere(f)

	assert.Contains(t, where, "listing_type = $2")
	assert.Contains(t, where, "rent_price >= $3")
	assert.Contains(t, where, "rent_price <= $4")
	assert.Equal(t, []interface{}{property.StatusAvailable, property.ListingTypeRent, minRent, maxRent}, args)
}

func TestBuildWhereRentBoundsIgnoredForSaleSearch(t *testing.T) {
	minRent := 1000.0
	f := normalized(property.Filters{
		ListingType: property.ListingTypeSale,
		MinRent:     &minRent,
	})

	where, _ := buildWhere(f)
	assert.NotContains(t, where, "rent_price")
}

func TestBuildWhereSaleBounds(t *testing.T) {
	minPrice, maxPrice := 250000.0, 400000.0
	negotiable := true
	f := normalized(property.Filters{
		ListingType: property.ListingTypeSale,
		MinPrice:    &minPrice,
		MaxPrice:    &maxPrice,
		Condition:   "new",
		Negotiable:  &negotiable,
	})

	where, args := buildWhere(f)

	assert.Contains(t, where, "sale_price >= $3")
	assert.Contains(t, where, "sale_price <= $4")
	assert.Contains(t, where, "condition = $5")
	assert.Contains(t, where, "price_negotiable = $6")
	assert.Len(t, args, 6)
}

func TestBuildWhereFreeTextSearchReusesOneArg(t *testing.T) {
	f := normalized(property.Filters{Search: "harbor view"})

	where, args := buildWhere(f)

	assert.Equal(t, 4, strings.Count(where, "$2"))
	assert.Contains(t, where, "title ILIKE")
	assert.Contains(t, where, "description ILIKE")
	assert.Contains(t, where, "neighborhood ILIKE")
	assert.Contains(t, where, "city ILIKE")
	assert.Len(t, args, 2)
}

func TestBuildWhereAmenitiesContainsAll(t *testing.T) {
	f := normalized(property.Filters{Amenities: []string{"parking", "gym"}})

	where, args := buildWhere(f)

	assert.Contains(t, where, "amenities @> $2")
	assert.Equal(t, []string{"parking", "gym"}, args[1])
}

func TestBuildWhereGeoBoundingBox(t *testing.T) {
	lat, lng, radius := 40.7128, -74.0060, 5.0
	f := normalized(property.Filters{Latitude: &lat, Longitude: &lng, RadiusKm: &radius})

	where, args := buildWhere(f)

	assert.Contains(t, where, "latitude >= $2")
	assert.Contains(t, where, "latitude <= $3")
	assert.Contains(t, where, "longitude >= $4")
	assert.Contains(t, where, "longitude <= $5")
	require.Len(t, args, 5)

	boundMinLat := args[1].(float64)
	boundMaxLat := args[2].(float64)
	assert.Less(t, boundMinLat, lat)
	assert.Greater(t, boundMaxLat, lat)
}

func TestBuildWhereIncompleteGeoIgnored(t *testing.T) {
	lat := 40.7128
	f := normalized(property.Filters{Latitude: &lat})

	where, _ := buildWhere(f)
	assert.NotContains(t, where, "latitude")
}

func TestApplyGeoFilterDropsCornerPoints(t *testing.T) {
	lat, lng, radius := 40.0, -74.0, 10.0
	f := normalized(property.Filters{Latitude: &lat, Longitude: &lng, RadiusKm: &radius})

	inside := property.Property{Latitude: 40.05, Longitude: -74.0}
	// Inside the bounding box on both axes, but about 11.7km from the
	// center, outside the circle.
	corner := property.Property{Latitude: 40.08, Longitude: -73.91}

	got := applyGeoFilter([]property.Property{inside, corner}, f)
	require.Len(t, got, 1)
	assert.Equal(t, inside.Latitude, got[0].Latitude)
}

func TestGeoSearchTotalExcludesCornerPoints(t *testing.T) {
	lat, lng, radius := 40.0, -74.0, 10.0
	f := normalized(property.Filters{Latitude: &lat, Longitude: &lng, RadiusKm: &radius, Limit: 2})

	boxed := []property.Property{
		{Latitude: 40.05, Longitude: -74.0},
		{Latitude: 39.95, Longitude: -74.0},
		{Latitude: 40.0, Longitude: -74.08},
		// Box corner, roughly 11.7km out.
		{Latitude: 40.08, Longitude: -73.91},
	}

	inCircle := applyGeoFilter(boxed, f)

	page, total := pageSlice(inCircle, 1, f.Limit)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	page, total = pageSlice(inCircle, 2, f.Limit)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, -74.08, page[0].Longitude)
}

func TestPageSliceOutOfRange(t *testing.T) {
	items := []property.Property{{Latitude: 40.0}, {Latitude: 41.0}}

	page, total := pageSlice(items, 5, 10)
	assert.Equal(t, int64(2), total)
	assert.Empty(t, page)
}

func TestOrderByPriceResolvesByListingType(t *testing.T) {
	tests := []struct {
		name        string
		listingType string
		want        string
	}{
		{"rent", property.ListingTypeRent, "rent_price DESC"},
		{"sale", property.ListingTypeSale, "sale_price DESC"},
		{"mixed", "", "COALESCE(rent_price, sale_price) DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := normalized(property.Filters{ListingType: tt.listingType, SortBy: "price"})
			assert.Equal(t, tt.want, f.OrderBy())
		})
	}
}

func TestOrderByUnknownKeyFallsBack(t *testing.T) {
	f := normalized(property.Filters{SortBy: "owner_id; DROP TABLE properties"})
	assert.Equal(t, "created_at DESC", f.OrderBy())
}

func TestParseFiltersDropsMalformedValues(t *testing.T) {
	params := map[string]string{
		"minRent":  "not-a-number",
		"bedrooms": "3",
		"featured": "true",
		"page":     "2",
	}
	f := property.ParseFilters(func(k string) string { return params[k] })

	assert.Nil(t, f.MinRent)
	require.NotNil(t, f.Bedrooms)
	assert.Equal(t, 3, *f.Bedrooms)
	require.NotNil(t, f.Featured)
	assert.True(t, *f.Featured)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 12, f.Limit)
}
