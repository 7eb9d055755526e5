package repository

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"rentora-backend/internal/domains/property"
)

// buildWhere translates parsed filters into a WHERE clause with
// positional args. Geographic filtering uses a bounding box here; the
// exact circle containment check happens after scan (see applyGeoFilter)
// because the box overshoots at the corners.
func buildWhere(f property.Filters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	add := func(format string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.ListingType != "" {
		add("listing_type = $%d", f.ListingType)
	}
	if f.PropertyType != "" {
		add("property_type = $%d", f.PropertyType)
	}
	if f.City != "" {
		add("city ILIKE '%%' || $%d || '%%'", f.City)
	}
	if f.Neighborhood != "" {
		add("neighborhood ILIKE '%%' || $%d || '%%'", f.Neighborhood)
	}
	if f.Search != "" {
		args = append(args, f.Search)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%' OR neighborhood ILIKE '%%' || $%d || '%%' OR city ILIKE '%%' || $%d || '%%')",
			n, n, n, n))
	}

	if f.Bedrooms != nil {
		add("bedrooms = $%d", *f.Bedrooms)
	}
	if f.MinBedrooms != nil {
		add("bedrooms >= $%d", *f.MinBedrooms)
	}
	if f.MaxBedrooms != nil {
		add("bedrooms <= $%d", *f.MaxBedrooms)
	}
	if f.Bathrooms != nil {
		add("bathrooms = $%d", *f.Bathrooms)
	}
	if f.MinBathrooms != nil {
		add("bathrooms >= $%d", *f.MinBathrooms)
	}
	if f.MaxBathrooms != nil {
		add("bathrooms <= $%d", *f.MaxBathrooms)
	}

	if len(f.Amenities) > 0 {
		add("amenities @> $%d", f.Amenities)
	}
	if f.Featured != nil {
		add("featured = $%d", *f.Featured)
	}
	if f.Verified != nil {
		add("is_verified = $%d", *f.Verified)
	}

	// Variant-specific bounds only apply to the matching listing type.
	if f.ListingType == property.ListingTypeRent {
		if f.MinRent != nil {
			add("rent_price >= $%d", *f.MinRent)
		}
		if f.MaxRent != nil {
			add("rent_price <= $%d", *f.MaxRent)
		}
		if f.MinStay != nil {
			add("minimum_stay >= $%d", *f.MinStay)
		}
		if f.Furnished != nil {
			add("is_furnished = $%d", *f.Furnished)
		}
		if f.PetPolicy != "" {
			add("pet_policy = $%d", f.PetPolicy)
		}
		if f.AvailableFrom != nil {
			add("available_from <= $%d", *f.AvailableFrom)
		}
	}
	if f.ListingType == property.ListingTypeSale {
		if f.MinPrice != nil {
			add("sale_price >= $%d", *f.MinPrice)
		}
		if f.MaxPrice != nil {
			add("sale_price <= $%d", *f.MaxPrice)
		}
		if f.Condition != "" {
			add("condition = $%d", f.Condition)
		}
		if f.Negotiable != nil {
			add("price_negotiable = $%d", *f.Negotiable)
		}
	}

	if f.HasGeo() {
		center := orb.Point{*f.Longitude, *f.Latitude}
		bound := geo.NewBoundAroundPoint(center, *f.RadiusKm*1000)

		add("latitude >= $%d", bound.Min.Lat())
		add("latitude <= $%d", bound.Max.Lat())
		add("longitude >= $%d", bound.Min.Lon())
		add("longitude <= $%d", bound.Max.Lon())
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// applyGeoFilter drops rows outside the exact circle. The preceding
// bounding-box query can include points near the box corners that are
// farther than the radius.
func applyGeoFilter(items []property.Property, f property.Filters) []property.Property {
	if !f.HasGeo() {
		return items
	}

	center := orb.Point{*f.Longitude, *f.Latitude}
	radiusMeters := *f.RadiusKm * 1000

	filtered := items[:0]
	for _, p := range items {
		if geo.Distance(orb.Point{p.Longitude, p.Latitude}, center) <= radiusMeters {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// pageSlice paginates an already-filtered result set and returns the
// requested page alongside the true total.
func pageSlice(items []property.Property, page, limit int) ([]property.Property, int64) {
	total := int64(len(items))

	start := (page - 1) * limit
	if start < 0 || start >= len(items) {
		return []property.Property{}, total
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}
