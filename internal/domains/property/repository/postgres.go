package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"rentora-backend/internal/domains/property"
)

const propertyColumns = `id, title, description, listing_type, property_type, address, city,
	neighborhood, state, country, latitude, longitude, bedrooms, bathrooms, area_size,
	area_unit, amenities, images, status, featured, is_verified, owner_id, agent_id,
	views, likes, rent_price, security_deposit, minimum_stay, available_from,
	is_furnished, pet_policy, smoking_policy, sale_price, condition, ownership_type,
	hoa_fee, price_negotiable, time_on_market, created_at, updated_at`

type postgresPropertyRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPropertyRepository(db *pgxpool.Pool) property.Repository {
	return &postgresPropertyRepository{db: db}
}

func (r *postgresPropertyRepository) Create(ctx context.Context, p *property.Property) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	var (
		rentPrice, securityDeposit   *decimal.Decimal
		minimumStay                  *int
		availableFrom                *time.Time
		isFurnished, priceNegotiable *bool
		petPolicy, smokingPolicy     *string
		salePrice, hoaFee            *decimal.Decimal
		condition, ownershipType     *string
		timeOnMarket                 *int
	)
	switch p.ListingType {
	case property.ListingTypeRent:
		rentPrice = &p.Rental.RentPrice
		securityDeposit = &p.Rental.SecurityDeposit
		minimumStay = &p.Rental.MinimumStay
		availableFrom = p.Rental.AvailableFrom
		isFurnished = &p.Rental.IsFurnished
		petPolicy = &p.Rental.PetPolicy
		smokingPolicy = &p.Rental.SmokingPolicy
	case property.ListingTypeSale:
		salePrice = &p.Sale.SalePrice
		condition = &p.Sale.Condition
		ownershipType = &p.Sale.OwnershipType
		hoaFee = &p.Sale.HOAFee
		priceNegotiable = &p.Sale.PriceNegotiable
		timeOnMarket = &p.Sale.TimeOnMarket
	default:
		return property.ErrInvalidListingType
	}

	query := `
		INSERT INTO properties (id, title, description, listing_type, property_type, address,
			city, neighborhood, state, country, latitude, longitude, bedrooms, bathrooms,
			area_size, area_unit, amenities, images, status, featured, is_verified, owner_id,
			agent_id, views, likes, rent_price, security_deposit, minimum_stay, available_from,
			is_furnished, pet_policy, smoking_policy, sale_price, condition, ownership_type,
			hoa_fee, price_negotiable, time_on_market, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33,
			$34, $35, $36, $37, $38, $39, $40)`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.ListingType, p.PropertyType, p.Address,
		p.City, p.Neighborhood, p.State, p.Country, p.Latitude, p.Longitude,
		p.Bedrooms, p.Bathrooms, p.AreaSize, p.AreaUnit, p.Amenities, p.Images,
		p.Status, p.Featured, p.IsVerified, p.OwnerID, p.AgentID, p.Views, p.Likes,
		rentPrice, securityDeposit, minimumStay, availableFrom, isFurnished,
		petPolicy, smokingPolicy, salePrice, condition, ownershipType, hoaFee,
		priceNegotiable, timeOnMarket, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (r *postgresPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = $1", propertyColumns)

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("find property: %w", err)
	}
	defer rows.Close()

	items, err := scanProperties(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, property.ErrPropertyNotFound
	}
	return &items[0], nil
}

func (r *postgresPropertyRepository) Update(ctx context.Context, p *property.Property) error {
	var (
		rentPrice, securityDeposit *decimal.Decimal
		minimumStay                *int
		availableFrom              *time.Time
		isFurnished                *bool
		petPolicy, smokingPolicy   *string
		salePrice, hoaFee          *decimal.Decimal
		condition, ownershipType   *string
		priceNegotiable            *bool
		timeOnMarket               *int
	)
	switch p.ListingType {
	case property.ListingTypeRent:
		rentPrice = &p.Rental.RentPrice
		securityDeposit = &p.Rental.SecurityDeposit
		minimumStay = &p.Rental.MinimumStay
		availableFrom = p.Rental.AvailableFrom
		isFurnished = &p.Rental.IsFurnished
		petPolicy = &p.Rental.PetPolicy
		smokingPolicy = &p.Rental.SmokingPolicy
	case property.ListingTypeSale:
		salePrice = &p.Sale.SalePrice
		condition = &p.Sale.Condition
		ownershipType = &p.Sale.OwnershipType
		hoaFee = &p.Sale.HOAFee
		priceNegotiable = &p.Sale.PriceNegotiable
		timeOnMarket = &p.Sale.TimeOnMarket
	default:
		return property.ErrInvalidListingType
	}

	query := `
		UPDATE properties
		SET title = $2, description = $3, property_type = $4, address = $5, city = $6,
			neighborhood = $7, state = $8, country = $9, latitude = $10, longitude = $11,
			bedrooms = $12, bathrooms = $13, area_size = $14, area_unit = $15,
			amenities = $16, images = $17, status = $18, featured = $19, is_verified = $20,
			agent_id = $21, rent_price = $22, security_deposit = $23, minimum_stay = $24,
			available_from = $25, is_furnished = $26, pet_policy = $27, smoking_policy = $28,
			sale_price = $29, condition = $30, ownership_type = $31, hoa_fee = $32,
			price_negotiable = $33, time_on_market = $34, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.PropertyType, p.Address, p.City,
		p.Neighborhood, p.State, p.Country, p.Latitude, p.Longitude,
		p.Bedrooms, p.Bathrooms, p.AreaSize, p.AreaUnit, p.Amenities, p.Images,
		p.Status, p.Featured, p.IsVerified, p.AgentID,
		rentPrice, securityDeposit, minimumStay, availableFrom, isFurnished,
		petPolicy, smokingPolicy, salePrice, condition, ownershipType, hoaFee,
		priceNegotiable, timeOnMarket)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return property.ErrPropertyNotFound
	}
	return nil
}

func (r *postgresPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM properties WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return property.ErrPropertyNotFound
	}
	return nil
}

func (r *postgresPropertyRepository) Search(ctx context.Context, f property.Filters) ([]property.Property, int64, error) {
	where, args := buildWhere(f)

	if f.HasGeo() {
		return r.searchWithinRadius(ctx, f, where, args)
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM properties"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	offset := (f.Page - 1) * f.Limit
	query := fmt.Sprintf("SELECT %s FROM properties%s ORDER BY %s LIMIT $%d OFFSET $%d",
		propertyColumns, where, f.OrderBy(), len(args)+1, len(args)+2)
	args = append(args, f.Limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search properties: %w", err)
	}
	defer rows.Close()

	items, err := scanProperties(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// searchWithinRadius pages in memory. The bounding-box prefilter keeps
// corner points the exact circle excludes, so SQL-side COUNT and
// LIMIT/OFFSET would disagree with the rows actually returned.
func (r *postgresPropertyRepository) searchWithinRadius(ctx context.Context, f property.Filters, where string, args []interface{}) ([]property.Property, int64, error) {
	query := fmt.Sprintf("SELECT %s FROM properties%s ORDER BY %s",
		propertyColumns, where, f.OrderBy())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search properties: %w", err)
	}
	defer rows.Close()

	items, err := scanProperties(rows)
	if err != nil {
		return nil, 0, err
	}

	items = applyGeoFilter(items, f)
	page, total := pageSlice(items, f.Page, f.Limit)
	return page, total, nil
}

func (r *postgresPropertyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]property.Property, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM properties WHERE owner_id = $1", ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count owner properties: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM properties WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		propertyColumns)

	rows, err := r.db.Query(ctx, query, ownerID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list owner properties: %w", err)
	}
	defer rows.Close()

	items, err := scanProperties(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *postgresPropertyRepository) ListFeatured(ctx context.Context, limit int) ([]property.Property, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM properties WHERE featured = TRUE AND status = $1 ORDER BY created_at DESC LIMIT $2",
		propertyColumns)

	rows, err := r.db.Query(ctx, query, property.StatusAvailable, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured properties: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

func (r *postgresPropertyRepository) ListByCity(ctx context.Context, city string, limit int) ([]property.Property, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM properties WHERE city ILIKE $1 AND status = $2 ORDER BY created_at DESC LIMIT $3",
		propertyColumns)

	rows, err := r.db.Query(ctx, query, city, property.StatusAvailable, limit)
	if err != nil {
		return nil, fmt.Errorf("list properties by city: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

func (r *postgresPropertyRepository) FilterOptions(ctx context.Context) (*property.FilterOptions, error) {
	opts := &property.FilterOptions{}

	rows, err := r.db.Query(ctx, "SELECT DISTINCT city FROM properties WHERE city <> '' ORDER BY city")
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	opts.Cities, err = scanStrings(rows)
	if err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, "SELECT DISTINCT neighborhood FROM properties WHERE neighborhood <> '' ORDER BY neighborhood")
	if err != nil {
		return nil, fmt.Errorf("list neighborhoods: %w", err)
	}
	opts.Neighborhoods, err = scanStrings(rows)
	if err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, "SELECT DISTINCT property_type FROM properties WHERE property_type <> '' ORDER BY property_type")
	if err != nil {
		return nil, fmt.Errorf("list property types: %w", err)
	}
	opts.PropertyTypes, err = scanStrings(rows)
	if err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, "SELECT DISTINCT unnest(amenities) AS amenity FROM properties ORDER BY amenity")
	if err != nil {
		return nil, fmt.Errorf("list amenities: %w", err)
	}
	opts.Amenities, err = scanStrings(rows)
	if err != nil {
		return nil, err
	}

	return opts, nil
}

// IncrementViews bumps the view counter. Every fetch counts, so this is
// deliberately not idempotent.
func (r *postgresPropertyRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "UPDATE properties SET views = views + 1 WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// ToggleLike adds or removes the user from the likes set and reports
// whether the property is liked afterwards.
func (r *postgresPropertyRepository) ToggleLike(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := `
		UPDATE properties
		SET likes = CASE
			WHEN $2 = ANY(likes) THEN array_remove(likes, $2)
			ELSE array_append(likes, $2)
		END
		WHERE id = $1
		RETURNING $2 = ANY(likes)`

	var liked bool
	err := r.db.QueryRow(ctx, query, id, userID).Scan(&liked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, property.ErrPropertyNotFound
		}
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return liked, nil
}

func (r *postgresPropertyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.db.Exec(ctx, "UPDATE properties SET status = $2, updated_at = NOW() WHERE id = $1", id, status)
	if err != nil {
		return fmt.Errorf("update property status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return property.ErrPropertyNotFound
	}
	return nil
}

func scanProperties(rows pgx.Rows) ([]property.Property, error) {
	items := []property.Property{}
	for rows.Next() {
		var (
			p property.Property

			rentPrice, securityDeposit *decimal.Decimal
			minimumStay                *int
			availableFrom              *time.Time
			isFurnished                *bool
			petPolicy, smokingPolicy   *string
			salePrice, hoaFee          *decimal.Decimal
			condition, ownershipType   *string
			priceNegotiable            *bool
			timeOnMarket               *int
		)

		err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.ListingType, &p.PropertyType, &p.Address,
			&p.City, &p.Neighborhood, &p.State, &p.Country, &p.Latitude, &p.Longitude,
			&p.Bedrooms, &p.Bathrooms, &p.AreaSize, &p.AreaUnit, &p.Amenities, &p.Images,
			&p.Status, &p.Featured, &p.IsVerified, &p.OwnerID, &p.AgentID, &p.Views, &p.Likes,
			&rentPrice, &securityDeposit, &minimumStay, &availableFrom, &isFurnished,
			&petPolicy, &smokingPolicy, &salePrice, &condition, &ownershipType, &hoaFee,
			&priceNegotiable, &timeOnMarket, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}

		switch p.ListingType {
		case property.ListingTypeRent:
			p.Rental = &property.RentalDetails{
				AvailableFrom: availableFrom,
			}
			if rentPrice != nil {
				p.Rental.RentPrice = *rentPrice
			}
			if securityDeposit != nil {
				p.Rental.SecurityDeposit = *securityDeposit
			}
			if minimumStay != nil {
				p.Rental.MinimumStay = *minimumStay
			}
			if isFurnished != nil {
				p.Rental.IsFurnished = *isFurnished
			}
			if petPolicy != nil {
				p.Rental.PetPolicy = *petPolicy
			}
			if smokingPolicy != nil {
				p.Rental.SmokingPolicy = *smokingPolicy
			}
		case property.ListingTypeSale:
			p.Sale = &property.SaleDetails{}
			if salePrice != nil {
				p.Sale.SalePrice = *salePrice
			}
			if condition != nil {
				p.Sale.Condition = *condition
			}
			if ownershipType != nil {
				p.Sale.OwnershipType = *ownershipType
			}
			if hoaFee != nil {
				p.Sale.HOAFee = *hoaFee
			}
			if priceNegotiable != nil {
				p.Sale.PriceNegotiable = *priceNegotiable
			}
			if timeOnMarket != nil {
				p.Sale.TimeOnMarket = *timeOnMarket
			}
		}

		items = append(items, p)
	}
	return items, rows.Err()
}

func scanStrings(rows pgx.Rows) ([]string, error) {
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
