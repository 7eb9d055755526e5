package property

import (
	"net/http"

	"rentora-backend/internal/shared/apperror"
)

var (
	ErrPropertyNotFound   = apperror.New(http.StatusNotFound, "PROPERTY_NOT_FOUND", "property not found")
	ErrNotOwner           = apperror.New(http.StatusForbidden, "NOT_PROPERTY_OWNER", "only the property owner can perform this action")
	ErrInvalidListingType = apperror.New(http.StatusBadRequest, "INVALID_LISTING_TYPE", "listing type must be rent or sale")
	ErrMissingVariant     = apperror.New(http.StatusBadRequest, "MISSING_LISTING_DETAILS", "listing details must match the listing type")
	ErrInvalidStatus      = apperror.New(http.StatusBadRequest, "INVALID_PROPERTY_STATUS", "property status is not valid")
	ErrInvalidCoordinates = apperror.New(http.StatusBadRequest, "INVALID_COORDINATES", "latitude or longitude out of range")
)
