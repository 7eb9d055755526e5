package booking

import (
	"net/http"

	"rentora-backend/internal/shared/apperror"
)

var (
	ErrBookingNotFound        = apperror.New(http.StatusNotFound, "BOOKING_NOT_FOUND", "booking not found")
	ErrNotParticipant         = apperror.New(http.StatusForbidden, "NOT_BOOKING_PARTICIPANT", "only the tenant or landlord can access this booking")
	ErrPropertyNotAvailable   = apperror.New(http.StatusBadRequest, "PROPERTY_NOT_AVAILABLE", "property is not available for booking")
	ErrPropertyAlreadyBooked  = apperror.New(http.StatusConflict, "PROPERTY_ALREADY_BOOKED", "property already has an active booking")
	ErrInvalidDates           = apperror.New(http.StatusBadRequest, "INVALID_BOOKING_DATES", "check-out must be after check-in")
	ErrBelowMinimumStay       = apperror.New(http.StatusBadRequest, "BELOW_MINIMUM_STAY", "stay is shorter than the property's minimum")
	ErrAlreadyCancelled       = apperror.New(http.StatusBadRequest, "BOOKING_ALREADY_CANCELLED", "booking is already cancelled")
	ErrBookingTerminal        = apperror.New(http.StatusBadRequest, "BOOKING_TERMINAL", "booking can no longer be modified")
	ErrOwnPropertyBooking     = apperror.New(http.StatusBadRequest, "OWN_PROPERTY_BOOKING", "you cannot book your own property")
	ErrSessionBookingMismatch = apperror.New(http.StatusBadRequest, "SESSION_BOOKING_MISMATCH", "checkout session does not reference a known booking")
	ErrBookingNotRentable     = apperror.New(http.StatusBadRequest, "NOT_A_RENTAL", "only rental listings can be booked")
)
