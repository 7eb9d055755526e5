package activity

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded by domain services. The log is append-only; entries
// are never updated or deleted through the API.
const (
	ActionUserRegistered     = "user_registered"
	ActionPropertyCreated    = "property_created"
	ActionPropertyUpdated    = "property_updated"
	ActionPropertyDeleted    = "property_deleted"
	ActionBookingCreated     = "booking_created"
	ActionBookingConfirmed   = "booking_confirmed"
	ActionBookingCancelled   = "booking_cancelled"
	ActionBookingCompleted   = "booking_completed"
	ActionMaintenanceCreated = "maintenance_created"
	ActionMaintenanceUpdated = "maintenance_updated"
)

// Entity types an activity entry can reference.
const (
	EntityUser        = "user"
	EntityProperty    = "property"
	EntityBooking     = "booking"
	EntityMaintenance = "maintenance"
)

type Activity struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"userId" db:"user_id"`
	Action     string     `json:"action" db:"action"`
	Message    string     `json:"message" db:"message"`
	EntityID   *uuid.UUID `json:"entityId,omitempty" db:"entity_id"`
	EntityType *string    `json:"entityType,omitempty" db:"entity_type"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}
