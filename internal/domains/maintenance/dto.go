package maintenance

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"rentora-backend/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(http.StatusNotFound, "MAINTENANCE_NOT_FOUND", "maintenance request not found")
	ErrNotAuthorized   = apperror.New(http.StatusForbidden, "MAINTENANCE_FORBIDDEN", "not allowed to access this maintenance request")
	ErrRequestClosed   = apperror.New(http.StatusBadRequest, "MAINTENANCE_CLOSED", "maintenance request is already closed")
)

type CreateRequest struct {
	PropertyID  uuid.UUID `json:"propertyId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Images      []string  `json:"images"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PropertyID, validation.Required, validation.By(nonNilUUID)),
		validation.Field(&r.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&r.Description, validation.Required, validation.Length(10, 2000)),
		validation.Field(&r.Priority, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
	)
}

type UpdateRequest struct {
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.In(StatusPending, StatusInProgress, StatusCompleted, StatusCancelled)),
		validation.Field(&r.Priority, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
	)
}

func nonNilUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}
