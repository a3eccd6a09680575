package request

import (
	"time"

	"github.com/google/uuid"
)

// CreateAppointmentRequest represents a booking request
type CreateAppointmentRequest struct {
	ClientID   uuid.UUID  `json:"client_id" binding:"required"`
	ServiceID  uuid.UUID  `json:"service_id" binding:"required"`
	OperatorID *uuid.UUID `json:"operator_id"`
	StartsAt   time.Time  `json:"starts_at" binding:"required"`
	Notes      *string    `json:"notes"`
}

// UpdateAppointmentStatusRequest moves a booking through its lifecycle
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Scheduled Done Cancelled"`
}
