package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListForDay returns the appointments starting within [dayStart, dayEnd)
	// ordered by start time.
	ListForDay(ctx context.Context, dayStart, dayEnd time.Time) ([]entity.Appointment, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]entity.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) error
}
