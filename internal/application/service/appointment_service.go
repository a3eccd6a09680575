package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"github.com/lumierestudio/salon-api/internal/domain/repository"
	"github.com/lumierestudio/salon-api/pkg/apperror"
)

// AppointmentService handles back-office bookings
type AppointmentService struct {
	appointmentRepo repository.AppointmentRepository
	clientRepo      repository.ClientRepository
	serviceRepo     repository.ServiceRepository
	location        *time.Location
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(appointmentRepo repository.AppointmentRepository, clientRepo repository.ClientRepository, serviceRepo repository.ServiceRepository, location *time.Location) *AppointmentService {
	if location == nil {
		location = time.Local
	}
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		serviceRepo:     serviceRepo,
		location:        location,
	}
}

// CreateAppointmentInput represents the create appointment input
type CreateAppointmentInput struct {
	ClientID   uuid.UUID
	ServiceID  uuid.UUID
	OperatorID *uuid.UUID
	StartsAt   time.Time
	Notes      *string
}

// CreateAppointment books a slot for a client
func (s *AppointmentService) CreateAppointment(ctx context.Context, input *CreateAppointmentInput) (*entity.Appointment, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	service, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	if !service.Active {
		return nil, apperror.NewUnprocessableError("Service is not bookable")
	}

	appointment := &entity.Appointment{
		ClientID:   input.ClientID,
		ServiceID:  input.ServiceID,
		OperatorID: input.OperatorID,
		StartsAt:   input.StartsAt,
		Status:     enum.AppointmentStatusScheduled,
		Notes:      input.Notes,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// GetAppointment retrieves an appointment by ID
func (s *AppointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	return appointment, nil
}

// ListAppointmentsForDay returns the day's schedule for the back office
func (s *AppointmentService) ListAppointmentsForDay(ctx context.Context, date string) ([]entity.Appointment, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.location)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
	}
	return s.appointmentRepo.ListForDay(ctx, day, day.AddDate(0, 0, 1))
}

// ListAppointmentsByClient returns a client's appointments, newest first
func (s *AppointmentService) ListAppointmentsByClient(ctx context.Context, clientID uuid.UUID) ([]entity.Appointment, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return s.appointmentRepo.ListByClient(ctx, clientID)
}

// UpdateAppointmentStatus moves an appointment through its lifecycle
func (s *AppointmentService) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	if appointment.Status == enum.AppointmentStatusCancelled {
		return nil, apperror.NewUnprocessableError("Appointment is cancelled")
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	appointment.Status = status
	return appointment, nil
}

// DeleteAppointment removes a booking
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return apperror.NewNotFoundError("Appointment")
	}
	return s.appointmentRepo.Delete(ctx, id)
}
