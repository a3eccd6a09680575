package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/repository"
)

// SettingsService stores per-user preferences for the back office.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// defaultSettings are the Swiss-salon defaults a fresh account starts
// with.
func defaultSettings(userID uuid.UUID) *entity.UserSettings {
	return &entity.UserSettings{
		UserID:             userID,
		Language:           "fr",
		Timezone:           "Europe/Zurich",
		Currency:           "CHF",
		DateFormat:         "DD.MM.YYYY",
		EmailNotifications: true,
		ClosureReports:     true,
		AppointmentAlerts:  true,
		LowStockAlerts:     true,
		Theme:              "light",
		CompactMode:        false,
		SessionTimeout:     "30",
		LoginAlerts:        true,
	}
}

// GetSettings returns the user's settings, lazily creating the default
// row on first access.
func (s *SettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = defaultSettings(userID)
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

type UpdateSettingsInput struct {
	UserID             uuid.UUID
	Language           string
	Timezone           string
	Currency           string
	DateFormat         string
	EmailNotifications bool
	ClosureReports     bool
	AppointmentAlerts  bool
	LowStockAlerts     bool
	Theme              string
	CompactMode        bool
	SessionTimeout     string
	LoginAlerts        bool
}

func (input *UpdateSettingsInput) apply(settings *entity.UserSettings) {
	settings.Language = input.Language
	settings.Timezone = input.Timezone
	settings.Currency = input.Currency
	settings.DateFormat = input.DateFormat
	settings.EmailNotifications = input.EmailNotifications
	settings.ClosureReports = input.ClosureReports
	settings.AppointmentAlerts = input.AppointmentAlerts
	settings.LowStockAlerts = input.LowStockAlerts
	settings.Theme = input.Theme
	settings.CompactMode = input.CompactMode
	settings.SessionTimeout = input.SessionTimeout
	settings.LoginAlerts = input.LoginAlerts
}

// UpdateSettings overwrites the user's settings, creating the row if
// the user never saved any.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.UserSettings{UserID: input.UserID}
	}

	input.apply(settings)

	if settings.ID == uuid.Nil {
		err = s.settingsRepo.Create(ctx, settings)
	} else {
		err = s.settingsRepo.Update(ctx, settings)
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}
