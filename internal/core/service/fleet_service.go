package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
	"github.com/fleetmanagement/fleet-api/internal/core/ports"
)

// FleetService serves the lookup tables and appointment CRUD. Beyond
// required fields and foreign-key presence there are no business rules.
type FleetService struct {
	repo   ports.FleetRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewFleetService(repo ports.FleetRepository, logger zerolog.Logger) *FleetService {
	return &FleetService{repo: repo, logger: logger, now: time.Now}
}

func (s *FleetService) ListAssetTypes(ctx context.Context) ([]domain.AssetType, error) {
	return s.repo.ListAssetTypes(ctx)
}

func (s *FleetService) GetAssetType(ctx context.Context, id int64) (*domain.AssetType, error) {
	return s.repo.FindAssetType(ctx, id)
}

func (s *FleetService) ListServiceCenters(ctx context.Context) ([]domain.ServiceCenter, error) {
	return s.repo.ListServiceCenters(ctx)
}

func (s *FleetService) GetServiceCenter(ctx context.Context, id int64) (*domain.ServiceCenter, error) {
	return s.repo.FindServiceCenter(ctx, id)
}

func (s *FleetService) ListAppointments(ctx context.Context) ([]domain.ServiceAppointment, error) {
	return s.repo.ListAppointments(ctx)
}

func (s *FleetService) GetAppointment(ctx context.Context, id int64) (*domain.ServiceAppointment, error) {
	return s.repo.FindAppointment(ctx, id)
}

// CreateAppointment validates the input and its references before inserting.
func (s *FleetService) CreateAppointment(ctx context.Context, in ports.AppointmentInput) (*domain.ServiceAppointment, error) {
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	a := &domain.ServiceAppointment{
		AssetTypeID:     in.AssetTypeID,
		ServiceCenterID: in.ServiceCenterID,
		AppointmentDate: in.AppointmentDate.UTC(),
		AssetMake:       in.AssetMake,
		AssetYear:       in.AssetYear,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.CreateAppointment(ctx, a); err != nil {
		s.logger.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}

	s.logger.Info().Int64("appointment_id", a.ID).Int64("service_center_id", a.ServiceCenterID).Msg("appointment created")
	return a, nil
}

// UpdateAppointment replaces the writable fields of an existing appointment.
func (s *FleetService) UpdateAppointment(ctx context.Context, id int64, in ports.AppointmentInput) (*domain.ServiceAppointment, error) {
	existing, err := s.repo.FindAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}

	existing.AssetTypeID = in.AssetTypeID
	existing.ServiceCenterID = in.ServiceCenterID
	existing.AppointmentDate = in.AppointmentDate.UTC()
	existing.AssetMake = in.AssetMake
	existing.AssetYear = in.AssetYear
	existing.Notes = in.Notes
	existing.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateAppointment(ctx, existing); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("appointment_id", id).Msg("appointment updated")
	return existing, nil
}

func (s *FleetService) DeleteAppointment(ctx context.Context, id int64) error {
	if err := s.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("appointment_id", id).Msg("appointment deleted")
	return nil
}

func (s *FleetService) checkInput(ctx context.Context, in ports.AppointmentInput) error {
	switch {
	case in.AssetTypeID <= 0:
		return fmt.Errorf("%w: asset_type_id is required", domain.ErrInvalidInput)
	case in.ServiceCenterID <= 0:
		return fmt.Errorf("%w: service_center_id is required", domain.ErrInvalidInput)
	case in.AppointmentDate.IsZero():
		return fmt.Errorf("%w: appointment_date is required", domain.ErrInvalidInput)
	}

	if _, err := s.repo.FindAssetType(ctx, in.AssetTypeID); err != nil {
		if errors.Is(err, domain.ErrAssetTypeNotFound) {
			return fmt.Errorf("%w: asset type %d", domain.ErrInvalidReference, in.AssetTypeID)
		}
		return err
	}
	if _, err := s.repo.FindServiceCenter(ctx, in.ServiceCenterID); err != nil {
		if errors.Is(err, domain.ErrServiceCenterNotFound) {
			return fmt.Errorf("%w: service center %d", domain.ErrInvalidReference, in.ServiceCenterID)
		}
		return err
	}
	return nil
}
