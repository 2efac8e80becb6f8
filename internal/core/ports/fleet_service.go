package ports

import (
	"context"
	"time"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
)

// AppointmentInput carries the writable fields of an appointment.
type AppointmentInput struct {
	AssetTypeID     int64
	ServiceCenterID int64
	AppointmentDate time.Time
	AssetMake       string
	AssetYear       int
	Notes           string
}

// FleetService defines the use cases behind the resource endpoints.
type FleetService interface {
	ListAssetTypes(ctx context.Context) ([]domain.AssetType, error)
	GetAssetType(ctx context.Context, id int64) (*domain.AssetType, error)

	ListServiceCenters(ctx context.Context) ([]domain.ServiceCenter, error)
	GetServiceCenter(ctx context.Context, id int64) (*domain.ServiceCenter, error)

	ListAppointments(ctx context.Context) ([]domain.ServiceAppointment, error)
	GetAppointment(ctx context.Context, id int64) (*domain.ServiceAppointment, error)
	CreateAppointment(ctx context.Context, in AppointmentInput) (*domain.ServiceAppointment, error)
	UpdateAppointment(ctx context.Context, id int64, in AppointmentInput) (*domain.ServiceAppointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
}
