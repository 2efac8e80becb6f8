package ports

import (
	"context"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
)

// AssetTypeRepository reads the asset type lookup table.
type AssetTypeRepository interface {
	ListAssetTypes(ctx context.Context) ([]domain.AssetType, error)
	FindAssetType(ctx context.Context, id int64) (*domain.AssetType, error)
	CreateAssetType(ctx context.Context, at *domain.AssetType) error
}

// ServiceCenterRepository reads the service center lookup table.
type ServiceCenterRepository interface {
	ListServiceCenters(ctx context.Context) ([]domain.ServiceCenter, error)
	FindServiceCenter(ctx context.Context, id int64) (*domain.ServiceCenter, error)
	CreateServiceCenter(ctx context.Context, sc *domain.ServiceCenter) error
}

// AppointmentRepository persists service appointments.
// Find, Update and Delete return domain.ErrAppointmentNotFound for unknown ids.
type AppointmentRepository interface {
	ListAppointments(ctx context.Context) ([]domain.ServiceAppointment, error)
	FindAppointment(ctx context.Context, id int64) (*domain.ServiceAppointment, error)
	CreateAppointment(ctx context.Context, a *domain.ServiceAppointment) error
	UpdateAppointment(ctx context.Context, a *domain.ServiceAppointment) error
	DeleteAppointment(ctx context.Context, id int64) error
}

// FleetRepository groups the fleet tables served by one store.
type FleetRepository interface {
	AssetTypeRepository
	ServiceCenterRepository
	AppointmentRepository
}
