// Package seed writes the lookup tables, a few sample appointments and a
// local admin account into an empty store. Each step only runs when its
// target is empty, so calling Run on every startup is safe.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
	"github.com/fleetmanagement/fleet-api/internal/core/ports"
)

const (
	AdminUsername = "admin"
	AdminPassword = "Password123!"
)

var assetTypes = []string{"Truck", "Van", "Sedan", "SUV", "Other"}

var serviceCenters = []domain.ServiceCenter{
	{Name: "Central Service", Address: "100 Main St", City: "Springfield", State: "CA", Zip: "90001"},
	{Name: "Northside Service", Address: "55 North Rd", City: "Shelbyville", State: "CA", Zip: "90002"},
	{Name: "Eastfield Garage", Address: "200 East Ave", City: "Ogden", State: "CA", Zip: "90003"},
}

// sampleAppointment references lookups by position in the seeded lists.
type sampleAppointment struct {
	assetType, center int
	inDays            int
	make              string
	year              int
	notes             string
}

var sampleAppointments = []sampleAppointment{
	{0, 0, 3, "Ford", 2018, "Routine maintenance and oil change."},
	{1, 1, 7, "Mercedes", 2020, "Brake inspection."},
	{2, 0, 10, "Toyota", 2016, "Transmission check, customer reports slipping."},
	{3, 2, 14, "Honda", 2019, "Scheduled recall repair."},
}

// Seeder holds the stores being seeded.
type Seeder struct {
	fleet ports.FleetRepository
	users ports.AuthRepository
	auth  ports.AuthService
	log   zerolog.Logger
	now   func() time.Time
}

func New(fleet ports.FleetRepository, users ports.AuthRepository, auth ports.AuthService, log zerolog.Logger) *Seeder {
	return &Seeder{fleet: fleet, users: users, auth: auth, log: log, now: time.Now}
}

// Run seeds every empty collection.
func (s *Seeder) Run(ctx context.Context) error {
	types, err := s.seedAssetTypes(ctx)
	if err != nil {
		return err
	}
	centers, err := s.seedServiceCenters(ctx)
	if err != nil {
		return err
	}
	if err := s.seedAppointments(ctx, types, centers); err != nil {
		return err
	}
	return s.seedAdmin(ctx)
}

func (s *Seeder) seedAssetTypes(ctx context.Context) ([]domain.AssetType, error) {
	existing, err := s.fleet.ListAssetTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed asset types: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	out := make([]domain.AssetType, 0, len(assetTypes))
	for _, name := range assetTypes {
		at := domain.AssetType{Name: name}
		if err := s.fleet.CreateAssetType(ctx, &at); err != nil {
			return nil, fmt.Errorf("seed asset type %s: %w", name, err)
		}
		out = append(out, at)
	}
	s.log.Info().Int("count", len(out)).Msg("seeded asset types")
	return out, nil
}

func (s *Seeder) seedServiceCenters(ctx context.Context) ([]domain.ServiceCenter, error) {
	existing, err := s.fleet.ListServiceCenters(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed service centers: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	out := make([]domain.ServiceCenter, 0, len(serviceCenters))
	for _, sc := range serviceCenters {
		if err := s.fleet.CreateServiceCenter(ctx, &sc); err != nil {
			return nil, fmt.Errorf("seed service center %s: %w", sc.Name, err)
		}
		out = append(out, sc)
	}
	s.log.Info().Int("count", len(out)).Msg("seeded service centers")
	return out, nil
}

func (s *Seeder) seedAppointments(ctx context.Context, types []domain.AssetType, centers []domain.ServiceCenter) error {
	existing, err := s.fleet.ListAppointments(ctx)
	if err != nil {
		return fmt.Errorf("seed appointments: %w", err)
	}
	if len(existing) > 0 || len(types) == 0 || len(centers) == 0 {
		return nil
	}

	now := s.now().UTC()
	for _, sa := range sampleAppointments {
		a := domain.ServiceAppointment{
			AssetTypeID:     types[sa.assetType%len(types)].ID,
			ServiceCenterID: centers[sa.center%len(centers)].ID,
			AppointmentDate: now.AddDate(0, 0, sa.inDays),
			AssetMake:       sa.make,
			AssetYear:       sa.year,
			Notes:           sa.notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.fleet.CreateAppointment(ctx, &a); err != nil {
			return fmt.Errorf("seed appointment: %w", err)
		}
	}
	s.log.Info().Int("count", len(sampleAppointments)).Msg("seeded sample appointments")
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if n > 0 {
		return nil
	}

	_, err = s.auth.Register(ctx, AdminUsername, AdminPassword, domain.RoleAdmin)
	if err != nil && !errors.Is(err, domain.ErrUserExists) {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.log.Warn().Str("username", AdminUsername).Msg("seeded default admin account; change its password outside local development")
	return nil
}
