package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
)

// FleetRepository implements ports.FleetRepository on the relational schema.
type FleetRepository struct {
	store *Store
}

func NewFleetRepository(store *Store) *FleetRepository {
	return &FleetRepository{store: store}
}

// --- Asset types ---

func (r *FleetRepository) ListAssetTypes(ctx context.Context) ([]domain.AssetType, error) {
	rows, err := r.store.db.QueryContext(ctx, `SELECT id, name FROM asset_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list asset types: %w", err)
	}
	defer rows.Close()

	out := []domain.AssetType{}
	for rows.Next() {
		var at domain.AssetType
		if err := rows.Scan(&at.ID, &at.Name); err != nil {
			return nil, fmt.Errorf("scan asset type: %w", err)
		}
		out = append(out, at)
	}
	return out, rows.Err()
}

func (r *FleetRepository) FindAssetType(ctx context.Context, id int64) (*domain.AssetType, error) {
	q := r.store.dialect.rebind(`SELECT id, name FROM asset_types WHERE id = ?`)

	var at domain.AssetType
	if err := r.store.db.QueryRowContext(ctx, q, id).Scan(&at.ID, &at.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssetTypeNotFound
		}
		return nil, fmt.Errorf("find asset type: %w", err)
	}
	return &at, nil
}

func (r *FleetRepository) CreateAssetType(ctx context.Context, at *domain.AssetType) error {
	q := r.store.dialect.rebind(`INSERT INTO asset_types (name) VALUES (?) RETURNING id`)
	if err := r.store.db.QueryRowContext(ctx, q, at.Name).Scan(&at.ID); err != nil {
		return fmt.Errorf("insert asset type: %w", err)
	}
	return nil
}

// --- Service centers ---

const serviceCenterColumns = `id, name, address, city, state, zip`

func scanServiceCenter(row interface{ Scan(...any) error }) (domain.ServiceCenter, error) {
	var sc domain.ServiceCenter
	err := row.Scan(&sc.ID, &sc.Name, &sc.Address, &sc.City, &sc.State, &sc.Zip)
	return sc, err
}

func (r *FleetRepository) ListServiceCenters(ctx context.Context) ([]domain.ServiceCenter, error) {
	rows, err := r.store.db.QueryContext(ctx, `SELECT `+serviceCenterColumns+` FROM service_centers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list service centers: %w", err)
	}
	defer rows.Close()

	out := []domain.ServiceCenter{}
	for rows.Next() {
		sc, err := scanServiceCenter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service center: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (r *FleetRepository) FindServiceCenter(ctx context.Context, id int64) (*domain.ServiceCenter, error) {
	q := r.store.dialect.rebind(`SELECT ` + serviceCenterColumns + ` FROM service_centers WHERE id = ?`)

	sc, err := scanServiceCenter(r.store.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrServiceCenterNotFound
		}
		return nil, fmt.Errorf("find service center: %w", err)
	}
	return &sc, nil
}

func (r *FleetRepository) CreateServiceCenter(ctx context.Context, sc *domain.ServiceCenter) error {
	q := r.store.dialect.rebind(`INSERT INTO service_centers (name, address, city, state, zip) VALUES (?, ?, ?, ?, ?) RETURNING id`)
	if err := r.store.db.QueryRowContext(ctx, q, sc.Name, sc.Address, sc.City, sc.State, sc.Zip).Scan(&sc.ID); err != nil {
		return fmt.Errorf("insert service center: %w", err)
	}
	return nil
}

// --- Appointments ---

const appointmentColumns = `id, asset_type_id, service_center_id, appointment_date, asset_make, asset_year, notes, created_at, updated_at`

func scanAppointment(row interface{ Scan(...any) error }) (domain.ServiceAppointment, error) {
	var a domain.ServiceAppointment
	err := row.Scan(&a.ID, &a.AssetTypeID, &a.ServiceCenterID, &a.AppointmentDate,
		&a.AssetMake, &a.AssetYear, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *FleetRepository) ListAppointments(ctx context.Context) ([]domain.ServiceAppointment, error) {
	rows, err := r.store.db.QueryContext(ctx, `SELECT `+appointmentColumns+` FROM service_appointments ORDER BY appointment_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	out := []domain.ServiceAppointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *FleetRepository) FindAppointment(ctx context.Context, id int64) (*domain.ServiceAppointment, error) {
	q := r.store.dialect.rebind(`SELECT ` + appointmentColumns + ` FROM service_appointments WHERE id = ?`)

	a, err := scanAppointment(r.store.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return &a, nil
}

func (r *FleetRepository) CreateAppointment(ctx context.Context, a *domain.ServiceAppointment) error {
	q := r.store.dialect.rebind(`INSERT INTO service_appointments
		(asset_type_id, service_center_id, appointment_date, asset_make, asset_year, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	err := r.store.db.QueryRowContext(ctx, q,
		a.AssetTypeID, a.ServiceCenterID, a.AppointmentDate.UTC(),
		a.AssetMake, a.AssetYear, a.Notes, a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *FleetRepository) UpdateAppointment(ctx context.Context, a *domain.ServiceAppointment) error {
	q := r.store.dialect.rebind(`UPDATE service_appointments
		SET asset_type_id = ?, service_center_id = ?, appointment_date = ?,
		    asset_make = ?, asset_year = ?, notes = ?, updated_at = ?
		WHERE id = ?`)

	res, err := r.store.db.ExecContext(ctx, q,
		a.AssetTypeID, a.ServiceCenterID, a.AppointmentDate.UTC(),
		a.AssetMake, a.AssetYear, a.Notes, a.UpdatedAt.UTC(), a.ID,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return expectOneRow(res, domain.ErrAppointmentNotFound)
}

func (r *FleetRepository) DeleteAppointment(ctx context.Context, id int64) error {
	q := r.store.dialect.rebind(`DELETE FROM service_appointments WHERE id = ?`)

	res, err := r.store.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return expectOneRow(res, domain.ErrAppointmentNotFound)
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
