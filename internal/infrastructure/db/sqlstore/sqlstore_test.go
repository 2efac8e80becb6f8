package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite(:memory:): %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if store.Name() != "sqlite" {
		t.Fatalf("unexpected name %q", store.Name())
	}
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestAuthRepository_CreateAndFind(t *testing.T) {
	repo := NewAuthRepository(newTestStore(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected id to be assigned")
	}

	found, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if found.ID != created.ID || found.PasswordHash != "$2a$10$hash" || found.Role != domain.RoleUser {
		t.Fatalf("unexpected user: %+v", found)
	}

	if _, err := repo.FindByUsername(ctx, "ALICE"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected case-sensitive miss, got %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

func TestAuthRepository_DuplicateUsername(t *testing.T) {
	repo := NewAuthRepository(newTestStore(t))
	ctx := context.Background()

	u := &domain.User{Username: "bob", PasswordHash: "h", Role: domain.RoleUser, CreatedAt: time.Now()}
	if _, err := repo.Create(ctx, u); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := repo.Create(ctx, u); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists from unique constraint, got %v", err)
	}
}

func seedLookups(t *testing.T, repo *FleetRepository) (domain.AssetType, domain.ServiceCenter) {
	t.Helper()
	ctx := context.Background()

	at := domain.AssetType{Name: "Truck"}
	if err := repo.CreateAssetType(ctx, &at); err != nil {
		t.Fatalf("CreateAssetType: %v", err)
	}
	sc := domain.ServiceCenter{Name: "Central Service", Address: "100 Main St", City: "Springfield", State: "CA", Zip: "90001"}
	if err := repo.CreateServiceCenter(ctx, &sc); err != nil {
		t.Fatalf("CreateServiceCenter: %v", err)
	}
	return at, sc
}

func TestFleetRepository_Lookups(t *testing.T) {
	repo := NewFleetRepository(newTestStore(t))
	ctx := context.Background()
	at, sc := seedLookups(t, repo)

	types, err := repo.ListAssetTypes(ctx)
	if err != nil || len(types) != 1 || types[0].Name != "Truck" {
		t.Fatalf("ListAssetTypes = %v, %v", types, err)
	}
	centers, err := repo.ListServiceCenters(ctx)
	if err != nil || len(centers) != 1 || centers[0] != sc {
		t.Fatalf("ListServiceCenters = %v, %v", centers, err)
	}

	if got, err := repo.FindAssetType(ctx, at.ID); err != nil || got.Name != "Truck" {
		t.Fatalf("FindAssetType = %v, %v", got, err)
	}
	if _, err := repo.FindAssetType(ctx, 999); !errors.Is(err, domain.ErrAssetTypeNotFound) {
		t.Fatalf("expected ErrAssetTypeNotFound, got %v", err)
	}
	if _, err := repo.FindServiceCenter(ctx, 999); !errors.Is(err, domain.ErrServiceCenterNotFound) {
		t.Fatalf("expected ErrServiceCenterNotFound, got %v", err)
	}
}

func TestFleetRepository_AppointmentCRUD(t *testing.T) {
	repo := NewFleetRepository(newTestStore(t))
	ctx := context.Background()
	at, sc := seedLookups(t, repo)

	now := time.Now().UTC().Truncate(time.Second)
	a := &domain.ServiceAppointment{
		AssetTypeID:     at.ID,
		ServiceCenterID: sc.ID,
		AppointmentDate: now.Add(72 * time.Hour),
		AssetMake:       "Ford",
		AssetYear:       2018,
		Notes:           "Routine maintenance",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := repo.CreateAppointment(ctx, a); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if a.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}

	got, err := repo.FindAppointment(ctx, a.ID)
	if err != nil {
		t.Fatalf("FindAppointment: %v", err)
	}
	if got.AssetMake != "Ford" || got.AssetYear != 2018 || !got.AppointmentDate.Equal(a.AppointmentDate) {
		t.Fatalf("unexpected appointment: %+v", got)
	}

	got.AssetMake = "Mercedes"
	got.UpdatedAt = now.Add(time.Minute)
	if err := repo.UpdateAppointment(ctx, got); err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}
	list, err := repo.ListAppointments(ctx)
	if err != nil || len(list) != 1 || list[0].AssetMake != "Mercedes" {
		t.Fatalf("ListAppointments = %v, %v", list, err)
	}

	if err := repo.DeleteAppointment(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	if _, err := repo.FindAppointment(ctx, a.ID); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
	if err := repo.DeleteAppointment(ctx, a.ID); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound on second delete, got %v", err)
	}
	missing := *a
	missing.ID = 12345
	if err := repo.UpdateAppointment(ctx, &missing); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound on update, got %v", err)
	}
}

func TestFleetRepository_ForeignKeysEnforced(t *testing.T) {
	repo := NewFleetRepository(newTestStore(t))
	now := time.Now()

	err := repo.CreateAppointment(context.Background(), &domain.ServiceAppointment{
		AssetTypeID: 41, ServiceCenterID: 42, AppointmentDate: now, CreatedAt: now, UpdatedAt: now,
	})
	if err == nil {
		t.Fatalf("expected foreign key violation")
	}
}

func TestRebind(t *testing.T) {
	q := `SELECT a FROM t WHERE x = ? AND y = ?`
	if got := sqliteDialect.rebind(q); got != q {
		t.Fatalf("sqlite must keep '?' placeholders, got %q", got)
	}
	if got := postgresDialect.rebind(q); got != `SELECT a FROM t WHERE x = $1 AND y = $2` {
		t.Fatalf("unexpected postgres rebind: %q", got)
	}
}
