package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
	"github.com/fleetmanagement/fleet-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubFleetRepo struct {
	assetTypes     map[int64]domain.AssetType
	serviceCenters map[int64]domain.ServiceCenter
	appointments   map[int64]domain.ServiceAppointment
	nextID         int64
	findErr        error
}

func newStubFleetRepo() *stubFleetRepo {
	return &stubFleetRepo{
		assetTypes:     map[int64]domain.AssetType{1: {ID: 1, Name: "Truck"}, 2: {ID: 2, Name: "Van"}},
		serviceCenters: map[int64]domain.ServiceCenter{1: {ID: 1, Name: "Central Service", City: "Springfield"}},
		appointments:   make(map[int64]domain.ServiceAppointment),
	}
}

func (r *stubFleetRepo) ListAssetTypes(context.Context) ([]domain.AssetType, error) {
	out := make([]domain.AssetType, 0, len(r.assetTypes))
	for _, at := range r.assetTypes {
		out = append(out, at)
	}
	return out, nil
}

func (r *stubFleetRepo) FindAssetType(_ context.Context, id int64) (*domain.AssetType, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	at, ok := r.assetTypes[id]
	if !ok {
		return nil, domain.ErrAssetTypeNotFound
	}
	return &at, nil
}

func (r *stubFleetRepo) CreateAssetType(_ context.Context, at *domain.AssetType) error {
	r.nextID++
	at.ID = r.nextID + 100
	r.assetTypes[at.ID] = *at
	return nil
}

func (r *stubFleetRepo) ListServiceCenters(context.Context) ([]domain.ServiceCenter, error) {
	out := make([]domain.ServiceCenter, 0, len(r.serviceCenters))
	for _, sc := range r.serviceCenters {
		out = append(out, sc)
	}
	return out, nil
}

func (r *stubFleetRepo) FindServiceCenter(_ context.Context, id int64) (*domain.ServiceCenter, error) {
	sc, ok := r.serviceCenters[id]
	if !ok {
		return nil, domain.ErrServiceCenterNotFound
	}
	return &sc, nil
}

func (r *stubFleetRepo) CreateServiceCenter(_ context.Context, sc *domain.ServiceCenter) error {
	r.nextID++
	sc.ID = r.nextID + 100
	r.serviceCenters[sc.ID] = *sc
	return nil
}

func (r *stubFleetRepo) ListAppointments(context.Context) ([]domain.ServiceAppointment, error) {
	out := make([]domain.ServiceAppointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (r *stubFleetRepo) FindAppointment(_ context.Context, id int64) (*domain.ServiceAppointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *stubFleetRepo) CreateAppointment(_ context.Context, a *domain.ServiceAppointment) error {
	r.nextID++
	a.ID = r.nextID
	r.appointments[a.ID] = *a
	return nil
}

func (r *stubFleetRepo) UpdateAppointment(_ context.Context, a *domain.ServiceAppointment) error {
	if _, ok := r.appointments[a.ID]; !ok {
		return domain.ErrAppointmentNotFound
	}
	r.appointments[a.ID] = *a
	return nil
}

func (r *stubFleetRepo) DeleteAppointment(_ context.Context, id int64) error {
	if _, ok := r.appointments[id]; !ok {
		return domain.ErrAppointmentNotFound
	}
	delete(r.appointments, id)
	return nil
}

func validAppointmentInput() ports.AppointmentInput {
	return ports.AppointmentInput{
		AssetTypeID:     1,
		ServiceCenterID: 1,
		AppointmentDate: time.Now().Add(72 * time.Hour),
		AssetMake:       "Ford",
		AssetYear:       2018,
		Notes:           "Routine maintenance and oil change.",
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCreateAppointment_Success(t *testing.T) {
	repo := newStubFleetRepo()
	svc := NewFleetService(repo, zerolog.Nop())

	a, err := svc.CreateAppointment(context.Background(), validAppointmentInput())
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if a.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}
	if a.CreatedAt.IsZero() || !a.CreatedAt.Equal(a.UpdatedAt) {
		t.Fatalf("expected created_at == updated_at on insert: %+v", a)
	}
	if _, ok := repo.appointments[a.ID]; !ok {
		t.Fatalf("appointment not persisted")
	}
}

func TestCreateAppointment_Validation(t *testing.T) {
	svc := NewFleetService(newStubFleetRepo(), zerolog.Nop())

	cases := []struct {
		name   string
		mutate func(*ports.AppointmentInput)
		want   error
	}{
		{"missing asset type", func(in *ports.AppointmentInput) { in.AssetTypeID = 0 }, domain.ErrInvalidInput},
		{"missing service center", func(in *ports.AppointmentInput) { in.ServiceCenterID = 0 }, domain.ErrInvalidInput},
		{"missing date", func(in *ports.AppointmentInput) { in.AppointmentDate = time.Time{} }, domain.ErrInvalidInput},
		{"unknown asset type", func(in *ports.AppointmentInput) { in.AssetTypeID = 99 }, domain.ErrInvalidReference},
		{"unknown service center", func(in *ports.AppointmentInput) { in.ServiceCenterID = 99 }, domain.ErrInvalidReference},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validAppointmentInput()
			tc.mutate(&in)
			if _, err := svc.CreateAppointment(context.Background(), in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateAppointment_RepositoryErrorPropagates(t *testing.T) {
	repo := newStubFleetRepo()
	repo.findErr = errors.New("connection reset")
	svc := NewFleetService(repo, zerolog.Nop())

	_, err := svc.CreateAppointment(context.Background(), validAppointmentInput())
	if err == nil || errors.Is(err, domain.ErrInvalidReference) {
		t.Fatalf("expected raw repository error, got %v", err)
	}
}

func TestUpdateAppointment(t *testing.T) {
	repo := newStubFleetRepo()
	svc := NewFleetService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.CreateAppointment(ctx, validAppointmentInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	later := created.CreatedAt.Add(time.Minute)
	svc.now = func() time.Time { return later }

	in := validAppointmentInput()
	in.AssetTypeID = 2
	in.AssetMake = "Mercedes"
	updated, err := svc.UpdateAppointment(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.AssetTypeID != 2 || updated.AssetMake != "Mercedes" {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) || !updated.UpdatedAt.Equal(later.UTC()) {
		t.Fatalf("unexpected timestamps: %+v", updated)
	}

	if _, err := svc.UpdateAppointment(ctx, 999, in); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestDeleteAppointment(t *testing.T) {
	repo := newStubFleetRepo()
	svc := NewFleetService(repo, zerolog.Nop())
	ctx := context.Background()

	created, _ := svc.CreateAppointment(ctx, validAppointmentInput())
	if err := svc.DeleteAppointment(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetAppointment(ctx, created.ID); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound after delete, got %v", err)
	}
	if err := svc.DeleteAppointment(ctx, created.ID); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound on second delete, got %v", err)
	}
}

func TestLookups(t *testing.T) {
	svc := NewFleetService(newStubFleetRepo(), zerolog.Nop())
	ctx := context.Background()

	types, err := svc.ListAssetTypes(ctx)
	if err != nil || len(types) != 2 {
		t.Fatalf("ListAssetTypes: %v %v", types, err)
	}
	centers, err := svc.ListServiceCenters(ctx)
	if err != nil || len(centers) != 1 {
		t.Fatalf("ListServiceCenters: %v %v", centers, err)
	}
	if _, err := svc.GetServiceCenter(ctx, 42); !errors.Is(err, domain.ErrServiceCenterNotFound) {
		t.Fatalf("expected ErrServiceCenterNotFound, got %v", err)
	}
	at, err := svc.GetAssetType(ctx, 2)
	if err != nil || at.Name != "Van" {
		t.Fatalf("GetAssetType: %+v %v", at, err)
	}
}
