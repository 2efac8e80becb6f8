package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
)

// FleetRepository implements ports.FleetRepository on three collections.
type FleetRepository struct {
	store *Store
}

func NewFleetRepository(store *Store) *FleetRepository {
	return &FleetRepository{store: store}
}

func (r *FleetRepository) col(name string) *mongo.Collection {
	return r.store.db.Collection(name)
}

var (
	byID = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	// Matches the SQL stores' ORDER BY appointment_date, id.
	byAppointmentDate = options.Find().SetSort(bson.D{
		{Key: "appointment_date", Value: 1},
		{Key: "_id", Value: 1},
	})
)

func findAll[T any](ctx context.Context, col *mongo.Collection, opts *options.FindOptions) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findOne[T any](ctx context.Context, col *mongo.Collection, id int64, notFound error) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v T
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, err
	}
	return &v, nil
}

// insertWithID assigns the next counter value through setID and inserts doc,
// both under one timeout.
func (r *FleetRepository) insertWithID(ctx context.Context, collection string, doc any, setID func(int64)) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.store.nextID(ctx, collection)
	if err != nil {
		return err
	}
	setID(id)
	_, err = r.col(collection).InsertOne(ctx, doc)
	return err
}

func (r *FleetRepository) ListAssetTypes(ctx context.Context) ([]domain.AssetType, error) {
	out, err := findAll[domain.AssetType](ctx, r.col(collectionAssetTypes), byID)
	if err != nil {
		return nil, fmt.Errorf("list asset types: %w", err)
	}
	return out, nil
}

func (r *FleetRepository) FindAssetType(ctx context.Context, id int64) (*domain.AssetType, error) {
	at, err := findOne[domain.AssetType](ctx, r.col(collectionAssetTypes), id, domain.ErrAssetTypeNotFound)
	if err != nil && !errors.Is(err, domain.ErrAssetTypeNotFound) {
		return nil, fmt.Errorf("find asset type: %w", err)
	}
	return at, err
}

func (r *FleetRepository) CreateAssetType(ctx context.Context, at *domain.AssetType) error {
	if err := r.insertWithID(ctx, collectionAssetTypes, at, func(id int64) { at.ID = id }); err != nil {
		return fmt.Errorf("insert asset type: %w", err)
	}
	return nil
}

func (r *FleetRepository) ListServiceCenters(ctx context.Context) ([]domain.ServiceCenter, error) {
	out, err := findAll[domain.ServiceCenter](ctx, r.col(collectionServiceCenters), byID)
	if err != nil {
		return nil, fmt.Errorf("list service centers: %w", err)
	}
	return out, nil
}

func (r *FleetRepository) FindServiceCenter(ctx context.Context, id int64) (*domain.ServiceCenter, error) {
	sc, err := findOne[domain.ServiceCenter](ctx, r.col(collectionServiceCenters), id, domain.ErrServiceCenterNotFound)
	if err != nil && !errors.Is(err, domain.ErrServiceCenterNotFound) {
		return nil, fmt.Errorf("find service center: %w", err)
	}
	return sc, err
}

func (r *FleetRepository) CreateServiceCenter(ctx context.Context, sc *domain.ServiceCenter) error {
	if err := r.insertWithID(ctx, collectionServiceCenters, sc, func(id int64) { sc.ID = id }); err != nil {
		return fmt.Errorf("insert service center: %w", err)
	}
	return nil
}

func (r *FleetRepository) ListAppointments(ctx context.Context) ([]domain.ServiceAppointment, error) {
	out, err := findAll[domain.ServiceAppointment](ctx, r.col(collectionAppointments), byAppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return out, nil
}

func (r *FleetRepository) FindAppointment(ctx context.Context, id int64) (*domain.ServiceAppointment, error) {
	a, err := findOne[domain.ServiceAppointment](ctx, r.col(collectionAppointments), id, domain.ErrAppointmentNotFound)
	if err != nil && !errors.Is(err, domain.ErrAppointmentNotFound) {
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return a, err
}

func (r *FleetRepository) CreateAppointment(ctx context.Context, a *domain.ServiceAppointment) error {
	if err := r.insertWithID(ctx, collectionAppointments, a, func(id int64) { a.ID = id }); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *FleetRepository) UpdateAppointment(ctx context.Context, a *domain.ServiceAppointment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col(collectionAppointments).ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *FleetRepository) DeleteAppointment(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col(collectionAppointments).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}
