package mongo

import (
	"context"
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
)

func TestAppointmentsSortByDateThenID(t *testing.T) {
	want := bson.D{
		{Key: "appointment_date", Value: 1},
		{Key: "_id", Value: 1},
	}
	if !reflect.DeepEqual(byAppointmentDate.Sort, want) {
		t.Fatalf("appointment sort = %v, want %v", byAppointmentDate.Sort, want)
	}
}

// unreachableStore returns a Store whose client never finds a server. Server
// selection waits far longer than defaultTimeout, so only the per-call timeout
// can end an operation.
func unreachableStore(t *testing.T) *Store {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(time.Hour))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return &Store{client: client, db: client.Database("fleet_test")}
}

func TestCreateAssetType_BoundedByDefaultTimeout(t *testing.T) {
	prev := defaultTimeout
	defaultTimeout = 200 * time.Millisecond
	t.Cleanup(func() { defaultTimeout = prev })

	repo := NewFleetRepository(unreachableStore(t))

	done := make(chan error, 1)
	at := &domain.AssetType{Name: "Truck"}
	go func() { done <- repo.CreateAssetType(context.Background(), at) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected an error without a server")
		}
		if at.ID != 0 {
			t.Fatalf("id assigned without a counter: %d", at.ID)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("CreateAssetType ignored the call timeout")
	}
}
