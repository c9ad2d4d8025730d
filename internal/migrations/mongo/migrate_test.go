package mongo

import (
	"testing"

	accountsrepo "spacebook/internal/accounts/repository"
	reservationsrepo "spacebook/internal/reservations/repository"
	spacesrepo "spacebook/internal/spaces/repository"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections(t *testing.T) {
	want := map[string]bool{
		spacesrepo.CollectionName:           false,
		accountsrepo.CollectionName:         false,
		reservationsrepo.CollectionName:     false,
		reservationsrepo.LockCollectionName: false,
	}

	for _, def := range Collections() {
		if _, ok := want[def.Name]; !ok {
			t.Errorf("unexpected collection %q", def.Name)
			continue
		}
		want[def.Name] = true

		schema, ok := def.Validator["$jsonSchema"].(bson.M)
		if !ok {
			t.Errorf("%s: validator has no $jsonSchema", def.Name)
			continue
		}
		props, ok := schema["properties"].(bson.M)
		if !ok {
			t.Errorf("%s: schema has no properties", def.Name)
			continue
		}
		id, ok := props["_id"].(bson.M)
		if !ok || id["bsonType"] != "string" {
			t.Errorf("%s: _id must be a string, got %v", def.Name, props["_id"])
		}
		if len(def.Indexes) == 0 {
			t.Errorf("%s: no indexes", def.Name)
		}
	}

	for name, seen := range want {
		if !seen {
			t.Errorf("collection %q missing", name)
		}
	}
}

func TestReservationLocksTTLIndex(t *testing.T) {
	if len(ReservationLocksIndexes) != 1 {
		t.Fatalf("expected one lock index, got %d", len(ReservationLocksIndexes))
	}
	opts := ReservationLocksIndexes[0].Options
	if opts == nil || opts.ExpireAfterSeconds == nil || *opts.ExpireAfterSeconds != 0 {
		t.Errorf("lock index must expire at expires_at")
	}
}
