package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestToBSON_SortsKeysRecursively(t *testing.T) {
	got := toBSON(map[string]any{
		"title": "Conf",
		"invitees": []any{
			map[string]any{"status": "Invited", "email": "a@x.com"},
		},
	})
	want := bson.D{
		{Key: "invitees", Value: bson.A{bson.D{{Key: "email", Value: "a@x.com"}, {Key: "status", Value: "Invited"}}}},
		{Key: "title", Value: "Conf"},
	}
	assert.Equal(t, want, got)
}

func TestToFilter_ObjectIDForHexRecordID(t *testing.T) {
	oid := bson.NewObjectID()
	f := toFilter(Filter{KeyID: oid.Hex(), "event_id": "e1"})
	assert.Equal(t, bson.D{{Key: KeyID, Value: oid}, {Key: "event_id", Value: "e1"}}, f)

	f = toFilter(Filter{KeyID: "legacy-1"})
	assert.Equal(t, bson.D{{Key: KeyID, Value: "legacy-1"}}, f)
}

func TestFromBSON_PlainTypes(t *testing.T) {
	oid := bson.NewObjectID()
	got := fromBSON(bson.M{
		"_id":      oid,
		"invitees": bson.A{"a@x.com", bson.D{{Key: "email", Value: "b@x.com"}, {Key: "status", Value: "Confirmed"}}},
	})
	assert.Equal(t, map[string]any{
		"_id":      oid.Hex(),
		"invitees": []any{"a@x.com", map[string]any{"email": "b@x.com", "status": "Confirmed"}},
	}, got)
}
