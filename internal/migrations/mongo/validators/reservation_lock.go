package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"owner",
			"expires_at",
			"created_at",
		},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  "^reservation_lock_",
			},
			"owner": bson.M{
				"bsonType": "string",
			},
			"expires_at": bson.M{
				"bsonType": "date",
			},
			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
