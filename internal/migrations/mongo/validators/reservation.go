package validators

import "go.mongodb.org/mongo-driver/bson"

// Times are minutes since midnight. end_time may pass 1440 when the last
// slot of the day runs past midnight.
var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"space_id",
			"requester_id",
			"date",
			"start_time",
			"end_time",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"space_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"requester_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
			},

			"start_time": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
				"maximum":  1439,
			},

			"end_time": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"note": bson.M{
				"bsonType":  "string",
				"maxLength": 300,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
