package validators

import "go.mongodb.org/mongo-driver/bson"

var SpaceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"institution_id",
			"name",
			"type",
			"multi_booking",
			"available",
			"slot_duration_min",
			"max_advance_days",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"institution_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 80,
			},

			"type": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"multi_booking": bson.M{
				"bsonType": "bool",
			},

			"available": bson.M{
				"bsonType": "bool",
			},

			"slot_duration_min": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  840,
			},

			"max_advance_days": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
				"maximum":  365,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
