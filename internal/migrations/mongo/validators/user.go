package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"name",
			"email",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 120,
			},

			"email": bson.M{
				"bsonType":  "string",
				"pattern":   "^[^@\\s]+@[^@\\s]+$",
				"maxLength": 120,
			},

			"cpf": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]{0,11}$",
			},
		},
	},
}
