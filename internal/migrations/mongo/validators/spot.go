package validators

import "go.mongodb.org/mongo-driver/bson"

var SpotValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"owner_id",
			"address",
			"city",
			"state",
			"country",
			"lat",
			"lng",
			"name",
			"description",
			"price",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"owner_id": objectIDHex,

			"address": bson.M{"bsonType": "string", "minLength": 1},
			"city":    bson.M{"bsonType": "string", "minLength": 1},
			"state":   bson.M{"bsonType": "string", "minLength": 1},
			"country": bson.M{"bsonType": "string", "minLength": 1},

			"lat": bson.M{
				"bsonType": "double",
				"minimum":  -90,
				"maximum":  90,
			},

			"lng": bson.M{
				"bsonType": "double",
				"minimum":  -180,
				"maximum":  180,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"description": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"price": bson.M{
				"bsonType": "double",
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

// objectIDHex describes a foreign key stored as the hex form of an ObjectID.
var objectIDHex = bson.M{
	"bsonType":  "string",
	"minLength": 24,
	"maxLength": 24,
}
