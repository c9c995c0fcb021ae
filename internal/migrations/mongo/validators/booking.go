package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"spot_id",
			"user_id",
			"start_date",
			"end_date",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"spot_id": objectIDHex,
			"user_id": objectIDHex,

			"start_date": bson.M{
				"bsonType": "date",
			},

			"end_date": bson.M{
				"bsonType": "date",
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

// BookingLockValidator covers the per spot ledger, keyed by the spot id.
var BookingLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "version"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":        objectIDHex,
			"version":    bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
