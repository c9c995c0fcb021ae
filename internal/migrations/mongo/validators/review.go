package validators

import "go.mongodb.org/mongo-driver/bson"

var ReviewValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"spot_id",
			"review",
			"stars",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"user_id": objectIDHex,
			"spot_id": objectIDHex,

			"review": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"stars": bson.M{
				"bsonType": bson.A{"int", "long"},
				"minimum":  1,
				"maximum":  5,
			},

			// Bumped on every image upload to serialize the image cap check.
			"image_version": bson.M{
				"bsonType": bson.A{"int", "long"},
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
