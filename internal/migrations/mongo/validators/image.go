package validators

import "go.mongodb.org/mongo-driver/bson"

var SpotImageValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"spot_id", "url", "preview", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":        bson.M{"bsonType": "objectId"},
			"spot_id":    objectIDHex,
			"url":        imageURL,
			"preview":    bson.M{"bsonType": "bool"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}

var ReviewImageValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"review_id", "url", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":        bson.M{"bsonType": "objectId"},
			"review_id":  objectIDHex,
			"url":        imageURL,
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}

var imageURL = bson.M{
	"bsonType":  "string",
	"minLength": 1,
	"maxLength": 2048,
	"pattern":   "^https?://",
}
