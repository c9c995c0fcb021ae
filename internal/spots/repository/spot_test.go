package repository

import (
	"stayspot/internal/spots/filter"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func float(v float64) *float64 { return &v }

func TestSearchQuery(t *testing.T) {
	f := filter.Filter{
		Page:  1,
		Size:  20,
		Lat:   filter.Range{Min: float(10), Max: float(20)},
		Price: filter.Range{Max: float(0)},
	}

	assert.Equal(t, bson.M{
		"lat":   bson.M{"$gte": 10.0, "$lte": 20.0},
		"price": bson.M{"$lte": 0.0},
	}, searchQuery(f))
}

func TestSearchQuery_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, searchQuery(filter.Filter{Page: 1, Size: 20}))
}
