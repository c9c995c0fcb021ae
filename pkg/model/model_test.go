package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestRating_JSON(t *testing.T) {
	data, err := json.Marshal(NewRating(4.67))
	require.NoError(t, err)
	assert.Equal(t, "4.67", string(data))

	data, err = json.Marshal(Rating{})
	require.NoError(t, err)
	assert.Equal(t, `"New"`, string(data))

	var r Rating
	require.NoError(t, json.Unmarshal([]byte(`"New"`), &r))
	_, ok := r.Value()
	assert.False(t, ok)

	require.NoError(t, json.Unmarshal([]byte(`3.5`), &r))
	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, 3.5, v)
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2031, time.March, 9)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2031-03-09"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d))

	assert.Error(t, json.Unmarshal([]byte(`"03/09/2031"`), &parsed))
}

func TestDate_BSON(t *testing.T) {
	in := struct {
		Day Date `bson:"day"`
	}{Day: NewDate(2031, time.March, 9)}

	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	var out struct {
		Day Date `bson:"day"`
	}
	require.NoError(t, bson.Unmarshal(raw, &out))
	assert.Equal(t, "2031-03-09", out.Day.String())
}

func TestSpotSummary_JSONShape(t *testing.T) {
	summary := SpotSummary{
		Spot:         Spot{ID: "s1", Name: "Cabin", Price: 120},
		AvgRating:    Rating{},
		PreviewImage: NoPreviewImage,
	}

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "s1", out["id"])
	assert.Equal(t, "Cabin", out["name"])
	assert.Equal(t, "New", out["avgRating"])
	assert.Equal(t, NoPreviewImage, out["previewImage"])
}

func TestBookingForGuest_HidesBooker(t *testing.T) {
	data, err := json.Marshal(BookingForGuest{
		SpotID:    "s1",
		StartDate: NewDate(2031, 1, 1),
		EndDate:   NewDate(2031, 1, 3),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"spotId":"s1","startDate":"2031-01-01","endDate":"2031-01-03"}`, string(data))
}
