package validator

import (
	"stayspot/pkg/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func validInput() *model.SpotInput {
	return &model.SpotInput{
		Address:     "123 Disney Lane",
		City:        "San Francisco",
		State:       "California",
		Country:     "United States of America",
		Lat:         f64(37.7645358),
		Lng:         f64(-122.4730327),
		Name:        "App Academy",
		Description: "Place where web developers are created",
		Price:       f64(123),
	}
}

func TestValidate(t *testing.T) {
	v := NewSpotValidator()

	tests := []struct {
		name   string
		modify func(in *model.SpotInput)
		want   map[string]string
	}{
		{
			name:   "valid",
			modify: func(in *model.SpotInput) {},
		},
		{
			name: "zero coordinates and price are allowed",
			modify: func(in *model.SpotInput) {
				in.Lat, in.Lng, in.Price = f64(0), f64(0), f64(0)
			},
		},
		{
			name: "every field reported",
			modify: func(in *model.SpotInput) {
				*in = model.SpotInput{}
			},
			want: map[string]string{
				"address":     "Street address is required",
				"city":        "City is required",
				"state":       "State is required",
				"country":     "Country is required",
				"lat":         "Latitude is not valid",
				"lng":         "Longitude is not valid",
				"name":        "Name is required",
				"description": "Description is required",
				"price":       "Price per day is required",
			},
		},
		{
			name: "out of range values",
			modify: func(in *model.SpotInput) {
				in.Lat = f64(90.5)
				in.Lng = f64(-180.5)
				in.Price = f64(-1)
				in.Name = "This name is much longer than fifty characters in total"
			},
			want: map[string]string{
				"lat":   "Latitude is not valid",
				"lng":   "Longitude is not valid",
				"price": "Price per day must be more than $0",
				"name":  "Name must be less than 50 characters",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(in)

			got, err := v.Validate(in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
