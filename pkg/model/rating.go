package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RatingNew is shown instead of an average when a spot has no reviews.
const RatingNew = "New"

// Rating is an average star rating that may be absent. It serializes as a
// number or as "New".
type Rating struct {
	value float64
	set   bool
}

func NewRating(value float64) Rating {
	return Rating{value: value, set: true}
}

func (r Rating) Value() (float64, bool) {
	return r.value, r.set
}

func (r Rating) String() string {
	if !r.set {
		return RatingNew
	}
	return fmt.Sprintf("%.2f", r.value)
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.set {
		return json.Marshal(RatingNew)
	}
	return json.Marshal(r.value)
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte(`"`+RatingNew+`"`)) || bytes.Equal(data, []byte("null")) {
		*r = Rating{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("rating must be a number or %q: %w", RatingNew, err)
	}
	*r = NewRating(v)
	return nil
}
