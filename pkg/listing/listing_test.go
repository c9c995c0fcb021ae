package listing

import (
	"stayspot/pkg/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviews(spotID string, stars ...int) []*model.Review {
	out := make([]*model.Review, 0, len(stars))
	for _, s := range stars {
		out = append(out, &model.Review{SpotID: spotID, Stars: s})
	}
	return out
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name  string
		stars []int
		want  float64
		isNew bool
	}{
		{name: "rounded to two decimals", stars: []int{5, 5, 4}, want: 4.67},
		{name: "single review", stars: []int{3}, want: 3},
		{name: "repeating decimal", stars: []int{1, 2, 2}, want: 1.67},
		{name: "no reviews", stars: nil, isNew: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageRating(reviews("s1", tt.stars...))
			v, ok := got.Value()
			if tt.isNew {
				assert.False(t, ok)
				assert.Equal(t, model.RatingNew, got.String())
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestPreviewImage(t *testing.T) {
	images := []*model.SpotImage{
		{URL: "https://img/1.png", Preview: false},
		{URL: "https://img/2.png", Preview: true},
		{URL: "https://img/3.png", Preview: true},
	}
	assert.Equal(t, "https://img/2.png", PreviewImage(images))
	assert.Equal(t, model.NoPreviewImage, PreviewImage(images[:1]))
	assert.Equal(t, model.NoPreviewImage, PreviewImage(nil))
}

func TestAggregate(t *testing.T) {
	stats := Aggregate(reviews("s1", 5, 5, 4), []*model.SpotImage{{URL: "https://img/p.png", Preview: true}})

	assert.Equal(t, 3, stats.NumReviews)
	v, _ := stats.AvgRating.Value()
	assert.Equal(t, 4.67, v)
	assert.Equal(t, "https://img/p.png", stats.PreviewImage)
}

func TestAggregate_IsLocalPerCall(t *testing.T) {
	first := Aggregate(reviews("a", 1), nil)
	second := Aggregate(reviews("b", 5), nil)

	v1, _ := first.AvgRating.Value()
	v2, _ := second.AvgRating.Value()
	assert.Equal(t, 1.0, v1)
	assert.Equal(t, 5.0, v2)
}

func TestAggregateBatch(t *testing.T) {
	all := append(reviews("a", 5, 4), reviews("b", 2)...)
	all = append(all, reviews("other", 1)...)
	images := []*model.SpotImage{
		{SpotID: "a", URL: "https://img/a1.png"},
		{SpotID: "a", URL: "https://img/a2.png", Preview: true},
		{SpotID: "b", URL: "https://img/b1.png", Preview: true},
		{SpotID: "b", URL: "https://img/b2.png", Preview: true},
	}

	stats := AggregateBatch([]string{"a", "b", "c"}, all, images)
	require.Len(t, stats, 3)

	va, _ := stats["a"].AvgRating.Value()
	assert.Equal(t, 4.5, va)
	assert.Equal(t, 2, stats["a"].NumReviews)
	assert.Equal(t, "https://img/a2.png", stats["a"].PreviewImage)

	assert.Equal(t, "https://img/b1.png", stats["b"].PreviewImage)

	_, ok := stats["c"].AvgRating.Value()
	assert.False(t, ok)
	assert.Equal(t, 0, stats["c"].NumReviews)
	assert.Equal(t, model.NoPreviewImage, stats["c"].PreviewImage)
}

func TestSummaries_KeepOrder(t *testing.T) {
	spots := []*model.Spot{{ID: "b", Name: "B"}, {ID: "a", Name: "A"}}
	out := Summaries(spots, reviews("a", 4), nil)

	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, "a", out[1].ID)
	v, _ := out[1].AvgRating.Value()
	assert.Equal(t, 4.0, v)
}
