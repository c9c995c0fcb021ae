// Package listing derives the display fields of a spot (average rating,
// preview image, review count) from its reviews and images.
package listing

import (
	"stayspot/pkg/model"
	"stayspot/pkg/sanitizer"
)

const ratingDecimals = 2

// Stats are the derived fields of one spot.
type Stats struct {
	NumReviews   int
	AvgRating    model.Rating
	PreviewImage string
}

// Aggregate computes the stats of a single spot in one pass over its
// reviews and images. Images are expected in creation order; the first one
// flagged as preview wins.
func Aggregate(reviews []*model.Review, images []*model.SpotImage) Stats {
	return Stats{
		NumReviews:   len(reviews),
		AvgRating:    AverageRating(reviews),
		PreviewImage: PreviewImage(images),
	}
}

func AverageRating(reviews []*model.Review) model.Rating {
	if len(reviews) == 0 {
		return model.Rating{}
	}

	total := 0
	for _, r := range reviews {
		total += r.Stars
	}
	return model.NewRating(sanitizer.Round(float64(total)/float64(len(reviews)), ratingDecimals))
}

func PreviewImage(images []*model.SpotImage) string {
	for _, img := range images {
		if img.Preview {
			return img.URL
		}
	}
	return model.NoPreviewImage
}

// AggregateBatch computes stats for many spots from the reviews and images
// of all of them, fetched in one query each. Every spot id gets an entry,
// including spots with no reviews or images.
func AggregateBatch(spotIDs []string, reviews []*model.Review, images []*model.SpotImage) map[string]Stats {
	type acc struct {
		stars   int
		count   int
		preview string
	}

	accs := make(map[string]*acc, len(spotIDs))
	for _, id := range spotIDs {
		accs[id] = &acc{}
	}

	for _, r := range reviews {
		if a, ok := accs[r.SpotID]; ok {
			a.stars += r.Stars
			a.count++
		}
	}

	for _, img := range images {
		if a, ok := accs[img.SpotID]; ok && a.preview == "" && img.Preview {
			a.preview = img.URL
		}
	}

	out := make(map[string]Stats, len(accs))
	for id, a := range accs {
		stats := Stats{
			NumReviews:   a.count,
			PreviewImage: a.preview,
		}
		if a.count > 0 {
			stats.AvgRating = model.NewRating(sanitizer.Round(float64(a.stars)/float64(a.count), ratingDecimals))
		}
		if stats.PreviewImage == "" {
			stats.PreviewImage = model.NoPreviewImage
		}
		out[id] = stats
	}
	return out
}

// Summaries attaches stats to a page of spots, keeping their order.
func Summaries(spots []*model.Spot, reviews []*model.Review, images []*model.SpotImage) []model.SpotSummary {
	ids := make([]string, 0, len(spots))
	for _, s := range spots {
		ids = append(ids, s.ID)
	}
	stats := AggregateBatch(ids, reviews, images)

	out := make([]model.SpotSummary, 0, len(spots))
	for _, s := range spots {
		st := stats[s.ID]
		out = append(out, model.SpotSummary{
			Spot:         *s,
			AvgRating:    st.AvgRating,
			PreviewImage: st.PreviewImage,
		})
	}
	return out
}
