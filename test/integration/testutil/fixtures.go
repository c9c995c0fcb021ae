package testutil

type SpotBuilder struct {
	spot map[string]any
}

func NewSpotBuilder() *SpotBuilder {
	return &SpotBuilder{
		spot: map[string]any{
			"address":     "123 Disney Lane",
			"city":        "San Francisco",
			"state":       "California",
			"country":     "United States of America",
			"lat":         37.7645358,
			"lng":         -122.4730327,
			"name":        "App Academy",
			"description": "Place where web developers are created",
			"price":       123.0,
		},
	}
}

func (b *SpotBuilder) WithName(name string) *SpotBuilder {
	b.spot["name"] = name
	return b
}

func (b *SpotBuilder) WithPrice(price float64) *SpotBuilder {
	b.spot["price"] = price
	return b
}

func (b *SpotBuilder) WithLat(lat float64) *SpotBuilder {
	b.spot["lat"] = lat
	return b
}

func (b *SpotBuilder) Build() map[string]any {
	out := make(map[string]any, len(b.spot))
	for k, v := range b.spot {
		out[k] = v
	}
	return out
}
