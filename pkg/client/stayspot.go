package client

import (
	"fmt"
	"net/url"
)

// StaySpotClient wraps the REST surface of the api service.
type StaySpotClient struct {
	httpClient *HttpClient
}

func NewStaySpotClient(baseURL string) *StaySpotClient {
	return &StaySpotClient{httpClient: NewHttpClient(baseURL)}
}

func (c *StaySpotClient) HTTP() *HttpClient {
	return c.httpClient
}

func (c *StaySpotClient) SignUp(body any) (*Response, error) {
	return c.httpClient.POST("/api/users", body)
}

func (c *StaySpotClient) Login(credential, password string) (*Response, error) {
	return c.httpClient.POST("/api/session", map[string]string{
		"credential": credential,
		"password":   password,
	})
}

func (c *StaySpotClient) Logout() (*Response, error) {
	return c.httpClient.DELETE("/api/session")
}

func (c *StaySpotClient) Session() (*Response, error) {
	return c.httpClient.GET("/api/session")
}

func (c *StaySpotClient) ListSpots(query url.Values) (*Response, error) {
	path := "/api/spots"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.httpClient.GET(path)
}

func (c *StaySpotClient) GetSpot(id string) (*Response, error) {
	return c.httpClient.GET("/api/spots/" + url.PathEscape(id))
}

func (c *StaySpotClient) CreateSpot(body any) (*Response, error) {
	return c.httpClient.POST("/api/spots", body)
}

func (c *StaySpotClient) UpdateSpot(id string, body any) (*Response, error) {
	return c.httpClient.PUT("/api/spots/"+url.PathEscape(id), body)
}

func (c *StaySpotClient) DeleteSpot(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/spots/" + url.PathEscape(id))
}

func (c *StaySpotClient) AddSpotImage(spotID, imageURL string, preview bool) (*Response, error) {
	return c.httpClient.POST(fmt.Sprintf("/api/spots/%s/images", url.PathEscape(spotID)), map[string]any{
		"url":     imageURL,
		"preview": preview,
	})
}

func (c *StaySpotClient) CreateReview(spotID string, body any) (*Response, error) {
	return c.httpClient.POST(fmt.Sprintf("/api/spots/%s/reviews", url.PathEscape(spotID)), body)
}

func (c *StaySpotClient) SpotReviews(spotID string) (*Response, error) {
	return c.httpClient.GET(fmt.Sprintf("/api/spots/%s/reviews", url.PathEscape(spotID)))
}

func (c *StaySpotClient) CreateBooking(spotID, startDate, endDate string) (*Response, error) {
	return c.httpClient.POST(fmt.Sprintf("/api/spots/%s/bookings", url.PathEscape(spotID)), map[string]string{
		"startDate": startDate,
		"endDate":   endDate,
	})
}

func (c *StaySpotClient) SpotBookings(spotID string) (*Response, error) {
	return c.httpClient.GET(fmt.Sprintf("/api/spots/%s/bookings", url.PathEscape(spotID)))
}

func (c *StaySpotClient) UpdateBooking(id, startDate, endDate string) (*Response, error) {
	return c.httpClient.PUT("/api/bookings/"+url.PathEscape(id), map[string]string{
		"startDate": startDate,
		"endDate":   endDate,
	})
}

func (c *StaySpotClient) DeleteBooking(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/bookings/" + url.PathEscape(id))
}

func (c *StaySpotClient) CurrentBookings() (*Response, error) {
	return c.httpClient.GET("/api/bookings/current")
}
