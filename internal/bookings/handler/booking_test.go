package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"stayspot/internal/bookings/service"
	"stayspot/pkg/auth"
	apperrors "stayspot/pkg/errors"
	"stayspot/pkg/logger"
	"stayspot/pkg/model"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	userID     = "64b7f0c2e13f5a0001a1b2c3"
	spotID     = "64b7f0c2e13f5a0001a1b2d1"
	bookingID  = "64b7f0c2e13f5a0001a1b2f1"
)

type mockBookingService struct {
	listBySpotFunc func(ctx context.Context, userID, spotID string) (*service.SpotBookings, error)
	listByUserFunc func(ctx context.Context, userID string) ([]model.BookingWithSpot, error)
	createFunc     func(ctx context.Context, userID, spotID string, in *model.BookingInput) (*model.Booking, error)
	updateFunc     func(ctx context.Context, userID, bookingID string, in *model.BookingInput) (*model.Booking, error)
	deleteFunc     func(ctx context.Context, userID, bookingID string) error
}

func (m *mockBookingService) ListBySpot(ctx context.Context, userID, spotID string) (*service.SpotBookings, error) {
	return m.listBySpotFunc(ctx, userID, spotID)
}

func (m *mockBookingService) ListByUser(ctx context.Context, userID string) ([]model.BookingWithSpot, error) {
	return m.listByUserFunc(ctx, userID)
}

func (m *mockBookingService) Create(ctx context.Context, userID, spotID string, in *model.BookingInput) (*model.Booking, error) {
	return m.createFunc(ctx, userID, spotID, in)
}

func (m *mockBookingService) Update(ctx context.Context, userID, bookingID string, in *model.BookingInput) (*model.Booking, error) {
	return m.updateFunc(ctx, userID, bookingID, in)
}

func (m *mockBookingService) Delete(ctx context.Context, userID, bookingID string) error {
	return m.deleteFunc(ctx, userID, bookingID)
}

type testServer struct {
	handler http.Handler
	token   string
}

func newTestServer(t *testing.T, svc *mockBookingService) testServer {
	t.Helper()
	tokens := auth.NewTokenManager(testSecret, time.Hour, false)
	token, _, err := tokens.Issue(&model.User{ID: userID, Username: "demo-user"})
	require.NoError(t, err)

	router := httprouter.New()
	NewBookingHandler(svc, logger.Discard()).RegisterRoutes(router)
	return testServer{handler: tokens.Authenticate(router), token: token}
}

func (s testServer) do(method, target, body string, signedIn bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if signedIn {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: s.token})
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestListBySpot_GuestView(t *testing.T) {
	svc := &mockBookingService{
		listBySpotFunc: func(ctx context.Context, uid, sid string) (*service.SpotBookings, error) {
			assert.Equal(t, userID, uid)
			return &service.SpotBookings{Guest: []model.BookingForGuest{{
				SpotID:    sid,
				StartDate: model.NewDate(2030, time.November, 19),
				EndDate:   model.NewDate(2030, time.November, 20),
			}}}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodGet, "/api/spots/"+spotID+"/bookings", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(http.MethodGet, "/api/spots/"+spotID+"/bookings", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Bookings":[{"spotId":"`+spotID+`","startDate":"2030-11-19","endDate":"2030-11-20"}]}`, rec.Body.String())
}

func TestListBySpot_OwnerView(t *testing.T) {
	svc := &mockBookingService{
		listBySpotFunc: func(ctx context.Context, uid, sid string) (*service.SpotBookings, error) {
			return &service.SpotBookings{Owner: []model.BookingForOwner{{
				User:    &model.PublicUser{ID: "u2", FirstName: "Guest", LastName: "User"},
				Booking: model.Booking{ID: bookingID, SpotID: sid, UserID: "u2"},
			}}}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodGet, "/api/spots/"+spotID+"/bookings", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"User":{"id":"u2","firstName":"Guest","lastName":"User"}`)
	assert.Contains(t, rec.Body.String(), `"id":"`+bookingID+`"`)
}

func TestListCurrent_Empty(t *testing.T) {
	svc := &mockBookingService{
		listByUserFunc: func(ctx context.Context, uid string) ([]model.BookingWithSpot, error) {
			return []model.BookingWithSpot{}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodGet, "/api/bookings/current", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Bookings":[]}`, rec.Body.String())
}

func TestCreate_Conflict(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, uid, sid string, in *model.BookingInput) (*model.Booking, error) {
			assert.Equal(t, "2030-11-19", in.StartDate)
			return nil, apperrors.Conflict(service.MessageAlreadyBooked, http.StatusForbidden, map[string]string{
				"startDate": service.MessageStartConflict,
			})
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodPost, "/api/spots/"+spotID+"/bookings", `{"startDate":"2030-11-19","endDate":"2030-11-20"}`, true)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{
		"message": "Sorry, this spot is already booked for the specified dates",
		"errors": {"startDate": "Start date conflicts with an existing booking"}
	}`, rec.Body.String())
}

func TestUpdateAndDelete(t *testing.T) {
	svc := &mockBookingService{
		updateFunc: func(ctx context.Context, uid, bid string, in *model.BookingInput) (*model.Booking, error) {
			assert.Equal(t, bookingID, bid)
			return nil, apperrors.Forbidden(service.MessagePastBooking)
		},
		deleteFunc: func(ctx context.Context, uid, bid string) error {
			return apperrors.Forbidden(service.MessageStartedBooking)
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodPut, "/api/bookings/"+bookingID, `{"startDate":"2030-11-19","endDate":"2030-11-20"}`, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Past bookings can't be modified"}`, rec.Body.String())

	rec = srv.do(http.MethodDelete, "/api/bookings/"+bookingID, "", true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Bookings that have been started can't be deleted"}`, rec.Body.String())
}
