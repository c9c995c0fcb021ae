package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
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
	reviewID   = "64b7f0c2e13f5a0001a1b2e1"
	imageID    = "64b7f0c2e13f5a0001a1b2f1"
)

type mockImageService struct {
	addSpotImageFunc      func(ctx context.Context, userID, spotID string, in *model.SpotImageInput) (*model.SpotImage, error)
	addReviewImageFunc    func(ctx context.Context, userID, reviewID string, in *model.ReviewImageInput) (*model.ReviewImage, error)
	deleteSpotImageFunc   func(ctx context.Context, userID, imageID string) error
	deleteReviewImageFunc func(ctx context.Context, userID, imageID string) error
}

func (m *mockImageService) AddSpotImage(ctx context.Context, userID, spotID string, in *model.SpotImageInput) (*model.SpotImage, error) {
	return m.addSpotImageFunc(ctx, userID, spotID, in)
}

func (m *mockImageService) AddReviewImage(ctx context.Context, userID, reviewID string, in *model.ReviewImageInput) (*model.ReviewImage, error) {
	return m.addReviewImageFunc(ctx, userID, reviewID, in)
}

func (m *mockImageService) DeleteSpotImage(ctx context.Context, userID, imageID string) error {
	return m.deleteSpotImageFunc(ctx, userID, imageID)
}

func (m *mockImageService) DeleteReviewImage(ctx context.Context, userID, imageID string) error {
	return m.deleteReviewImageFunc(ctx, userID, imageID)
}

type testServer struct {
	handler http.Handler
	token   string
}

func newTestServer(t *testing.T, svc *mockImageService) testServer {
	t.Helper()
	tokens := auth.NewTokenManager(testSecret, time.Hour, false)
	token, _, err := tokens.Issue(&model.User{ID: userID, Username: "demo-user"})
	require.NoError(t, err)

	router := httprouter.New()
	NewImageHandler(svc, logger.Discard()).RegisterRoutes(router)
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

func TestAddSpotImage(t *testing.T) {
	svc := &mockImageService{
		addSpotImageFunc: func(ctx context.Context, uid, sid string, in *model.SpotImageInput) (*model.SpotImage, error) {
			assert.Equal(t, userID, uid)
			assert.Equal(t, spotID, sid)
			return &model.SpotImage{ID: imageID, SpotID: sid, URL: in.URL, Preview: in.Preview}, nil
		},
	}
	srv := newTestServer(t, svc)
	body := `{"url":"https://img/a.png","preview":true}`

	rec := srv.do(http.MethodPost, "/api/spots/"+spotID+"/images", body, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(http.MethodPost, "/api/spots/"+spotID+"/images", body, true)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"`+imageID+`","url":"https://img/a.png","preview":true}`, rec.Body.String())
}

func TestAddReviewImage(t *testing.T) {
	svc := &mockImageService{
		addReviewImageFunc: func(ctx context.Context, uid, rid string, in *model.ReviewImageInput) (*model.ReviewImage, error) {
			assert.Equal(t, reviewID, rid)
			return &model.ReviewImage{ID: imageID, ReviewID: rid, URL: in.URL}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodPost, "/api/reviews/"+reviewID+"/images", `{"url":"https://img/r.png"}`, true)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"`+imageID+`","url":"https://img/r.png"}`, rec.Body.String())
}

func TestAddReviewImage_Limit(t *testing.T) {
	svc := &mockImageService{
		addReviewImageFunc: func(ctx context.Context, uid, rid string, in *model.ReviewImageInput) (*model.ReviewImage, error) {
			return nil, apperrors.Forbidden("Maximum number of images for this resource was reached")
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodPost, "/api/reviews/"+reviewID+"/images", `{"url":"https://img/r.png"}`, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Maximum number of images for this resource was reached"}`, rec.Body.String())
}

func TestDeleteImages(t *testing.T) {
	svc := &mockImageService{
		deleteSpotImageFunc: func(ctx context.Context, uid, id string) error {
			return apperrors.NotFound("Spot Image")
		},
		deleteReviewImageFunc: func(ctx context.Context, uid, id string) error {
			assert.Equal(t, imageID, id)
			return nil
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodDelete, "/api/spot-images/"+imageID, "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Spot Image couldn't be found"}`, rec.Body.String())

	rec = srv.do(http.MethodDelete, "/api/review-images/"+imageID, "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(http.MethodDelete, "/api/review-images/"+imageID, "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Successfully deleted"}`, rec.Body.String())
}
