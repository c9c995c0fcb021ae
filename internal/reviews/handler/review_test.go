package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	reviewvalidator "stayspot/internal/reviews/validator"
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
)

type mockReviewService struct {
	listBySpotFunc func(ctx context.Context, spotID string) ([]model.ReviewDetail, error)
	listByUserFunc func(ctx context.Context, userID string) ([]model.UserReview, error)
	createFunc     func(ctx context.Context, userID, spotID string, in *model.ReviewInput) (*model.Review, error)
	updateFunc     func(ctx context.Context, userID, reviewID string, in *model.ReviewInput) (*model.Review, error)
	deleteFunc     func(ctx context.Context, userID, reviewID string) error
}

func (m *mockReviewService) ListBySpot(ctx context.Context, spotID string) ([]model.ReviewDetail, error) {
	return m.listBySpotFunc(ctx, spotID)
}

func (m *mockReviewService) ListByUser(ctx context.Context, userID string) ([]model.UserReview, error) {
	return m.listByUserFunc(ctx, userID)
}

func (m *mockReviewService) Create(ctx context.Context, userID, spotID string, in *model.ReviewInput) (*model.Review, error) {
	return m.createFunc(ctx, userID, spotID, in)
}

func (m *mockReviewService) Update(ctx context.Context, userID, reviewID string, in *model.ReviewInput) (*model.Review, error) {
	return m.updateFunc(ctx, userID, reviewID, in)
}

func (m *mockReviewService) Delete(ctx context.Context, userID, reviewID string) error {
	return m.deleteFunc(ctx, userID, reviewID)
}

type testServer struct {
	handler http.Handler
	token   string
}

func newTestServer(t *testing.T, svc *mockReviewService) testServer {
	t.Helper()
	tokens := auth.NewTokenManager(testSecret, time.Hour, false)
	token, _, err := tokens.Issue(&model.User{ID: userID, Username: "demo-user"})
	require.NoError(t, err)

	router := httprouter.New()
	NewReviewHandler(svc, logger.Discard()).RegisterRoutes(router)
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
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestListBySpot(t *testing.T) {
	svc := &mockReviewService{
		listBySpotFunc: func(ctx context.Context, id string) ([]model.ReviewDetail, error) {
			assert.Equal(t, spotID, id)
			return []model.ReviewDetail{}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodGet, "/api/spots/"+spotID+"/reviews", "", false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Reviews":[]}`, rec.Body.String())
}

func TestListCurrent_RequiresAuth(t *testing.T) {
	svc := &mockReviewService{
		listByUserFunc: func(ctx context.Context, id string) ([]model.UserReview, error) {
			assert.Equal(t, userID, id)
			return []model.UserReview{{
				Review:       model.Review{ID: reviewID, Stars: 4},
				ReviewImages: []model.ReviewImage{},
			}}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodGet, "/api/reviews/current", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(http.MethodGet, "/api/reviews/current", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"`+reviewID+`"`)
	assert.Contains(t, rec.Body.String(), `"ReviewImages":[]`)
}

func TestCreate(t *testing.T) {
	svc := &mockReviewService{
		createFunc: func(ctx context.Context, uid, sid string, in *model.ReviewInput) (*model.Review, error) {
			assert.Equal(t, userID, uid)
			assert.Equal(t, spotID, sid)
			require.NotNil(t, in.Stars)
			return &model.Review{ID: reviewID, UserID: uid, SpotID: sid, Review: in.Review, Stars: int(*in.Stars)}, nil
		},
	}
	srv := newTestServer(t, svc)

	body := `{"review":"This was an awesome spot!","stars":5}`

	rec := srv.do(http.MethodPost, "/api/spots/"+spotID+"/reviews", body, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(http.MethodPost, "/api/spots/"+spotID+"/reviews", body, true)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stars":5`)
}

func TestCreate_FractionalStarsIsFieldError(t *testing.T) {
	svc := &mockReviewService{
		createFunc: func(ctx context.Context, uid, sid string, in *model.ReviewInput) (*model.Review, error) {
			require.NotNil(t, in.Stars)
			assert.Equal(t, 4.5, *in.Stars)
			fields, err := reviewvalidator.NewReviewValidator().Validate(in)
			require.NoError(t, err)
			return nil, apperrors.Validation(fields)
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodPost, "/api/spots/"+spotID+"/reviews", `{"review":"ok","stars":4.5}`, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stars":"Stars must be an integer from 1 to 5"`)
	assert.NotContains(t, rec.Body.String(), "valid JSON")
}

func TestCreate_Duplicate(t *testing.T) {
	svc := &mockReviewService{
		createFunc: func(ctx context.Context, uid, sid string, in *model.ReviewInput) (*model.Review, error) {
			return nil, apperrors.Conflict("User already has a review for this spot", http.StatusInternalServerError, nil)
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodPost, "/api/spots/"+spotID+"/reviews", `{"review":"again","stars":1}`, true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"User already has a review for this spot"}`, rec.Body.String())
}

func TestUpdateAndDelete(t *testing.T) {
	svc := &mockReviewService{
		updateFunc: func(ctx context.Context, uid, rid string, in *model.ReviewInput) (*model.Review, error) {
			assert.Equal(t, reviewID, rid)
			return nil, apperrors.NotFound("Review")
		},
		deleteFunc: func(ctx context.Context, uid, rid string) error {
			assert.Equal(t, reviewID, rid)
			return nil
		},
	}
	srv := newTestServer(t, svc)

	rec := srv.do(http.MethodPut, "/api/reviews/"+reviewID, `{"review":"x","stars":3}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Review couldn't be found"}`, rec.Body.String())

	rec = srv.do(http.MethodDelete, "/api/reviews/"+reviewID, "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Successfully deleted"}`, rec.Body.String())
}
