package service

import (
	"context"
	"errors"
	"net/http"
	reviewserrors "stayspot/internal/reviews/errors"
	"stayspot/internal/reviews/repository"
	"stayspot/internal/reviews/validator"
	spotserrors "stayspot/internal/spots/errors"
	"stayspot/pkg/config"
	apperrors "stayspot/pkg/errors"
	"stayspot/pkg/events"
	"stayspot/pkg/listing"
	"stayspot/pkg/model"
	"stayspot/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	resourceReview = "Review"
	resourceSpot   = "Spot"

	MessageDuplicateReview = "User already has a review for this spot"
)

type ReviewService interface {
	ListBySpot(ctx context.Context, spotID string) ([]model.ReviewDetail, error)
	ListByUser(ctx context.Context, userID string) ([]model.UserReview, error)
	Create(ctx context.Context, userID, spotID string, in *model.ReviewInput) (*model.Review, error)
	Update(ctx context.Context, userID, reviewID string, in *model.ReviewInput) (*model.Review, error)
	Delete(ctx context.Context, userID, reviewID string) error
}

type reviewService struct {
	repo      repository.ReviewRepository
	stores    Stores
	validator *validator.ReviewValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewReviewService(
	repo repository.ReviewRepository,
	stores Stores,
	validator *validator.ReviewValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		repo:      repo,
		stores:    stores,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *reviewService) ListBySpot(ctx context.Context, spotID string) ([]model.ReviewDetail, error) {
	if _, err := s.spot(ctx, spotID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.FindBySpotIDs(ctx, []string{spotID})
	if err != nil {
		s.cfg.Log.Error("Failed to list spot reviews", "spot_id", spotID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}

	users, images, err := s.authorsAndImages(ctx, reviews)
	if err != nil {
		return nil, err
	}

	out := make([]model.ReviewDetail, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, model.ReviewDetail{
			Review:       *r,
			User:         users[r.UserID],
			ReviewImages: imagesOrEmpty(images[r.ID]),
		})
	}
	return out, nil
}

func (s *reviewService) ListByUser(ctx context.Context, userID string) ([]model.UserReview, error) {
	reviews, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list user reviews", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}

	users, images, err := s.authorsAndImages(ctx, reviews)
	if err != nil {
		return nil, err
	}

	spotIDs := make([]string, 0, len(reviews))
	for _, r := range reviews {
		spotIDs = append(spotIDs, r.SpotID)
	}
	previews, err := s.spotPreviews(ctx, spotIDs)
	if err != nil {
		return nil, err
	}

	out := make([]model.UserReview, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, model.UserReview{
			Review:       *r,
			User:         users[r.UserID],
			Spot:         previews[r.SpotID],
			ReviewImages: imagesOrEmpty(images[r.ID]),
		})
	}
	return out, nil
}

// Create checks the spot again after touching its ledger inside the
// transaction, so a review racing a spot delete either fails with 404 or is
// removed by the delete's cascade.
func (s *reviewService) Create(ctx context.Context, userID, spotID string, in *model.ReviewInput) (*model.Review, error) {
	if _, err := s.spot(ctx, spotID); err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	var review *model.Review
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.stores.SpotLedger.Touch(sessCtx, spotID); err != nil {
			return err
		}
		if _, err := s.spot(sessCtx, spotID); err != nil {
			return err
		}

		review = &model.Review{
			UserID: userID,
			SpotID: spotID,
			Review: in.Review,
			Stars:  int(*in.Stars),
		}
		if err := s.repo.Create(sessCtx, review); err != nil {
			if errors.Is(err, reviewserrors.ErrDuplicate) {
				s.cfg.Log.Warn("Duplicate review rejected", "user_id", userID, "spot_id", spotID)
				return apperrors.Conflict(MessageDuplicateReview, http.StatusInternalServerError, map[string]string{
					"spotId": MessageDuplicateReview,
				})
			}
			return err
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to create review", "user_id", userID, "spot_id", spotID, "error", err)
		return nil, apperrors.Internal("Failed to create review", err)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.ReviewCreated, Key: spotID, Payload: review})
	s.cfg.Log.Info("Review created successfully", "id", review.ID, "spot_id", spotID, "user_id", userID)
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, userID, reviewID string, in *model.ReviewInput) (*model.Review, error) {
	review, err := s.authored(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	review.Review = in.Review
	review.Stars = int(*in.Stars)
	if err := s.repo.Update(ctx, review); err != nil {
		if errors.Is(err, reviewserrors.ErrNotFound) {
			return nil, apperrors.NotFound(resourceReview)
		}
		s.cfg.Log.Error("Failed to update review", "id", reviewID, "error", err)
		return nil, apperrors.Internal("Failed to update review", err)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.ReviewUpdated, Key: review.SpotID, Payload: review})
	s.cfg.Log.Info("Review updated successfully", "id", reviewID)
	return review, nil
}

// Delete removes the review together with its images.
func (s *reviewService) Delete(ctx context.Context, userID, reviewID string) error {
	review, err := s.authored(ctx, userID, reviewID)
	if err != nil {
		return err
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.stores.ReviewImages.DeleteByReviewIDs(sessCtx, []string{reviewID}); err != nil {
			return err
		}
		if err := s.repo.Delete(sessCtx, reviewID); err != nil {
			if errors.Is(err, reviewserrors.ErrNotFound) {
				return apperrors.NotFound(resourceReview)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		s.cfg.Log.Error("Failed to delete review", "id", reviewID, "error", err)
		return apperrors.Internal("Failed to delete review", err)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.ReviewDeleted, Key: review.SpotID, Payload: map[string]string{"id": reviewID}})
	s.cfg.Log.Info("Review deleted successfully", "id", reviewID)
	return nil
}

func (s *reviewService) spot(ctx context.Context, spotID string) (*model.Spot, error) {
	spot, err := s.stores.Spots.FindByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, spotserrors.ErrNotFound) || errors.Is(err, spotserrors.ErrInvalidID) {
			return nil, apperrors.NotFound(resourceSpot)
		}
		s.cfg.Log.Error("Failed to retrieve spot", "id", spotID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve spot", err)
	}
	return spot, nil
}

func (s *reviewService) authored(ctx context.Context, userID, reviewID string) (*model.Review, error) {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, reviewserrors.ErrNotFound) || errors.Is(err, reviewserrors.ErrInvalidID) {
			return nil, apperrors.NotFound(resourceReview)
		}
		s.cfg.Log.Error("Failed to retrieve review", "id", reviewID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve review", err)
	}
	if review.UserID != userID {
		s.cfg.Log.Warn("Review access denied", "id", reviewID, "user_id", userID)
		return nil, apperrors.Forbidden("")
	}
	return review, nil
}

func (s *reviewService) validate(in *model.ReviewInput) error {
	in.Review = sanitizer.NormalizeText(in.Review)

	fields, err := s.validator.Validate(in)
	if err != nil {
		return apperrors.Internal("Failed to validate review", err)
	}
	if fields != nil {
		s.cfg.Log.Warn("Review validation failed", "fields", fields)
		return apperrors.Validation(fields)
	}
	return nil
}

func (s *reviewService) authorsAndImages(ctx context.Context, reviews []*model.Review) (map[string]*model.PublicUser, map[string][]model.ReviewImage, error) {
	userIDs := make([]string, 0, len(reviews))
	reviewIDs := make([]string, 0, len(reviews))
	for _, r := range reviews {
		userIDs = append(userIDs, r.UserID)
		reviewIDs = append(reviewIDs, r.ID)
	}

	users, err := s.stores.Users.FindByIDs(ctx, userIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to load review authors", "error", err)
		return nil, nil, apperrors.Internal("Failed to retrieve reviews", err)
	}
	images, err := s.stores.ReviewImages.FindByReviewIDs(ctx, reviewIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to load review images", "error", err)
		return nil, nil, apperrors.Internal("Failed to retrieve reviews", err)
	}

	byUser := make(map[string]*model.PublicUser, len(users))
	for _, u := range users {
		public := u.Public()
		byUser[u.ID] = &public
	}
	byReview := make(map[string][]model.ReviewImage, len(reviewIDs))
	for _, img := range images {
		byReview[img.ReviewID] = append(byReview[img.ReviewID], *img)
	}
	return byUser, byReview, nil
}

func (s *reviewService) spotPreviews(ctx context.Context, spotIDs []string) (map[string]*model.SpotPreview, error) {
	spots, err := s.stores.Spots.FindByIDs(ctx, spotIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to load reviewed spots", "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}
	images, err := s.stores.SpotImages.FindBySpotIDs(ctx, spotIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to load spot images", "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}

	ids := make([]string, 0, len(spots))
	for _, spot := range spots {
		ids = append(ids, spot.ID)
	}
	stats := listing.AggregateBatch(ids, nil, images)

	out := make(map[string]*model.SpotPreview, len(spots))
	for _, spot := range spots {
		preview := spot.Preview(stats[spot.ID].PreviewImage)
		out[spot.ID] = &preview
	}
	return out, nil
}

func imagesOrEmpty(images []model.ReviewImage) []model.ReviewImage {
	if images == nil {
		return []model.ReviewImage{}
	}
	return images
}
