package service

import (
	"context"
	"errors"
	imageserrors "stayspot/internal/images/errors"
	"stayspot/internal/images/repository"
	"stayspot/internal/images/validator"
	reviewserrors "stayspot/internal/reviews/errors"
	spotserrors "stayspot/internal/spots/errors"
	"stayspot/pkg/config"
	apperrors "stayspot/pkg/errors"
	"stayspot/pkg/events"
	"stayspot/pkg/model"
	"stayspot/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	resourceSpot        = "Spot"
	resourceReview      = "Review"
	resourceSpotImage   = "Spot Image"
	resourceReviewImage = "Review Image"

	MessageImageLimit = "Maximum number of images for this resource was reached"
)

type ImageService interface {
	AddSpotImage(ctx context.Context, userID, spotID string, in *model.SpotImageInput) (*model.SpotImage, error)
	AddReviewImage(ctx context.Context, userID, reviewID string, in *model.ReviewImageInput) (*model.ReviewImage, error)
	DeleteSpotImage(ctx context.Context, userID, imageID string) error
	DeleteReviewImage(ctx context.Context, userID, imageID string) error
}

type imageService struct {
	spotImages   repository.SpotImageRepository
	reviewImages repository.ReviewImageRepository
	spots        SpotLookup
	ledger       SpotLedger
	reviews      ReviewStore
	validator    *validator.ImageValidator
	publisher    events.Publisher
	cfg          *config.Config
}

func NewImageService(
	spotImages repository.SpotImageRepository,
	reviewImages repository.ReviewImageRepository,
	spots SpotLookup,
	ledger SpotLedger,
	reviews ReviewStore,
	validator *validator.ImageValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ImageService {
	return &imageService{
		spotImages:   spotImages,
		reviewImages: reviewImages,
		spots:        spots,
		ledger:       ledger,
		reviews:      reviews,
		validator:    validator,
		publisher:    publisher,
		cfg:          cfg,
	}
}

// AddSpotImage re-reads the spot after touching its ledger inside the
// transaction, so an upload racing a spot delete either fails with 404 or
// is removed by the delete's cascade.
func (s *imageService) AddSpotImage(ctx context.Context, userID, spotID string, in *model.SpotImageInput) (*model.SpotImage, error) {
	if err := s.ownedSpot(ctx, userID, spotID); err != nil {
		return nil, err
	}

	in.URL = sanitizer.NormalizeURL(in.URL)
	if err := s.check(s.validator.ValidateSpotImage(in)); err != nil {
		return nil, err
	}

	var image *model.SpotImage
	err := s.spotImages.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.ledger.Touch(sessCtx, spotID); err != nil {
			return err
		}
		if err := s.ownedSpot(sessCtx, userID, spotID); err != nil {
			return err
		}

		image = &model.SpotImage{SpotID: spotID, URL: in.URL, Preview: in.Preview}
		return s.spotImages.Create(sessCtx, image)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to create spot image", "spot_id", spotID, "error", err)
		return nil, apperrors.Internal("Failed to create spot image", err)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.SpotImageCreated, Key: spotID, Payload: image})
	s.cfg.Log.Info("Spot image created successfully", "id", image.ID, "spot_id", spotID)
	return image, nil
}

// AddReviewImage enforces the per review image cap. The review's image
// version is bumped before counting so two uploads racing for the last slot
// conflict and one of them retries against the new count.
func (s *imageService) AddReviewImage(ctx context.Context, userID, reviewID string, in *model.ReviewImageInput) (*model.ReviewImage, error) {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, reviewserrors.ErrNotFound) || errors.Is(err, reviewserrors.ErrInvalidID) {
			return nil, apperrors.NotFound(resourceReview)
		}
		s.cfg.Log.Error("Failed to retrieve review", "id", reviewID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve review", err)
	}
	if review.UserID != userID {
		s.cfg.Log.Warn("Review image upload denied", "review_id", reviewID, "user_id", userID)
		return nil, apperrors.Forbidden("")
	}

	in.URL = sanitizer.NormalizeURL(in.URL)
	if err := s.check(s.validator.ValidateReviewImage(in)); err != nil {
		return nil, err
	}

	var image *model.ReviewImage
	err = s.reviewImages.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.reviews.TouchImages(sessCtx, reviewID); err != nil {
			if errors.Is(err, reviewserrors.ErrNotFound) {
				return apperrors.NotFound(resourceReview)
			}
			return err
		}

		count, err := s.reviewImages.CountByReview(sessCtx, reviewID)
		if err != nil {
			return err
		}
		if count >= int64(s.cfg.MaxReviewImages) {
			return apperrors.Forbidden(MessageImageLimit)
		}

		image = &model.ReviewImage{ReviewID: reviewID, URL: in.URL}
		return s.reviewImages.Create(sessCtx, image)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			s.cfg.Log.Warn("Review image rejected", "review_id", reviewID, "error", err)
			return nil, err
		}
		s.cfg.Log.Error("Failed to create review image", "review_id", reviewID, "error", err)
		return nil, apperrors.Internal("Failed to create review image", err)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.ReviewImageCreated, Key: review.SpotID, Payload: image})
	s.cfg.Log.Info("Review image created successfully", "id", image.ID, "review_id", reviewID)
	return image, nil
}

func (s *imageService) DeleteSpotImage(ctx context.Context, userID, imageID string) error {
	image, err := s.spotImages.FindByID(ctx, imageID)
	if err != nil {
		return s.lookupError(err, resourceSpotImage, imageID)
	}

	spot, err := s.spots.FindByID(ctx, image.SpotID)
	if err != nil {
		// An image whose spot is gone is orphaned; treat it as missing.
		if errors.Is(err, spotserrors.ErrNotFound) {
			return apperrors.NotFound(resourceSpotImage)
		}
		s.cfg.Log.Error("Failed to retrieve spot", "id", image.SpotID, "error", err)
		return apperrors.Internal("Failed to retrieve spot", err)
	}
	if spot.OwnerID != userID {
		s.cfg.Log.Warn("Spot image delete denied", "id", imageID, "user_id", userID)
		return apperrors.Forbidden("")
	}

	if err := s.spotImages.Delete(ctx, imageID); err != nil {
		return s.deleteError(err, resourceSpotImage, imageID)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.SpotImageDeleted, Key: image.SpotID, Payload: map[string]string{"id": imageID}})
	s.cfg.Log.Info("Spot image deleted successfully", "id", imageID)
	return nil
}

func (s *imageService) DeleteReviewImage(ctx context.Context, userID, imageID string) error {
	image, err := s.reviewImages.FindByID(ctx, imageID)
	if err != nil {
		return s.lookupError(err, resourceReviewImage, imageID)
	}

	review, err := s.reviews.FindByID(ctx, image.ReviewID)
	if err != nil {
		if errors.Is(err, reviewserrors.ErrNotFound) {
			return apperrors.NotFound(resourceReviewImage)
		}
		s.cfg.Log.Error("Failed to retrieve review", "id", image.ReviewID, "error", err)
		return apperrors.Internal("Failed to retrieve review", err)
	}
	if review.UserID != userID {
		s.cfg.Log.Warn("Review image delete denied", "id", imageID, "user_id", userID)
		return apperrors.Forbidden("")
	}

	if err := s.reviewImages.Delete(ctx, imageID); err != nil {
		return s.deleteError(err, resourceReviewImage, imageID)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.ReviewImageDeleted, Key: review.SpotID, Payload: map[string]string{"id": imageID}})
	s.cfg.Log.Info("Review image deleted successfully", "id", imageID)
	return nil
}

func (s *imageService) check(fields map[string]string, err error) error {
	if err != nil {
		return apperrors.Internal("Failed to validate image", err)
	}
	if fields != nil {
		s.cfg.Log.Warn("Image validation failed", "fields", fields)
		return apperrors.Validation(fields)
	}
	return nil
}

func (s *imageService) lookupError(err error, resource, id string) error {
	if errors.Is(err, imageserrors.ErrNotFound) || errors.Is(err, imageserrors.ErrInvalidID) {
		return apperrors.NotFound(resource)
	}
	s.cfg.Log.Error("Failed to retrieve image", "resource", resource, "id", id, "error", err)
	return apperrors.Internal("Failed to retrieve image", err)
}

func (s *imageService) deleteError(err error, resource, id string) error {
	if errors.Is(err, imageserrors.ErrNotFound) {
		return apperrors.NotFound(resource)
	}
	s.cfg.Log.Error("Failed to delete image", "resource", resource, "id", id, "error", err)
	return apperrors.Internal("Failed to delete image", err)
}

func (s *imageService) ownedSpot(ctx context.Context, userID, spotID string) error {
	spot, err := s.spots.FindByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, spotserrors.ErrNotFound) || errors.Is(err, spotserrors.ErrInvalidID) {
			return apperrors.NotFound(resourceSpot)
		}
		s.cfg.Log.Error("Failed to retrieve spot", "id", spotID, "error", err)
		return apperrors.Internal("Failed to retrieve spot", err)
	}
	if spot.OwnerID != userID {
		s.cfg.Log.Warn("Spot image upload denied", "spot_id", spotID, "user_id", userID)
		return apperrors.Forbidden("")
	}
	return nil
}
