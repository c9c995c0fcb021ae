package service

import (
	"context"
	"errors"
	spotserrors "stayspot/internal/spots/errors"
	"stayspot/internal/spots/filter"
	"stayspot/internal/spots/repository"
	"stayspot/internal/spots/validator"
	"stayspot/pkg/config"
	apperrors "stayspot/pkg/errors"
	"stayspot/pkg/events"
	"stayspot/pkg/listing"
	"stayspot/pkg/model"
	"stayspot/pkg/sanitizer"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

const resourceSpot = "Spot"

type SpotService interface {
	Search(ctx context.Context, f filter.Filter) (*model.SpotList, error)
	ListByOwner(ctx context.Context, ownerID string) (*model.SpotList, error)
	GetDetail(ctx context.Context, id string) (*model.SpotDetail, error)
	Create(ctx context.Context, ownerID string, in *model.SpotInput) (*model.Spot, error)
	Update(ctx context.Context, userID, spotID string, in *model.SpotInput) (*model.Spot, error)
	Delete(ctx context.Context, userID, spotID string) error
}

type spotService struct {
	repo      repository.SpotRepository
	stores    Stores
	validator *validator.SpotValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewSpotService(
	repo repository.SpotRepository,
	stores Stores,
	validator *validator.SpotValidator,
	publisher events.Publisher,
	cfg *config.Config,
) SpotService {
	return &spotService{
		repo:      repo,
		stores:    stores,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *spotService) Search(ctx context.Context, f filter.Filter) (*model.SpotList, error) {
	spots, err := s.repo.Search(ctx, f)
	if err != nil {
		s.cfg.Log.Error("Failed to search spots", "page", f.Page, "size", f.Size, "error", err)
		return nil, apperrors.Internal("Failed to retrieve spots", err)
	}

	summaries, err := s.summarize(ctx, spots)
	if err != nil {
		return nil, err
	}
	return &model.SpotList{Spots: summaries, Page: f.Page, Size: f.Size}, nil
}

func (s *spotService) ListByOwner(ctx context.Context, ownerID string) (*model.SpotList, error) {
	spots, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list owner spots", "owner_id", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve spots", err)
	}

	summaries, err := s.summarize(ctx, spots)
	if err != nil {
		return nil, err
	}
	return &model.SpotList{Spots: summaries}, nil
}

func (s *spotService) GetDetail(ctx context.Context, id string) (*model.SpotDetail, error) {
	spot, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		reviews               []*model.Review
		images                []*model.SpotImage
		owner                 *model.User
		errReviews, errImages error
		wg                    sync.WaitGroup
	)
	wg.Add(3)

	go func() {
		defer wg.Done()
		reviews, errReviews = s.stores.Reviews.FindBySpotIDs(ctx, []string{spot.ID})
	}()

	go func() {
		defer wg.Done()
		images, errImages = s.stores.SpotImages.FindBySpotIDs(ctx, []string{spot.ID})
	}()

	go func() {
		defer wg.Done()
		// A missing owner leaves Owner null rather than failing the page.
		u, err := s.stores.Users.FindByID(ctx, spot.OwnerID)
		if err != nil {
			s.cfg.Log.Warn("Spot owner lookup failed", "id", spot.ID, "owner_id", spot.OwnerID, "error", err)
			return
		}
		owner = u
	}()

	wg.Wait()
	if errReviews != nil {
		s.cfg.Log.Error("Failed to load spot reviews", "id", id, "error", errReviews)
		return nil, apperrors.Internal("Failed to retrieve spot", errReviews)
	}
	if errImages != nil {
		s.cfg.Log.Error("Failed to load spot images", "id", id, "error", errImages)
		return nil, apperrors.Internal("Failed to retrieve spot", errImages)
	}

	stats := listing.Aggregate(reviews, images)
	detail := &model.SpotDetail{
		Spot:          *spot,
		NumReviews:    stats.NumReviews,
		AvgStarRating: stats.AvgRating,
		SpotImages:    make([]model.SpotImage, 0, len(images)),
	}
	for _, img := range images {
		detail.SpotImages = append(detail.SpotImages, *img)
	}
	if owner != nil {
		public := owner.Public()
		detail.Owner = &public
	}
	return detail, nil
}

func (s *spotService) Create(ctx context.Context, ownerID string, in *model.SpotInput) (*model.Spot, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	spot := &model.Spot{OwnerID: ownerID}
	in.Apply(spot)

	if err := s.repo.Create(ctx, spot); err != nil {
		s.cfg.Log.Error("Failed to create spot", "owner_id", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to create spot", err)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.SpotCreated, Key: spot.ID, Payload: spot})
	s.cfg.Log.Info("Spot created successfully", "id", spot.ID, "owner_id", ownerID)
	return spot, nil
}

func (s *spotService) Update(ctx context.Context, userID, spotID string, in *model.SpotInput) (*model.Spot, error) {
	spot, err := s.owned(ctx, userID, spotID)
	if err != nil {
		return nil, err
	}

	if err := s.validate(in); err != nil {
		return nil, err
	}
	in.Apply(spot)

	if err := s.repo.Update(ctx, spot); err != nil {
		if errors.Is(err, spotserrors.ErrNotFound) {
			return nil, apperrors.NotFound(resourceSpot)
		}
		s.cfg.Log.Error("Failed to update spot", "id", spotID, "error", err)
		return nil, apperrors.Internal("Failed to update spot", err)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.SpotUpdated, Key: spot.ID, Payload: spot})
	s.cfg.Log.Info("Spot updated successfully", "id", spotID)
	return spot, nil
}

// Delete removes the spot with its images, reviews (and their images),
// bookings and booking ledger in one transaction.
func (s *spotService) Delete(ctx context.Context, userID, spotID string) error {
	if _, err := s.owned(ctx, userID, spotID); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		reviews, err := s.stores.Reviews.FindBySpotIDs(sessCtx, []string{spotID})
		if err != nil {
			return err
		}
		reviewIDs := make([]string, 0, len(reviews))
		for _, r := range reviews {
			reviewIDs = append(reviewIDs, r.ID)
		}

		if err := s.stores.ReviewImages.DeleteByReviewIDs(sessCtx, reviewIDs); err != nil {
			return err
		}
		if err := s.stores.Reviews.DeleteBySpot(sessCtx, spotID); err != nil {
			return err
		}
		if err := s.stores.SpotImages.DeleteBySpot(sessCtx, spotID); err != nil {
			return err
		}
		if err := s.stores.Bookings.DeleteBySpot(sessCtx, spotID); err != nil {
			return err
		}
		// Also conflicts with any booking transaction in flight for this spot.
		if err := s.stores.BookingLedger.Delete(sessCtx, spotID); err != nil {
			return err
		}
		if err := s.repo.Delete(sessCtx, spotID); err != nil {
			if errors.Is(err, spotserrors.ErrNotFound) {
				return apperrors.NotFound(resourceSpot)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		s.cfg.Log.Error("Failed to delete spot", "id", spotID, "error", err)
		return apperrors.Internal("Failed to delete spot", err)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.SpotDeleted, Key: spotID, Payload: map[string]string{"id": spotID}})
	s.cfg.Log.Info("Spot deleted successfully", "id", spotID)
	return nil
}

func (s *spotService) get(ctx context.Context, id string) (*model.Spot, error) {
	spot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, spotserrors.ErrNotFound) || errors.Is(err, spotserrors.ErrInvalidID) {
			return nil, apperrors.NotFound(resourceSpot)
		}
		s.cfg.Log.Error("Failed to retrieve spot", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve spot", err)
	}
	return spot, nil
}

// owned loads the spot and checks that userID owns it. A missing spot wins
// over a foreign one.
func (s *spotService) owned(ctx context.Context, userID, spotID string) (*model.Spot, error) {
	spot, err := s.get(ctx, spotID)
	if err != nil {
		return nil, err
	}
	if spot.OwnerID != userID {
		s.cfg.Log.Warn("Spot access denied", "id", spotID, "user_id", userID)
		return nil, apperrors.Forbidden("")
	}
	return spot, nil
}

func (s *spotService) validate(in *model.SpotInput) error {
	s.sanitize(in)

	fields, err := s.validator.Validate(in)
	if err != nil {
		return apperrors.Internal("Failed to validate spot", err)
	}
	if fields != nil {
		s.cfg.Log.Warn("Spot validation failed", "fields", fields)
		return apperrors.Validation(fields)
	}
	return nil
}

func (s *spotService) sanitize(in *model.SpotInput) {
	in.Address = sanitizer.TrimAndNormalize(in.Address)
	in.City = sanitizer.TrimAndNormalize(in.City)
	in.State = sanitizer.TrimAndNormalize(in.State)
	in.Country = sanitizer.TrimAndNormalize(in.Country)
	in.Name = sanitizer.TrimAndNormalize(in.Name)
	in.Description = sanitizer.NormalizeText(in.Description)
	if in.Lat != nil {
		lat := sanitizer.RoundCoordinate(*in.Lat)
		in.Lat = &lat
	}
	if in.Lng != nil {
		lng := sanitizer.RoundCoordinate(*in.Lng)
		in.Lng = &lng
	}
	if in.Price != nil {
		price := sanitizer.RoundPrice(*in.Price)
		in.Price = &price
	}
}

// summarize attaches ratings and preview images with one reviews query and
// one images query for the whole page.
func (s *spotService) summarize(ctx context.Context, spots []*model.Spot) ([]model.SpotSummary, error) {
	if len(spots) == 0 {
		return []model.SpotSummary{}, nil
	}

	ids := make([]string, 0, len(spots))
	for _, spot := range spots {
		ids = append(ids, spot.ID)
	}

	reviews, err := s.stores.Reviews.FindBySpotIDs(ctx, ids)
	if err != nil {
		s.cfg.Log.Error("Failed to load reviews for spots", "count", len(ids), "error", err)
		return nil, apperrors.Internal("Failed to retrieve spots", err)
	}
	images, err := s.stores.SpotImages.FindBySpotIDs(ctx, ids)
	if err != nil {
		s.cfg.Log.Error("Failed to load images for spots", "count", len(ids), "error", err)
		return nil, apperrors.Internal("Failed to retrieve spots", err)
	}

	return listing.Summaries(spots, reviews, images), nil
}
