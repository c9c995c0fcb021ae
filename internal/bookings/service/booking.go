package service

import (
	"context"
	"errors"
	"net/http"
	bookingserrors "stayspot/internal/bookings/errors"
	"stayspot/internal/bookings/repository"
	"stayspot/internal/bookings/validator"
	spotserrors "stayspot/internal/spots/errors"
	"stayspot/pkg/config"
	apperrors "stayspot/pkg/errors"
	"stayspot/pkg/events"
	"stayspot/pkg/listing"
	"stayspot/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	resourceBooking = "Booking"
	resourceSpot    = "Spot"

	MessagePastBooking    = "Past bookings can't be modified"
	MessageStartedBooking = "Bookings that have been started can't be deleted"
)

// SpotBookings is the booking list of a spot. Exactly one of the slices is
// set depending on whether the caller owns the spot.
type SpotBookings struct {
	Owner []model.BookingForOwner
	Guest []model.BookingForGuest
}

type BookingService interface {
	ListBySpot(ctx context.Context, userID, spotID string) (*SpotBookings, error)
	ListByUser(ctx context.Context, userID string) ([]model.BookingWithSpot, error)
	Create(ctx context.Context, userID, spotID string, in *model.BookingInput) (*model.Booking, error)
	Update(ctx context.Context, userID, bookingID string, in *model.BookingInput) (*model.Booking, error)
	Delete(ctx context.Context, userID, bookingID string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	locks     repository.BookingLockRepository
	stores    Stores
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	locks repository.BookingLockRepository,
	stores Stores,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		locks:     locks,
		stores:    stores,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) ListBySpot(ctx context.Context, userID, spotID string) (*SpotBookings, error) {
	spot, err := s.spot(ctx, spotID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindBySpot(ctx, spotID)
	if err != nil {
		s.cfg.Log.Error("Failed to list spot bookings", "spot_id", spotID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	if spot.OwnerID != userID {
		guest := make([]model.BookingForGuest, 0, len(bookings))
		for _, b := range bookings {
			guest = append(guest, model.BookingForGuest{SpotID: b.SpotID, StartDate: b.StartDate, EndDate: b.EndDate})
		}
		return &SpotBookings{Guest: guest}, nil
	}

	userIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		userIDs = append(userIDs, b.UserID)
	}
	users, err := s.stores.Users.FindByIDs(ctx, userIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookers", "spot_id", spotID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	byID := make(map[string]*model.PublicUser, len(users))
	for _, u := range users {
		public := u.Public()
		byID[u.ID] = &public
	}

	owner := make([]model.BookingForOwner, 0, len(bookings))
	for _, b := range bookings {
		owner = append(owner, model.BookingForOwner{User: byID[b.UserID], Booking: *b})
	}
	return &SpotBookings{Owner: owner}, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID string) ([]model.BookingWithSpot, error) {
	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list user bookings", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	spotIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		spotIDs = append(spotIDs, b.SpotID)
	}
	spots, err := s.stores.Spots.FindByIDs(ctx, spotIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to load booked spots", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	images, err := s.stores.SpotImages.FindBySpotIDs(ctx, spotIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to load spot images", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	ids := make([]string, 0, len(spots))
	for _, spot := range spots {
		ids = append(ids, spot.ID)
	}
	stats := listing.AggregateBatch(ids, nil, images)
	previews := make(map[string]*model.SpotPreview, len(spots))
	for _, spot := range spots {
		preview := spot.Preview(stats[spot.ID].PreviewImage)
		previews[spot.ID] = &preview
	}

	out := make([]model.BookingWithSpot, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, model.BookingWithSpot{Booking: *b, Spot: previews[b.SpotID]})
	}
	return out, nil
}

// Create books a spot for userID. The ledger touch, the conflict check and
// the insert share one transaction, so two overlapping requests for the
// same spot cannot both commit.
func (s *bookingService) Create(ctx context.Context, userID, spotID string, in *model.BookingInput) (*model.Booking, error) {
	spot, err := s.spot(ctx, spotID)
	if err != nil {
		return nil, err
	}
	if spot.OwnerID == userID {
		s.cfg.Log.Warn("Owner tried to book own spot", "spot_id", spotID, "user_id", userID)
		return nil, apperrors.Forbidden("")
	}

	req, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	var booking *model.Booking
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.reserve(sessCtx, spotID, "", req); err != nil {
			return err
		}
		booking = &model.Booking{SpotID: spotID, UserID: userID, StartDate: req.Start, EndDate: req.End}
		return s.repo.Create(sessCtx, booking)
	})
	if err != nil {
		return nil, s.txError(err, "Failed to create booking", "spot_id", spotID)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.BookingCreated, Key: spotID, Payload: booking})
	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"spot_id", spotID,
		"user_id", userID,
		"start_date", booking.StartDate.String(),
		"end_date", booking.EndDate.String(),
	)
	return booking, nil
}

func (s *bookingService) Update(ctx context.Context, userID, bookingID string, in *model.BookingInput) (*model.Booking, error) {
	booking, err := s.booking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		s.cfg.Log.Warn("Booking update denied", "id", bookingID, "user_id", userID)
		return nil, apperrors.Forbidden("")
	}
	if booking.EndDate.Before(s.today()) {
		return nil, apperrors.Forbidden(MessagePastBooking)
	}

	req, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.reserve(sessCtx, booking.SpotID, booking.ID, req); err != nil {
			return err
		}
		booking.StartDate = req.Start
		booking.EndDate = req.End
		if err := s.repo.Update(sessCtx, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFound(resourceBooking)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, s.txError(err, "Failed to update booking", "id", bookingID)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.BookingUpdated, Key: booking.SpotID, Payload: booking})
	s.cfg.Log.Info("Booking updated successfully", "id", bookingID)
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, userID, bookingID string) error {
	booking, err := s.booking(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.UserID != userID {
		spot, err := s.stores.Spots.FindByID(ctx, booking.SpotID)
		if err != nil && !errors.Is(err, spotserrors.ErrNotFound) {
			s.cfg.Log.Error("Failed to retrieve spot", "id", booking.SpotID, "error", err)
			return apperrors.Internal("Failed to retrieve spot", err)
		}
		if spot == nil || spot.OwnerID != userID {
			s.cfg.Log.Warn("Booking delete denied", "id", bookingID, "user_id", userID)
			return apperrors.Forbidden("")
		}
	}
	if !booking.StartDate.After(s.today()) {
		return apperrors.Forbidden(MessageStartedBooking)
	}

	if err := s.repo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFound(resourceBooking)
		}
		s.cfg.Log.Error("Failed to delete booking", "id", bookingID, "error", err)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.BookingDeleted, Key: booking.SpotID, Payload: map[string]string{"id": bookingID}})
	s.cfg.Log.Info("Booking deleted successfully", "id", bookingID)
	return nil
}

// reserve runs inside a transaction. It bumps the spot's ledger, makes sure
// the spot still exists and rejects req if it collides with any booking of
// the spot other than skipID.
func (s *bookingService) reserve(sessCtx mongo.SessionContext, spotID, skipID string, req Stay) error {
	if err := s.locks.Touch(sessCtx, spotID); err != nil {
		return err
	}
	if _, err := s.stores.Spots.FindByID(sessCtx, spotID); err != nil {
		if errors.Is(err, spotserrors.ErrNotFound) {
			return apperrors.NotFound(resourceSpot)
		}
		return err
	}

	bookings, err := s.repo.FindBySpot(sessCtx, spotID)
	if err != nil {
		return err
	}
	existing := make([]Stay, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != skipID {
			existing = append(existing, stayOf(b))
		}
	}

	if fields := CheckConflicts(req, existing); fields != nil {
		return apperrors.Conflict(MessageAlreadyBooked, http.StatusForbidden, fields)
	}
	return nil
}

func (s *bookingService) validate(in *model.BookingInput) (Stay, error) {
	start, end, fields, err := s.validator.Validate(in)
	if err != nil {
		return Stay{}, apperrors.Internal("Failed to validate booking", err)
	}
	if fields != nil {
		s.cfg.Log.Warn("Booking validation failed", "fields", fields)
		return Stay{}, apperrors.Validation(fields)
	}

	req := Stay{Start: start, End: end}
	if fields := CheckRange(req, s.today()); fields != nil {
		s.cfg.Log.Warn("Booking dates rejected", "fields", fields)
		return Stay{}, apperrors.Validation(fields)
	}
	return req, nil
}

func (s *bookingService) today() model.Date {
	return model.DateOf(s.now().UTC())
}

func (s *bookingService) spot(ctx context.Context, spotID string) (*model.Spot, error) {
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

func (s *bookingService) booking(ctx context.Context, bookingID string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.NotFound(resourceBooking)
		}
		s.cfg.Log.Error("Failed to retrieve booking", "id", bookingID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	return booking, nil
}

func (s *bookingService) txError(err error, message string, args ...any) error {
	if apperrors.IsAppError(err) {
		s.cfg.Log.Warn(message, append(args, "error", err)...)
		return err
	}
	s.cfg.Log.Error(message, append(args, "error", err)...)
	return apperrors.Internal(message, err)
}
