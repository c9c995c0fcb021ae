package service

import (
	"context"
	"errors"
	"net/http"
	userserrors "stayspot/internal/users/errors"
	"stayspot/internal/users/repository"
	"stayspot/internal/users/validator"
	"stayspot/pkg/auth"
	"stayspot/pkg/config"
	apperrors "stayspot/pkg/errors"
	"stayspot/pkg/events"
	"stayspot/pkg/model"
	"stayspot/pkg/sanitizer"
)

const (
	MessageInvalidCredentials = "Invalid credentials"
	MessageUserExists         = "User already exists"
	MessageEmailTaken         = "User with that email already exists"
	MessageUsernameTaken      = "User with that username already exists"
)

type UserService interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	publisher events.Publisher,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *userService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	s.sanitizeSignup(req)

	fields, err := s.validator.ValidateSignup(req)
	if err != nil {
		return nil, apperrors.Internal("Failed to validate user", err)
	}
	if fields != nil {
		s.cfg.Log.Warn("Signup validation failed", "fields", fields)
		return nil, apperrors.Validation(fields)
	}

	emailTaken, usernameTaken, err := s.repo.Taken(ctx, req.Email, req.Username)
	if err != nil {
		s.cfg.Log.Error("Failed to check existing users", "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}
	if emailTaken || usernameTaken {
		return nil, userExists(emailTaken, usernameTaken)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("Failed to create user", err)
	}

	user := &model.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: hashed,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, userserrors.ErrDuplicateEmail):
			return nil, userExists(true, false)
		case errors.Is(err, userserrors.ErrDuplicateUsername):
			return nil, userExists(false, true)
		case errors.Is(err, userserrors.ErrDuplicate):
			return nil, userExists(true, true)
		}
		s.cfg.Log.Error("Failed to create user", "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Type:    events.UserCreated,
		Key:     user.ID,
		Payload: user.Public(),
	})
	s.cfg.Log.Info("User created successfully", "id", user.ID, "username", user.Username)
	return user, nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	req.Credential = sanitizer.TrimAndNormalize(req.Credential)

	fields, err := s.validator.ValidateLogin(req)
	if err != nil {
		return nil, apperrors.Internal("Failed to validate credentials", err)
	}
	if fields != nil {
		return nil, apperrors.Validation(fields)
	}

	user, err := s.repo.FindByCredential(ctx, req.Credential)
	if err != nil {
		if !errors.Is(err, userserrors.ErrNotFound) {
			s.cfg.Log.Error("Failed to look up user", "error", err)
			return nil, apperrors.Internal("Failed to log in", err)
		}
		// Emails are stored lower case.
		user, err = s.repo.FindByCredential(ctx, sanitizer.NormalizeEmail(req.Credential))
		if err != nil {
			if errors.Is(err, userserrors.ErrNotFound) {
				return nil, apperrors.Unauthorized(MessageInvalidCredentials)
			}
			return nil, apperrors.Internal("Failed to log in", err)
		}
	}

	ok, err := auth.CheckPassword(user.HashedPassword, req.Password)
	if err != nil {
		s.cfg.Log.Error("Failed to verify password", "id", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}
	if !ok {
		s.cfg.Log.Warn("Login rejected", "id", user.ID)
		return nil, apperrors.Unauthorized(MessageInvalidCredentials)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) || errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

func (s *userService) sanitizeSignup(req *model.SignupRequest) {
	req.FirstName = sanitizer.TrimAndNormalize(req.FirstName)
	req.LastName = sanitizer.TrimAndNormalize(req.LastName)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Username = sanitizer.NormalizeUsername(req.Username)
}

func userExists(email, username bool) *apperrors.AppError {
	fields := map[string]string{}
	if email {
		fields["email"] = MessageEmailTaken
	}
	if username {
		fields["username"] = MessageUsernameTaken
	}
	return apperrors.Conflict(MessageUserExists, http.StatusInternalServerError, fields)
}
