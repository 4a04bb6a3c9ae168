package service

import (
	"context"
	"errors"
	"fmt"

	"devhub-api/internal/auth"
	"devhub-api/internal/config"
	"devhub-api/internal/models"
	"devhub-api/internal/repository"
	"devhub-api/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when registering with an email that already exists
	ErrEmailTaken = errors.New("email has already existed")
	// ErrInvalidCredentials is returned for any failed login, regardless of
	// whether the email was unknown or the password mismatched
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned when a requested resource does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrNoProfile is returned when an operation needs a profile the user has not created
	ErrNoProfile = errors.New("there is no profile for this user")
	// ErrNotAuthorised is returned when the acting user does not own the resource
	ErrNotAuthorised = errors.New("user not authorised")
	// ErrAlreadyLiked is returned when liking a post twice
	ErrAlreadyLiked = errors.New("already liked")
	// ErrNotLiked is returned when unliking a post that was never liked
	ErrNotLiked = errors.New("post has not been liked yet")
)

// UserStore persists user records
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ProfileStore persists profile documents
type ProfileStore interface {
	SaveProfile(ctx context.Context, profile *models.Profile) error
	FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]*models.Profile, error)
}

// PostStore persists feed posts
type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	FindPostByID(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context) ([]*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
}

// Store combines all persistence operations the service needs
type Store interface {
	UserStore
	ProfileStore
	PostStore
}

// Mailer sends account emails
type Mailer interface {
	SendWelcome(to, name string) error
}

// Service handles business logic
type Service struct {
	store  Store
	log    *logrus.Logger
	config *config.Config
	mailer Mailer
}

// NewService initializes a new service. mailer may be nil to disable account emails.
func NewService(store Store, log *logrus.Logger, cfg *config.Config, mailer Mailer) *Service {
	return &Service{store: store, log: log, config: cfg, mailer: mailer}
}

// Register creates a new user with a hashed password and derived avatar,
// and returns a freshly minted token
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Avatar:       utils.GravatarURL(email),
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	if s.mailer != nil {
		// Best effort: a mail failure must not fail registration.
		if err := s.mailer.SendWelcome(user.Email, user.Name); err != nil {
			s.log.Warnf("Welcome email for %s not sent: %v", user.Email, err)
		}
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.config.JWTSecret), s.config.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User registered: %s", user.Email)
	return token, nil
}

// Login authenticates a user and returns a token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.config.JWTSecret), s.config.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return token, nil
}

// CurrentUser returns the user record for an authenticated id
func (s *Service) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user together with their profile and posts
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Infof("User deleted: %s", userID)
	return nil
}
