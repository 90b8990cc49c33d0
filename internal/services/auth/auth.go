package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/amaumene/movieshelf/internal/models"
	"github.com/amaumene/movieshelf/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNameNotUnique is returned when registering a taken username
	ErrNameNotUnique = errors.New("username already taken")
	// ErrUnknownUser is returned when no user has the given username
	ErrUnknownUser = errors.New("unknown user")
	// ErrAuthentication is returned when credentials do not match
	ErrAuthentication = errors.New("authentication failed")
)

// Credentials is a registration or login request
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password string `json:"password" validate:"required,min=7,max=72"`
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Service registers and authenticates users
type Service struct {
	repo     *repository.Repository
	mu       *sync.RWMutex
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewService creates an auth service. mu must be the lock that guards repo
// for every other service sharing it.
func NewService(repo *repository.Repository, mu *sync.RWMutex, logger *logrus.Logger) *Service {
	return &Service{
		repo:     repo,
		mu:       mu,
		validate: validator.New(),
		logger:   logger,
	}
}

// AddUser registers a new user with a hashed password
func (s *Service) AddUser(creds Credentials) (*models.User, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if err := s.validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	// hash outside the lock, bcrypt is slow
	hash, err := HashPassword(creds.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo.GetUser(creds.Username) != nil {
		return nil, ErrNameNotUnique
	}
	user := models.NewUser(creds.Username, hash)
	s.repo.AddUser(user)

	s.logger.WithField("username", user.Username).Info("User registered")
	return user, nil
}

// GetUser retrieves a registered user
func (s *Service) GetUser(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user := s.repo.GetUser(username)
	if user == nil {
		return nil, ErrUnknownUser
	}
	return user, nil
}

// Authenticate checks a username and password, returning the user on success
func (s *Service) Authenticate(username, password string) (*models.User, error) {
	s.mu.RLock()
	user := s.repo.GetUser(username)
	s.mu.RUnlock()

	if user == nil {
		return nil, ErrAuthentication
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WithField("username", username).Debug("Password mismatch")
		return nil, ErrAuthentication
	}
	return user, nil
}
