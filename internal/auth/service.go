package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dkruglov/store-api/internal/model"
	"github.com/dkruglov/store-api/internal/storage"
)

// UserStorage defines the interface for user persistence operations.
// This keeps the service independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// Service implements registration, password login and bearer-token
// verification. Passwords are stored as bcrypt hashes.
type Service struct {
	storage UserStorage
	tokens  *JWTManager
}

// NewService creates a new authentication service.
func NewService(storage UserStorage, tokens *JWTManager) *Service {
	return &Service{
		storage: storage,
		tokens:  tokens,
	}
}

// Register creates a new user account with a hashed password.
// Returns ErrUserExists when the username is already taken.
func (s *Service) Register(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	if err := user.Validate(); err != nil {
		return err
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Login verifies the username and password and issues a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// Authenticate extracts the bearer token from the Authorization header
// and resolves the caller identity from its claims. Both "JWT" and
// "Bearer" schemes are accepted.
func (s *Service) Authenticate(r *http.Request) (*Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrUnauthenticated
	}

	parts := strings.Fields(header)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: malformed authorization header", ErrInvalidToken)
	}

	scheme := parts[0]
	if !strings.EqualFold(scheme, "JWT") && !strings.EqualFold(scheme, "Bearer") {
		return nil, fmt.Errorf("%w: unsupported authorization scheme %q", ErrInvalidToken, scheme)
	}

	claims, err := s.tokens.Validate(parts[1])
	if err != nil {
		return nil, err
	}

	return &Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}
