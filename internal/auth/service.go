package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"task-agent/internal/config"
	"task-agent/internal/domain"
	"task-agent/internal/errors"
	"task-agent/internal/repository/sqlite"
	"task-agent/internal/validation"
)

// Service handles account creation, credential checks, and session tokens.
type Service struct {
	repo      sqlite.Repository
	secret    []byte
	ttl       time.Duration
	validator *validation.SignupValidator
}

// NewService creates a new auth service
func NewService(repo sqlite.Repository, cfg *config.Config) *Service {
	return &Service{
		repo:      repo,
		secret:    []byte(cfg.Server.SessionSecret),
		ttl:       cfg.Server.SessionTTL,
		validator: validation.NewSignupValidator(),
	}
}

// Signup validates the fields, checks uniqueness, and creates the account.
// The password is stored as a bcrypt hash.
func (s *Service) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.validator.ValidateSignup(username, email, password); err != nil {
		if ve, ok := err.(*validation.ValidationError); ok {
			return nil, errors.NewInputError(ve.GetUserFriendlyMessage())
		}
		return nil, errors.NewInputError(err.Error())
	}

	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		return nil, errors.NewConflictError("Username is already taken.")
	} else if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, errors.NewConflictError("Email is already registered.")
	} else if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewStorageError("hash password", err)
	}

	user := &sqlite.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return toDomainUser(user), nil
}

// Login checks the credentials and returns the account. The same error is
// returned for a missing user and a wrong password.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewAuthError("Invalid username or password.")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.NewAuthError("Invalid username or password.")
	}

	return toDomainUser(user), nil
}

// GetUser loads an account by ID.
func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainUser(user), nil
}

// sessionClaims are the JWT claims carried by a session cookie.
type sessionClaims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// IssueToken creates a signed session token for the user.
func (s *Service) IssueToken(userID int64) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.NewAuthError("Could not create session. Please try again.")
	}
	return signed, nil
}

// VerifyToken checks a session token and returns the user ID it carries.
func (s *Service) VerifyToken(tokenString string) (int64, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.NewAuthError("Authentication required.")
	}
	return claims.UserID, nil
}

func toDomainUser(user *sqlite.User) *domain.User {
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
