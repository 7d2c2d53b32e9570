package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lincyaw/storefront/internal/domain/identity"
	"github.com/lincyaw/storefront/internal/domain/shared"
)

// TokenService issues and validates bearer tokens. Implemented by the
// infrastructure layer.
type TokenService interface {
	// Issue creates a signed token for the user
	Issue(user *identity.User) (token string, expiresAt time.Time, err error)

	// Validate parses a token and returns the subject's id and admin
	// flag
	Validate(token string) (userID uuid.UUID, isAdmin bool, err error)
}

// ErrInvalidCredentials is returned on a failed login. The same error
// covers unknown email and wrong password so the response does not
// reveal which one it was.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// AuthService handles account registration, login and profile
// management
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenService
	logger   *zap.Logger
}

// NewAuthService creates an auth application service
func NewAuthService(userRepo identity.UserRepository, tokens TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates an account and issues a token for it
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Name, email, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.issueFor(user)
}

// Login verifies credentials and issues a token
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("failed to record login time",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}

	return s.issueFor(user)
}

// Refresh issues a fresh token for an already-authenticated caller so
// a client can extend its session before the current token expires
func (s *AuthService) Refresh(ctx context.Context, userID uuid.UUID) (*AuthResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issueFor(user)
}

// GetProfile returns the caller's own account
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// UpdateProfile applies the non-nil fields of the request to the
// caller's own account
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := user.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			existing, err := s.userRepo.FindByEmail(ctx, email)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			if existing != nil {
				return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
			}
			if err := user.SetEmail(email); err != nil {
				return nil, err
			}
		}
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ListUsers returns a paginated page of accounts for the admin view
func (s *AuthService) ListUsers(ctx context.Context, filter shared.Filter) (*UserListResponse, error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *ToUserResponse(&users[i])
	}

	return &UserListResponse{
		Users:    responses,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *AuthService) issueFor(user *identity.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("token issuance failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_ISSUE_FAILED", "Failed to issue access token")
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}
