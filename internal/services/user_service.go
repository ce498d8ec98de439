package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/metrics"
	"campaignhub/internal/models"
)

type UserService struct {
	users       interfaces.UserRepository
	advertisers interfaces.AdvertiserRepository
	influencers interfaces.InfluencerRepository
	tokens      *TokenIssuer
	metrics     *metrics.Metrics
	logger      log.Logger
	hashCost    int
}

func NewUserService(
	users interfaces.UserRepository,
	advertisers interfaces.AdvertiserRepository,
	influencers interfaces.InfluencerRepository,
	tokens *TokenIssuer,
	m *metrics.Metrics,
	logger log.Logger,
) *UserService {
	return &UserService{
		users:       users,
		advertisers: advertisers,
		influencers: influencers,
		tokens:      tokens,
		metrics:     m,
		logger:      logger,
		hashCost:    bcrypt.DefaultCost,
	}
}

// Signup creates the account and its terms agreements together.
func (s *UserService) Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, ValidationError(CodeInvalidRole, "Role must be advertiser or influencer", nil)
	}
	if len(req.TermsAgreed) == 0 {
		return nil, ValidationError(CodeTermsNotAgreed, "You must agree to the terms", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		// bcrypt's limit is in bytes, so multibyte passwords can pass max=72 and still land here.
		return nil, ValidationError(CodeUserValidationError, "Password must be at most 72 bytes",
			map[string]string{"password": "max=72"})
	}
	if err != nil {
		return nil, s.internal("signup", CodeUserCreateError, "Failed to create user", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u, req.TermsAgreed); err != nil {
		if errors.Is(err, interfaces.ErrAlreadyExists) {
			return nil, ConflictError(CodeUserAlreadyExists, "User already exists")
		}
		return nil, s.internal("signup", CodeUserCreateError, "Failed to create user", err)
	}

	s.metrics.RecordSignup(string(role))
	return &models.SignupResponse{UserID: u.ID, Role: u.Role}, nil
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, UnauthorizedError(CodeInvalidCredentials, "Invalid credentials")
		}
		return nil, s.internal("login", CodeUserFetchError, "Failed to login", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, UnauthorizedError(CodeInvalidCredentials, "Invalid credentials")
	}

	token, expiresIn, err := s.tokens.Issue(u)
	if err != nil {
		return nil, s.internal("login", CodeUserFetchError, "Failed to login", err)
	}
	return &models.LoginResponse{AccessToken: token, ExpiresIn: expiresIn, UserID: u.ID, Role: u.Role}, nil
}

// Me returns the caller's account and whether the profile for its role exists.
func (s *UserService) Me(ctx context.Context, caller models.Caller) (*models.CurrentUserResponse, error) {
	u, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NotFoundError(CodeUserNotFound, "User not found")
		}
		return nil, s.internal("me", CodeUserFetchError, "Failed to fetch user", err)
	}

	var lookupErr error
	switch u.Role {
	case models.RoleAdvertiser:
		_, lookupErr = s.advertisers.IDByUserID(ctx, u.ID)
	case models.RoleInfluencer:
		_, lookupErr = s.influencers.IDByUserID(ctx, u.ID)
	default:
		return nil, s.internal("me", CodeInvalidRole, "User has an unknown role", errors.New(string(u.Role)))
	}

	onboarded := lookupErr == nil
	if lookupErr != nil && !errors.Is(lookupErr, interfaces.ErrNotFound) {
		return nil, s.internal("me", CodeUserFetchError, "Failed to fetch user", lookupErr)
	}
	return &models.CurrentUserResponse{User: *u, Role: u.Role, Onboarded: onboarded}, nil
}

func (s *UserService) internal(op, code, message string, err error) *Error {
	level.Error(s.logger).Log("op", "user."+op, "code", code, "err", err)
	return InternalError(code, message, err)
}
