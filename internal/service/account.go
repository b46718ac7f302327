package service

import (
	"context"
	"errors"
	"log/slog"

	"yame/internal/auth"
	"yame/internal/domain"
	"yame/internal/repository"
	"yame/internal/telemetry"
)

// AccountService provides business logic for storefront accounts.
type AccountService interface {
	// Register creates an account plus its linked customer record and signs
	// the new user in.
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)

	// Profile loads the account's contact details.
	Profile(ctx context.Context, userID int64) (*domain.Profile, error)

	// UpdateProfile changes the account's contact details.
	UpdateProfile(ctx context.Context, userID int64, req domain.UpdateProfileRequest) (*domain.Profile, error)

	// ChangePassword rotates the password after verifying the current one.
	ChangePassword(ctx context.Context, userID int64, req domain.ChangePasswordRequest) error
}

type accountService struct {
	store   repository.Store
	tokens  *auth.TokenIssuer
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(store repository.Store, tokens *auth.TokenIssuer, logger *slog.Logger, metrics *telemetry.BusinessMetrics) AccountService {
	return &accountService{
		store:   store,
		tokens:  tokens,
		logger:  logger.With("service", "account"),
		metrics: metrics,
	}
}

func (s *accountService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	const op = "account.register"

	existing, err := s.store.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up account")
	}
	if existing != nil {
		return nil, ErrEmailTaken(op)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, domain.Invalid(op, "Password must be at least 8 characters")
		}
		return nil, domain.Internal(err, op, "failed to hash password")
	}

	userID, err := s.store.Users().Create(ctx, repository.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create account")
	}

	// Every account gets a customer record up front so checkout and profile
	// edits have somewhere to land.
	_, err = s.store.Customers().Create(ctx, repository.CreateCustomerParams{
		UserID:   &userID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create customer record")
	}

	token, expiresIn, err := s.tokens.Issue(userID, domain.RoleCustomer)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to issue token")
	}

	s.logger.InfoContext(ctx, "account registered", "user_id", userID)
	if s.metrics != nil {
		s.metrics.Signups.Inc()
	}

	return &domain.AuthResult{
		Profile: domain.Profile{
			UserID:   userID,
			Email:    req.Email,
			Role:     domain.RoleCustomer,
			FullName: req.FullName,
			Phone:    req.Phone,
		},
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}

func (s *accountService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	const op = "account.login"

	user, err := s.store.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up account")
	}
	if user == nil {
		s.countLoginFailure("user_not_found")
		return nil, ErrInvalidCredentials(op)
	}

	if err := auth.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.countLoginFailure("invalid_password")
			return nil, ErrInvalidCredentials(op)
		}
		return nil, domain.Internal(err, op, "failed to verify password")
	}

	token, expiresIn, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to issue token")
	}

	s.logger.InfoContext(ctx, "login succeeded", "user_id", user.ID, "role", user.Role)
	if s.metrics != nil {
		s.metrics.Logins.WithLabelValues(user.Role).Inc()
	}

	profile, err := s.profileOf(ctx, op, user)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{Profile: *profile, Token: token, ExpiresIn: expiresIn}, nil
}

func (s *accountService) Profile(ctx context.Context, userID int64) (*domain.Profile, error) {
	const op = "account.profile"

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load account")
	}
	if user == nil {
		return nil, domain.NotFound(op, "account", "")
	}
	return s.profileOf(ctx, op, user)
}

func (s *accountService) UpdateProfile(ctx context.Context, userID int64, req domain.UpdateProfileRequest) (*domain.Profile, error) {
	const op = "account.update_profile"

	customer, err := s.store.Customers().GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load customer record")
	}
	if customer == nil {
		return nil, domain.NotFound(op, "account", "")
	}

	err = s.store.Customers().Update(ctx, repository.UpdateCustomerParams{
		ID:       customer.ID,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to update customer record")
	}

	return s.Profile(ctx, userID)
}

func (s *accountService) ChangePassword(ctx context.Context, userID int64, req domain.ChangePasswordRequest) error {
	const op = "account.change_password"

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return domain.Internal(err, op, "failed to load account")
	}
	if user == nil {
		return domain.NotFound(op, "account", "")
	}

	if err := auth.VerifyPassword(req.CurrentPassword, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return domain.Unauthorized(op, "Current password is incorrect")
		}
		return domain.Internal(err, op, "failed to verify password")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return domain.Invalid(op, "Password must be at least 8 characters")
		}
		return domain.Internal(err, op, "failed to hash password")
	}

	if err := s.store.Users().UpdatePassword(ctx, userID, hash); err != nil {
		return domain.Internal(err, op, "failed to update password")
	}

	s.logger.InfoContext(ctx, "password changed", "user_id", userID)
	return nil
}

func (s *accountService) profileOf(ctx context.Context, op string, user *domain.UserAccount) (*domain.Profile, error) {
	profile := &domain.Profile{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		FullName: user.FullName,
		Phone:    user.Phone,
	}
	customer, err := s.store.Customers().GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load customer record")
	}
	if customer != nil {
		profile.Address = customer.Address
	}
	return profile, nil
}

func (s *accountService) countLoginFailure(reason string) {
	if s.metrics != nil {
		s.metrics.LoginFailed.WithLabelValues(reason).Inc()
	}
}
