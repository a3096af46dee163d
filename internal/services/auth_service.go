package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/you/agrialert/domain"
)

// dummyHash is a valid bcrypt digest compared against when no user matches
// the login key, so lookup misses cost the same as password mismatches.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	tokenTTL    int64
}

// NewAuthService creates a new auth service. tokenTTLSeconds is reported to
// clients alongside the issued token.
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	tokenTTLSeconds int64,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		tokenTTL:    tokenTTLSeconds,
	}
}

// Register implements domain.AuthService. The required login key depends on
// the role: email for admins, phone for farmers; the other key is dropped so
// each account carries exactly one. Duplicate login keys within the same role
// scope are a conflict.
func (s *AuthServiceImpl) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	switch in.Role {
	case domain.RoleAdmin:
		if in.Email == "" {
			return nil, domain.ErrEmailRequired
		}
		in.Phone = ""
	case domain.RoleFarmer:
		if in.Phone == "" {
			return nil, domain.ErrPhoneRequired
		}
		in.Email = ""
	default:
		return nil, domain.ErrInvalidRole
	}

	existing, err := s.findByLoginKey(ctx, in.Role, in.Email, in.Phone)
	switch {
	case err == nil:
		if existing.Role == in.Role {
			return nil, domain.ErrUserAlreadyExists
		}
	case errors.Is(err, domain.ErrUserNotFound):
		// login key is free
	default:
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hashedPassword,
		Role:         in.Role,
		Address:      in.Address,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login implements domain.AuthService. Every failure path returns
// ErrInvalidCredentials: the caller can never tell a missing account from a
// wrong password.
func (s *AuthServiceImpl) Login(ctx context.Context, loginKey, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, loginKey)
	if err != nil {
		user, err = s.userRepo.FindByPhone(ctx, loginKey)
	}
	if err != nil {
		s.passwordSvc.Verify(dummyHash, password)
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenSvc.Generate(user.ID, user.Role, user.LoginKey())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: s.tokenTTL,
	}, nil
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) findByLoginKey(ctx context.Context, role, email, phone string) (*domain.User, error) {
	if role == domain.RoleAdmin {
		return s.userRepo.FindByEmail(ctx, email)
	}
	return s.userRepo.FindByPhone(ctx, phone)
}
