package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
	"portfolio-cms-backend/pkg/auth"
	"portfolio-cms-backend/pkg/logger"
	"portfolio-cms-backend/pkg/security"
)

const invalidCredentialsMsg = "Invalid email or password"

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// LoginGuard throttles repeated failed logins for one email.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email string) (bool, time.Duration, error)
	RecordFailure(ctx context.Context, email, ip, requestID string) error
	Reset(ctx context.Context, email string) error
}

type authUsecase struct {
	userRepo domain.UserRepository
	hasher   PasswordHasher
	tokens   auth.TokenService
	guard    LoginGuard
	audit    *security.SecurityLogger
}

func NewAuthUsecase(userRepo domain.UserRepository, hasher PasswordHasher, tokens auth.TokenService, guard LoginGuard, audit *security.SecurityLogger) domain.AuthUsecase {
	if audit == nil {
		audit = security.DefaultLogger()
	}
	return &authUsecase{userRepo: userRepo, hasher: hasher, tokens: tokens, guard: guard, audit: audit}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *authUsecase) issue(user *domain.User) (*domain.AuthResult, error) {
	token, expiresAt, err := u.tokens.Generate(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthResult{User: user.Public(), Token: token, ExpiresAt: expiresAt}, nil
}

// Register always creates a plain user; admins are created through the user admin API.
func (u *authUsecase) Register(ctx context.Context, in domain.CreateUserInput) (*domain.AuthResult, error) {
	email := normalizeEmail(in.Email)
	exists, err := u.userRepo.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, wrap(err)
	}
	if exists {
		return nil, apperror.Conflict("User with this email already exists")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user := &domain.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hash,
		Role:     domain.RoleUser,
		IsActive: true,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, wrap(err)
	}

	u.audit.Log(ctx, security.SecurityEvent{
		Event:        security.EventRegistered,
		SubjectType:  "email",
		SubjectValue: user.Email,
	})
	return u.issue(user)
}

func (u *authUsecase) Login(ctx context.Context, in domain.LoginInput) (*domain.AuthResult, error) {
	email := normalizeEmail(in.Email)

	if u.guard != nil {
		blocked, _, err := u.guard.IsBlocked(ctx, email)
		if err != nil {
			logger.Log.Warn("login guard unavailable", "error", err)
		} else if blocked {
			u.audit.LogLoginFailed(ctx, email, in.IP, in.RequestID, "blocked")
			return nil, apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
		}
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, wrap(err)
	}
	if user == nil || !user.IsActive || !u.hasher.Compare(user.Password, in.Password) {
		reason := "bad_password"
		if user == nil || !user.IsActive {
			reason = "unknown_or_inactive"
		}
		if u.guard == nil {
			u.audit.LogLoginFailed(ctx, email, in.IP, in.RequestID, reason)
		} else if err := u.guard.RecordFailure(ctx, email, in.IP, in.RequestID); err != nil {
			logger.Log.Warn("failed to record login failure", "error", err, "reason", reason)
		}
		return nil, apperror.Unauthorized(invalidCredentialsMsg)
	}

	if u.guard != nil {
		if err := u.guard.Reset(ctx, email); err != nil {
			logger.Log.Warn("failed to reset login failures", "error", err)
		}
	}
	u.audit.Log(ctx, security.SecurityEvent{
		Event:        security.EventLoginSuccess,
		SubjectType:  "email",
		SubjectValue: email,
		IP:           in.IP,
		RequestID:    in.RequestID,
	})
	return u.issue(user)
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := u.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperror.Unauthorized("Token expired")
		}
		return nil, apperror.Unauthorized("Invalid token")
	}
	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("User not found or inactive")
		}
		return nil, wrap(err)
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("User not found or inactive")
	}
	return user, nil
}

func (u *authUsecase) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, "User not found")
	}
	if !user.IsActive {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

// UpdateMe lets a user change their own name and email; role and status are admin-only.
func (u *authUsecase) UpdateMe(ctx context.Context, userID int64, patch domain.UserPatch) (*domain.User, error) {
	user, err := u.Me(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if email != user.Email {
			exists, err := u.userRepo.EmailExists(ctx, email, user.ID)
			if err != nil {
				return nil, wrap(err)
			}
			if exists {
				return nil, apperror.Conflict("Email already in use")
			}
		}
		user.Email = email
	}
	setString(&user.Name, patch.Name)

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, notFoundAs(err, "User not found")
	}
	return user, nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := u.Me(ctx, userID)
	if err != nil {
		return err
	}
	if !u.hasher.Compare(user.Password, current) {
		return apperror.BadRequest("Current password is incorrect")
	}
	hash, err := u.hasher.Hash(next)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return notFoundAs(err, "User not found")
	}
	u.audit.Log(ctx, security.SecurityEvent{
		Event:        security.EventPasswordChanged,
		SubjectType:  "email",
		SubjectValue: user.Email,
	})
	return nil
}
