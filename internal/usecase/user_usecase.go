package usecase

import (
	"context"
	"strings"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
	"portfolio-cms-backend/pkg/security"
)

const userNotFoundMsg = "User not found"

type userUsecase struct {
	userRepo domain.UserRepository
	hasher   PasswordHasher
	audit    *security.SecurityLogger
}

func NewUserUsecase(userRepo domain.UserRepository, hasher PasswordHasher, audit *security.SecurityLogger) domain.UserUsecase {
	if audit == nil {
		audit = security.DefaultLogger()
	}
	return &userUsecase{userRepo: userRepo, hasher: hasher, audit: audit}
}

func (u *userUsecase) List(ctx context.Context, filter domain.UserFilter, page domain.PageRequest) ([]domain.User, domain.Pagination, error) {
	return paginate(ctx, page,
		func(ctx context.Context) ([]domain.User, error) { return u.userRepo.List(ctx, filter, page) },
		func(ctx context.Context) (int64, error) { return u.userRepo.Count(ctx, filter) },
	)
}

// Get hides deactivated accounts; deleting a user only clears is_active.
func (u *userUsecase) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperror.NotFound(userNotFoundMsg)
	}
	return user, nil
}

func (u *userUsecase) lookup(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, userNotFoundMsg)
	}
	return user, nil
}

func (u *userUsecase) Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	exists, err := u.userRepo.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, wrap(err)
	}
	if exists {
		return nil, apperror.Conflict("User with this email already exists")
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user := &domain.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, wrap(err)
	}
	return user, nil
}

func (u *userUsecase) Update(ctx context.Context, actor domain.Actor, id int64, patch domain.UserPatch) (*domain.User, error) {
	user, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if email != user.Email {
			exists, err := u.userRepo.EmailExists(ctx, email, id)
			if err != nil {
				return nil, wrap(err)
			}
			if exists {
				return nil, apperror.Conflict("Email already in use")
			}
		}
		user.Email = email
	}
	if patch.IsActive != nil && !*patch.IsActive && actor.ID == id {
		return nil, apperror.BadRequest("You cannot deactivate your own account")
	}
	setString(&user.Name, patch.Name)
	setValue(&user.Role, patch.Role)
	setValue(&user.IsActive, patch.IsActive)

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, notFoundAs(err, userNotFoundMsg)
	}
	u.audit.LogAdminAction(ctx, actor.ID, "update", "user", id)
	return user, nil
}

// Delete deactivates the account; users are never removed from the table.
func (u *userUsecase) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := u.Get(ctx, id); err != nil {
		return err
	}
	if actor.ID == id {
		return apperror.BadRequest("You cannot delete your own account")
	}
	if err := u.userRepo.SetActive(ctx, id, false); err != nil {
		return notFoundAs(err, userNotFoundMsg)
	}
	u.audit.LogAdminAction(ctx, actor.ID, "delete", "user", id)
	return nil
}

func (u *userUsecase) ToggleStatus(ctx context.Context, actor domain.Actor, id int64) (*domain.User, error) {
	user, err := u.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID == id && user.IsActive {
		return nil, apperror.BadRequest("You cannot deactivate your own account")
	}
	if err := u.userRepo.SetActive(ctx, id, !user.IsActive); err != nil {
		return nil, notFoundAs(err, userNotFoundMsg)
	}
	user.IsActive = !user.IsActive
	u.audit.LogAdminAction(ctx, actor.ID, "toggle_status", "user", id)
	return user, nil
}

func (u *userUsecase) Restore(ctx context.Context, actor domain.Actor, id int64) (*domain.User, error) {
	if err := u.userRepo.SetActive(ctx, id, true); err != nil {
		return nil, notFoundAs(err, userNotFoundMsg)
	}
	u.audit.LogAdminAction(ctx, actor.ID, "restore", "user", id)
	return u.Get(ctx, id)
}
