package domain

import (
	"context"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPublic is the user view safe to return to clients.
type UserPublic struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Public() UserPublic {
	return UserPublic{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func UsersPublic(users []User) []UserPublic {
	out := make([]UserPublic, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}

type UserFilter struct {
	Search          string // name or email
	Role            string
	IncludeInactive bool
}

type UserPatch struct {
	Name     *string
	Email    *string
	Role     *string
	IsActive *bool
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Email     string
	Password  string
	IP        string
	RequestID string
}

type AuthResult struct {
	User      UserPublic `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// GetByID returns the user regardless of is_active.
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter UserFilter, page PageRequest) ([]User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type AuthUsecase interface {
	Register(ctx context.Context, in CreateUserInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	// Authenticate resolves a bearer token to an active user.
	Authenticate(ctx context.Context, token string) (*User, error)
	Me(ctx context.Context, userID int64) (*User, error)
	UpdateMe(ctx context.Context, userID int64, patch UserPatch) (*User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
}

type UserUsecase interface {
	List(ctx context.Context, filter UserFilter, page PageRequest) ([]User, Pagination, error)
	Get(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, in CreateUserInput) (*User, error)
	Update(ctx context.Context, actor Actor, id int64, patch UserPatch) (*User, error)
	Delete(ctx context.Context, actor Actor, id int64) error
	ToggleStatus(ctx context.Context, actor Actor, id int64) (*User, error)
	Restore(ctx context.Context, actor Actor, id int64) (*User, error)
}
