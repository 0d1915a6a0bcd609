package user

import (
	"errors"
	"time"

	"github.com/frahmantamala/planforge/internal"
	userDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/user"
	"github.com/google/uuid"
)

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

var ErrEmailTaken = errors.New("email already registered")

type User struct {
	ID             string
	Name           string
	Email          string
	HashedPassword string
	Role           internal.Role
	DepartmentID   *string
	Avatar         *string
	AuthProvider   string
	IsActive       bool
	CreatedAt      time.Time
}

// NewPasswordUser builds an active account that signs in with a password.
func NewPasswordUser(name, email, hashedPassword string, role internal.Role, departmentID *string, now time.Time) *User {
	return &User{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           role,
		DepartmentID:   departmentID,
		AuthProvider:   ProviderPassword,
		IsActive:       true,
		CreatedAt:      now,
	}
}

// NewExternalUser builds an account created on first delegated sign-in.
// It has no password and the lowest role.
func NewExternalUser(name, email string, avatar *string, now time.Time) *User {
	return &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         internal.RoleUser,
		Avatar:       avatar,
		AuthProvider: ProviderGoogle,
		IsActive:     true,
		CreatedAt:    now,
	}
}

// Identity strips credentials and returns the request principal.
func (u *User) Identity() *internal.User {
	return &internal.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		Avatar:       u.Avatar,
		AuthProvider: u.AuthProvider,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		Role:           string(u.Role),
		DepartmentID:   u.DepartmentID,
		Avatar:         u.Avatar,
		AuthProvider:   u.AuthProvider,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		Role:           internal.Role(u.Role),
		DepartmentID:   u.DepartmentID,
		Avatar:         u.Avatar,
		AuthProvider:   u.AuthProvider,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}
