package auth

import (
	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/core/common/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type RegisterDTO struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	DepartmentID *string `json:"department_id"`
}

func (d RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MaxLength(72)
	v.Field("role", d.Role).Required().Role()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type SessionResponse struct {
	Success bool           `json:"success"`
	User    *internal.User `json:"user"`
	Message string         `json:"message"`
}

type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SessionCheckResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *internal.User `json:"user,omitempty"`
}

// SessionResult is the outcome of a delegated sign-in.
type SessionResult struct {
	User         *internal.User
	SessionToken string
	MaxAge       int
}
