package dto

import (
	"strings"

	userdto "github.com/goyibnazarovasliddin/letters-registery/dto/users"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		errors["username"] = "username is required"
	}
	if r.Password == "" {
		errors["password"] = "password is required"
	}

	return errors
}

type LoginResponse struct {
	AccessToken        string              `json:"access_token"`
	RefreshToken       string              `json:"refresh_token"`
	MustChangePassword bool                `json:"must_change_password"`
	User               userdto.UserSummary `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.OldPassword == "" {
		errors["old_password"] = "old_password is required"
	}
	if len(r.NewPassword) < 6 {
		errors["new_password"] = "new_password must be at least 6 characters"
	}

	return errors
}
