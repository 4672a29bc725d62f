package users

import (
	"strings"
	"time"

	"github.com/goyibnazarovasliddin/letters-registery/models"
)

type AdminCreateUserRequest struct {
	Username     string            `json:"username"`
	FullName     string            `json:"full_name"`
	Position     string            `json:"position"`
	Password     string            `json:"password"`
	Role         models.Role       `json:"role"`
	Status       models.UserStatus `json:"status"`
	DepartmentID *uint             `json:"department_id"`
}

type AdminUpdateUserRequest struct {
	FullName     *string            `json:"full_name"`
	Position     *string            `json:"position"`
	Password     *string            `json:"password"`
	Role         *models.Role       `json:"role"`
	Status       *models.UserStatus `json:"status"`
	DepartmentID *uint              `json:"department_id"`
}

func (r *AdminCreateUserRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		errors["username"] = "username is required"
	}
	if len(r.Password) < 6 {
		errors["password"] = "password must be at least 6 characters"
	}
	if r.Role != "" && !r.Role.IsValid() {
		errors["role"] = "role must be admin or user"
	}
	if r.Status != "" && !r.Status.IsValid() {
		errors["status"] = "status must be active, inactive, or deleted"
	}

	return errors
}

func (r *AdminUpdateUserRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Password != nil && len(*r.Password) < 6 {
		errors["password"] = "password must be at least 6 characters"
	}
	if r.Role != nil && !r.Role.IsValid() {
		errors["role"] = "role must be admin or user"
	}
	if r.Status != nil && !r.Status.IsValid() {
		errors["status"] = "status must be active, inactive, or deleted"
	}

	return errors
}

type UserSummary struct {
	ID                 uint              `json:"id"`
	Username           string            `json:"username"`
	FullName           string            `json:"full_name"`
	Position           string            `json:"position"`
	Role               models.Role       `json:"role"`
	Status             models.UserStatus `json:"status"`
	MustChangePassword bool              `json:"must_change_password"`
	DepartmentID       *uint             `json:"department_id"`
	DepartmentName     string            `json:"department_name,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

func NewUserSummary(user *models.User) UserSummary {
	if user == nil {
		return UserSummary{}
	}

	summary := UserSummary{
		ID:                 user.ID,
		Username:           user.Username,
		FullName:           user.FullName,
		Position:           user.Position,
		Role:               user.Role,
		Status:             user.Status,
		MustChangePassword: user.MustChangePassword,
		DepartmentID:       user.DepartmentID,
		CreatedAt:          user.CreatedAt,
	}
	if user.Department != nil {
		summary.DepartmentName = user.Department.Name
	}
	return summary
}
