package handlers

import (
	"strconv"
	"strings"

	"github.com/goyibnazarovasliddin/letters-registery/config"
	userdto "github.com/goyibnazarovasliddin/letters-registery/dto/users"
	"github.com/goyibnazarovasliddin/letters-registery/models"
	"github.com/goyibnazarovasliddin/letters-registery/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// POST /api/admin/users
func AdminCreateUser(c *fiber.Ctx) error {
	var req userdto.AdminCreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "validation error", validationErrors)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to hash password", err.Error())
	}

	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		FullName:     strings.TrimSpace(req.FullName),
		Position:     strings.TrimSpace(req.Position),
		PasswordHash: hash,
		Role:         req.Role,
		Status:       req.Status,
		DepartmentID: req.DepartmentID,
		// Accounts created by an admin start with a temporary password.
		MustChangePassword: true,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.UserActive
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to create user", err.Error())
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "user created successfully", userdto.NewUserSummary(&user))
}

// GET /api/admin/users?page=&limit=&role=&q=
func AdminListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}

	q := config.DB.Model(&models.User{}).Where("status <> ?", models.UserDeleted)
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if needle := strings.TrimSpace(c.Query("q")); needle != "" {
		pattern := "%" + needle + "%"
		q = q.Where("username LIKE ? OR full_name LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to count users", err.Error())
	}

	var users []models.User
	err := q.Preload("Department").Order("id ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve users", err.Error())
	}

	summaries := make([]userdto.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, userdto.NewUserSummary(&users[i]))
	}

	meta := utils.PaginationMeta{Page: page, Limit: limit, Total: total}
	return utils.PaginatedResponse(c, fiber.StatusOK, "users retrieved successfully", summaries, meta)
}

// GET /api/admin/users/:id
func AdminGetUserByID(c *fiber.Ctx) error {
	var user models.User
	if err := config.DB.Preload("Department").First(&user, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "user not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve user", err.Error())
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "user retrieved successfully", userdto.NewUserSummary(&user))
}

// PUT /api/admin/users/:id
func AdminUpdateUser(c *fiber.Ctx) error {
	var user models.User
	if err := config.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "user not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve user", err.Error())
	}

	var req userdto.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "validation error", validationErrors)
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Position != nil {
		user.Position = strings.TrimSpace(*req.Position)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.DepartmentID != nil {
		user.DepartmentID = req.DepartmentID
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to hash password", err.Error())
		}
		user.PasswordHash = hash
		user.MustChangePassword = true
	}

	if err := config.DB.Save(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to update user", err.Error())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "user updated successfully", userdto.NewUserSummary(&user))
}

// DELETE /api/admin/users/:id
// Users are never hard-deleted; their letters must keep a valid owner.
func AdminDeleteUser(c *fiber.Ctx) error {
	result := config.DB.Model(&models.User{}).Where("id = ?", c.Params("id")).
		Update("status", models.UserDeleted)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to delete user", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "user not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "user deleted successfully", nil)
}
