package handlers

import (
	"github.com/goyibnazarovasliddin/letters-registery/config"
	"github.com/goyibnazarovasliddin/letters-registery/dto"
	userdto "github.com/goyibnazarovasliddin/letters-registery/dto/users"
	"github.com/goyibnazarovasliddin/letters-registery/middleware"
	"github.com/goyibnazarovasliddin/letters-registery/models"
	"github.com/goyibnazarovasliddin/letters-registery/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// POST /api/auth/login
func Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "validation error", validationErrors)
	}

	var user models.User
	if err := config.DB.Preload("Department").First(&user, "username = ?", req.Username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "invalid username or password", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load user", err.Error())
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "invalid username or password", nil)
	}
	if !user.IsActive() {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "account is not active", nil)
	}

	accessToken, _, err := utils.GenerateAccessToken(user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to issue token", err.Error())
	}
	refreshToken, _, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to issue token", err.Error())
	}

	response := dto.LoginResponse{
		AccessToken:        accessToken,
		RefreshToken:       refreshToken,
		MustChangePassword: user.MustChangePassword,
		User:               userdto.NewUserSummary(&user),
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "login successful", response)
}

// POST /api/auth/refresh
func RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}

	claims, err := utils.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "invalid or expired refresh token", nil)
	}

	var user models.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "user no longer exists", nil)
	}
	if !user.IsActive() {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "account is not active", nil)
	}

	accessToken, _, err := utils.GenerateAccessToken(user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to issue token", err.Error())
	}
	refreshToken, _, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to issue token", err.Error())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "token refreshed", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// GET /api/auth/me
// Returns the authenticated user so clients can rehydrate a session from a
// stored token.
func Me(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "unauthorized", nil)
	}

	var user models.User
	if err := config.DB.Preload("Department").First(&user, claims.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "user no longer exists", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load user", err.Error())
	}
	if !user.IsActive() {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "account is not active", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "user retrieved successfully", userdto.NewUserSummary(&user))
}

// POST /api/auth/change-password
func ChangePassword(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "unauthorized", nil)
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "validation error", validationErrors)
	}

	var user models.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "user not found", nil)
	}

	if !utils.CheckPassword(user.PasswordHash, req.OldPassword) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "old password is incorrect", nil)
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to hash password", err.Error())
	}

	user.PasswordHash = newHash
	user.MustChangePassword = false
	if err := config.DB.Save(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to update password", err.Error())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "password updated successfully", nil)
}
