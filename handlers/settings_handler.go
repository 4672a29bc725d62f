package handlers

import (
	"github.com/goyibnazarovasliddin/letters-registery/config"
	"github.com/goyibnazarovasliddin/letters-registery/models"
	"github.com/goyibnazarovasliddin/letters-registery/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/settings
// The settings row is created lazily with past dates disallowed.
func GetSettings(c *fiber.Ctx) error {
	settings, err := loadOrCreateSettings()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve settings", err.Error())
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "settings retrieved successfully", settings)
}

// PUT /api/settings (admin only, enforced at the route)
func UpdateSettings(c *fiber.Ctx) error {
	var req struct {
		AllowPastDates bool `json:"allow_past_dates"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}

	settings, err := loadOrCreateSettings()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve settings", err.Error())
	}

	settings.AllowPastDates = req.AllowPastDates
	if err := config.DB.Save(settings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to update settings", err.Error())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "settings updated successfully", settings)
}

func loadOrCreateSettings() (*models.SystemSettings, error) {
	var settings models.SystemSettings
	err := config.DB.First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	settings = models.SystemSettings{AllowPastDates: false}
	if err := config.DB.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
