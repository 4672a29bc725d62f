package handlers

import (
	"github.com/goyibnazarovasliddin/letters-registery/config"
	"github.com/goyibnazarovasliddin/letters-registery/middleware"
	"github.com/goyibnazarovasliddin/letters-registery/models"
	"github.com/goyibnazarovasliddin/letters-registery/utils"
	"github.com/goyibnazarovasliddin/letters-registery/utils/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/files/:id/download
// Redirects to a presigned S3 URL. Only the letter's owner or an admin may
// download its files.
func DownloadFile(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "authorization context missing", nil)
	}

	var file models.File
	if err := config.DB.First(&file, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "file not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve file", err.Error())
	}

	var letter models.Letter
	if err := config.DB.First(&letter, "id = ?", file.LetterID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "letter not found", nil)
	}
	if !actor.IsAdmin() && letter.UserID != actor.UserID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "you do not have permission for this file", nil)
	}

	url, err := storage.GetPresignedURL(file.StorageKey)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to presign download URL", err.Error())
	}

	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}
