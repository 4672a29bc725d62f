package handlers

import (
	"strings"
	"time"

	"github.com/goyibnazarovasliddin/letters-registery/config"
	"github.com/goyibnazarovasliddin/letters-registery/models"
	"github.com/goyibnazarovasliddin/letters-registery/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IndexRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// GET /api/indices
// Returns every index regardless of status so clients can filter themselves.
func ListIndices(c *fiber.Ctx) error {
	var indices []models.Index
	if err := config.DB.Order("code ASC").Find(&indices).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve indices", err.Error())
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "indices retrieved successfully", indices)
}

// POST /api/indices
func CreateIndex(c *fiber.Ctx) error {
	var req IndexRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}

	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if req.Code == "" || req.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "code and name are required", nil)
	}

	var existing models.Index
	if err := config.DB.First(&existing, "code = ?", req.Code).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "code already exists", nil)
	}

	index := models.Index{Code: req.Code, Name: req.Name, Status: models.IndexActive}
	if err := config.DB.Create(&index).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to create index", err.Error())
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "index created successfully", index)
}

// PUT /api/indices/:id
func UpdateIndex(c *fiber.Ctx) error {
	var index models.Index
	if err := config.DB.First(&index, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "index not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve index", err.Error())
	}

	var req IndexRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}

	if code := strings.TrimSpace(req.Code); code != "" {
		index.Code = code
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		index.Name = name
	}

	if err := config.DB.Save(&index).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to update index", err.Error())
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "index updated successfully", index)
}

// PATCH /api/indices/:id/status
func UpdateIndexStatus(c *fiber.Ctx) error {
	var req struct {
		Status models.IndexStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}
	if !req.Status.IsValid() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "status must be active, archived, or deleted", nil)
	}

	result := config.DB.Model(&models.Index{}).Where("id = ?", c.Params("id")).Update("status", req.Status)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to update index status", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "index not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "index status updated successfully", nil)
}

// DELETE /api/indices/:id
// Soft delete: letters registered under this index keep their numbers.
func DeleteIndex(c *fiber.Ctx) error {
	now := time.Now()
	result := config.DB.Model(&models.Index{}).Where("id = ?", c.Params("id")).
		Updates(map[string]interface{}{"status": models.IndexDeleted, "deleted_at": now})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to delete index", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "index not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "index deleted successfully", nil)
}

// DELETE /api/indices/:id/permanent
func PermanentDeleteIndex(c *fiber.Ctx) error {
	result := config.DB.Delete(&models.Index{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to delete index", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "index not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "index permanently deleted", nil)
}
