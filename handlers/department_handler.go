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

type DepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DepartmentView struct {
	models.Department
	UserCount int64 `json:"user_count"`
}

// GET /api/departments
// Returns every department with its member count so clients can filter by
// status themselves.
func ListDepartments(c *fiber.Ctx) error {
	var departments []models.Department
	if err := config.DB.Order("name ASC").Find(&departments).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve departments", err.Error())
	}

	type memberCount struct {
		DepartmentID uint
		Count        int64
	}
	var counts []memberCount
	err := config.DB.Model(&models.User{}).
		Select("department_id, COUNT(*) AS count").
		Where("department_id IS NOT NULL").
		Group("department_id").
		Scan(&counts).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to count department members", err.Error())
	}

	countByID := make(map[uint]int64, len(counts))
	for _, mc := range counts {
		countByID[mc.DepartmentID] = mc.Count
	}

	views := make([]DepartmentView, 0, len(departments))
	for _, d := range departments {
		views = append(views, DepartmentView{Department: d, UserCount: countByID[d.ID]})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "departments retrieved successfully", views)
}

// POST /api/departments
func CreateDepartment(c *fiber.Ctx) error {
	var req DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "name is required", nil)
	}

	var existing models.Department
	if err := config.DB.First(&existing, "name = ?", req.Name).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "name already exists", nil)
	}

	department := models.Department{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Status:      models.DepartmentActive,
	}
	if err := config.DB.Create(&department).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to create department", err.Error())
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "department created successfully", department)
}

// PUT /api/departments/:id
func UpdateDepartment(c *fiber.Ctx) error {
	var department models.Department
	if err := config.DB.First(&department, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "department not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to retrieve department", err.Error())
	}

	var req DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		department.Name = name
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		department.Description = description
	}

	if err := config.DB.Save(&department).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to update department", err.Error())
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "department updated successfully", department)
}

// PATCH /api/departments/:id/status
func UpdateDepartmentStatus(c *fiber.Ctx) error {
	var req struct {
		Status models.DepartmentStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}
	if !req.Status.IsValid() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "status must be active, inactive, or deleted", nil)
	}

	result := config.DB.Model(&models.Department{}).Where("id = ?", c.Params("id")).Update("status", req.Status)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to update department status", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "department not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "department status updated successfully", nil)
}

// DELETE /api/departments/:id
// Soft delete: members keep their reference; the row stays listed.
func DeleteDepartment(c *fiber.Ctx) error {
	now := time.Now()
	result := config.DB.Model(&models.Department{}).Where("id = ?", c.Params("id")).
		Updates(map[string]interface{}{"status": models.DepartmentDeleted, "deleted_at": now})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to delete department", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "department not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "department deleted successfully", nil)
}

// DELETE /api/departments/:id/permanent
func PermanentDeleteDepartment(c *fiber.Ctx) error {
	result := config.DB.Delete(&models.Department{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to delete department", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "department not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "department permanently deleted", nil)
}
