package handlers

import (
	"encoding/json"
	"testing"

	"github.com/goyibnazarovasliddin/letters-registery/middleware"
	"github.com/goyibnazarovasliddin/letters-registery/models"
	"github.com/goyibnazarovasliddin/letters-registery/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestMeReturnsAuthenticatedUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "handler-test-secret")
	db := newHandlerTestDB(t)

	department := models.Department{Name: "Accounting", Status: models.DepartmentActive}
	require.NoError(t, db.Create(&department).Error)
	user := models.User{
		Username:     "bobur",
		FullName:     "Bobur Karimov",
		PasswordHash: "x",
		Role:         models.RoleUser,
		Status:       models.UserActive,
		DepartmentID: &department.ID,
	}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Get("/api/auth/me", middleware.RequireAuth(), Me)

	token, _, err := utils.GenerateAccessToken(user)
	require.NoError(t, err)

	req := jsonRequest(t, fiber.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	var summary struct {
		Username       string `json:"username"`
		FullName       string `json:"full_name"`
		DepartmentName string `json:"department_name"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &summary))
	require.Equal(t, "bobur", summary.Username)
	require.Equal(t, "Bobur Karimov", summary.FullName)
	require.Equal(t, "Accounting", summary.DepartmentName)
}

func TestMeRequiresToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "handler-test-secret")
	newHandlerTestDB(t)

	app := fiber.New()
	app.Get("/api/auth/me", middleware.RequireAuth(), Me)

	resp, err := app.Test(jsonRequest(t, fiber.MethodGet, "/api/auth/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestMeRejectsInactiveAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "handler-test-secret")
	db := newHandlerTestDB(t)

	user := models.User{
		Username:     "bobur",
		PasswordHash: "x",
		Role:         models.RoleUser,
		Status:       models.UserActive,
	}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Get("/api/auth/me", middleware.RequireAuth(), Me)

	token, _, err := utils.GenerateAccessToken(user)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", models.UserInactive).Error)

	req := jsonRequest(t, fiber.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
