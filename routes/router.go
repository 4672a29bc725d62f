package routes

import (
	"github.com/goyibnazarovasliddin/letters-registery/handlers"
	"github.com/goyibnazarovasliddin/letters-registery/middleware"
	"github.com/goyibnazarovasliddin/letters-registery/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Register(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	// Auth
	api.Post("/auth/login", handlers.Login)
	api.Post("/auth/refresh", handlers.RefreshToken)
	api.Get("/auth/me", middleware.RequireAuth(), handlers.Me)
	api.Post("/auth/change-password", middleware.RequireAuth(), handlers.ChangePassword)

	// Letters
	letters := handlers.NewLetterHandler(db)
	letterAPI := api.Group("/letters", middleware.RequireAuth())
	letterAPI.Post("/", letters.CreateLetter)
	letterAPI.Get("/", letters.ListLetters)
	letterAPI.Get("/:id", letters.GetLetterByID)
	letterAPI.Put("/:id", letters.UpdateLetter)
	letterAPI.Post("/:id/register", letters.RegisterLetter)
	letterAPI.Delete("/:id", letters.DeleteLetter)

	// Files
	api.Get("/files/:id/download", middleware.RequireAuth(), handlers.DownloadFile)

	// Indices: reading is open to any authenticated user, mutation is admin-only.
	api.Get("/indices", middleware.RequireAuth(), handlers.ListIndices)
	indexAdmin := api.Group("/indices", middleware.RequireAuth(), middleware.AuthorizeRoles(models.RoleAdmin))
	indexAdmin.Post("/", handlers.CreateIndex)
	indexAdmin.Put("/:id", handlers.UpdateIndex)
	indexAdmin.Patch("/:id/status", handlers.UpdateIndexStatus)
	indexAdmin.Delete("/:id", handlers.DeleteIndex)
	indexAdmin.Delete("/:id/permanent", handlers.PermanentDeleteIndex)

	// Departments: reading is open to any authenticated user, mutation is admin-only.
	api.Get("/departments", middleware.RequireAuth(), handlers.ListDepartments)
	departmentAdmin := api.Group("/departments", middleware.RequireAuth(), middleware.AuthorizeRoles(models.RoleAdmin))
	departmentAdmin.Post("/", handlers.CreateDepartment)
	departmentAdmin.Put("/:id", handlers.UpdateDepartment)
	departmentAdmin.Patch("/:id/status", handlers.UpdateDepartmentStatus)
	departmentAdmin.Delete("/:id", handlers.DeleteDepartment)
	departmentAdmin.Delete("/:id/permanent", handlers.PermanentDeleteDepartment)

	// Settings
	api.Get("/settings", middleware.RequireAuth(), handlers.GetSettings)
	api.Put("/settings", middleware.RequireAuth(), middleware.AuthorizeRoles(models.RoleAdmin), handlers.UpdateSettings)

	// ----- ADMIN USERS CRUD -----
	admin := api.Group("/admin", middleware.RequireAuth(), middleware.AuthorizeRoles(models.RoleAdmin))
	admin.Post("/users", handlers.AdminCreateUser)
	admin.Get("/users", handlers.AdminListUsers) // ?page=&limit=&role=&q=
	admin.Get("/users/:id", handlers.AdminGetUserByID)
	admin.Put("/users/:id", handlers.AdminUpdateUser)
	admin.Delete("/users/:id", handlers.AdminDeleteUser)
}
