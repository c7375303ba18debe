package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reconciliemos/cuentas-api/internal/application/auth"
	"github.com/reconciliemos/cuentas-api/internal/application/usecase"
	"github.com/reconciliemos/cuentas-api/internal/domain/entity"
	"github.com/reconciliemos/cuentas-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	Users     repository.UserRepository
	JWTSecret string
}

// Router registra las rutas de la API. La protección va por ruta (no por
// grupo): el gate re-consulta la cuenta en cada petición y la autorización
// por rol se declara junto a cada operación.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protect := AuthMiddleware(deps.JWTSecret, deps.Users)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", protect, authHandler.Me)
	authGroup.Put("/me/password", protect, authHandler.ChangeMyPassword)

	userHandler := NewUserHandler(deps.UserUC)
	authGroup.Post("/admin/users", protect, adminOnly, userHandler.Create)

	// Users (gestión por admin + foto de perfil)
	users := api.Group("/users")
	pictureHandler := NewPictureHandler(deps.UserUC)

	// Las rutas /me van antes que /:id para que Fiber no capture "me" como ID.
	users.Post("/me/picture", protect, pictureHandler.UploadMine)
	users.Delete("/me/picture", protect, pictureHandler.DeleteMine)

	users.Get("/", protect, adminOnly, userHandler.List)
	users.Get("/:id/picture", pictureHandler.Get) // pública: sirve el binario
	users.Get("/:id", protect, adminOnly, userHandler.GetByID)
	users.Put("/:id/password", protect, adminOnly, userHandler.SetPassword)
	users.Put("/:id", protect, adminOnly, userHandler.Update)
	users.Delete("/:id", protect, adminOnly, userHandler.Delete)
}
