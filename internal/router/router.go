package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskhub/internal/auth"
	"taskhub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	resolver *auth.Resolver,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	taskHandler *handler.TaskHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Task Manager API is running!"})
	})

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes: identity is resolved once here and reused by every
	// handler below.
	secured := api.Group("", auth.Middleware(resolver))

	secured.GET("/me", userHandler.Me)

	// Task routes
	secured.POST("/tasks", taskHandler.CreateTask)
	secured.GET("/tasks", taskHandler.ListTasks)
	secured.GET("/tasks/:id", taskHandler.GetTask)
	secured.PUT("/tasks/:id", taskHandler.UpdateTask)
	secured.DELETE("/tasks/:id", taskHandler.DeleteTask)

	// Admin routes: the role gate composes after identity resolution,
	// never instead of it.
	admin := secured.Group("/admin", auth.AdminOnly())
	admin.GET("/secret", userHandler.AdminSecret)
	admin.GET("/users", userHandler.ListUsers)
	admin.PUT("/users/:id/promote", userHandler.PromoteUser)
	admin.DELETE("/users/:id", userHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
