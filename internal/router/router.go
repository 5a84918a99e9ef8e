package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/maciej3031/todo-app/internal/config"
	"github.com/maciej3031/todo-app/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	taskHandler *handler.TaskHandler,
	pollHandler *handler.PollHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/password-reset", authHandler.ResetPassword)
	api.GET("/seed/poll", seedHandler.SeedPoll)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	// Task routes
	secured.GET("/tasks", taskHandler.List)
	secured.POST("/tasks", taskHandler.Add)
	secured.POST("/tasks/:id/execute", taskHandler.Execute)
	secured.POST("/tasks/:id/undo", taskHandler.Undo)
	secured.POST("/tasks/erase", taskHandler.Erase)

	// Settings routes
	secured.GET("/settings/profile", accountHandler.GetProfile)
	secured.PUT("/settings/profile", accountHandler.ChangeProfile)
	secured.PUT("/settings/page-size", taskHandler.SetPageSize)
	secured.DELETE("/account", accountHandler.DeleteAccount)

	// Poll routes
	secured.GET("/poll", pollHandler.Questions)
	secured.GET("/poll/results", pollHandler.Results)
	secured.POST("/poll/vote", pollHandler.Vote)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
