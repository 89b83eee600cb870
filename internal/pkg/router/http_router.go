package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/naijavibes/NaijaVibes/app/controllers"
	"github.com/naijavibes/NaijaVibes/internal/pkg/middleware"
	"github.com/naijavibes/NaijaVibes/internal/pkg/oauth"
	"github.com/naijavibes/NaijaVibes/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware())

	// Wire controllers that carry state
	controllers.InitializeBillingController()
	controllers.InitializeMediaStore()

	// OAuth flows live outside the API group because providers redirect here
	app.Get("/auth/:provider", controllers.HandleOAuthBegin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
	app.Get("/auth/logout", controllers.HandleOAuthLogout)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
