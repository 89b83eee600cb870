package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/naijavibes/NaijaVibes/app/controllers"
	"github.com/naijavibes/NaijaVibes/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max: 120,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Auth
	auth := v1.Group("/auth")
	auth.Post("/register", controllers.HandleRegister)
	auth.Get("/activate", controllers.HandleActivate)
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/logout", controllers.HandleLogout)
	auth.Get("/me", middleware.RequireAuth(), controllers.HandleMe)

	// News and celebrity posts
	posts := v1.Group("/posts")
	posts.Get("/", controllers.HandleListPosts)
	posts.Get("/:uuid", controllers.HandleGetPost)
	posts.Post("/", middleware.RequireAdmin(), controllers.HandleCreatePost)
	posts.Put("/:uuid", middleware.RequireAdmin(), controllers.HandleUpdatePost)
	posts.Delete("/:uuid", middleware.RequireAdmin(), controllers.HandleDeletePost)
	posts.Post("/:uuid/react", controllers.HandleReactToPost)
	posts.Get("/:uuid/comments", controllers.HandleListPostComments)
	posts.Post("/:uuid/comments", controllers.HandleCreatePostComment)

	// Blog
	blog := v1.Group("/blog")
	blog.Get("/", controllers.HandleListBlogPosts)
	blog.Get("/:uuid", controllers.HandleGetBlogPost)
	blog.Post("/", middleware.RequireAdmin(), controllers.HandleCreateBlogPost)
	blog.Put("/:uuid", middleware.RequireAdmin(), controllers.HandleUpdateBlogPost)
	blog.Delete("/:uuid", middleware.RequireAdmin(), controllers.HandleDeleteBlogPost)
	blog.Post("/:uuid/react", controllers.HandleReactToBlogPost)
	blog.Get("/:uuid/comments", controllers.HandleListBlogComments)
	blog.Post("/:uuid/comments", controllers.HandleCreateBlogComment)

	// Comments moderation
	comments := v1.Group("/comments", middleware.RequireAdmin())
	comments.Post("/:id/approve", controllers.HandleApproveComment)
	comments.Delete("/:id", controllers.HandleDeleteComment)

	// Music catalog
	music := v1.Group("/music")
	music.Get("/", controllers.HandleListMusic)
	music.Get("/:uuid", controllers.HandleGetTrack)
	music.Post("/:uuid/play", controllers.HandlePlayTrack)
	music.Post("/:uuid/download", controllers.HandleDownloadTrack)
	music.Post("/", middleware.RequireAdmin(), controllers.HandleUploadTrack)

	// Dating
	dating := v1.Group("/dating", middleware.RequireAuth())
	dating.Get("/profile", controllers.HandleGetOwnProfile)
	dating.Put("/profile", controllers.HandleUpsertProfile)
	dating.Post("/profile/picture", controllers.HandleUploadProfilePicture)
	dating.Get("/profiles", controllers.HandleBrowseProfiles)
	dating.Get("/profiles/:uuid", controllers.HandleGetProfile)
	dating.Get("/conversations", controllers.HandleListConversations)
	dating.Get("/conversations/:uuid/messages", controllers.HandleListMessages)
	dating.Post("/messages", controllers.HandleSendMessage)

	// Payments. The webhook stays outside the auth guard on purpose; its
	// HMAC signature is the only trust anchor.
	payment := v1.Group("/payment")
	payment.Post("/initialize", middleware.RequireAuth(), controllers.HandleInitializePayment)
	payment.Post("/verify", middleware.RequireAuth(), controllers.HandleVerifyPayment)
	payment.Post("/webhook", controllers.HandlePaystackWebhook)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
