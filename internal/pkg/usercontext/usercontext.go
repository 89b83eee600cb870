package usercontext

import (
	"github.com/gofiber/fiber/v2"
)

// UserContext carries the authenticated user's identity through a request.
type UserContext struct {
	UserID     uint
	Username   string
	IsLoggedIn bool
	IsAdmin    bool
}

// GetUserContext reads the context set by the middleware. Returns a zero
// value context when the request is anonymous.
func GetUserContext(c *fiber.Ctx) UserContext {
	if uc, ok := c.Locals(KeyUserContext).(UserContext); ok {
		return uc
	}
	return UserContext{}
}

// SetUserContext stores the context in fiber locals, plus the individual
// keys some handlers read directly.
func SetUserContext(c *fiber.Ctx, uc UserContext) {
	c.Locals(KeyUserContext, uc)
	c.Locals(KeyUserID, uc.UserID)
	c.Locals(KeyUsername, uc.Username)
	c.Locals(KeyIsLoggedIn, uc.IsLoggedIn)
	c.Locals(KeyIsAdmin, uc.IsAdmin)
}
