package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/naijavibes/NaijaVibes/app/models"
	"github.com/naijavibes/NaijaVibes/app/repository"
	"github.com/naijavibes/NaijaVibes/internal/pkg/session"
	"github.com/naijavibes/NaijaVibes/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a UserContext once per
// request so handlers never touch the session store directly.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		uc := usercontext.UserContext{}

		userIDStr := session.GetSessionValue(c, "USER_ID")
		if userIDStr != "" {
			if userID, err := strconv.ParseUint(userIDStr, 10, 64); err == nil && userID > 0 {
				user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(uint(userID))
				if err == nil && user != nil && user.Status == models.STATUS_ACTIVE {
					uc.UserID = user.ID
					uc.Username = user.Name
					uc.IsLoggedIn = true
					uc.IsAdmin = user.Role == models.ROLE_ADMIN
				}
			}
		}

		usercontext.SetUserContext(c, uc)
		return c.Next()
	}
}
