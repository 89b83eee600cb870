package controllers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/naijavibes/NaijaVibes/internal/pkg/usercontext"
)

const (
	AUTH_KEY      string = "authenticated"
	USER_ID       string = "USER_ID"
	USER_NAME     string = "username"
	USER_IS_ADMIN string = "isAdmin"
)

var validate = validator.New()

// CurrentUserID returns the authenticated user's ID, or 0 for anonymous requests.
func CurrentUserID(c *fiber.Ctx) uint {
	return usercontext.GetUserContext(c).UserID
}

func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// validationMessage flattens validator errors into a single readable line.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+" failed on '"+fe.Tag()+"'")
	}
	return strings.Join(parts, "; ")
}

// GetClientIP determines the actual client IP address considering proxies.
func GetClientIP(c *fiber.Ctx) string {
	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}
	xff := strings.Split(c.Get("X-Forwarded-For"), ",")
	if len(xff) > 0 && strings.TrimSpace(xff[0]) != "" {
		return strings.TrimSpace(xff[0])
	}
	return c.IP()
}
