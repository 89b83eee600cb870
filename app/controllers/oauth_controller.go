package controllers

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/naijavibes/NaijaVibes/app/models"
	"github.com/naijavibes/NaijaVibes/app/repository"
	"github.com/naijavibes/NaijaVibes/internal/pkg/session"
)

// HandleOAuthBegin starts the provider flow.
func HandleOAuthBegin(c *fiber.Ctx) error {
	return gothfiber.BeginAuthHandler(c)
}

// HandleOAuthCallback completes the provider flow and logs the user in.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, fmt.Sprintf("OAuth failed: %v", err))
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()

	// Try to find an already linked account first
	appUser, err := userRepo.GetByOAuth(u.Provider, u.UserID)
	if err != nil || appUser == nil {
		// Optional email match if provided
		if u.Email != "" {
			appUser, _ = userRepo.GetByEmail(u.Email)
		}
		if appUser == nil {
			// Create new user; password is a random placeholder since it is never used for login
			placeholder := fmt.Sprintf("oauth_%d", time.Now().UnixNano())
			hash, _ := models.HashPassword(placeholder)
			email := u.Email
			if email == "" {
				// Ensure unique, non-empty email to satisfy unique index semantics in MySQL
				email = fmt.Sprintf("%s_%s@%s.oauth.local", u.Provider, u.UserID, u.Provider)
			}
			appUser = &models.User{
				Name:      firstNonEmpty(u.Name, u.NickName, u.Email, "User"),
				Email:     email,
				Password:  hash,
				AvatarURL: u.AvatarURL,
				Role:      models.ROLE_USER,
				Status:    models.STATUS_ACTIVE,
			}
			if err := userRepo.Create(appUser); err != nil {
				return jsonError(c, fiber.StatusInternalServerError, "could not create user")
			}
		}
		// Link the provider identity to the account
		appUser.OAuthProvider = u.Provider
		appUser.OAuthProviderID = u.UserID
		if err := userRepo.Update(appUser); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "could not link provider")
		}
	}

	if err := session.SetSessionValue(c, USER_ID, strconv.FormatUint(uint64(appUser.ID), 10)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not create session")
	}

	now := time.Now()
	appUser.LastLoginAt = &now
	if err := userRepo.Update(appUser); err != nil {
		log.Printf("[OAuth] failed to record last login for user %d: %v", appUser.ID, err)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleOAuthLogout clears the provider session and the app session.
func HandleOAuthLogout(c *fiber.Ctx) error {
	if err := gothfiber.Logout(c); err != nil {
		log.Printf("[OAuth] provider logout failed: %v", err)
	}
	return HandleLogout(c)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
