package controllers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/naijavibes/NaijaVibes/app/models"
	"github.com/naijavibes/NaijaVibes/app/repository"
	"github.com/naijavibes/NaijaVibes/internal/pkg/mail"
	"github.com/naijavibes/NaijaVibes/internal/pkg/session"
	"github.com/naijavibes/NaijaVibes/internal/pkg/usercontext"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates a new account and sends the activation mail.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()

	if existing, err := userRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return jsonError(c, fiber.StatusConflict, "an account with this email already exists")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid registration data")
	}
	if err := user.GenerateActivationToken(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not create account")
	}

	if err := userRepo.Create(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not create account")
	}

	// Mail delivery is best effort, the token can be re-sent later
	go func() {
		if err := mail.SendActivationMail(user.Email, user.Name, user.ActivationToken); err != nil {
			log.Printf("[Auth] activation mail to %s failed: %v", user.Email, err)
		}
	}()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "account created, please check your email to activate it",
	})
}

// HandleActivate activates an account via the emailed token.
func HandleActivate(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return jsonError(c, fiber.StatusBadRequest, "activation token missing")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByActivationToken(token)
	if err != nil || user == nil {
		return jsonError(c, fiber.StatusNotFound, "invalid activation token")
	}

	user.Status = models.STATUS_ACTIVE
	user.ActivationToken = ""
	if err := userRepo.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not activate account")
	}

	return c.JSON(fiber.Map{
		"message": "account activated, you can now log in",
	})
}

// HandleLogin authenticates credentials and opens a session.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	user, err := userRepo.GetByEmail(req.Email)
	if err != nil || user == nil {
		return jsonError(c, fiber.StatusUnauthorized, "there is a problem with the login process")
	}
	if !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "there is a problem with the login process")
	}
	if user.Status != models.STATUS_ACTIVE {
		return jsonError(c, fiber.StatusForbidden, "account is not activated")
	}

	if err := session.SetSessionValue(c, USER_ID, strconv.FormatUint(uint64(user.ID), 10)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not create session")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := userRepo.Update(user); err != nil {
		log.Printf("[Auth] failed to record last login for user %d: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{
		"message": "logged in",
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// HandleLogout destroys the session.
func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		if derr := sess.Destroy(); derr != nil {
			log.Printf("[Auth] session destroy failed: %v", derr)
		}
	}
	return c.JSON(fiber.Map{
		"message": "logged out",
	})
}

// HandleMe returns the current user's profile.
func HandleMe(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(uc.UserID)
	if err != nil || user == nil {
		return jsonError(c, fiber.StatusNotFound, "user not found")
	}

	return c.JSON(user)
}
