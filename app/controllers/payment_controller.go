package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/naijavibes/NaijaVibes/app/repository"
	"github.com/naijavibes/NaijaVibes/internal/pkg/billing"
	"github.com/naijavibes/NaijaVibes/internal/pkg/database"
	"github.com/naijavibes/NaijaVibes/internal/pkg/env"
	"github.com/naijavibes/NaijaVibes/internal/pkg/mail"
	"github.com/naijavibes/NaijaVibes/internal/pkg/paystack"
	"github.com/naijavibes/NaijaVibes/internal/pkg/usercontext"
)

// billingService is wired once during router installation. The gateway client
// is an explicit value, not a package-level default, so tests can swap it.
var billingService *billing.Service

// InitializeBillingController builds the billing service from the environment.
func InitializeBillingController() {
	client := paystack.NewClientFromEnv()
	billingService = billing.NewServiceFromDB(database.GetDB(), client, env.GetEnv("PAYSTACK_SECRET_KEY", ""))
}

// SetBillingService replaces the wired service (used by tests).
func SetBillingService(s *billing.Service) {
	billingService = s
}

type verifyPaymentRequest struct {
	Reference string `json:"reference" validate:"required"`
}

// HandleInitializePayment starts a premium subscription checkout for the
// authenticated user.
func HandleInitializePayment(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	outcome, err := billingService.InitializePayment(c.Context(), uc.UserID)
	if err != nil {
		return paymentError(c, err)
	}

	return c.JSON(outcome)
}

// HandleVerifyPayment confirms a payment with the provider and activates
// premium membership. The reference is the only client input; the actual
// payment state always comes from the provider.
func HandleVerifyPayment(c *fiber.Ctx) error {
	var req verifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	outcome, err := billingService.VerifyPayment(c.Context(), req.Reference)
	if err != nil {
		return paymentError(c, err)
	}

	if outcome.Activated {
		notifyPremiumActivated(c, outcome)
	}

	return c.JSON(outcome)
}

// HandlePaystackWebhook processes provider notifications. It is intentionally
// unauthenticated; the HMAC signature header is the only trust anchor.
func HandlePaystackWebhook(c *fiber.Ctx) error {
	signature := c.Get("x-paystack-signature")

	outcome, err := billingService.HandleWebhook(c.Context(), c.Body(), signature, c.Get("x-paystack-event-id"))
	if err != nil {
		if errors.Is(err, billing.ErrSignatureInvalid) {
			return jsonError(c, fiber.StatusUnauthorized, "invalid signature")
		}
		return paymentError(c, err)
	}

	if outcome.Duplicate {
		return c.JSON(fiber.Map{"message": "duplicate event"})
	}
	if outcome.Ignored {
		return c.JSON(fiber.Map{"message": "event ignored"})
	}
	return c.JSON(fiber.Map{"message": "processed"})
}

// paymentError maps billing error classes onto HTTP statuses.
func paymentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, billing.ErrValidation):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, billing.ErrVerificationFailed):
		return jsonError(c, fiber.StatusPaymentRequired, "payment was not successful")
	case errors.Is(err, paystack.ErrTimeout):
		return jsonError(c, fiber.StatusGatewayTimeout, "payment provider timed out, please retry")
	case errors.Is(err, billing.ErrPersistence):
		return jsonError(c, fiber.StatusInternalServerError, "payment recorded inconsistently, support has been notified")
	default:
		var gerr *paystack.GatewayError
		if errors.As(err, &gerr) {
			return jsonError(c, fiber.StatusBadGateway, "payment provider rejected the request")
		}
		return jsonError(c, fiber.StatusInternalServerError, "payment processing failed")
	}
}

// notifyPremiumActivated sends the confirmation mail, best effort.
func notifyPremiumActivated(c *fiber.Ctx, outcome *billing.VerifyOutcome) {
	uc := usercontext.GetUserContext(c)
	if uc.UserID == 0 || outcome.ExpiresAt == nil {
		return
	}
	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(uc.UserID)
	if err != nil || user == nil {
		return
	}
	expires := outcome.ExpiresAt.Format("2 January 2006")
	go func() {
		if err := mail.SendPremiumActivatedMail(user.Email, user.Name, expires); err != nil {
			log.Printf("[Billing] premium mail to %s failed: %v", user.Email, err)
		}
	}()
}
