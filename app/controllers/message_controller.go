package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/naijavibes/NaijaVibes/app/models"
	"github.com/naijavibes/NaijaVibes/app/repository"
	"github.com/naijavibes/NaijaVibes/internal/pkg/usercontext"
)

type sendMessageRequest struct {
	ProfileID string `json:"profile_id" validate:"required"`
	Message   string `json:"message" validate:"required,min=1,max=5000"`
}

func ownProfile(c *fiber.Ctx) (*models.DatingProfile, error) {
	uc := usercontext.GetUserContext(c)
	return repository.GetGlobalFactory().GetDatingRepository().GetByUserID(uc.UserID)
}

// participantIn reports whether the profile is part of the conversation.
func participantIn(conv *models.Conversation, profileID uint) bool {
	return conv.Participant1ID == profileID || conv.Participant2ID == profileID
}

// HandleListConversations lists the caller's conversations, newest first.
func HandleListConversations(c *fiber.Ctx) error {
	profile, err := ownProfile(c)
	if err != nil || profile == nil {
		return jsonError(c, fiber.StatusNotFound, "no dating profile yet")
	}

	conversations, err := repository.GetGlobalFactory().GetConversationRepository().ListByProfile(profile.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load conversations")
	}

	return c.JSON(fiber.Map{
		"conversations": conversations,
	})
}

// HandleSendMessage sends a message to another profile, creating the
// conversation on first contact. Messaging requires an active premium
// membership.
func HandleSendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	sender, err := ownProfile(c)
	if err != nil || sender == nil {
		return jsonError(c, fiber.StatusNotFound, "no dating profile yet")
	}
	if !sender.IsPremium() {
		return jsonError(c, fiber.StatusPaymentRequired, "messaging requires an active premium membership")
	}

	datingRepo := repository.GetGlobalFactory().GetDatingRepository()
	recipient, err := datingRepo.GetByUUID(req.ProfileID)
	if err != nil || recipient == nil || !recipient.IsVisible {
		return jsonError(c, fiber.StatusNotFound, "profile not found")
	}
	if recipient.ID == sender.ID {
		return jsonError(c, fiber.StatusBadRequest, "cannot message yourself")
	}

	convRepo := repository.GetGlobalFactory().GetConversationRepository()
	conv, err := convRepo.GetByParticipants(sender.ID, recipient.ID)
	if err != nil || conv == nil {
		conv = &models.Conversation{
			Participant1ID: sender.ID,
			Participant2ID: recipient.ID,
		}
		if err := convRepo.Create(conv); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "could not create conversation")
		}
	}

	message := &models.Message{
		ConversationID: conv.ID,
		SenderID:       sender.ID,
		Message:        req.Message,
	}
	if err := convRepo.CreateMessage(message); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not send message")
	}
	if err := convRepo.TouchLastMessageAt(conv.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not update conversation")
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// HandleListMessages returns the messages of one of the caller's
// conversations and marks the unread ones as read.
func HandleListMessages(c *fiber.Ctx) error {
	profile, err := ownProfile(c)
	if err != nil || profile == nil {
		return jsonError(c, fiber.StatusNotFound, "no dating profile yet")
	}

	convRepo := repository.GetGlobalFactory().GetConversationRepository()
	conv, err := convRepo.GetByUUID(c.Params("uuid"))
	if err != nil || conv == nil {
		return jsonError(c, fiber.StatusNotFound, "conversation not found")
	}
	if !participantIn(conv, profile.ID) {
		return jsonError(c, fiber.StatusForbidden, "not a participant of this conversation")
	}

	offset, limit := pagination(c)
	messages, err := convRepo.GetMessages(conv.ID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load messages")
	}

	if err := convRepo.MarkMessagesRead(conv.ID, profile.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not mark messages read")
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}
