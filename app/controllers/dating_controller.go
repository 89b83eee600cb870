package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/naijavibes/NaijaVibes/app/models"
	"github.com/naijavibes/NaijaVibes/app/repository"
	"github.com/naijavibes/NaijaVibes/internal/pkg/upload"
	"github.com/naijavibes/NaijaVibes/internal/pkg/usercontext"
)

type datingProfileRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=150"`
	Gender    string `json:"gender" validate:"required,oneof=male female"`
	Age       int    `json:"age" validate:"required,min=18,max=120"`
	Location  string `json:"location" validate:"max=150"`
	Bio       string `json:"bio" validate:"max=1000"`
	IsVisible *bool  `json:"is_visible"`

	BodySize   string `json:"body_size" validate:"omitempty,oneof=slim average curvy plus_size"`
	Height     string `json:"height" validate:"omitempty,oneof=short average tall very_tall"`
	Complexion string `json:"complexion" validate:"omitempty,oneof=black chocolate fair_complexion"`

	// Preference fields, only honored for premium members
	PreferredAgeMin     int    `json:"preferred_age_min" validate:"omitempty,min=18"`
	PreferredAgeMax     int    `json:"preferred_age_max" validate:"omitempty,max=120"`
	PreferredLocation   string `json:"preferred_location" validate:"max=150"`
	PreferredBodySize   string `json:"preferred_body_size" validate:"omitempty,oneof=slim average curvy plus_size"`
	PreferredHeight     string `json:"preferred_height" validate:"omitempty,oneof=short average tall very_tall"`
	PreferredComplexion string `json:"preferred_complexion" validate:"omitempty,oneof=black chocolate fair_complexion"`
	RelationshipPurpose string `json:"relationship_purpose" validate:"omitempty,oneof=marriage friendship casual hookup"`
}

func applyPreferences(profile *models.DatingProfile, req *datingProfileRequest) {
	profile.PreferredAgeMin = req.PreferredAgeMin
	profile.PreferredAgeMax = req.PreferredAgeMax
	profile.PreferredLocation = req.PreferredLocation
	profile.PreferredBodySize = req.PreferredBodySize
	profile.PreferredHeight = req.PreferredHeight
	profile.PreferredComplexion = req.PreferredComplexion
	profile.RelationshipPurpose = req.RelationshipPurpose
}

// HandleGetOwnProfile returns the caller's dating profile.
func HandleGetOwnProfile(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	profile, err := repository.GetGlobalFactory().GetDatingRepository().GetByUserID(uc.UserID)
	if err != nil || profile == nil {
		return jsonError(c, fiber.StatusNotFound, "no dating profile yet")
	}
	return c.JSON(profileView(profile))
}

// HandleUpsertProfile creates or updates the caller's dating profile.
func HandleUpsertProfile(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	var req datingProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	datingRepo := repository.GetGlobalFactory().GetDatingRepository()
	userRepo := repository.GetGlobalFactory().GetUserRepository()

	user, err := userRepo.GetByID(uc.UserID)
	if err != nil || user == nil {
		return jsonError(c, fiber.StatusNotFound, "user not found")
	}

	profile, err := datingRepo.GetByUserID(uc.UserID)
	isNew := err != nil || profile == nil
	if isNew {
		profile = &models.DatingProfile{
			UserID:         uc.UserID,
			Email:          user.Email,
			MembershipType: models.MembershipBasic,
			IsVisible:      true,
		}
	}

	profile.Name = req.Name
	profile.Gender = req.Gender
	profile.Age = req.Age
	profile.Location = req.Location
	profile.Bio = req.Bio
	profile.BodySize = req.BodySize
	profile.Height = req.Height
	profile.Complexion = req.Complexion
	if req.IsVisible != nil {
		profile.IsVisible = *req.IsVisible
	}

	// Matchmaking preferences are a premium feature
	if profile.IsPremium() {
		applyPreferences(profile, &req)
	}

	if err := profile.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	if isNew {
		err = datingRepo.Create(profile)
	} else {
		err = datingRepo.Update(profile)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not save profile")
	}

	status := fiber.StatusOK
	if isNew {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(profileView(profile))
}

// HandleBrowseProfiles lists visible profiles excluding the caller's own.
func HandleBrowseProfiles(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	offset, limit := pagination(c)

	profiles, err := repository.GetGlobalFactory().GetDatingRepository().ListVisible(uc.UserID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load profiles")
	}

	views := make([]fiber.Map, 0, len(profiles))
	for i := range profiles {
		views = append(views, profileView(&profiles[i]))
	}
	return c.JSON(fiber.Map{
		"profiles": views,
	})
}

// HandleGetProfile returns a single visible profile.
func HandleGetProfile(c *fiber.Ctx) error {
	profile, err := repository.GetGlobalFactory().GetDatingRepository().GetByUUID(c.Params("uuid"))
	if err != nil || profile == nil || !profile.IsVisible {
		return jsonError(c, fiber.StatusNotFound, "profile not found")
	}
	return c.JSON(profileView(profile))
}

// HandleUploadProfilePicture stores a profile photo for the caller.
func HandleUploadProfilePicture(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	datingRepo := repository.GetGlobalFactory().GetDatingRepository()

	profile, err := datingRepo.GetByUserID(uc.UserID)
	if err != nil || profile == nil {
		return jsonError(c, fiber.StatusNotFound, "no dating profile yet")
	}

	header, err := c.FormFile("image")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "image file missing")
	}

	url, err := storeUploadedFile(c, header, "profiles", uuid.New().String(), upload.ValidateImageBySniff)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	profile.ProfilePicture = url
	if err := datingRepo.Update(profile); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not save profile picture")
	}

	return c.JSON(fiber.Map{
		"profile_picture": url,
	})
}

// profileView renders a profile with the effective membership so callers
// never see a stale premium tier after expiry.
func profileView(p *models.DatingProfile) fiber.Map {
	membership := models.MembershipBasic
	if p.IsPremium() {
		membership = models.MembershipPremium
	}
	view := fiber.Map{
		"id":              p.UUID,
		"name":            p.Name,
		"gender":          p.Gender,
		"age":             p.Age,
		"location":        p.Location,
		"bio":             p.Bio,
		"is_visible":      p.IsVisible,
		"profile_picture": p.ProfilePicture,
		"membership_type": membership,
		"body_size":       p.BodySize,
		"height":          p.Height,
		"complexion":      p.Complexion,
		"created_at":      p.CreatedAt,
	}
	if membership == models.MembershipPremium {
		view["premium_expires_at"] = p.PremiumExpiresAt
		view["preferences"] = fiber.Map{
			"preferred_age_min":    p.PreferredAgeMin,
			"preferred_age_max":    p.PreferredAgeMax,
			"preferred_location":   p.PreferredLocation,
			"preferred_body_size":  p.PreferredBodySize,
			"preferred_height":     p.PreferredHeight,
			"preferred_complexion": p.PreferredComplexion,
			"relationship_purpose": p.RelationshipPurpose,
		}
	}
	return view
}
