package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MembershipBasic   = "basic"
	MembershipPremium = "premium"
)

// DatingProfile stores a user's dating profile including membership state.
// MembershipType together with PremiumExpiresAt forms the subscription state:
// premium is only effective while PremiumExpiresAt lies in the future. Expiry
// is evaluated on read, never swept by a background job.
type DatingProfile struct {
	ID               uint       `gorm:"primaryKey" json:"-"`
	UUID             string     `gorm:"uniqueIndex;type:varchar(36)" json:"id"`
	UserID           uint       `gorm:"uniqueIndex" json:"user_id"`
	Name             string     `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Email            string     `gorm:"type:varchar(200)" json:"email" validate:"required,email"`
	Gender           string     `gorm:"type:varchar(10)" json:"gender" validate:"required,oneof=male female"`
	Age              int        `gorm:"not null" json:"age" validate:"required,min=18,max=120"`
	MembershipType   string     `gorm:"type:varchar(20);default:'basic';index" json:"membership_type"`
	PremiumExpiresAt *time.Time `gorm:"type:timestamp;default:null" json:"premium_expires_at,omitempty"`
	Location         string     `gorm:"type:varchar(150)" json:"location"`
	Bio              string     `gorm:"type:text" json:"bio" validate:"max=1000"`
	IsVisible        bool       `gorm:"type:tinyint(1);default:1;index" json:"is_visible"`
	ProfilePicture   string     `gorm:"type:varchar(255)" json:"profile_picture"`

	// Premium matchmaking preferences
	PreferredAgeMin     int    `gorm:"default:0" json:"preferred_age_min" validate:"omitempty,min=18"`
	PreferredAgeMax     int    `gorm:"default:0" json:"preferred_age_max" validate:"omitempty,max=120"`
	PreferredLocation   string `gorm:"type:varchar(150)" json:"preferred_location"`
	PreferredBodySize   string `gorm:"type:varchar(20)" json:"preferred_body_size" validate:"omitempty,oneof=slim average curvy plus_size"`
	PreferredHeight     string `gorm:"type:varchar(20)" json:"preferred_height" validate:"omitempty,oneof=short average tall very_tall"`
	PreferredComplexion string `gorm:"type:varchar(20)" json:"preferred_complexion" validate:"omitempty,oneof=black chocolate fair_complexion"`
	RelationshipPurpose string `gorm:"type:varchar(20)" json:"relationship_purpose" validate:"omitempty,oneof=marriage friendship casual hookup"`

	// Own physical attributes
	BodySize   string `gorm:"type:varchar(20)" json:"body_size" validate:"omitempty,oneof=slim average curvy plus_size"`
	Height     string `gorm:"type:varchar(20)" json:"height" validate:"omitempty,oneof=short average tall very_tall"`
	Complexion string `gorm:"type:varchar(20)" json:"complexion" validate:"omitempty,oneof=black chocolate fair_complexion"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the DatingProfile model
func (DatingProfile) TableName() string {
	return "dating_profiles"
}

func (p *DatingProfile) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}

func (p *DatingProfile) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// IsPremium reports whether the profile currently has an active premium
// membership. A stored premium tier with a past expiry counts as basic.
func (p *DatingProfile) IsPremium() bool {
	return p.IsPremiumAt(time.Now())
}

// IsPremiumAt evaluates membership at a given instant (used by tests).
func (p *DatingProfile) IsPremiumAt(now time.Time) bool {
	if p.MembershipType != MembershipPremium {
		return false
	}
	return p.PremiumExpiresAt != nil && p.PremiumExpiresAt.After(now)
}
