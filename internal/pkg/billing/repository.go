package billing

import (
	"strconv"
	"time"

	"github.com/naijavibes/NaijaVibes/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the billing service.
type Repository interface {
	GetUserByID(id uint) (*models.User, error)
	GetProfileByUserID(userID uint) (*models.DatingProfile, error)

	CreatePendingTransaction(tx *models.PaymentTransaction) error
	GetTransactionByReference(reference string) (*models.PaymentTransaction, error)
	// ClaimTransactionSuccess flips a transaction to success exactly once.
	// Returns false when another verification already claimed it.
	ClaimTransactionSuccess(reference string, providerTxID int64, paidAt, expiresAt time.Time, rawPayload string) (bool, error)
	MarkTransactionFailed(reference string, rawPayload string) error

	// ExtendPremium applies the membership upgrade as a conditional UPDATE;
	// the store's native atomicity guards concurrent writers, and an earlier
	// expiry never overwrites a later one. A user paying before ever creating
	// a dating profile gets the membership record created here.
	ExtendPremium(userID uint, expiresAt time.Time) error

	CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) GetProfileByUserID(userID uint) (*models.DatingProfile, error) {
	var profile models.DatingProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *gormRepository) CreatePendingTransaction(tx *models.PaymentTransaction) error {
	return r.db.Create(tx).Error
}

func (r *gormRepository) GetTransactionByReference(reference string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	if err := r.db.Where("reference = ?", reference).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *gormRepository) ClaimTransactionSuccess(reference string, providerTxID int64, paidAt, expiresAt time.Time, rawPayload string) (bool, error) {
	res := r.db.Model(&models.PaymentTransaction{}).
		Where("reference = ? AND status <> ?", reference, models.PaymentStatusSuccess).
		Updates(map[string]interface{}{
			"status":                  models.PaymentStatusSuccess,
			"provider_transaction_id": strconv.FormatInt(providerTxID, 10),
			"paid_at":                 paidAt,
			"expires_at":              expiresAt,
			"raw_payload_json":        rawPayload,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRepository) MarkTransactionFailed(reference string, rawPayload string) error {
	return r.db.Model(&models.PaymentTransaction{}).
		Where("reference = ? AND status = ?", reference, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":           models.PaymentStatusFailed,
			"raw_payload_json": rawPayload,
		}).Error
}

func (r *gormRepository) ExtendPremium(userID uint, expiresAt time.Time) error {
	res := r.db.Model(&models.DatingProfile{}).
		Where("user_id = ? AND (premium_expires_at IS NULL OR premium_expires_at < ?)", userID, expiresAt).
		Updates(map[string]interface{}{
			"membership_type":    models.MembershipPremium,
			"premium_expires_at": expiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Zero rows means either the stored expiry is already later, or the user
	// has never created a dating profile. Paying users without a profile get
	// a membership record here so the collected payment always lands.
	var count int64
	if err := r.db.Model(&models.DatingProfile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.Create(&models.DatingProfile{
		UserID:           userID,
		MembershipType:   models.MembershipPremium,
		PremiumExpiresAt: &expiresAt,
	}).Error
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.WebhookEvent
	if err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
