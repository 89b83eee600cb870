package models

import "time"

const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

const (
	PaymentProviderPaystack = "paystack"
)

// PaymentTransaction is the ledger of payment attempts. One row per issued
// reference; the reference is immutable and unique. Status transitions are
// claimed with conditional updates so concurrent verifications (webhook plus
// client poll) cannot apply the same payment twice.
type PaymentTransaction struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	UserID                uint       `gorm:"not null;index" json:"user_id"`
	Provider              string     `gorm:"type:varchar(20);not null;default:'paystack'" json:"provider"`
	Reference             string     `gorm:"type:varchar(191);not null;uniqueIndex" json:"reference"`
	ProviderTransactionID string     `gorm:"type:varchar(191);default:''" json:"provider_transaction_id"`
	AmountKobo            int64      `gorm:"not null" json:"amount_kobo"`
	Currency              string     `gorm:"type:varchar(3);not null;default:'NGN'" json:"currency"`
	Status                string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PlanTier              string     `gorm:"type:varchar(20);not null;default:'premium'" json:"plan_tier"`
	BillingPeriod         string     `gorm:"type:varchar(20);not null;default:'monthly'" json:"billing_period"`
	PaidAt                *time.Time `gorm:"type:timestamp;default:null" json:"paid_at,omitempty"`
	ExpiresAt             *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	RawPayloadJSON        string     `gorm:"type:longtext" json:"-"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the PaymentTransaction model
func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
