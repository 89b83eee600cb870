package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/naijavibes/NaijaVibes/app/models"
	"github.com/naijavibes/NaijaVibes/internal/pkg/paystack"
	"gorm.io/gorm"
)

// Gateway is the outbound payment provider surface. The concrete
// paystack.Client satisfies it; tests substitute a fake.
type Gateway interface {
	Initialize(ctx context.Context, in paystack.TransactionRequest) (*paystack.InitializeResult, error)
	Verify(ctx context.Context, reference string) (*paystack.TransactionResult, error)
}

// Service sequences initialize → verify → activate for premium subscriptions.
type Service struct {
	gateway       Gateway
	repo          Repository
	webhookSecret string

	now func() time.Time
}

// NewService creates a billing service from injected collaborators.
func NewService(gateway Gateway, repo Repository, webhookSecret string) *Service {
	return &Service{
		gateway:       gateway,
		repo:          repo,
		webhookSecret: webhookSecret,
		now:           time.Now,
	}
}

// NewServiceFromDB wires the service against a GORM handle.
func NewServiceFromDB(db *gorm.DB, gateway Gateway, webhookSecret string) *Service {
	return NewService(gateway, NewRepository(db), webhookSecret)
}

// InitializeOutcome is returned to the API layer after a successful initialize.
type InitializeOutcome struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

// VerifyOutcome reports whether a verification activated premium access.
type VerifyOutcome struct {
	Activated bool       `json:"activated"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// InitializePayment starts a premium upgrade for a user. The user must have a
// resolvable email; without one no gateway call is attempted. A fresh
// reference is generated per attempt and recorded as a pending transaction
// before the provider sees it.
func (s *Service) InitializePayment(ctx context.Context, userID uint) (*InitializeOutcome, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown user", ErrValidation)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, fmt.Errorf("%w: user has no email address", ErrValidation)
	}

	reference := paystack.GenerateReference(strconv.FormatUint(uint64(userID), 10))

	if err := s.repo.CreatePendingTransaction(&models.PaymentTransaction{
		UserID:        userID,
		Provider:      models.PaymentProviderPaystack,
		Reference:     reference,
		AmountKobo:    PremiumPlanAmountKobo,
		Currency:      PremiumPlanCurrency,
		Status:        models.PaymentStatusPending,
		PlanTier:      PremiumPlanTier,
		BillingPeriod: PremiumPlanPeriod,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	res, err := s.gateway.Initialize(ctx, paystack.TransactionRequest{
		Email:     user.Email,
		Amount:    PremiumPlanAmountKobo,
		Reference: reference,
		Metadata: paystack.TransactionMetadata{
			UserID:        strconv.FormatUint(uint64(userID), 10),
			PlanTier:      PremiumPlanTier,
			BillingPeriod: PremiumPlanPeriod,
		},
	})
	if err != nil {
		// Timeout and gateway errors pass through untouched so callers can
		// distinguish them. The pending row stays behind as an audit trail;
		// a new attempt gets a new reference.
		return nil, err
	}

	return &InitializeOutcome{
		AuthorizationURL: res.AuthorizationURL,
		Reference:        reference,
	}, nil
}

// VerifyPayment asks the provider for the authoritative transaction state and,
// on success, extends the user's premium membership by one billing period.
// The client's own "I paid" claim is never trusted; activation always follows
// a fresh verify round trip. Repeating the call for an already activated
// reference is a no-op that returns the stored expiry.
func (s *Service) VerifyPayment(ctx context.Context, reference string) (*VerifyOutcome, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return nil, fmt.Errorf("%w: payment reference is required", ErrValidation)
	}

	// Idempotency short-circuit: a reference that already activated once must
	// not extend the membership again.
	if tx, err := s.repo.GetTransactionByReference(ref); err == nil && tx.Status == models.PaymentStatusSuccess {
		return &VerifyOutcome{Activated: true, ExpiresAt: tx.ExpiresAt}, nil
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	result, err := s.gateway.Verify(ctx, ref)
	if err != nil {
		return nil, err
	}

	if result.Status != "success" {
		if result.Status == "failed" {
			if err := s.repo.MarkTransactionFailed(ref, rawResultJSON(result)); err != nil {
				log.Printf("billing: could not mark transaction %s failed: %v", ref, err)
			}
		}
		return &VerifyOutcome{Activated: false}, ErrVerificationFailed
	}

	userID, err := s.resolveUserID(ref, result)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var current *time.Time
	if profile, err := s.repo.GetProfileByUserID(userID); err == nil {
		current = profile.PremiumExpiresAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	expiresAt := NextExpiry(now, current)

	claimed, err := s.repo.ClaimTransactionSuccess(ref, result.ProviderTransactionID, now, expiresAt, rawResultJSON(result))
	if err != nil {
		// The provider confirmed payment but we could not record it. This is
		// real money with no matching state; shout for reconciliation.
		log.Printf("ALERT billing: payment %s verified but transaction claim failed, manual reconciliation required: %v", ref, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !claimed {
		// A concurrent verification (webhook vs. client poll) won the race.
		// Report its outcome instead of extending twice.
		tx, err := s.repo.GetTransactionByReference(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return &VerifyOutcome{Activated: true, ExpiresAt: tx.ExpiresAt}, nil
	}

	if err := s.repo.ExtendPremium(userID, expiresAt); err != nil {
		log.Printf("ALERT billing: payment %s collected but membership update failed for user %d, manual reconciliation required: %v", ref, userID, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &VerifyOutcome{Activated: true, ExpiresAt: &expiresAt}, nil
}

// WebhookOutcome describes how an inbound webhook delivery was handled.
type WebhookOutcome struct {
	Duplicate bool
	Ignored   bool
	Activated bool
}

// HandleWebhook authenticates and processes a provider notification. Payloads
// are persisted idempotently before any processing; redelivery of a fully
// processed event is a cheap no-op, while a delivery that previously errored
// is run again. charge.success events run the same verification path as a
// client initiated verify; the webhook's own payload is never the activation
// source.
func (s *Service) HandleWebhook(ctx context.Context, rawBody []byte, signatureHeader, eventIDHeader string) (*WebhookOutcome, error) {
	signatureValid := paystack.VerifyWebhookSignature(rawBody, signatureHeader, s.webhookSecret)

	eventType := ""
	reference := ""
	event, parseErr := paystack.ParseWebhookEvent(rawBody)
	if parseErr == nil {
		eventType = event.Event
		reference = event.Reference
	}

	eventID := strings.TrimSpace(eventIDHeader)
	if eventID == "" {
		sum := sha256.Sum256(rawBody)
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	created, stored, err := s.repo.CreateWebhookEventIfNotExists(&models.WebhookEvent{
		Provider:        models.PaymentProviderPaystack,
		ProviderEventID: eventID,
		EventType:       eventType,
		PayloadJSON:     string(rawBody),
		SignatureValid:  signatureValid,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !created {
		// Only a fully processed event is a duplicate. The provider retries
		// until it gets a 2xx, so a delivery that previously failed (bad
		// signature, gateway timeout mid-verify, DB blip) must run again.
		if stored.ProcessedAt != nil && stored.ProcessingError == "" {
			return &WebhookOutcome{Duplicate: true}, nil
		}
	}

	if !signatureValid {
		s.markProcessed(stored.ID, errors.New("invalid webhook signature"))
		return nil, ErrSignatureInvalid
	}
	if parseErr != nil {
		s.markProcessed(stored.ID, parseErr)
		return nil, fmt.Errorf("%w: %v", ErrValidation, parseErr)
	}
	if !event.IsChargeSuccess() {
		s.markProcessed(stored.ID, nil)
		return &WebhookOutcome{Ignored: true}, nil
	}

	outcome, verifyErr := s.VerifyPayment(ctx, reference)
	s.markProcessed(stored.ID, verifyErr)
	if verifyErr != nil {
		return nil, verifyErr
	}
	return &WebhookOutcome{Activated: outcome.Activated}, nil
}

func (s *Service) resolveUserID(reference string, result *paystack.TransactionResult) (uint, error) {
	if tx, err := s.repo.GetTransactionByReference(reference); err == nil {
		return tx.UserID, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Webhook for a reference initialized elsewhere: fall back to the
	// metadata the provider echoes back.
	id, err := strconv.ParseUint(strings.TrimSpace(result.Metadata.UserID), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: transaction carries no resolvable user", ErrValidation)
	}
	return uint(id), nil
}

func (s *Service) markProcessed(eventID uint, processingErr error) {
	msg := ""
	if processingErr != nil {
		msg = processingErr.Error()
	}
	if err := s.repo.MarkWebhookProcessed(eventID, msg); err != nil {
		log.Printf("billing: could not mark webhook event %d processed: %v", eventID, err)
	}
}

func rawResultJSON(result *paystack.TransactionResult) string {
	return fmt.Sprintf(`{"id":%d,"status":%q,"reference":%q,"amount":%d,"currency":%q}`,
		result.ProviderTransactionID, result.Status, result.Reference, result.Amount, result.Currency)
}
