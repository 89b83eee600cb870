package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/naijavibes/NaijaVibes/app/models"
	"github.com/naijavibes/NaijaVibes/internal/pkg/paystack"
)

type fakeGateway struct {
	initializeFn func(ctx context.Context, in paystack.TransactionRequest) (*paystack.InitializeResult, error)
	verifyFn     func(ctx context.Context, reference string) (*paystack.TransactionResult, error)

	initializeCalls int
	verifyCalls     int
}

func (f *fakeGateway) Initialize(ctx context.Context, in paystack.TransactionRequest) (*paystack.InitializeResult, error) {
	f.initializeCalls++
	if f.initializeFn == nil {
		return &paystack.InitializeResult{AuthorizationURL: "https://checkout.test/x", Reference: in.Reference}, nil
	}
	return f.initializeFn(ctx, in)
}

func (f *fakeGateway) Verify(ctx context.Context, reference string) (*paystack.TransactionResult, error) {
	f.verifyCalls++
	if f.verifyFn == nil {
		return &paystack.TransactionResult{Success: true, Status: "success", Reference: reference, Amount: PremiumPlanAmountKobo, Currency: PremiumPlanCurrency}, nil
	}
	return f.verifyFn(ctx, reference)
}

type fakeRepo struct {
	users        map[uint]*models.User
	profiles     map[uint]*models.DatingProfile
	transactions map[string]*models.PaymentTransaction
	events       map[string]*models.WebhookEvent

	extendCalls    int
	failNextExtend bool
	failNextClaim  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        map[uint]*models.User{},
		profiles:     map[uint]*models.DatingProfile{},
		transactions: map[string]*models.PaymentTransaction{},
		events:       map[string]*models.WebhookEvent{},
	}
}

func (r *fakeRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetProfileByUserID(userID uint) (*models.DatingProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) CreatePendingTransaction(tx *models.PaymentTransaction) error {
	if _, exists := r.transactions[tx.Reference]; exists {
		return errors.New("duplicate reference")
	}
	cp := *tx
	r.transactions[tx.Reference] = &cp
	return nil
}

func (r *fakeRepo) GetTransactionByReference(reference string) (*models.PaymentTransaction, error) {
	if tx, ok := r.transactions[reference]; ok {
		cp := *tx
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) ClaimTransactionSuccess(reference string, providerTxID int64, paidAt, expiresAt time.Time, rawPayload string) (bool, error) {
	if r.failNextClaim {
		r.failNextClaim = false
		return false, errors.New("db down")
	}
	tx, ok := r.transactions[reference]
	if !ok {
		return false, nil
	}
	if tx.Status == models.PaymentStatusSuccess {
		return false, nil
	}
	tx.Status = models.PaymentStatusSuccess
	tx.ProviderTransactionID = fmt.Sprintf("%d", providerTxID)
	tx.PaidAt = &paidAt
	tx.ExpiresAt = &expiresAt
	tx.RawPayloadJSON = rawPayload
	return true, nil
}

func (r *fakeRepo) MarkTransactionFailed(reference string, rawPayload string) error {
	if tx, ok := r.transactions[reference]; ok && tx.Status == models.PaymentStatusPending {
		tx.Status = models.PaymentStatusFailed
		tx.RawPayloadJSON = rawPayload
	}
	return nil
}

func (r *fakeRepo) ExtendPremium(userID uint, expiresAt time.Time) error {
	r.extendCalls++
	if r.failNextExtend {
		r.failNextExtend = false
		return errors.New("db down")
	}
	p, ok := r.profiles[userID]
	if !ok {
		r.profiles[userID] = &models.DatingProfile{
			UserID:           userID,
			MembershipType:   models.MembershipPremium,
			PremiumExpiresAt: &expiresAt,
		}
		return nil
	}
	if p.PremiumExpiresAt == nil || p.PremiumExpiresAt.Before(expiresAt) {
		p.MembershipType = models.MembershipPremium
		p.PremiumExpiresAt = &expiresAt
	}
	return nil
}

func (r *fakeRepo) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	key := event.Provider + "|" + event.ProviderEventID
	if stored, exists := r.events[key]; exists {
		return false, stored, nil
	}
	cp := *event
	cp.ID = uint(len(r.events) + 1)
	r.events[key] = &cp
	return true, &cp, nil
}

func (r *fakeRepo) MarkWebhookProcessed(id uint, processingError string) error {
	for _, e := range r.events {
		if e.ID == id {
			now := time.Now()
			e.ProcessedAt = &now
			e.ProcessingError = processingError
		}
	}
	return nil
}

const testSecret = "sk_test_whsec"

func newTestService(gateway *fakeGateway, repo *fakeRepo, now time.Time) *Service {
	s := NewService(gateway, repo, testSecret)
	s.now = func() time.Time { return now }
	return s
}

func seedUser(repo *fakeRepo, id uint, email string) {
	repo.users[id] = &models.User{ID: id, Name: "Ada", Email: email, Status: models.STATUS_ACTIVE}
}

func seedPendingTx(repo *fakeRepo, userID uint, reference string) {
	repo.transactions[reference] = &models.PaymentTransaction{
		UserID:     userID,
		Reference:  reference,
		Status:     models.PaymentStatusPending,
		AmountKobo: PremiumPlanAmountKobo,
	}
}

func signPayload(payload []byte) string {
	mac := hmac.New(sha512.New, []byte(testSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestInitializePayment(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("records a pending transaction before calling the gateway", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		gw := &fakeGateway{}
		gw.initializeFn = func(ctx context.Context, in paystack.TransactionRequest) (*paystack.InitializeResult, error) {
			tx, err := repo.GetTransactionByReference(in.Reference)
			require.NoError(t, err, "pending row must exist before the provider sees the reference")
			assert.Equal(t, models.PaymentStatusPending, tx.Status)
			assert.Equal(t, int64(PremiumPlanAmountKobo), in.Amount)
			assert.Equal(t, "ada@example.com", in.Email)
			return &paystack.InitializeResult{AuthorizationURL: "https://checkout.test/x", Reference: in.Reference}, nil
		}

		out, err := newTestService(gw, repo, now).InitializePayment(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "https://checkout.test/x", out.AuthorizationURL)
		assert.NotEmpty(t, out.Reference)
		assert.Equal(t, 1, gw.initializeCalls)
	})

	t.Run("fails fast without a user id", func(t *testing.T) {
		repo := newFakeRepo()
		gw := &fakeGateway{}

		_, err := newTestService(gw, repo, now).InitializePayment(context.Background(), 0)

		assert.ErrorIs(t, err, ErrValidation)
		assert.Zero(t, gw.initializeCalls)
	})

	t.Run("fails fast when the user has no email", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 2, "   ")
		gw := &fakeGateway{}

		_, err := newTestService(gw, repo, now).InitializePayment(context.Background(), 2)

		assert.ErrorIs(t, err, ErrValidation)
		assert.Zero(t, gw.initializeCalls)
	})

	t.Run("passes timeout errors through untouched", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		gw := &fakeGateway{initializeFn: func(ctx context.Context, in paystack.TransactionRequest) (*paystack.InitializeResult, error) {
			return nil, paystack.ErrTimeout
		}}

		_, err := newTestService(gw, repo, now).InitializePayment(context.Background(), 1)

		assert.ErrorIs(t, err, paystack.ErrTimeout)
	})

	t.Run("each attempt gets a fresh reference", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		svc := newTestService(&fakeGateway{}, repo, now)

		a, err := svc.InitializePayment(context.Background(), 1)
		require.NoError(t, err)
		b, err := svc.InitializePayment(context.Background(), 1)
		require.NoError(t, err)

		assert.NotEqual(t, a.Reference, b.Reference)
	})
}

func TestVerifyPayment(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	const ref = "premium_1_1700000000000_aabbcc"

	successResult := func(ctx context.Context, reference string) (*paystack.TransactionResult, error) {
		return &paystack.TransactionResult{
			Success:               true,
			ProviderTransactionID: 777,
			Status:                "success",
			Amount:                PremiumPlanAmountKobo,
			Currency:              PremiumPlanCurrency,
			Reference:             reference,
			Metadata:              paystack.TransactionMetadata{UserID: "1"},
		}, nil
	}

	t.Run("activates one month of premium on success", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		repo.profiles[1] = &models.DatingProfile{UserID: 1, MembershipType: models.MembershipBasic}
		seedPendingTx(repo, 1, ref)
		gw := &fakeGateway{verifyFn: successResult}

		out, err := newTestService(gw, repo, now).VerifyPayment(context.Background(), ref)

		require.NoError(t, err)
		assert.True(t, out.Activated)
		require.NotNil(t, out.ExpiresAt)
		assert.Equal(t, now.AddDate(0, 1, 0), *out.ExpiresAt)

		profile := repo.profiles[1]
		assert.Equal(t, models.MembershipPremium, profile.MembershipType)
		assert.True(t, profile.IsPremiumAt(now))
		assert.Equal(t, models.PaymentStatusSuccess, repo.transactions[ref].Status)
		assert.Equal(t, "777", repo.transactions[ref].ProviderTransactionID)
	})

	t.Run("first upgrade creates the membership record when no profile exists", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		seedPendingTx(repo, 1, ref)
		gw := &fakeGateway{verifyFn: successResult}

		out, err := newTestService(gw, repo, now).VerifyPayment(context.Background(), ref)

		require.NoError(t, err)
		assert.True(t, out.Activated)
		profile, ok := repo.profiles[1]
		require.True(t, ok, "a paid upgrade must leave membership state behind")
		assert.Equal(t, models.MembershipPremium, profile.MembershipType)
		assert.True(t, profile.IsPremiumAt(now))
	})

	t.Run("renewal extends from the current expiry, not from now", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		current := now.AddDate(0, 0, 12)
		repo.profiles[1] = &models.DatingProfile{UserID: 1, MembershipType: models.MembershipPremium, PremiumExpiresAt: &current}
		seedPendingTx(repo, 1, ref)
		gw := &fakeGateway{verifyFn: successResult}

		out, err := newTestService(gw, repo, now).VerifyPayment(context.Background(), ref)

		require.NoError(t, err)
		require.NotNil(t, out.ExpiresAt)
		assert.Equal(t, current.AddDate(0, 1, 0), *out.ExpiresAt)
	})

	t.Run("repeating verify for the same reference does not extend twice", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		repo.profiles[1] = &models.DatingProfile{UserID: 1}
		seedPendingTx(repo, 1, ref)
		gw := &fakeGateway{verifyFn: successResult}
		svc := newTestService(gw, repo, now)

		first, err := svc.VerifyPayment(context.Background(), ref)
		require.NoError(t, err)
		second, err := svc.VerifyPayment(context.Background(), ref)
		require.NoError(t, err)

		assert.True(t, second.Activated)
		assert.Equal(t, *first.ExpiresAt, *second.ExpiresAt)
		assert.Equal(t, 1, gw.verifyCalls, "second call must short-circuit before the gateway")
		assert.Equal(t, 1, repo.extendCalls)
	})

	t.Run("empty reference fails fast", func(t *testing.T) {
		gw := &fakeGateway{}
		_, err := newTestService(gw, newFakeRepo(), now).VerifyPayment(context.Background(), "   ")

		assert.ErrorIs(t, err, ErrValidation)
		assert.Zero(t, gw.verifyCalls)
	})

	t.Run("failed provider status marks the transaction and reports failure", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		repo.profiles[1] = &models.DatingProfile{UserID: 1}
		seedPendingTx(repo, 1, ref)
		gw := &fakeGateway{verifyFn: func(ctx context.Context, reference string) (*paystack.TransactionResult, error) {
			return &paystack.TransactionResult{Status: "failed", Reference: reference}, nil
		}}

		out, err := newTestService(gw, repo, now).VerifyPayment(context.Background(), ref)

		assert.ErrorIs(t, err, ErrVerificationFailed)
		assert.False(t, out.Activated)
		assert.Equal(t, models.PaymentStatusFailed, repo.transactions[ref].Status)
		assert.NotEqual(t, models.MembershipPremium, repo.profiles[1].MembershipType)
	})

	t.Run("pending provider status leaves the transaction pending", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		seedPendingTx(repo, 1, ref)
		gw := &fakeGateway{verifyFn: func(ctx context.Context, reference string) (*paystack.TransactionResult, error) {
			return &paystack.TransactionResult{Status: "pending", Reference: reference}, nil
		}}

		_, err := newTestService(gw, repo, now).VerifyPayment(context.Background(), ref)

		assert.ErrorIs(t, err, ErrVerificationFailed)
		assert.Equal(t, models.PaymentStatusPending, repo.transactions[ref].Status)
	})

	t.Run("gateway timeout passes through", func(t *testing.T) {
		repo := newFakeRepo()
		seedPendingTx(repo, 1, ref)
		gw := &fakeGateway{verifyFn: func(ctx context.Context, reference string) (*paystack.TransactionResult, error) {
			return nil, paystack.ErrTimeout
		}}

		_, err := newTestService(gw, repo, now).VerifyPayment(context.Background(), ref)

		assert.ErrorIs(t, err, paystack.ErrTimeout)
	})

	t.Run("membership update failure after collection surfaces ErrPersistence", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		repo.profiles[1] = &models.DatingProfile{UserID: 1}
		seedPendingTx(repo, 1, ref)
		repo.failNextExtend = true
		gw := &fakeGateway{verifyFn: successResult}

		_, err := newTestService(gw, repo, now).VerifyPayment(context.Background(), ref)

		assert.ErrorIs(t, err, ErrPersistence)
	})

	t.Run("claim failure after collection surfaces ErrPersistence", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		seedPendingTx(repo, 1, ref)
		repo.failNextClaim = true
		gw := &fakeGateway{verifyFn: successResult}

		_, err := newTestService(gw, repo, now).VerifyPayment(context.Background(), ref)

		assert.ErrorIs(t, err, ErrPersistence)
		assert.Zero(t, repo.extendCalls)
	})

	t.Run("resolves the user from provider metadata for unknown references", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		repo.profiles[1] = &models.DatingProfile{UserID: 1}
		gw := &fakeGateway{verifyFn: successResult}

		// No local pending row: the claim cannot succeed, but resolution and
		// the stored-state lookup must not panic.
		_, err := newTestService(gw, repo, now).VerifyPayment(context.Background(), ref)

		assert.Error(t, err)
	})
}

func TestHandleWebhook(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	const ref = "premium_1_1700000000000_aabbcc"

	chargeSuccess := []byte(`{"event":"charge.success","data":{"id":777,"reference":"` + ref + `","amount":250000,"status":"success"}}`)

	successResult := func(ctx context.Context, reference string) (*paystack.TransactionResult, error) {
		return &paystack.TransactionResult{
			Success: true, ProviderTransactionID: 777, Status: "success",
			Amount: PremiumPlanAmountKobo, Currency: PremiumPlanCurrency, Reference: reference,
			Metadata: paystack.TransactionMetadata{UserID: "1"},
		}, nil
	}

	t.Run("valid charge.success activates via a fresh verify", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		repo.profiles[1] = &models.DatingProfile{UserID: 1}
		seedPendingTx(repo, 1, ref)
		gw := &fakeGateway{verifyFn: successResult}

		out, err := newTestService(gw, repo, now).HandleWebhook(context.Background(), chargeSuccess, signPayload(chargeSuccess), "evt_1")

		require.NoError(t, err)
		assert.True(t, out.Activated)
		assert.Equal(t, 1, gw.verifyCalls, "activation must come from verify, not the webhook payload")
		assert.True(t, repo.profiles[1].IsPremiumAt(now))
	})

	t.Run("invalid signature is rejected and never processed", func(t *testing.T) {
		repo := newFakeRepo()
		gw := &fakeGateway{}

		_, err := newTestService(gw, repo, now).HandleWebhook(context.Background(), chargeSuccess, "deadbeef", "evt_2")

		assert.ErrorIs(t, err, ErrSignatureInvalid)
		assert.Zero(t, gw.verifyCalls)
	})

	t.Run("redelivery of the same event id is a duplicate no-op", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		repo.profiles[1] = &models.DatingProfile{UserID: 1}
		seedPendingTx(repo, 1, ref)
		gw := &fakeGateway{verifyFn: successResult}
		svc := newTestService(gw, repo, now)

		_, err := svc.HandleWebhook(context.Background(), chargeSuccess, signPayload(chargeSuccess), "evt_3")
		require.NoError(t, err)
		out, err := svc.HandleWebhook(context.Background(), chargeSuccess, signPayload(chargeSuccess), "evt_3")
		require.NoError(t, err)

		assert.True(t, out.Duplicate)
		assert.Equal(t, 1, gw.verifyCalls)
		assert.Equal(t, 1, repo.extendCalls)
	})

	t.Run("redelivery after a transient failure reprocesses the event", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		repo.profiles[1] = &models.DatingProfile{UserID: 1}
		seedPendingTx(repo, 1, ref)
		gw := &fakeGateway{verifyFn: func(ctx context.Context, reference string) (*paystack.TransactionResult, error) {
			return nil, paystack.ErrTimeout
		}}
		svc := newTestService(gw, repo, now)

		_, err := svc.HandleWebhook(context.Background(), chargeSuccess, signPayload(chargeSuccess), "evt_retry")
		require.ErrorIs(t, err, paystack.ErrTimeout)
		assert.False(t, repo.profiles[1].IsPremiumAt(now))

		gw.verifyFn = successResult
		out, err := svc.HandleWebhook(context.Background(), chargeSuccess, signPayload(chargeSuccess), "evt_retry")

		require.NoError(t, err)
		assert.True(t, out.Activated)
		assert.False(t, out.Duplicate)
		assert.True(t, repo.profiles[1].IsPremiumAt(now))
	})

	t.Run("redelivery with a fixed signature recovers from an invalid first delivery", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		repo.profiles[1] = &models.DatingProfile{UserID: 1}
		seedPendingTx(repo, 1, ref)
		gw := &fakeGateway{verifyFn: successResult}
		svc := newTestService(gw, repo, now)

		_, err := svc.HandleWebhook(context.Background(), chargeSuccess, "deadbeef", "evt_badsig")
		require.ErrorIs(t, err, ErrSignatureInvalid)

		out, err := svc.HandleWebhook(context.Background(), chargeSuccess, signPayload(chargeSuccess), "evt_badsig")

		require.NoError(t, err)
		assert.True(t, out.Activated)
		assert.True(t, repo.profiles[1].IsPremiumAt(now))
	})

	t.Run("missing event id falls back to a payload hash", func(t *testing.T) {
		repo := newFakeRepo()
		seedUser(repo, 1, "ada@example.com")
		repo.profiles[1] = &models.DatingProfile{UserID: 1}
		seedPendingTx(repo, 1, ref)
		gw := &fakeGateway{verifyFn: successResult}
		svc := newTestService(gw, repo, now)

		_, err := svc.HandleWebhook(context.Background(), chargeSuccess, signPayload(chargeSuccess), "")
		require.NoError(t, err)
		out, err := svc.HandleWebhook(context.Background(), chargeSuccess, signPayload(chargeSuccess), "")
		require.NoError(t, err)

		assert.True(t, out.Duplicate)
	})

	t.Run("non charge.success events are ignored", func(t *testing.T) {
		repo := newFakeRepo()
		gw := &fakeGateway{}
		payload := []byte(`{"event":"transfer.success","data":{"reference":"` + ref + `"}}`)

		out, err := newTestService(gw, repo, now).HandleWebhook(context.Background(), payload, signPayload(payload), "evt_4")

		require.NoError(t, err)
		assert.True(t, out.Ignored)
		assert.Zero(t, gw.verifyCalls)
	})

	t.Run("malformed but signed payload is a validation error", func(t *testing.T) {
		repo := newFakeRepo()
		payload := []byte(`{"data":{"reference":"x"}}`)

		_, err := newTestService(&fakeGateway{}, repo, now).HandleWebhook(context.Background(), payload, signPayload(payload), "evt_5")

		assert.ErrorIs(t, err, ErrValidation)
	})
}
