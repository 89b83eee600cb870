package billing

import "errors"

// Error taxonomy for the payment flow. Gateway-level outcomes reuse
// paystack.ErrTimeout and *paystack.GatewayError; these cover everything the
// orchestration layer decides on its own.
var (
	// ErrValidation: bad or missing caller input, no network call attempted.
	ErrValidation = errors.New("billing: validation failed")

	// ErrVerificationFailed: the provider confirms the transaction did not
	// succeed (failed or still pending). Terminal for this attempt; safe to
	// retry verification later.
	ErrVerificationFailed = errors.New("billing: payment not confirmed")

	// ErrSignatureInvalid: webhook authentication failed. Never retried
	// internally; the provider's own redelivery handles transient cases.
	ErrSignatureInvalid = errors.New("billing: invalid webhook signature")

	// ErrPersistence: the state store was unavailable. When this happens
	// after money was collected it is logged for manual reconciliation.
	ErrPersistence = errors.New("billing: persistence unavailable")
)
