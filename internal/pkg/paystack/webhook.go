package paystack

import (
	"encoding/json"
	"errors"
	"strings"
)

// WebhookEvent is the decoded shape of a Paystack webhook delivery. Only the
// fields the subscription flow needs are modeled; the raw payload is kept
// verbatim by the caller for audit.
type WebhookEvent struct {
	Event                 string
	Reference             string
	ProviderTransactionID int64
	Amount                int64
	Status                string
}

// IsChargeSuccess reports whether this event announces a completed charge.
func (e *WebhookEvent) IsChargeSuccess() bool {
	return strings.EqualFold(e.Event, "charge.success")
}

// ParseWebhookEvent decodes a webhook payload after its signature has been
// verified. A payload without an event name or reference is malformed.
func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var raw struct {
		Event string `json:"event"`
		Data  struct {
			ID        int64  `json:"id"`
			Reference string `json:"reference"`
			Amount    int64  `json:"amount"`
			Status    string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw.Event) == "" {
		return nil, errors.New("paystack: webhook payload missing event type")
	}
	if strings.TrimSpace(raw.Data.Reference) == "" {
		return nil, errors.New("paystack: webhook payload missing reference")
	}
	return &WebhookEvent{
		Event:                 strings.TrimSpace(raw.Event),
		Reference:             strings.TrimSpace(raw.Data.Reference),
		ProviderTransactionID: raw.Data.ID,
		Amount:                raw.Data.Amount,
		Status:                strings.TrimSpace(raw.Data.Status),
	}, nil
}
