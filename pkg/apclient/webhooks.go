package apclient

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Webhook notifies an external URL about actor run events.
type Webhook struct {
	ID              string   `json:"id,omitempty"`
	EventTypes      []string `json:"eventTypes"`
	RequestURL      string   `json:"requestUrl"`
	PayloadTemplate string   `json:"payloadTemplate,omitempty"`
	// IdempotencyKey deduplicates repeated create calls. Create fills in a
	// random one when unset.
	IdempotencyKey string            `json:"idempotencyKey,omitempty"`
	Condition      map[string]string `json:"condition,omitempty"`
	CreatedAt      *time.Time        `json:"createdAt,omitempty"`
}

// WebhookCollectionClient operates on the webhook collection.
type WebhookCollectionClient struct {
	c *Client
}

// Webhooks returns a client for the webhook collection.
func (c *Client) Webhooks() *WebhookCollectionClient {
	return &WebhookCollectionClient{c: c}
}

// List returns one page of webhooks.
func (wc *WebhookCollectionClient) List(ctx context.Context, params ListParams) (*ListPage[Webhook], error) {
	var page ListPage[Webhook]
	if _, err := wc.c.do(ctx, requestSpec{method: http.MethodGet, path: "/v2/webhooks", params: params.values()}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create registers a webhook. A random idempotency key is generated when
// the caller does not provide one, so accidental double submission cannot
// register the webhook twice.
func (wc *WebhookCollectionClient) Create(ctx context.Context, webhook Webhook) (*Webhook, error) {
	if err := requireNonEmpty("webhook request url", webhook.RequestURL); err != nil {
		return nil, err
	}
	if webhook.IdempotencyKey == "" {
		webhook.IdempotencyKey = uuid.NewString()
	}
	var out Webhook
	if _, err := wc.c.do(ctx, requestSpec{method: http.MethodPost, path: "/v2/webhooks", jsonIn: webhook}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WebhookClient targets a single webhook by ID.
type WebhookClient struct {
	c  *Client
	id string
}

// Webhook returns a client for the webhook with the given ID.
func (c *Client) Webhook(id string) *WebhookClient {
	return &WebhookClient{c: c, id: id}
}

func (wc *WebhookClient) path() string {
	return "/v2/webhooks/" + url.PathEscape(wc.id)
}

// Get fetches the webhook. A missing webhook yields (nil, nil).
func (wc *WebhookClient) Get(ctx context.Context) (*Webhook, error) {
	if err := requireNonEmpty("webhook id", wc.id); err != nil {
		return nil, err
	}
	var webhook Webhook
	if _, err := wc.c.do(ctx, requestSpec{method: http.MethodGet, path: wc.path()}, &webhook); err != nil {
		if errIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &webhook, nil
}

// Delete removes the webhook.
func (wc *WebhookClient) Delete(ctx context.Context) error {
	if err := requireNonEmpty("webhook id", wc.id); err != nil {
		return err
	}
	_, err := wc.c.do(ctx, requestSpec{method: http.MethodDelete, path: wc.path()}, nil)
	return err
}
