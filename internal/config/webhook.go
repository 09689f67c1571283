package config

import (
	"os"
	"sync"
)

// WebhookConfig holds the signing secret for inbound user-lifecycle
// webhooks from the authentication provider.
type WebhookConfig struct {
	Secret string
}

var (
	webhookConfig *WebhookConfig
	webhookOnce   sync.Once
)

func LoadWebhookConfig() *WebhookConfig {
	webhookOnce.Do(func() {
		webhookConfig = &WebhookConfig{
			Secret: os.Getenv("WEBHOOK_SIGNING_SECRET"),
		}
	})
	return webhookConfig
}
