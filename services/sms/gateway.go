package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"salonflow/utils"
)

// Gateway dispatches an SMS to a phone number. Delivery is a blocking call
// with a bounded timeout; callers must not hold slot locks across it.
type Gateway interface {
	Send(ctx context.Context, phone, message string) error
}

// HTTPGateway posts messages to a configured SMS provider endpoint.
type HTTPGateway struct {
	URL    string
	Token  string
	Client *http.Client
}

// NewHTTPGateway creates a gateway for the given provider endpoint.
func NewHTTPGateway(url, token string) *HTTPGateway {
	return &HTTPGateway{
		URL:    url,
		Token:  token,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *HTTPGateway) Send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(map[string]string{"to": phone, "message": message})
	if err != nil {
		return fmt.Errorf("failed to encode sms payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.Token)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// LogGateway logs outgoing messages instead of delivering them. Used in
// development when no gateway URL is configured. The message text is the OTP
// itself, so this stays debug-level and out of production.
type LogGateway struct{}

func (LogGateway) Send(_ context.Context, phone, message string) error {
	utils.GetLogger().Sugar().Debugf("SMS to %s: %s", phone, message)
	return nil
}

// FromConfig returns the HTTP gateway when a URL is configured, otherwise the
// logging gateway.
func FromConfig(url, token string) Gateway {
	if url == "" {
		return LogGateway{}
	}
	return NewHTTPGateway(url, token)
}
