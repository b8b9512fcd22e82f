// Package twilio is a minimal client for the Twilio message-creation REST
// endpoint. The full SDK would be a heavy dependency for a single
// form-encoded POST, so the call is made directly.
package twilio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const baseURL = "https://api.twilio.com/2010-04-01"

// A provider outage must not stall a request; every call is bounded by
// the client timeout.
const requestTimeout = 10 * time.Second

// MessageSender creates a message (SMS or WhatsApp) via the provider API.
type MessageSender interface {
	SendMessage(ctx context.Context, from, to, body string) error
}

type client struct {
	accountSID string
	authToken  string
	httpClient *http.Client
	endpoint   string
}

func NewClient(accountSID, authToken string) MessageSender {
	return &client{
		accountSID: accountSID,
		authToken:  authToken,
		httpClient: &http.Client{Timeout: requestTimeout},
		endpoint:   fmt.Sprintf("%s/Accounts/%s/Messages.json", baseURL, accountSID),
	}
}

// NewClientWithEndpoint is used by tests to point the client at a fake server.
func NewClientWithEndpoint(accountSID, authToken, endpoint string) MessageSender {
	c := NewClient(accountSID, authToken).(*client)
	c.endpoint = endpoint
	return c
}

func (c *client) SendMessage(ctx context.Context, from, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
