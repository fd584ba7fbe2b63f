package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/railparts-supply/railparts-backend/pkg/config"
	"github.com/railparts-supply/railparts-backend/pkg/logger"
)

// Message is the outbound email shape handed to the dispatcher.
type Message struct {
	To       string
	From     string
	FromName string
	Subject  string
	HTML     string
	ReplyTo  string
	BCC      string
}

// Client dispatches transactional email through SendGrid.
type Client struct {
	api         *sendgrid.Client
	apiKey      string
	defaultFrom string
}

// New builds a SendGrid-backed mailer. A missing API key is not an error here;
// callers must check Configured before dispatching so an unconfigured
// environment surfaces as a per-request configuration failure.
func New(ctx context.Context, cfg config.SendgridConfig, logg *logger.Logger) *Client {
	apiKey := strings.TrimSpace(cfg.APIKey)
	client := &Client{
		apiKey:      apiKey,
		defaultFrom: strings.TrimSpace(cfg.DefaultFrom),
	}
	if apiKey != "" {
		client.api = sendgrid.NewSendClient(apiKey)
		if logg != nil {
			logg.Info(ctx, "sendgrid client initialized")
		}
	} else if logg != nil {
		logg.Warn(ctx, "sendgrid api key missing, email dispatch disabled")
	}
	return client
}

// Configured reports whether dispatch credentials are present.
func (c *Client) Configured() bool {
	return c != nil && c.api != nil && c.defaultFrom != ""
}

// DefaultFrom returns the configured sender address.
func (c *Client) DefaultFrom() string {
	if c == nil {
		return ""
	}
	return c.defaultFrom
}

// Send dispatches the message and returns the provider message identifier.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("sendgrid client not configured")
	}

	from := msg.From
	if from == "" {
		from = c.defaultFrom
	}

	email := mail.NewSingleEmail(
		mail.NewEmail(msg.FromName, from),
		msg.Subject,
		mail.NewEmail("", msg.To),
		"",
		msg.HTML,
	)
	if msg.ReplyTo != "" {
		email.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}
	if msg.BCC != "" && len(email.Personalizations) > 0 {
		email.Personalizations[0].AddBCCs(mail.NewEmail("", msg.BCC))
	}

	resp, err := c.api.SendWithContext(ctx, email)
	if err != nil {
		return "", fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, strings.TrimSpace(resp.Body))
	}

	return messageID(resp.Headers), nil
}

func messageID(headers map[string][]string) string {
	for key, values := range headers {
		if strings.EqualFold(key, "X-Message-Id") && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
