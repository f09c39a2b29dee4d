package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"brickvest.backend/internal/config"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/pkg/logger"
	"go.uber.org/zap"
)

// Message is a single outbound email
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Sender delivers transactional email through the provider's JSON API.
type Sender struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewSender creates an email sender from config
func NewSender(cfg config.EmailConfig) *Sender {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Sender{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		from:       cfg.FromAddress,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send delivers one message. Callers treat failures as non-fatal and log
// them; a lost notification never rolls back the action that triggered it.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(sendRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domainerrors.ExternalService("email provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Error(ctx, "email provider rejected message",
			zap.String("to", msg.To),
			zap.Int("status", resp.StatusCode))
		return domainerrors.ExternalService(fmt.Sprintf("email provider returned %d", resp.StatusCode), nil)
	}
	return nil
}

// SendVerification emails the account verification link
func (s *Sender) SendVerification(ctx context.Context, to, verifyURL string) error {
	return s.Send(ctx, Message{
		To:      to,
		Subject: "Verify your email address",
		HTML:    fmt.Sprintf(`<p>Welcome! Confirm your email address by clicking <a href="%s">this link</a>.</p>`, verifyURL),
	})
}

// SendPasswordReset emails the password reset link
func (s *Sender) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	return s.Send(ctx, Message{
		To:      to,
		Subject: "Reset your password",
		HTML:    fmt.Sprintf(`<p>A password reset was requested for your account. <a href="%s">Reset it here</a>. The link expires in one hour.</p>`, resetURL),
	})
}

// SendInvestmentConfirmation emails the investor after a completed investment
func (s *Sender) SendInvestmentConfirmation(ctx context.Context, to, projectTitle, amount string) error {
	return s.Send(ctx, Message{
		To:      to,
		Subject: "Investment confirmed",
		HTML:    fmt.Sprintf(`<p>Your investment of %s in <strong>%s</strong> has been confirmed.</p>`, amount, projectTitle),
	})
}
