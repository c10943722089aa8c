package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const brevoURL = "https://api.brevo.com/v3/smtp/email"

// BrevoService sends transactional email through the Brevo HTTP API.
type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string

	endpoint string
	client   *http.Client
	log      *zap.Logger
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

// NewBrevoService returns nil when the service is not fully configured;
// a nil *BrevoService drops every email.
func NewBrevoService(apiKey, senderEmail, senderName string, log *zap.Logger) *BrevoService {
	log = log.Named("email")
	if apiKey == "" || senderEmail == "" || senderName == "" {
		log.Warn("email service not configured, missing API key, sender email or sender name")
		return nil
	}
	log.Info("email service initialized", zap.String("sender", senderEmail))
	return &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
		endpoint:    brevoURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

func (s *BrevoService) send(ctx context.Context, toEmail, toName, subject, htmlContent string) error {
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %q", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

// SendEmail delivers one email and logs the outcome.
func (s *BrevoService) SendEmail(ctx context.Context, toName, toEmail, subject, htmlContent string) error {
	if s == nil {
		return nil
	}
	if err := s.send(ctx, toEmail, toName, subject, htmlContent); err != nil {
		s.log.Error("failed to send email", zap.String("to", toEmail), zap.String("subject", subject), zap.Error(err))
		return err
	}
	s.log.Debug("email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}
