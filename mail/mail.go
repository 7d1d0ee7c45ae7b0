// Package mail delivers account email such as password reset codes.
package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Mailer sends a plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer records messages in the log instead of sending them. The body is
// never logged.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, _ string) error {
	slog.Info("mail delivery not configured, dropping message", "to", to, "subject", subject)
	return nil
}

// Gmail sends through the Gmail API as the authorized user.
type Gmail struct {
	service *gmail.Service
}

// NewGmail builds a Gmail sender from an OAuth client credentials file and a
// previously authorized token file.
func NewGmail(ctx context.Context, credentialsFile, tokenFile string, opts ...option.ClientOption) (*Gmail, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}
	cfg, err := google.ConfigFromJSON(data, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client credentials: %w", err)
	}
	token, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, err
	}

	clientOpts := append([]option.ClientOption{option.WithHTTPClient(cfg.Client(ctx, token))}, opts...)
	service, err := gmail.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return &Gmail{service: service}, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read token file: %w", err)
	}
	defer f.Close()

	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, fmt.Errorf("unable to parse token file: %w", err)
	}
	return &tok, nil
}

func (g *Gmail) Send(ctx context.Context, to, subject, body string) error {
	msg := &gmail.Message{Raw: encodeMessage(to, subject, body)}
	if _, err := g.service.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	slog.Info("mail sent", "to", to, "subject", subject)
	return nil
}

func encodeMessage(to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

// FromConfig returns a Gmail sender when credentials are configured and a
// LogMailer otherwise.
func FromConfig(ctx context.Context, credentialsFile, tokenFile string) Mailer {
	if strings.TrimSpace(credentialsFile) == "" {
		return LogMailer{}
	}
	g, err := NewGmail(ctx, credentialsFile, tokenFile)
	if err != nil {
		slog.Warn("gmail unavailable, falling back to log mailer", "error", err)
		return LogMailer{}
	}
	return g
}
