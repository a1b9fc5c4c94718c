package notify

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/resend/resend-go/v2"
)

// EmailSender is the slice of the Resend client the notifier uses.
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailNotifier delivers messages by e-mail through Resend.
type EmailNotifier struct {
	sender EmailSender
	from   string
	to     string
}

func NewEmailNotifier(apiKey, from, to string) *EmailNotifier {
	return NewEmailNotifierWithSender(resend.NewClient(apiKey).Emails, from, to)
}

func NewEmailNotifierWithSender(sender EmailSender, from, to string) *EmailNotifier {
	return &EmailNotifier{sender: sender, from: from, to: to}
}

func (n *EmailNotifier) Publish(ctx context.Context, message string) error {
	subject := "New feedback"
	if first, _, _ := strings.Cut(message, "\n"); first != "" {
		subject = strings.TrimSpace(strings.TrimPrefix(first, "📝"))
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: subject,
		Text:    message,
		Html: fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;"><pre style="white-space: pre-wrap;">%s</pre></div>`,
			html.EscapeString(message)),
	}

	sent, err := n.sender.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("📧 Feedback notification sent (ID: %s)", sent.Id)
	return nil
}
