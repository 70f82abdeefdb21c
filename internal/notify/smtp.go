package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/m-ahsan-bilal/portfolio-api/internal/model"
)

// SMTPConfig configures the SMTP notifier. Host and Port default to
// Gmail's submission endpoint when empty.
type SMTPConfig struct {
	Host        string
	Port        string
	SenderEmail string
	Password    string
	AdminEmail  string
}

// SMTPNotifier sends notification emails to the API owner over SMTP with
// STARTTLS and PLAIN auth.
type SMTPNotifier struct {
	cfg SMTPConfig

	// send is swapped out in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates an SMTPNotifier from the given config.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = cfg.SenderEmail
	}
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail}
}

var _ Notifier = (*SMTPNotifier)(nil)

// NotifySubmission emails the admin about a single accepted submission.
func (n *SMTPNotifier) NotifySubmission(_ context.Context, sub *model.Submission) error {
	subject := "New Contact Form Submission - " + sub.Topic
	body := submissionBody(sub)
	return n.sendMail(subject, body)
}

// DailySummary emails the admin a digest of the latest submissions. A nil
// or empty ledger sends nothing.
func (n *SMTPNotifier) DailySummary(_ context.Context, submissions []*model.Submission) error {
	if len(submissions) == 0 {
		return nil
	}
	subject := "Daily Contact Form Summary - " + time.Now().Format("2006-01-02")
	body := summaryBody(submissions)
	return n.sendMail(subject, body)
}

func (n *SMTPNotifier) sendMail(subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.cfg.SenderEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", n.cfg.AdminEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := n.cfg.Host + ":" + n.cfg.Port
	auth := smtp.PlainAuth("", n.cfg.SenderEmail, n.cfg.Password, n.cfg.Host)
	return n.send(addr, auth, n.cfg.SenderEmail, []string{n.cfg.AdminEmail}, []byte(msg.String()))
}

func submissionBody(sub *model.Submission) string {
	var b strings.Builder
	b.WriteString("New Contact Form Submission\n\n")
	fmt.Fprintf(&b, "From: %s\n", sub.Email)
	fmt.Fprintf(&b, "Topic: %s\n", sub.Topic)
	fmt.Fprintf(&b, "Date: %s\n\n", sub.Timestamp.Format("2006-01-02 15:04:05"))
	b.WriteString("Message:\n")
	b.WriteString(sub.Message)
	b.WriteString("\n\n---\nThis is an automated notification from your portfolio contact form.\n")
	return b.String()
}

// summaryBody lists the total and the last five submissions, with messages
// truncated for readability.
func summaryBody(submissions []*model.Submission) string {
	var b strings.Builder
	b.WriteString("Daily Contact Form Summary\n\n")
	fmt.Fprintf(&b, "Date: %s\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(&b, "Total Submissions: %d\n\n", len(submissions))
	b.WriteString("Recent Submissions:\n")

	recent := submissions
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	for _, sub := range recent {
		b.WriteString("---\n")
		fmt.Fprintf(&b, "ID: %d\n", sub.ID)
		fmt.Fprintf(&b, "From: %s\n", sub.Email)
		fmt.Fprintf(&b, "Topic: %s\n", sub.Topic)
		fmt.Fprintf(&b, "Date: %s\n", sub.Timestamp.Format(time.RFC3339))
		fmt.Fprintf(&b, "Message: %s\n", truncate(sub.Message, 100))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
