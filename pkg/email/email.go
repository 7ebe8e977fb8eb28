package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// Config holds SMTP settings for the email service.
type Config struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
}

// ResetEmailData holds the data for password-reset emails
type ResetEmailData struct {
	Name       string
	ResetToken string
}

// NewEmailService creates a new email service with SMTP configuration
func NewEmailService(cfg Config) *EmailService {
	from := cfg.FromEmail
	if from == "" {
		from = cfg.Username
	}
	return &EmailService{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: from,
	}
}

// resetEmailTemplate is the HTML template for password-reset emails
const resetEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Password Reset</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .token-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; font-family: monospace; word-break: break-all; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Password Reset Requested</h1>
        </div>
        <div class="content">
            <p>Hi {{.Name}},</p>
            <p>We received a request to reset your DesignHire password. Use the token below to continue:</p>
            <div class="token-box">{{.ResetToken}}</div>
            <p>If you did not request a reset, you can safely ignore this email.</p>
        </div>
        <div class="footer">
            <p>This email was sent by DesignHire.</p>
        </div>
    </div>
</body>
</html>`

// SendPasswordReset sends a password-reset token to the given address
func (s *EmailService) SendPasswordReset(toEmail string, data ResetEmailData) error {
	tmpl, err := template.New("reset").Parse(resetEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	// Construct MIME message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		toEmail,
		"DesignHire password reset",
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
