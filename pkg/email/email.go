package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From defaults to Username
	From string
}

// ContactEmailData is a visitor message forwarded to a profile owner.
type ContactEmailData struct {
	ProfileName string
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
}

// Sender delivers templated mail over SMTP.
type Sender struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewSender(cfg Config) *Sender {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Sender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

var contactTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New message from your portfolio</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1f2937; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #1f2937; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Hi {{.ProfileName}}, you have a new message</h1>
        </div>
        <div class="content">
            <p><span class="label">From:</span> {{.SenderName}} ({{.SenderEmail}})</p>
            <p><span class="label">Subject:</span> {{.Subject}}</p>
            <div class="message-box">{{.Message}}</div>
        </div>
        <div class="footer">
            <p>Sent through the contact form on your portfolio. Reply to answer {{.SenderName}} directly.</p>
        </div>
    </div>
</body>
</html>`))

// headerSafe drops line breaks so user input cannot add headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}

// RenderContactEmail builds the HTML body of a contact message.
func RenderContactEmail(data ContactEmailData) (string, error) {
	var body bytes.Buffer
	if err := contactTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// SendContactEmail forwards a visitor message to the given address with
// Reply-To set to the visitor.
func (s *Sender) SendContactEmail(to string, data ContactEmailData) error {
	body, err := RenderContactEmail(data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetAddressHeader("Reply-To", headerSafe(data.SenderEmail), headerSafe(data.SenderName))
	m.SetHeader("Subject", "Portfolio contact: "+headerSafe(data.Subject))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the sender has enough SMTP settings to try.
func (s *Sender) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.From != ""
}
