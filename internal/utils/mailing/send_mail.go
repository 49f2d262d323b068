package mailing

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"benigna-backend/internal/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	smtpMailer struct {
		config MailConfig
	}

	logMailer struct {
		logger *zap.Logger
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// NewMailer returns an SMTP mailer, or one that only logs when no SMTP
// host is configured.
func NewMailer(config MailConfig, logger *zap.Logger) Mailer {
	if config.SMTPHost == "" {
		return &logMailer{logger: logger}
	}
	return &smtpMailer{config: config}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", mailer.FormatAddress(m.config.SMTPEmail, m.config.SMTPSender))
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid smtp port %q: %w", m.config.SMTPPort, err)
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func (m *logMailer) SendMail(toEmail string, subject string, body string) error {
	m.logger.Info("smtp not configured, mail skipped",
		zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}

var deliveryScheduledTemplate = template.Must(template.New("delivery").Parse(`<p>Olá, {{.Institution}}!</p>
<p>Uma nova entrega foi agendada para <strong>{{.Date}}</strong> às <strong>{{.Time}}</strong>.</p>
<p>Doação: {{.Quantity}}x {{.Category}} ({{.Subcategory}})</p>
<p>{{.Description}}</p>
{{if .AppURL}}<p><a href="{{.AppURL}}">Acesse o painel da instituição</a></p>{{end}}`))

type DeliveryScheduled struct {
	Institution string
	Date        string
	Time        string
	Quantity    int
	Category    string
	Subcategory string
	Description string
	AppURL      string
}

func DeliveryScheduledBody(data DeliveryScheduled) (string, error) {
	var buf bytes.Buffer
	if err := deliveryScheduledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
