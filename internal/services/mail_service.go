package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"path/filepath"
	"strings"

	"aoa/internal/config"

	"go.uber.org/zap"
)

type MailService struct {
	cfg          config.MailConfig
	templatesDir string
	log          *zap.SugaredLogger
	send         func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailService(cfg config.MailConfig, templatesDir string, log *zap.SugaredLogger) *MailService {
	if !cfg.Enabled() {
		log.Warn("MailService disabled: missing SMTP environment variables")
	}
	return &MailService{cfg: cfg, templatesDir: templatesDir, log: log, send: smtp.SendMail}
}

func (s *MailService) Enabled() bool {
	return s.cfg.Enabled()
}

func (s *MailService) message(to []string, subject, body string) []byte {
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	return []byte(fmt.Sprintf("To: %s\r\n"+
		"From: AOA <%s>\r\n"+
		"Subject: %s\r\n"+
		"%s\r\n%s", strings.Join(to, ","), s.cfg.From, subject, mime, body))
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled() {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)

		if err := s.send(addr, auth, s.cfg.From, to, s.message(to, subject, body)); err != nil {
			s.log.Errorw("send email failed", "to", to, "subject", subject, "error", err)
			return
		}
		s.log.Infow("email sent", "to", to, "subject", subject)
	}()
}

func (s *MailService) parseTemplate(templateName string, data interface{}) (string, error) {
	path := filepath.Join(s.templatesDir, "email", templateName)
	t, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

// SendConfirmation mails the signup confirmation link.
func (s *MailService) SendConfirmation(email, link string) {
	body, err := s.parseTemplate("confirm.html", map[string]string{
		"Link": link,
	})
	if err != nil {
		s.log.Errorw("render confirmation email", "error", err)
		return
	}
	s.sendAsync([]string{email}, "Confirm your AOA account", body)
}
