package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"assekura/internal/models"
)

type EmailService interface {
	SendLeadNotification(lead *models.Lead, attachmentPath string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	office string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, officeEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
		office: officeEmail,
	}
}

func (s *emailService) SendLeadNotification(lead *models.Lead, attachmentPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.office)
	m.SetHeader("Subject", fmt.Sprintf("Neue Anfrage %s — %s", lead.Reference, lead.InsuranceType))

	body := fmt.Sprintf(`
		<h3>Neue Anfrage über das Kontaktformular</h3>
		<p><strong>Referenz:</strong> %s</p>
		<p><strong>Name:</strong> %s<br>
		<strong>E-Mail:</strong> %s<br>
		<strong>Telefon (verifiziert):</strong> %s</p>
		<p><strong>Versicherungsart:</strong> %s</p>
		<p>%s</p>
	`, lead.Reference, lead.Name, lead.Email, lead.Phone, lead.InsuranceType, lead.Message)

	m.SetBody("text/html", body)
	if attachmentPath != "" {
		m.Attach(attachmentPath)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send lead notification: %w", err)
	}
	return nil
}
