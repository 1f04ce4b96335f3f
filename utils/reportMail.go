package utils

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"MediTrack/config"
)

// ErrMailNotConfigured is returned when no SMTP host is set.
var ErrMailNotConfigured = errors.New("SMTP_HOST is not configured")

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// ReportMailer e-mails report exports as CSV attachments.
type ReportMailer struct {
	from   string
	sender mailSender
}

// NewReportMailer creates a mailer from the SMTP settings in cfg.
func NewReportMailer(cfg *config.AppConfig) (*ReportMailer, error) {
	if cfg.SMTPHost == "" {
		return nil, ErrMailNotConfigured
	}
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &ReportMailer{
		from:   from,
		sender: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
	}, nil
}

// SendReport sends the CSV in data to the recipients as filename.
func (m *ReportMailer) SendReport(to []string, subject, filename string, data []byte) error {
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", fmt.Sprintf("The %s report is attached (%s).", subject, filename))
	msg.Attach(filename,
		gomail.SetHeader(map[string][]string{"Content-Type": {"text/csv; charset=utf-8"}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
	)

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send report mail: %w", err)
	}
	return nil
}
