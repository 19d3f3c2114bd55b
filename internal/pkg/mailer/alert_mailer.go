package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IAlertMailer interface {
	SendSaveFailureAlert(kind, recordId, reason string) error
}

type alertMailer struct {
	dialer      *gomail.Dialer
	senderEmail string
	opsEmail    string
}

// NewAlertMailer builds the mailer used for operations alerts. The kiosk
// itself never retries failed saves; a human gets told instead.
func NewAlertMailer(host string, port int, username, password, senderEmail, opsEmail string) IAlertMailer {
	d := gomail.NewDialer(host, port, username, password)

	return &alertMailer{
		dialer:      d,
		senderEmail: senderEmail,
		opsEmail:    opsEmail,
	}
}

func (s *alertMailer) SendSaveFailureAlert(kind, recordId, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.opsEmail)
	m.SetHeader("Subject", "Kiosk persistence failures")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Pump-house kiosk: repeated save failures</h2>
			<p>The kiosk backend is failing to persist records to the store.</p>
			<ul>
				<li>Record kind: <b>%s</b></li>
				<li>Last record id: <b>%s</b></li>
				<li>Last error: <b>%s</b></li>
			</ul>
			<p>Local state keeps running on the optimistic copy; changes made
			on the kiosk will be lost on restart until the store recovers.</p>
		</div>
	`, kind, recordId, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send ops alert: %v\n", err)
		return err
	}

	fmt.Printf("[MAILER] Ops alert sent to %s\n", s.opsEmail)
	return nil
}
