package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string

	// AssigneeEmails maps team member names to inboxes. Names missing
	// here fall back to TeamInbox.
	AssigneeEmails map[string]string
	TeamInbox      string
}

func NewEmailSender(host string, port int, user, password, teamInbox string) *EmailSender {
	return &EmailSender{
		Host:           host,
		Port:           port,
		User:           user,
		Password:       password,
		AssigneeEmails: map[string]string{},
		TeamInbox:      teamInbox,
	}
}

// SendFastTrackAlert tells the assignee one of their leads classified
// fast-track. Best effort — the save never waits on SMTP.
func (s *EmailSender) SendFastTrackAlert(assignee, leadName, phone, city string) error {
	to := s.AssigneeEmails[assignee]
	if to == "" {
		to = s.TeamInbox
	}
	if to == "" {
		return fmt.Errorf("no inbox configured for assignee %q", assignee)
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p><b>%s</b> just scored Fast Track. 🚀</p><p>Phone: %s<br/>Target city: %s</p><p>Call them while they're warm.</p>",
		assignee, leadName, phone, city,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", "no-reply@on2cook.in")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Fast Track lead: %s", leadName))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}

	return nil
}
