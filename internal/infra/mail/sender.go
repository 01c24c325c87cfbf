package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/leadforge/leadforge-api/internal/entity"
)

var summaryTmpl = template.Must(template.New("summary").Parse(`Hi {{.ContactName}},

Your campaign "{{.CampaignName}}" just finished a run.

  Outcome:        {{.Outcome}}
  New leads:      {{.LeadCount}}
  Sourced:        {{.SourcedCount}}
  Duplicates:     {{.DuplicateCount}}
{{- if .ErrorKind}}
  Error:          {{.ErrorKind}}
{{- end}}

Log in to your dashboard to review the new leads.

— The LeadForge team
`))

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{Host: host, Port: port, User: user, Password: password, From: from}
}

// SendRunSummary mails the account owner the outcome of one campaign run.
func (s *EmailSender) SendRunSummary(to, contactName, campaignName string, exec *entity.Execution) error {
	var body bytes.Buffer
	err := summaryTmpl.Execute(&body, summaryData{
		ContactName:    contactName,
		CampaignName:   campaignName,
		Outcome:        exec.Outcome,
		ErrorKind:      exec.ErrorKind,
		LeadCount:      exec.LeadCount,
		SourcedCount:   exec.SourcedCount,
		DuplicateCount: exec.DuplicateCount,
	})
	if err != nil {
		return fmt.Errorf("render summary template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Campaign %q: %d new leads", campaignName, exec.LeadCount))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send summary mail: %w", err)
	}
	return nil
}
