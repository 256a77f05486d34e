package notify

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// MessageData is what the alert templates can reference.
type MessageData struct {
	Username      string
	LostName      string
	LostLocation  string
	FoundName     string
	FoundLocation string
	FoundContact  string
	Score         string // similarity rounded to 3 decimal places
}

type templateConfig struct {
	Email struct {
		Subject string `yaml:"subject"`
		Body    string `yaml:"body"`
	} `yaml:"email"`
	SMS struct {
		Body string `yaml:"body"`
	} `yaml:"sms"`
}

// Templates renders the alert messages for both channels.
type Templates struct {
	emailSubject *template.Template
	emailBody    *template.Template
	smsBody      *template.Template
}

// LoadTemplates parses the embedded message templates. This is an embedded
// file, so a parse error is a build defect and surfaces at startup.
func LoadTemplates() (*Templates, error) {
	var cfg templateConfig
	if err := yaml.Unmarshal(templatesYAML, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal templates.yaml: %w", err)
	}

	emailSubject, err := template.New("email_subject").Parse(cfg.Email.Subject)
	if err != nil {
		return nil, fmt.Errorf("parse email subject template: %w", err)
	}
	emailBody, err := template.New("email_body").Parse(cfg.Email.Body)
	if err != nil {
		return nil, fmt.Errorf("parse email body template: %w", err)
	}
	smsBody, err := template.New("sms_body").Parse(cfg.SMS.Body)
	if err != nil {
		return nil, fmt.Errorf("parse sms body template: %w", err)
	}

	return &Templates{
		emailSubject: emailSubject,
		emailBody:    emailBody,
		smsBody:      smsBody,
	}, nil
}

func render(t *template.Template, data MessageData) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return sb.String(), nil
}

// EmailSubject renders the email subject line.
func (t *Templates) EmailSubject(data MessageData) (string, error) {
	return render(t.emailSubject, data)
}

// EmailBody renders the email body.
func (t *Templates) EmailBody(data MessageData) (string, error) {
	return render(t.emailBody, data)
}

// SMSBody renders the SMS text. It doubles as the persisted notification
// message since it is the compact human-readable summary of the match.
func (t *Templates) SMSBody(data MessageData) (string, error) {
	return render(t.smsBody, data)
}
