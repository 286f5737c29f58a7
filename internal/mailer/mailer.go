package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
	"github.com/rs/zerolog"
)

// Mailer sends submission notification email over SES. Delivery is
// best-effort everywhere it is used: a failed send is logged, never
// surfaced to the form submitter.
type Mailer struct {
	ses  *sesv2.Client
	from string
	log  zerolog.Logger
}

// New builds a Mailer. If no sender address is configured the returned
// Mailer is disabled and every NotifySubmission call is a silent no-op.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Mailer, error) {
	m := &Mailer{from: cfg.SESFromEmail, log: log}
	if cfg.SESFromEmail == "" {
		log.Warn().Msg("SES_FROM_EMAIL not set, email notifications disabled")
		return m, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	m.ses = sesv2.NewFromConfig(awsCfg)

	log.Info().Str("from", cfg.SESFromEmail).Msg("SES mailer configured")
	return m, nil
}

// Enabled reports whether the mailer has a configured sender.
func (m *Mailer) Enabled() bool {
	return m.ses != nil
}

// NotifySubmission sends the new-submission notification to recipients.
func (m *Mailer) NotifySubmission(ctx context.Context, to []string, sub *model.Submission) error {
	if !m.Enabled() || len(to) == 0 {
		return nil
	}

	subject := "New Contact Form: " + sub.Name
	if sub.Type == model.SubmissionApplication {
		subject = "New Job Application: " + sub.Name
	}

	_, err := m.ses.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination:      &sestypes.Destination{ToAddresses: to},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: aws.String(buildHTML(sub))},
					Text: &sestypes.Content{Data: aws.String(buildText(sub))},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func buildHTML(sub *model.Submission) string {
	var b strings.Builder
	b.WriteString(`<html><body style="font-family:sans-serif">`)
	if sub.Type == model.SubmissionApplication {
		b.WriteString("<h2>MTN MUD — New Job Application</h2>")
	} else {
		b.WriteString("<h2>MTN MUD — New Contact Form</h2>")
	}
	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<p><b>%s</b><br>%s</p>", label, html.EscapeString(value))
	}
	field("Name", sub.Name)
	field("Email", sub.Email)
	field("Phone", deref(sub.Phone))
	field("Company", deref(sub.Company))
	field("Position", deref(sub.JobTitle))
	field("Resume", deref(sub.ResumeFileName))
	field("Message", deref(sub.Message))
	b.WriteString("</body></html>")
	return b.String()
}

func buildText(sub *model.Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New %s submission\n\n", sub.Type)
	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}
	field("Name", sub.Name)
	field("Email", sub.Email)
	field("Phone", deref(sub.Phone))
	field("Company", deref(sub.Company))
	field("Position", deref(sub.JobTitle))
	field("Resume", deref(sub.ResumeFileName))
	field("Message", deref(sub.Message))
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
