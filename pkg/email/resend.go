package email

import (
	"bytes"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

// EmailService sends gathering reminder mail through Resend.
type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`
<p>Hi {{.Username}},</p>
<p>Reminder: the gathering <strong>{{.GatheringName}}</strong> takes place on {{.Date}}.</p>
<p>Location: {{.Location}}</p>
<p>— Lammatna</p>
`))

func (s *EmailService) SendReminderEmail(to, username, gatheringName, location string, date time.Time) error {
	var body bytes.Buffer
	err := reminderTemplate.Execute(&body, map[string]interface{}{
		"Username":      username,
		"GatheringName": gatheringName,
		"Location":      location,
		"Date":          date.Format("Mon, 2 Jan 2006 15:04"),
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Reminder: " + gatheringName,
		Html:    body.String(),
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send reminder email", zap.String("to", to), zap.Error(err))
		return err
	}

	s.logger.Info("sent reminder email", zap.String("to", to), zap.String("id", resp.Id))
	return nil
}
