package services

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"groundedwarriors/internal/models/db_models"
)

type IMailService interface {
	SendMailToResetPassword(ctx context.Context, to, resetLink string) error
	SendContactNotification(ctx context.Context, to string, submission *db_models.ContactSubmission) error
}

// MailMessage is a rendered email ready for delivery.
type MailMessage struct {
	To          string
	ReplyTo     string
	ReplyToName string
	Subject     string
	HTML        string
	Text        string
}

// MailSender delivers rendered messages. Implementations exist for
// SendGrid, SMTP and the log.
type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}

type mailService struct {
	sender  MailSender
	appName string
	htmlTpl *htmltemplate.Template
	textTpl *texttemplate.Template
	now     func() time.Time
}

func NewMailService(sender MailSender, appName string) IMailService {
	return &mailService{
		sender:  sender,
		appName: appName,
		htmlTpl: htmltemplate.Must(htmltemplate.New("html").Parse(emailHTMLTemplate)),
		textTpl: texttemplate.Must(texttemplate.New("text").Parse(emailTextTemplate)),
		now:     time.Now,
	}
}

type EmailDetail struct {
	Label string
	Value string
}

type EmailData struct {
	Title     string
	Intro     string
	Details   []EmailDetail
	ButtonURL string
	ButtonTxt string
	Footnote  string
	AppName   string
	Year      int
}

func (s *mailService) SendMailToResetPassword(ctx context.Context, to, resetLink string) error {
	subject := "Reset your password"
	html, text, err := s.renderEmail(EmailData{
		Title:     subject,
		Intro:     "We received a request to reset the password for your Grounded Warriors account. Use the button below to choose a new one.",
		ButtonURL: resetLink,
		ButtonTxt: "Reset Password",
		Footnote:  "This link expires in 1 hour. If you didn't request a reset, you can ignore this email.",
	})
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, MailMessage{To: to, Subject: subject, HTML: html, Text: text})
}

func (s *mailService) SendContactNotification(ctx context.Context, to string, submission *db_models.ContactSubmission) error {
	subject := fmt.Sprintf("New contact message from %s", submission.Name)
	html, text, err := s.renderEmail(EmailData{
		Title: "New contact form submission",
		Intro: submission.Message,
		Details: []EmailDetail{
			{Label: "Name", Value: submission.Name},
			{Label: "Email", Value: submission.Email},
			{Label: "Received", Value: submission.CreatedAt.Format(time.RFC1123)},
		},
		Footnote: "Reply to this email to answer the sender directly.",
	})
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, MailMessage{
		To:          to,
		ReplyTo:     submission.Email,
		ReplyToName: submission.Name,
		Subject:     subject,
		HTML:        html,
		Text:        text,
	})
}

func (s *mailService) renderEmail(data EmailData) (string, string, error) {
	data.AppName = s.appName
	data.Year = s.now().Year()

	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

const emailHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
</head>
<body style="margin:0;padding:0;background:#f4f1ea;font-family:Georgia,'Times New Roman',serif;color:#2f3a2f;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="padding:32px 12px;">
    <tr><td align="center">
      <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="max-width:560px;background:#ffffff;border-radius:10px;overflow:hidden;">
        <tr><td style="background:#3d5a40;color:#f4f1ea;padding:24px 32px;font-size:20px;letter-spacing:1px;">{{.AppName}}</td></tr>
        <tr><td style="padding:32px;">
          <h1 style="margin:0 0 16px;font-size:24px;">{{.Title}}</h1>
          <p style="margin:0 0 20px;line-height:1.6;white-space:pre-line;">{{.Intro}}</p>
          {{if .Details}}
          <table role="presentation" cellpadding="0" cellspacing="0" style="margin:0 0 20px;">
            {{range .Details}}<tr><td style="padding:4px 16px 4px 0;color:#6b7a6b;">{{.Label}}</td><td style="padding:4px 0;">{{.Value}}</td></tr>{{end}}
          </table>
          {{end}}
          {{if .ButtonURL}}
          <p style="margin:28px 0;"><a href="{{.ButtonURL}}" style="background:#c8794a;color:#ffffff;text-decoration:none;padding:14px 28px;border-radius:6px;display:inline-block;">{{.ButtonTxt}}</a></p>
          <p style="margin:0 0 20px;font-size:13px;color:#6b7a6b;">Or paste this link into your browser:<br><a href="{{.ButtonURL}}" style="color:#3d5a40;word-break:break-all;">{{.ButtonURL}}</a></p>
          {{end}}
          {{if .Footnote}}<p style="margin:0;font-size:13px;color:#6b7a6b;">{{.Footnote}}</p>{{end}}
        </td></tr>
        <tr><td style="padding:16px 32px;font-size:12px;color:#8a958a;text-align:center;border-top:1px solid #ece7dc;">&copy; {{.Year}} {{.AppName}}</td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

const emailTextTemplate = `{{.Title}}

{{.Intro}}
{{range .Details}}
{{.Label}}: {{.Value}}{{end}}
{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}{{if .Footnote}}
{{.Footnote}}
{{end}}
{{.AppName}} (c) {{.Year}}
`
