package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"log"
	texttemplate "text/template"

	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/sanitize"
	"github.com/wneessen/go-mail"
)

var (
	// ErrHeaderInjection aborts a send before any transport call when a
	// header-bound field carries raw CR/LF sequences.
	ErrHeaderInjection = errors.New("mailer: header field contains CR/LF")
	// ErrTemplateRender is returned only when the plain fallback template
	// fails too; HTML render failures degrade to the fallback instead.
	ErrTemplateRender = errors.New("mailer: template rendering failed")
	// ErrNothingToSend is returned for an empty summary list.
	ErrNothingToSend = errors.New("mailer: no download requests to notify")
)

type sender interface {
	DialAndSendWithContext(ctx context.Context, msgs ...*mail.Msg) error
}

// SMTPMailer delivers manager notifications over SMTP.
type SMTPMailer struct {
	send    sender
	sender  string
	manager string
}

// compile-time check: *SMTPMailer must satisfy port.Mailer
var _ port.Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(host string, smtpPort int, username, password, senderAddr, managerAddr string) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(smtpPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}
	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create SMTP client: %w", err)
	}
	return &SMTPMailer{send: client, sender: senderAddr, manager: managerAddr}, nil
}

type templateContext struct {
	Many      bool
	Summaries []port.DownloadSummary
}

// NotifyManager composes and sends one message summarising the given
// download requests. Every interpolated field is sanitised first; any
// header-bound field containing CR/LF aborts the call before transport.
func (m *SMTPMailer) NotifyManager(ctx context.Context, summaries []port.DownloadSummary) error {
	if len(summaries) == 0 {
		return ErrNothingToSend
	}

	for _, field := range []string{m.sender, m.manager} {
		if sanitize.ContainsCRLF(field) {
			return ErrHeaderInjection
		}
	}
	for _, s := range summaries {
		if sanitize.ContainsCRLF(s.Email) {
			return ErrHeaderInjection
		}
	}

	tctx := templateContext{
		Many:      len(summaries) > 1,
		Summaries: make([]port.DownloadSummary, len(summaries)),
	}
	for i, s := range summaries {
		tctx.Summaries[i] = port.DownloadSummary{
			RequestID:  sanitize.CleanLine(s.RequestID),
			VideoTitle: sanitize.CleanLine(s.VideoTitle),
			Email:      sanitize.CleanLine(s.Email),
			AccessURL:  sanitize.CleanLine(s.AccessURL),
		}
	}

	body, contentType, err := renderBody(tctx)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Download request: %d video(s) awaiting review", len(summaries))

	msg := mail.NewMsg()
	if err := msg.From(m.sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(m.manager); err != nil {
		return fmt.Errorf("invalid manager address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(contentType, body)

	if err := m.send.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("could not send notification: %w", err)
	}
	return nil
}

func renderBody(tctx templateContext) (string, mail.ContentType, error) {
	var buf bytes.Buffer

	htmlTpl, err := htmltemplate.New("manager_notification").Parse(managerNotificationHTML)
	if err == nil {
		if err = htmlTpl.Execute(&buf, tctx); err == nil {
			return buf.String(), mail.TypeTextHTML, nil
		}
	}
	log.Printf("HTML notification template failed, falling back to plain text: %v", err)

	buf.Reset()
	plainTpl, err := texttemplate.New("manager_notification_plain").Parse(managerNotificationPlain)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	if err := plainTpl.Execute(&buf, tctx); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), mail.TypeTextPlain, nil
}
