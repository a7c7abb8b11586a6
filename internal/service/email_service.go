package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"

	"github.com/otienog1/invoice/internal/domain/invoice"
)

// Erros de envio de email
var (
	ErrMissingRecipient   = errors.New("cliente não possui email cadastrado")
	ErrDeliveryTimeout    = errors.New("tempo esgotado ao enviar o email")
	ErrEmailNotConfigured = errors.New("servidor SMTP não configurado")
)

// emailBodyTemplate é o corpo HTML do email de fatura
var emailBodyTemplate = template.Must(template.New("invoice_email").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<p>Olá {{.CustomerName}},</p>
	<p>Segue em anexo a fatura <strong>{{.Number}}</strong>{{if .SenderCompany}} emitida por {{.SenderCompany}}{{end}}.</p>
	{{if .Description}}<p>{{.Description}}</p>{{end}}
	<table style="border-collapse: collapse; margin: 16px 0;">
		<tr>
			<td style="padding: 4px 12px 4px 0;">Valor total:</td>
			<td style="padding: 4px 0;"><strong>{{.Total}}</strong></td>
		</tr>
		<tr>
			<td style="padding: 4px 12px 4px 0;">Emissão:</td>
			<td style="padding: 4px 0;">{{.IssueDate}}</td>
		</tr>
		{{if .DueDate}}
		<tr>
			<td style="padding: 4px 12px 4px 0;">Vencimento:</td>
			<td style="padding: 4px 0;">{{.DueDate}}</td>
		</tr>
		{{end}}
	</table>
	{{if .Notes}}<p>{{.Notes}}</p>{{end}}
	<p>Em caso de dúvidas, basta responder este email.</p>
	<p>Atenciosamente,<br>{{.SenderName}}{{if .SenderEmail}}<br>{{.SenderEmail}}{{end}}{{if .SenderPhone}}<br>{{.SenderPhone}}{{end}}</p>
</body>
</html>
`))

// EmailSender abstrai o transporte de email para permitir testes sem
// servidor SMTP
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string, attachmentName string, attachment []byte) error
}

// SMTPEmailSender envia emails via SMTP usando as variáveis de ambiente
// SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD e MAIL_FROM
type SMTPEmailSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPEmailSender cria o transporte SMTP a partir do ambiente
func NewSMTPEmailSender() (*SMTPEmailSender, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, ErrEmailNotConfigured
	}

	port := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("SMTP_PORT inválida: %w", err)
		}
		port = parsed
	}

	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USERNAME")
	}
	if from == "" {
		return nil, ErrEmailNotConfigured
	}

	return &SMTPEmailSender{
		host:     host,
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
	}, nil
}

// Send envia o email respeitando o prazo do contexto. O envio roda em
// uma goroutine porque o cliente SMTP não aceita contexto; o prazo
// estourado vira ErrDeliveryTimeout e a goroutine termina sozinha.
func (s *SMTPEmailSender) Send(ctx context.Context, to, subject, htmlBody string, attachmentName string, attachment []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if len(attachment) > 0 {
		m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	dialer := gomail.NewDialer(s.host, s.port, s.username, s.password)

	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("erro ao enviar email: %w", err)
		}
		return nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrDeliveryTimeout
		}
		return ctx.Err()
	}
}

// emailBodyData são os dados do template de corpo do email
type emailBodyData struct {
	CustomerName  string
	Number        string
	Description   string
	Total         string
	IssueDate     string
	DueDate       string
	Notes         string
	SenderName    string
	SenderEmail   string
	SenderPhone   string
	SenderCompany string
}

// renderEmailBody monta o corpo HTML do email a partir da projeção
func renderEmailBody(v invoice.View) (string, error) {
	data := emailBodyData{
		CustomerName:  v.Customer.Name,
		Number:        v.Number,
		Description:   v.Description,
		Total:         money(v.TotalAmount),
		IssueDate:     v.IssueDate.Format("02/01/2006"),
		Notes:         v.Notes,
		SenderName:    v.Sender.Name,
		SenderEmail:   v.Sender.Email,
		SenderPhone:   v.Sender.Phone,
		SenderCompany: v.Sender.CompanyName,
	}
	if v.DueDate != nil {
		data.DueDate = v.DueDate.Format("02/01/2006")
	}

	var buf bytes.Buffer
	if err := emailBodyTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("erro ao montar corpo do email: %w", err)
	}

	return buf.String(), nil
}
