package service

import (
	"context"
	"fmt"
	"time"

	"github.com/otienog1/invoice/internal/domain/customer"
	"github.com/otienog1/invoice/internal/domain/invoice"
	"github.com/otienog1/invoice/internal/domain/user"
	"github.com/otienog1/invoice/pkg/logger"
)

// sendTimeout é o prazo máximo de uma tentativa de envio de email
const sendTimeout = 30 * time.Second

// PDFRenderer abstrai o renderizador de PDF para permitir testes
type PDFRenderer interface {
	Render(v invoice.View) ([]byte, error)
}

// InvoiceService orquestra a geração de PDF e o envio de faturas por
// email. Download e envio partem da mesma projeção de exibição, então
// o anexo do email é sempre idêntico ao documento baixado.
type InvoiceService struct {
	invoices  invoice.Repository
	customers customer.Repository
	users     user.Repository
	renderer  PDFRenderer
	sender    EmailSender
	logger    logger.Logger
}

// NewInvoiceService cria uma nova instância de InvoiceService
func NewInvoiceService(
	invoices invoice.Repository,
	customers customer.Repository,
	users user.Repository,
	renderer PDFRenderer,
	sender EmailSender,
	logger logger.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		customers: customers,
		users:     users,
		renderer:  renderer,
		sender:    sender,
		logger:    logger,
	}
}

// buildView carrega a fatura com cliente e emissor e monta a projeção
func (s *InvoiceService) buildView(ctx context.Context, tenantID, invoiceID string) (*invoice.Invoice, invoice.View, error) {
	inv, err := s.invoices.FindByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, invoice.View{}, err
	}

	c, err := s.customers.FindByID(ctx, tenantID, inv.CustomerID)
	if err != nil {
		return nil, invoice.View{}, fmt.Errorf("erro ao carregar cliente da fatura: %w", err)
	}

	sender, err := s.users.FindByID(ctx, inv.CreatedBy)
	if err != nil {
		return nil, invoice.View{}, fmt.Errorf("erro ao carregar emissor da fatura: %w", err)
	}

	return inv, invoice.NewView(inv, c, sender), nil
}

// GeneratePDF renderiza o PDF da fatura e retorna os bytes junto com o
// nome de arquivo sugerido
func (s *InvoiceService) GeneratePDF(ctx context.Context, tenantID, invoiceID string) ([]byte, string, error) {
	_, view, err := s.buildView(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.renderer.Render(view)
	if err != nil {
		return nil, "", err
	}

	return pdf, view.Number + ".pdf", nil
}

// SendInvoice envia a fatura por email com o PDF em anexo. A fatura só
// é marcada como enviada depois que o envio for bem-sucedido; qualquer
// falha preserva o status atual.
func (s *InvoiceService) SendInvoice(ctx context.Context, tenantID, invoiceID string) (*invoice.Invoice, error) {
	if s.sender == nil {
		return nil, ErrEmailNotConfigured
	}

	inv, view, err := s.buildView(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if view.Customer.Email == "" {
		return nil, ErrMissingRecipient
	}

	pdf, err := s.renderer.Render(view)
	if err != nil {
		return nil, err
	}

	body, err := renderEmailBody(view)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Fatura %s", view.Number)
	if view.Sender.CompanyName != "" {
		subject = fmt.Sprintf("Fatura %s - %s", view.Number, view.Sender.CompanyName)
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := s.sender.Send(sendCtx, view.Customer.Email, subject, body, view.Number+".pdf", pdf); err != nil {
		s.logger.Error("falha ao enviar fatura por email",
			"invoice_id", inv.ID, "invoice_number", inv.InvoiceNumber, "error", err)
		return nil, err
	}

	inv.MarkSent()
	if err := s.invoices.UpdateStatus(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Info("fatura enviada por email",
		"invoice_id", inv.ID, "invoice_number", inv.InvoiceNumber, "to", view.Customer.Email)

	return inv, nil
}
