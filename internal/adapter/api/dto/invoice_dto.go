package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/otienog1/invoice/internal/domain/invoice"
)

// InvoiceItemRequest representa um item na requisição de fatura
type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// InvoiceRequest representa a requisição de criação de fatura
type InvoiceRequest struct {
	CustomerID   string               `json:"customer_id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	DueDate      *time.Time           `json:"due_date"`
	TaxRate      decimal.Decimal      `json:"tax_rate"`
	DiscountRate decimal.Decimal      `json:"discount_rate"`
	Notes        string               `json:"notes"`
	Terms        string               `json:"terms"`
	Items        []InvoiceItemRequest `json:"items"`
}

// ItemInputs converte os itens da requisição para a entrada do domínio
func (r InvoiceRequest) ItemInputs() []invoice.ItemInput {
	inputs := make([]invoice.ItemInput, len(r.Items))
	for i, it := range r.Items {
		inputs[i] = invoice.ItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		}
	}
	return inputs
}

// InvoiceUpdateRequest representa a requisição de atualização de fatura.
// Apenas os campos presentes são alterados; Items, quando presente,
// substitui integralmente os itens existentes.
type InvoiceUpdateRequest struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	DueDate      *time.Time           `json:"due_date"`
	TaxRate      *decimal.Decimal     `json:"tax_rate"`
	DiscountRate *decimal.Decimal     `json:"discount_rate"`
	Notes        *string              `json:"notes"`
	Terms        *string              `json:"terms"`
	Items        []InvoiceItemRequest `json:"items"`
}

// ToPatch converte a requisição para o patch do domínio
func (r InvoiceUpdateRequest) ToPatch() invoice.Patch {
	return invoice.Patch{
		Title:        r.Title,
		Description:  r.Description,
		DueDate:      r.DueDate,
		TaxRate:      r.TaxRate,
		DiscountRate: r.DiscountRate,
		Notes:        r.Notes,
		Terms:        r.Terms,
	}
}

// ItemInputs converte os itens da requisição para a entrada do domínio
func (r InvoiceUpdateRequest) ItemInputs() []invoice.ItemInput {
	inputs := make([]invoice.ItemInput, len(r.Items))
	for i, it := range r.Items {
		inputs[i] = invoice.ItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		}
	}
	return inputs
}

// InvoiceItemResponse representa um item na resposta de fatura
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Total       decimal.Decimal `json:"total"`
	Position    int             `json:"position"`
}

// InvoiceResponse representa a resposta de fatura. O status exibido já
// considera o vencimento (overdue é derivado, nunca persistido).
type InvoiceResponse struct {
	ID             string                `json:"id"`
	TenantID       string                `json:"tenant_id"`
	CustomerID     string                `json:"customer_id"`
	InvoiceNumber  string                `json:"invoice_number"`
	Title          string                `json:"title,omitempty"`
	Description    string                `json:"description,omitempty"`
	IssueDate      time.Time             `json:"issue_date"`
	DueDate        *time.Time            `json:"due_date,omitempty"`
	Status         invoice.Status        `json:"status"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxRate        decimal.Decimal       `json:"tax_rate"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	DiscountRate   decimal.Decimal       `json:"discount_rate"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	PaidAmount     decimal.Decimal       `json:"paid_amount"`
	PaymentDate    *time.Time            `json:"payment_date,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	Terms          string                `json:"terms,omitempty"`
	Items          []InvoiceItemResponse `json:"items,omitempty"`
	Customer       *CustomerResponse     `json:"customer,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// InvoiceListResponse representa a resposta de lista de faturas
type InvoiceListResponse struct {
	Items       []InvoiceResponse `json:"items"`
	Total       int               `json:"total"`
	Pages       int               `json:"pages"`
	CurrentPage int               `json:"current_page"`
}

// ToInvoiceResponse converte uma fatura do domínio para DTO
func ToInvoiceResponse(i *invoice.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(i.Items))
	for n, it := range i.Items {
		items[n] = InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Total:       it.Total,
			Position:    it.Position,
		}
	}

	return InvoiceResponse{
		ID:             i.ID,
		TenantID:       i.TenantID,
		CustomerID:     i.CustomerID,
		InvoiceNumber:  i.InvoiceNumber,
		Title:          i.Title,
		Description:    i.Description,
		IssueDate:      i.IssueDate,
		DueDate:        i.DueDate,
		Status:         i.DisplayStatus(),
		Subtotal:       i.Subtotal,
		TaxRate:        i.TaxRate,
		TaxAmount:      i.TaxAmount,
		DiscountRate:   i.DiscountRate,
		DiscountAmount: i.DiscountAmount,
		TotalAmount:    i.TotalAmount,
		PaidAmount:     i.PaidAmount,
		PaymentDate:    i.PaymentDate,
		Notes:          i.Notes,
		Terms:          i.Terms,
		Items:          items,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

// ToInvoiceListResponse converte uma página de faturas para DTO
func ToInvoiceListResponse(invoices []*invoice.Invoice, total int, p PaginationParams) InvoiceListResponse {
	items := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		items[i] = ToInvoiceResponse(inv)
	}

	return InvoiceListResponse{
		Items:       items,
		Total:       total,
		Pages:       TotalPages(total, p.PageSize),
		CurrentPage: p.Page,
	}
}
