package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("fatura não encontrada")
	ErrDuplicateNumber = errors.New("número de fatura já existe")
	ErrNotSent         = errors.New("apenas faturas enviadas podem ser marcadas como pagas")
)

// Status representa o estado da fatura
type Status string

const (
	StatusDraft   Status = "draft"   // Rascunho, ainda não enviada
	StatusSent    Status = "sent"    // Enviada ao cliente
	StatusPaid    Status = "paid"    // Paga (estado terminal)
	StatusOverdue Status = "overdue" // Apenas visualização: derivado de due_date
)

// Valid indica se o status pode ser usado como filtro de consulta.
// Overdue não é persistido, então não filtra.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusSent || s == StatusPaid
}

var hundred = decimal.NewFromInt(100)

// InvoiceItem representa um item de uma fatura.
// A ordem de inserção (Position) é relevante apenas para exibição.
type InvoiceItem struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Total       decimal.Decimal `json:"total"`
	Position    int             `json:"position"`
}

// NewItem cria um item de fatura com o total já calculado
func NewItem(description string, quantity, rate decimal.Decimal) InvoiceItem {
	it := InvoiceItem{
		ID:          uuid.New().String(),
		Description: description,
		Quantity:    quantity,
		Rate:        rate,
	}
	it.CalculateTotal()
	return it
}

// CalculateTotal recalcula o total do item (quantidade × valor unitário,
// arredondado a 2 casas). O total nunca é aceito do chamador.
func (it *InvoiceItem) CalculateTotal() {
	it.Total = it.Quantity.Mul(it.Rate).Round(2)
}

// Invoice representa uma fatura da organização
type Invoice struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenant_id"`
	CreatedBy      string          `json:"created_by"` // Usuário emissor (auditoria e bloco do remetente)
	CustomerID     string          `json:"customer_id"`
	InvoiceNumber  string          `json:"invoice_number"`
	Title          string          `json:"title,omitempty"`
	Description    string          `json:"description,omitempty"`
	IssueDate      time.Time       `json:"issue_date"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Status         Status          `json:"status"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountRate   decimal.Decimal `json:"discount_rate"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	PaymentDate    *time.Time      `json:"payment_date,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Terms          string          `json:"terms,omitempty"`
	Items          []InvoiceItem   `json:"items,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewInvoice cria uma nova fatura em rascunho com número gerado
func NewInvoice(tenantID, createdBy, customerID string) *Invoice {
	now := time.Now().UTC()
	return &Invoice{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		CreatedBy:     createdBy,
		CustomerID:    customerID,
		InvoiceNumber: GenerateNumber(),
		IssueDate:     now,
		Status:        StatusDraft,
		Subtotal:      decimal.Zero,
		TaxRate:       decimal.Zero,
		TaxAmount:     decimal.Zero,
		DiscountRate:  decimal.Zero,
		DiscountAmount: decimal.Zero,
		TotalAmount:   decimal.Zero,
		PaidAmount:    decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// GenerateNumber gera um número de fatura no formato
// INV-{ano}-{8 caracteres hexadecimais maiúsculos}. A unicidade é
// garantida pela constraint do banco; em caso de colisão o chamador
// deve gerar um novo número e tentar de novo.
func GenerateNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("INV-%d-%s", time.Now().UTC().Year(), suffix)
}

// RegenerateNumber substitui o número da fatura após uma colisão
func (i *Invoice) RegenerateNumber() {
	i.InvoiceNumber = GenerateNumber()
}

// SetItems substitui o conjunto de itens por inteiro (a atualização de
// fatura nunca mescla itens) e recalcula os totais
func (i *Invoice) SetItems(items []InvoiceItem) {
	for idx := range items {
		items[idx].InvoiceID = i.ID
		items[idx].Position = idx
		items[idx].CalculateTotal()
	}
	i.Items = items
	i.CalculateTotals()
}

// CalculateTotals recalcula os totais da fatura, nesta ordem:
//
//	subtotal        = soma dos totais dos itens
//	discount_amount = subtotal × (discount_rate / 100)
//	taxable         = subtotal − discount_amount
//	tax_amount      = taxable × (tax_rate / 100)
//	total_amount    = taxable + tax_amount
//
// Toda a aritmética é decimal; os valores persistidos são arredondados
// a 2 casas (metade para cima). O total nunca é definido de forma
// independente dos itens.
func (i *Invoice) CalculateTotals() {
	subtotal := decimal.Zero
	for _, it := range i.Items {
		subtotal = subtotal.Add(it.Total)
	}
	i.Subtotal = subtotal.Round(2)
	i.DiscountAmount = i.Subtotal.Mul(i.DiscountRate.Div(hundred)).Round(2)
	taxable := i.Subtotal.Sub(i.DiscountAmount)
	i.TaxAmount = taxable.Mul(i.TaxRate.Div(hundred)).Round(2)
	i.TotalAmount = taxable.Add(i.TaxAmount).Round(2)
	i.UpdatedAt = time.Now().UTC()
}

// IsOverdue indica se a fatura está vencida: há data de vencimento,
// ela já passou e a fatura não foi paga. É um predicado derivado,
// não um estado persistido.
func (i *Invoice) IsOverdue() bool {
	return i.DueDate != nil && time.Now().UTC().After(*i.DueDate) && i.Status != StatusPaid
}

// DisplayStatus retorna o status para exibição, trocando draft/sent
// por overdue quando a fatura está vencida
func (i *Invoice) DisplayStatus() Status {
	if i.IsOverdue() {
		return StatusOverdue
	}
	return i.Status
}

// MarkSent marca a fatura como enviada. Chamado apenas após um envio
// bem-sucedido; reenvios marcam novamente sem restrição.
func (i *Invoice) MarkSent() {
	i.Status = StatusSent
	i.UpdatedAt = time.Now().UTC()
}

// MarkPaid marca a fatura como paga, registrando a data e o valor.
// Apenas faturas enviadas podem ser pagas; rascunhos precisam ser
// enviados primeiro.
func (i *Invoice) MarkPaid() error {
	if i.Status != StatusSent {
		return ErrNotSent
	}
	now := time.Now().UTC()
	i.Status = StatusPaid
	i.PaidAmount = i.TotalAmount
	i.PaymentDate = &now
	i.UpdatedAt = now
	return nil
}

// Patch enumera os campos escalares da fatura que podem ser atualizados.
// Itens são substituídos por SetItems, nunca por patch.
type Patch struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	DueDate      *time.Time       `json:"due_date"`
	TaxRate      *decimal.Decimal `json:"tax_rate"`
	DiscountRate *decimal.Decimal `json:"discount_rate"`
	Notes        *string          `json:"notes"`
	Terms        *string          `json:"terms"`
}

// Apply aplica o patch campo a campo e recalcula os totais quando
// alguma alíquota muda
func (i *Invoice) Apply(p Patch) {
	if p.Title != nil {
		i.Title = *p.Title
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.DueDate != nil {
		d := *p.DueDate
		i.DueDate = &d
	}
	if p.TaxRate != nil {
		i.TaxRate = *p.TaxRate
	}
	if p.DiscountRate != nil {
		i.DiscountRate = *p.DiscountRate
	}
	if p.Notes != nil {
		i.Notes = *p.Notes
	}
	if p.Terms != nil {
		i.Terms = *p.Terms
	}
	i.CalculateTotals()
}
