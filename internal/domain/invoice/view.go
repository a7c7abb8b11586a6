package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/otienog1/invoice/internal/domain/customer"
	"github.com/otienog1/invoice/internal/domain/user"
)

// View é a projeção de exibição de uma fatura: dados puros, sem
// dependência de persistência. É o único insumo do renderizador de PDF
// e do corpo do email, de modo que download e envio produzem sempre o
// mesmo documento.
type View struct {
	Number         string
	Title          string
	Description    string
	IssueDate      time.Time
	DueDate        *time.Time
	Status         Status
	Items          []ItemView
	Subtotal       decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountRate   decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Notes          string
	Terms          string

	Customer RecipientView
	Sender   SenderView
}

// ItemView é a projeção de um item para exibição
type ItemView struct {
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Total       decimal.Decimal
}

// RecipientView identifica o destinatário ("Bill To") do documento
type RecipientView struct {
	Name    string
	Email   string
	Address string
}

// SenderView identifica o emissor da fatura
type SenderView struct {
	Name           string
	Email          string
	Phone          string
	CompanyName    string
	CompanyAddress string
}

// NewView monta a projeção de exibição a partir da fatura, do cliente
// e do usuário emissor
func NewView(i *Invoice, c *customer.Customer, sender *user.User) View {
	items := make([]ItemView, 0, len(i.Items))
	for _, it := range i.Items {
		items = append(items, ItemView{
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Total:       it.Total,
		})
	}

	return View{
		Number:         i.InvoiceNumber,
		Title:          i.Title,
		Description:    i.Description,
		IssueDate:      i.IssueDate,
		DueDate:        i.DueDate,
		Status:         i.DisplayStatus(),
		Items:          items,
		Subtotal:       i.Subtotal,
		TaxRate:        i.TaxRate,
		TaxAmount:      i.TaxAmount,
		DiscountRate:   i.DiscountRate,
		DiscountAmount: i.DiscountAmount,
		TotalAmount:    i.TotalAmount,
		Notes:          i.Notes,
		Terms:          i.Terms,
		Customer: RecipientView{
			Name:    c.Name,
			Email:   c.Email,
			Address: c.Address,
		},
		Sender: SenderView{
			Name:           sender.Name,
			Email:          sender.Email,
			Phone:          sender.Phone,
			CompanyName:    sender.CompanyName,
			CompanyAddress: sender.CompanyAddress,
		},
	}
}
