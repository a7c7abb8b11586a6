package service

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otienog1/invoice/internal/domain/invoice"
)

func sampleView() invoice.View {
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return invoice.View{
		Number:    "INV-2026-ABCD1234",
		IssueDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   &due,
		Status:    invoice.StatusDraft,
		Items: []invoice.ItemView{
			{
				Description: "Consultoria",
				Quantity:    decimal.NewFromInt(10),
				Rate:        decimal.NewFromInt(50),
				Total:       decimal.NewFromInt(500),
			},
		},
		Subtotal:    decimal.NewFromInt(500),
		TotalAmount: decimal.NewFromInt(500),
		Notes:       "Obrigado pela preferência",
		Customer: invoice.RecipientView{
			Name:    "Cliente A",
			Email:   "cliente@example.com",
			Address: "Rua Exemplo, 123",
		},
		Sender: invoice.SenderView{
			Name:        "Emissor",
			Email:       "emissor@example.com",
			CompanyName: "Emissora LTDA",
		},
	}
}

func TestRender(t *testing.T) {
	svc := NewPDFService()

	t.Run("produz um documento PDF", func(t *testing.T) {
		out, err := svc.Render(sampleView())
		require.NoError(t, err)

		assert.True(t, len(out) > 500, "documento muito pequeno: %d bytes", len(out))
		assert.Equal(t, "%PDF", string(out[:4]))
	})

	t.Run("renderiza sem vencimento e sem observações", func(t *testing.T) {
		v := sampleView()
		v.DueDate = nil
		v.Notes = ""
		v.Terms = ""

		out, err := svc.Render(v)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(out[:4]))
	})

	t.Run("renderiza com desconto e imposto", func(t *testing.T) {
		v := sampleView()
		v.DiscountRate = decimal.NewFromInt(5)
		v.DiscountAmount = decimal.NewFromInt(25)
		v.TaxRate = decimal.NewFromInt(10)
		v.TaxAmount = decimal.NewFromFloat(47.50)
		v.TotalAmount = decimal.NewFromFloat(522.50)

		out, err := svc.Render(v)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(out[:4]))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "curto", truncate("curto", 30))
	assert.Equal(t, strings.Repeat("x", 30)+"...", truncate(strings.Repeat("x", 45), 30))
	assert.Equal(t, strings.Repeat("x", 30), truncate(strings.Repeat("x", 30), 30))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "522.50", money(decimal.NewFromFloat(522.5)))
	assert.Equal(t, "0.00", money(decimal.Zero))
}

func TestRenderEmailBody(t *testing.T) {
	v := sampleView()
	v.Description = "Serviços de setembro"
	v.Sender.Phone = "+55 11 99999-0000"

	body, err := renderEmailBody(v)
	require.NoError(t, err)

	assert.Contains(t, body, "INV-2026-ABCD1234")
	assert.Contains(t, body, "Cliente A")
	assert.Contains(t, body, "500.00")
	assert.Contains(t, body, "Emissora LTDA")
	assert.Contains(t, body, "Serviços de setembro")
	assert.Contains(t, body, "01/09/2026")
	assert.Contains(t, body, "01/10/2026")
	assert.Contains(t, body, "emissor@example.com")
	assert.Contains(t, body, "+55 11 99999-0000")
}
