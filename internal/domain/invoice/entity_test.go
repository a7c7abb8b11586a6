package invoice

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCalculateTotals(t *testing.T) {
	t.Run("desconto e imposto aplicados na ordem correta", func(t *testing.T) {
		inv := NewInvoice("tenant-1", "user-1", "customer-1")
		inv.DiscountRate = d("5")
		inv.TaxRate = d("10")
		inv.SetItems([]InvoiceItem{
			NewItem("Consultoria", d("10"), d("50")),
		})

		// subtotal 500, desconto 25, base 475, imposto 47.50, total 522.50
		assert.True(t, inv.Subtotal.Equal(d("500")), "subtotal: %s", inv.Subtotal)
		assert.True(t, inv.DiscountAmount.Equal(d("25")), "desconto: %s", inv.DiscountAmount)
		assert.True(t, inv.TaxAmount.Equal(d("47.50")), "imposto: %s", inv.TaxAmount)
		assert.True(t, inv.TotalAmount.Equal(d("522.50")), "total: %s", inv.TotalAmount)
	})

	t.Run("sem itens os totais zeram", func(t *testing.T) {
		inv := NewInvoice("tenant-1", "user-1", "customer-1")
		inv.TaxRate = d("10")
		inv.CalculateTotals()

		assert.True(t, inv.Subtotal.IsZero())
		assert.True(t, inv.TotalAmount.IsZero())
	})

	t.Run("recalcular é idempotente", func(t *testing.T) {
		inv := NewInvoice("tenant-1", "user-1", "customer-1")
		inv.DiscountRate = d("5")
		inv.TaxRate = d("10")
		inv.SetItems([]InvoiceItem{
			NewItem("Consultoria", d("10"), d("50")),
		})

		total := inv.TotalAmount
		inv.CalculateTotals()
		inv.CalculateTotals()
		assert.True(t, inv.TotalAmount.Equal(total))
	})

	t.Run("valores armazenados com 2 casas", func(t *testing.T) {
		inv := NewInvoice("tenant-1", "user-1", "customer-1")
		inv.TaxRate = d("7.33")
		inv.SetItems([]InvoiceItem{
			NewItem("Serviço", d("3"), d("33.333")),
		})

		// 3 × 33.333 = 99.999 → item arredonda para 100.00
		assert.True(t, inv.Items[0].Total.Equal(d("100")), "item: %s", inv.Items[0].Total)
		assert.Equal(t, int32(-2), inv.TaxAmount.Exponent())
	})
}

func TestGenerateNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-\d{4}-[0-9A-F]{8}$`)

	for i := 0; i < 50; i++ {
		n := GenerateNumber()
		require.Regexp(t, pattern, n)
	}

	// Dois números gerados em sequência não colidem na prática
	assert.NotEqual(t, GenerateNumber(), GenerateNumber())
}

func TestSetItems(t *testing.T) {
	inv := NewInvoice("tenant-1", "user-1", "customer-1")
	inv.SetItems([]InvoiceItem{
		NewItem("Item A", d("1"), d("10")),
		NewItem("Item B", d("2"), d("20")),
	})

	require.Len(t, inv.Items, 2)
	assert.Equal(t, 0, inv.Items[0].Position)
	assert.Equal(t, 1, inv.Items[1].Position)
	assert.Equal(t, inv.ID, inv.Items[0].InvoiceID)
	assert.True(t, inv.Subtotal.Equal(d("50")))

	// Substituição é integral, nunca mesclagem
	inv.SetItems([]InvoiceItem{
		NewItem("Item C", d("1"), d("5")),
	})
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Subtotal.Equal(d("5")))
}

func TestStatusTransitions(t *testing.T) {
	t.Run("nova fatura nasce em rascunho", func(t *testing.T) {
		inv := NewInvoice("tenant-1", "user-1", "customer-1")
		assert.Equal(t, StatusDraft, inv.Status)
	})

	t.Run("MarkSent", func(t *testing.T) {
		inv := NewInvoice("tenant-1", "user-1", "customer-1")
		inv.MarkSent()
		assert.Equal(t, StatusSent, inv.Status)
	})

	t.Run("MarkPaid registra valor e data", func(t *testing.T) {
		inv := NewInvoice("tenant-1", "user-1", "customer-1")
		inv.SetItems([]InvoiceItem{NewItem("Item", d("1"), d("100"))})
		inv.MarkSent()
		require.NoError(t, inv.MarkPaid())

		assert.Equal(t, StatusPaid, inv.Status)
		assert.True(t, inv.PaidAmount.Equal(inv.TotalAmount))
		require.NotNil(t, inv.PaymentDate)
	})

	t.Run("MarkPaid recusa rascunho", func(t *testing.T) {
		inv := NewInvoice("tenant-1", "user-1", "customer-1")
		inv.SetItems([]InvoiceItem{NewItem("Item", d("1"), d("100"))})

		err := inv.MarkPaid()

		require.ErrorIs(t, err, ErrNotSent)
		assert.Equal(t, StatusDraft, inv.Status)
		assert.Nil(t, inv.PaymentDate)
	})

	t.Run("MarkPaid recusa fatura já paga", func(t *testing.T) {
		inv := NewInvoice("tenant-1", "user-1", "customer-1")
		inv.SetItems([]InvoiceItem{NewItem("Item", d("1"), d("100"))})
		inv.MarkSent()
		require.NoError(t, inv.MarkPaid())

		require.ErrorIs(t, inv.MarkPaid(), ErrNotSent)
	})
}

func TestOverdue(t *testing.T) {
	past := time.Now().UTC().Add(-24 * time.Hour)
	future := time.Now().UTC().Add(24 * time.Hour)

	tests := []struct {
		name    string
		due     *time.Time
		status  Status
		overdue bool
		display Status
	}{
		{"sem vencimento nunca vence", nil, StatusSent, false, StatusSent},
		{"vencimento futuro", &future, StatusSent, false, StatusSent},
		{"vencida e enviada", &past, StatusSent, true, StatusOverdue},
		{"vencida em rascunho", &past, StatusDraft, true, StatusOverdue},
		{"paga não vence", &past, StatusPaid, false, StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := NewInvoice("tenant-1", "user-1", "customer-1")
			inv.DueDate = tt.due
			inv.Status = tt.status

			assert.Equal(t, tt.overdue, inv.IsOverdue())
			assert.Equal(t, tt.display, inv.DisplayStatus())
		})
	}
}

func TestApplyPatch(t *testing.T) {
	inv := NewInvoice("tenant-1", "user-1", "customer-1")
	inv.SetItems([]InvoiceItem{NewItem("Item", d("1"), d("100"))})

	title := "Projeto X"
	tax := d("10")
	inv.Apply(Patch{Title: &title, TaxRate: &tax})

	assert.Equal(t, "Projeto X", inv.Title)
	assert.True(t, inv.TaxRate.Equal(d("10")))
	// A mudança de alíquota recalcula o total
	assert.True(t, inv.TotalAmount.Equal(d("110")), "total: %s", inv.TotalAmount)

	// Campos ausentes não são alterados
	inv.Apply(Patch{})
	assert.Equal(t, "Projeto X", inv.Title)
}
