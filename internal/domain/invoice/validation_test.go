package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInput(t *testing.T) {
	valid := []ItemInput{{Description: "Serviço", Quantity: d("1"), Rate: d("100")}}

	t.Run("entrada válida", func(t *testing.T) {
		err := ValidateInput("customer-1", valid, d("10"), d("5"))
		assert.NoError(t, err)
	})

	tests := []struct {
		name         string
		customerID   string
		items        []ItemInput
		taxRate      decimal.Decimal
		discountRate decimal.Decimal
		want         string
	}{
		{
			name:  "cliente obrigatório",
			items: valid,
			want:  "customer_id é obrigatório",
		},
		{
			name:       "pelo menos um item",
			customerID: "customer-1",
			want:       "a fatura deve possuir pelo menos um item",
		},
		{
			name:       "descrição obrigatória",
			customerID: "customer-1",
			items:      []ItemInput{{Quantity: d("1"), Rate: d("10")}},
			want:       "item 1: descrição é obrigatória",
		},
		{
			name:       "quantidade positiva",
			customerID: "customer-1",
			items:      []ItemInput{{Description: "X", Quantity: d("0"), Rate: d("10")}},
			want:       "item 1: quantidade deve ser maior que zero",
		},
		{
			name:       "valor unitário positivo",
			customerID: "customer-1",
			items:      []ItemInput{{Description: "X", Quantity: d("1"), Rate: d("-1")}},
			want:       "item 1: valor unitário deve ser maior que zero",
		},
		{
			name:       "alíquota acima de 100",
			customerID: "customer-1",
			items:      valid,
			taxRate:    d("101"),
			want:       "alíquota de imposto deve estar entre 0 e 100",
		},
		{
			name:         "desconto negativo",
			customerID:   "customer-1",
			items:        valid,
			discountRate: d("-1"),
			want:         "percentual de desconto deve estar entre 0 e 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.customerID, tt.items, tt.taxRate, tt.discountRate)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Messages, tt.want)
		})
	}

	t.Run("ValidateRates cobre apenas as alíquotas", func(t *testing.T) {
		assert.NoError(t, ValidateRates(d("10"), d("5")))

		err := ValidateRates(d("101"), d("5"))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Messages, "alíquota de imposto deve estar entre 0 e 100")
	})

	t.Run("violações são acumuladas", func(t *testing.T) {
		err := ValidateInput("", nil, d("200"), d("-5"))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Messages, 4)
	})
}
