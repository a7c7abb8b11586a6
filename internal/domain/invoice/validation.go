package invoice

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError acumula as regras violadas na criação ou
// atualização de uma fatura
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// ItemInput são os dados brutos de um item, antes da validação
type ItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// ValidateInput valida os dados de criação de uma fatura e retorna um
// *ValidationError com todas as violações encontradas, ou nil
func ValidateInput(customerID string, items []ItemInput, taxRate, discountRate decimal.Decimal) error {
	var messages []string

	if customerID == "" {
		messages = append(messages, "customer_id é obrigatório")
	}

	if len(items) == 0 {
		messages = append(messages, "a fatura deve possuir pelo menos um item")
	}
	for idx, it := range items {
		n := idx + 1
		if it.Description == "" {
			messages = append(messages, fmt.Sprintf("item %d: descrição é obrigatória", n))
		}
		if !it.Quantity.IsPositive() {
			messages = append(messages, fmt.Sprintf("item %d: quantidade deve ser maior que zero", n))
		}
		if !it.Rate.IsPositive() {
			messages = append(messages, fmt.Sprintf("item %d: valor unitário deve ser maior que zero", n))
		}
	}

	messages = append(messages, rateViolations(taxRate, discountRate)...)

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

// ValidateRates valida apenas as alíquotas, para atualizações que não
// tocam nos itens
func ValidateRates(taxRate, discountRate decimal.Decimal) error {
	if messages := rateViolations(taxRate, discountRate); len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

func rateViolations(taxRate, discountRate decimal.Decimal) []string {
	var messages []string
	if taxRate.IsNegative() || taxRate.GreaterThan(hundred) {
		messages = append(messages, "alíquota de imposto deve estar entre 0 e 100")
	}
	if discountRate.IsNegative() || discountRate.GreaterThan(hundred) {
		messages = append(messages, "percentual de desconto deve estar entre 0 e 100")
	}
	return messages
}

// BuildItems converte os dados validados em itens de fatura,
// preservando a ordem de entrada
func BuildItems(inputs []ItemInput) []InvoiceItem {
	items := make([]InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, NewItem(in.Description, in.Quantity, in.Rate))
	}
	return items
}
