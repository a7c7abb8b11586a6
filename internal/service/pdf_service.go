package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/otienog1/invoice/internal/domain/invoice"
)

// descriptionLimit é o máximo de caracteres da descrição exibida na
// tabela de itens do PDF
const descriptionLimit = 30

// PDFService renderiza faturas em PDF a partir da projeção de exibição
type PDFService struct{}

// NewPDFService cria uma nova instância de PDFService
func NewPDFService() *PDFService {
	return &PDFService{}
}

// Render gera o documento PDF da fatura e retorna os bytes
func (s *PDFService) Render(v invoice.View) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	// Fontes base do PDF usam cp1252; traduzir os acentos
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Cabeçalho
	pdf.SetFont("Arial", "B", 24)
	pdf.Cell(100, 12, tr("FATURA"))
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 12, tr(v.Number), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Bloco do emissor
	pdf.SetFont("Arial", "B", 11)
	senderName := v.Sender.CompanyName
	if senderName == "" {
		senderName = v.Sender.Name
	}
	pdf.Cell(0, 6, tr(senderName))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	if v.Sender.CompanyAddress != "" {
		pdf.MultiCell(90, 5, tr(v.Sender.CompanyAddress), "", "L", false)
	}
	if v.Sender.Email != "" {
		pdf.Cell(0, 5, tr(v.Sender.Email))
		pdf.Ln(5)
	}
	if v.Sender.Phone != "" {
		pdf.Cell(0, 5, tr(v.Sender.Phone))
		pdf.Ln(5)
	}
	pdf.Ln(6)

	// Bloco do destinatário
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, tr("Faturado para:"))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 5, tr(v.Customer.Name))
	pdf.Ln(5)
	if v.Customer.Email != "" {
		pdf.Cell(0, 5, tr(v.Customer.Email))
		pdf.Ln(5)
	}
	if v.Customer.Address != "" {
		pdf.MultiCell(90, 5, tr(v.Customer.Address), "", "L", false)
	}
	pdf.Ln(4)

	// Datas
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 5, tr("Data de emissão: "+v.IssueDate.Format("02/01/2006")))
	pdf.Ln(5)
	if v.DueDate != nil {
		pdf.Cell(0, 5, tr("Vencimento: "+v.DueDate.Format("02/01/2006")))
		pdf.Ln(5)
	}
	pdf.Ln(6)

	// Tabela de itens
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(85, 8, tr("Descrição"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qtde", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, tr("Valor unit."), "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, it := range v.Items {
		pdf.CellFormat(85, 8, tr(truncate(it.Description, descriptionLimit)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, it.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, money(it.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, money(it.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totais. Desconto e imposto só aparecem quando a alíquota é maior
	// que zero, como na listagem de itens da fatura.
	totalsLabel := func(label, value, border string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(145, 7, tr(label), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, value, border, 1, "R", false, 0, "")
	}

	totalsLabel("Subtotal:", money(v.Subtotal), "", false)
	if v.DiscountRate.GreaterThan(decimal.Zero) {
		totalsLabel(fmt.Sprintf("Desconto (%s%%):", v.DiscountRate.String()), "-"+money(v.DiscountAmount), "", false)
	}
	if v.TaxRate.GreaterThan(decimal.Zero) {
		totalsLabel(fmt.Sprintf("Imposto (%s%%):", v.TaxRate.String()), money(v.TaxAmount), "", false)
	}
	// A linha do total leva borda para destacá-la dos demais valores
	totalsLabel("Total:", money(v.TotalAmount), "1", true)
	pdf.Ln(6)

	// Observações e condições
	if v.Notes != "" {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, tr("Observações"))
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, tr(v.Notes), "", "L", false)
		pdf.Ln(3)
	}
	if v.Terms != "" {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, tr("Condições de pagamento"))
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, tr(v.Terms), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gerar PDF da fatura: %w", err)
	}

	return buf.Bytes(), nil
}

// money formata um valor monetário com 2 casas decimais
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// truncate corta o texto no limite de caracteres, marcando o corte
// com reticências
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
