package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/otienog1/invoice/internal/adapter/api/dto"
	customerdomain "github.com/otienog1/invoice/internal/domain/customer"
	invoicedomain "github.com/otienog1/invoice/internal/domain/invoice"
	"github.com/otienog1/invoice/internal/service"
	"github.com/otienog1/invoice/pkg/logger"
)

// createMaxAttempts limita as tentativas de criação quando o número
// gerado da fatura colide com um existente
const createMaxAttempts = 3

// InvoiceController gerencia as requisições relacionadas a faturas
type InvoiceController struct {
	invoiceRepo    invoicedomain.Repository
	customerRepo   customerdomain.Repository
	invoiceService *service.InvoiceService
	logger         logger.Logger
}

// NewInvoiceController cria uma nova instância de InvoiceController
func NewInvoiceController(invoiceRepo invoicedomain.Repository, customerRepo customerdomain.Repository, invoiceService *service.InvoiceService, logger logger.Logger) *InvoiceController {
	return &InvoiceController{
		invoiceRepo:    invoiceRepo,
		customerRepo:   customerRepo,
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// Create cria uma nova fatura em rascunho
// @Summary Criar fatura
// @Description Cria uma fatura em rascunho com número gerado e totais calculados a partir dos itens
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param invoice body dto.InvoiceRequest true "Dados da fatura"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices [post]
func (c *InvoiceController) Create(ctx *gin.Context) {
	var req dto.InvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	tenantID := ctx.GetString("tenant_id")
	userID := ctx.GetString("user_id")

	inputs := req.ItemInputs()
	if err := invoicedomain.ValidateInput(req.CustomerID, inputs, req.TaxRate, req.DiscountRate); err != nil {
		var verr *invoicedomain.ValidationError
		if errors.As(err, &verr) {
			ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(http.StatusBadRequest, verr.Messages))
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	exists, err := c.customerRepo.Exists(ctx, tenantID, req.CustomerID)
	if err != nil {
		c.logger.Error("falha ao verificar cliente da fatura", "tenant_id", tenantID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar fatura", ""))
		return
	}
	if !exists {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
		return
	}

	inv := invoicedomain.NewInvoice(tenantID, userID, req.CustomerID)
	inv.Title = req.Title
	inv.Description = req.Description
	inv.DueDate = req.DueDate
	inv.TaxRate = req.TaxRate
	inv.DiscountRate = req.DiscountRate
	inv.Notes = req.Notes
	inv.Terms = req.Terms
	inv.SetItems(invoicedomain.BuildItems(inputs))

	// Colisão no número gerado é rara mas possível; regenerar e tentar
	// de novo um número limitado de vezes
	for attempt := 1; ; attempt++ {
		err = c.invoiceRepo.Create(ctx, inv)
		if err == nil {
			break
		}
		if !errors.Is(err, invoicedomain.ErrDuplicateNumber) || attempt >= createMaxAttempts {
			c.logger.Error("falha ao criar fatura", "tenant_id", tenantID, "attempt", attempt, "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar fatura", ""))
			return
		}
		inv.RegenerateNumber()
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(inv))
}

// List lista as faturas da organização
// @Summary Listar faturas
// @Description Lista as faturas com filtro opcional de status e paginação
// @Tags invoices
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param status query string false "Filtro de status (draft, sent, paid)"
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.InvoiceListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices [get]
func (c *InvoiceController) List(ctx *gin.Context) {
	tenantID := ctx.GetString("tenant_id")

	status := invoicedomain.Status(ctx.Query("status"))
	if status != "" && !status.Valid() {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "status inválido", string(status)))
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	invoices, err := c.invoiceRepo.List(ctx, tenantID, status, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("falha ao listar faturas", "tenant_id", tenantID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar faturas", ""))
		return
	}

	total, err := c.invoiceRepo.CountByTenant(ctx, tenantID, status)
	if err != nil {
		c.logger.Error("falha ao contar faturas", "tenant_id", tenantID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar faturas", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(invoices, total, pagination))
}

// Get busca uma fatura pelo ID
// @Summary Buscar fatura
// @Description Busca uma fatura com itens e dados do cliente
// @Tags invoices
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da fatura"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /invoices/{id} [get]
func (c *InvoiceController) Get(ctx *gin.Context) {
	tenantID := ctx.GetString("tenant_id")
	id := ctx.Param("id")

	inv, err := c.invoiceRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, invoicedomain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fatura não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar fatura", "tenant_id", tenantID, "invoice_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar fatura", ""))
		return
	}

	resp := dto.ToInvoiceResponse(inv)

	cust, err := c.customerRepo.FindByID(ctx, tenantID, inv.CustomerID)
	if err == nil {
		custResp := dto.ToCustomerResponse(cust)
		resp.Customer = &custResp
	}

	ctx.JSON(http.StatusOK, resp)
}

// Update atualiza uma fatura
// @Summary Atualizar fatura
// @Description Atualiza os campos presentes; Items, quando presente, substitui todos os itens e recalcula os totais
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da fatura"
// @Param invoice body dto.InvoiceUpdateRequest true "Campos da fatura"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /invoices/{id} [put]
func (c *InvoiceController) Update(ctx *gin.Context) {
	var req dto.InvoiceUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	tenantID := ctx.GetString("tenant_id")
	id := ctx.Param("id")

	inv, err := c.invoiceRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, invoicedomain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fatura não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar fatura", "tenant_id", tenantID, "invoice_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar fatura", ""))
		return
	}

	taxRate := inv.TaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	discountRate := inv.DiscountRate
	if req.DiscountRate != nil {
		discountRate = *req.DiscountRate
	}

	replaceItems := req.Items != nil
	var verr error
	if replaceItems {
		verr = invoicedomain.ValidateInput(inv.CustomerID, req.ItemInputs(), taxRate, discountRate)
	} else {
		verr = invoicedomain.ValidateRates(taxRate, discountRate)
	}
	if verr != nil {
		var v *invoicedomain.ValidationError
		if errors.As(verr, &v) {
			ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(http.StatusBadRequest, v.Messages))
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", verr.Error()))
		return
	}

	inv.Apply(req.ToPatch())
	if replaceItems {
		inv.SetItems(invoicedomain.BuildItems(req.ItemInputs()))
	}

	if err := c.invoiceRepo.Update(ctx, inv, replaceItems); err != nil {
		if errors.Is(err, invoicedomain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fatura não encontrada", ""))
			return
		}
		c.logger.Error("falha ao atualizar fatura", "tenant_id", tenantID, "invoice_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar fatura", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// Delete exclui uma fatura
// @Summary Excluir fatura
// @Description Exclui a fatura e seus itens
// @Tags invoices
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da fatura"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /invoices/{id} [delete]
func (c *InvoiceController) Delete(ctx *gin.Context) {
	tenantID := ctx.GetString("tenant_id")
	id := ctx.Param("id")

	if err := c.invoiceRepo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, invoicedomain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fatura não encontrada", ""))
			return
		}
		c.logger.Error("falha ao excluir fatura", "tenant_id", tenantID, "invoice_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir fatura", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("fatura excluída com sucesso", nil))
}

// Send envia a fatura por email
// @Summary Enviar fatura
// @Description Envia a fatura por email com o PDF em anexo e marca como enviada após o sucesso
// @Tags invoices
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da fatura"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /invoices/{id}/send [post]
func (c *InvoiceController) Send(ctx *gin.Context) {
	tenantID := ctx.GetString("tenant_id")
	id := ctx.Param("id")

	inv, err := c.invoiceService.SendInvoice(ctx, tenantID, id)
	if err != nil {
		switch {
		case errors.Is(err, invoicedomain.ErrNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fatura não encontrada", ""))
		case errors.Is(err, service.ErrEmailNotConfigured):
			ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable, "servidor de email não configurado", ""))
		case errors.Is(err, service.ErrMissingRecipient):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "cliente não possui email cadastrado", ""))
		case errors.Is(err, service.ErrDeliveryTimeout):
			ctx.JSON(http.StatusBadGateway, dto.NewErrorResponse(http.StatusBadGateway, "tempo esgotado ao enviar o email", ""))
		default:
			c.logger.Error("falha ao enviar fatura", "tenant_id", tenantID, "invoice_id", id, "error", err)
			ctx.JSON(http.StatusBadGateway, dto.NewErrorResponse(http.StatusBadGateway, "erro ao enviar fatura", ""))
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// MarkPaid marca a fatura como paga
// @Summary Marcar fatura como paga
// @Description Registra o pagamento integral da fatura
// @Tags invoices
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da fatura"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /invoices/{id}/mark-paid [post]
func (c *InvoiceController) MarkPaid(ctx *gin.Context) {
	tenantID := ctx.GetString("tenant_id")
	id := ctx.Param("id")

	inv, err := c.invoiceRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, invoicedomain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fatura não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar fatura", "tenant_id", tenantID, "invoice_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar fatura", ""))
		return
	}

	if err := inv.MarkPaid(); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, err.Error(), ""))
		return
	}
	if err := c.invoiceRepo.UpdateStatus(ctx, inv); err != nil {
		c.logger.Error("falha ao registrar pagamento", "tenant_id", tenantID, "invoice_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar pagamento", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// DownloadPDF baixa o PDF da fatura
// @Summary Baixar PDF da fatura
// @Description Gera e retorna o documento PDF da fatura
// @Tags invoices
// @Produce application/pdf
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da fatura"
// @Success 200 {file} binary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /invoices/{id}/pdf [get]
func (c *InvoiceController) DownloadPDF(ctx *gin.Context) {
	tenantID := ctx.GetString("tenant_id")
	id := ctx.Param("id")

	pdf, filename, err := c.invoiceService.GeneratePDF(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, invoicedomain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fatura não encontrada", ""))
			return
		}
		c.logger.Error("falha ao gerar PDF", "tenant_id", tenantID, "invoice_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar PDF", ""))
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}
