package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/otienog1/invoice/internal/adapter/api/dto"
	"github.com/otienog1/invoice/internal/adapter/repository"
	customerdomain "github.com/otienog1/invoice/internal/domain/customer"
	"github.com/otienog1/invoice/pkg/logger"
)

// CustomerController gerencia as requisições relacionadas a clientes
type CustomerController struct {
	customerRepo customerdomain.Repository
	logger       logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(customerRepo customerdomain.Repository, logger logger.Logger) *CustomerController {
	return &CustomerController{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cria um novo cliente na organização
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	tenantID := ctx.GetString("tenant_id")
	userID := ctx.GetString("user_id")

	customer, err := customerdomain.NewCustomer(tenantID, userID, req.Name)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar cliente", err.Error()))
		return
	}

	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.TaxPIN = req.TaxPIN
	customer.Company = req.Company

	if err := c.customerRepo.Create(ctx, customer); err != nil {
		c.logger.Error("falha ao criar cliente", "tenant_id", tenantID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar cliente", ""))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// List lista os clientes da organização
// @Summary Listar clientes
// @Description Lista os clientes com busca opcional por nome, email ou empresa e paginação
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param search query string false "Busca por nome, email ou empresa"
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.CustomerListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	tenantID := ctx.GetString("tenant_id")
	search := ctx.Query("search")

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	customers, err := c.customerRepo.List(ctx, tenantID, search, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("falha ao listar clientes", "tenant_id", tenantID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar clientes", ""))
		return
	}

	total, err := c.customerRepo.CountByTenant(ctx, tenantID, search)
	if err != nil {
		c.logger.Error("falha ao contar clientes", "tenant_id", tenantID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar clientes", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerListResponse(customers, total, pagination))
}

// Get busca um cliente pelo ID
// @Summary Buscar cliente
// @Description Busca um cliente pelo ID dentro da organização
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	tenantID := ctx.GetString("tenant_id")
	id := ctx.Param("id")

	customer, err := c.customerRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		c.logger.Error("falha ao buscar cliente", "tenant_id", tenantID, "customer_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// Update atualiza um cliente
// @Summary Atualizar cliente
// @Description Atualiza os campos presentes do cliente; campos ausentes não são alterados
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param customer body dto.CustomerUpdateRequest true "Campos do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	var req dto.CustomerUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	tenantID := ctx.GetString("tenant_id")
	id := ctx.Param("id")

	customer, err := c.customerRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		c.logger.Error("falha ao buscar cliente", "tenant_id", tenantID, "customer_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", ""))
		return
	}

	if err := customer.Apply(req.ToPatch()); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar cliente", err.Error()))
		return
	}

	if err := c.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		c.logger.Error("falha ao atualizar cliente", "tenant_id", tenantID, "customer_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar cliente", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// Delete exclui um cliente
// @Summary Excluir cliente
// @Description Exclui um cliente sem faturas associadas; clientes com faturas não podem ser excluídos
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /customers/{id} [delete]
func (c *CustomerController) Delete(ctx *gin.Context) {
	tenantID := ctx.GetString("tenant_id")
	id := ctx.Param("id")

	if err := c.customerRepo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		if errors.Is(err, repository.ErrCustomerHasInvoices) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "cliente possui faturas associadas", err.Error()))
			return
		}
		c.logger.Error("falha ao excluir cliente", "tenant_id", tenantID, "customer_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir cliente", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("cliente excluído com sucesso", nil))
}
