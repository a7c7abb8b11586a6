package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/otienog1/invoice/internal/adapter/api/dto"
	"github.com/otienog1/invoice/internal/adapter/repository"
	tenantdomain "github.com/otienog1/invoice/internal/domain/tenant"
	userdomain "github.com/otienog1/invoice/internal/domain/user"
	"github.com/otienog1/invoice/pkg/auth"
	"github.com/otienog1/invoice/pkg/logger"
)

// TenantController gerencia as requisições relacionadas a organizações
type TenantController struct {
	tenantRepo tenantdomain.Repository
	userRepo   userdomain.Repository
	jwtService *auth.JWTService
	logger     logger.Logger
}

// NewTenantController cria uma nova instância de TenantController
func NewTenantController(tenantRepo tenantdomain.Repository, userRepo userdomain.Repository, jwtService *auth.JWTService, logger logger.Logger) *TenantController {
	return &TenantController{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// tenantCreateResponse acrescenta o novo token à resposta de criação,
// já que o token anterior não carrega a organização recém-criada
type tenantCreateResponse struct {
	Tenant      dto.TenantResponse `json:"tenant"`
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
}

// Create cria uma nova organização e vincula o usuário como admin
// @Summary Criar organização
// @Description Cria a organização, vincula o usuário autenticado como admin e emite um novo token com o escopo da organização
// @Tags tenants
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param tenant body dto.TenantRequest true "Dados da organização"
// @Success 201 {object} tenantCreateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tenants [post]
func (c *TenantController) Create(ctx *gin.Context) {
	var req dto.TenantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := ctx.GetString("user_id")

	u, err := c.userRepo.FindByID(ctx, userID)
	if err != nil {
		c.logger.Error("falha ao buscar usuário", "user_id", userID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar organização", ""))
		return
	}

	if u.HasTenant() {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "usuário já pertence a uma organização", ""))
		return
	}

	exists, err := c.tenantRepo.ExistsByName(ctx, req.Name, "")
	if err != nil {
		c.logger.Error("falha ao verificar nome da organização", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar organização", ""))
		return
	}
	if exists {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "já existe uma organização com este nome", ""))
		return
	}

	t, err := tenantdomain.NewTenant(req.Name, req.Domain)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar organização", err.Error()))
		return
	}

	slug, err := tenantdomain.UniqueSlug(t.Slug, func(s string) (bool, error) {
		return c.tenantRepo.ExistsBySlug(ctx, s)
	})
	if err != nil {
		c.logger.Error("falha ao gerar slug da organização", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar organização", ""))
		return
	}
	t.Slug = slug

	if err := c.tenantRepo.Create(ctx, t, userID); err != nil {
		if errors.Is(err, repository.ErrTenantDuplicateName) || errors.Is(err, repository.ErrTenantDuplicateSlug) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "organização já cadastrada", err.Error()))
			return
		}
		c.logger.Error("falha ao criar organização", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar organização", ""))
		return
	}

	// O token anterior não carrega tenant_id; emitir um novo já
	// vinculado à organização
	u.AssignTenant(t.ID, userdomain.RoleAdmin)
	token, err := c.jwtService.GenerateToken(u)
	if err != nil {
		c.logger.Error("falha ao gerar token pós-criação", "user_id", userID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar token", ""))
		return
	}

	c.logger.Info("organização criada", "tenant_id", t.ID, "slug", t.Slug, "admin", userID)

	ctx.JSON(http.StatusCreated, tenantCreateResponse{
		Tenant:      dto.ToTenantResponse(t),
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

// GetSettings retorna a organização do usuário autenticado
// @Summary Obter organização atual
// @Description Retorna a organização vinculada ao token, incluindo as configurações
// @Tags tenants
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.TenantResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tenants/settings [get]
func (c *TenantController) GetSettings(ctx *gin.Context) {
	tenantID := ctx.GetString("tenant_id")

	t, err := c.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrTenantNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "organização não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar organização", "tenant_id", tenantID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar organização", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTenantResponse(t))
}

// UpdateSettings atualiza nome, domínio e configurações da organização
// @Summary Atualizar organização
// @Description Atualiza os campos presentes; Settings é mesclado de forma rasa sobre as configurações existentes
// @Tags tenants
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param tenant body dto.TenantUpdateRequest true "Campos da organização"
// @Success 200 {object} dto.TenantResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /tenants/settings [put]
func (c *TenantController) UpdateSettings(ctx *gin.Context) {
	var req dto.TenantUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	tenantID := ctx.GetString("tenant_id")

	t, err := c.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrTenantNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "organização não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar organização", "tenant_id", tenantID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar organização", ""))
		return
	}

	if req.Name != nil && *req.Name != t.Name {
		exists, err := c.tenantRepo.ExistsByName(ctx, *req.Name, t.ID)
		if err != nil {
			c.logger.Error("falha ao verificar nome da organização", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar organização", ""))
			return
		}
		if exists {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "já existe uma organização com este nome", ""))
			return
		}
		if err := t.Rename(*req.Name); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar organização", err.Error()))
			return
		}
	}

	if req.Domain != nil {
		t.SetDomain(*req.Domain)
	}

	if req.Settings != nil {
		t.MergeSettings(req.Settings)
	}

	if err := c.tenantRepo.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrTenantDuplicateName) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "já existe uma organização com este nome", ""))
			return
		}
		c.logger.Error("falha ao atualizar organização", "tenant_id", tenantID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar organização", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTenantResponse(t))
}
