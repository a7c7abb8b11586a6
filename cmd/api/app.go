package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/otienog1/invoice/docs"
	"github.com/otienog1/invoice/internal/adapter/api/controller"
	"github.com/otienog1/invoice/internal/adapter/api/route"
	"github.com/otienog1/invoice/internal/adapter/repository"
	"github.com/otienog1/invoice/internal/infrastructure/database"
	"github.com/otienog1/invoice/internal/service"
	"github.com/otienog1/invoice/pkg/auth"
	"github.com/otienog1/invoice/pkg/logger"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger
}

// NewApp cria uma nova instância do aplicativo com todas as
// dependências montadas
func NewApp() (*App, error) {
	log := logger.NewLogger()

	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService()
	if err != nil {
		return nil, err
	}

	// Repositórios
	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Serviços. Sem SMTP configurado a aplicação sobe normalmente e o
	// envio de faturas responde erro; download de PDF não depende disso.
	pdfService := service.NewPDFService()
	var emailSender service.EmailSender
	smtpSender, err := service.NewSMTPEmailSender()
	if err != nil {
		log.Warn("servidor SMTP não configurado; envio de faturas indisponível", "error", err)
		emailSender = nil
	} else {
		emailSender = smtpSender
	}
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, userRepo, pdfService, emailSender, log)

	// Controllers
	authController := controller.NewAuthController(userRepo, jwtService, log)
	tenantController := controller.NewTenantController(tenantRepo, userRepo, jwtService, log)
	customerController := controller.NewCustomerController(customerRepo, log)
	invoiceController := controller.NewInvoiceController(invoiceRepo, customerRepo, invoiceService, log)

	// Router
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Documentação Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Rotas da API
	api := router.Group("/api/v1")
	route.RegisterAuthRoutes(api, authController, jwtService)
	route.RegisterTenantRoutes(api, tenantController, jwtService)
	route.RegisterCustomerRoutes(api, customerController, jwtService)
	route.RegisterInvoiceRoutes(api, invoiceController, jwtService)

	return &App{
		router: router,
		db:     db,
		logger: log,
	}, nil
}

// Run inicia o servidor HTTP
func (a *App) Run() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      a.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	a.logger.Info("servidor iniciado", "port", port)
	return server.ListenAndServe()
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
