package route

import (
	"github.com/gin-gonic/gin"

	"github.com/otienog1/invoice/internal/adapter/api/controller"
	"github.com/otienog1/invoice/pkg/auth"
)

// RegisterInvoiceRoutes registra as rotas do módulo de faturas
func RegisterInvoiceRoutes(r *gin.RouterGroup, invoiceController *controller.InvoiceController, jwtService *auth.JWTService) {
	invoices := r.Group("/invoices")
	invoices.Use(auth.JWTAuthMiddleware(jwtService), auth.TenantRequired())
	{
		invoices.POST("", invoiceController.Create)
		invoices.GET("", invoiceController.List)
		invoices.GET("/:id", invoiceController.Get)
		invoices.PUT("/:id", invoiceController.Update)
		invoices.DELETE("/:id", invoiceController.Delete)
		invoices.POST("/:id/send", invoiceController.Send)
		invoices.POST("/:id/mark-paid", invoiceController.MarkPaid)
		invoices.GET("/:id/pdf", invoiceController.DownloadPDF)
	}
}
