package routes

import (
	"html/template"
	"net/http"

	"github.com/01moynul/pedidos-portal/internal/handlers"
	"github.com/01moynul/pedidos-portal/internal/logging"
	"github.com/01moynul/pedidos-portal/internal/middleware"
	"github.com/01moynul/pedidos-portal/internal/web"
	"github.com/gin-gonic/gin"
)

// Options are the router settings that do not belong to the handlers.
type Options struct {
	AllowedOrigin string
	Templates     *template.Template
}

func SetupRouter(h *handlers.Handlers, sessions middleware.SessionStore, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger())

	// --- CORS for the store front that hands over the credential ---
	router.Use(middleware.CORSMiddleware(opts.AllowedOrigin))

	router.SetHTMLTemplate(opts.Templates)
	router.StaticFS("/static", http.FS(web.Static()))

	// --- Ping Route (Public) ---
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong!"})
	})

	// --- Everything else runs with the browser's session ---
	portal := router.Group("/")
	portal.Use(middleware.SessionMiddleware(sessions, h.Cookie))
	{
		portal.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/pedidos")
		})

		// --- Session Routes ---
		portal.POST("/sesion", h.StartSession)
		portal.POST("/sesion/salir", h.EndSession)

		// --- Notifications ---
		portal.GET("/notificaciones/stream", h.StreamNotifications)

		// --- Product Routes ---
		portal.GET("/productos", h.ListProducts)

		// --- Customer Order Routes ---
		pedidos := portal.Group("/pedidos")
		{
			pedidos.GET("", h.ListMyOrders)
			pedidos.GET("/:id", h.GetMyOrder)
			pedidos.GET("/:id/estado", h.GetOrderTimeline)
			pedidos.GET("/:id/cancelar", h.ConfirmCancelOrder)
			pedidos.POST("/:id/cancelar", h.CancelOrder)
			pedidos.GET("/:id/pago", h.GetPaymentForm)
			pedidos.POST("/:id/pago", h.SubmitPayment)
			pedidos.GET("/:id/pago/cerrar", h.ClosePaymentForm)
		}

		// --- Admin Routes ---
		// Authorization is the API's: an admin endpoint answers 401/403 to anyone else.
		admin := portal.Group("/admin")
		{
			admin.GET("/pedidos", h.AdminListOrders)
			admin.GET("/pedidos/contador", h.AdminPendingCount)
			admin.GET("/pedidos/:id", h.AdminGetOrder)
			admin.GET("/pedidos/:id/pago", h.AdminGetPayment)
			admin.GET("/pedidos/:id/comprobante", h.AdminGetReceipt)
			admin.GET("/pedidos/:id/estado", h.AdminStatusForm)
			admin.POST("/pedidos/:id/estado", h.AdminUpdateStatus)
			admin.GET("/pedidos/:id/eliminar", h.AdminConfirmDelete)
			admin.POST("/pedidos/:id/eliminar", h.AdminDeleteOrder)
			admin.POST("/pagos/:idPago", h.AdminUpdatePayment)
		}
	}

	return router
}
