package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"dairy-pos/internal/accounts"
	"dairy-pos/internal/ai"
	"dairy-pos/internal/auth"
	"dairy-pos/internal/catalog"
	"dairy-pos/internal/customers"
	"dairy-pos/internal/middleware"
	"dairy-pos/internal/sales"
	"dairy-pos/internal/uploads"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer talks to.
type Deps struct {
	DB        *gorm.DB
	Sales     *sales.Engine
	Catalog   *catalog.Store
	Customers *customers.Directory
	Accounts  *accounts.Service
	Tokens    *auth.Tokens
	Uploads   *uploads.Store
	Agent     *ai.Agent
	Logger    *slog.Logger

	CORSOrigins []string
	UploadDir   string
}

type Handler struct {
	d Deps
}

// NewRouter wires every route of the API.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	registerValidators()
	h := &Handler{d: d}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger))
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Dairy Management Backend API. Server is running."})
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "online"}) })
	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	// --- PUBLIC ---
	users := r.Group("/api/users")
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.Tokens))
	{
		api.GET("/shops/:id", h.GetShop)
		api.GET("/shops/:id/products", h.GetShopProducts)
		api.GET("/shops/:id/customers", h.GetShopCustomers)

		api.POST("/products/add", h.AddProduct)
		api.POST("/products/update/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)
		api.POST("/products/upload", h.UploadImage)

		api.POST("/customers/add", h.AddCustomer)
		api.POST("/customers/update/:id", h.UpdateCustomer)
		api.DELETE("/customers/:id", h.DeleteCustomer)

		api.POST("/sales/add", h.RecordSale)
		api.GET("/sales/shop/:shop_id", h.GetShopSales)
		api.GET("/sales/debt/:customer_id", h.GetCustomerDebt)
		api.POST("/sales/pay/:sale_id", h.SettlePayment)
		api.GET("/sales/:sale_id", h.GetSale)

		api.GET("/reports/:shop_id", h.GetSalesReport)
		api.GET("/reports/:shop_id/debtors", h.GetDebtors)

		api.POST("/ask", h.AskAI)
	}

	return r
}

// shopIDOr returns id, or the caller's own shop when id is empty.
func shopIDOr(c *gin.Context, id string) string {
	if id != "" {
		return id
	}
	return c.GetString(middleware.ShopIDKey)
}
