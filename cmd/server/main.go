package main

import (
	"log"
	"time"

	"go-parfait-pos/internal/config"
	"go-parfait-pos/internal/confirm"
	"go-parfait-pos/internal/database"
	"go-parfait-pos/internal/handlers"
	"go-parfait-pos/internal/live"
	"go-parfait-pos/internal/middleware"
	"go-parfait-pos/internal/offline"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ ", err)
	}

	broker := live.NewBroker()
	defer broker.Close()

	api := handlers.New(
		cfg,
		db,
		offline.NewStore(cfg.OfflineCacheDir),
		offline.NewMonitor(),
		confirm.NewQueue(confirm.DefaultTTL),
		broker,
	)

	r := gin.Default()

	// The SPA runs on its own dev server, so CORS has to let it in.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", api.Login)
	r.GET("/session", api.Session)

	// --- FEATURE FLAG: Staff Registration ---
	if cfg.AllowRegistration {
		r.POST("/register", api.Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	// --- PROTECTED ROUTES ---
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// STAFF & ADMIN
		apiGroup.POST("/logout", api.Logout)
		apiGroup.GET("/catalog", api.GetCatalog)
		apiGroup.GET("/sales", api.ListSales)
		apiGroup.POST("/sales", api.CreateSale)
		apiGroup.PUT("/sales/:id", api.UpdateSale)
		apiGroup.GET("/sales/stream", api.StreamEvents)
		apiGroup.GET("/reports/dashboard", api.GetDashboard)
		apiGroup.GET("/reports/export", api.ExportSales)

		// ADMIN ONLY
		admin := apiGroup.Group("/")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/ask", api.AskAI)

			admin.POST("/catalog", api.CreateProduct)
			admin.PUT("/catalog/:id", api.RenameProduct)
			admin.DELETE("/catalog/:id", api.DeleteProduct)
			admin.POST("/catalog/:id/flavors", api.AddFlavor)
			admin.PUT("/catalog/:id/flavors/:index", api.UpdateFlavor)
			admin.DELETE("/catalog/:id/flavors/:index", api.RemoveFlavor)

			admin.DELETE("/sales/:id", api.RequestDeleteSale)
			admin.POST("/sales/:id/confirm", api.ConfirmDeleteSale)
		}
	}

	// --- DEPLOYMENT: Serve the built SPA ---
	r.Static("/assets", "./web/assets")
	r.NoRoute(func(c *gin.Context) {
		c.File("./web/index.html")
	})

	log.Println("🚀 Server starting on " + cfg.BaseURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
