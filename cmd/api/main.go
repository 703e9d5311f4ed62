package main

import (
	"log"
	"os"
	"path/filepath"

	_ "github.com/noahjmorrison/onnaflips/api/swagger" // swagger docs
	"github.com/noahjmorrison/onnaflips/internal/database"
	"github.com/noahjmorrison/onnaflips/internal/handler"
	"github.com/noahjmorrison/onnaflips/internal/repository"
	"github.com/noahjmorrison/onnaflips/internal/service"
	"github.com/noahjmorrison/onnaflips/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Onna's Flips API
// @version         1.0
// @description     Resale inventory ledger with profitability analytics and tax report exports.
// @host            localhost:8080
// @BasePath        /
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		switch driver {
		case "postgres":
			dbHost := envOr("DB_HOST", "localhost")
			dbPort := envOr("DB_PORT", "5432")
			dbUser := envOr("DB_USER", "postgres")
			dbPassword := envOr("DB_PASSWORD", "postgres")
			dbName := envOr("DB_NAME", "onnaflips")
			dbSslMode := envOr("DB_SSLMODE", "disable")
			dsn = "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode
		default:
			dsn = filepath.Join("instance", "onna_business.db")
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				log.Fatalf("Failed to create instance directory: %v", err)
			}
		}
	}

	db, err := database.NewConnection(driver, dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Printf("Connected to %s successfully.", driver)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	itemRepo := repository.NewItemRepository(db)
	itemService := service.NewItemService(itemRepo, wsHub)
	statsService := service.NewStatsService(itemRepo)
	exportService := service.NewExportService(itemRepo)

	// Initialize Handlers
	itemHandler := handler.NewItemHandler(itemService)
	statsHandler := handler.NewStatsHandler(statsService)
	exportHandler := handler.NewExportHandler(exportService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// Register API Routes
	itemHandler.RegisterRoutes(router.Group(""))
	statsHandler.RegisterRoutes(router.Group(""))
	exportHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
