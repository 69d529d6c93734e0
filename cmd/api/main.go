package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/partnerlab/partner_api/internal/config"
	"github.com/partnerlab/partner_api/internal/database"
	"github.com/partnerlab/partner_api/internal/handler"
	"github.com/partnerlab/partner_api/internal/middleware"
	"github.com/partnerlab/partner_api/internal/repository"
	"github.com/partnerlab/partner_api/internal/service"
	"github.com/partnerlab/partner_api/internal/utils"
)

// main is the application entrypoint for the Amazon Partner API mock.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("api_version", cfg.APIVersion).Msg("starting partner api mock")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info().Str("database", cfg.DB.Name).Msg("database connected successfully")

	// 4. Initialize repository and service
	catalogRepo := repository.NewCatalogRepository(db, cfg.DB.QueryTimeout)
	catalogSvc := service.NewCatalogService(catalogRepo)

	// 5. Initialize handlers
	productHandler := handler.NewProductHandler(catalogSvc)
	healthHandler := handler.NewHealthHandler(cfg.APIVersion)

	// 6. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Msg("recovered from panic")
		utils.Error(c, 500, "Internal server error", fmt.Sprint(recovered))
	}))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, cfg.APIVersion, productHandler, healthHandler)

	// 7. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 8. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 9. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, apiVersion string, productHandler *handler.ProductHandler, healthHandler *handler.HealthHandler) {
	router.GET("/", healthHandler.GetHealth)

	api := router.Group("/api/" + apiVersion)
	{
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:asin", productHandler.GetProduct)
		api.PATCH("/products/:asin/price", productHandler.UpdatePrice)
	}

	router.NoRoute(handler.NotFound)
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
