package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bridgetunes/draw-console-backend/api/routes"
	"github.com/bridgetunes/draw-console-backend/internal/config"
	"github.com/bridgetunes/draw-console-backend/internal/eligibility"
	"github.com/bridgetunes/draw-console-backend/internal/handlers"
	"github.com/bridgetunes/draw-console-backend/internal/orchestrator"
	"github.com/bridgetunes/draw-console-backend/internal/repositories"
	mongorepo "github.com/bridgetunes/draw-console-backend/internal/repositories/mongodb"
	"github.com/bridgetunes/draw-console-backend/internal/services"
	"github.com/bridgetunes/draw-console-backend/pkg/drawengine"
	"github.com/bridgetunes/draw-console-backend/pkg/mongodb"
	"github.com/bridgetunes/draw-console-backend/pkg/winnerledger"
)

func main() {
	// A missing .env is fine; real deployments use the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var auditRepo repositories.AuditEventRepository = mongorepo.NewAuditEventRepository(db)
	var adminRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// Remote service clients
	engine := drawengine.NewClient(cfg.DrawEngine.BaseURL, cfg.DrawEngine.APIKey, cfg.DrawEngine.Timeout())
	ledger := winnerledger.NewClient(cfg.WinnerLedger.BaseURL, cfg.WinnerLedger.APIKey, cfg.WinnerLedger.Timeout())

	// Services and orchestrator
	authService := services.NewAuthService(adminRepo, cfg)
	auditService := services.NewAuditService(auditRepo)
	resolver := eligibility.NewResolver(engine)
	orch := orchestrator.New(engine, ledger, resolver, auditRepo, cfg.Orchestrator.SettleDelay())

	if err := authService.SeedAdmin(context.Background()); err != nil {
		log.Printf("Admin seeding failed: %v", err)
	}

	// Start from today's draw state
	if err := orch.SelectDate(context.Background(), time.Now()); err != nil {
		log.Printf("Initial draw state load failed: %v", err)
	}

	// Handlers
	deps := routes.HandlerDependencies{
		AuthHandler:    handlers.NewAuthHandler(authService),
		ConsoleHandler: handlers.NewConsoleHandler(orch, resolver),
		AuditHandler:   handlers.NewAuditHandler(auditService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
