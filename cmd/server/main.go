package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/llmgateway/internal/api"
	"github.com/themobileprof/llmgateway/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	client := cfg.NewGatewayClient()
	providers := client.Providers()
	if len(providers) == 0 {
		log.Println("Warning: no provider API keys set; every chat call will fail (set OPENAI_API_KEY or ANTHROPIC_API_KEY)")
	} else {
		log.Printf("✅ Providers enabled: %v", providers)
	}

	router := api.NewRouter(client)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on http://localhost:%s", cfg.Port)
		log.Printf("📝 API endpoints:")
		log.Printf("   GET    /")
		log.Printf("   GET    /health")
		log.Printf("   POST   /chat")
		log.Printf("   POST   /simple")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// In-flight provider calls may take up to the LLM timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
