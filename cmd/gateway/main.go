// In file: cmd/gateway/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dileep-u-k/chat-gateway/internal/dedup"
	"github.com/dileep-u-k/chat-gateway/internal/llm"
	"github.com/dileep-u-k/chat-gateway/internal/tools"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// main is the Composition Root: it loads configuration, builds every
// service, injects dependencies, and runs the server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting Chat Gateway | Version: %s | Commit: %s | %s %s",
		buildInfo.Version, buildInfo.GitCommit, buildInfo.GoVersion, buildInfo.Platform)

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	ctx := context.Background()

	toolManager := initializeToolManager(cfg)

	chatClient, err := initializeChatClient(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}
	if closer, ok := chatClient.(io.Closer); ok {
		defer closer.Close()
	}

	store, err := initializeDedupStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}
	guard := dedup.NewGuard(store, dedup.WithWindow(cfg.Tuning.Dedup.Window))

	orchestrator := llm.NewOrchestrator(chatClient, toolManager, toolManager.GetDefinitions(),
		llm.WithToolConcurrency(cfg.Tuning.ToolConcurrency))

	chatHandler := NewChatHandler(orchestrator, guard)
	log.Println("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: newRouter(chatHandler)}
	runServerWithGracefulShutdown(srv)
}

// initializeToolManager registers the full tool catalog against the configured backends.
func initializeToolManager(cfg *AppConfig) *tools.ToolManager {
	manager := tools.NewDefaultManager(tools.Config{
		GeocodingURL: cfg.GeocodingURL,
		WeatherURL:   cfg.WeatherURL,
		SearchURL:    cfg.SearchURL,
		MatrixURL:    cfg.MatrixURL,
		HanoiURL:     cfg.HanoiURL,
		Timeout:      cfg.Tuning.ToolTimeout,
	})
	log.Printf("✅ Tool Manager initialized with %d tools.", manager.ToolCount())
	return manager
}

// initializeChatClient creates the model endpoint client for the configured provider.
func initializeChatClient(ctx context.Context, cfg *AppConfig) (llm.ChatClient, error) {
	switch cfg.Provider {
	case ProviderGemini:
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Tuning.ModelTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		log.Printf("✅ Model endpoint: gemini (%s)", cfg.GeminiModel)
		return client, nil
	default:
		client, err := llm.NewOllamaClient(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.Tuning.ModelTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		log.Printf("✅ Model endpoint: ollama %s (%s)", cfg.OllamaBaseURL, cfg.OllamaModel)
		return client, nil
	}
}

// initializeDedupStore picks the guard's table: in-process, or shared through Redis.
func initializeDedupStore(ctx context.Context, cfg *AppConfig) (dedup.Store, error) {
	if cfg.DedupBackend != DedupRedis {
		return dedup.NewMemoryStore(cfg.Tuning.Dedup.MaxEntries), nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", cfg.RedisAddr, err)
	}
	log.Printf("✅ Dedup store: redis (%s)", cfg.RedisAddr)
	return dedup.NewRedisStore(rdb), nil
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Gateway is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
