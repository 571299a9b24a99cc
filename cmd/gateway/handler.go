// In file: cmd/gateway/handler.go
package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Converser produces the final reply for one user message.
type Converser interface {
	Converse(ctx context.Context, userMessage string) (string, error)
}

// RequestGuard decides whether a request is a fresh submission.
type RequestGuard interface {
	ShouldAccept(ctx context.Context, message, caller string) bool
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatHandler is the inbound edge: validate, de-duplicate, converse.
type ChatHandler struct {
	converser Converser
	guard     RequestGuard
}

func NewChatHandler(converser Converser, guard RequestGuard) *ChatHandler {
	return &ChatHandler{converser: converser, guard: guard}
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	startTime := time.Now()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message required"})
		return
	}

	if !h.guard.ShouldAccept(c.Request.Context(), req.Message, c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Duplicate request blocked. Please wait."})
		return
	}

	reply, err := h.converser.Converse(c.Request.Context(), req.Message)
	if err != nil {
		log.Printf("❌ Chat failed after %dms: %v", time.Since(startTime).Milliseconds(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process chat request"})
		return
	}

	log.Printf("✅ Chat completed in %dms", time.Since(startTime).Milliseconds())
	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

func (h *ChatHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": GetBuildInfo().Version})
}

// corsMiddleware allows any origin; the frontend is served separately.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// newRouter wires the HTTP routes onto a fresh engine.
func newRouter(h *ChatHandler) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), corsMiddleware())

	engine.GET("/healthz", h.HandleHealth)
	api := engine.Group("/api")
	{
		api.POST("/chat", h.HandleChat)
	}
	return engine
}
