// In file: cmd/mcp-hanoi/main.go

// Command mcp-hanoi solves Towers of Hanoi for the gateway's solve_hanoi tool.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dileep-u-k/chat-gateway/internal/compute"

	"github.com/gin-gonic/gin"
)

const defaultPort = "6102"

type hanoiInput struct {
	N *int `json:"n" binding:"required"`
}

func newRouter() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.POST("/tool/hanoi", solveHanoi)
	return engine
}

func solveHanoi(c *gin.Context) {
	var in hanoiInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	log.Printf("[MCP-HANOI] 📥 Request: N=%d", *in.N)

	moves, err := compute.Hanoi(*in.N)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"moves": moves, "count": len(moves)})
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	log.Printf("🚀 mcp-hanoi listening on :%s", port)
	if err := newRouter().Run(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatalf("❌ Listen error: %v", err)
	}
}
