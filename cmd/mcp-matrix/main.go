// In file: cmd/mcp-matrix/main.go

// Command mcp-matrix serves matrix inversion for the gateway's invert_matrix tool.
package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dileep-u-k/chat-gateway/internal/compute"

	"github.com/gin-gonic/gin"
)

const defaultPort = "6101"

type matrixInput struct {
	Matrix [][]float64 `json:"matrix" binding:"required"`
}

func newRouter() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.POST("/tool/matrix", invertMatrix)
	return engine
}

func invertMatrix(c *gin.Context) {
	var in matrixInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	log.Printf("[MCP-MATRIX] 📥 Request: %d row(s)", len(in.Matrix))

	inv, err := compute.Invert(in.Matrix)
	if err != nil {
		log.Printf("[MCP-MATRIX] ❌ Error: %v", err)
		detail := err.Error()
		if errors.Is(err, compute.ErrSingular) {
			detail = compute.ErrSingular.Error()
		}
		c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
		return
	}
	c.JSON(http.StatusOK, inv)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	log.Printf("🚀 mcp-matrix listening on :%s", port)
	if err := newRouter().Run(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatalf("❌ Listen error: %v", err)
	}
}
