package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/tool/hanoi", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)
	return w
}

func TestSolveHanoi(t *testing.T) {
	w := post(t, `{"n":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Moves []string `json:"moves"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 7, out.Count)
	assert.Equal(t, []string{"A -> C", "A -> B", "C -> B", "A -> C", "B -> A", "B -> C", "A -> C"}, out.Moves)
}

func TestSolveHanoi_Errors(t *testing.T) {
	w := post(t, `{"n":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"N must be >= 1"}`, w.Body.String())

	w = post(t, `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = post(t, `{"n":"three"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
