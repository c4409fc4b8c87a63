package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/api/admin/orders/:orderNumber/status", UpdateOrderStatus)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/AA-12345678/status",
		strings.NewReader(`{"status": "teleported"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Statut inconnu")
}

func TestUpdateOrderStatusRejectsMissingBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/api/admin/orders/:orderNumber/status", UpdateOrderStatus)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/AA-12345678/status",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
