package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artesania_back_end/internal/database"
	"artesania_back_end/internal/models"
)

const (
	cartTestUserID    = "1dd7ac20-117e-4679-a2f6-2f157f4a2a4d"
	cartTestProductID = "7a0f2d5e-9c41-4f7b-8a36-5d1e9b7c2f10"
)

// Le routeur de test injecte l'identité directement : les invariants du
// panier ne dépendent que de Redis (miniredis) et du cache produit.
func newCartRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", cartTestUserID) })
	r.GET("/api/cart", GetCart)
	r.POST("/api/cart", AddToCart)
	r.DELETE("/api/cart/clear", ClearCart)
	r.PUT("/api/cart/:id", UpdateCartItem)
	r.DELETE("/api/cart/:id", RemoveCartItem)
	return r, mr
}

func seedCachedProduct(t *testing.T, id, name, price string, stock int) {
	t.Helper()
	pid, err := gocql.ParseUUID(id)
	require.NoError(t, err)

	product := models.Product{
		ID:        pid,
		Name:      name,
		Slug:      name,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		ImageURLs: []string{"https://img.example.com/" + name + ".jpg"},
	}
	product.Derive()

	data, err := json.Marshal(product)
	require.NoError(t, err)
	require.NoError(t, database.Redis.Set(context.Background(), "product:"+id, data, time.Minute).Err())
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCartIncrementsSameRow(t *testing.T) {
	r, mr := newCartRouter(t)
	seedCachedProduct(t, cartTestProductID, "huipil", "120.50", 10)

	w := doJSON(t, r, http.MethodPost, "/api/cart", `{"product_id": "`+cartTestProductID+`", "quantity": 3}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":3`)

	w = doJSON(t, r, http.MethodPost, "/api/cart", `{"product_id": "`+cartTestProductID+`", "quantity": 2}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":5`)

	// Une seule ligne, quantité cumulée
	key := "cart:" + cartTestUserID
	fields, err := mr.HKeys(key)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "5", mr.HGet(key, cartTestProductID))

	w = doJSON(t, r, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cart models.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalItems)
	assert.Equal(t, "602.50", cart.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", cart.Shipping.StringFixed(2))
	assert.Equal(t, "602.50", cart.Total.StringFixed(2))
}

func TestGetCartEmptyAppliesFlatShipping(t *testing.T) {
	r, _ := newCartRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cart models.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Subtotal.IsZero())
	assert.Equal(t, "35.00", cart.Shipping.StringFixed(2))
	assert.Equal(t, "35.00", cart.Total.StringFixed(2))
}

func TestAddToCartUnknownProduct(t *testing.T) {
	r, mr := newCartRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/cart", `{"product_id": "`+cartTestProductID+`", "quantity": 1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, mr.Exists("cart:"+cartTestUserID))
}

func TestUpdateCartItemExplicitZeroDeletes(t *testing.T) {
	r, mr := newCartRouter(t)
	seedCachedProduct(t, cartTestProductID, "huipil", "120.50", 10)
	mr.HSet("cart:"+cartTestUserID, cartTestProductID, "2")

	w := doJSON(t, r, http.MethodPut, "/api/cart/"+cartTestProductID, `{"quantity": 0}`)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, mr.HGet("cart:"+cartTestUserID, cartTestProductID))
}

func TestUpdateCartItemMissingQuantityRejected(t *testing.T) {
	r, mr := newCartRouter(t)
	seedCachedProduct(t, cartTestProductID, "huipil", "120.50", 10)
	mr.HSet("cart:"+cartTestUserID, cartTestProductID, "2")

	w := doJSON(t, r, http.MethodPut, "/api/cart/"+cartTestProductID, `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// La ligne n'a pas bougé
	assert.Equal(t, "2", mr.HGet("cart:"+cartTestUserID, cartTestProductID))
}

func TestUpdateCartItemReplacesQuantity(t *testing.T) {
	r, mr := newCartRouter(t)
	seedCachedProduct(t, cartTestProductID, "huipil", "120.50", 10)
	mr.HSet("cart:"+cartTestUserID, cartTestProductID, "2")

	w := doJSON(t, r, http.MethodPut, "/api/cart/"+cartTestProductID, `{"quantity": 7}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "7", mr.HGet("cart:"+cartTestUserID, cartTestProductID))
}

func TestUpdateCartItemAbsentRow(t *testing.T) {
	r, _ := newCartRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/cart/"+cartTestProductID, `{"quantity": 1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCartIdempotent(t *testing.T) {
	r, mr := newCartRouter(t)
	mr.HSet("cart:"+cartTestUserID, cartTestProductID, "4")

	w := doJSON(t, r, http.MethodDelete, "/api/cart/clear", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, mr.Exists("cart:"+cartTestUserID))

	w = doJSON(t, r, http.MethodDelete, "/api/cart/clear", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

// La création de commande d'un client connecté vide le panier entier via
// le même chemin que DELETE /cart/clear.
func TestCheckoutCartClearRemovesWholeHash(t *testing.T) {
	_, mr := newCartRouter(t)
	mr.HSet("cart:"+cartTestUserID, cartTestProductID, "3")
	mr.HSet("cart:"+cartTestUserID, "autre-produit", "1")

	require.NoError(t, clearUserCart(cartTestUserID))
	assert.False(t, mr.Exists("cart:"+cartTestUserID))
}
