package user

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artesania_back_end/internal/database"
	"artesania_back_end/internal/models"
)

func newWishlistRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r, _ := newCartRouter(t) // même setup miniredis + identité injectée
	r.GET("/api/wishlist", GetWishlist)
	r.POST("/api/wishlist", AddToWishlist)
	r.POST("/api/wishlist/toggle", ToggleWishlist)
	r.DELETE("/api/wishlist/:id", RemoveFromWishlist)
	return r
}

func TestGetWishlistServedFromCache(t *testing.T) {
	r := newWishlistRouter(t)

	cached := models.Wishlist{
		Items: []models.WishlistItem{{
			ProductID: cartTestProductID,
			Name:      "huipil",
			Price:     decimal.RequireFromString("120.50"),
			InStock:   true,
			AddedAt:   time.Now(),
		}},
		Count: 1,
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, database.Redis.Set(context.Background(),
		"wishlist:"+cartTestUserID, data, time.Minute).Err())

	w := doJSON(t, r, http.MethodGet, "/api/wishlist", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Wishlist
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, 1, got.Count)
	assert.Equal(t, "huipil", got.Items[0].Name)
	assert.Equal(t, cartTestProductID, got.Items[0].ProductID)
}

func TestToggleWishlistRequiresProductID(t *testing.T) {
	r := newWishlistRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/wishlist/toggle", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleWishlistUnknownProduct(t *testing.T) {
	r := newWishlistRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/wishlist/toggle", `{"product_id": "pas-un-uuid"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Produit absent du catalogue (uuid valide mais inconnu)
	w = doJSON(t, r, http.MethodPost, "/api/wishlist/toggle", `{"product_id": "`+cartTestProductID+`"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveFromWishlistBadID(t *testing.T) {
	r := newWishlistRouter(t)

	w := doJSON(t, r, http.MethodDelete, "/api/wishlist/pas-un-uuid", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
