package admin

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"artesania_back_end/internal/database"
	"artesania_back_end/internal/models"
)

// Surface d'administration des commandes. L'accès est filtré en amont par
// AuthRequired + RequireAdmin ; ici on ne revérifie rien.

//
// 📋 GET /api/admin/orders — toutes les commandes, récentes d'abord,
// filtre optionnel ?status=
//
func GetAllOrders(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	statusFilter := c.Query("status")
	if statusFilter != "" && !models.ValidStatus(statusFilter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + statusFilter})
		return
	}

	iter := session.Query(`
		SELECT order_number, user_id, email, first_name, last_name,
			total, status, payment_method, is_paid, created_at
		FROM orders
	`).Iter()

	type orderSummary struct {
		OrderNumber   string          `json:"order_number"`
		UserID        string          `json:"user_id,omitempty"`
		Email         string          `json:"email"`
		FirstName     string          `json:"first_name"`
		LastName      string          `json:"last_name"`
		Total         decimal.Decimal `json:"total"`
		Status        string          `json:"status"`
		PaymentMethod string          `json:"payment_method"`
		IsPaid        bool            `json:"is_paid"`
		CreatedAt     time.Time       `json:"created_at"`
	}

	orders := []orderSummary{}
	var (
		row      orderSummary
		totalStr string
	)
	for iter.Scan(&row.OrderNumber, &row.UserID, &row.Email, &row.FirstName,
		&row.LastName, &totalStr, &row.Status, &row.PaymentMethod, &row.IsPaid,
		&row.CreatedAt) {
		if statusFilter != "" && row.Status != statusFilter {
			row, totalStr = orderSummary{}, ""
			continue
		}
		if total, err := decimal.NewFromString(totalStr); err == nil {
			row.Total = total
		}
		orders = append(orders, row)
		row, totalStr = orderSummary{}, ""
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

//
// 🔄 PUT /api/admin/orders/:orderNumber/status
//
// Le statut est vérifié contre l'énumération mais aucune matrice de
// transition n'est appliquée : un admin peut repasser une commande
// livrée en pending.
//
func UpdateOrderStatus(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + input.Status})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	if !orderExists(session, orderNumber) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if err := session.Query(`
		UPDATE orders SET status = ?, updated_at = ? WHERE order_number = ?
	`, input.Status, time.Now(), orderNumber).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du statut"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_number": orderNumber, "status": input.Status})
}

//
// 💰 PUT /api/admin/orders/:orderNumber/paid — marque payée, horodatée
//
func MarkOrderPaid(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	if !orderExists(session, orderNumber) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	now := time.Now()
	if err := session.Query(`
		UPDATE orders SET is_paid = ?, paid_at = ?, updated_at = ? WHERE order_number = ?
	`, true, now, now, orderNumber).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du paiement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_number": orderNumber, "is_paid": true, "paid_at": now})
}

func orderExists(session *gocql.Session, orderNumber string) bool {
	var found string
	err := session.Query(`
		SELECT order_number FROM orders WHERE order_number = ?
	`, orderNumber).Scan(&found)
	return err == nil
}
