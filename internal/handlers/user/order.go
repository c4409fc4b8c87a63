package user

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"artesania_back_end/internal/cache"
	"artesania_back_end/internal/database"
	"artesania_back_end/internal/models"
	"artesania_back_end/internal/ordernum"
	"artesania_back_end/internal/pricing"
	"artesania_back_end/internal/utils"
)

// Générateur partagé ; l'unicité réelle est garantie par l'INSERT LWT.
var orderNumbers = ordernum.New(nil)

const orderNumberMaxRetries = 5

type createOrderRequest struct {
	Email         string             `json:"email" binding:"required,email"`
	Phone         string             `json:"phone" binding:"required"`
	FirstName     string             `json:"first_name" binding:"required"`
	LastName      string             `json:"last_name" binding:"required"`
	Address       string             `json:"address" binding:"required"`
	AddressLine2  string             `json:"address_line2"`
	City          string             `json:"city" binding:"required"`
	Department    string             `json:"department" binding:"required"`
	PostalCode    string             `json:"postal_code"`
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=card transfer cash"`
	Notes         string             `json:"notes"`
	Items         []models.OrderLine `json:"items" binding:"required,min=1,dive"`
}

// CreateOrder crée une commande, invité ou connecté.
//
// Les lignes sont persistées telles que soumises (prix vu par le client,
// jamais recalculé depuis le catalogue) ; seul le stock est touché côté
// produits, décrémenté avec plancher à zéro. Un produit supprimé entre
// temps n'empêche pas la commande : la ligne garde son instantané.
func CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.FieldErrors(err)})
		return
	}

	// user_id vide = checkout invité
	userID := c.GetString("user_id")

	subtotal := pricing.Subtotal(req.Items)
	shipping := pricing.ShippingCost(subtotal)
	total := subtotal.Add(shipping)

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now().UTC()
	order := models.Order{
		UserID:        userID,
		Email:         req.Email,
		Phone:         req.Phone,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Address:       req.Address,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		Department:    req.Department,
		PostalCode:    req.PostalCode,
		Subtotal:      subtotal,
		ShippingCost:  shipping,
		Total:         total,
		Status:        models.StatusPending,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := insertOrderUnique(ordersSession, &order); err != nil {
		log.Printf("❌ Erreur création commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	// Instantanés de lignes + décrément de stock écrêté
	productsSession, perr := database.GetProductsSession()
	for _, line := range req.Items {
		item := models.OrderItem{
			ID:           gocql.TimeUUID(),
			ProductID:    line.ProductID,
			ProductName:  line.Name,
			ProductPrice: line.Price,
			Quantity:     line.Quantity,
		}
		item.ComputeSubtotal()

		if err := ordersSession.Query(`
			INSERT INTO order_items (order_number, item_id, product_id, product_name, product_price, quantity)
			VALUES (?, ?, ?, ?, ?, ?)
		`, order.OrderNumber, item.ID, item.ProductID, item.ProductName,
			item.ProductPrice.StringFixed(2), item.Quantity).Exec(); err != nil {
			log.Printf("❌ Erreur insertion ligne de commande %s: %v", order.OrderNumber, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
			return
		}

		order.Items = append(order.Items, item)

		// Produit introuvable ou supprimé : l'instantané suffit, pas de stock à toucher
		if perr != nil {
			continue
		}
		if err := decrementStockClamped(productsSession, line.ProductID, line.Quantity, order.OrderNumber); err != nil {
			log.Printf("⚠️ Stock non décrémenté pour %s: %v", line.ProductID, err)
		}
	}

	// Vide le panier du client connecté : la commande est réputée en venir
	if userID != "" {
		if err := ordersSession.Query(`
			INSERT INTO orders_by_user (user_id, created_at, order_number)
			VALUES (?, ?, ?)
		`, userID, order.CreatedAt, order.OrderNumber).Exec(); err != nil {
			log.Printf("⚠️ Erreur projection orders_by_user pour %s: %v", order.OrderNumber, err)
		}

		if err := clearUserCart(userID); err != nil {
			log.Printf("⚠️ Panier non vidé pour %s: %v", order.OrderNumber, err)
		}
	}

	// Confirmation par email, best effort
	go func(o models.Order) {
		html := utils.GenerateOrderConfirmationHTML(o)
		if err := utils.SendEmail(o.Email, "Confirmation de commande "+o.OrderNumber, html); err != nil {
			log.Printf("⚠️ Email de confirmation non envoyé pour %s: %v", o.OrderNumber, err)
		}
	}(order)

	log.Printf("✅ Commande %s créée (%s, total Q%s)", order.OrderNumber, order.Email, order.Total.StringFixed(2))

	c.JSON(http.StatusCreated, gin.H{
		"order":   order,
		"message": "Commande créée avec succès",
	})
}

// insertOrderUnique réserve un numéro de commande par INSERT ... IF NOT
// EXISTS. En cas de collision (LWT non appliqué), on régénère.
func insertOrderUnique(session *gocql.Session, order *models.Order) error {
	for attempt := 0; attempt < orderNumberMaxRetries; attempt++ {
		number, err := orderNumbers.Next()
		if err != nil {
			return err
		}

		applied, err := session.Query(`
			INSERT INTO orders (order_number, user_id, email, phone, first_name, last_name,
				address, address_line2, city, department, postal_code,
				subtotal, shipping_cost, total, status, payment_method, is_paid, notes,
				created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			IF NOT EXISTS
		`, number, order.UserID, order.Email, order.Phone, order.FirstName, order.LastName,
			order.Address, order.AddressLine2, order.City, order.Department, order.PostalCode,
			order.Subtotal.StringFixed(2), order.ShippingCost.StringFixed(2), order.Total.StringFixed(2),
			order.Status, order.PaymentMethod, false, order.Notes,
			order.CreatedAt, order.UpdatedAt).MapScanCAS(map[string]interface{}{})
		if err != nil {
			return err
		}
		if applied {
			order.OrderNumber = number
			return nil
		}
		log.Printf("⚠️ Collision numéro de commande %s, nouvelle tentative", number)
	}
	return fmt.Errorf("impossible de générer un numéro de commande unique après %d tentatives", orderNumberMaxRetries)
}

// decrementStockClamped retire quantity du stock par compare-and-set LWT,
// plancher à zéro, pour éviter les pertes de mise à jour entre checkouts
// concurrents. Produit absent = pas une erreur.
func decrementStockClamped(session *gocql.Session, productID string, quantity int, orderNumber string) error {
	parsed, err := uuid.Parse(productID)
	if err != nil {
		return nil // identifiant non catalogue, instantané seul
	}
	pid := gocql.UUID(parsed)

	for attempt := 0; attempt < 5; attempt++ {
		var stock int
		if err := session.Query(`SELECT stock FROM products WHERE product_id = ?`, pid).Scan(&stock); err != nil {
			if err == gocql.ErrNotFound {
				return nil
			}
			return err
		}

		newStock := pricing.ClampStock(stock, quantity)
		applied, err := session.Query(`
			UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ? IF stock = ?
		`, newStock, time.Now().UTC(), pid, stock).ScanCAS(&stock)
		if err != nil {
			return err
		}
		if !applied {
			continue // le stock a bougé entre-temps, on relit
		}
		cache.InvalidateProduct(productID)

		// Trace du mouvement, best effort
		if err := session.Query(`
			INSERT INTO stock_movements (id, product_id, type, quantity, prev_stock, new_stock, reason, user_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, gocql.TimeUUID(), pid, models.MovementOrder, quantity, stock, newStock,
			"commande "+orderNumber, "", time.Now().UTC()).Exec(); err != nil {
			log.Printf("⚠️ Mouvement de stock non enregistré pour %s: %v", productID, err)
		}
		return nil
	}
	return fmt.Errorf("décrément de stock abandonné après 5 tentatives CAS")
}

// GetMyOrders liste les commandes de l'utilisateur connecté, récentes d'abord.
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT order_number FROM orders_by_user WHERE user_id = ?`, userID).Iter()

	var numbers []string
	var number string
	for iter.Scan(&number) {
		numbers = append(numbers, number)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture orders_by_user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	orders := make([]models.Order, 0, len(numbers))
	for _, n := range numbers {
		order, err := loadOrder(session, n)
		if err != nil {
			log.Printf("⚠️ Commande %s référencée mais illisible: %v", n, err)
			continue
		}
		orders = append(orders, order)
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderByNumber retourne une commande du client connecté, 404 sinon.
func GetOrderByNumber(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	order, err := loadOrder(session, c.Param("orderNumber"))
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func loadOrder(session *gocql.Session, orderNumber string) (models.Order, error) {
	var (
		order                       models.Order
		subtotal, shipping, totalTx string
		paidAt                      time.Time
	)

	err := session.Query(`
		SELECT order_number, user_id, email, phone, first_name, last_name,
			address, address_line2, city, department, postal_code,
			subtotal, shipping_cost, total, status, payment_method, is_paid, paid_at, notes,
			created_at, updated_at
		FROM orders WHERE order_number = ?
	`, orderNumber).Scan(
		&order.OrderNumber, &order.UserID, &order.Email, &order.Phone, &order.FirstName, &order.LastName,
		&order.Address, &order.AddressLine2, &order.City, &order.Department, &order.PostalCode,
		&subtotal, &shipping, &totalTx, &order.Status, &order.PaymentMethod, &order.IsPaid, &paidAt, &order.Notes,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return models.Order{}, err
	}

	if order.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return models.Order{}, fmt.Errorf("sous-total corrompu pour %s: %w", orderNumber, err)
	}
	if order.ShippingCost, err = decimal.NewFromString(shipping); err != nil {
		return models.Order{}, fmt.Errorf("frais de port corrompus pour %s: %w", orderNumber, err)
	}
	if order.Total, err = decimal.NewFromString(totalTx); err != nil {
		return models.Order{}, fmt.Errorf("total corrompu pour %s: %w", orderNumber, err)
	}
	if !paidAt.IsZero() {
		order.PaidAt = &paidAt
	}

	items, err := loadOrderItems(session, orderNumber)
	if err != nil {
		return models.Order{}, err
	}
	order.Items = items

	return order, nil
}

func loadOrderItems(session *gocql.Session, orderNumber string) ([]models.OrderItem, error) {
	iter := session.Query(`
		SELECT item_id, product_id, product_name, product_price, quantity
		FROM order_items WHERE order_number = ?
	`, orderNumber).Iter()

	items := []models.OrderItem{}
	var (
		item     models.OrderItem
		priceStr string
	)
	for iter.Scan(&item.ID, &item.ProductID, &item.ProductName, &priceStr, &item.Quantity) {
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			iter.Close()
			return nil, fmt.Errorf("prix corrompu sur la ligne %s: %w", item.ID, err)
		}
		item.ProductPrice = price
		item.ComputeSubtotal()
		items = append(items, item)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return items, nil
}
