package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

// CQL des chemins chauds. Chaque requête passe par le cache de prepared
// statements de gocql : préparée une fois par session, réutilisée ensuite.
const (
	cqlGetUserByEmail = `SELECT user_id FROM users_by_email WHERE email = ?`

	cqlGetUserByID = `SELECT email, password, first_name, last_name, role,
		phone, address, address_line2, city, department, postal_code, created_at, updated_at
		FROM users WHERE user_id = ?`

	cqlInsertUser = `INSERT INTO users (user_id, email, password, first_name, last_name, role,
		phone, address, address_line2, city, department, postal_code, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	cqlGetProductByID = `SELECT product_id, name, slug, price, stock, image_urls
		FROM products WHERE product_id = ?`

	cqlGetProductBySlug = `SELECT product_id FROM products_by_slug WHERE slug = ?`
)

var preparedOnce sync.Once

// InitPreparedStatements déclenche la préparation des requêtes chaudes au
// démarrage, pour que le premier appel client ne paie pas ce coût.
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		usersSession, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements users: %v", err)
			return
		}
		usersSession.Query(cqlGetUserByEmail, "").Exec()
		usersSession.Query(cqlGetUserByID, gocql.UUID{}).Iter().Close()

		productsSession, err := GetProductsSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements products: %v", err)
			return
		}
		productsSession.Query(cqlGetProductByID, gocql.UUID{}).Iter().Close()
		productsSession.Query(cqlGetProductBySlug, "").Exec()

		log.Println("✅ Prepared statements initialisés")
	})
}

// QueryUserByEmail retourne la requête de lookup email → user_id, liée.
func QueryUserByEmail(email string) (*gocql.Query, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlGetUserByEmail, email), nil
}

func QueryUserByID(userID gocql.UUID) (*gocql.Query, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlGetUserByID, userID), nil
}

func QueryInsertUser(values ...interface{}) (*gocql.Query, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlInsertUser, values...), nil
}

func QueryProductByID(productID gocql.UUID) (*gocql.Query, error) {
	session, err := GetProductsSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlGetProductByID, productID), nil
}

func QueryProductBySlug(slug string) (*gocql.Query, error) {
	session, err := GetProductsSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlGetProductBySlug, slug), nil
}
