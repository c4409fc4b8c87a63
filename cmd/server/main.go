package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"artesania_back_end/internal/config"
	"artesania_back_end/internal/database"
	"artesania_back_end/internal/routes"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.CloseScylla()

	// ✅ Prepared statements pour les requêtes chaudes
	database.InitPreparedStatements()

	// ✅ Pré-chauffer la connexion Redis
	warmupRedisCache()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Artesanía lancé sur le port", port)
	r.Run(":" + port)
}

// warmupRedisCache établit la connexion Redis avant le premier appel
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}
