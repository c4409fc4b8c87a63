package config

import (
	"log"

	"github.com/joho/godotenv"
)

// Load charge le fichier .env s'il existe ; sinon on s'appuie sur les
// variables d'environnement du système (conteneurs, CI).
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé")
	}
}
