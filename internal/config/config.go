package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config is read once at startup from the environment, with .env as a
// development convenience.
type Config struct {
	MongoURI      string
	DatabaseName  string
	Port          string
	JWTSecret     string
	PaymentReview bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env: %s", err)
	}

	uri := os.Getenv("MONGOURI")
	if uri == "" {
		return nil, fmt.Errorf("MONGOURI environment variable not set")
	}

	name := os.Getenv("DATABASE")
	if name == "" {
		name = "paymybilldb"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	review, _ := strconv.ParseBool(os.Getenv("PAYMENT_REVIEW"))

	return &Config{
		MongoURI:      uri,
		DatabaseName:  name,
		Port:          port,
		JWTSecret:     secret,
		PaymentReview: review,
	}, nil
}
