package config

import (
	"log"
	"os"
	"strconv"
)

// New reads the whole configuration from the environment and fails fast on
// anything missing. There are no defaults for credentials or endpoints.
func New() Config {
	return Config{
		BasePath:   os.Getenv("BASE_PATH"),
		ServerPort: requireEnvAsInt("SERVER_PORT"),
		MongoDB: MongoDB{
			URI:          requireEnv("MONGODB_URI"),
			DatabaseName: requireEnv("MONGODB_DATABASE"),
			Collection:   requireEnv("MONGODB_COLLECTION"),
		},
		Authentication: Authentication{
			SecretKey: requireEnv("JWT_SECRET_KEY"),
		},
	}
}

type Config struct {
	BasePath       string
	ServerPort     int
	MongoDB        MongoDB
	Authentication Authentication
}

type MongoDB struct {
	URI          string
	DatabaseName string
	Collection   string
}

type Authentication struct {
	SecretKey string
}

func requireEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("Can't find environment variable: %s\n", key)
	}
	return value
}

func requireEnvAsInt(key string) int {
	valueStr := requireEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value as integer: %s", err.Error())
	}
	return value
}
