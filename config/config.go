package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	BaseURL      string
	AccessSecret string

	// Session persistence: Redis if RedisAddr is set, else a JSON file if
	// StateFile is set, else in-memory only.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StateFile     string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string

	// GatewayFailureRate simulates declined charges (0 disables).
	GatewayFailureRate float64
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	failureRate, _ := strconv.ParseFloat(os.Getenv("GATEWAY_FAILURE_RATE"), 64)

	cfg := Config{
		ServerPort:         os.Getenv("SERVER_PORT"),
		BaseURL:            os.Getenv("BASE_URL"),
		AccessSecret:       os.Getenv("ACCESS_SECRET"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            redisDB,
		StateFile:          os.Getenv("STATE_FILE"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		KafkaTopic:         os.Getenv("KAFKA_TOPIC"),
		KafkaUsername:      os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:      os.Getenv("KAFKA_PASSWORD"),
		GatewayFailureRate: failureRate,
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = ":3000"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "*"
	}
	if cfg.AccessSecret == "" {
		log.Println("Warning: ACCESS_SECRET not set, using an insecure demo secret")
		cfg.AccessSecret = "demo-secret-change-me"
	}

	return cfg
}
