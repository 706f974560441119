package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultDeliveryFee     int64 = 15000
	DefaultOrderEventTopic       = "order-events"
)

type Config struct {
	Port            string
	DeliveryFee     int64
	Location        *time.Location
	PublicBaseURL   string
	SeedFile        string
	KafkaTopic      string
	KafkaGroupID    string
	ReviewMarkerTTL time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	loc, err := time.LoadLocation(GetEnv("TIMEZONE", "Asia/Ho_Chi_Minh"))
	if err != nil {
		log.Printf("Unknown TIMEZONE, falling back to UTC: %v", err)
		loc = time.UTC
	}

	return &Config{
		Port:            GetEnv("PORT", "8081"),
		DeliveryFee:     GetEnvInt64("DELIVERY_FEE", DefaultDeliveryFee),
		Location:        loc,
		PublicBaseURL:   GetEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		SeedFile:        os.Getenv("SEED_FILE"),
		KafkaTopic:      GetEnv("KAFKA_TOPIC", DefaultOrderEventTopic),
		KafkaGroupID:    GetEnv("KAFKA_GROUP_ID", "projector-svc"),
		ReviewMarkerTTL: GetEnvDuration("REVIEW_MARKER_TTL", 30*24*time.Hour),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// PostgresConfigured reports whether the DB_* variables point at a database.
func PostgresConfigured() bool {
	return os.Getenv("DB_HOST") != "" && os.Getenv("DB_NAME") != ""
}

func RedisConfigured() bool {
	return os.Getenv("REDIS_HOST") != ""
}

func KafkaConfigured() bool {
	return os.Getenv("KAFKA_BROKER") != ""
}

func MustInitPostgres() *sql.DB {
	dbHost := os.Getenv("DB_HOST")
	dbPort := GetEnv("DB_PORT", "5432")
	dbName := os.Getenv("DB_NAME")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	sslMode := GetEnv("DB_SSLMODE", "disable")

	connStr := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser +
		" password=" + dbPassword + " dbname=" + dbName + " sslmode=" + sslMode

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_HOST") + ":" + GetEnv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{os.Getenv("KAFKA_BROKER")},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}
