package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"

	"github.com/example/restaurant-orders/internal/api"
	"github.com/example/restaurant-orders/internal/auth"
	"github.com/example/restaurant-orders/internal/config"
	"github.com/example/restaurant-orders/internal/hub"
	"github.com/example/restaurant-orders/internal/infrastructure/kafka"
	"github.com/example/restaurant-orders/internal/infrastructure/store"
	"github.com/example/restaurant-orders/internal/menu"
	"github.com/example/restaurant-orders/internal/order"
	"github.com/example/restaurant-orders/internal/reservation"
	"github.com/example/restaurant-orders/internal/user"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("[API] JWT_SECRET environment variable is required")
	}

	log.Println("[API] ========================================")
	log.Println("[API] Old Skool Restaurant API")
	log.Println("[API] ========================================")
	log.Printf("[API] Store: %s", cfg.StoreBackend)
	log.Printf("[API] Kafka: %v (topic %s)", cfg.KafkaBrokers, cfg.KafkaTopic)

	docs, cleanup := openStore(ctx, cfg)
	defer cleanup()

	// Kafka mirror for the email notifier. The writer connects lazily;
	// publish failures are logged by the service and never block a
	// request.
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	// Redis read-through cache in front of the menu collection.
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("[API] Invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	menuStore := menu.NewStore(docs)
	menuCatalog := menu.NewCache(menuStore, redisClient, time.Duration(cfg.CacheTTL)*time.Second)
	userStore := user.NewStore(docs)
	orderStore := order.NewStore(docs)
	reservationStore := reservation.NewStore(docs)

	notificationHub := hub.New()

	orderService := order.NewService(orderStore, menuCatalog, userStore, notificationHub, producer)

	jwtService := auth.NewJWTService(cfg.JWTSecret, 7*24*time.Hour)

	router := api.NewRouter(api.RouterConfig{
		Orders:       api.NewOrderHandlers(orderService),
		Auth:         api.NewAuthHandlers(userStore, jwtService),
		Menu:         api.NewMenuHandlers(menuCatalog),
		Reservations: api.NewReservationHandlers(reservationStore),
		Hub:          notificationHub,
		JWTService:   jwtService,
	})

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("[API] Server running on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
}

// openStore picks the document store backend from configuration.
func openStore(ctx context.Context, cfg *config.Config) (store.DocumentStore, func()) {
	switch cfg.StoreBackend {
	case "postgres":
		db, err := store.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
		}
		ps, err := store.NewPostgresStore(db)
		if err != nil {
			log.Fatalf("[API] Failed to initialize PostgreSQL store: %v", err)
		}
		log.Println("[API] Connected to PostgreSQL")
		return ps, func() { db.Close() }

	case "dynamo":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("[API] Failed to load AWS config: %v", err)
		}
		client := dynamodb.NewFromConfig(awsCfg)
		log.Printf("[API] Using DynamoDB table %s", cfg.DynamoTable)
		return store.NewDynamoStore(client, cfg.DynamoTable), func() {}

	case "memory":
		log.Println("[API] Using in-memory store (data is not persisted)")
		return store.NewMemoryStore(), func() {}

	default:
		log.Fatalf("[API] Unknown STORE_BACKEND: %s", cfg.StoreBackend)
		return nil, nil
	}
}
