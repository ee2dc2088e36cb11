package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/example/restaurant-orders/internal/config"
	"github.com/example/restaurant-orders/internal/email"
	"github.com/example/restaurant-orders/internal/infrastructure/kafka"
	"github.com/example/restaurant-orders/internal/infrastructure/store"
	"github.com/example/restaurant-orders/internal/menu"
	"github.com/example/restaurant-orders/internal/notification"
	"github.com/example/restaurant-orders/internal/user"
)

const consumerGroup = "email-notifier"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	log.Println("[Notifier] ========================================")
	log.Println("[Notifier] Old Skool Restaurant - Email Notifier")
	log.Println("[Notifier] ========================================")
	log.Printf("[Notifier] Kafka: %v (topic %s, group %s)", cfg.KafkaBrokers, cfg.KafkaTopic, consumerGroup)
	log.Printf("[Notifier] SMTP: %s:%s from %s", cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)

	docs, cleanup := openStore(ctx, cfg)
	defer cleanup()

	emailSvc := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	handler := notification.NewHandler(emailSvc, user.NewStore(docs), menu.NewStore(docs))

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, consumerGroup)
	defer consumer.Close()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("[Notifier] Shutting down...")
		cancel()
	}()

	log.Println("[Notifier] Consuming order events...")
	if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && ctx.Err() == nil {
		log.Fatalf("[Notifier] Consumer error: %v", err)
	}
}

// openStore gives the notifier read access to users and menu items. The
// memory backend is only useful for the API process, so the notifier
// insists on a shared backend.
func openStore(ctx context.Context, cfg *config.Config) (store.DocumentStore, func()) {
	switch cfg.StoreBackend {
	case "postgres":
		db, err := store.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[Notifier] Failed to connect to PostgreSQL: %v", err)
		}
		ps, err := store.NewPostgresStore(db)
		if err != nil {
			log.Fatalf("[Notifier] Failed to initialize PostgreSQL store: %v", err)
		}
		return ps, func() { db.Close() }

	case "dynamo":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("[Notifier] Failed to load AWS config: %v", err)
		}
		return store.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoTable), func() {}

	default:
		log.Fatalf("[Notifier] STORE_BACKEND must be postgres or dynamo, got %s", cfg.StoreBackend)
		return nil, nil
	}
}
