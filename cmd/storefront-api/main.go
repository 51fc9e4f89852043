package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/jfsanchez2k/webflow-ecommerce/internal/agilpay"
	"github.com/jfsanchez2k/webflow-ecommerce/internal/api"
	"github.com/jfsanchez2k/webflow-ecommerce/internal/config"
	"github.com/jfsanchez2k/webflow-ecommerce/internal/user"
	"github.com/jfsanchez2k/webflow-ecommerce/pkg/kafka"
	"github.com/jfsanchez2k/webflow-ecommerce/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("db ping error: %v", err)
	}

	users := user.NewStore(pool)
	if err := users.EnsureSchema(ctx); err != nil {
		log.Fatalf("db schema error: %v", err)
	}

	var callbackWriter *kafkago.Writer
	kafkaClient := kafka.NewClient(cfg.KafkaBrokers)
	if kafkaClient.Enabled() {
		callbackWriter = kafkaClient.NewWriter(cfg.CallbackTopic)
		defer callbackWriter.Close()
	}

	handler := api.NewRouter(api.Deps{
		Gateway:        agilpay.NewClient(cfg.Agilpay),
		Users:          users,
		Pool:           pool,
		Metrics:        metrics.NewServerMetrics("storefront_api"),
		CallbackWriter: callbackWriter,
		StaticDir:      cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("storefront-api listening on :%s (gateway=%s)", cfg.Port, cfg.Agilpay.PaymentURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server error: %v", err)
	}
}
