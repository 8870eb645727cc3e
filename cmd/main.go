package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gitlab.ozon.dev/qwestard/storefront/internal/api"
	"gitlab.ozon.dev/qwestard/storefront/internal/audit"
	"gitlab.ozon.dev/qwestard/storefront/internal/cache"
	"gitlab.ozon.dev/qwestard/storefront/internal/cli"
	"gitlab.ozon.dev/qwestard/storefront/internal/config"
	"gitlab.ozon.dev/qwestard/storefront/internal/kafka"
	"gitlab.ozon.dev/qwestard/storefront/internal/service"
	"gitlab.ozon.dev/qwestard/storefront/internal/session"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	sess := session.New(cfg.SessionFile)
	if err := sess.Hydrate(); err != nil {
		log.Fatalf("Error hydrating session: %v", err)
	}

	client := api.New(cfg.BaseURL, cfg.HTTPTimeout, sess)

	processors := []audit.Processor{&audit.FileProcessor{Path: cfg.AuditJournal}}
	if cfg.AuditFilter != "" {
		processors = append(processors, &audit.StdoutProcessor{Filter: cfg.AuditFilter})
	}
	if cfg.KafkaEnabled() {
		producer, err := kafka.NewSaramaProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("Error connecting to Kafka: %v", err)
		}
		defer producer.Close()
		processors = append(processors, &audit.KafkaProcessor{Producer: producer, Topic: cfg.KafkaTopic})
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool := audit.NewWorkerPool(audit.PoolConfig{BatchSize: 8, Timeout: 2 * time.Second, ChannelSize: 64}, processors...)
	pool.Start(ctx, 1)

	orderCache := cache.New()
	go orderCache.StartAutoRefresh(ctx, client.Order, cfg.RefreshInterval)

	svc := service.NewOrderService(client, orderCache, pool, sess)

	app := &cli.App{Client: client, Orders: svc, Session: sess}
	cmdErr := cli.Root(app).ExecuteContext(ctx)

	// Flush the audit journal before exiting.
	pool.Shutdown(cancel)

	if cmdErr != nil {
		fmt.Fprintln(os.Stderr, "Error:", cmdErr)
		os.Exit(1)
	}
}
