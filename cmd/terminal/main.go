package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afifurrozaq/tillpos/config"
	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/sync"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// terminal is a minimal till: it submits checkouts through the sync
// coordinator so sales survive server outages, replays the queue with -sync,
// and with -watch stays up polling connectivity so the queue drains the
// moment the gateway comes back.
func main() {
	var (
		productID = flag.Int64("product", 0, "product id to sell")
		variantID = flag.Int64("variant", 0, "variant id (0 = none)")
		quantity  = flag.Int64("qty", 1, "quantity")
		price     = flag.Float64("price", 0, "unit price charged")
		syncOnly  = flag.Bool("sync", false, "drain the offline queue and exit")
		watch     = flag.Bool("watch", false, "keep running, monitor connectivity and sync automatically")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment: true,
		Encoding:      "console",
		Level:         cfg.Logger.Level,
		DisableCaller: true,
	})
	defer appLogger.Sync()

	queue, err := sync.NewQueue(sync.NewFileStore(cfg.Sync.QueuePath))
	if err != nil {
		appLogger.Fatal("Failed to open offline queue", zap.Error(err))
	}

	gateway := sync.NewHTTPGateway(cfg.Sync.GatewayURL)
	coordinator := sync.NewCoordinator(queue, gateway, appLogger)

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		monitor := sync.NewPingMonitor(gateway,
			time.Duration(cfg.Sync.PingInterval)*time.Second, coordinator, appLogger)
		appLogger.Info("Watching gateway connectivity",
			zap.String("gateway", cfg.Sync.GatewayURL),
			zap.Int("interval_seconds", cfg.Sync.PingInterval),
		)
		monitor.Start(ctx)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// One synchronous probe instead of the background monitor; a one-shot
	// run is too short-lived for polling.
	if err := gateway.Ping(ctx); err == nil {
		coordinator.OnOnline()
	} else {
		coordinator.OnOffline()
	}

	if *syncOnly {
		if !coordinator.Online() {
			fmt.Println("Gateway unreachable; queue untouched.")
			fmt.Printf("%d action(s) pending.\n", queue.Len())
			os.Exit(1)
		}
		// OnOnline already drained; report what is left.
		fmt.Printf("Sync complete, %d action(s) still pending.\n", queue.Len())
		return
	}

	if *productID == 0 {
		flag.Usage()
		os.Exit(2)
	}

	item := map[string]any{
		"id":       *productID,
		"quantity": *quantity,
		"price":    *price,
	}
	if *variantID != 0 {
		item["selected_variant_id"] = *variantID
	}
	body, err := json.Marshal(map[string]any{
		"items": []any{item},
		"total": float64(*quantity) * *price,
	})
	if err != nil {
		appLogger.Fatal("Failed to encode checkout", zap.Error(err))
	}

	queued, err := coordinator.Checkout(ctx, body)
	if err != nil {
		appLogger.Fatal("Checkout failed", zap.Error(err))
	}
	if queued {
		fmt.Printf("Offline: sale queued (%d pending).\n", queue.Len())
	} else {
		fmt.Println("Sale recorded.")
	}
}
