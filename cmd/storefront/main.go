package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/api"
	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/app"
	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/checkout"
	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/logger"
	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/pending"
	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/reconcile"
	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// logNavigator is the redirect handoff for a headless shell: it reports the
// processor URL for the operator to open. The browser host replaces this
// with a real location change.
type logNavigator struct {
	logger *zap.Logger
}

func (n *logNavigator) Navigate(url string) error {
	n.logger.Info("open payment processor to finish checkout", zap.String("url", url))
	return nil
}

func main() {
	apiURL := getEnv("API_URL", "http://localhost:8081")
	stateFile := getEnv("STATE_FILE", "storefront-state.json")
	redisAddr := getEnv("REDIS_ADDR", "")

	zl, err := logger.New("storefront")
	if err != nil {
		panic(err)
	}
	defer zl.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var storage pending.Storage = pending.NewFileStorage(stateFile)
	if redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			zl.Fatal("redis connection failed", zap.Error(err))
		}
		storage = pending.NewRedisStorage(redisClient)
	}

	client := api.New(apiURL, zl)
	cartStore := store.New()
	tracker := pending.NewTracker(storage)
	initiator := checkout.NewInitiator(client, tracker, &logNavigator{logger: zl}, zl)
	reconciler := reconcile.New(tracker, client, client, cartStore, zl)
	storefront := app.New(client, cartStore, initiator, reconciler, zl)

	result := storefront.OnApplicationStart(ctx)
	if result.CatalogErr != nil {
		zl.Fatal("catalog unavailable", zap.Error(result.CatalogErr))
	}
	zl.Info("storefront started",
		zap.Int("products", len(result.Products)),
		zap.Int("badge", storefront.BadgeCount()),
		zap.String("reconciliation", result.Reconciliation.String()),
	)

	// Optional demo interaction driven by env, mirroring the catalog view's
	// add-to-cart and checkout buttons.
	if rawID := getEnv("DEMO_PRODUCT_ID", ""); rawID != "" {
		productID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			zl.Fatal("invalid DEMO_PRODUCT_ID", zap.Error(err))
		}

		cart, err := storefront.AddToCart(ctx, productID, 1)
		if err != nil {
			zl.Fatal("add to cart failed", zap.Error(err))
		}
		zl.Info("product added",
			zap.Int64("product_id", productID),
			zap.Int("badge", storefront.BadgeCount()),
			zap.Float64("cart_total", cart.Total),
			zap.Float64("order_total", checkout.DisplayTotal(cart.Total)),
		)

		if getEnv("DEMO_CHECKOUT", "") == "1" {
			if err := storefront.Checkout(ctx); err != nil {
				zl.Fatal("checkout failed", zap.Error(err))
			}
		}
	}
}
