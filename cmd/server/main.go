package main

import (
	"context"
	"log"

	"ticket-qr-gate/config"
	"ticket-qr-gate/internal/cache"
	"ticket-qr-gate/internal/database"
	"ticket-qr-gate/internal/handler"
	"ticket-qr-gate/internal/queue"
	"ticket-qr-gate/internal/repository"
	"ticket-qr-gate/internal/service"
	"ticket-qr-gate/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)

	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	qrRepo := repository.NewQRRepository(pool)
	orderRepo := repository.NewOrderRepository(pool, qrRepo)
	checkInRepo := repository.NewCheckInRepository(pool)

	guard := cache.NewRedisRedemptionGuard(rdb)

	scanQueue, err := queue.NewRedisStreamScanQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize scan queue: %v", err)
	}

	qrService := service.NewQRService(qrRepo, guard, scanQueue, cfg.Scanner.ValidityWindow, cfg.Scanner.PublicBaseURL)
	orderService := service.NewOrderService(orderRepo)
	checkInService := service.NewCheckInService(checkInRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scanWorker := worker.NewScanWorker(checkInService, scanQueue)
	if err := scanWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start scan worker: %v", err)
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewQRHandler(qrService).RegisterRoutes(router)
	handler.NewOrderHandler(orderService).RegisterRoutes(router)
	handler.NewCheckInHandler(checkInService).RegisterRoutes(router)

	router.Run() // デフォルトで0.0.0.0:8080で待機します
}
