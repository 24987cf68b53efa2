package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	. "github.com/DrGermanius/Storefront/internal"
)

func main() {
	cfg := NewConfig()
	z, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	sugaredLogger := z.Sugar()
	defer sugaredLogger.Sync()

	repository, err := NewRepository(cfg.DatabaseURI, sugaredLogger)
	if err != nil {
		sugaredLogger.Fatal(err)
	}
	defer repository.Conn.Close()

	var notifier INotifier = NewLogNotifier(sugaredLogger)
	if cfg.NotifyAMQPURI != "" {
		amqpNotifier, err := DialAMQPNotifier(cfg.NotifyAMQPURI, sugaredLogger)
		if err != nil {
			sugaredLogger.Fatal(err)
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
	}

	metrics, err := NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		sugaredLogger.Fatal(err)
	}

	service := NewService(repository, notifier, NewLedger(), metrics, sugaredLogger)
	if err = service.ReplayLedger(context.Background()); err != nil {
		sugaredLogger.Fatal(err)
	}

	handlers := NewHandlers(service, cfg.JWTSecret, sugaredLogger)

	app := fiber.New()
	app.Use(logger.New())
	handlers.Register(app)

	if cfg.MetricsAddress != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddress, mux); err != nil {
				sugaredLogger.Errorf("metrics server error: %s", err.Error())
			}
		}()
	}

	go func() {
		if err := app.Listen(cfg.RunAddress); err != nil {
			sugaredLogger.Fatal(err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	sugaredLogger.Info("shutting down")
	if err = app.Shutdown(); err != nil {
		sugaredLogger.Error(err)
	}
}
