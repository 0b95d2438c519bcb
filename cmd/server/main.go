package main

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/imperialtrucks/truck-market/internal/auth"
	"github.com/imperialtrucks/truck-market/internal/config"
	"github.com/imperialtrucks/truck-market/internal/events"
	"github.com/imperialtrucks/truck-market/internal/handlers"
	"github.com/imperialtrucks/truck-market/internal/images"
	"github.com/imperialtrucks/truck-market/internal/middleware"
	"github.com/imperialtrucks/truck-market/internal/store"
	"github.com/imperialtrucks/truck-market/internal/truck"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	imgs := images.NewManager(cfg.DataDir)

	st, err := store.NewFromConfig(context.Background(), cfg, imgs)
	if err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.StoreBackend, err)
	}

	var publisher truck.EventPublisher
	if cfg.MQTTBrokerURL != "" {
		mqttPub, err := events.NewMQTT(cfg.MQTTBrokerURL, cfg.MQTTTopicPrefix, "truck-market-server")
		if err != nil {
			log.WithError(err).Warn("MQTT broker unreachable, listing events disabled")
		} else {
			defer mqttPub.Close()
			publisher = mqttPub
		}
	}

	service := truck.NewService(st, imgs, publisher)

	authService := auth.NewService(auth.Options{
		JWTSecret:         cfg.JWTSecret,
		TokenExpiry:       cfg.JWTExpiry,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})
	authMW := middleware.NewAuthMiddleware(authService)

	router := handlers.NewRouter(
		handlers.NewTruckHandler(service, imgs),
		handlers.NewAuthHandler(authService),
		authMW,
		imgs,
	)

	rate := middleware.NewRateLimitMiddleware()
	handler := rate.RateLimit(300, 60)(router)

	log.WithFields(log.Fields{
		"port":    cfg.Port,
		"backend": cfg.StoreBackend,
		"dataDir": cfg.DataDir,
	}).Info("Truck market API listening")
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
