package main

import (
	"context"
	"log"
	"mapify-server/config"
	"mapify-server/handlers"
	"mapify-server/network"
	"mapify-server/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	request := network.LocationsRequest(cfg.LocationsURL)
	feed, err := newNetwork(cfg, request)
	if err != nil {
		log.Fatalf("Failed to set up %s feed source: %v", cfg.FeedSource, err)
	}

	mapService := services.NewMapService(feed, request)
	coordinator := services.NewMapCoordinator(mapService)

	// Redis is optional; without it state changes are not published
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := services.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		mapService.Subscribe(services.NewRedisNotifier(client, cfg.RedisChannel).Listener())
		log.Printf("Publishing state changes to Redis channel %s", cfg.RedisChannel)
	}

	go func() {
		if err := <-mapService.Initialize(context.Background()); err != nil {
			log.Printf("Initial location fetch failed, map starts empty: %v", err)
		}
	}()

	var refresher *services.Refresher
	if cfg.RefreshSchedule != "" {
		refresher, err = services.NewRefresher(mapService, cfg.RefreshSchedule, cfg.HTTPTimeout)
		if err != nil {
			log.Fatal(err)
		}
		refresher.Start()
	}

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	mapHandler := handlers.NewMapHandler(mapService, coordinator)
	authHandler := handlers.NewAuthHandler(tokenService)
	r := handlers.NewRouter(mapHandler, authHandler, cfg.JWTSecret, cfg.AllowedOrigins)

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	if refresher != nil {
		refresher.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}

func newNetwork(cfg config.Config, request network.Request) (network.Network, error) {
	switch cfg.FeedSource {
	case config.SourceStub:
		return network.NewFileStub(request, cfg.FixturePath)
	case config.SourceMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		source, err := network.ConnectMongoSource(ctx, cfg.MongoURI, cfg.MongoDatabase, request)
		if err != nil {
			return nil, err
		}
		if _, err := source.SeedFromFile(ctx, cfg.FixturePath); err != nil {
			return nil, err
		}
		return source, nil
	}
	return network.NewHTTPClient(cfg.HTTPTimeout), nil
}
