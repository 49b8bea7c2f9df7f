package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"materialOrderManagement/internal/api"
	"materialOrderManagement/internal/auth"
	"materialOrderManagement/internal/config"
	"materialOrderManagement/internal/db"
	"materialOrderManagement/internal/geocode"
	"materialOrderManagement/internal/lifecycle"
	"materialOrderManagement/internal/notify"
	"materialOrderManagement/repository"
)

func main() {
	config.LoadEnv()
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	hub := repository.NewHub()
	users := repository.NewUserRepository(d)
	orders := repository.NewOrderRepository(d, hub)
	notifications := repository.NewNotificationRepository(d)
	materials := repository.NewMaterialRepository(d)

	dispatcher := notify.NewDispatcher(notifications, users)
	orderLifecycle := lifecycle.NewService(orders, materials, dispatcher)

	var resolver *geocode.Resolver
	if cfg.Geocode.APIKey != "" {
		opts := []geocode.ClientOption{}
		if cfg.Geocode.BaseURL != "" {
			opts = append(opts, geocode.WithBaseURL(cfg.Geocode.BaseURL))
		}
		resolver = geocode.NewResolver(geocode.NewClient(cfg.Geocode.APIKey, opts...))
	} else {
		log.Printf("GEOCODE_API_KEY not set; address resolution endpoints disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(auth.Middleware(cfg.Auth.JWTSecret, "/health"))

	srv := &api.Server{
		Users:         users,
		Notifications: notifications,
		Materials:     materials,
		Orders:        orders,
		Lifecycle:     orderLifecycle,
		Resolver:      resolver,
		Watcher:       repository.NewOrderWatcher(orders, hub),
	}
	srv.Register(e)

	go func() {
		if err := e.Start(cfg.HTTP.Address); err != nil {
			log.Printf("http server: %v", err)
		}
	}()
	log.Printf("HTTP server listening on %s", cfg.HTTP.Address)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
