package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ferreirogomes/colorverse/auth"
	"github.com/ferreirogomes/colorverse/config"
	"github.com/ferreirogomes/colorverse/handlers"
	"github.com/ferreirogomes/colorverse/reconciler"
	"github.com/ferreirogomes/colorverse/services"
	"github.com/ferreirogomes/colorverse/storage"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// .env é opcional; em produção as variáveis vêm do ambiente.
	if err := godotenv.Load(); err != nil {
		log.Info("Nenhum arquivo .env encontrado; usando apenas o ambiente.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuração inválida: %v", err)
	}

	db, err := storage.NewDB(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalf("Falha fatal ao conectar ao banco de dados e aplicar migrações: %v", err)
	}
	defer db.Close()

	paypalService := services.NewPayPalService(
		cfg.PayPalAPIBase, cfg.PayPalClientID, cfg.PayPalSecret,
		cfg.PayPalPartnerID, cfg.AppBaseURL+"/dashboard", log)

	listingService := services.NewListingService(db, cfg.MinListingPrice, log)
	transferService := services.NewTransferService(db, paypalService, log)
	userService := services.NewUserService(db, paypalService, log)
	authService := auth.NewService(db, []byte(cfg.JWTSecret), cfg.TokenValidity)

	authHandler := handlers.NewAuthHandler(userService, authService)
	marketHandler := handlers.NewMarketHandler(listingService, transferService)
	userHandler := handlers.NewUserHandler(userService)
	paypalHandler := handlers.NewPayPalHandler(userService)

	// Reconciliador de pagamentos capturados sem efeito no ledger, em
	// goroutine própria.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go reconciler.New(db, cfg.ReconcilerInterval, log).Start(ctx)

	requireAuth := auth.Authenticator([]byte(cfg.JWTSecret))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Get("/marketplace", marketHandler.Marketplace)

		r.Route("/market", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/sell", marketHandler.Sell)
			r.Post("/cancel", marketHandler.Cancel)
			r.Post("/capture-order", marketHandler.CaptureOrder)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/colors", userHandler.MyColors)
			r.Patch("/colors/{id}", userHandler.RenameColor)
			r.Get("/status", userHandler.Status)
		})

		r.Route("/paypal", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/connect-url", paypalHandler.ConnectURL)
			r.Post("/sync", paypalHandler.Sync)
		})
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Falha no shutdown do servidor: %v", err)
		}
	}()

	log.WithField("port", cfg.Port).Info("Servidor backend rodando...")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Servidor encerrou com erro: %v", err)
	}
}
