// Servidor HTTP de gestión del club: ventas, caja, afiliados y comprobantes.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MateoRicci/gestion-cec-sub000/internal/config"
	"github.com/MateoRicci/gestion-cec-sub000/internal/events"
	"github.com/MateoRicci/gestion-cec-sub000/internal/infra"
	"github.com/MateoRicci/gestion-cec-sub000/internal/repository"
	"github.com/MateoRicci/gestion-cec-sub000/internal/router"
	"github.com/MateoRicci/gestion-cec-sub000/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title           API Gestion CEC
// @version         1.0
// @description     Back office del club: ventas, caja, afiliados, reportes.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo cargar la configuracion")
	}

	if cfg.Env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if err := os.MkdirAll(cfg.PDFStoragePath, 0o755); err != nil {
		log.Fatal().Err(err).Str("path", cfg.PDFStoragePath).Msg("no se pudo crear el directorio de PDFs")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a la base de datos")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Trabajos en segundo plano: generacion de comprobantes y envio de emails.
	dispatcher := worker.NewDispatcher(rdb)
	mailer := infra.NewMailer(cfg)
	smtpBreaker := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	comprobanteRepo := repository.NewComprobanteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	handlers := &worker.WorkerHandlers{
		Comprobante: worker.NewComprobanteWorker(comprobanteRepo, ventaRepo, dispatcher, cfg.PDFStoragePath, cfg.NombreClub),
		Email:       worker.NewEmailWorker(mailer, smtpBreaker),
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		ComprobanteRepo: comprobanteRepo,
		VentaRepo:       ventaRepo,
		RDB:             rdb,
		PDFStoragePath:  cfg.PDFStoragePath,
		NombreClub:      cfg.NombreClub,
	})

	bus := events.NewBus()
	engine := router.New(cfg, db, rdb, bus, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("el servidor no pudo iniciar")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor...")
	cancel() // stop workers and cron

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado forzado")
	}
	log.Info().Msg("servidor detenido")
}
