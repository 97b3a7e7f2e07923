package worker

// retry_cron.go
// Background goroutine that periodically re-renders PDF recibos for
// comprobantes stuck in estado='pendiente' with a next_retry_at in the past.

import (
	"context"
	"fmt"
	"time"

	"github.com/MateoRicci/gestion-cec-sub000/internal/infra"
	"github.com/MateoRicci/gestion-cec-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10

	// MaxComprobanteRetries caps re-render attempts before a comprobante is
	// marked error and its job moved to the DLQ.
	MaxComprobanteRetries = 5
)

// computeRetryBackoff returns the wait before the next cron re-attempt:
// 1m, 2m, 4m, 8m…
func computeRetryBackoff(retryCount int) time.Duration {
	return time.Duration(1<<uint(retryCount-1)) * time.Minute
}

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	ComprobanteRepo repository.ComprobanteRepository
	VentaRepo       repository.VentaRepository
	RDB             *redis.Client
	PDFStoragePath  string
	NombreClub      string
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending comprobantes and re-attempts the PDF render.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	now := time.Now()
	comprobantes, err := cfg.ComprobanteRepo.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(comprobantes) == 0 {
		return
	}

	log.Info().Int("count", len(comprobantes)).Msg("retry_cron: processing pending comprobantes")

	for i := range comprobantes {
		comp := &comprobantes[i]

		venta, err := cfg.VentaRepo.FindByID(ctx, comp.VentaID)
		if err != nil {
			log.Error().Err(err).Str("comprobante_id", comp.ID.String()).Msg("retry_cron: venta not found")
			continue
		}

		pdfPath, renderErr := infra.GenerateReciboPDF(venta, cfg.NombreClub, cfg.PDFStoragePath)
		if renderErr != nil {
			comp.RetryCount++
			errMsg := renderErr.Error()
			comp.LastError = &errMsg
			nextRetry := time.Now().Add(computeRetryBackoff(comp.RetryCount))
			comp.NextRetryAt = &nextRetry

			if comp.RetryCount >= MaxComprobanteRetries {
				comp.Estado = "error"
				comp.NextRetryAt = nil
				log.Error().
					Str("comprobante_id", comp.ID.String()).
					Str("venta_id", comp.VentaID.String()).
					Int("retries", comp.RetryCount).
					Msg("retry_cron: max retries exceeded, moving to error/DLQ")

				payload := fmt.Sprintf(`{"venta_id":"%s","comprobante_id":"%s"}`, comp.VentaID, comp.ID)
				SendToDLQ(ctx, cfg.RDB, QueueComprobante, "comprobante", []byte(payload),
					fmt.Sprintf("max retries (%d) exceeded: %s", MaxComprobanteRetries, errMsg),
					comp.RetryCount)
			} else {
				log.Warn().
					Str("comprobante_id", comp.ID.String()).
					Int("retry_count", comp.RetryCount).
					Time("next_retry_at", *comp.NextRetryAt).
					Msg("retry_cron: render failed, scheduled next attempt")
			}

			_ = cfg.ComprobanteRepo.Update(ctx, comp)
			continue
		}

		comp.Estado = "emitido"
		comp.PDFPath = &pdfPath
		comp.NextRetryAt = nil
		comp.LastError = nil
		_ = cfg.ComprobanteRepo.Update(ctx, comp)

		log.Info().
			Str("comprobante_id", comp.ID.String()).
			Int("total_retries", comp.RetryCount).
			Msg("retry_cron: recibo generated after retry")
	}
}
