package worker

// comprobante_worker.go
// Processes receipt jobs from QueueComprobante: renders the venta's PDF
// recibo, records the outcome on the comprobante row and, when the client
// left an email, chains an email job.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MateoRicci/gestion-cec-sub000/internal/infra"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ComprobanteJobPayload is the job envelope sent to QueueComprobante.
type ComprobanteJobPayload struct {
	VentaID      string  `json:"venta_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

type ComprobanteWorker struct {
	comprobanteRepo repository.ComprobanteRepository
	ventaRepo       repository.VentaRepository
	dispatcher      *Dispatcher
	pdfStoragePath  string
	nombreClub      string
}

func NewComprobanteWorker(
	comprobanteRepo repository.ComprobanteRepository,
	ventaRepo repository.VentaRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	nombreClub string,
) *ComprobanteWorker {
	return &ComprobanteWorker{
		comprobanteRepo: comprobanteRepo,
		ventaRepo:       ventaRepo,
		dispatcher:      dispatcher,
		pdfStoragePath:  pdfStoragePath,
		nombreClub:      nombreClub,
	}
}

// Process handles a single comprobante job:
//  1. Parse ComprobanteJobPayload from the job envelope
//  2. Fetch the Venta (with detalles) from DB
//  3. Create the Comprobante record with estado="pendiente"
//  4. Render the PDF with retry (3 attempts, exponential backoff)
//  5. Update the Comprobante (estado / pdf_path / retry bookkeeping)
//  6. Optionally enqueue the email job
func (w *ComprobanteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ComprobanteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("comprobante_worker: invalid payload")
		return
	}

	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("comprobante_worker: invalid venta_id")
		return
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("comprobante_worker: venta not found")
		return
	}

	comp := &model.Comprobante{
		VentaID:    ventaID,
		Tipo:       "recibo_venta",
		MontoTotal: venta.Total,
		Estado:     "pendiente",
	}
	if err := w.comprobanteRepo.Create(ctx, comp); err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("comprobante_worker: failed to create comprobante")
		return
	}

	var pdfPath string
	renderErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateReciboPDF(venta, w.nombreClub, w.pdfStoragePath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("venta_id", payload.VentaID).
				Msg("comprobante_worker: render attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})

	if renderErr != nil {
		// Stays pendiente — the retry cron picks it up later.
		errMsg := renderErr.Error()
		nextRetry := time.Now().Add(computeRetryBackoff(1))
		comp.RetryCount = 1
		comp.LastError = &errMsg
		comp.NextRetryAt = &nextRetry
		_ = w.comprobanteRepo.Update(ctx, comp)
		log.Error().Err(renderErr).Str("venta_id", payload.VentaID).Msg("comprobante_worker: render failed, scheduled for retry")
		return
	}

	comp.Estado = "emitido"
	comp.PDFPath = &pdfPath
	_ = w.comprobanteRepo.Update(ctx, comp)
	log.Info().Str("pdf", pdfPath).Str("venta_id", payload.VentaID).Msg("comprobante_worker: recibo generated")

	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.ClienteEmail,
			Subject: fmt.Sprintf("%s — Recibo de venta", w.nombreClub),
			Body:    fmt.Sprintf("Adjunto encontrarás tu recibo.\nTotal: $%s", venta.Total.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClienteEmail).Msg("comprobante_worker: failed to enqueue email")
		}
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
