package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/repository"
	"github.com/MateoRicci/gestion-cec-sub000/internal/worker"

	"github.com/google/uuid"
)

type ComprobanteService interface {
	ObtenerPorVenta(ctx context.Context, ventaID uuid.UUID) (*dto.ComprobanteResponse, error)
	ObtenerPDFPath(ctx context.Context, id uuid.UUID) (string, error)
	// Reintentar re-enqueues the generation job for a comprobante stuck in
	// error, resetting its retry bookkeeping.
	Reintentar(ctx context.Context, id uuid.UUID) error
}

type comprobanteService struct {
	repo       repository.ComprobanteRepository
	dispatcher *worker.Dispatcher
}

func NewComprobanteService(repo repository.ComprobanteRepository, dispatcher *worker.Dispatcher) ComprobanteService {
	return &comprobanteService{repo: repo, dispatcher: dispatcher}
}

func (s *comprobanteService) ObtenerPorVenta(ctx context.Context, ventaID uuid.UUID) (*dto.ComprobanteResponse, error) {
	comp, err := s.repo.FindByVentaID(ctx, ventaID)
	if err != nil {
		return nil, fmt.Errorf("comprobante no encontrado para la venta %s", ventaID)
	}
	return comprobanteToResponse(comp), nil
}

func (s *comprobanteService) ObtenerPDFPath(ctx context.Context, id uuid.UUID) (string, error) {
	comp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("comprobante no encontrado")
	}
	if comp.PDFPath == nil || *comp.PDFPath == "" {
		return "", fmt.Errorf("PDF no disponible — el comprobante está en estado '%s'", comp.Estado)
	}
	return *comp.PDFPath, nil
}

func (s *comprobanteService) Reintentar(ctx context.Context, id uuid.UUID) error {
	comp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("comprobante no encontrado")
	}
	comp.Estado = "pendiente"
	comp.RetryCount = 0
	comp.LastError = nil
	comp.NextRetryAt = nil
	if err := s.repo.Update(ctx, comp); err != nil {
		return err
	}
	if s.dispatcher != nil {
		return s.dispatcher.EnqueueComprobante(ctx, worker.ComprobanteJobPayload{VentaID: comp.VentaID.String()})
	}
	return nil
}

func comprobanteToResponse(c *model.Comprobante) *dto.ComprobanteResponse {
	resp := &dto.ComprobanteResponse{
		ID:         c.ID.String(),
		VentaID:    c.VentaID.String(),
		Tipo:       c.Tipo,
		MontoTotal: c.MontoTotal,
		Estado:     c.Estado,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
	if c.PDFPath != nil && *c.PDFPath != "" {
		u := "/v1/comprobantes/pdf/" + c.ID.String()
		resp.PDFUrl = &u
	}
	return resp
}
