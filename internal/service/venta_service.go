package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MateoRicci/gestion-cec-sub000/internal/carrito"
	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/events"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/repository"
	"github.com/MateoRicci/gestion-cec-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID, motivo string) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListarPorSesion(ctx context.Context, sesionID uuid.UUID) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	cajaRepo     repository.CajaRepository
	catalogoRepo repository.CatalogoRepository
	productoRepo repository.ProductoRepository
	afiliadoRepo repository.AfiliadoRepository
	caja         CajaService
	precios      PrecioService
	bus          *events.Bus
	dispatcher   *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	cajaRepo repository.CajaRepository,
	catalogoRepo repository.CatalogoRepository,
	productoRepo repository.ProductoRepository,
	afiliadoRepo repository.AfiliadoRepository,
	caja CajaService,
	precios PrecioService,
	bus *events.Bus,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:         repo,
		cajaRepo:     cajaRepo,
		catalogoRepo: catalogoRepo,
		productoRepo: productoRepo,
		afiliadoRepo: afiliadoRepo,
		caja:         caja,
		precios:      precios,
		bus:          bus,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Registrar ─────────────────────────────────────────────────────────────────
//  1. Validate sesion de caja is open
//  2. Resolve afiliado/convenio, medio de pago, productos; re-price each
//     line server-side (client prices are never trusted)
//  3. Partition lines into detail rows: membership 1:1, walk-in entries
//     exploded to cantidad 1, other extras aggregated by (producto, lista)
//  4. BEGIN TX: create venta+detalles, crear movimiento de caja
//  5. COMMIT, publish event, dispatch comprobante job

func (s *ventaService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	sesionID, err := uuid.Parse(req.SesionCajaID)
	if err != nil {
		return nil, fmt.Errorf("sesion_caja_id inválido: %w", err)
	}
	pvID, err := uuid.Parse(req.PuntoVentaID)
	if err != nil {
		return nil, fmt.Errorf("punto_venta_id inválido: %w", err)
	}
	medioPagoID, err := uuid.Parse(req.MedioPagoID)
	if err != nil {
		return nil, fmt.Errorf("medio_pago_id inválido: %w", err)
	}

	if _, err := s.caja.FindSesionAbierta(ctx, sesionID); err != nil {
		return nil, err
	}

	medioPago, err := s.catalogoRepo.FindMedioPagoByID(ctx, medioPagoID)
	if err != nil {
		return nil, errors.New("medio de pago no encontrado")
	}

	// Resolve afiliado + convenio. A nil afiliado (or one under the
	// Consumidor Final sentinel) makes this a walk-in sale.
	var afiliado *model.Afiliado
	var afiliadoID, convenioID *uuid.UUID
	esConsumidorFinal := true
	if req.AfiliadoID != nil && *req.AfiliadoID != "" && *req.AfiliadoID != dto.ConsumidorFinalID {
		aid, err := uuid.Parse(*req.AfiliadoID)
		if err != nil {
			return nil, fmt.Errorf("afiliado_id inválido: %w", err)
		}
		afiliado, err = s.afiliadoRepo.FindByID(ctx, aid)
		if err != nil {
			return nil, errors.New("afiliado no encontrado")
		}
		if afiliado.Convenio == nil || afiliado.Convenio.Nombre != model.NombreConsumidorFinal {
			esConsumidorFinal = false
			afiliadoID = &afiliado.ID
			cid := afiliado.ConvenioID
			convenioID = &cid
		}
	}

	lineas, err := s.resolverLineas(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	detalles := carrito.ConstruirDetalles(lineas, esConsumidorFinal)
	total := carrito.Total(lineas)

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta = model.Venta{
			SesionCajaID: sesionID,
			PuntoVentaID: pvID,
			UsuarioID:    usuarioID,
			MedioPagoID:  medioPagoID,
			AfiliadoID:   afiliadoID,
			ConvenioID:   convenioID,
			Total:        total,
			Estado:       model.VentaCompletada,
			Detalles:     detalles,
		}
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		mov := model.MovimientoCaja{
			SesionCajaID: sesionID,
			Tipo:         model.MovVenta,
			Monto:        total,
			Descripcion:  fmt.Sprintf("Venta %s", venta.ID),
			ReferenciaID: &venta.ID,
		}
		return s.cajaRepo.CreateMovimientoTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.bus.Publish(events.Event{Kind: events.VentaRegistrada, SesionCajaID: sesionID, ReferenciaID: &venta.ID})

	// Async comprobante — fire & forget, a venta is valid without its PDF.
	if s.dispatcher != nil {
		payload := worker.ComprobanteJobPayload{VentaID: venta.ID.String()}
		if req.ClienteEmail != nil && *req.ClienteEmail != "" {
			payload.ClienteEmail = req.ClienteEmail
		}
		_ = s.dispatcher.EnqueueComprobante(ctx, payload)
	}

	venta.MedioPago = medioPago
	if afiliado != nil && !esConsumidorFinal {
		venta.Convenio = afiliado.Convenio
	}
	return ventaToResponse(&venta), nil
}

// resolverLineas turns request lines into cart lines, re-pricing each one
// against the product's price list. A (producto, lista) pair without a price
// degrades to $0 — same fail-soft rule the cart applies when deriving.
func (s *ventaService) resolverLineas(ctx context.Context, items []dto.LineaVentaRequest) ([]carrito.Linea, error) {
	lineas := make([]carrito.Linea, 0, len(items))
	for _, item := range items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		producto, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		if !producto.Activo {
			return nil, fmt.Errorf("producto %s está inactivo y no puede venderse", producto.Nombre)
		}

		precio := decimal.Zero
		if p, ok := s.precios.PrecioDe(ctx, pid, item.ListaPrecioID); ok {
			precio = p
		}

		linea := carrito.Linea{
			ID:             item.ID,
			ProductoID:     pid,
			Nombre:         producto.Nombre,
			Cantidad:       item.Cantidad,
			ListaPrecioID:  item.ListaPrecioID,
			PrecioUnitario: precio,
			EsTitular:      item.EsTitular,
			EsEntrada:      producto.EsEntrada,
		}
		if item.AfiliadoID != nil {
			aid, err := uuid.Parse(*item.AfiliadoID)
			if err != nil {
				return nil, fmt.Errorf("afiliado_id inválido en item: %w", err)
			}
			linea.AfiliadoID = &aid
		}
		if item.FamiliarID != nil {
			fid, err := uuid.Parse(*item.FamiliarID)
			if err != nil {
				return nil, fmt.Errorf("familiar_id inválido en item: %w", err)
			}
			linea.FamiliarID = &fid
		}
		lineas = append(lineas, linea)
	}
	return lineas, nil
}

// ── Cancelar ──────────────────────────────────────────────────────────────────
// Soft cancel: the venta row stays, an inverse anulacion movement is written
// and reconciliation skips the sale from then on.

func (s *ventaService) Cancelar(ctx context.Context, id uuid.UUID, motivo string) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("venta no encontrada")
	}
	if venta.Estado == model.VentaCancelada {
		return errors.New("la venta ya está cancelada")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateEstadoTx(tx, id, model.VentaCancelada, &motivo); err != nil {
			return err
		}
		mov := model.MovimientoCaja{
			SesionCajaID: venta.SesionCajaID,
			Tipo:         model.MovAnulacion,
			Monto:        venta.Total,
			Descripcion:  fmt.Sprintf("Anulación venta %s — %s", venta.ID, motivo),
			ReferenciaID: &venta.ID,
		}
		return s.cajaRepo.CreateMovimientoTx(tx, &mov)
	})
	if txErr != nil {
		return txErr
	}

	s.bus.Publish(events.Event{Kind: events.VentaCancelada, SesionCajaID: venta.SesionCajaID, ReferenciaID: &venta.ID})
	return nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListarPorSesion(ctx context.Context, sesionID uuid.UUID) (*dto.VentaListResponse, error) {
	ventas, err := s.repo.ListBySesion(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, len(ventas))
	for i := range ventas {
		data[i] = *ventaToResponse(&ventas[i])
	}
	return &dto.VentaListResponse{Data: data, Total: len(data)}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	detalles := make([]dto.DetalleVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		det := dto.DetalleVentaResponse{
			ProductoID:     d.ProductoID.String(),
			Producto:       nombre,
			ListaPrecioID:  d.ListaPrecioID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			PrecioTotal:    d.PrecioTotal,
			EsTitular:      d.EsTitular,
			EsEntrada:      d.EsEntrada,
		}
		if d.AfiliadoID != nil {
			aid := d.AfiliadoID.String()
			det.AfiliadoID = &aid
		}
		detalles = append(detalles, det)
	}

	resp := &dto.VentaResponse{
		ID:           v.ID.String(),
		SesionCajaID: v.SesionCajaID.String(),
		Total:        v.Total,
		Estado:       v.Estado,
		Detalles:     detalles,
		CreatedAt:    v.CreatedAt.Format(fechaISO),
	}
	if v.MedioPago != nil {
		resp.MedioPago = v.MedioPago.Nombre
	}
	if v.Convenio != nil {
		nombre := v.Convenio.Nombre
		resp.Convenio = &nombre
	}
	return resp
}
