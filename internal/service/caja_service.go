package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MateoRicci/gestion-cec-sub000/internal/config"
	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/events"
	"github.com/MateoRicci/gestion-cec-sub000/internal/infra"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const fechaISO = "2006-01-02T15:04:05Z"

// Business failures of the close flow. Handlers key on these to pick the
// HTTP status; anything else is an infrastructure error.
var (
	ErrSesionNoEncontrada = errors.New("sesión de caja no encontrada")
	ErrSesionCerrada      = errors.New("la sesión ya está cerrada")
	ErrCierreEnCurso      = errors.New("el cierre de esta caja ya está en curso")
)

type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error)
	RegistrarMovimiento(ctx context.Context, tipo string, req dto.MovimientoManualRequest) error
	Cerrar(ctx context.Context, sesionID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error)
	Estado(ctx context.Context, puntoVentaID uuid.UUID) (*dto.SesionCajaResponse, error)
	Movimientos(ctx context.Context, sesionID uuid.UUID) ([]dto.MovimientoResponse, error)
	Historial(ctx context.Context, page, limit int) ([]dto.CierreCajaResponse, int64, error)
	// FindSesionAbierta is called by VentaService to validate an open session.
	FindSesionAbierta(ctx context.Context, sesionID uuid.UUID) (*model.SesionCaja, error)
}

type cajaService struct {
	repo      repository.CajaRepository
	ventaRepo repository.VentaRepository
	bus       *events.Bus
	locker    *infra.Locker
	cfg       *config.Config
}

func NewCajaService(
	repo repository.CajaRepository,
	ventaRepo repository.VentaRepository,
	bus *events.Bus,
	locker *infra.Locker,
	cfg *config.Config,
) CajaService {
	return &cajaService{repo: repo, ventaRepo: ventaRepo, bus: bus, locker: locker, cfg: cfg}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────
// One open session per punto de venta. The Redis lock serializes concurrent
// openings from two terminals; the DB guard catches the rest.

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error) {
	pvID, err := uuid.Parse(req.PuntoVentaID)
	if err != nil {
		return nil, fmt.Errorf("punto_venta_id inválido: %w", err)
	}

	release, err := s.locker.Acquire(ctx, "caja:abrir:"+pvID.String(), 5*time.Second)
	if err != nil {
		return nil, errors.New("otra apertura de caja está en curso en este punto de venta")
	}
	defer release()

	if existing, err := s.repo.FindSesionAbiertaPorPV(ctx, pvID); err == nil && existing != nil && existing.ID != uuid.Nil {
		return nil, errors.New("ya existe una caja abierta en este punto de venta")
	}

	sesion := &model.SesionCaja{
		PuntoVentaID: pvID,
		UsuarioID:    usuarioID,
		MontoInicial: req.MontoInicial,
		Estado:       "abierta",
		OpenedAt:     time.Now(),
	}
	if err := s.repo.CreateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	s.bus.Publish(events.Event{Kind: events.CajaAbierta, SesionCajaID: sesion.ID})
	return sesionToResponse(sesion), nil
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────
// Manual ingreso / egreso. Montos are stored positive; Tipo carries the sign.
// Movements are immutable — no Update/Delete anywhere.

func (s *cajaService) RegistrarMovimiento(ctx context.Context, tipo string, req dto.MovimientoManualRequest) error {
	if tipo != model.MovIngresoManual && tipo != model.MovEgresoManual {
		return fmt.Errorf("tipo de movimiento inválido: %s", tipo)
	}
	sesionID, err := uuid.Parse(req.SesionCajaID)
	if err != nil {
		return fmt.Errorf("sesion_caja_id inválido: %w", err)
	}
	if _, err := s.FindSesionAbierta(ctx, sesionID); err != nil {
		return err
	}

	mov := &model.MovimientoCaja{
		SesionCajaID: sesionID,
		Tipo:         tipo,
		Monto:        req.Monto,
		Descripcion:  req.Descripcion,
	}
	if err := s.repo.CreateMovimiento(ctx, mov); err != nil {
		return err
	}
	s.bus.Publish(events.Event{Kind: events.MovimientoCreado, SesionCajaID: sesionID, ReferenciaID: &mov.ID})
	return nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Reconciles, persists the figures, marks the session cerrada and only THEN
// renders the closing ticket. A PDF failure never reopens the caja.

func (s *cajaService) Cerrar(ctx context.Context, sesionID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error) {
	release, err := s.locker.Acquire(ctx, "caja:cerrar:"+sesionID.String(), 10*time.Second)
	if err != nil {
		return nil, ErrCierreEnCurso
	}
	defer release()

	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, ErrSesionNoEncontrada
	}
	if sesion.Estado != "abierta" {
		return nil, ErrSesionCerrada
	}

	movimientos, err := s.repo.ListMovimientos(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventaRepo.ListBySesion(ctx, sesionID)
	if err != nil {
		return nil, err
	}

	figuras := Reconciliar(sesion, movimientos, ventas)

	now := time.Now()
	sesion.Estado = "cerrada"
	sesion.ClosedAt = &now
	sesion.Observaciones = req.Observaciones
	sesion.IngresosManuales = &figuras.IngresosManuales
	sesion.EgresosManuales = &figuras.EgresosManuales
	sesion.VentasEfectivo = &figuras.VentasEfectivo
	sesion.VentasEfectivoCanceladas = &figuras.VentasEfectivoCanceladas
	sesion.SaldoEfectivo = &figuras.SaldoEfectivo
	if err := s.repo.UpdateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	s.bus.Publish(events.Event{Kind: events.CajaCerrada, SesionCajaID: sesionID})

	resp := cierreToResponse(sesion, figuras)

	// Ticket de cierre — the session is already closed in DB at this point.
	ticketPath, pdfErr := infra.GenerateTicketCierrePDF(resp, s.cfg.NombreClub, s.cfg.PDFStoragePath)
	if pdfErr != nil {
		log.Warn().Err(pdfErr).Str("sesion_caja_id", sesionID.String()).Msg("fallo la generacion del ticket de cierre")
	} else {
		resp.TicketPath = &ticketPath
	}
	return resp, nil
}

// ── Estado / consultas ────────────────────────────────────────────────────────

func (s *cajaService) Estado(ctx context.Context, puntoVentaID uuid.UUID) (*dto.SesionCajaResponse, error) {
	sesion, err := s.repo.FindSesionAbiertaPorPV(ctx, puntoVentaID)
	if err != nil {
		return nil, errors.New("no hay caja abierta en este punto de venta")
	}
	return sesionToResponse(sesion), nil
}

func (s *cajaService) Movimientos(ctx context.Context, sesionID uuid.UUID) ([]dto.MovimientoResponse, error) {
	movs, err := s.repo.ListMovimientos(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimientoResponse, len(movs))
	for i, m := range movs {
		resp[i] = dto.MovimientoResponse{
			ID:          m.ID.String(),
			Tipo:        m.Tipo,
			Monto:       m.Monto,
			Descripcion: m.Descripcion,
			CreatedAt:   m.CreatedAt.Format(fechaISO),
		}
		if m.ReferenciaID != nil {
			ref := m.ReferenciaID.String()
			resp[i].ReferenciaID = &ref
		}
	}
	return resp, nil
}

func (s *cajaService) Historial(ctx context.Context, page, limit int) ([]dto.CierreCajaResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	sesiones, total, err := s.repo.ListCerradas(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.CierreCajaResponse, len(sesiones))
	for i := range sesiones {
		resp[i] = *cierrePersistido(&sesiones[i])
	}
	return resp, total, nil
}

func (s *cajaService) FindSesionAbierta(ctx context.Context, sesionID uuid.UUID) (*model.SesionCaja, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, ErrSesionNoEncontrada
	}
	if sesion.Estado != "abierta" {
		return nil, errors.New("no hay sesión de caja abierta")
	}
	return sesion, nil
}

// ── Reconciliar ───────────────────────────────────────────────────────────────

// CierreFiguras is the outcome of reconciling one caja session.
type CierreFiguras struct {
	IngresosManuales         decimal.Decimal
	EgresosManuales          decimal.Decimal
	VentasEfectivo           decimal.Decimal
	VentasEfectivoCanceladas decimal.Decimal
	SaldoEfectivo            decimal.Decimal
	PorMedio                 []dto.BalancePorMedio
	Asistencia               []dto.AsistenciaPorConvenio
}

// Reconciliar is a pure function of the session snapshot: same inputs, same
// figures, no I/O. Classification keys on the explicit movement Tipo and on
// medio_pago.es_efectivo — never on descriptions or names.
//
// Cancelled ventas contribute nothing to the drawer balance or the
// per-method breakdown; their cash total is reported separately so the
// supervisor can see what was voided during the shift.
func Reconciliar(sesion *model.SesionCaja, movimientos []model.MovimientoCaja, ventas []model.Venta) CierreFiguras {
	f := CierreFiguras{
		IngresosManuales:         decimal.Zero,
		EgresosManuales:          decimal.Zero,
		VentasEfectivo:           decimal.Zero,
		VentasEfectivoCanceladas: decimal.Zero,
	}

	for _, m := range movimientos {
		switch m.Tipo {
		case model.MovIngresoManual:
			f.IngresosManuales = f.IngresosManuales.Add(m.Monto)
		case model.MovEgresoManual:
			f.EgresosManuales = f.EgresosManuales.Add(m.Monto)
		}
		// venta / anulacion movements are derived from the ventas below;
		// counting them here would double-book every sale.
	}

	porMedio := make(map[string]decimal.Decimal)
	ordenMedios := make([]string, 0, 4)
	asistencia := make(map[string]int)
	ordenConvenios := make([]string, 0, 4)

	for i := range ventas {
		v := &ventas[i]
		esEfectivo := v.MedioPago != nil && v.MedioPago.EsEfectivo

		if v.Estado == model.VentaCancelada {
			if esEfectivo {
				f.VentasEfectivoCanceladas = f.VentasEfectivoCanceladas.Add(v.Total)
			}
			continue
		}

		if esEfectivo {
			f.VentasEfectivo = f.VentasEfectivo.Add(v.Total)
		}

		medio := "desconocido"
		if v.MedioPago != nil {
			medio = v.MedioPago.Nombre
		}
		if _, ok := porMedio[medio]; !ok {
			ordenMedios = append(ordenMedios, medio)
		}
		porMedio[medio] = porMedio[medio].Add(v.Total)

		// Attendance is per entry row, not per venta: a member sale can carry
		// exploded walk-in rows, and those heads belong to "No Afiliados".
		for _, d := range v.Detalles {
			if !d.EsEntrada {
				continue
			}
			grupo := "No Afiliados"
			if d.AfiliadoID != nil && v.Convenio != nil {
				grupo = v.Convenio.Nombre
			}
			if _, ok := asistencia[grupo]; !ok {
				ordenConvenios = append(ordenConvenios, grupo)
			}
			asistencia[grupo] += d.Cantidad
		}
	}

	f.SaldoEfectivo = sesion.MontoInicial.
		Add(f.IngresosManuales).
		Sub(f.EgresosManuales).
		Add(f.VentasEfectivo)

	f.PorMedio = make([]dto.BalancePorMedio, 0, len(ordenMedios))
	for _, medio := range ordenMedios {
		f.PorMedio = append(f.PorMedio, dto.BalancePorMedio{MedioPago: medio, Total: porMedio[medio]})
	}
	f.Asistencia = make([]dto.AsistenciaPorConvenio, 0, len(ordenConvenios))
	for _, convenio := range ordenConvenios {
		f.Asistencia = append(f.Asistencia, dto.AsistenciaPorConvenio{Convenio: convenio, Personas: asistencia[convenio]})
	}
	return f
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func sesionToResponse(s *model.SesionCaja) *dto.SesionCajaResponse {
	resp := &dto.SesionCajaResponse{
		ID:           s.ID.String(),
		PuntoVentaID: s.PuntoVentaID.String(),
		MontoInicial: s.MontoInicial,
		Estado:       s.Estado,
		OpenedAt:     s.OpenedAt.Format(fechaISO),
	}
	if s.PuntoVenta != nil {
		resp.PuntoVenta = s.PuntoVenta.Nombre
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format(fechaISO)
		resp.ClosedAt = &t
	}
	return resp
}

func cierreToResponse(s *model.SesionCaja, f CierreFiguras) *dto.CierreCajaResponse {
	resp := &dto.CierreCajaResponse{
		SesionCajaID:             s.ID.String(),
		MontoInicial:             s.MontoInicial,
		IngresosManuales:         f.IngresosManuales,
		EgresosManuales:          f.EgresosManuales,
		VentasEfectivo:           f.VentasEfectivo,
		VentasEfectivoCanceladas: f.VentasEfectivoCanceladas,
		SaldoEfectivo:            f.SaldoEfectivo,
		BalancePorMedio:          f.PorMedio,
		Asistencia:               f.Asistencia,
		Estado:                   s.Estado,
		OpenedAt:                 s.OpenedAt.Format(fechaISO),
	}
	if s.PuntoVenta != nil {
		resp.PuntoVenta = s.PuntoVenta.Nombre
	}
	if s.ClosedAt != nil {
		resp.ClosedAt = s.ClosedAt.Format(fechaISO)
	}
	return resp
}

// cierrePersistido rebuilds a closing report from the persisted columns of an
// already-closed session (historial listing — no re-reconciliation).
func cierrePersistido(s *model.SesionCaja) *dto.CierreCajaResponse {
	deref := func(d *decimal.Decimal) decimal.Decimal {
		if d == nil {
			return decimal.Zero
		}
		return *d
	}
	f := CierreFiguras{
		IngresosManuales:         deref(s.IngresosManuales),
		EgresosManuales:          deref(s.EgresosManuales),
		VentasEfectivo:           deref(s.VentasEfectivo),
		VentasEfectivoCanceladas: deref(s.VentasEfectivoCanceladas),
		SaldoEfectivo:            deref(s.SaldoEfectivo),
	}
	return cierreToResponse(s, f)
}
