package tests

import (
	"context"
	"errors"
	"time"

	"github.com/MateoRicci/gestion-cec-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── In-memory CajaRepository ─────────────────────────────────────────────────

type memCajaRepo struct {
	sesiones    map[uuid.UUID]*model.SesionCaja
	movimientos []model.MovimientoCaja
}

func newMemCajaRepo() *memCajaRepo {
	return &memCajaRepo{sesiones: make(map[uuid.UUID]*model.SesionCaja)}
}

func (r *memCajaRepo) CreateSesion(_ context.Context, s *model.SesionCaja) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sesiones[s.ID] = s
	return nil
}

func (r *memCajaRepo) FindSesionAbiertaPorPV(_ context.Context, pvID uuid.UUID) (*model.SesionCaja, error) {
	for _, s := range r.sesiones {
		if s.PuntoVentaID == pvID && s.Estado == "abierta" {
			return s, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *memCajaRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	s, ok := r.sesiones[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return s, nil
}

func (r *memCajaRepo) UpdateSesion(_ context.Context, s *model.SesionCaja) error {
	r.sesiones[s.ID] = s
	return nil
}

func (r *memCajaRepo) CreateMovimiento(_ context.Context, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *memCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoCaja) error {
	return r.CreateMovimiento(context.Background(), m)
}

func (r *memCajaRepo) ListMovimientos(_ context.Context, sesionID uuid.UUID) ([]model.MovimientoCaja, error) {
	var result []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.SesionCajaID == sesionID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *memCajaRepo) ListCerradas(_ context.Context, page, limit int) ([]model.SesionCaja, int64, error) {
	var cerradas []model.SesionCaja
	for _, s := range r.sesiones {
		if s.Estado == "cerrada" {
			cerradas = append(cerradas, *s)
		}
	}
	return cerradas, int64(len(cerradas)), nil
}

// ── In-memory VentaRepository ────────────────────────────────────────────────

type memVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
	orden  []uuid.UUID
}

func newMemVentaRepo() *memVentaRepo {
	return &memVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *memVentaRepo) DB() *gorm.DB { return nil }

func (r *memVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	for i := range v.Detalles {
		v.Detalles[i].VentaID = v.ID
	}
	r.ventas[v.ID] = v
	r.orden = append(r.orden, v.ID)
	return nil
}

func (r *memVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return v, nil
}

func (r *memVentaRepo) ListBySesion(_ context.Context, sesionID uuid.UUID) ([]model.Venta, error) {
	var result []model.Venta
	for _, id := range r.orden {
		if r.ventas[id].SesionCajaID == sesionID {
			result = append(result, *r.ventas[id])
		}
	}
	return result, nil
}

func (r *memVentaRepo) ListByRango(_ context.Context, desde, hasta string) ([]model.Venta, error) {
	var result []model.Venta
	for _, id := range r.orden {
		result = append(result, *r.ventas[id])
	}
	return result, nil
}

func (r *memVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string, motivo *string) error {
	v, ok := r.ventas[id]
	if !ok {
		return errors.New("record not found")
	}
	v.Estado = estado
	v.MotivoCancelacion = motivo
	return nil
}

// ── In-memory ProductoRepository ─────────────────────────────────────────────

type memProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	precios   map[uuid.UUID][]model.PrecioProducto
	listas    []model.ListaPrecio
}

func newMemProductoRepo() *memProductoRepo {
	return &memProductoRepo{
		productos: make(map[uuid.UUID]*model.Producto),
		precios:   make(map[uuid.UUID][]model.PrecioProducto),
	}
}

// agregar registers a producto with its per-list prices and returns it.
func (r *memProductoRepo) agregar(nombre string, esEntrada bool, precios map[int]decimal.Decimal) *model.Producto {
	p := &model.Producto{ID: uuid.New(), Nombre: nombre, EsEntrada: esEntrada, Activo: true}
	for listaID, precio := range precios {
		pp := model.PrecioProducto{ProductoID: p.ID, ListaPrecioID: listaID, PrecioUnitario: precio}
		p.Precios = append(p.Precios, pp)
		r.precios[p.ID] = append(r.precios[p.ID], pp)
	}
	r.productos[p.ID] = p
	return p
}

func (r *memProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *memProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *memProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *memProductoRepo) FindByNombre(_ context.Context, nombre string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Nombre == nombre {
			return p, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *memProductoRepo) List(_ context.Context, _ *uuid.UUID) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		result = append(result, *p)
	}
	return result, nil
}

func (r *memProductoRepo) ListPrecios(_ context.Context, productoID uuid.UUID) ([]model.PrecioProducto, error) {
	return r.precios[productoID], nil
}

func (r *memProductoRepo) UpsertPrecio(_ context.Context, precio *model.PrecioProducto) error {
	lista := r.precios[precio.ProductoID]
	for i := range lista {
		if lista[i].ListaPrecioID == precio.ListaPrecioID {
			lista[i].PrecioUnitario = precio.PrecioUnitario
			return nil
		}
	}
	r.precios[precio.ProductoID] = append(lista, *precio)
	return nil
}

func (r *memProductoRepo) ListListasPrecios(_ context.Context) ([]model.ListaPrecio, error) {
	return r.listas, nil
}

// ── In-memory AfiliadoRepository ─────────────────────────────────────────────

type memAfiliadoRepo struct {
	afiliados  map[uuid.UUID]*model.Afiliado
	presentes  map[uuid.UUID]bool
}

func newMemAfiliadoRepo() *memAfiliadoRepo {
	return &memAfiliadoRepo{
		afiliados: make(map[uuid.UUID]*model.Afiliado),
		presentes: make(map[uuid.UUID]bool),
	}
}

func (r *memAfiliadoRepo) Create(_ context.Context, a *model.Afiliado) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.afiliados[a.ID] = a
	return nil
}

func (r *memAfiliadoRepo) Update(_ context.Context, a *model.Afiliado) error {
	r.afiliados[a.ID] = a
	return nil
}

func (r *memAfiliadoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Afiliado, error) {
	a, ok := r.afiliados[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return a, nil
}

func (r *memAfiliadoRepo) FindByDocumento(_ context.Context, documento string) (*model.Afiliado, error) {
	for _, a := range r.afiliados {
		if a.Documento == documento {
			return a, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *memAfiliadoRepo) List(_ context.Context, incluirInactivos bool) ([]model.Afiliado, error) {
	var result []model.Afiliado
	for _, a := range r.afiliados {
		if a.Activo || incluirInactivos {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *memAfiliadoRepo) CreateFamiliar(_ context.Context, f *model.Familiar) error {
	a, ok := r.afiliados[f.AfiliadoID]
	if !ok {
		return errors.New("record not found")
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	a.Familiares = append(a.Familiares, *f)
	return nil
}

func (r *memAfiliadoRepo) DeleteFamiliar(_ context.Context, id uuid.UUID) error {
	for _, a := range r.afiliados {
		for i, f := range a.Familiares {
			if f.ID == id {
				a.Familiares = append(a.Familiares[:i], a.Familiares[i+1:]...)
				return nil
			}
		}
	}
	return errors.New("record not found")
}

func (r *memAfiliadoRepo) DocumentosConEntradaHoy(_ context.Context, _ uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.presentes, nil
}

// ── In-memory CatalogoRepository ─────────────────────────────────────────────

type memCatalogoRepo struct {
	convenios   map[uuid.UUID]*model.Convenio
	puntosVenta map[uuid.UUID]*model.PuntoVenta
	mediosPago  map[uuid.UUID]*model.MedioPago
}

func newMemCatalogoRepo() *memCatalogoRepo {
	return &memCatalogoRepo{
		convenios:   make(map[uuid.UUID]*model.Convenio),
		puntosVenta: make(map[uuid.UUID]*model.PuntoVenta),
		mediosPago:  make(map[uuid.UUID]*model.MedioPago),
	}
}

func (r *memCatalogoRepo) agregarMedio(nombre string, esEfectivo bool) *model.MedioPago {
	m := &model.MedioPago{ID: uuid.New(), Nombre: nombre, EsEfectivo: esEfectivo, Activo: true}
	r.mediosPago[m.ID] = m
	return m
}

func (r *memCatalogoRepo) ListConvenios(_ context.Context) ([]model.Convenio, error) {
	var result []model.Convenio
	for _, c := range r.convenios {
		result = append(result, *c)
	}
	return result, nil
}

func (r *memCatalogoRepo) FindConvenioByID(_ context.Context, id uuid.UUID) (*model.Convenio, error) {
	c, ok := r.convenios[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (r *memCatalogoRepo) FindConvenioByNombre(_ context.Context, nombre string) (*model.Convenio, error) {
	for _, c := range r.convenios {
		if c.Nombre == nombre {
			return c, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *memCatalogoRepo) CreateConvenio(_ context.Context, c *model.Convenio) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.convenios[c.ID] = c
	return nil
}

func (r *memCatalogoRepo) UpdateConvenio(_ context.Context, c *model.Convenio) error {
	r.convenios[c.ID] = c
	return nil
}

func (r *memCatalogoRepo) ListPuntosVenta(_ context.Context) ([]model.PuntoVenta, error) {
	var result []model.PuntoVenta
	for _, pv := range r.puntosVenta {
		result = append(result, *pv)
	}
	return result, nil
}

func (r *memCatalogoRepo) FindPuntoVentaByID(_ context.Context, id uuid.UUID) (*model.PuntoVenta, error) {
	pv, ok := r.puntosVenta[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return pv, nil
}

func (r *memCatalogoRepo) ListMediosPago(_ context.Context) ([]model.MedioPago, error) {
	var result []model.MedioPago
	for _, m := range r.mediosPago {
		result = append(result, *m)
	}
	return result, nil
}

func (r *memCatalogoRepo) FindMedioPagoByID(_ context.Context, id uuid.UUID) (*model.MedioPago, error) {
	m, ok := r.mediosPago[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return m, nil
}

// ── In-memory UsuarioRepository ──────────────────────────────────────────────

type memUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newMemUsuarioRepo() *memUsuarioRepo {
	return &memUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *memUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *memUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *memUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (r *memUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *memUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo || incluirInactivos {
			result = append(result, *u)
		}
	}
	return result, nil
}
