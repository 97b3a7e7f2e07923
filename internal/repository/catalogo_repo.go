package repository

import (
	"context"

	"github.com/MateoRicci/gestion-cec-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogoRepository covers the small read-mostly catalogs: convenios,
// puntos de venta and medios de pago.
type CatalogoRepository interface {
	ListConvenios(ctx context.Context) ([]model.Convenio, error)
	FindConvenioByID(ctx context.Context, id uuid.UUID) (*model.Convenio, error)
	FindConvenioByNombre(ctx context.Context, nombre string) (*model.Convenio, error)
	CreateConvenio(ctx context.Context, c *model.Convenio) error
	UpdateConvenio(ctx context.Context, c *model.Convenio) error

	ListPuntosVenta(ctx context.Context) ([]model.PuntoVenta, error)
	FindPuntoVentaByID(ctx context.Context, id uuid.UUID) (*model.PuntoVenta, error)

	ListMediosPago(ctx context.Context) ([]model.MedioPago, error)
	FindMedioPagoByID(ctx context.Context, id uuid.UUID) (*model.MedioPago, error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) ListConvenios(ctx context.Context) ([]model.Convenio, error) {
	var convenios []model.Convenio
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&convenios).Error
	return convenios, err
}

func (r *catalogoRepo) FindConvenioByID(ctx context.Context, id uuid.UUID) (*model.Convenio, error) {
	var c model.Convenio
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *catalogoRepo) FindConvenioByNombre(ctx context.Context, nombre string) (*model.Convenio, error) {
	var c model.Convenio
	err := r.db.WithContext(ctx).Where("LOWER(nombre) = LOWER(?)", nombre).First(&c).Error
	return &c, err
}

func (r *catalogoRepo) CreateConvenio(ctx context.Context, c *model.Convenio) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogoRepo) UpdateConvenio(ctx context.Context, c *model.Convenio) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *catalogoRepo) ListPuntosVenta(ctx context.Context) ([]model.PuntoVenta, error) {
	var puntos []model.PuntoVenta
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&puntos).Error
	return puntos, err
}

func (r *catalogoRepo) FindPuntoVentaByID(ctx context.Context, id uuid.UUID) (*model.PuntoVenta, error) {
	var p model.PuntoVenta
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *catalogoRepo) ListMediosPago(ctx context.Context) ([]model.MedioPago, error) {
	var medios []model.MedioPago
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&medios).Error
	return medios, err
}

func (r *catalogoRepo) FindMedioPagoByID(ctx context.Context, id uuid.UUID) (*model.MedioPago, error) {
	var m model.MedioPago
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}
