package repository

import (
	"context"
	"time"

	"github.com/MateoRicci/gestion-cec-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AfiliadoRepository interface {
	Create(ctx context.Context, a *model.Afiliado) error
	Update(ctx context.Context, a *model.Afiliado) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Afiliado, error)
	FindByDocumento(ctx context.Context, documento string) (*model.Afiliado, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Afiliado, error)
	CreateFamiliar(ctx context.Context, f *model.Familiar) error
	DeleteFamiliar(ctx context.Context, id uuid.UUID) error
	// DocumentosConEntradaHoy returns the set of documentos (titular or
	// familiar) that already have an entry detail row in a non-cancelled
	// venta today — the compro_hoy flag on lookup.
	DocumentosConEntradaHoy(ctx context.Context, afiliadoID uuid.UUID) (map[uuid.UUID]bool, error)
}

type afiliadoRepo struct{ db *gorm.DB }

func NewAfiliadoRepository(db *gorm.DB) AfiliadoRepository { return &afiliadoRepo{db: db} }

func (r *afiliadoRepo) Create(ctx context.Context, a *model.Afiliado) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *afiliadoRepo) Update(ctx context.Context, a *model.Afiliado) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *afiliadoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Afiliado, error) {
	var a model.Afiliado
	err := r.db.WithContext(ctx).Preload("Convenio").Preload("Familiares", "activo = true").First(&a, id).Error
	return &a, err
}

func (r *afiliadoRepo) FindByDocumento(ctx context.Context, documento string) (*model.Afiliado, error) {
	var a model.Afiliado
	err := r.db.WithContext(ctx).
		Preload("Convenio").
		Preload("Familiares", "activo = true").
		Where("documento = ? AND activo = true", documento).
		First(&a).Error
	return &a, err
}

func (r *afiliadoRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Afiliado, error) {
	var afiliados []model.Afiliado
	q := r.db.WithContext(ctx).Preload("Convenio").Order("apellido ASC, nombre ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&afiliados).Error
	return afiliados, err
}

func (r *afiliadoRepo) CreateFamiliar(ctx context.Context, f *model.Familiar) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *afiliadoRepo) DeleteFamiliar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Familiar{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *afiliadoRepo) DocumentosConEntradaHoy(ctx context.Context, afiliadoID uuid.UUID) (map[uuid.UUID]bool, error) {
	hoy := time.Now().Format("2006-01-02")

	type fila struct {
		AfiliadoID *uuid.UUID
		FamiliarID *uuid.UUID
	}
	var filas []fila
	err := r.db.WithContext(ctx).
		Model(&model.DetalleVenta{}).
		Select("detalle_ventas.afiliado_id, detalle_ventas.familiar_id").
		Joins("JOIN ventas ON ventas.id = detalle_ventas.venta_id").
		Where("detalle_ventas.afiliado_id = ?", afiliadoID).
		Where("detalle_ventas.es_entrada = true").
		Where("ventas.estado <> ?", model.VentaCancelada).
		Where("DATE(ventas.created_at) = ?", hoy).
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	presentes := make(map[uuid.UUID]bool, len(filas))
	for _, f := range filas {
		switch {
		case f.FamiliarID != nil:
			presentes[*f.FamiliarID] = true
		case f.AfiliadoID != nil:
			presentes[*f.AfiliadoID] = true
		}
	}
	return presentes, nil
}
