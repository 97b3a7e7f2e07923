package repository

import (
	"context"

	"github.com/MateoRicci/gestion-cec-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	ListBySesion(ctx context.Context, sesionCajaID uuid.UUID) ([]model.Venta, error)
	ListByRango(ctx context.Context, desde, hasta string) ([]model.Venta, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string, motivo *string) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Detalles.Producto").
		Preload("MedioPago").
		Preload("Convenio").
		First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) ListBySesion(ctx context.Context, sesionCajaID uuid.UUID) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Preload("MedioPago").
		Preload("Convenio").
		Where("sesion_caja_id = ?", sesionCajaID).
		Order("created_at ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) ListByRango(ctx context.Context, desde, hasta string) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Preload("MedioPago").
		Preload("Convenio").
		Where("DATE(created_at) BETWEEN ? AND ?", desde, hasta).
		Order("created_at ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string, motivo *string) error {
	updates := map[string]interface{}{"estado": estado}
	if motivo != nil {
		updates["motivo_cancelacion"] = *motivo
	}
	return tx.Model(&model.Venta{}).Where("id = ?", id).Updates(updates).Error
}
