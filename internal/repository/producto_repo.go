package repository

import (
	"context"

	"github.com/MateoRicci/gestion-cec-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	Update(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Producto, error)
	List(ctx context.Context, puntoVentaID *uuid.UUID) ([]model.Producto, error)
	ListPrecios(ctx context.Context, productoID uuid.UUID) ([]model.PrecioProducto, error)
	UpsertPrecio(ctx context.Context, precio *model.PrecioProducto) error
	ListListasPrecios(ctx context.Context) ([]model.ListaPrecio, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Precios.ListaPrecio").First(&p, id).Error
	return &p, err
}

func (r *productoRepo) FindByNombre(ctx context.Context, nombre string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Precios.ListaPrecio").
		Where("LOWER(nombre) = LOWER(?) AND activo = true", nombre).
		First(&p).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, puntoVentaID *uuid.UUID) ([]model.Producto, error) {
	var productos []model.Producto
	q := r.db.WithContext(ctx).Preload("Precios.ListaPrecio").Where("activo = true").Order("nombre ASC")
	if puntoVentaID != nil {
		q = q.Joins("JOIN producto_puntos_venta ppv ON ppv.producto_id = productos.id").
			Where("ppv.punto_venta_id = ?", *puntoVentaID)
	}
	err := q.Find(&productos).Error
	return productos, err
}

func (r *productoRepo) ListPrecios(ctx context.Context, productoID uuid.UUID) ([]model.PrecioProducto, error) {
	var precios []model.PrecioProducto
	err := r.db.WithContext(ctx).
		Preload("ListaPrecio").
		Where("producto_id = ?", productoID).
		Order("lista_precio_id ASC").
		Find(&precios).Error
	return precios, err
}

func (r *productoRepo) UpsertPrecio(ctx context.Context, precio *model.PrecioProducto) error {
	var existente model.PrecioProducto
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND lista_precio_id = ?", precio.ProductoID, precio.ListaPrecioID).
		First(&existente).Error
	if err == nil {
		existente.PrecioUnitario = precio.PrecioUnitario
		return r.db.WithContext(ctx).Save(&existente).Error
	}
	return r.db.WithContext(ctx).Create(precio).Error
}

func (r *productoRepo) ListListasPrecios(ctx context.Context) ([]model.ListaPrecio, error) {
	var listas []model.ListaPrecio
	err := r.db.WithContext(ctx).Where("activo = true").Order("id ASC").Find(&listas).Error
	return listas, err
}
