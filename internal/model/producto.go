package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is catalog reference data. EsEntrada marks entry-type products
// ("Entrada Mayor", "Entrada Menor", "Entrada"): their detail rows always
// represent one physical person each.
type Producto struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"index;not null"`
	Descripcion   *string
	EsEntrada     bool `gorm:"not null;default:false"`
	ControlaStock bool `gorm:"not null;default:false"`
	Stock         int  `gorm:"not null;default:0"`
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Precios     []PrecioProducto `gorm:"foreignKey:ProductoID"`
	PuntosVenta []PuntoVenta     `gorm:"many2many:producto_puntos_venta"`
}

// ListaPrecio is a named price list. Seeds: 1 Socios, 2 Socios Empleados,
// 3 No Socios. IDs are small ints on purpose — convenios reference them.
type ListaPrecio struct {
	ID          int    `gorm:"primaryKey"`
	Nombre      string `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
}

// PrecioProducto is the (producto, lista) → unit price association.
type PrecioProducto struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_producto_lista"`
	ListaPrecioID  int             `gorm:"not null;uniqueIndex:idx_producto_lista"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UpdatedAt      time.Time

	ListaPrecio *ListaPrecio `gorm:"foreignKey:ListaPrecioID"`
}
