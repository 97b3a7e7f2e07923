package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta estados. Cancellation is soft: the row stays, reconciliation skips it.
const (
	VentaCompletada = "completada"
	VentaCancelada  = "cancelada"
)

// Venta is a checkout transaction tied to a caja session. AfiliadoID is nil
// for walk-in ("Consumidor Final") sales; ConvenioID mirrors the afiliado's
// convenio at sale time so reports survive later convenio changes.
type Venta struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SesionCajaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PuntoVentaID uuid.UUID       `gorm:"type:uuid;not null"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null"`
	MedioPagoID  uuid.UUID       `gorm:"type:uuid;not null"`
	AfiliadoID   *uuid.UUID      `gorm:"type:uuid;index"`
	ConvenioID   *uuid.UUID      `gorm:"type:uuid;index"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'completada'"`
	MotivoCancelacion *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	MedioPago *MedioPago     `gorm:"foreignKey:MedioPagoID"`
	Convenio  *Convenio      `gorm:"foreignKey:ConvenioID"`
	Detalles  []DetalleVenta `gorm:"foreignKey:VentaID"`
}

// DetalleVenta is one line of a venta. Entry-type rows (producto.EsEntrada)
// always have Cantidad == 1: one row per physical person entering the venue.
type DetalleVenta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	ListaPrecioID  int             `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AfiliadoID     *uuid.UUID      `gorm:"type:uuid;index"`
	FamiliarID     *uuid.UUID      `gorm:"type:uuid"`
	EsTitular      bool            `gorm:"not null;default:false"`
	EsEntrada      bool            `gorm:"not null;default:false"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
